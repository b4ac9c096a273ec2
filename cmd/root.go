package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/arnavsurve/logo/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	outPath    string
	verbose    bool
	trace      bool
)

var rootCmd = &cobra.Command{
	Use:   "logo",
	Short: "Logo CLI — turtle graphics interpreter",
	Long: `Logo runs turtle-graphics programs and renders the drawing to an image.

Commands:
  init   Scaffold a new Logo project
  run    Execute a (.logo) source file and export the drawing
  parse  Show the tokens, commands and diagnostics of a source file
  fmt    Print a source file in canonical form
  repl   Start an interactive session
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

// ErrReported is returned once an error has already been shown to the user,
// so the caller only needs to set the exit status.
var ErrReported = errors.New("error already reported")

func Execute(ctx context.Context) error {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default logo.yml or $LOGO_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&outPath, "out", "o", "", "image file for the drawing (overrides output.image)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "trace logging, including every token and frame")

	rootCmd.AddCommand(InitCmd, RunCmd, ParseCmd, FmtCmd, ReplCmd)
}

func setupLogging() {
	level := zerolog.InfoLevel
	switch {
	case trace:
		level = zerolog.TraceLevel
	case verbose:
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
}

// loadConfig applies the precedence defaults < file < flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := config.Locate(configPath)
	explicit := configPath != "" || os.Getenv(config.EnvPath) != ""
	cfg, err := config.Load(path, explicit)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("out") {
		cfg.Output.Image = outPath
	}
	if cmd.Flags().Changed("speed") {
		cfg.Animation.Speed = speed
	}
	if cmd.Flags().Changed("realtime") {
		cfg.Animation.Headless = !realtime
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// printLine is the output sink for PRINT and error reports.
func printLine(s string) {
	fmt.Println(s)
}
