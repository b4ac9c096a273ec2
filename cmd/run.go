package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arnavsurve/logo/internal/interp"
	"github.com/spf13/cobra"
)

var (
	speed    int
	realtime bool
	noImage  bool
)

// run: execute a program and export the drawing
var RunCmd = &cobra.Command{
	Use:   "run <file.logo>",
	Short: "Execute a Logo program and export the drawing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		srcPath := args[0]
		if filepath.Ext(srcPath) != ".logo" {
			return fmt.Errorf("source must have .logo extension")
		}
		src, err := os.ReadFile(srcPath)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "↪ running %s ...\n", srcPath)
		session, _, err := interp.Run(cmd.Context(), string(src), interp.FromConfig(cfg, printLine))
		if err != nil {
			var perr *interp.ParseError
			if errors.As(err, &perr) {
				for _, d := range perr.Diagnostics {
					fmt.Fprintf(os.Stderr, "%s: %s\n", srcPath, d)
				}
				return fmt.Errorf("%d parse error(s) in %s", len(perr.Diagnostics), srcPath)
			}
			// The session already printed "error: ..." to the output.
			return ErrReported
		}

		if noImage || cfg.Output.Image == "" {
			return nil
		}
		if err := session.Canvas().Export(cfg.Output.Image, cfg.Output.Scale); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✔︎ wrote %s\n", cfg.Output.Image)
		return nil
	},
}

func init() {
	RunCmd.Flags().IntVar(&speed, "speed", 50, "animation speed 0..100 (overrides animation.speed)")
	RunCmd.Flags().BoolVar(&realtime, "realtime", false, "play animations in real time")
	RunCmd.Flags().BoolVar(&noImage, "no-image", false, "do not export the drawing")
}
