package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/arnavsurve/logo/internal/interp"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	historyFile = ".logo_history"
	promptMain  = "? "
	promptCont  = "> "
	replBanner  = "Logo interactive session. :quit exits, :reset starts over, :save <file> exports the drawing."
)

// repl: interactive session
var ReplCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Logo session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		session := interp.NewSession(interp.FromConfig(cfg, printLine))

		fmt.Println(replBanner)

		home, _ := os.UserHomeDir()
		histPath := filepath.Join(home, historyFile)

		ln := liner.NewLiner()
		defer ln.Close()
		ln.SetCtrlCAborts(true)

		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()

		for !session.Done() {
			code, ok := readSubmission(ln)
			if !ok {
				fmt.Println()
				return nil
			}
			code = strings.TrimSpace(code)
			if code == "" {
				continue
			}
			ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

			if strings.HasPrefix(code, ":") {
				if quit := replCommand(session, code); quit {
					return nil
				}
				continue
			}

			// Ctrl-C while a program runs cancels it and returns to the prompt.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			_, err := session.Eval(ctx, code)
			stop()
			var perr *interp.ParseError
			if errors.As(err, &perr) {
				for _, d := range perr.Diagnostics {
					fmt.Fprintln(os.Stderr, d)
				}
			}
		}
		return nil
	},
}

func init() {
	ReplCmd.Flags().IntVar(&speed, "speed", 50, "animation speed 0..100 (overrides animation.speed)")
	ReplCmd.Flags().BoolVar(&realtime, "realtime", false, "play animations in real time")
}

// replCommand handles :quit, :reset and :save. It reports whether to exit.
func replCommand(session *interp.Session, line string) bool {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case ":quit", ":q":
		return true
	case ":reset":
		session.Reset()
		fmt.Println("session reset")
	case ":save":
		if len(fields) != 2 {
			fmt.Println("usage: :save <file.png>")
			break
		}
		if err := session.Canvas().Export(fields[1], 1); err != nil {
			fmt.Fprintln(os.Stderr, err)
			break
		}
		fmt.Printf("✔︎ wrote %s\n", fields[1])
	default:
		fmt.Println("unknown command. Type :quit to exit.")
	}
	return false
}

// readSubmission collects lines until brackets, parentheses and TO/END
// balance. Ctrl-C discards the pending input.
func readSubmission(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if strings.HasPrefix(strings.TrimSpace(b.String()), ":") || !interp.Incomplete(b.String()) {
			return b.String(), true
		}
	}
}
