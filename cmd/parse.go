package cmd

import (
	"fmt"
	"os"

	"github.com/arnavsurve/logo/internal/interp/lexer"
	"github.com/arnavsurve/logo/internal/interp/parser"
	"github.com/spf13/cobra"
)

var showTokens bool

// parse: dump what the front end makes of a file
var ParseCmd = &cobra.Command{
	Use:   "parse <file.logo>",
	Short: "Show the commands and diagnostics of a Logo source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		tokens := lexer.Tokenize(string(src))
		if showTokens {
			fmt.Println("Tokens:")
			for _, tok := range tokens {
				fmt.Printf("  %d:%d\t%s\n", tok.Line, tok.Column, tok)
			}
			fmt.Println()
		}

		prog := parser.Parse(string(src), tokens)
		fmt.Println("Commands:")
		for _, c := range prog.Commands {
			fmt.Printf("  %s\n", c)
		}
		if msgs := prog.AllMessages(); len(msgs) > 0 {
			fmt.Println()
			fmt.Println("Diagnostics:")
			for _, m := range msgs {
				fmt.Printf("  %s\n", m)
			}
		}
		if prog.HasErrors() {
			return fmt.Errorf("%d parse error(s) in %s", len(prog.Diagnostics), args[0])
		}
		return nil
	},
}

func init() {
	ParseCmd.Flags().BoolVarP(&showTokens, "tokens", "t", false, "also print the token stream")
}
