package cmd

import (
	"fmt"
	"os"

	"github.com/arnavsurve/logo/internal/interp/emitter"
	"github.com/arnavsurve/logo/internal/interp/parser"
	"github.com/spf13/cobra"
)

var (
	fmtWrite bool
	fmtWidth int
)

// fmt: print canonical source
var FmtCmd = &cobra.Command{
	Use:   "fmt <file.logo>",
	Short: "Print a Logo source file in canonical form",
	Long: `Print a Logo source file with built-ins under their canonical names and
procedure bodies indented. Comments are not preserved.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		prog := parser.Parse(string(src), nil)
		if prog.HasErrors() {
			return fmt.Errorf("parser errors: %v", prog.Diagnostics)
		}
		out, errs := emitter.NewEmitter(emitter.WithWidth(fmtWidth)).Emit(prog)
		if len(errs) > 0 {
			return fmt.Errorf("emitter errors: %v", errs)
		}

		if !fmtWrite {
			fmt.Print(out)
			return nil
		}
		if out == string(src) {
			return nil
		}
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✔︎ formatted %s\n", path)
		return nil
	},
}

func init() {
	FmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write the result back to the file")
	FmtCmd.Flags().IntVar(&fmtWidth, "width", 72, "line width above which blocks are broken")
}
