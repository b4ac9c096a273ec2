package emitter

import (
	"fmt"
	"strings"

	"github.com/arnavsurve/logo/internal/interp/runtime"
)

const (
	indentUnit   = "  "
	defaultWidth = 72 // a command longer than this has its blocks broken over lines
)

// Emitter renders a parsed Program back to canonical Logo source: built-ins
// under their canonical names, one top-level command per line, procedure
// bodies indented and long blocks broken over lines. Comments do not survive
// lexing and are not reproduced.
type Emitter struct {
	builder strings.Builder
	errors  []string
	indent  int
	width   int
}

type Option func(*Emitter)

// WithWidth sets the line width above which blocks are broken.
func WithWidth(n int) Option {
	return func(e *Emitter) {
		if n > 0 {
			e.width = n
		}
	}
}

func NewEmitter(opts ...Option) *Emitter {
	e := &Emitter{
		errors: []string{},
		width:  defaultWidth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Emitter) addError(format string, args ...any) {
	e.errors = append(e.errors, fmt.Sprintf(format, args...))
}

func (e *Emitter) Errors() []string {
	return e.errors
}

// Emit returns the source text of program and any emission errors. Programs
// with parse diagnostics are refused since their commands are incomplete.
func (e *Emitter) Emit(program *runtime.Program) (string, []string) {
	e.builder.Reset()
	e.errors = []string{}
	e.indent = 0

	if program == nil {
		e.addError("no program to emit")
		return "", e.errors
	}
	if program.HasErrors() {
		e.addError("program has %d parse error(s)", len(program.Diagnostics))
		return "", e.errors
	}

	for i, cmd := range program.Commands {
		_, isDef := cmd.(*runtime.DefineCommand)
		if isDef && i > 0 {
			e.builder.WriteString("\n")
		}
		e.emitCommand(cmd)
		if isDef && i < len(program.Commands)-1 {
			e.builder.WriteString("\n")
		}
	}
	return e.builder.String(), e.errors
}

func (e *Emitter) writeLine(s string) {
	e.builder.WriteString(strings.Repeat(indentUnit, e.indent))
	e.builder.WriteString(s)
	e.builder.WriteString("\n")
}

func (e *Emitter) emitCommand(cmd runtime.Command) {
	switch c := cmd.(type) {
	case *runtime.DefineCommand:
		e.emitDefinition(c)
	case *runtime.BuiltinCommand:
		e.emitBuiltin(c)
	case *runtime.CallCommand:
		e.writeLine(c.String())
	default:
		e.addError("cannot emit command of type %T", cmd)
	}
}

func (e *Emitter) emitDefinition(d *runtime.DefineCommand) {
	header := "TO " + d.Proc.Name
	for _, p := range d.Proc.Params {
		header += " :" + p
	}
	e.writeLine(header)
	e.indent++
	for _, cmd := range d.Proc.Body {
		e.emitCommand(cmd)
	}
	e.indent--
	e.writeLine("END")
}

// emitBuiltin writes the command on one line when it fits, otherwise each
// block input opens a bracket at the end of the line and closes it on its own.
func (e *Emitter) emitBuiltin(b *runtime.BuiltinCommand) {
	inline := b.String()
	if len(strings.Repeat(indentUnit, e.indent))+len(inline) <= e.width || !hasBlock(b) {
		e.writeLine(inline)
		return
	}

	line := b.Def.Name
	for _, arg := range b.Args {
		if arg.Kind != runtime.KindBlock {
			line += " " + inputSource(arg)
			continue
		}
		e.writeLine(line + " [")
		e.indent++
		for _, cmd := range arg.Block {
			e.emitCommand(cmd)
		}
		e.indent--
		line = "]"
	}
	e.writeLine(line)
}

func hasBlock(b *runtime.BuiltinCommand) bool {
	for _, arg := range b.Args {
		if arg.Kind == runtime.KindBlock {
			return true
		}
	}
	return false
}

func inputSource(v runtime.Value) string {
	if v.Kind == runtime.KindOperation {
		return "(" + v.Source() + ")"
	}
	return v.Source()
}
