package runtime

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/arnavsurve/logo/internal/interp/token"
	"github.com/rs/zerolog/log"
)

// Signal is a non-local control-flow outcome. It is not an error: it travels
// in Outcome until the boundary that consumes it.
type Signal uint8

const (
	SignalNone Signal = iota
	SignalStop
	SignalOutput
	SignalBye
)

func (s Signal) String() string {
	switch s {
	case SignalStop:
		return "STOP"
	case SignalOutput:
		return "OUTPUT"
	case SignalBye:
		return "BYE"
	}
	return "NONE"
}

// Outcome is what a command yields: an optional value and an optional signal.
// For SignalOutput, Value is the payload.
type Outcome struct {
	Value  Value
	Signal Signal
}

func valueOutcome(v Value) Outcome { return Outcome{Value: v} }

var nothing = Outcome{}

// Command is an executable node of a parsed program.
type Command interface {
	Execute(ctx *Context) (Outcome, error)
	// String describes the command as Logo source.
	String() string
}

// RunBlock executes cmds in order in ctx. A signal stops the sequence and is
// returned with the last value produced before it.
func RunBlock(ctx *Context, cmds []Command) (Outcome, error) {
	var last Value
	for _, cmd := range cmds {
		if err := ctx.checkCanceled(); err != nil {
			return nothing, err
		}
		out, err := cmd.Execute(ctx)
		if err != nil {
			return nothing, err
		}
		if out.Signal != SignalNone {
			if out.Signal == SignalStop {
				out.Value = last
			}
			return out, nil
		}
		last = out.Value
		ctx.Last = last
	}
	return valueOutcome(last), nil
}

// --- Built-in commands ---

// BuiltinCommand is a table-defined command applied to its raw arguments.
type BuiltinCommand struct {
	Def   *Definition
	Args  []Value
	Tok   token.Token
	Paren bool // written as (NAME a b ...)
}

func (b *BuiltinCommand) Execute(ctx *Context) (Outcome, error) {
	out, err := b.Def.Run(ctx, b.Args)
	if err != nil {
		if errors.Is(err, errBye) {
			return Outcome{Signal: SignalBye}, nil
		}
		return nothing, wrapError(b.Def.Name, b.Tok, err)
	}
	return out, nil
}

func (b *BuiltinCommand) String() string {
	var out bytes.Buffer
	if b.Paren {
		out.WriteString("(")
	}
	out.WriteString(b.Def.Name)
	for _, arg := range b.Args {
		out.WriteString(" ")
		out.WriteString(argSource(arg))
	}
	if b.Paren {
		out.WriteString(")")
	}
	return out.String()
}

// argSource parenthesizes operations that would otherwise read ambiguously
// as a run of separate arguments.
func argSource(v Value) string {
	if v.Kind == KindOperation {
		return "(" + v.Source() + ")"
	}
	return v.Source()
}

// --- User procedures ---

// DefineCommand installs a procedure when executed. Definition is late-bound:
// the body only runs when the procedure is called.
type DefineCommand struct {
	Proc *Procedure
	Tok  token.Token
}

func (d *DefineCommand) Execute(ctx *Context) (Outcome, error) {
	ctx.DefineProcedure(d.Proc)
	log.Debug().Str("phase", "execute").Msgf("defined procedure %s (%d params)", d.Proc.Name, len(d.Proc.Params))
	return nothing, nil
}

func (d *DefineCommand) String() string {
	var out bytes.Buffer
	out.WriteString("TO " + d.Proc.Name)
	for _, p := range d.Proc.Params {
		out.WriteString(" :" + p)
	}
	out.WriteString("\n")
	for _, cmd := range d.Proc.Body {
		out.WriteString("\t" + cmd.String() + "\n")
	}
	out.WriteString("END")
	return out.String()
}

// CallCommand invokes a user procedure by name.
type CallCommand struct {
	Name string
	Args []Value
	Tok  token.Token
	// Reporter is set when the call sits in value position and must OUTPUT.
	Reporter bool
}

func (c *CallCommand) Execute(ctx *Context) (Outcome, error) {
	proc, ok := ctx.Procedure(c.Name)
	if !ok {
		return nothing, &Error{Command: strings.ToUpper(c.Name), Tok: c.Tok, Err: fmt.Errorf("%w: %s", ErrUndefinedProcedure, c.Name)}
	}

	// Arguments are evaluated in the caller's frame.
	args := make([]Value, len(c.Args))
	for i, raw := range c.Args {
		v, err := Resolve(ctx, raw)
		if err != nil {
			if errors.Is(err, errBye) {
				return Outcome{Signal: SignalBye}, nil
			}
			return nothing, wrapError(proc.Name, c.Tok, err)
		}
		args[i] = v
	}

	child, err := ctx.Child(proc, args)
	if err != nil {
		return nothing, wrapError(proc.Name, c.Tok, err)
	}
	log.Trace().Str("phase", "execute").Int("depth", child.Depth()).Msgf("call %s", proc.Name)

	out, err := RunBlock(child, proc.Body)
	if err != nil {
		return nothing, err
	}
	switch out.Signal {
	case SignalOutput:
		return valueOutcome(out.Value), nil
	case SignalBye:
		return out, nil
	}
	if c.Reporter {
		return nothing, &Error{Command: proc.Name, Tok: c.Tok, Err: fmt.Errorf("%w: %s", ErrNoOutput, proc.Name)}
	}
	// STOP or falling off the end: the last command's value, if any.
	return valueOutcome(out.Value), nil
}

func (c *CallCommand) String() string {
	var out bytes.Buffer
	out.WriteString(c.Name)
	for _, arg := range c.Args {
		out.WriteString(" ")
		out.WriteString(argSource(arg))
	}
	return out.String()
}

// --- Program ---

// Program is the result of parsing one submission. Diagnostics are data: a
// program with errors still carries every statement that parsed.
type Program struct {
	Commands    []Command
	Diagnostics []string // errors
	Warnings    []string
}

func (p *Program) HasErrors() bool {
	return len(p.Diagnostics) > 0
}

// AllMessages returns errors followed by warnings.
func (p *Program) AllMessages() []string {
	all := make([]string, 0, len(p.Diagnostics)+len(p.Warnings))
	all = append(all, p.Diagnostics...)
	all = append(all, p.Warnings...)
	return all
}

// Procedures maps each procedure defined at the top level of the program to
// its parameter count.
func (p *Program) Procedures() map[string]int {
	out := map[string]int{}
	for _, cmd := range p.Commands {
		if def, ok := cmd.(*DefineCommand); ok {
			out[strings.ToLower(def.Proc.Name)] = len(def.Proc.Params)
		}
	}
	return out
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, cmd := range p.Commands {
		out.WriteString(cmd.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Run executes the top-level commands in order. after, when non-nil, runs
// once per completed command and may block; the driver uses it to let the
// animation drain and to pace commands. BYE and a top-level STOP end the
// run without error and are returned as the final signal.
func (p *Program) Run(ctx *Context, after func(Command) error) (Signal, error) {
	for _, cmd := range p.Commands {
		if err := ctx.checkCanceled(); err != nil {
			return SignalNone, err
		}
		log.Debug().Str("phase", "execute").Msgf("run %s", cmd)
		out, err := cmd.Execute(ctx)
		if err != nil {
			return SignalNone, err
		}
		ctx.Last = out.Value
		if after != nil {
			if err := after(cmd); err != nil {
				return SignalNone, err
			}
		}
		switch out.Signal {
		case SignalBye, SignalStop:
			return out.Signal, nil
		case SignalOutput:
			return SignalNone, &Error{Command: "OUTPUT", Tok: commandToken(cmd), Err: ErrOutputOutsideProcedure}
		}
	}
	return SignalNone, nil
}

// commandToken is the source position of a top-level statement.
func commandToken(cmd Command) token.Token {
	switch c := cmd.(type) {
	case *BuiltinCommand:
		return c.Tok
	case *CallCommand:
		return c.Tok
	case *DefineCommand:
		return c.Tok
	}
	return token.Token{}
}
