package runtime

import (
	"fmt"
	"strings"

	"github.com/arnavsurve/logo/internal/interp/token"
)

// ArgShape is how the parser reads one argument slot.
type ArgShape uint8

const (
	ArgExpr  ArgShape = iota // any expression, including [list] literals
	ArgBlock                 // [ commands ]
)

func (s ArgShape) String() string {
	if s == ArgBlock {
		return "block"
	}
	return "expression"
}

type RunFunc func(ctx *Context, args []Value) (Outcome, error)

// Definition describes a built-in: its names, argument slots and behaviour.
type Definition struct {
	Name    string
	Aliases []string
	Args    []ArgShape
	// Variadic commands accept any number (>= MinArgs) of expression
	// arguments when the call is wrapped in parentheses.
	Variadic bool
	MinArgs  int
	// Reporter commands produce a value.
	Reporter bool
	Run      RunFunc
}

// New builds the command node for a parsed call.
func (d *Definition) New(args []Value, tok token.Token) Command {
	return &BuiltinCommand{Def: d, Args: args, Tok: tok}
}

var (
	definitions = make(map[string]*Definition)
	aliases     = make(map[string]string)
)

func register(defs ...*Definition) {
	for _, d := range defs {
		name := strings.ToUpper(d.Name)
		if _, dup := definitions[name]; dup {
			panic(fmt.Sprintf("runtime: command %s registered twice", name))
		}
		definitions[name] = d
		aliases[name] = name
		for _, a := range d.Aliases {
			aliases[strings.ToUpper(a)] = name
		}
	}
}

// LookupCommand finds a built-in by name or alias, ignoring case.
func LookupCommand(name string) (*Definition, bool) {
	canonical, ok := aliases[strings.ToUpper(name)]
	if !ok {
		return nil, false
	}
	return definitions[canonical], true
}

// Canonical returns the canonical name of a built-in or alias.
func Canonical(name string) (string, bool) {
	canonical, ok := aliases[strings.ToUpper(name)]
	return canonical, ok
}

// helpers shared by the built-in tables

func expr(n int) []ArgShape {
	out := make([]ArgShape, n)
	for i := range out {
		out[i] = ArgExpr
	}
	return out
}

// action wraps a command that produces nothing.
func action(fn func(ctx *Context, args []Value) error) RunFunc {
	return func(ctx *Context, args []Value) (Outcome, error) {
		if err := fn(ctx, args); err != nil {
			return nothing, err
		}
		return nothing, nil
	}
}

// reporter wraps a command that produces a value.
func reporter(fn func(ctx *Context, args []Value) (Value, error)) RunFunc {
	return func(ctx *Context, args []Value) (Outcome, error) {
		v, err := fn(ctx, args)
		if err != nil {
			return nothing, err
		}
		return valueOutcome(v), nil
	}
}

// numeric1 wraps a one-argument numeric reporter.
func numeric1(fn func(float64) (float64, error)) RunFunc {
	return reporter(func(ctx *Context, args []Value) (Value, error) {
		n, err := ctx.Number(args[0])
		if err != nil {
			return None, err
		}
		r, err := fn(n)
		if err != nil {
			return None, err
		}
		return Number(r), nil
	})
}

// numbers resolves every argument as a number.
func numbers(ctx *Context, args []Value) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		n, err := ctx.Number(a)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
