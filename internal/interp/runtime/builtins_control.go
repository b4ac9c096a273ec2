package runtime

import (
	"fmt"
	"strings"
)

func init() {
	register(controlCommands...)
}

// runBody executes a block argument. Blocks arrive unevaluated from the parser.
func runBody(ctx *Context, v Value) (Outcome, error) {
	if v.Kind != KindBlock {
		return nothing, typeError("block", v)
	}
	return RunBlock(ctx, v.Block)
}

var controlCommands = []*Definition{
	{
		Name: "REPEAT", Args: []ArgShape{ArgExpr, ArgBlock},
		Run: func(ctx *Context, args []Value) (Outcome, error) {
			n, err := ctx.Int(args[0])
			if err != nil {
				return nothing, err
			}
			ctx.pushRepcount()
			defer ctx.popRepcount()
			for i := 1; i <= n; i++ {
				if err := ctx.checkCanceled(); err != nil {
					return nothing, err
				}
				ctx.setRepcount(i)
				out, err := runBody(ctx, args[1])
				if err != nil {
					return nothing, err
				}
				if out.Signal != SignalNone {
					return out, nil
				}
			}
			return nothing, nil
		},
	},
	{
		Name: "FOREVER", Args: []ArgShape{ArgBlock},
		Run: func(ctx *Context, args []Value) (Outcome, error) {
			ctx.pushRepcount()
			defer ctx.popRepcount()
			for i := 1; ; i++ {
				if err := ctx.checkCanceled(); err != nil {
					return nothing, err
				}
				ctx.setRepcount(i)
				out, err := runBody(ctx, args[0])
				if err != nil {
					return nothing, err
				}
				if out.Signal != SignalNone {
					return out, nil
				}
			}
		},
	},
	{
		Name: "REPCOUNT", Reporter: true,
		Run: reporter(func(ctx *Context, _ []Value) (Value, error) {
			if len(ctx.repcount) == 0 {
				return Number(-1), nil
			}
			return Number(float64(ctx.repcount[len(ctx.repcount)-1])), nil
		}),
	},
	{
		// The condition is a deferred expression, so it is re-resolved on
		// every iteration.
		Name: "WHILE", Args: []ArgShape{ArgExpr, ArgBlock},
		Run: func(ctx *Context, args []Value) (Outcome, error) {
			for {
				if err := ctx.checkCanceled(); err != nil {
					return nothing, err
				}
				ok, err := ctx.Bool(args[0])
				if err != nil || !ok {
					return nothing, err
				}
				out, err := runBody(ctx, args[1])
				if err != nil {
					return nothing, err
				}
				if out.Signal != SignalNone {
					return out, nil
				}
			}
		},
	},
	{
		Name: "IF", Args: []ArgShape{ArgExpr, ArgBlock},
		Run: func(ctx *Context, args []Value) (Outcome, error) {
			ok, err := ctx.Bool(args[0])
			if err != nil || !ok {
				return nothing, err
			}
			return runBody(ctx, args[1])
		},
	},
	{
		Name: "IFELSE", Args: []ArgShape{ArgExpr, ArgBlock, ArgBlock},
		Run: func(ctx *Context, args []Value) (Outcome, error) {
			ok, err := ctx.Bool(args[0])
			if err != nil {
				return nothing, err
			}
			if ok {
				return runBody(ctx, args[1])
			}
			return runBody(ctx, args[2])
		},
	},
	{
		Name: "STOP",
		Run: func(*Context, []Value) (Outcome, error) {
			return Outcome{Signal: SignalStop}, nil
		},
	},
	{
		Name: "OUTPUT", Aliases: []string{"OP"}, Args: expr(1),
		Run: func(ctx *Context, args []Value) (Outcome, error) {
			v, err := ctx.Value(args[0])
			if err != nil {
				return nothing, err
			}
			return Outcome{Value: v, Signal: SignalOutput}, nil
		},
	},
	{
		Name: "BYE",
		Run: func(*Context, []Value) (Outcome, error) {
			return Outcome{Signal: SignalBye}, nil
		},
	},
	{
		Name: "MAKE", Args: expr(2),
		Run: action(func(ctx *Context, args []Value) error {
			name, err := ctx.Text(args[0])
			if err != nil {
				return err
			}
			v, err := ctx.Value(args[1])
			if err != nil {
				return err
			}
			ctx.Define(name, v)
			return nil
		}),
	},
	{
		Name: "THING", Args: expr(1), Reporter: true,
		Run: reporter(func(ctx *Context, args []Value) (Value, error) {
			name, err := ctx.Text(args[0])
			if err != nil {
				return None, err
			}
			return Resolve(ctx, VarRef(name))
		}),
	},
	{
		Name: "PRINT", Aliases: []string{"PR"}, Args: expr(1), Variadic: true,
		Run: action(func(ctx *Context, args []Value) error {
			return printValues(ctx, args, Value.String)
		}),
	},
	{
		Name: "SHOW", Args: expr(1), Variadic: true,
		Run: action(func(ctx *Context, args []Value) error {
			return printValues(ctx, args, Value.Show)
		}),
	},
}

func printValues(ctx *Context, args []Value, format func(Value) string) error {
	parts := make([]string, len(args))
	for i, a := range args {
		v, err := ctx.Value(a)
		if err != nil {
			return err
		}
		if v.Kind == KindBlock || v.Kind == KindProcedure {
			return fmt.Errorf("%w: cannot print a %s", ErrType, v.Kind)
		}
		parts[i] = format(v)
	}
	ctx.Print(strings.Join(parts, " "))
	return nil
}
