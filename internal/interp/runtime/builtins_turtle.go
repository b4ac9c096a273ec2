package runtime

import (
	"github.com/arnavsurve/logo/internal/turtle"
)

func init() {
	register(turtleCommands...)
	register(turtleQueries...)
}

// move wraps FORWARD-style commands taking one number.
func move(fn func(t Turtle, n float64)) RunFunc {
	return action(func(ctx *Context, args []Value) error {
		n, err := ctx.Number(args[0])
		if err != nil {
			return err
		}
		fn(ctx.Turtle, n)
		return nil
	})
}

// pen wraps argument-less turtle commands.
func pen(fn func(t Turtle)) RunFunc {
	return action(func(ctx *Context, _ []Value) error {
		fn(ctx.Turtle)
		return nil
	})
}

var turtleCommands = []*Definition{
	{Name: "FORWARD", Aliases: []string{"FD"}, Args: expr(1), Run: move(Turtle.Forward)},
	{Name: "BACK", Aliases: []string{"BK", "BACKWARD"}, Args: expr(1), Run: move(Turtle.Back)},
	{Name: "LEFT", Aliases: []string{"LT"}, Args: expr(1), Run: move(Turtle.Left)},
	{Name: "RIGHT", Aliases: []string{"RT"}, Args: expr(1), Run: move(Turtle.Right)},
	{Name: "SETHEADING", Aliases: []string{"SETH"}, Args: expr(1), Run: move(Turtle.SetHeading)},
	{Name: "SETPENSIZE", Aliases: []string{"SETPS", "SETWIDTH"}, Args: expr(1), Run: move(Turtle.SetPenSize)},
	{Name: "PENUP", Aliases: []string{"PU"}, Run: pen(Turtle.PenUp)},
	{Name: "PENDOWN", Aliases: []string{"PD"}, Run: pen(Turtle.PenDown)},
	{Name: "PENPAINT", Aliases: []string{"PPT"}, Run: pen(Turtle.PenPaint)},
	{Name: "PENERASE", Aliases: []string{"PE"}, Run: pen(Turtle.PenErase)},
	{Name: "PENREVERSE", Aliases: []string{"PX"}, Run: pen(Turtle.PenReverse)},
	{Name: "HOME", Aliases: []string{"SETHOME"}, Run: pen(Turtle.Home)},
	{Name: "CLEARSCREEN", Aliases: []string{"CS"}, Run: pen(Turtle.Clear)},
	{Name: "CLEAN", Run: pen(Turtle.Clean)},
	{Name: "HIDETURTLE", Aliases: []string{"HT"}, Run: pen(Turtle.HideTurtle)},
	{Name: "SHOWTURTLE", Aliases: []string{"ST"}, Run: pen(Turtle.ShowTurtle)},
	{Name: "FILL", Run: pen(Turtle.Fill)},
	{
		Name: "SETX", Args: expr(1),
		Run: move(func(t Turtle, x float64) { t.SetPosition(&x, nil) }),
	},
	{
		Name: "SETY", Args: expr(1),
		Run: move(func(t Turtle, y float64) { t.SetPosition(nil, &y) }),
	},
	{
		Name: "SETXY", Args: expr(2),
		Run: action(func(ctx *Context, args []Value) error {
			xy, err := numbers(ctx, args)
			if err != nil {
				return err
			}
			ctx.Turtle.SetPosition(&xy[0], &xy[1])
			return nil
		}),
	},
	{
		Name: "SETPOS", Args: expr(1),
		Run: action(func(ctx *Context, args []Value) error {
			items, err := ctx.List(args[0])
			if err != nil {
				return err
			}
			if len(items) != 2 {
				return typeError("[x y]", List(items...))
			}
			xy, err := numbers(ctx, items)
			if err != nil {
				return err
			}
			ctx.Turtle.SetPosition(&xy[0], &xy[1])
			return nil
		}),
	},
	{
		Name: "SETPENCOLOR", Aliases: []string{"SETPC", "SETCOLOR"}, Args: expr(1),
		Run: action(func(ctx *Context, args []Value) error {
			c, err := ctx.Color(args[0])
			if err != nil {
				return err
			}
			ctx.Turtle.SetColor(c)
			return nil
		}),
	},
	{
		Name: "SETBACKGROUND", Aliases: []string{"SETBG"}, Args: expr(1),
		Run: action(func(ctx *Context, args []Value) error {
			c, err := ctx.Color(args[0])
			if err != nil {
				return err
			}
			ctx.Turtle.SetBackgroundColor(c)
			return nil
		}),
	},
	{
		// WAIT counts sixtieths of a second, as in UCBLogo.
		Name: "WAIT", Args: expr(1),
		Run: move(func(t Turtle, n float64) { t.Wait(n * 1000 / 60) }),
	},
	{
		Name: "SETSPEED", Args: expr(1),
		Run: move(func(t Turtle, n float64) { t.SetAnimationSpeed(int(n)) }),
	},
}

var turtleQueries = []*Definition{
	{
		Name: "XCOR", Reporter: true,
		Run: reporter(func(ctx *Context, _ []Value) (Value, error) {
			return Number(ctx.Turtle.State().X), nil
		}),
	},
	{
		Name: "YCOR", Reporter: true,
		Run: reporter(func(ctx *Context, _ []Value) (Value, error) {
			return Number(ctx.Turtle.State().Y), nil
		}),
	},
	{
		Name: "POS", Reporter: true,
		Run: reporter(func(ctx *Context, _ []Value) (Value, error) {
			s := ctx.Turtle.State()
			return List(Number(s.X), Number(s.Y)), nil
		}),
	},
	{
		Name: "HEADING", Reporter: true,
		Run: reporter(func(ctx *Context, _ []Value) (Value, error) {
			return Number(turtle.Compass(ctx.Turtle.State().Heading)), nil
		}),
	},
	{
		Name: "PENDOWNP", Reporter: true,
		Run: reporter(func(ctx *Context, _ []Value) (Value, error) {
			return Bool(ctx.Turtle.State().PenDown), nil
		}),
	},
	{
		Name: "SHOWNP", Reporter: true,
		Run: reporter(func(ctx *Context, _ []Value) (Value, error) {
			return Bool(ctx.Turtle.State().Visible), nil
		}),
	},
}
