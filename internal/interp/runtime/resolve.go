package runtime

import (
	"fmt"
	"image/color"
	"math"

	"github.com/arnavsurve/logo/internal/turtle"
)

// Resolve turns a thunk into a concrete value inside ctx. Concrete values
// come back unchanged.
func Resolve(ctx *Context, v Value) (Value, error) {
	if !v.IsThunk() {
		return v, nil
	}
	switch v.Kind {
	case KindVariable:
		val, ok := ctx.Lookup(v.Str)
		if !ok {
			return None, fmt.Errorf("%w: %s", ErrUndefinedVariable, v.Str)
		}
		return val, nil
	case KindOperation:
		return applyOperation(ctx, v.Str, *v.Left, *v.Right)
	case KindCommand:
		out, err := v.Cmd.Execute(ctx)
		if err != nil {
			return None, err
		}
		if out.Signal == SignalBye {
			return None, errBye
		}
		if out.Signal != SignalNone || out.Value.IsNone() {
			return None, fmt.Errorf("%w: %s", ErrNoValue, v.Cmd.String())
		}
		return out.Value, nil
	}
	return v, nil
}

func applyOperation(ctx *Context, op string, left, right Value) (Value, error) {
	a, err := ctx.operand(left)
	if err != nil {
		return None, err
	}
	b, err := ctx.operand(right)
	if err != nil {
		return None, err
	}
	switch op {
	case "+":
		return Number(a + b), nil
	case "-":
		return Number(a - b), nil
	case "*":
		return Number(a * b), nil
	case "/":
		if b == 0 {
			return None, ErrDivisionByZero
		}
		return Number(a / b), nil
	case "<":
		return Bool(a < b), nil
	case ">":
		return Bool(a > b), nil
	case "<=":
		return Bool(a <= b), nil
	case ">=":
		return Bool(a >= b), nil
	case "==", "=":
		return Bool(a == b), nil
	case "!=":
		return Bool(a != b), nil
	}
	return None, fmt.Errorf("unknown operator %q", op)
}

// --- Typed argument access ---

// Value resolves an argument that may be of any concrete kind.
func (c *Context) Value(v Value) (Value, error) {
	return Resolve(c, v)
}

// Number resolves v and requires a number. Numeric words count.
func (c *Context) Number(v Value) (float64, error) {
	r, err := Resolve(c, v)
	if err != nil {
		return 0, err
	}
	if n, ok := numeric(r); ok {
		return n, nil
	}
	return 0, typeError("number", r)
}

// operand resolves one side of an infix operator. A boolean counts as 1 or
// 0 there, so comparison results can take part in arithmetic.
func (c *Context) operand(v Value) (float64, error) {
	r, err := Resolve(c, v)
	if err != nil {
		return 0, err
	}
	if r.Kind == KindBoolean {
		if r.Bool {
			return 1, nil
		}
		return 0, nil
	}
	return c.Number(r)
}

// Int resolves v and truncates it to an integer.
func (c *Context) Int(v Value) (int, error) {
	n, err := c.Number(v)
	if err != nil {
		return 0, err
	}
	return int(math.Trunc(n)), nil
}

// Bool resolves v as a condition. Booleans, numbers (non-zero is true) and
// the words true/false are accepted.
func (c *Context) Bool(v Value) (bool, error) {
	r, err := Resolve(c, v)
	if err != nil {
		return false, err
	}
	switch r.Kind {
	case KindBoolean:
		return r.Bool, nil
	case KindNumber:
		return r.Num != 0, nil
	case KindString:
		switch r.Str {
		case "true", "TRUE", "True":
			return true, nil
		case "false", "FALSE", "False":
			return false, nil
		}
	}
	return false, typeError("true or false", r)
}

// Text resolves v and requires a word. Numbers and booleans are spelled out.
func (c *Context) Text(v Value) (string, error) {
	r, err := Resolve(c, v)
	if err != nil {
		return "", err
	}
	switch r.Kind {
	case KindString, KindNumber, KindBoolean:
		return r.Show(), nil
	}
	return "", typeError("word", r)
}

// List resolves v and requires a list.
func (c *Context) List(v Value) ([]Value, error) {
	r, err := Resolve(c, v)
	if err != nil {
		return nil, err
	}
	if r.Kind != KindList {
		return nil, typeError("list", r)
	}
	return r.Items, nil
}

// Color resolves a palette index, a colour word or an [r g b] list.
func (c *Context) Color(v Value) (color.RGBA, error) {
	r, err := Resolve(c, v)
	if err != nil {
		return color.RGBA{}, err
	}
	switch r.Kind {
	case KindNumber:
		col, err := turtle.PaletteColor(int(r.Num))
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: %v", ErrRange, err)
		}
		return col, nil
	case KindString:
		col, err := turtle.ParseColor(r.Str)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: %v", ErrRange, err)
		}
		return col, nil
	case KindList:
		if len(r.Items) != 3 {
			return color.RGBA{}, typeError("[red green blue]", r)
		}
		var ch [3]float64
		for i, item := range r.Items {
			n, err := c.Number(item)
			if err != nil {
				return color.RGBA{}, err
			}
			ch[i] = n
		}
		return turtle.RGB(ch[0], ch[1], ch[2]), nil
	}
	return color.RGBA{}, typeError("colour", r)
}
