package runtime

import (
	"fmt"
	"math"
	"strings"
)

func init() {
	register(arithmetic...)
	register(logic...)
	register(wordsAndLists...)
}

const degrees = math.Pi / 180

var arithmetic = []*Definition{
	{
		Name: "SUM", Args: expr(2), Variadic: true, Reporter: true,
		Run: reporter(func(ctx *Context, args []Value) (Value, error) {
			ns, err := numbers(ctx, args)
			if err != nil {
				return None, err
			}
			total := 0.0
			for _, n := range ns {
				total += n
			}
			return Number(total), nil
		}),
	},
	{
		Name: "PRODUCT", Args: expr(2), Variadic: true, Reporter: true,
		Run: reporter(func(ctx *Context, args []Value) (Value, error) {
			ns, err := numbers(ctx, args)
			if err != nil {
				return None, err
			}
			total := 1.0
			for _, n := range ns {
				total *= n
			}
			return Number(total), nil
		}),
	},
	{
		Name: "DIFFERENCE", Args: expr(2), Reporter: true,
		Run: binary(func(a, b float64) (float64, error) { return a - b, nil }),
	},
	{
		Name: "QUOTIENT", Args: expr(2), Reporter: true,
		Run: binary(func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, ErrDivisionByZero
			}
			return a / b, nil
		}),
	},
	{
		Name: "REMAINDER", Aliases: []string{"MODULO"}, Args: expr(2), Reporter: true,
		Run: binary(func(a, b float64) (float64, error) {
			if math.Trunc(b) == 0 {
				return 0, ErrDivisionByZero
			}
			return math.Mod(math.Trunc(a), math.Trunc(b)), nil
		}),
	},
	{
		Name: "POWER", Args: expr(2), Reporter: true,
		Run: binary(func(a, b float64) (float64, error) { return math.Pow(a, b), nil }),
	},
	{Name: "MINUS", Args: expr(1), Reporter: true, Run: numeric1(func(n float64) (float64, error) { return -n, nil })},
	{Name: "ABS", Args: expr(1), Reporter: true, Run: numeric1(func(n float64) (float64, error) { return math.Abs(n), nil })},
	{Name: "INT", Args: expr(1), Reporter: true, Run: numeric1(func(n float64) (float64, error) { return math.Trunc(n), nil })},
	{Name: "ROUND", Args: expr(1), Reporter: true, Run: numeric1(func(n float64) (float64, error) { return math.Round(n), nil })},
	{
		Name: "SQRT", Args: expr(1), Reporter: true,
		Run: numeric1(func(n float64) (float64, error) {
			if n < 0 {
				return 0, fmt.Errorf("%w: SQRT of %s", ErrRange, FormatNumber(n))
			}
			return math.Sqrt(n), nil
		}),
	},
	{Name: "SIN", Args: expr(1), Reporter: true, Run: numeric1(func(n float64) (float64, error) { return math.Sin(n * degrees), nil })},
	{Name: "COS", Args: expr(1), Reporter: true, Run: numeric1(func(n float64) (float64, error) { return math.Cos(n * degrees), nil })},
	{Name: "TAN", Args: expr(1), Reporter: true, Run: numeric1(func(n float64) (float64, error) { return math.Tan(n * degrees), nil })},
	{Name: "ARCTAN", Args: expr(1), Reporter: true, Run: numeric1(func(n float64) (float64, error) { return math.Atan(n) / degrees, nil })},
	{
		Name: "RANDOM", Args: expr(1), Reporter: true,
		Run: reporter(func(ctx *Context, args []Value) (Value, error) {
			n, err := ctx.Int(args[0])
			if err != nil {
				return None, err
			}
			if n <= 0 {
				return None, fmt.Errorf("%w: RANDOM needs a positive limit, got %d", ErrRange, n)
			}
			return Number(float64(ctx.rng.IntN(n))), nil
		}),
	},
}

func binary(fn func(a, b float64) (float64, error)) RunFunc {
	return reporter(func(ctx *Context, args []Value) (Value, error) {
		ns, err := numbers(ctx, args)
		if err != nil {
			return None, err
		}
		r, err := fn(ns[0], ns[1])
		if err != nil {
			return None, err
		}
		return Number(r), nil
	})
}

func predicate(fn func(v Value) bool) RunFunc {
	return reporter(func(ctx *Context, args []Value) (Value, error) {
		v, err := ctx.Value(args[0])
		if err != nil {
			return None, err
		}
		return Bool(fn(v)), nil
	})
}

var logic = []*Definition{
	{
		Name: "NOT", Args: expr(1), Reporter: true,
		Run: reporter(func(ctx *Context, args []Value) (Value, error) {
			b, err := ctx.Bool(args[0])
			return Bool(!b), err
		}),
	},
	{
		Name: "AND", Args: expr(2), Variadic: true, Reporter: true,
		Run: reporter(func(ctx *Context, args []Value) (Value, error) {
			for _, a := range args {
				b, err := ctx.Bool(a)
				if err != nil || !b {
					return Bool(false), err
				}
			}
			return Bool(true), nil
		}),
	},
	{
		Name: "OR", Args: expr(2), Variadic: true, Reporter: true,
		Run: reporter(func(ctx *Context, args []Value) (Value, error) {
			for _, a := range args {
				b, err := ctx.Bool(a)
				if err != nil || b {
					return Bool(b), err
				}
			}
			return Bool(false), nil
		}),
	},
	{
		Name: "EQUALP", Args: expr(2), Reporter: true,
		Run: reporter(func(ctx *Context, args []Value) (Value, error) {
			a, err := ctx.Value(args[0])
			if err != nil {
				return None, err
			}
			b, err := ctx.Value(args[1])
			if err != nil {
				return None, err
			}
			return Bool(Equal(a, b)), nil
		}),
	},
	{
		Name: "LESSP", Args: expr(2), Reporter: true,
		Run: reporter(func(ctx *Context, args []Value) (Value, error) {
			ns, err := numbers(ctx, args)
			if err != nil {
				return None, err
			}
			return Bool(ns[0] < ns[1]), nil
		}),
	},
	{
		Name: "GREATERP", Args: expr(2), Reporter: true,
		Run: reporter(func(ctx *Context, args []Value) (Value, error) {
			ns, err := numbers(ctx, args)
			if err != nil {
				return None, err
			}
			return Bool(ns[0] > ns[1]), nil
		}),
	},
	{Name: "NUMBERP", Args: expr(1), Reporter: true, Run: predicate(func(v Value) bool { _, ok := numeric(v); return ok })},
	{Name: "WORDP", Args: expr(1), Reporter: true, Run: predicate(func(v Value) bool { return v.Kind == KindString || v.Kind == KindNumber })},
	{Name: "LISTP", Args: expr(1), Reporter: true, Run: predicate(func(v Value) bool { return v.Kind == KindList })},
	{
		Name: "EMPTYP", Args: expr(1), Reporter: true,
		Run: predicate(func(v Value) bool {
			return (v.Kind == KindList && len(v.Items) == 0) || (v.Kind == KindString && v.Str == "")
		}),
	},
}

// sequence is a word or list viewed element-wise. Words split into
// one-character words.
type sequence struct {
	list  bool
	items []Value
	runes []rune
}

func asSequence(ctx *Context, raw Value) (sequence, error) {
	v, err := ctx.Value(raw)
	if err != nil {
		return sequence{}, err
	}
	switch v.Kind {
	case KindList:
		return sequence{list: true, items: v.Items}, nil
	case KindString, KindNumber, KindBoolean:
		return sequence{runes: []rune(v.Show())}, nil
	}
	return sequence{}, typeError("word or list", v)
}

func (s sequence) len() int {
	if s.list {
		return len(s.items)
	}
	return len(s.runes)
}

func (s sequence) at(i int) Value {
	if s.list {
		return s.items[i]
	}
	return Word(string(s.runes[i]))
}

func (s sequence) slice(from, to int) Value {
	if s.list {
		return List(append([]Value(nil), s.items[from:to]...)...)
	}
	return Word(string(s.runes[from:to]))
}

// seqOp wraps FIRST-style reporters that fail on empty input.
func seqOp(name string, fn func(s sequence) Value) RunFunc {
	return reporter(func(ctx *Context, args []Value) (Value, error) {
		s, err := asSequence(ctx, args[0])
		if err != nil {
			return None, err
		}
		if s.len() == 0 {
			return None, fmt.Errorf("%w: %s of an empty %s", ErrEmpty, name, map[bool]string{true: "list", false: "word"}[s.list])
		}
		return fn(s), nil
	})
}

var wordsAndLists = []*Definition{
	{Name: "FIRST", Args: expr(1), Reporter: true, Run: seqOp("FIRST", func(s sequence) Value { return s.at(0) })},
	{Name: "LAST", Args: expr(1), Reporter: true, Run: seqOp("LAST", func(s sequence) Value { return s.at(s.len() - 1) })},
	{Name: "BUTFIRST", Aliases: []string{"BF"}, Args: expr(1), Reporter: true, Run: seqOp("BUTFIRST", func(s sequence) Value { return s.slice(1, s.len()) })},
	{Name: "BUTLAST", Aliases: []string{"BL"}, Args: expr(1), Reporter: true, Run: seqOp("BUTLAST", func(s sequence) Value { return s.slice(0, s.len()-1) })},
	{
		Name: "ITEM", Args: expr(2), Reporter: true,
		Run: reporter(func(ctx *Context, args []Value) (Value, error) {
			i, err := ctx.Int(args[0])
			if err != nil {
				return None, err
			}
			s, err := asSequence(ctx, args[1])
			if err != nil {
				return None, err
			}
			if s.len() == 0 {
				return None, fmt.Errorf("%w: ITEM of an empty input", ErrEmpty)
			}
			if i < 1 || i > s.len() {
				return None, fmt.Errorf("%w: ITEM %d of %d", ErrRange, i, s.len())
			}
			return s.at(i - 1), nil
		}),
	},
	{
		Name: "COUNT", Args: expr(1), Reporter: true,
		Run: reporter(func(ctx *Context, args []Value) (Value, error) {
			s, err := asSequence(ctx, args[0])
			if err != nil {
				return None, err
			}
			return Number(float64(s.len())), nil
		}),
	},
	{
		Name: "WORD", Args: expr(2), Variadic: true, Reporter: true,
		Run: reporter(func(ctx *Context, args []Value) (Value, error) {
			var b strings.Builder
			for _, a := range args {
				t, err := ctx.Text(a)
				if err != nil {
					return None, err
				}
				b.WriteString(t)
			}
			return Word(b.String()), nil
		}),
	},
	{
		Name: "LIST", Args: expr(2), Variadic: true, Reporter: true,
		Run: reporter(func(ctx *Context, args []Value) (Value, error) {
			items := make([]Value, len(args))
			for i, a := range args {
				v, err := ctx.Value(a)
				if err != nil {
					return None, err
				}
				items[i] = v
			}
			return List(items...), nil
		}),
	},
	{
		Name: "SENTENCE", Aliases: []string{"SE"}, Args: expr(2), Variadic: true, Reporter: true,
		Run: reporter(func(ctx *Context, args []Value) (Value, error) {
			var items []Value
			for _, a := range args {
				v, err := ctx.Value(a)
				if err != nil {
					return None, err
				}
				if v.Kind == KindList {
					items = append(items, v.Items...)
				} else {
					items = append(items, v)
				}
			}
			return List(items...), nil
		}),
	},
	{
		Name: "FPUT", Args: expr(2), Reporter: true,
		Run: reporter(func(ctx *Context, args []Value) (Value, error) {
			v, err := ctx.Value(args[0])
			if err != nil {
				return None, err
			}
			items, err := ctx.List(args[1])
			if err != nil {
				return None, err
			}
			return List(append([]Value{v}, items...)...), nil
		}),
	},
	{
		Name: "LPUT", Args: expr(2), Reporter: true,
		Run: reporter(func(ctx *Context, args []Value) (Value, error) {
			v, err := ctx.Value(args[0])
			if err != nil {
				return None, err
			}
			items, err := ctx.List(args[1])
			if err != nil {
				return None, err
			}
			return List(append(append([]Value(nil), items...), v)...), nil
		}),
	},
	{
		Name: "MEMBERP", Args: expr(2), Reporter: true,
		Run: reporter(func(ctx *Context, args []Value) (Value, error) {
			v, err := ctx.Value(args[0])
			if err != nil {
				return None, err
			}
			s, err := asSequence(ctx, args[1])
			if err != nil {
				return None, err
			}
			for i := 0; i < s.len(); i++ {
				if Equal(v, s.at(i)) {
					return Bool(true), nil
				}
			}
			return Bool(false), nil
		}),
	},
}
