package runtime

import (
	"image/color"
	"math/rand/v2"
	"sync/atomic"

	"github.com/arnavsurve/logo/internal/interp/scope"
	"github.com/arnavsurve/logo/internal/turtle"
)

// Turtle is the handle commands drive. *turtle.Turtle implements it.
type Turtle interface {
	Forward(distance float64)
	Back(distance float64)
	Left(deg float64)
	Right(deg float64)
	PenUp()
	PenDown()
	PenPaint()
	PenErase()
	PenReverse()
	SetColor(c color.RGBA)
	SetBackgroundColor(c color.RGBA)
	SetPenSize(n float64)
	SetPosition(x, y *float64)
	SetHeading(deg float64)
	Home()
	Clear()
	Clean()
	HideTurtle()
	ShowTurtle()
	Wait(ms float64)
	Fill()
	SetAnimationSpeed(speed int)
	CancelAnimation()
	State() turtle.State
}

const DefaultMaxDepth = 1000

// Context is one execution frame. Variables are private to the frame; the
// procedure table, output sink, turtle and cancel flag are shared with
// every child frame.
type Context struct {
	Turtle Turtle
	Output func(string)

	// Last is the value produced by the most recent command in this frame.
	Last Value

	vars     *scope.Scope[Value]
	procs    *scope.Scope[Value]
	depth    int
	maxDepth int
	repcount []int
	canceled *atomic.Bool
	rng      *rand.Rand
}

type Option func(*Context)

func WithMaxDepth(n int) Option {
	return func(c *Context) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// WithRand fixes the source used by RANDOM.
func WithRand(r *rand.Rand) Option {
	return func(c *Context) { c.rng = r }
}

// NewContext creates a top-level frame. A nil turtle gets a headless one and
// a nil output discards text.
func NewContext(t Turtle, output func(string), opts ...Option) *Context {
	if t == nil {
		t = turtle.New()
	}
	if output == nil {
		output = func(string) {}
	}
	c := &Context{
		Turtle:   t,
		Output:   output,
		vars:     scope.NewScope[Value]("global"),
		procs:    scope.NewScope[Value]("procedures"),
		maxDepth: DefaultMaxDepth,
		canceled: new(atomic.Bool),
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Child creates the frame for a call to p. Only the parameters are bound;
// parameters without an argument stay unbound. Extra arguments are ignored.
func (c *Context) Child(p *Procedure, args []Value) (*Context, error) {
	if c.depth+1 > c.maxDepth {
		return nil, ErrRecursionDepth
	}
	child := &Context{
		Turtle:   c.Turtle,
		Output:   c.Output,
		vars:     scope.NewScope[Value](p.Name),
		procs:    c.procs,
		depth:    c.depth + 1,
		maxDepth: c.maxDepth,
		canceled: c.canceled,
		rng:      c.rng,
	}
	for i, name := range p.Params {
		if i < len(args) {
			child.vars.Define(name, args[i])
		}
	}
	return child, nil
}

func (c *Context) Lookup(name string) (Value, bool) {
	return c.vars.Lookup(name)
}

func (c *Context) Define(name string, v Value) {
	c.vars.Define(name, v)
}

// Variables lists the names bound in this frame.
func (c *Context) Variables() []string {
	return c.vars.Names()
}

func (c *Context) Procedure(name string) (*Procedure, bool) {
	v, ok := c.procs.Lookup(name)
	if !ok || v.Kind != KindProcedure {
		return nil, false
	}
	return v.Proc, true
}

func (c *Context) DefineProcedure(p *Procedure) {
	c.procs.Define(p.Name, ProcValue(p))
}

// Procedures lists the defined procedure names.
func (c *Context) Procedures() []string {
	return c.procs.Names()
}

// Arities maps every defined procedure to its parameter count, for seeding
// the parser of a later submission.
func (c *Context) Arities() map[string]int {
	out := make(map[string]int, c.procs.Len())
	for name, v := range c.procs.Symbols {
		out[name] = len(v.Proc.Params)
	}
	return out
}

func (c *Context) Depth() int {
	return c.depth
}

// Print sends one line of text to the output sink.
func (c *Context) Print(text string) {
	c.Output(text)
}

// Cancel asks every frame sharing this context's flag to stop at the next
// check. It is safe to call from another goroutine.
func (c *Context) Cancel() {
	c.canceled.Store(true)
}

// Reset clears a previous cancellation.
func (c *Context) Reset() {
	c.canceled.Store(false)
}

func (c *Context) Canceled() bool {
	return c.canceled.Load()
}

func (c *Context) checkCanceled() error {
	if c.canceled.Load() {
		return ErrCanceled
	}
	return nil
}

func (c *Context) pushRepcount() {
	c.repcount = append(c.repcount, 0)
}

func (c *Context) setRepcount(n int) {
	c.repcount[len(c.repcount)-1] = n
}

func (c *Context) popRepcount() {
	c.repcount = c.repcount[:len(c.repcount)-1]
}
