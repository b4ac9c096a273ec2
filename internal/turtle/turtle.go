// Package turtle is the turtle state machine. It owns the logical pose and
// pen, and forwards every visible effect to a Canvas that animates it.
package turtle

import (
	"image/color"
	"time"

	"github.com/rs/zerolog/log"
)

// Canvas receives visual effects in the order the turtle performs them.
// Each call carries a snapshot of the state after the transition.
type Canvas interface {
	Move(from, to State)
	Turn(s State)
	Fill(s State)
	Wait(d time.Duration)
	Clear(s State)
	Background(old color.RGBA, s State)
	Visibility(s State)
	SetSpeed(speed int)
	Cancel()
}

// Turtle implements the turtle handle the interpreter drives.
type Turtle struct {
	state   State
	initial State
	speed   int
	canvas  Canvas
}

type Option func(*Turtle)

// WithCanvas attaches the animation target. Without one the turtle only
// tracks state.
func WithCanvas(c Canvas) Option {
	return func(t *Turtle) { t.canvas = c }
}

// WithInitial overrides the state used at creation and by Clear.
func WithInitial(s State) Option {
	return func(t *Turtle) { t.initial = s }
}

func New(opts ...Option) *Turtle {
	t := &Turtle{initial: Initial(), speed: 50}
	for _, opt := range opts {
		opt(t)
	}
	t.state = t.initial
	return t
}

// State returns a copy of the current state.
func (t *Turtle) State() State {
	return t.state
}

// Speed returns the animation speed last set, 0..100.
func (t *Turtle) Speed() int {
	return t.speed
}

// Forward moves along the heading.
func (t *Turtle) Forward(distance float64) {
	from := t.state
	t.state.X, t.state.Y = Advance(from.X, from.Y, from.Heading, distance)
	log.Debug().Str("phase", "execute").Msgf("move (%.2f, %.2f) -> (%.2f, %.2f)", from.X, from.Y, t.state.X, t.state.Y)
	if t.canvas != nil {
		t.canvas.Move(from, t.state)
	}
}

// Back moves against the heading.
func (t *Turtle) Back(distance float64) {
	t.Forward(-distance)
}

// Left turns counter-clockwise. The heading is not normalized.
func (t *Turtle) Left(deg float64) {
	t.state.Heading += deg
	t.turned()
}

// Right turns clockwise. The heading is not normalized.
func (t *Turtle) Right(deg float64) {
	t.state.Heading -= deg
	t.turned()
}

func (t *Turtle) turned() {
	if t.canvas != nil {
		t.canvas.Turn(t.state)
	}
}

func (t *Turtle) PenUp()      { t.state.PenDown = false }
func (t *Turtle) PenDown()    { t.state.PenDown = true }
func (t *Turtle) PenPaint()   { t.state.PenDown, t.state.PenMode = true, PenPaint }
func (t *Turtle) PenErase()   { t.state.PenDown, t.state.PenMode = true, PenErase }
func (t *Turtle) PenReverse() { t.state.PenDown, t.state.PenMode = true, PenReverse }

func (t *Turtle) SetColor(c color.RGBA) {
	t.state.PenColor = c
}

// SetBackgroundColor repaints background pixels with the new colour.
func (t *Turtle) SetBackgroundColor(c color.RGBA) {
	old := t.state.Background
	t.state.Background = c
	if t.canvas != nil {
		t.canvas.Background(old, t.state)
	}
}

func (t *Turtle) SetPenSize(n float64) {
	if n < 1 {
		n = 1
	}
	t.state.PenSize = n
}

// SetPosition moves to (x, y). A nil axis keeps its current value.
func (t *Turtle) SetPosition(x, y *float64) {
	from := t.state
	if x != nil {
		t.state.X = *x
	}
	if y != nil {
		t.state.Y = *y
	}
	if t.canvas != nil {
		t.canvas.Move(from, t.state)
	}
}

// SetHeading takes compass degrees and stores a normalized heading.
func (t *Turtle) SetHeading(deg float64) {
	t.state.Heading = FromCompass(deg)
	t.turned()
}

// Home returns to the canvas centre, drawing if the pen is down, and
// restores the initial heading.
func (t *Turtle) Home() {
	from := t.state
	t.state.X, t.state.Y = t.initial.X, t.initial.Y
	if t.canvas != nil {
		t.canvas.Move(from, t.state)
	}
	t.state.Heading = t.initial.Heading
	t.turned()
}

// Clear resets pose, pen and visibility and wipes the drawing. The
// background colour is kept.
func (t *Turtle) Clear() {
	bg := t.state.Background
	t.state = t.initial
	t.state.Background = bg
	if t.canvas != nil {
		t.canvas.Clear(t.state)
	}
}

// Clean wipes the drawing and leaves the turtle where it is.
func (t *Turtle) Clean() {
	if t.canvas != nil {
		t.canvas.Clear(t.state)
	}
}

func (t *Turtle) HideTurtle() {
	t.state.Visible = false
	if t.canvas != nil {
		t.canvas.Visibility(t.state)
	}
}

func (t *Turtle) ShowTurtle() {
	t.state.Visible = true
	if t.canvas != nil {
		t.canvas.Visibility(t.state)
	}
}

func (t *Turtle) Wait(ms float64) {
	if t.canvas != nil && ms > 0 {
		t.canvas.Wait(time.Duration(ms * float64(time.Millisecond)))
	}
}

// Fill flood-fills the region under the turtle with the pen.
func (t *Turtle) Fill() {
	if t.canvas != nil {
		t.canvas.Fill(t.state)
	}
}

// SetAnimationSpeed clamps speed to 0..100.
func (t *Turtle) SetAnimationSpeed(speed int) {
	speed = max(0, min(100, speed))
	t.speed = speed
	if t.canvas != nil {
		t.canvas.SetSpeed(speed)
	}
}

func (t *Turtle) CancelAnimation() {
	if t.canvas != nil {
		t.canvas.Cancel()
	}
}
