// Package render animates turtle effects onto an RGBA raster. Effects are
// queued as tasks and played one at a time, a frame per Tick.
package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"

	"github.com/arnavsurve/logo/internal/turtle"
	"github.com/rs/zerolog/log"
)

// Task is one queued animation. It must call done exactly once, possibly
// from a later frame.
type Task func(done func())

const DefaultFrame = 16 * time.Millisecond

var ErrStalled = errors.New("animation stalled: a task is in flight with no pending frame")

// Animator owns the raster and the animation queue. It implements
// turtle.Canvas. It is not safe for concurrent use.
type Animator struct {
	img    *image.RGBA
	width  int
	height int

	queue      []Task
	busy       bool
	pumping    bool
	generation int
	frames     []func()

	clock    time.Duration // virtual time, advanced one frame per Tick
	frame    time.Duration
	realtime bool
	speed    int

	sprite *sprite
	saved  *image.RGBA // raster under the sprite, nil when not drawn
}

type Option func(*Animator)

// WithFrame sets how much virtual time one Tick represents.
func WithFrame(d time.Duration) Option {
	return func(a *Animator) {
		if d > 0 {
			a.frame = d
		}
	}
}

// WithRealtime paces RunUntilIdle with a wall-clock ticker.
func WithRealtime(on bool) Option {
	return func(a *Animator) { a.realtime = on }
}

func WithSpeed(speed int) Option {
	return func(a *Animator) { a.speed = max(0, min(100, speed)) }
}

func New(width, height int, background color.RGBA, opts ...Option) *Animator {
	a := &Animator{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		width:  width,
		height: height,
		frame:  DefaultFrame,
		speed:  50,
		sprite: newSprite(),
	}
	for _, opt := range opts {
		opt(a)
	}
	draw.Draw(a.img, a.img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	return a
}

// --- Queue ---

// Enqueue appends a task. When nothing is in flight it starts at once.
func (a *Animator) Enqueue(t Task) {
	a.queue = append(a.queue, t)
	a.pump()
}

// pump starts queued tasks while nothing is in flight. Tasks that finish
// synchronously are chained in the loop rather than by recursion.
func (a *Animator) pump() {
	if a.pumping {
		return
	}
	a.pumping = true
	defer func() { a.pumping = false }()

	for !a.busy && len(a.queue) > 0 {
		task := a.queue[0]
		a.queue = a.queue[1:]
		a.busy = true
		gen := a.generation
		task(func() {
			if gen != a.generation {
				return
			}
			a.busy = false
			a.pump()
		})
	}
}

// requestFrame schedules fn for the next Tick.
func (a *Animator) requestFrame(fn func()) {
	a.frames = append(a.frames, fn)
}

// Tick plays one frame: every callback requested before the tick runs, then
// the virtual clock advances by one frame.
func (a *Animator) Tick() {
	frames := a.frames
	a.frames = nil
	for _, fn := range frames {
		fn()
	}
	a.clock += a.frame
	log.Trace().Str("phase", "render").Dur("clock", a.clock).Int("queued", len(a.queue)).Msg("frame")
}

// Idle reports whether the queue is drained and nothing is in flight.
func (a *Animator) Idle() bool {
	return !a.busy && len(a.queue) == 0 && len(a.frames) == 0
}

// RunUntilIdle ticks until every queued task has finished. A canceled ctx
// cancels the animation and returns the context's error.
func (a *Animator) RunUntilIdle(ctx context.Context) error {
	var tick <-chan time.Time
	if a.realtime {
		ticker := time.NewTicker(a.frame)
		defer ticker.Stop()
		tick = ticker.C
	}
	for !a.Idle() {
		if len(a.frames) == 0 {
			return ErrStalled
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				a.Cancel()
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			a.Cancel()
			return err
		}
		a.Tick()
	}
	return nil
}

// Cancel drops queued tasks and pending frames. Effects already drawn stay.
func (a *Animator) Cancel() {
	a.generation++
	a.queue = nil
	a.frames = nil
	a.busy = false
	log.Debug().Str("phase", "render").Msg("animation canceled")
}

// Now is the virtual clock.
func (a *Animator) Now() time.Duration {
	return a.clock
}

// --- turtle.Canvas ---

// Move animates a straight move, stroking it when the pen is down.
func (a *Animator) Move(from, to turtle.State) {
	a.Enqueue(func(done func()) {
		dx, dy := to.X-from.X, to.Y-from.Y
		steps := motionSteps(dx, dy, a.speed)
		visited := map[image.Point]bool{}
		i := 0
		var step func()
		step = func() {
			i++
			t0 := float64(i-1) / float64(steps)
			t1 := float64(i) / float64(steps)
			x0, y0 := from.X+dx*t0, from.Y+dy*t0
			x1, y1 := from.X+dx*t1, from.Y+dy*t1

			a.eraseSprite()
			if to.PenDown {
				a.stroke(a.toRaster(x0, y0), a.toRaster(x1, y1), to, visited)
			}
			cur := to
			cur.X, cur.Y = x1, y1
			a.drawSprite(cur)

			if i < steps {
				a.requestFrame(step)
				return
			}
			done()
		}
		a.requestFrame(step)
	})
}

// motionSteps is clamp(max(|dx|, |dy|), 5, speed*5), at least 5.
func motionSteps(dx, dy float64, speed int) int {
	n := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	return max(5, min(n, speed*5))
}

// single queues a one-frame task.
func (a *Animator) single(fn func()) {
	a.Enqueue(func(done func()) {
		a.requestFrame(func() {
			fn()
			done()
		})
	})
}

func (a *Animator) Turn(s turtle.State) {
	a.single(func() {
		a.eraseSprite()
		a.drawSprite(s)
	})
}

func (a *Animator) Visibility(s turtle.State) {
	a.single(func() {
		a.eraseSprite()
		a.drawSprite(s)
	})
}

// Fill flood-fills from the turtle position with the pen.
func (a *Animator) Fill(s turtle.State) {
	a.single(func() {
		a.eraseSprite()
		fill := s.PenColor
		if s.PenMode == turtle.PenErase {
			fill = s.Background
		}
		FloodFill(a.img, a.toRaster(s.X, s.Y), fill, s.PenMode == turtle.PenReverse)
		a.drawSprite(s)
	})
}

func (a *Animator) Clear(s turtle.State) {
	a.single(func() {
		a.saved = nil
		draw.Draw(a.img, a.img.Bounds(), image.NewUniform(s.Background), image.Point{}, draw.Src)
		a.drawSprite(s)
	})
}

// Background repaints every pixel of the old background colour.
func (a *Animator) Background(old color.RGBA, s turtle.State) {
	a.single(func() {
		a.eraseSprite()
		replaceColor(a.img, old, s.Background)
		a.drawSprite(s)
	})
}

// Wait holds the queue until the virtual clock passes the deadline.
func (a *Animator) Wait(d time.Duration) {
	a.Enqueue(func(done func()) {
		deadline := a.clock + d
		var check func()
		check = func() {
			if a.clock >= deadline {
				done()
				return
			}
			a.requestFrame(check)
		}
		a.requestFrame(check)
	})
}

// SetSpeed applies to moves queued after it.
func (a *Animator) SetSpeed(speed int) {
	a.Enqueue(func(done func()) {
		a.speed = max(0, min(100, speed))
		done()
	})
}

// --- Raster ---

// toRaster maps logical coordinates (origin at the centre, y up) to pixels.
func (a *Animator) toRaster(x, y float64) image.Point {
	return image.Pt(
		int(math.Round(x+float64(a.width)/2)),
		int(math.Round(float64(a.height)/2-y)),
	)
}

// Image returns a copy of the raster without the turtle sprite.
func (a *Animator) Image() *image.RGBA {
	out := image.NewRGBA(a.img.Bounds())
	draw.Draw(out, out.Bounds(), a.img, image.Point{}, draw.Src)
	if a.saved != nil {
		draw.Draw(out, a.saved.Bounds(), a.saved, a.saved.Bounds().Min, draw.Src)
	}
	return out
}

// At reads a raster pixel at logical coordinates, ignoring the sprite.
func (a *Animator) At(x, y float64) color.RGBA {
	p := a.toRaster(x, y)
	if a.saved != nil && p.In(a.saved.Bounds()) {
		return a.saved.RGBAAt(p.X, p.Y)
	}
	return a.img.RGBAAt(p.X, p.Y)
}
