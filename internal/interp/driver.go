// Package interp wires the lexer, parser, runtime and renderer into a
// runnable pipeline.
package interp

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/arnavsurve/logo/internal/config"
	"github.com/arnavsurve/logo/internal/interp/lexer"
	"github.com/arnavsurve/logo/internal/interp/parser"
	"github.com/arnavsurve/logo/internal/interp/runtime"
	"github.com/arnavsurve/logo/internal/interp/token"
	"github.com/arnavsurve/logo/internal/render"
	"github.com/arnavsurve/logo/internal/turtle"
	"github.com/rs/zerolog/log"
)

// ParseError carries every diagnostic of a submission that did not parse.
type ParseError struct {
	Diagnostics []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parser errors:\n%s", strings.Join(e.Diagnostics, "\n"))
}

type Options struct {
	// Output receives PRINT/SHOW lines and "error: ..." reports.
	Output func(string)
	// Canvas animates the turtle; nil runs without drawing.
	Canvas *render.Animator
	// Initial overrides the turtle's starting state.
	Initial *turtle.State
	// Speed is the starting animation speed, 0..100.
	Speed int
	// BaseDelay is the pause between top-level commands at speed 0. It
	// shrinks linearly to nothing at speed 100.
	BaseDelay time.Duration
	MaxDepth  int
	Rand      *rand.Rand
}

// FromConfig builds session options, with a fresh canvas, from cfg.
func FromConfig(cfg *config.Config, output func(string)) Options {
	initial := cfg.InitialState()
	canvas := render.New(cfg.Canvas.Width, cfg.Canvas.Height, initial.Background,
		render.WithFrame(cfg.Animation.FrameInterval),
		render.WithRealtime(!cfg.Animation.Headless),
		render.WithSpeed(cfg.Animation.Speed),
	)
	return Options{
		Output:    output,
		Canvas:    canvas,
		Initial:   &initial,
		Speed:     cfg.Animation.Speed,
		BaseDelay: cfg.Animation.CommandDelay,
		MaxDepth:  cfg.Limits.MaxDepth,
	}
}

// Session is a persistent interpreter: variables, procedures and the
// turtle survive between submissions.
type Session struct {
	opts   Options
	turtle *turtle.Turtle
	rt     *runtime.Context
	done   bool
}

func NewSession(opts Options) *Session {
	if opts.Output == nil {
		opts.Output = func(string) {}
	}
	s := &Session{opts: opts}
	s.Reset()
	return s
}

// Reset forgets variables and procedures and puts the turtle back home.
func (s *Session) Reset() {
	var topts []turtle.Option
	if s.opts.Canvas != nil {
		s.opts.Canvas.Cancel()
		topts = append(topts, turtle.WithCanvas(s.opts.Canvas))
	}
	if s.opts.Initial != nil {
		topts = append(topts, turtle.WithInitial(*s.opts.Initial))
	}
	s.turtle = turtle.New(topts...)
	s.turtle.SetAnimationSpeed(s.opts.Speed)
	if s.opts.Canvas != nil {
		s.turtle.Clear()
		// Clear is queued; play it so the canvas starts blank.
		_ = s.opts.Canvas.RunUntilIdle(context.Background())
	}

	var ropts []runtime.Option
	if s.opts.MaxDepth > 0 {
		ropts = append(ropts, runtime.WithMaxDepth(s.opts.MaxDepth))
	}
	if s.opts.Rand != nil {
		ropts = append(ropts, runtime.WithRand(s.opts.Rand))
	}
	s.rt = runtime.NewContext(s.turtle, s.opts.Output, ropts...)
	s.done = false
}

func (s *Session) Context() *runtime.Context { return s.rt }
func (s *Session) Turtle() *turtle.Turtle    { return s.turtle }
func (s *Session) Canvas() *render.Animator  { return s.opts.Canvas }

// Done reports whether BYE ended the session.
func (s *Session) Done() bool { return s.done }

// Parse parses src with the session's procedures already known.
func (s *Session) Parse(src string) *runtime.Program {
	return parser.Parse(src, lexer.Tokenize(src), parser.WithProcedures(s.rt.Arities()))
}

// Eval parses and executes src. Parse diagnostics are returned as a
// *ParseError without running anything.
func (s *Session) Eval(ctx context.Context, src string) (*runtime.Program, error) {
	prog := s.Parse(src)
	for _, w := range prog.Warnings {
		log.Warn().Str("phase", "parse").Msg(w)
	}
	if prog.HasErrors() {
		return prog, &ParseError{Diagnostics: prog.Diagnostics}
	}
	return prog, s.Execute(ctx, prog)
}

// Execute runs prog one top-level command at a time: each command's
// animation plays out, then the inter-command delay passes, then the next
// command starts. The first evaluation error stops the run and is reported
// to the output sink.
func (s *Session) Execute(ctx context.Context, prog *runtime.Program) error {
	s.rt.Reset()
	stop := context.AfterFunc(ctx, s.rt.Cancel)
	defer stop()

	start := time.Now()
	signal, err := prog.Run(s.rt, s.pace(ctx))
	if err != nil {
		// Frames queued by the failed command must not play into the next run.
		s.turtle.CancelAnimation()
		s.opts.Output("error: " + err.Error())
		log.Debug().Str("phase", "execute").Err(err).Msg("run failed")
		return err
	}
	if signal == runtime.SignalBye {
		s.done = true
	}
	log.Debug().Str("phase", "execute").Dur("elapsed", time.Since(start)).Str("signal", signal.String()).Msg("run finished")
	return nil
}

// pace drains the animation of the command that just ran and waits the
// inter-command delay for the current speed.
func (s *Session) pace(ctx context.Context) func(runtime.Command) error {
	return func(runtime.Command) error {
		if s.opts.Canvas != nil {
			if err := s.opts.Canvas.RunUntilIdle(ctx); err != nil {
				return err
			}
		}
		delay := time.Duration(100-s.turtle.Speed()) * s.opts.BaseDelay / 100
		if delay <= 0 {
			return ctx.Err()
		}
		select {
		case <-ctx.Done():
			s.turtle.CancelAnimation()
			return ctx.Err()
		case <-time.After(delay):
			return nil
		}
	}
}

// Run is the one-shot pipeline: tokenize, parse, execute in a fresh session.
func Run(ctx context.Context, src string, opts Options) (*Session, *runtime.Program, error) {
	s := NewSession(opts)
	prog, err := s.Eval(ctx, src)
	return s, prog, err
}

// Incomplete reports whether src ends inside an open block, list,
// parenthesis or procedure definition, so an interactive reader should keep
// collecting lines.
func Incomplete(src string) bool {
	brackets, parens, defs := 0, 0, 0
	for _, tok := range lexer.Tokenize(src) {
		switch tok.Type {
		case token.TokenLBracket:
			brackets++
		case token.TokenRBracket:
			brackets--
		case token.TokenLParen:
			parens++
		case token.TokenRParen:
			parens--
		case token.TokenTo:
			defs++
		case token.TokenEnd:
			defs--
		}
	}
	return brackets > 0 || parens > 0 || defs > 0
}
