package runtime

import (
	"errors"
	"fmt"

	"github.com/arnavsurve/logo/internal/interp/token"
)

var (
	ErrUndefinedVariable      = errors.New("undefined variable")
	ErrUndefinedProcedure     = errors.New("undefined procedure")
	ErrType                   = errors.New("type mismatch")
	ErrDivisionByZero         = errors.New("division by zero")
	ErrEmpty                  = errors.New("empty input")
	ErrRange                  = errors.New("value out of range")
	ErrNoValue                = errors.New("command did not return a value when one was expected")
	ErrNoOutput               = errors.New("procedure does not output a value")
	ErrOutputOutsideProcedure = errors.New("OUTPUT can only be used inside a procedure")
	ErrRecursionDepth         = errors.New("maximum procedure depth exceeded")
	ErrCanceled               = errors.New("execution canceled")
)

// errBye carries a BYE signal out of an expression. Commands turn it back
// into SignalBye before returning.
var errBye = errors.New("bye")

// Error is an evaluation failure attributed to the innermost command that
// raised it.
type Error struct {
	Command string
	Tok     token.Token
	Err     error
}

func (e *Error) Error() string {
	if e.Tok.Line > 0 {
		return fmt.Sprintf("%d:%d: %s: %v", e.Tok.Line, e.Tok.Column, e.Command, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError attributes err to a command unless an inner command already
// claimed it.
func wrapError(command string, tok token.Token, err error) error {
	var evalErr *Error
	if errors.As(err, &evalErr) || errors.Is(err, errBye) || errors.Is(err, ErrCanceled) {
		return err
	}
	return &Error{Command: command, Tok: tok, Err: err}
}

func typeError(want string, got Value) error {
	return fmt.Errorf("%w: expected %s, got %s %s", ErrType, want, got.Kind, got.Source())
}
