// Package perr defines the failures a Pie checker can report.
//
// Recoverable failures are *Stop values returned through the error result
// of every checking operation. Internal invariant violations are panics
// and are not meant to be recovered by callers.
package perr

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/cottand/pie/frontend/core"
	"github.com/cottand/pie/frontend/src"
)

// enableDebugErrorPrinting makes FormatWithCode include the frame that
// created the error
const enableDebugErrorPrinting bool = false

type ErrCode int

const (
	None ErrCode = iota
	ScopeError
	TypeMismatch
	NotSame
	CannotSynth
	WrongShape
	BadName
	Declaration
)

// Stop is a recoverable checking failure at a source location.
//
// Its message is a sequence of parts, each either a string or a core.Core,
// so that callers may render the embedded terms as they see fit.
type Stop struct {
	src.Range
	code    ErrCode
	Message []any
	stack   []byte
}

// New creates a Stop at the location of at.
func New(code ErrCode, at src.Positioner, message ...any) *Stop {
	s := &Stop{
		Range:   src.RangeOf(at),
		code:    code,
		Message: message,
	}
	if enableDebugErrorPrinting {
		s.stack = debug.Stack()
	}
	return s
}

func (s *Stop) Code() ErrCode { return s.code }

// Text renders the message alone, with embedded terms as S-expressions.
func (s *Stop) Text() string {
	parts := make([]string, 0, len(s.Message))
	for _, part := range s.Message {
		switch part := part.(type) {
		case string:
			parts = append(parts, part)
		case core.Core:
			parts = append(parts, core.String(part))
		default:
			parts = append(parts, fmt.Sprint(part))
		}
	}
	return strings.Join(parts, " ")
}

func (s *Stop) Error() string {
	return fmt.Sprintf("at %v: %s", s.Range, s.Text())
}

// Terms returns the Core terms embedded in the message.
func (s *Stop) Terms() []core.Core {
	var terms []core.Core
	for _, part := range s.Message {
		if c, ok := part.(core.Core); ok {
			terms = append(terms, c)
		}
	}
	return terms
}

func FormatWithCode(s *Stop) string {
	if enableDebugErrorPrinting && s.stack != nil {
		stack := strings.Split(string(s.stack), "\n")
		if len(stack) > 6 {
			return fmt.Sprintf("%s:(E%03d) %s", stack[6], s.Code(), s.Error())
		}
	}
	return fmt.Sprintf("(E%03d) %s", s.Code(), s.Error())
}

// DuplicateBinding is the panic value raised when a name is bound twice
// in the same context. Freshening binders before binding them makes this
// unreachable for well-behaved callers.
type DuplicateBinding struct {
	Name string
}

func (e DuplicateBinding) Error() string {
	return fmt.Sprintf("name '%s' is already bound in this context", e.Name)
}
