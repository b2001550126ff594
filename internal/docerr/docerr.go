// Package docerr defines the error taxonomy surfaced by the decoder.
package docerr

import "fmt"

// Kind classifies an error the way the driver reacts to it: the first
// three kinds abort the whole session, UnknownSprm only aborts the
// enclosing grpprl, IoError aborts the session.
type Kind int

const (
	Container Kind = iota
	Format
	OutOfRange
	UnknownSprm
	Io
)

func (k Kind) String() string {
	switch k {
	case Container:
		return "ContainerError"
	case Format:
		return "FormatError"
	case OutOfRange:
		return "OutOfRange"
	case UnknownSprm:
		return "UnknownSprm"
	case Io:
		return "IoError"
	default:
		return "UnknownError"
	}
}

// Error wraps an underlying cause with the decoder's error kind.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("msdoc: %s: %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("msdoc: %s: %s", e.Kind, e.Op)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Fatal reports whether an error of this kind aborts the whole session
// rather than only the current grpprl/style resolution.
func (k Kind) Fatal() bool {
	return k != UnknownSprm
}
