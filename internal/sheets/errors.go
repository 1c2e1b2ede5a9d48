package sheets

import (
	"errors"
	"fmt"
)

// Kind classifies a store failure.
type Kind int

const (
	KindTransport Kind = iota
	KindNotFound
	KindAuth
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindAuth:
		return "authentication failed"
	case KindMalformed:
		return "malformed response"
	default:
		return "transport failure"
	}
}

// Error is returned by every Store operation that fails against the backend.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the kind sentinels below, so errors.Is(err, ErrAuth) works on any wrapped *Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Op != "" || t.Err != nil {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrTransport = &Error{Kind: KindTransport}
	ErrNotFound  = &Error{Kind: KindNotFound}
	ErrAuth      = &Error{Kind: KindAuth}
	ErrMalformed = &Error{Kind: KindMalformed}
)

// ErrRowNotFound means no data row held the value in the searched column.
// It is not a backend failure.
var ErrRowNotFound = errors.New("value not found in sheet")

func newError(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}
