package portset

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("config missing")
	ErrNoDirective   = errors.New("no listen directive found")
	ErrInvalidPort   = errors.New("port must be a positive integer")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrConflict      = errors.New("file changed since last rewrite")
)

// OpError is the generic envelope for I/O failures.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string { return fmt.Sprintf("operation failed: %s: %v", e.Op, e.Err) }
func (e *OpError) Unwrap() error { return e.Err }

type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string { return e.Err.Error() }
func (e *DetailedError) Unwrap() error { return e.Err }
