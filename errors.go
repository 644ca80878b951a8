package paneflow

import (
	"errors"
	"fmt"
)

// ErrNoPanes is returned when a flow is triggered or started without
// any configured panes.
var ErrNoPanes = errors.New("flow has no panes")

// UnknownEventError reports a registry event with a kind outside the
// closed {register, deregister} set. It indicates a programming error
// in the caller, not a runtime failure.
type UnknownEventError struct {
	Kind EventKind
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("unknown registry event kind %d", int(e.Kind))
}
