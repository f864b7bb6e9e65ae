package graph

import (
	"errors"
	"fmt"
)

// Recoverable navigation failures. All leave the session usable and the
// cursor unchanged.
var (
	ErrAtRoot           = errors.New("at root: no parent step")
	ErrAtTerminal       = errors.New("at terminal: no further step")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrUnknownStep      = errors.New("unknown step")
)

// ConstructionError reports an inconsistency between the event stream and
// the transition network. It is the only fatal failure: the graph is
// unusable and navigation is never offered.
type ConstructionError struct {
	StateID int
	Err     error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("graph construction: state %d: %v", e.StateID, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}
