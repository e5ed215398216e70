package game

import "fmt"

// TopologyError reports a malformed board definition. It is fatal: a board
// that fails construction is never usable.
type TopologyError struct {
	Topology string
	Reason   string
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("topology %q: %s", e.Topology, e.Reason)
}

// IllegalMoveError reports an Apply call with a move that is not in the
// state's legal move set. The caller may re-select and retry.
type IllegalMoveError struct {
	Move Move
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s", e.Move)
}

// PreconditionError reports a caller bug: an operation invoked on a state
// that does not admit it (e.g. applying a move to a finished game).
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}
