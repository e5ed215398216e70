package game

import "fmt"

// Move is a single leg of a turn: a step to an empty node, or a jump that
// captures the piece on Captured. Chain marks a continuation leg of a
// multi-capture. Moves are value objects; enumeration produces them and
// nothing mutates them afterwards.
type Move struct {
	From     NodeID
	To       NodeID
	Captured NodeID // NoNode for non-capturing moves
	Chain    bool
}

// IsCapture reports whether the move removes an opposing piece.
func (m Move) IsCapture() bool { return m.Captured != NoNode }

func (m Move) String() string {
	if m.IsCapture() {
		return fmt.Sprintf("%d->%d x%d", m.From, m.To, m.Captured)
	}
	return fmt.Sprintf("%d->%d", m.From, m.To)
}
