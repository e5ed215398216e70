package game

import "fmt"

// Player identifies a side. Player1 starts on the high rows and advances
// toward row 0; Player2 advances the other way.
type Player int8

const (
	Player1 Player = 1
	Player2 Player = 2
)

func (p Player) String() string {
	return fmt.Sprintf("Player%d", int(p))
}

// Opponent returns the other side.
func (p Player) Opponent() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// Advances reports whether a row change (in half-steps, to minus from) moves
// toward the opponent's side. Sideways steps never advance.
func (p Player) Advances(rowDelta int) bool {
	if p == Player1 {
		return rowDelta < 0
	}
	return rowDelta > 0
}

// Rank is a piece's class in the capture hierarchy.
type Rank int8

const (
	Warrior Rank = 1
	Prince  Rank = 2
	King    Rank = 3
)

func (r Rank) String() string {
	switch r {
	case Warrior:
		return "Warrior"
	case Prince:
		return "Prince"
	case King:
		return "King"
	default:
		return fmt.Sprintf("Rank(%d)", int8(r))
	}
}

// Value is the material value used by NPC evaluation.
func (r Rank) Value() float64 {
	switch r {
	case Warrior:
		return 1.0
	case Prince:
		return 3.0
	case King:
		return 10.0
	default:
		return 0
	}
}

// CanCapture implements the rank hierarchy: a Warrior takes Warriors only,
// a Prince takes Warriors and Princes, a King takes anything.
func CanCapture(attacker, target Rank) bool {
	return attacker >= target
}

// Piece is a rank and an owner. The zero value means an empty node.
type Piece struct {
	Rank  Rank
	Owner Player
}

func (pc Piece) IsEmpty() bool { return pc.Rank == 0 }

// Opposes reports whether both pieces exist and belong to different sides.
func (pc Piece) Opposes(other Piece) bool {
	return !pc.IsEmpty() && !other.IsEmpty() && pc.Owner != other.Owner
}

func (pc Piece) String() string {
	if pc.IsEmpty() {
		return "empty"
	}
	return fmt.Sprintf("%s %s", pc.Owner, pc.Rank)
}
