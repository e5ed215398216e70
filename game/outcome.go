package game

import "fmt"

// Status classifies a state as running or terminal.
type Status uint8

const (
	Ongoing Status = iota
	Won
	Drawn
)

// Reason explains a terminal outcome.
type Reason uint8

const (
	NoReason Reason = iota
	KingCaptured
	LoneKing
	Stalemate
	BothKingsOnly
	MoveLimit
)

func (r Reason) String() string {
	switch r {
	case NoReason:
		return "none"
	case KingCaptured:
		return "king_captured"
	case LoneKing:
		return "lone_king"
	case Stalemate:
		return "stalemate"
	case BothKingsOnly:
		return "both_kings_only"
	case MoveLimit:
		return "move_limit"
	default:
		return fmt.Sprintf("Reason(%d)", uint8(r))
	}
}

// Outcome is the terminal classification of a state.
type Outcome struct {
	Status Status
	Winner Player // set only when Status == Won
	Reason Reason
}

// Done reports whether the game is over.
func (o Outcome) Done() bool { return o.Status != Ongoing }

func (o Outcome) String() string {
	switch o.Status {
	case Won:
		return fmt.Sprintf("%s wins (%s)", o.Winner, o.Reason)
	case Drawn:
		return fmt.Sprintf("draw (%s)", o.Reason)
	default:
		return "ongoing"
	}
}

func win(p Player, r Reason) Outcome { return Outcome{Status: Won, Winner: p, Reason: r} }
func draw(r Reason) Outcome          { return Outcome{Status: Drawn, Reason: r} }

// Outcome evaluates the terminal conditions in precedence order: captured
// king, lone king (or the both-kings draw), stalemate, then the move limit.
// It is pure: evaluating the same state twice yields the same result and
// never changes the state. Mid-chain states are always ongoing since a
// continuation leg exists by construction.
func (gs *GameState) Outcome() Outcome {
	if gs.Pending != nil {
		return Outcome{}
	}

	var counts [3]int // indexed by Player
	var kings [3]bool
	for _, piece := range gs.Occupancy {
		if piece.IsEmpty() {
			continue
		}
		counts[piece.Owner]++
		if piece.Rank == King {
			kings[piece.Owner] = true
		}
	}

	if !kings[Player1] {
		return win(Player2, KingCaptured)
	}
	if !kings[Player2] {
		return win(Player1, KingCaptured)
	}

	if counts[Player1] == 1 && counts[Player2] == 1 {
		return draw(BothKingsOnly)
	}
	if counts[Player1] == 1 {
		return win(Player2, LoneKing)
	}
	if counts[Player2] == 1 {
		return win(Player1, LoneKing)
	}

	if len(gs.LegalMoves()) == 0 {
		return win(gs.Turn.Opponent(), Stalemate)
	}

	if gs.MoveCount >= gs.MoveLimit {
		return draw(MoveLimit)
	}

	return Outcome{}
}
