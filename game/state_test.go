package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// position builds a state from traditional coordinates with the default
// config and an overridable move limit.
func position(t *testing.T, turn Player, limit int, pieces map[[2]float64]Piece) *GameState {
	t.Helper()
	board, err := BoardFor(StandardTopology)
	require.NoError(t, err)

	byID := map[NodeID]Piece{}
	for at, piece := range pieces {
		byID[node(t, board, at[0], at[1])] = piece
	}
	gs, err := NewGameFromPosition(Config{MoveLimit: limit}, byID, turn)
	require.NoError(t, err)
	return gs
}

func TestNewGame(t *testing.T) {
	gs, err := NewGame(DefaultConfig())
	require.NoError(t, err)

	t.Run("placing sixteen pieces per side", func(t *testing.T) {
		counts := map[Player]int{}
		kings := map[Player]int{}
		princes := map[Player]int{}
		for _, piece := range gs.Occupancy {
			if piece.IsEmpty() {
				continue
			}
			counts[piece.Owner]++
			switch piece.Rank {
			case King:
				kings[piece.Owner]++
			case Prince:
				princes[piece.Owner]++
			}
		}
		for _, p := range []Player{Player1, Player2} {
			require.Equal(t, 16, counts[p], "%s should start with 16 pieces", p)
			require.Equal(t, 1, kings[p], "%s should start with one king", p)
			require.Equal(t, 1, princes[p], "%s should start with one prince", p)
		}
	})

	t.Run("mirroring the two sides", func(t *testing.T) {
		for id, piece := range gs.Occupancy {
			if piece.IsEmpty() || piece.Owner != Player1 {
				continue
			}
			n := gs.Board.Nodes[id]
			mirror := node(t, gs.Board, 5-n.Row(), 4-n.Col())
			require.Equal(t, Piece{Rank: piece.Rank, Owner: Player2}, gs.Occupancy[mirror],
				"Player2 should hold the point reflection of every Player1 piece")
		}
	})

	t.Run("starting with Player1 to move", func(t *testing.T) {
		require.Equal(t, Player1, gs.Turn)
		require.Zero(t, gs.MoveCount)
		require.Nil(t, gs.Pending, "A fresh game has no chain in progress")
	})
}

func TestLegalMovesOpening(t *testing.T) {
	gs, err := NewGame(DefaultConfig())
	require.NoError(t, err)

	moves := gs.LegalMoves()

	require.Len(t, moves, 13, "Opening position should offer exactly 13 quiet moves")
	for _, move := range moves {
		require.False(t, move.IsCapture(), "No captures exist in the opening position")
		from, to := gs.Board.Nodes[move.From], gs.Board.Nodes[move.To]
		require.Less(t, to.Row2, from.Row2, "Quiet moves must advance toward the opponent")
		require.Equal(t, gs.Turn, gs.Occupancy[move.From].Owner, "Only the side to move may move")
	}
}

func TestLegalMovesMandatoryCapture(t *testing.T) {
	t.Run("suppressing quiet moves when any piece can capture", func(t *testing.T) {
		gs := position(t, Player1, 0, map[[2]float64]Piece{
			{5, 0}:     {Rank: King, Owner: Player1},
			{3, 2}:     {Rank: Warrior, Owner: Player1},
			{2.5, 1.5}: {Rank: Warrior, Owner: Player2},
			{0, 0}:     {Rank: King, Owner: Player2},
		})

		moves := gs.LegalMoves()

		require.Len(t, moves, 1, "Capture availability should suppress every quiet move")
		require.True(t, moves[0].IsCapture())
		require.Equal(t, node(t, gs.Board, 2.5, 1.5), moves[0].Captured)
		require.Equal(t, node(t, gs.Board, 2, 1), moves[0].To, "Jump should land past the captured piece")
	})

	t.Run("allowing captures against the forward direction", func(t *testing.T) {
		gs := position(t, Player1, 0, map[[2]float64]Piece{
			{5, 0}:     {Rank: King, Owner: Player1},
			{2, 2}:     {Rank: Warrior, Owner: Player1},
			{2.5, 2.5}: {Rank: Warrior, Owner: Player2},
			{0, 0}:     {Rank: King, Owner: Player2},
		})

		moves := gs.LegalMoves()

		require.Len(t, moves, 1)
		require.Equal(t, node(t, gs.Board, 3, 3), moves[0].To,
			"Captures may jump away from the opponent's side")
	})

	t.Run("blocking captures whose landing is occupied", func(t *testing.T) {
		gs := position(t, Player1, 0, map[[2]float64]Piece{
			{5, 0}:     {Rank: King, Owner: Player1},
			{3, 2}:     {Rank: Warrior, Owner: Player1},
			{2.5, 1.5}: {Rank: Warrior, Owner: Player2},
			{2, 1}:     {Rank: Warrior, Owner: Player2},
			{0, 0}:     {Rank: King, Owner: Player2},
		})

		for _, move := range gs.LegalMoves() {
			require.False(t, move.IsCapture(), "A blocked landing should disable the jump")
		}
	})
}

func TestLegalMovesRankHierarchy(t *testing.T) {
	t.Run("forbidding a warrior from capturing a prince", func(t *testing.T) {
		gs := position(t, Player1, 0, map[[2]float64]Piece{
			{5, 0}:     {Rank: King, Owner: Player1},
			{3, 2}:     {Rank: Warrior, Owner: Player1},
			{2.5, 1.5}: {Rank: Prince, Owner: Player2},
			{0, 0}:     {Rank: King, Owner: Player2},
		})

		for _, move := range gs.LegalMoves() {
			require.False(t, move.IsCapture(), "A warrior cannot capture a higher rank")
		}
	})

	t.Run("allowing a king to capture any rank", func(t *testing.T) {
		gs := position(t, Player1, 0, map[[2]float64]Piece{
			{3, 2}:     {Rank: King, Owner: Player1},
			{2.5, 1.5}: {Rank: Prince, Owner: Player2},
			{2.5, 2.5}: {Rank: Warrior, Owner: Player2},
			{0, 4}:     {Rank: King, Owner: Player2},
		})

		captured := map[NodeID]bool{}
		for _, move := range gs.LegalMoves() {
			require.True(t, move.IsCapture())
			captured[move.Captured] = true
		}
		require.True(t, captured[node(t, gs.Board, 2.5, 1.5)], "King should be able to capture the prince")
		require.True(t, captured[node(t, gs.Board, 2.5, 2.5)], "King should be able to capture the warrior")
	})
}

func TestApply(t *testing.T) {
	t.Run("committing a quiet move", func(t *testing.T) {
		gs, err := NewGame(DefaultConfig())
		require.NoError(t, err)
		move := gs.LegalMoves()[0]
		before := gs.Hash()

		next, err := gs.Apply(move)
		require.NoError(t, err)

		require.True(t, next.Occupancy[move.From].IsEmpty(), "Origin should be vacated")
		require.Equal(t, gs.Occupancy[move.From], next.Occupancy[move.To], "Piece should arrive intact")
		require.Equal(t, Player2, next.Turn, "Turn should pass to the opponent")
		require.Equal(t, 1, next.MoveCount)
		require.Equal(t, before, gs.Hash(), "Apply must not modify the receiver")
		require.Equal(t, gs.Occupancy[move.From].Owner, Player1, "Receiver occupancy should be untouched")
	})

	t.Run("rejecting a move that is not legal", func(t *testing.T) {
		gs, err := NewGame(DefaultConfig())
		require.NoError(t, err)

		_, err = gs.Apply(Move{From: 0, To: 1, Captured: NoNode})

		var illegal *IllegalMoveError
		require.ErrorAs(t, err, &illegal, "Apply should reject moves outside LegalMoves")
	})

	t.Run("rejecting moves on a finished game", func(t *testing.T) {
		gs := position(t, Player1, 0, map[[2]float64]Piece{
			{5, 0}: {Rank: King, Owner: Player1},
			{4, 0}: {Rank: Warrior, Owner: Player1},
			{0, 0}: {Rank: Warrior, Owner: Player2},
		})
		require.True(t, gs.Outcome().Done(), "Position without the Player2 king is terminal")

		_, err := gs.Apply(Move{From: 0, To: 1, Captured: NoNode})

		var precondition *PreconditionError
		require.ErrorAs(t, err, &precondition, "Apply should refuse to advance a terminal state")
	})
}

func TestApplyChainCapture(t *testing.T) {
	// A warrior jump from (4,0) over (3.5,0.5) lands on (3,1), where a second
	// jump over (2.5,1.5) lands on (2,2).
	start := map[[2]float64]Piece{
		{5, 4}:     {Rank: King, Owner: Player1},
		{4, 0}:     {Rank: Warrior, Owner: Player1},
		{3.5, 0.5}: {Rank: Warrior, Owner: Player2},
		{2.5, 1.5}: {Rank: Warrior, Owner: Player2},
		{0, 0}:     {Rank: King, Owner: Player2},
		{0, 4}:     {Rank: Warrior, Owner: Player2},
	}

	gs := position(t, Player1, 0, start)
	moves := gs.LegalMoves()
	require.Len(t, moves, 1, "The first chain leg is the only legal move")

	mid, err := gs.Apply(moves[0])
	require.NoError(t, err)

	t.Run("holding the turn open mid-chain", func(t *testing.T) {
		require.NotNil(t, mid.Pending, "A follow-up capture should leave a pending chain")
		require.Equal(t, node(t, mid.Board, 3, 1), mid.Pending.Node)
		require.Equal(t, node(t, mid.Board, 4, 0), mid.Pending.Origin)
		require.Equal(t, Player1, mid.Turn, "Turn must not pass mid-chain")
		require.Zero(t, mid.MoveCount, "Move count advances only when the turn commits")
		require.False(t, mid.Outcome().Done(), "Mid-chain states are never terminal")
	})

	t.Run("forcing the chain continuation", func(t *testing.T) {
		legs := mid.LegalMoves()

		require.Len(t, legs, 1, "Only the capturing piece's continuations are legal mid-chain")
		require.True(t, legs[0].Chain, "Continuation legs should be marked as chain moves")
		require.Equal(t, mid.Pending.Node, legs[0].From)
		require.NotEqual(t, mid.Pending.Origin, legs[0].To, "A continuation may not land back on its origin")
		require.Equal(t, node(t, mid.Board, 2.5, 1.5), legs[0].Captured)
	})

	t.Run("committing the turn once the chain ends", func(t *testing.T) {
		done, err := mid.Apply(mid.LegalMoves()[0])
		require.NoError(t, err)

		require.Nil(t, done.Pending, "Chain should close when no capture remains")
		require.Equal(t, Player2, done.Turn)
		require.Equal(t, 1, done.MoveCount, "A multi-capture chain commits as a single move")
		require.True(t, done.Occupancy[node(t, done.Board, 3.5, 0.5)].IsEmpty(), "Both captured pieces should be gone")
		require.True(t, done.Occupancy[node(t, done.Board, 2.5, 1.5)].IsEmpty(), "Both captured pieces should be gone")
	})
}

func TestHash(t *testing.T) {
	t.Run("agreeing on identical positions", func(t *testing.T) {
		a, err := NewGame(DefaultConfig())
		require.NoError(t, err)
		b, err := NewGame(DefaultConfig())
		require.NoError(t, err)

		require.Equal(t, a.Hash(), b.Hash(), "Equal positions should hash equal")
	})

	t.Run("diverging after a move", func(t *testing.T) {
		gs, err := NewGame(DefaultConfig())
		require.NoError(t, err)
		next, err := gs.Apply(gs.LegalMoves()[0])
		require.NoError(t, err)

		require.NotEqual(t, gs.Hash(), next.Hash(), "A move should change the position fingerprint")
	})
}

func TestCapturesBy(t *testing.T) {
	gs := position(t, Player1, 0, map[[2]float64]Piece{
		{5, 0}:     {Rank: King, Owner: Player1},
		{3, 2}:     {Rank: Warrior, Owner: Player1},
		{2.5, 1.5}: {Rank: Warrior, Owner: Player2},
		{0, 0}:     {Rank: King, Owner: Player2},
	})

	threats := gs.CapturesBy(Player2)

	require.Len(t, threats, 1, "Threat analysis should see the idle side's captures")
	require.Equal(t, node(t, gs.Board, 3, 2), threats[0].Captured,
		"Player2's warrior threatens the Player1 warrior regardless of whose turn it is")
}
