package game

import (
	"encoding/binary"
	"hash/fnv"

	"dablo/utils"
)

// ChainContext tracks an in-progress mandatory multi-capture: the capturing
// piece's current node, the node it jumped from on the previous leg (a
// continuation may not land back there), and the piece identity. It exists
// only between the legs of a chain; committed states carry nil.
type ChainContext struct {
	Node   NodeID
	Origin NodeID
	Rank   Rank
	Owner  Player
}

// GameState is the dynamic game position: everything that changes while the
// board graph stays fixed. Apply is the only operation that advances it, and
// it returns a new state rather than mutating in place.
type GameState struct {
	Board     *Board
	Occupancy []Piece // indexed by NodeID; zero Piece means empty
	Turn      Player
	MoveCount int
	MoveLimit int
	Pending   *ChainContext
}

// NewGame creates the initial state for a fresh game.
func NewGame(cfg Config) (*GameState, error) {
	cfg = cfg.withDefaults()
	board, err := BoardFor(cfg.Topology)
	if err != nil {
		return nil, err
	}

	gs := &GameState{
		Board:     board,
		Occupancy: make([]Piece, len(board.Nodes)),
		Turn:      Player1,
		MoveLimit: cfg.MoveLimit,
	}
	for _, p := range []Player{Player1, Player2} {
		for _, pl := range standardSetup(p) {
			id, ok := board.at(pl.row2, pl.col2)
			if !ok {
				return nil, &TopologyError{Topology: cfg.Topology, Reason: "initial setup position off the board"}
			}
			gs.Occupancy[id] = Piece{Rank: pl.rank, Owner: p}
		}
	}
	return gs, nil
}

// NewGameFromPosition creates a state with an arbitrary occupancy and side
// to move. Intended for analysis and tests; play from then on goes through
// Apply as usual.
func NewGameFromPosition(cfg Config, pieces map[NodeID]Piece, turn Player) (*GameState, error) {
	cfg = cfg.withDefaults()
	board, err := BoardFor(cfg.Topology)
	if err != nil {
		return nil, err
	}

	gs := &GameState{
		Board:     board,
		Occupancy: make([]Piece, len(board.Nodes)),
		Turn:      turn,
		MoveLimit: cfg.MoveLimit,
	}
	for id, piece := range pieces {
		if id < 0 || int(id) >= len(board.Nodes) {
			return nil, &TopologyError{Topology: cfg.Topology, Reason: "piece placed on undefined node"}
		}
		gs.Occupancy[id] = piece
	}
	return gs, nil
}

// Copy returns a deep copy sharing only the immutable board.
func (gs *GameState) Copy() *GameState {
	occupancy := make([]Piece, len(gs.Occupancy))
	copy(occupancy, gs.Occupancy)

	var pending *ChainContext
	if gs.Pending != nil {
		p := *gs.Pending
		pending = &p
	}

	return &GameState{
		Board:     gs.Board,
		Occupancy: occupancy,
		Turn:      gs.Turn,
		MoveCount: gs.MoveCount,
		MoveLimit: gs.MoveLimit,
		Pending:   pending,
	}
}

// Player returns the identifier of the side to move.
func (gs *GameState) Player() string {
	return gs.Turn.String()
}

// StateHash is a position fingerprint for delta tracking and tests.
type StateHash uint64

func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(gs.Turn))
	binary.Write(hasher, binary.LittleEndian, int64(gs.MoveCount))
	for _, piece := range gs.Occupancy {
		binary.Write(hasher, binary.LittleEndian, int64(piece.Rank))
		binary.Write(hasher, binary.LittleEndian, int64(piece.Owner))
	}
	if gs.Pending != nil {
		binary.Write(hasher, binary.LittleEndian, int64(gs.Pending.Node))
		binary.Write(hasher, binary.LittleEndian, int64(gs.Pending.Origin))
	}

	return StateHash(hasher.Sum64())
}

// LegalMoves returns every move the side to move may make. Mid-chain it
// returns only the forced continuations of the capturing piece. Otherwise
// captures are mandatory across the whole side: if any piece can capture,
// only capturing moves are returned.
func (gs *GameState) LegalMoves() []Move {
	if gs.Pending != nil {
		return gs.continuations()
	}

	var captures []Move
	for id, piece := range gs.Occupancy {
		if piece.IsEmpty() || piece.Owner != gs.Turn {
			continue
		}
		captures = append(captures, gs.captureMoves(NodeID(id), NoNode, false)...)
	}
	if len(captures) > 0 {
		return captures
	}

	var quiet []Move
	for id, piece := range gs.Occupancy {
		if piece.IsEmpty() || piece.Owner != gs.Turn {
			continue
		}
		quiet = append(quiet, gs.quietMoves(NodeID(id))...)
	}
	return quiet
}

// continuations returns the remaining capture legs of the pending chain.
func (gs *GameState) continuations() []Move {
	return gs.captureMoves(gs.Pending.Node, gs.Pending.Origin, true)
}

// captureMoves enumerates the jumps available to the piece on from. Captures
// ignore the forward rule: a piece may jump in any direction. A landing on
// exclude is suppressed (no immediate return to the previous leg's origin).
func (gs *GameState) captureMoves(from, exclude NodeID, chain bool) []Move {
	attacker := gs.Occupancy[from]
	var moves []Move
	for k, over := range gs.Board.adjacent[from] {
		target := gs.Occupancy[over]
		if !attacker.Opposes(target) || !CanCapture(attacker.Rank, target.Rank) {
			continue
		}
		land := gs.Board.landing[from][k]
		if land == NoNode || land == exclude || !gs.Occupancy[land].IsEmpty() {
			continue
		}
		moves = append(moves, Move{From: from, To: land, Captured: over, Chain: chain})
	}
	return moves
}

// quietMoves enumerates the non-capturing moves of the piece on from:
// adjacent, empty, and strictly toward the opponent's side.
func (gs *GameState) quietMoves(from NodeID) []Move {
	piece := gs.Occupancy[from]
	node := gs.Board.Nodes[from]
	var moves []Move
	for _, to := range gs.Board.adjacent[from] {
		if !gs.Occupancy[to].IsEmpty() {
			continue
		}
		if !piece.Owner.Advances(gs.Board.Nodes[to].Row2 - node.Row2) {
			continue
		}
		moves = append(moves, Move{From: from, To: to, Captured: NoNode})
	}
	return moves
}

// CapturesBy enumerates the capturing moves player could make if it were to
// move, regardless of whose turn it is. Read-only threat analysis for the
// NPC heuristics; chain context is ignored.
func (gs *GameState) CapturesBy(player Player) []Move {
	var moves []Move
	for id, piece := range gs.Occupancy {
		if piece.IsEmpty() || piece.Owner != player {
			continue
		}
		moves = append(moves, gs.captureMoves(NodeID(id), NoNode, false)...)
	}
	return moves
}

// KingNode returns the node of player's king, or NoNode if it was captured.
func (gs *GameState) KingNode(player Player) NodeID {
	for id, piece := range gs.Occupancy {
		if piece.Rank == King && piece.Owner == player {
			return NodeID(id)
		}
	}
	return NoNode
}

// Apply validates move against LegalMoves and returns the resulting state.
// After a capture that leaves the same piece further captures, the returned
// state carries a pending chain and the turn and move count are unchanged;
// otherwise the turn flips and the move count advances. The receiver is
// never modified.
func (gs *GameState) Apply(move Move) (*GameState, error) {
	if gs.Outcome().Done() {
		return nil, &PreconditionError{Op: "apply", Reason: "game already has a terminal outcome"}
	}
	if utils.FindIndex(gs.LegalMoves(), move) < 0 {
		return nil, &IllegalMoveError{Move: move}
	}

	next := gs.Copy()
	piece := next.Occupancy[move.From]
	next.Occupancy[move.From] = Piece{}
	if move.IsCapture() {
		next.Occupancy[move.Captured] = Piece{}
	}
	next.Occupancy[move.To] = piece

	if move.IsCapture() && len(next.captureMoves(move.To, move.From, true)) > 0 {
		next.Pending = &ChainContext{
			Node:   move.To,
			Origin: move.From,
			Rank:   piece.Rank,
			Owner:  piece.Owner,
		}
		return next, nil
	}

	next.Pending = nil
	next.Turn = next.Turn.Opponent()
	next.MoveCount++
	return next, nil
}
