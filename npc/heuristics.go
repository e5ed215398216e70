package npc

import (
	"math"

	"dablo/game"
)

// Evaluation constants shared by all styles. The style weights scale the
// big three features; these fixed terms shape the remainder.
const (
	chainCaptureBonus     = 6.0
	centerControlWeight   = 0.2
	centerBonus           = 0.3
	pieceProtectionWeight = 0.3
	threatCreationWeight  = 0.7
	threatScale           = 0.3
	maxThreatValue        = 3.0
	advanceScale          = 0.5
	minProtectedValue     = 2.0
)

// King safety penalties and bonuses by distance to the nearest enemy piece.
const (
	missingKingPenalty   = -50.0
	captureDangerPenalty = -5.0
	closePenalty         = -4.0
	mediumPenalty        = -2.0
	safeBonus            = 0.2
	verySafeBonus        = 0.5

	immediateDangerDistance = 1.1
	closeDangerDistance     = 1.6
	mediumSafetyDistance    = 2.5
)

// evaluator scores candidate moves for one side under one weight set.
type evaluator struct {
	player game.Player
	w      weights
}

func newEvaluator(player game.Player, profile Profile) evaluator {
	return evaluator{player: player, w: profile.weights()}
}

// Score rates a candidate move by the state it leads to. Higher is better
// for the side to move in prev. next must be prev.Apply(move)'s result.
func (e evaluator) Score(prev *game.GameState, move game.Move, next *game.GameState) float64 {
	score := 0.0

	if move.IsCapture() {
		score += prev.Occupancy[move.Captured].Rank.Value() * e.w.capture

		// A chain in progress is worth its bonus plus the best follow-up.
		if next.Pending != nil {
			score += chainCaptureBonus
			best := 0.0
			for _, leg := range next.LegalMoves() {
				if v := next.Occupancy[leg.Captured].Rank.Value(); v > best {
					best = v
				}
			}
			score += best
		}
	}

	score += e.kingSafety(next) * e.w.kingSafety
	score += e.centerControl(next.Board, move) * centerControlWeight
	score += e.pieceProtection(prev, move, next) * pieceProtectionWeight
	score += e.threatCreation(next) * threatCreationWeight
	score += e.advance(prev.Board, move) * advanceScale * e.w.advance

	return score
}

// kingSafety penalizes positions where the own king is capturable or
// crowded by enemy pieces, and rewards keeping it at distance.
func (e evaluator) kingSafety(state *game.GameState) float64 {
	kingNode := state.KingNode(e.player)
	if kingNode == game.NoNode {
		return missingKingPenalty
	}

	for _, threat := range state.CapturesBy(e.player.Opponent()) {
		if threat.Captured == kingNode {
			return captureDangerPenalty
		}
	}

	king := state.Board.Nodes[kingNode]
	minDist := math.Inf(1)
	for id, piece := range state.Occupancy {
		if piece.IsEmpty() || piece.Owner == e.player {
			continue
		}
		enemy := state.Board.Nodes[id]
		dist := math.Hypot(king.Row()-enemy.Row(), king.Col()-enemy.Col())
		if dist < minDist {
			minDist = dist
		}
	}
	if math.IsInf(minDist, 1) {
		return verySafeBonus
	}

	switch {
	case minDist < immediateDangerDistance:
		return closePenalty
	case minDist < closeDangerDistance:
		return mediumPenalty
	case minDist < mediumSafetyDistance:
		return safeBonus
	default:
		return verySafeBonus
	}
}

// centerControl rewards landing on the central rows and columns.
func (e evaluator) centerControl(board *game.Board, move game.Move) float64 {
	to := board.Nodes[move.To]
	bonus := 0.0
	if to.Row2 >= 4 && to.Row2 <= 6 {
		bonus += centerBonus
	}
	if to.Col2 >= 3 && to.Col2 <= 5 {
		bonus += centerBonus
	}
	return bonus
}

// pieceProtection rewards moving a threatened Prince or King out of danger,
// scaled by the piece's value.
func (e evaluator) pieceProtection(prev *game.GameState, move game.Move, next *game.GameState) float64 {
	piece := prev.Occupancy[move.From]
	if piece.Rank.Value() < minProtectedValue {
		return 0
	}

	before := countThreats(prev, e.player.Opponent(), move.From)
	if before == 0 {
		return 0
	}
	after := countThreats(next, e.player.Opponent(), move.To)

	return float64(before-after) * piece.Rank.Value()
}

func countThreats(state *game.GameState, by game.Player, target game.NodeID) int {
	count := 0
	for _, threat := range state.CapturesBy(by) {
		if threat.Captured == target {
			count++
		}
	}
	return count
}

// threatCreation rewards positions that threaten enemy material, capped so
// speculative threats never outweigh an actual capture.
func (e evaluator) threatCreation(state *game.GameState) float64 {
	value := 0.0
	for _, threat := range state.CapturesBy(e.player) {
		value += state.Occupancy[threat.Captured].Rank.Value()
	}
	return math.Min(value*threatScale, maxThreatValue)
}

// advance measures row progress toward the opponent's side, in rows; moves
// away (possible on capture jumps) count negative.
func (e evaluator) advance(board *game.Board, move game.Move) float64 {
	delta := board.Nodes[move.To].Row2 - board.Nodes[move.From].Row2
	progress := float64(delta) / 2
	if e.player == game.Player1 {
		progress = -progress
	}
	return progress
}
