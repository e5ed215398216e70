package engine

import "dablo/game"

// MaxSteps is a safety cap on turn legs per game, well beyond what any move
// limit allows; hitting it means a rules bug rather than a long game.
const MaxSteps = 10000

// Agent selects a move for the side to move. The rules engine validates
// whatever comes back; an agent cannot bypass legality.
type Agent interface {
	SelectMove(state *game.GameState) (game.Move, error)
}

// Record is one committed move leg of a finished run.
type Record struct {
	Step   int
	Player game.Player
	Move   game.Move
}
