package engine

import (
	"fmt"

	"dablo/game"

	"github.com/rs/zerolog/log"
)

// Local drives a single in-process game between two agents until the rules
// engine reports a terminal outcome.
type Local struct {
	State  *game.GameState
	Agents map[game.Player]Agent
}

func NewLocal(state *game.GameState, player1, player2 Agent) *Local {
	if state == nil || player1 == nil || player2 == nil {
		panic("engine needs a state and two agents")
	}
	return &Local{
		State: state,
		Agents: map[game.Player]Agent{
			game.Player1: player1,
			game.Player2: player2,
		},
	}
}

// Run loops turn legs (chain-capture continuations included) until the game
// ends, returning the outcome and the per-leg records.
func (e *Local) Run() (game.Outcome, []Record, error) {
	log.Debug().Str("player", e.State.Player()).Msg("game starting")

	var records []Record
	for step := 1; step <= MaxSteps; step++ {
		outcome := e.State.Outcome()
		if outcome.Done() {
			log.Debug().Int("moves", e.State.MoveCount).Msgf("game over: %s", outcome)
			return outcome, records, nil
		}

		mover := e.State.Turn
		move, err := e.Agents[mover].SelectMove(e.State)
		if err != nil {
			return game.Outcome{}, records, fmt.Errorf("agent for %s failed to select: %w", mover, err)
		}

		next, err := e.State.Apply(move)
		if err != nil {
			return game.Outcome{}, records, fmt.Errorf("agent for %s chose an illegal move: %w", mover, err)
		}

		records = append(records, Record{Step: step, Player: mover, Move: move})
		log.Debug().Int("step", step).Str("player", mover.String()).Msgf("played %s", move)
		e.State = next
	}

	return game.Outcome{}, records, fmt.Errorf("no terminal outcome after %d steps", MaxSteps)
}
