package npc

import (
	"math"
	"runtime"
	"sync"
	"time"

	"dablo/experiments/metrics"
	"dablo/game"

	"golang.org/x/exp/rand"
)

type Option func(npc *NPC)

// WithRand sets the randomness source; inject a seeded source for
// reproducible play.
func WithRand(rng *rand.Rand) Option {
	return func(n *NPC) {
		if rng != nil {
			n.rng = rng
		}
	}
}

// WithParallelism sets the number of goroutines scoring candidate moves.
func WithParallelism(goroutines int) Option {
	return func(n *NPC) {
		if goroutines > 0 {
			n.goroutines = goroutines
		}
	}
}

// WithMetrics enables per-decision metrics collection.
func WithMetrics() Option {
	return func(n *NPC) {
		n.metrics = metrics.NewCollector()
		n.collect = true
	}
}

// NPC selects moves for one side under a strategy/difficulty profile. It is
// a pure consumer of the rules engine: every candidate goes through
// LegalMoves and Apply, never around them. One NPC serves one game at a
// time; concurrent games each get their own instance.
type NPC struct {
	profile    Profile
	rng        *rand.Rand
	goroutines int
	metrics    metrics.Collector
	collect    bool
	history    []metrics.DecisionMetric
}

func New(profile Profile, options ...Option) *NPC {
	n := &NPC{
		profile:    profile,
		goroutines: runtime.NumCPU(),
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(n)
	}
	if n.rng == nil {
		n.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return n
}

func (n *NPC) Profile() Profile { return n.profile }

// History returns the decision metrics collected so far, in decision order.
// Empty unless the NPC was built WithMetrics.
func (n *NPC) History() []metrics.DecisionMetric { return n.history }

// SelectMove picks one of the state's legal moves. Callers must check the
// state's Outcome first: selecting from a position with no legal moves is a
// precondition violation, not a pass.
func (n *NPC) SelectMove(state *game.GameState) (game.Move, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, &game.PreconditionError{
			Op:     "select move",
			Reason: "no legal moves available; check Outcome before selecting",
		}
	}

	n.metrics.Start(len(moves))
	move := n.decide(state, moves)
	if n.collect {
		n.history = append(n.history, n.metrics.Complete())
	}
	return move, nil
}

func (n *NPC) decide(state *game.GameState, moves []game.Move) game.Move {
	if n.profile.Style == Random || n.rng.Float64() < n.profile.randomness() {
		n.metrics.SetRandomPick(true)
		return moves[n.rng.Intn(len(moves))]
	}

	scores := n.scoreAll(state, moves)

	// Strict argmax, lowest index on ties, so a unique best candidate makes
	// the decision deterministic.
	best := 0
	for i, score := range scores {
		if score > scores[best] {
			best = i
		}
	}
	return moves[best]
}

// scoreAll evaluates every candidate's resulting state. Each evaluation
// works on its own copy produced by Apply, so candidates score in parallel
// without synchronization.
func (n *NPC) scoreAll(state *game.GameState, moves []game.Move) []float64 {
	eval := newEvaluator(state.Turn, n.profile)
	scores := make([]float64, len(moves))

	task := make(chan int, len(moves))
	for i := range moves {
		task <- i
	}
	close(task)

	goroutines := n.goroutines
	if goroutines > len(moves) {
		goroutines = len(moves)
	}

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range task {
				next, err := state.Apply(moves[i])
				if err != nil {
					scores[i] = math.Inf(-1)
					continue
				}
				scores[i] = eval.Score(state, moves[i], next)
				n.metrics.AddScored()
			}
		}()
	}
	wg.Wait()

	return scores
}
