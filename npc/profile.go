package npc

import "fmt"

// Style is an NPC's playing philosophy. It selects the weight set applied to
// the evaluation features; Random skips evaluation entirely.
type Style int

const (
	Smart Style = iota
	Aggressive
	Defensive
	Random
)

func (s Style) String() string {
	switch s {
	case Smart:
		return "smart"
	case Aggressive:
		return "aggressive"
	case Defensive:
		return "defensive"
	case Random:
		return "random"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// Difficulty trades decision quality for randomness: it never changes which
// moves are legal, only how often the NPC ignores its own evaluation.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// Profile configures one NPC. Randomness, when set, overrides the
// difficulty's default probability of playing a uniformly random legal move
// instead of the evaluated best one.
type Profile struct {
	Style      Style
	Difficulty Difficulty
	Randomness *float64
}

// randomnessSchedule maps difficulty to the default random-move probability.
var randomnessSchedule = map[Difficulty]float64{
	Easy:   0.40,
	Medium: 0.25,
	Hard:   0.08,
}

func (p Profile) randomness() float64 {
	if p.Randomness != nil {
		return *p.Randomness
	}
	return randomnessSchedule[p.Difficulty]
}

// EffectiveRandomness exposes the probability actually in force, for
// reporting.
func (p Profile) EffectiveRandomness() float64 { return p.randomness() }

// weights are the per-style feature multipliers: captured material, king
// safety, and forward progress.
type weights struct {
	capture    float64
	kingSafety float64
	advance    float64
}

// Smart scales its weights with difficulty; Aggressive and Defensive are
// fixed philosophies regardless of difficulty.
var smartWeights = map[Difficulty]weights{
	Easy:   {capture: 0.6, kingSafety: 0.2, advance: 0.3},
	Medium: {capture: 0.8, kingSafety: 0.5, advance: 0.5},
	Hard:   {capture: 1.0, kingSafety: 0.7, advance: 0.8},
}

var aggressiveWeights = weights{capture: 1.5, kingSafety: 0.3, advance: 1.0}
var defensiveWeights = weights{capture: 0.3, kingSafety: 1.5, advance: 0.2}

func (p Profile) weights() weights {
	switch p.Style {
	case Aggressive:
		return aggressiveWeights
	case Defensive:
		return defensiveWeights
	default:
		return smartWeights[p.Difficulty]
	}
}
