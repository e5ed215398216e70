package metrics

import (
	"sync/atomic"
	"time"
)

// DecisionMetric records one NPC move decision.
type DecisionMetric struct {
	Candidates int           // legal moves offered
	Scored     int           // candidates evaluated by the heuristic
	RandomPick bool          // decided by the randomness gate instead
	Duration   time.Duration
}

// Collector gathers decision metrics. Scoring workers call AddScored
// concurrently; the remaining calls happen on the deciding goroutine.
type Collector interface {
	Start(candidates int)
	AddScored()
	SetRandomPick(value bool)
	Complete() DecisionMetric
}

type collector struct {
	candidates int
	startTime  time.Time
	scored     atomic.Int32
	randomPick atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(candidates int) {
	c.startTime = time.Now()
	c.candidates = candidates
	c.scored.Store(0)
	c.randomPick.Store(false)
}

func (c *collector) AddScored() {
	c.scored.Add(1)
}

func (c *collector) SetRandomPick(value bool) {
	c.randomPick.Store(value)
}

func (c *collector) Complete() DecisionMetric {
	return DecisionMetric{
		Candidates: c.candidates,
		Scored:     int(c.scored.Load()),
		RandomPick: c.randomPick.Load(),
		Duration:   time.Since(c.startTime),
	}
}

type dummyCollector struct{}

// NewDummyCollector returns a no-op collector for play without metrics.
func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (dummyCollector) Start(candidates int)     {}
func (dummyCollector) AddScored()               {}
func (dummyCollector) SetRandomPick(value bool) {}
func (dummyCollector) Complete() DecisionMetric { return DecisionMetric{} }
