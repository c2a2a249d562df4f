package metrics

import (
	"sync/atomic"
	"time"
)

type MatchMetric struct {
	Match     string // Match ID
	Players   int
	Winner    int // Player ID, only meaningful with HasWinner
	HasWinner bool
	Turns     int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Snapshot counts the matches recorded by a collector so far.
type Snapshot struct {
	Started   int
	Completed int
	Abandoned int // Completed without a winner
	Failed    int
	Turns     int
}

// MeanTurns is the average length of the completed matches.
func (s Snapshot) MeanTurns() float64 {
	if s.Completed == 0 {
		return 0
	}
	return float64(s.Turns) / float64(s.Completed)
}

// Sub returns the matches recorded between an earlier snapshot and s.
func (s Snapshot) Sub(earlier Snapshot) Snapshot {
	return Snapshot{
		Started:   s.Started - earlier.Started,
		Completed: s.Completed - earlier.Completed,
		Abandoned: s.Abandoned - earlier.Abandoned,
		Failed:    s.Failed - earlier.Failed,
		Turns:     s.Turns - earlier.Turns,
	}
}

type Collector interface {
	StartMatch()
	CompleteMatch(m MatchMetric)
	FailMatch()
	Snapshot() Snapshot
}

type collector struct {
	started   atomic.Int64
	completed atomic.Int64
	abandoned atomic.Int64
	failed    atomic.Int64
	turns     atomic.Int64
}

// NewCollector returns a collector safe for concurrent matches.
func NewCollector() Collector {
	return &collector{}
}

func (c *collector) StartMatch() {
	c.started.Add(1)
}

func (c *collector) CompleteMatch(m MatchMetric) {
	c.completed.Add(1)
	c.turns.Add(int64(m.Turns))
	if !m.HasWinner {
		c.abandoned.Add(1)
	}
}

func (c *collector) FailMatch() {
	c.failed.Add(1)
}

func (c *collector) Snapshot() Snapshot {
	return Snapshot{
		Started:   int(c.started.Load()),
		Completed: int(c.completed.Load()),
		Abandoned: int(c.abandoned.Load()),
		Failed:    int(c.failed.Load()),
		Turns:     int(c.turns.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) StartMatch()                 {}
func (c *dummyCollector) CompleteMatch(m MatchMetric) {}
func (c *dummyCollector) FailMatch()                  {}
func (c *dummyCollector) Snapshot() Snapshot          { return Snapshot{} }
