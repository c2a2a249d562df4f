package engine

import (
	"context"

	"riskga/game"
	"riskga/meta"
	"riskga/trainer/metrics"
)

const MaxTurns = meta.MaxTurns

type Engine interface {
	// Run plays a match until a player wins or the turn cap is reached
	Run(ctx context.Context) (Result, error)
}

// Result is the outcome of one match. A match stopped by the turn cap has no
// winner.
type Result struct {
	metrics.MatchMetric
	Summaries []game.PlayerSummary
}
