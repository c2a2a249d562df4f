package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"riskga/game"
	"riskga/trainer/metrics"
)

// Local plays a match between in-process agents.
type Local struct {
	id        string
	topology  *game.Topology
	agents    []game.Agent
	rng       *rand.Rand
	rules     game.Rules
	maxTurns  int
	collector metrics.Collector
}

type Option func(*Local)

func WithMaxTurns(turns int) Option {
	return func(e *Local) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

func WithRules(r game.Rules) Option {
	return func(e *Local) {
		e.rules = r
	}
}

func WithCollector(c metrics.Collector) Option {
	return func(e *Local) {
		if c != nil {
			e.collector = c
		}
	}
}

func WithMatchID(id string) Option {
	return func(e *Local) {
		e.id = id
	}
}

func NewLocal(topology *game.Topology, agents []game.Agent, rng *rand.Rand, options ...Option) *Local {
	e := &Local{
		id:        uuid.NewString(),
		topology:  topology,
		agents:    agents,
		rng:       rng,
		maxTurns:  MaxTurns,
		collector: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the game loop until there is a winner or the turn cap is hit.
// The agents are always released from their seats when Run returns.
func (e *Local) Run(ctx context.Context) (Result, error) {
	g, err := game.NewGame(e.topology, e.agents, e.rng, game.WithRules(e.rules))
	if err != nil {
		return Result{}, err
	}
	defer g.Close()

	e.collector.StartMatch()
	result := Result{MatchMetric: metrics.MatchMetric{
		Match:     e.id,
		Players:   len(e.agents),
		StartTime: time.Now(),
	}}
	log.Debug().Str("match", e.id).Int("players", len(e.agents)).Msg("starting match")

	if err := e.play(ctx, g, &result); err != nil {
		e.collector.FailMatch()
		log.Warn().Err(err).
			Str("match", e.id).
			Int("turns", result.Turns).
			Bool("violation", game.IsProtocolViolation(err)).
			Msg("match failed")
		return result, err
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	result.Winner, result.HasWinner = g.Winner()
	result.Summaries = g.Summaries()
	e.collector.CompleteMatch(result.MatchMetric)

	if result.HasWinner {
		log.Debug().Str("match", e.id).Int("turns", result.Turns).Msgf("player %d (%s) won",
			result.Winner, e.agents[result.Winner].Name())
	} else {
		log.Debug().Str("match", e.id).Msgf("stopped after %d turns without a winner", result.Turns)
	}
	return result, nil
}

func (e *Local) play(ctx context.Context, g *game.Game, result *Result) error {
	if err := g.InitializeArmies(); err != nil {
		return fmt.Errorf("initialize armies: %w", err)
	}
	for !g.HasEnded() && result.Turns < e.maxTurns {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.PlayTurn(); err != nil {
			return fmt.Errorf("turn %d: %w", g.Turn(), err)
		}
		result.Turns++
	}
	return nil
}
