package trainer

import (
	"math/rand/v2"

	"riskga/game"
	"riskga/meta"
	"riskga/player"
	"riskga/trainer/metrics"
)

// AgentFactory builds the agent that plays for a contestant.
type AgentFactory func(c Contestant) game.Agent

// GeneticAgent plays a contestant with the genetic player.
func GeneticAgent(c Contestant) game.Agent {
	return player.NewGeneticPlayer(c.ID, c.Genome)
}

type settings struct {
	poolSize          int
	players           int
	maxTurns          int
	rankingIterations int
	workers           int
	generation        int
	rng               *rand.Rand
	genes             []map[string]any
	collector         metrics.Collector
	topology          *game.Topology
	agent             AgentFactory
}

func defaultSettings() settings {
	return settings{
		poolSize:          meta.PoolSize,
		players:           meta.Players,
		maxTurns:          meta.MaxTurns,
		rankingIterations: meta.RankingIterations,
		workers:           meta.Workers,
		rng:               rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		collector:         metrics.NewDummyCollector(),
		topology:          game.StandardTopology(),
		agent:             GeneticAgent,
	}
}

// Option configures a Pool or a Tournament.
type Option func(s *settings)

func WithPoolSize(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.poolSize = n
		}
	}
}

// WithPlayers sets the number of players per match.
func WithPlayers(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.players = n
		}
	}
}

func WithMaxTurns(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxTurns = n
		}
	}
}

// WithRankingIterations sets the number of tournament rounds per generation.
func WithRankingIterations(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.rankingIterations = n
		}
	}
}

// WithWorkers sets the number of matches played concurrently.
func WithWorkers(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithGeneration sets the generation counter of a resumed pool.
func WithGeneration(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.generation = n
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(s *settings) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithGenes seeds the pool with existing genomes.
func WithGenes(genes []map[string]any) Option {
	return func(s *settings) {
		s.genes = genes
	}
}

func WithMetrics(c metrics.Collector) Option {
	return func(s *settings) {
		if c != nil {
			s.collector = c
		}
	}
}

func WithTopology(t *game.Topology) Option {
	return func(s *settings) {
		if t != nil {
			s.topology = t
		}
	}
}

func WithAgent(f AgentFactory) Option {
	return func(s *settings) {
		if f != nil {
			s.agent = f
		}
	}
}
