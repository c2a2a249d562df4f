package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"

	"riskga/config"
	"riskga/engine"
	"riskga/game"
	"riskga/logger"
	"riskga/player"
	"riskga/store"
	"riskga/trainer"
	"riskga/trainer/metrics"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	play := flag.Bool("play", false, "play one match between the built-in players instead of training")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger.Init(cfg.LogLevel, cfg.Pretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *play {
		err = runMatch(ctx, cfg)
	} else {
		err = train(ctx, cfg)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func train(ctx context.Context, cfg *config.Config) error {
	var db *store.DB
	if cfg.Database != "" {
		var err error
		if db, err = store.Open(cfg.Database); err != nil {
			return err
		}
		defer db.Close()
	}

	genes, generation, err := seedGenes(ctx, cfg, db)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector()
	pool, err := trainer.NewPool(player.GeneticSchema(),
		trainer.WithPoolSize(cfg.PoolSize),
		trainer.WithPlayers(cfg.Players),
		trainer.WithMaxTurns(cfg.MaxTurns),
		trainer.WithRankingIterations(cfg.RankingIterations),
		trainer.WithWorkers(cfg.Workers),
		trainer.WithRand(newRand(cfg.Seed)),
		trainer.WithGenes(genes),
		trainer.WithGeneration(generation),
		trainer.WithMetrics(collector),
	)
	if err != nil {
		return err
	}
	log.Info().
		Int("pool", pool.Size()).
		Int("players", cfg.Players).
		Int("generation", pool.Generation()).
		Msgf("training %d generations", cfg.Generations)

	for i := 0; i < cfg.Generations; i++ {
		if err := pool.Iteration(ctx); err != nil {
			return err
		}
		if db != nil {
			if _, err := db.SaveGeneration(ctx, pool.Generation(), entries(pool.Ranked())); err != nil {
				return fmt.Errorf("save generation %d: %w", pool.Generation(), err)
			}
		}
	}

	if cfg.GenesOut != "" {
		if err := saveGenes(pool, cfg.GenesOut); err != nil {
			return err
		}
	}
	if cfg.LogDir != "" {
		if err := pool.SaveLog(cfg.LogDir); err != nil {
			return err
		}
	}
	snapshot := collector.Snapshot()
	log.Info().
		Int("matches", snapshot.Completed).
		Int("abandoned", snapshot.Abandoned).
		Float64("mean_turns", snapshot.MeanTurns()).
		Msg("training done")
	return nil
}

// seedGenes resumes from the genes file when given, otherwise from the
// latest stored generation.
func seedGenes(ctx context.Context, cfg *config.Config, db *store.DB) ([]map[string]any, int, error) {
	if cfg.GenesIn != "" {
		f, err := os.Open(cfg.GenesIn)
		if err != nil {
			return nil, 0, err
		}
		defer f.Close()
		genes, err := trainer.LoadGenes(f)
		return genes, 0, err
	}
	if db == nil {
		return nil, 0, nil
	}
	gen, stored, err := db.LatestGeneration(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	log.Info().Int("generation", gen.Iteration).Msg("resuming from stored generation")
	return store.Genes(stored), gen.Iteration, nil
}

func entries(ranked []trainer.Ranking) []store.Entry {
	out := make([]store.Entry, len(ranked))
	for i, r := range ranked {
		out[i] = store.Entry{
			Position: i,
			AgentID:  r.ID,
			Score:    r.Score,
			Mu:       r.Rating.Mu,
			Sigma:    r.Rating.Sigma,
			Genes:    r.Genome.Map(),
		}
	}
	return out
}

func saveGenes(pool *trainer.Pool, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pool.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runMatch(ctx context.Context, cfg *config.Config) error {
	rng := newRand(cfg.Seed)
	lineup := []game.Agent{
		player.NewBasicPlayer("basic"),
		player.NewWeightedPlayer("weighted", player.DefaultWeights()),
		player.NewBaselinePlayer("baseline"),
		player.NewRandomPlayer("random", rng),
		player.NewBasicPlayer("basic-2"),
		player.NewWeightedPlayer("weighted-2", player.DefaultWeights()),
	}
	e := engine.NewLocal(game.StandardTopology(), lineup[:cfg.Players], rng,
		engine.WithMaxTurns(cfg.MaxTurns))
	result, err := e.Run(ctx)
	if err != nil {
		return err
	}
	for _, s := range result.Summaries {
		fmt.Printf("%-10s alive=%-5t territories=%2d armies=%3d continents=%d mission=%.2f %s\n",
			s.Agent, s.Alive, s.Territories, s.Armies, s.Continents, s.MissionScore, s.Mission)
	}
	if result.HasWinner {
		fmt.Printf("winner after %d turns: %s\n", result.Turns, result.Summaries[result.Winner].Agent)
	} else {
		fmt.Printf("no winner after %d turns\n", result.Turns)
	}
	return nil
}
