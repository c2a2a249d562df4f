package trainer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"riskga/genome"
	"riskga/rating"
	"riskga/trainer/metrics"
)

// Pool evolves a fixed size population of genomes, using tournament ratings
// as fitness.
type Pool struct {
	settings
	schema      *genome.Schema
	contestants []Contestant
	ranked      []Ranking
	log         []metrics.GeneRecord
	records     []metrics.GenerationRecord
}

// NewPool fills the pool with the seeded genes first and fresh random genomes
// after that.
func NewPool(schema *genome.Schema, options ...Option) (*Pool, error) {
	p := &Pool{settings: defaultSettings(), schema: schema}
	for _, option := range options {
		option(&p.settings)
	}
	if p.poolSize < p.players {
		return nil, fmt.Errorf("pool of %d cannot fill matches of %d players", p.poolSize, p.players)
	}
	if _, err := p.topology.Starting(p.players); err != nil {
		return nil, err
	}
	if len(p.genes) > p.poolSize {
		log.Warn().Msgf("dropping %d seeded genomes beyond the pool size", len(p.genes)-p.poolSize)
		p.genes = p.genes[:p.poolSize]
	}

	p.contestants = make([]Contestant, 0, p.poolSize)
	for i, genes := range p.genes {
		g, err := genome.FromMap(schema, genes, p.rng)
		if err != nil {
			return nil, fmt.Errorf("seeded genome %d: %w", i, err)
		}
		p.contestants = append(p.contestants, NewContestant(g))
	}
	for len(p.contestants) < p.poolSize {
		p.contestants = append(p.contestants, NewContestant(genome.New(schema, p.rng)))
	}
	p.genes = nil
	return p, nil
}

func (p *Pool) Size() int {
	return len(p.contestants)
}

func (p *Pool) Generation() int {
	return p.generation
}

func (p *Pool) Contestants() []Contestant {
	return append([]Contestant(nil), p.contestants...)
}

// Ranked returns the ranking that produced the current generation, or nil
// before the first iteration.
func (p *Pool) Ranked() []Ranking {
	return append([]Ranking(nil), p.ranked...)
}

// Genes returns the gene maps of every member in pool order.
func (p *Pool) Genes() []map[string]any {
	genes := make([]map[string]any, len(p.contestants))
	for i, c := range p.contestants {
		genes[i] = c.Genome.Map()
	}
	return genes
}

// Log returns the ranked genomes of every generation evaluated so far.
func (p *Pool) Log() []metrics.GeneRecord {
	return append([]metrics.GeneRecord(nil), p.log...)
}

func (p *Pool) Records() []metrics.GenerationRecord {
	return append([]metrics.GenerationRecord(nil), p.records...)
}

// Rank plays the ranking tournament of the current pool and returns the
// members from best to worst.
func (p *Pool) Rank(ctx context.Context) ([]Ranking, error) {
	t, err := NewTournament(p.contestants, rating.NewRanker(nil),
		WithPlayers(p.players),
		WithMaxTurns(p.maxTurns),
		WithWorkers(p.workers),
		WithRand(p.rng),
		WithMetrics(p.collector),
		WithTopology(p.topology),
		WithAgent(p.agent),
	)
	if err != nil {
		return nil, err
	}
	if err := t.Run(ctx, p.rankingIterations); err != nil {
		return nil, err
	}
	return t.Ranked(), nil
}

// Iteration ranks the pool and breeds the next generation: the best quarter
// survives, a quarter are crossovers of random members and the rest are
// mutations of distinct random members.
func (p *Pool) Iteration(ctx context.Context) error {
	start := time.Now()
	before := p.collector.Snapshot()
	ranked, err := p.Rank(ctx)
	if err != nil {
		return fmt.Errorf("generation %d: %w", p.generation+1, err)
	}
	p.generation++
	p.ranked = ranked
	p.record(ranked, p.collector.Snapshot().Sub(before), time.Since(start))

	n := len(ranked)
	quarter := n / 4
	next := make([]Contestant, 0, n)
	for _, r := range ranked[:quarter] {
		next = append(next, r.Contestant)
	}
	for i := 0; i < quarter; i++ {
		a := ranked[p.rng.IntN(n)].Genome
		b := ranked[p.rng.IntN(n)].Genome
		child, err := a.Combine(b, p.rng)
		if err != nil {
			return err
		}
		next = append(next, NewContestant(child))
	}
	for _, i := range p.rng.Perm(n)[:n-2*quarter] {
		next = append(next, NewContestant(ranked[i].Genome.Mutate(p.rng)))
	}
	p.contestants = next
	return nil
}

func (p *Pool) record(ranked []Ranking, snapshot metrics.Snapshot, elapsed time.Duration) {
	scores := make([]float64, len(ranked))
	for i, r := range ranked {
		scores[i] = r.Score
		p.log = append(p.log, metrics.GeneRecord{
			Generation: p.generation,
			Position:   i,
			ID:         r.ID,
			Score:      r.Score,
			Genes:      r.Genome.Map(),
		})
	}
	mean, std := stat.MeanStdDev(scores, nil)
	record := metrics.GenerationRecord{
		Generation: p.generation,
		Snapshot:   snapshot,
		BestScore:  scores[0],
		MeanScore:  mean,
		StdScore:   std,
		Duration:   elapsed,
	}
	p.records = append(p.records, record)

	log.Info().
		Int("generation", record.Generation).
		Int("matches", snapshot.Completed).
		Int("abandoned", snapshot.Abandoned).
		Float64("best", record.BestScore).
		Float64("mean", record.MeanScore).
		Dur("duration", elapsed).
		Msgf("ranked generation %d", record.Generation)
}

// Save writes the genes of the pool as a JSON list of gene maps.
func (p *Pool) Save(w io.Writer) error {
	return json.NewEncoder(w).Encode(p.Genes())
}

// LoadGenes reads a JSON list of gene maps written by Save.
func LoadGenes(r io.Reader) ([]map[string]any, error) {
	var genes []map[string]any
	if err := json.NewDecoder(r).Decode(&genes); err != nil {
		return nil, fmt.Errorf("decode genes: %w", err)
	}
	return genes, nil
}

// SaveLog writes the generation summaries and the gene log as CSV files into
// dir.
func (p *Pool) SaveLog(dir string) error {
	w, err := metrics.NewWriter(dir)
	if err != nil {
		return err
	}
	if err := w.WriteGenerationRecords(p.records); err != nil {
		return err
	}
	return w.WriteGeneRecords(p.schema.Names(), p.log)
}
