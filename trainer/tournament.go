package trainer

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"riskga/engine"
	"riskga/game"
	"riskga/rating"
)

// Ranking is a contestant with its rating and exposed score.
type Ranking struct {
	Contestant
	Rating rating.Rating
	Score  float64
}

// Tournament rates a fixed set of contestants by playing rounds of matches
// between random groups of them.
type Tournament struct {
	settings
	contestants map[string]Contestant
	ids         []string
	ranker      *rating.Ranker
}

type match struct {
	group  []string
	seed   uint64
	result engine.Result
	err    error
}

func NewTournament(contestants []Contestant, ranker *rating.Ranker, options ...Option) (*Tournament, error) {
	t := &Tournament{
		settings:    defaultSettings(),
		contestants: make(map[string]Contestant, len(contestants)),
		ranker:      ranker,
	}
	for _, option := range options {
		option(&t.settings)
	}
	if ranker == nil {
		t.ranker = rating.NewRanker(nil)
	}
	for _, c := range contestants {
		if _, ok := t.contestants[c.ID]; ok {
			return nil, fmt.Errorf("contestant %s entered twice", c.ID)
		}
		t.contestants[c.ID] = c
		t.ids = append(t.ids, c.ID)
	}
	if _, err := t.topology.Starting(t.players); err != nil {
		return nil, err
	}
	if len(t.ids) < t.players {
		return nil, fmt.Errorf("need at least %d contestants, got %d", t.players, len(t.ids))
	}
	return t, nil
}

func (t *Tournament) Ranker() *rating.Ranker {
	return t.ranker
}

// Round plays one match per group, so every contestant plays at least once.
// Winners and losers of every decided match update the ratings in group
// order. Matches stopped by the turn cap leave the ratings untouched, failed
// matches are reported together once the round is over.
func (t *Tournament) Round(ctx context.Context) error {
	groups, err := Groups(t.ids, t.players, t.rng)
	if err != nil {
		return err
	}
	// Seeds are drawn up front so the outcome does not depend on scheduling
	matches := make([]*match, len(groups))
	for i, group := range groups {
		matches[i] = &match{group: group, seed: t.rng.Uint64()}
	}

	task := make(chan *match, len(matches))
	for _, m := range matches {
		task <- m
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < min(t.workers, len(matches)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for m := range task {
				if err := ctx.Err(); err != nil {
					m.err = err
					continue
				}
				m.result, m.err = t.play(ctx, m)
			}
		}()
	}
	wg.Wait()

	var errs []error
	for _, m := range matches {
		if m.err != nil {
			errs = append(errs, fmt.Errorf("match %v: %w", m.group, m.err))
			continue
		}
		if !m.result.HasWinner {
			continue
		}
		winner := m.group[m.result.Winner]
		losers := slices.DeleteFunc(slices.Clone(m.group), func(id string) bool { return id == winner })
		t.ranker.Update([]string{winner}, losers)
	}
	return errors.Join(errs...)
}

func (t *Tournament) play(ctx context.Context, m *match) (engine.Result, error) {
	agents := make([]game.Agent, len(m.group))
	for i, id := range m.group {
		agents[i] = t.agent(t.contestants[id])
	}
	rng := rand.New(rand.NewPCG(m.seed, m.seed^0x9e3779b97f4a7c15))
	e := engine.NewLocal(t.topology, agents, rng,
		engine.WithMaxTurns(t.maxTurns),
		engine.WithCollector(t.collector),
		engine.WithMatchID(uuid.NewString()),
	)
	return e.Run(ctx)
}

// Run plays the given number of rounds, stopping at the first failed round.
func (t *Tournament) Run(ctx context.Context, rounds int) error {
	for i := 0; i < rounds; i++ {
		if err := t.Round(ctx); err != nil {
			return fmt.Errorf("round %d: %w", i+1, err)
		}
		log.Debug().Msgf("completed tournament round %d of %d", i+1, rounds)
	}
	return nil
}

// Ranked returns every contestant from best to worst exposed rating, ties
// broken by id. Contestants without a decided match rank with the prior.
func (t *Tournament) Ranked() []Ranking {
	env := t.ranker.Env()
	ratings := t.ranker.Ratings()
	ranked := make([]Ranking, len(t.ids))
	for i, id := range t.ids {
		r, ok := ratings[id]
		if !ok {
			r = env.Prior()
		}
		ranked[i] = Ranking{Contestant: t.contestants[id], Rating: r, Score: env.Expose(r)}
	}
	slices.SortFunc(ranked, func(a, b Ranking) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return ranked
}
