package rating

import (
	"cmp"
	"sync"

	"golang.org/x/exp/slices"
)

type Standing struct {
	ID     string
	Rating Rating
	Score  float64
}

// Ranker keeps the ratings of every player it has seen. It is safe for
// concurrent use.
type Ranker struct {
	mu      sync.Mutex
	env     *TrueSkill
	ratings map[string]Rating
}

// NewRanker returns a ranker rating in env, or in the default environment when
// env is nil.
func NewRanker(env *TrueSkill) *Ranker {
	if env == nil {
		env = NewTrueSkill()
	}
	return &Ranker{env: env, ratings: make(map[string]Rating)}
}

func (r *Ranker) Env() *TrueSkill {
	return r.env
}

// Rating returns the rating of id, assigning the prior on first reference.
func (r *Ranker) Rating(id string) Rating {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(id)
}

func (r *Ranker) get(id string) Rating {
	rating, ok := r.ratings[id]
	if !ok {
		rating = r.env.Prior()
		r.ratings[id] = rating
	}
	return rating
}

// Set overrides the rating of id.
func (r *Ranker) Set(id string, rating Rating) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ratings[id] = rating
}

// Update records a match won by the winners against the losers.
func (r *Ranker) Update(winners, losers []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := make([]Rating, len(winners))
	for i, id := range winners {
		w[i] = r.get(id)
	}
	l := make([]Rating, len(losers))
	for i, id := range losers {
		l[i] = r.get(id)
	}
	w, l = r.env.Rate(w, l)
	for i, id := range winners {
		r.ratings[id] = w[i]
	}
	for i, id := range losers {
		r.ratings[id] = l[i]
	}
}

// Score is the exposed rating of id.
func (r *Ranker) Score(id string) float64 {
	return r.env.Expose(r.Rating(id))
}

// Rank returns every rated player by descending score, ties broken by id.
func (r *Ranker) Rank() []Standing {
	r.mu.Lock()
	standings := make([]Standing, 0, len(r.ratings))
	for id, rating := range r.ratings {
		standings = append(standings, Standing{ID: id, Rating: rating, Score: r.env.Expose(rating)})
	}
	r.mu.Unlock()

	slices.SortFunc(standings, func(a, b Standing) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return standings
}

// Ratings returns a snapshot of every rating.
func (r *Ranker) Ratings() map[string]Rating {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := make(map[string]Rating, len(r.ratings))
	for id, rating := range r.ratings {
		snapshot[id] = rating
	}
	return snapshot
}

func (r *Ranker) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ratings)
}
