package trainer

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"riskga/genome"
)

// Contestant is one genome of the pool under a unique id.
type Contestant struct {
	ID     string
	Genome *genome.Genome
}

func NewContestant(g *genome.Genome) Contestant {
	return Contestant{ID: uuid.NewString(), Genome: g}
}

// Groups shuffles the ids into groups of size. Every id lands in exactly one
// group, except that a short last group is padded with other ids not already
// in it.
func Groups(ids []string, size int, rng *rand.Rand) ([][]string, error) {
	if size < 1 || len(ids) < size {
		return nil, fmt.Errorf("cannot form groups of %d from %d contestants", size, len(ids))
	}
	shuffled := slices.Clone(ids)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	groups := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(shuffled); start += size {
		group := slices.Clone(shuffled[start:min(start+size, len(shuffled))])
		for len(group) < size {
			if id := ids[rng.IntN(len(ids))]; !slices.Contains(group, id) {
				group = append(group, id)
			}
		}
		groups = append(groups, group)
	}
	return groups, nil
}
