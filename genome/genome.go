package genome

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"golang.org/x/exp/slices"
)

var (
	ErrSchemaMismatch = errors.New("genomes do not share a schema")
	ErrInvalidValue   = errors.New("invalid gene value")
)

// Schema is the ordered list of genes a genome holds.
type Schema struct {
	genes []Gene
	index map[string]int
}

func NewSchema(genes ...Gene) (*Schema, error) {
	s := &Schema{genes: make([]Gene, len(genes)), index: make(map[string]int, len(genes))}
	for i, g := range genes {
		if err := g.validate(); err != nil {
			return nil, err
		}
		if _, ok := s.index[g.Name]; ok {
			return nil, fmt.Errorf("duplicate gene %q", g.Name)
		}
		s.genes[i] = g
		s.index[g.Name] = i
	}
	return s, nil
}

// MustSchema is NewSchema for schemas declared in code.
func MustSchema(genes ...Gene) *Schema {
	s, err := NewSchema(genes...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Len() int {
	return len(s.genes)
}

func (s *Schema) Genes() []Gene {
	return slices.Clone(s.genes)
}

func (s *Schema) Names() []string {
	names := make([]string, len(s.genes))
	for i, g := range s.genes {
		names[i] = g.Name
	}
	return names
}

func (s *Schema) Gene(name string) (Gene, bool) {
	i, ok := s.index[name]
	if !ok {
		return Gene{}, false
	}
	return s.genes[i], true
}

// compatible reports whether both schemas declare the same genes in the same order.
func (s *Schema) compatible(other *Schema) bool {
	if s == other {
		return true
	}
	if len(s.genes) != len(other.genes) {
		return false
	}
	for i, g := range s.genes {
		if g.Name != other.genes[i].Name || g.Kind != other.genes[i].Kind {
			return false
		}
	}
	return true
}

// Genome is an immutable set of gene values following a schema.
type Genome struct {
	schema *Schema
	values []float64
}

// New returns a randomly initialized genome.
func New(schema *Schema, rng *rand.Rand) *Genome {
	g := &Genome{schema: schema, values: make([]float64, schema.Len())}
	for i, gene := range schema.genes {
		g.values[i] = gene.Initialize(rng)
	}
	return g
}

// FromMap builds a genome from gene values keyed by name. Genes missing from
// the map are initialized fresh, unknown keys are ignored.
func FromMap(schema *Schema, genes map[string]any, rng *rand.Rand) (*Genome, error) {
	g := &Genome{schema: schema, values: make([]float64, schema.Len())}
	for i, gene := range schema.genes {
		raw, ok := genes[gene.Name]
		if !ok {
			g.values[i] = gene.Initialize(rng)
			continue
		}
		v, err := gene.decode(raw)
		if err != nil {
			return nil, err
		}
		g.values[i] = v
	}
	return g, nil
}

// Map returns the genes keyed by name: bools as bool, ints as int and the
// rest as float64.
func (g *Genome) Map() map[string]any {
	m := make(map[string]any, len(g.values))
	for i, gene := range g.schema.genes {
		m[gene.Name] = gene.encode(g.values[i])
	}
	return m
}

func (g *Genome) Schema() *Schema {
	return g.schema
}

// Combine returns a genome taking every gene from either parent with equal
// probability.
func (g *Genome) Combine(other *Genome, rng *rand.Rand) (*Genome, error) {
	if !g.schema.compatible(other.schema) {
		return nil, ErrSchemaMismatch
	}
	child := &Genome{schema: g.schema, values: make([]float64, len(g.values))}
	for i := range child.values {
		if rng.IntN(2) == 0 {
			child.values[i] = g.values[i]
		} else {
			child.values[i] = other.values[i]
		}
	}
	return child, nil
}

// Mutate returns a copy with every gene mutated according to its own
// volatility.
func (g *Genome) Mutate(rng *rand.Rand) *Genome {
	child := &Genome{schema: g.schema, values: make([]float64, len(g.values))}
	for i, gene := range g.schema.genes {
		child.values[i] = gene.Mutate(g.values[i], rng)
	}
	return child
}

// Value returns the stored value of the named gene.
func (g *Genome) Value(name string) (float64, bool) {
	i, ok := g.schema.index[name]
	if !ok {
		return 0, false
	}
	return g.values[i], true
}

// Float returns the named gene and panics if the schema lacks it.
func (g *Genome) Float(name string) float64 {
	v, ok := g.Value(name)
	if !ok {
		panic(fmt.Sprintf("genome: unknown gene %q", name))
	}
	return v
}

func (g *Genome) Int(name string) int {
	return int(g.Float(name))
}

func (g *Genome) Bool(name string) bool {
	return g.Float(name) == 1
}

func (g *Genome) Equal(other *Genome) bool {
	return g.schema.compatible(other.schema) && slices.Equal(g.values, other.values)
}

func (g *Genome) String() string {
	var sb strings.Builder
	sb.WriteString("Genome(")
	for i, gene := range g.schema.genes {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%v", gene.Name, gene.encode(g.values[i]))
	}
	sb.WriteString(")")
	return sb.String()
}
