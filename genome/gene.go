package genome

import (
	"fmt"
	"math"
	"math/rand/v2"

	"golang.org/x/exp/slices"

	"riskga/utils"
)

type Kind int

const (
	Bool Kind = iota
	Int
	Float
	List
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case List:
		return "list"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Gene declares the type, bounds and mutation parameters of one named value
// of a genome. Values are stored as float64 whatever the kind.
type Gene struct {
	Name string
	Kind Kind
	// Volatility is the probability the gene changes when mutating.
	Volatility float64

	Min, Max float64
	// Granularity is the standard deviation of a float mutation step.
	Granularity float64
	// Precision is the number of decimals a float is rounded to.
	Precision int

	Values []float64
}

func BoolGene(name string, volatility float64) Gene {
	return Gene{Name: name, Kind: Bool, Volatility: volatility, Max: 1}
}

func IntGene(name string, min, max int, volatility float64) Gene {
	return Gene{Name: name, Kind: Int, Volatility: volatility, Min: float64(min), Max: float64(max)}
}

func FloatGene(name string, min, max, volatility, granularity float64, precision int) Gene {
	return Gene{
		Name:        name,
		Kind:        Float,
		Volatility:  volatility,
		Min:         min,
		Max:         max,
		Granularity: granularity,
		Precision:   precision,
	}
}

func ListGene(name string, values []float64, volatility float64) Gene {
	return Gene{Name: name, Kind: List, Volatility: volatility, Values: slices.Clone(values)}
}

func (g Gene) validate() error {
	if g.Name == "" {
		return fmt.Errorf("gene without a name")
	}
	if g.Volatility < 0 || g.Volatility > 1 {
		return fmt.Errorf("gene %q: volatility %v outside [0, 1]", g.Name, g.Volatility)
	}
	switch g.Kind {
	case Bool:
	case Int, Float:
		if g.Min > g.Max {
			return fmt.Errorf("gene %q: min %v above max %v", g.Name, g.Min, g.Max)
		}
		if g.Kind == Float && (g.Granularity < 0 || g.Precision < 0) {
			return fmt.Errorf("gene %q: negative granularity or precision", g.Name)
		}
	case List:
		if len(g.Values) == 0 {
			return fmt.Errorf("gene %q: no values", g.Name)
		}
	default:
		return fmt.Errorf("gene %q: unknown kind %v", g.Name, g.Kind)
	}
	return nil
}

// Initialize draws a fresh value.
func (g Gene) Initialize(rng *rand.Rand) float64 {
	switch g.Kind {
	case Bool:
		return float64(rng.IntN(2))
	case Int:
		return g.Min + float64(rng.IntN(int(g.Max-g.Min)+1))
	case Float:
		return g.round(g.Min + rng.Float64()*(g.Max-g.Min))
	default:
		return g.Values[rng.IntN(len(g.Values))]
	}
}

// Mutate returns v changed with probability Volatility. Bools flip, ints step
// by one inside their bounds, floats take a gaussian step and list genes pick
// a new random value.
func (g Gene) Mutate(v float64, rng *rand.Rand) float64 {
	if rng.Float64() >= g.Volatility {
		return v
	}
	switch g.Kind {
	case Bool:
		return 1 - v
	case Int:
		switch {
		case g.Min == g.Max:
			return v
		case v <= g.Min:
			return v + 1
		case v >= g.Max:
			return v - 1
		case rng.IntN(2) == 0:
			return v - 1
		default:
			return v + 1
		}
	case Float:
		return g.round(v + rng.NormFloat64()*g.Granularity)
	default:
		// A mutated list gene always moves to another value.
		i := utils.FindIndex(g.Values, v)
		if i < 0 || len(g.Values) < 2 {
			return g.Values[rng.IntN(len(g.Values))]
		}
		j := rng.IntN(len(g.Values) - 1)
		if j >= i {
			j++
		}
		return g.Values[j]
	}
}

// round rounds to the precision and keeps the result in bounds.
func (g Gene) round(v float64) float64 {
	v = utils.Round(utils.Clamp(v, g.Min, g.Max), g.Precision)
	return utils.Clamp(v, g.Min, g.Max)
}

// Valid reports whether v is a value the gene can hold.
func (g Gene) Valid(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	switch g.Kind {
	case Bool:
		return v == 0 || v == 1
	case Int:
		return v == math.Trunc(v) && v >= g.Min && v <= g.Max
	case Float:
		return v >= g.Min && v <= g.Max
	default:
		return slices.Contains(g.Values, v)
	}
}

// encode converts a stored value to its primitive representation.
func (g Gene) encode(v float64) any {
	switch g.Kind {
	case Bool:
		return v == 1
	case Int:
		return int(v)
	default:
		return v
	}
}

// decode converts a primitive value, as found in decoded JSON or YAML, to a
// stored value.
func (g Gene) decode(raw any) (float64, error) {
	var v float64
	switch x := raw.(type) {
	case bool:
		if g.Kind != Bool {
			return 0, fmt.Errorf("%w: gene %q of kind %v got bool", ErrInvalidValue, g.Name, g.Kind)
		}
		if x {
			v = 1
		}
	case int:
		v = float64(x)
	case int64:
		v = float64(x)
	case float32:
		v = float64(x)
	case float64:
		v = x
	case interface{ Float64() (float64, error) }:
		f, err := x.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: gene %q: %v", ErrInvalidValue, g.Name, err)
		}
		v = f
	default:
		return 0, fmt.Errorf("%w: gene %q got %T", ErrInvalidValue, g.Name, raw)
	}
	if !g.Valid(v) {
		return 0, fmt.Errorf("%w: gene %q cannot hold %v", ErrInvalidValue, g.Name, raw)
	}
	return v, nil
}
