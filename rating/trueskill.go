package rating

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	DefaultMu              = 25.0
	DefaultSigma           = DefaultMu / 3
	DefaultBeta            = DefaultSigma / 2
	DefaultTau             = DefaultSigma / 100
	DefaultDrawProbability = 0.10

	// minVariance bounds the variance reduction of a single update.
	minVariance = 1e-4
	// minCDF is the smallest cumulative density the truncated gaussian
	// functions divide by.
	minCDF = 2.222758749e-162
)

// Rating is a gaussian belief over the skill of one player.
type Rating struct {
	Mu    float64
	Sigma float64
}

// TrueSkill holds the parameters of the rating environment.
type TrueSkill struct {
	Mu              float64
	Sigma           float64
	Beta            float64 // Skill distance giving an 80% chance of winning
	Tau             float64 // Dynamic factor added to sigma before an update
	DrawProbability float64
}

func NewTrueSkill() *TrueSkill {
	return &TrueSkill{
		Mu:              DefaultMu,
		Sigma:           DefaultSigma,
		Beta:            DefaultBeta,
		Tau:             DefaultTau,
		DrawProbability: DefaultDrawProbability,
	}
}

// Prior is the rating of a player never seen before.
func (ts *TrueSkill) Prior() Rating {
	return Rating{Mu: ts.Mu, Sigma: ts.Sigma}
}

// Expose is the conservative skill estimate Mu - 3 Sigma, scaled so the prior
// exposes to zero.
func (ts *TrueSkill) Expose(r Rating) float64 {
	k := ts.Mu / ts.Sigma
	return r.Mu - k*r.Sigma
}

// Rate updates the ratings of a winning team and a losing team after a match
// between them. The inputs are not modified.
func (ts *TrueSkill) Rate(winners, losers []Rating) ([]Rating, []Rating) {
	if len(winners) == 0 || len(losers) == 0 {
		return append([]Rating(nil), winners...), append([]Rating(nil), losers...)
	}
	tau2 := ts.Tau * ts.Tau
	players := float64(len(winners) + len(losers))

	variance := players * ts.Beta * ts.Beta
	diff := 0.0
	for _, r := range winners {
		variance += r.Sigma*r.Sigma + tau2
		diff += r.Mu
	}
	for _, r := range losers {
		variance += r.Sigma*r.Sigma + tau2
		diff -= r.Mu
	}
	c := math.Sqrt(variance)
	margin := distuv.UnitNormal.Quantile((ts.DrawProbability+1)/2) * math.Sqrt(players) * ts.Beta
	v, w := vWin(diff/c, margin/c)

	update := func(r Rating, sign float64) Rating {
		sigma2 := r.Sigma*r.Sigma + tau2
		return Rating{
			Mu:    r.Mu + sign*sigma2/c*v,
			Sigma: math.Sqrt(sigma2 * math.Max(1-sigma2/variance*w, minVariance)),
		}
	}
	newWinners := make([]Rating, len(winners))
	for i, r := range winners {
		newWinners[i] = update(r, 1)
	}
	newLosers := make([]Rating, len(losers))
	for i, r := range losers {
		newLosers[i] = update(r, -1)
	}
	return newWinners, newLosers
}

// vWin returns the additive and multiplicative correction factors of a win
// with normalized performance difference t and draw margin epsilon.
func vWin(t, epsilon float64) (float64, float64) {
	x := t - epsilon
	denom := distuv.UnitNormal.CDF(x)
	if denom < minCDF {
		if x < 0 {
			return -x, 1
		}
		return -x, 0
	}
	v := distuv.UnitNormal.Prob(x) / denom
	return v, v * (v + x)
}
