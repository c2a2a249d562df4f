package player

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"riskga/game"
)

// vantageOffset keeps the vantage ratios finite for territories without
// hostile neighbors.
const vantageOffset = 0.01

// comparisonWinChance is the probability the defender loses a single dice
// comparison, averaged over the three against two dice battle.
const comparisonWinChance = 0.54

// ArmyVantage is the armies on t relative to the armies on its hostile
// neighbors.
func ArmyVantage(b *game.Board, t int) float64 {
	hostile := 0
	for n := range b.HostileNeighbors(t) {
		hostile += b.Armies(n)
	}
	return float64(b.Armies(t)) / (float64(hostile) + vantageOffset)
}

// TerritoryVantage is the number of friendly neighbors of t relative to its
// hostile neighbors.
func TerritoryVantage(b *game.Board, t int) float64 {
	friendly, hostile := 0, 0
	for range b.FriendlyNeighbors(t) {
		friendly++
	}
	for range b.HostileNeighbors(t) {
		hostile++
	}
	return float64(friendly) / (float64(hostile) + vantageOffset)
}

// ArmyRatio compares the armies that can attack from a territory to the
// armies defending the target.
func ArmyRatio(b *game.Board, from, to int) float64 {
	return float64(b.Armies(from)-1) / float64(b.Armies(to))
}

// ConqueringChance estimates the probability of taking territory to when
// attacking with every movable army of from until one side runs out. Every
// dice comparison is treated as an independent trial and the number of
// defender losses is approximated by a normal distribution.
func ConqueringChance(b *game.Board, from, to int) float64 {
	attackers, defenders := b.Armies(from)-1, b.Armies(to)
	if attackers < 1 {
		return 0
	}
	trials := float64(attackers + defenders - 1)
	losses := distuv.Normal{
		Mu:    trials * comparisonWinChance,
		Sigma: math.Sqrt(trials * comparisonWinChance * (1 - comparisonWinChance)),
	}
	return losses.Survival(float64(defenders) - 0.5)
}

// DirectBonus is the bonus of the continent of t if holding t completes it
// for the player.
func DirectBonus(b *game.Board, player, t int) float64 {
	continent := b.Topology().ContinentOf(t)
	for _, other := range continent.Territories {
		if other != t && b.Owner(other) != player {
			return 0
		}
	}
	return float64(continent.Bonus)
}

// ContinentValue is the bonus of the continent of t weighted by the share of
// it the player holds.
func ContinentValue(b *game.Board, player, t int) float64 {
	continent := b.Topology().ContinentOf(t)
	return float64(continent.Bonus) * b.ContinentFraction(continent.ID, player)
}

// MissionValue is how much holding t advances the mission of the seat.
func MissionValue(seat *game.Seat, t int) float64 {
	value, err := seat.Mission.TerritoryValue(seat.Board, t)
	if err != nil {
		return 0
	}
	return value
}
