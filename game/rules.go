package game

import (
	"math/rand/v2"

	"golang.org/x/exp/slices"
)

type Rules interface {
	MaxAttackDice() int
	MaxDefendDice() int
	DetermineAttackOutcome(attackerRolls, defenderRolls []int) (attackerLosses, defenderLosses int)
}

// RollDice rolls n six-sided dice and returns them sorted from high to low.
func RollDice(rng *rand.Rand, n int) []int {
	rolls := make([]int, n)
	for i := range rolls {
		rolls[i] = rng.IntN(6) + 1
	}
	slices.SortFunc(rolls, func(a, b int) int { return b - a })
	return rolls
}

// Fight resolves a single combat round between attacking and defending armies.
func Fight(r Rules, rng *rand.Rand, attackers, defenders int) (attackerLosses, defenderLosses int) {
	attackerRolls := RollDice(rng, min(attackers, r.MaxAttackDice()))
	defenderRolls := RollDice(rng, min(defenders, r.MaxDefendDice()))
	return r.DetermineAttackOutcome(attackerRolls, defenderRolls)
}
