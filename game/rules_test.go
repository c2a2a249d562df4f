package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandardRules(t *testing.T) {
	rules := NewStandardRules()

	t.Run("ties favor the defender", func(t *testing.T) {
		attackerLosses, defenderLosses := rules.DetermineAttackOutcome([]int{6, 4, 1}, []int{6, 3})
		require.Equal(t, 1, attackerLosses)
		require.Equal(t, 1, defenderLosses)
	})

	t.Run("pairs only as many dice as the smaller side rolls", func(t *testing.T) {
		attackerLosses, defenderLosses := rules.DetermineAttackOutcome([]int{5}, []int{4, 4})
		require.Equal(t, 0, attackerLosses)
		require.Equal(t, 1, defenderLosses)
	})
}

func TestRollDice(t *testing.T) {
	rng := newTestRand(3)
	for i := 0; i < 1000; i++ {
		rolls := RollDice(rng, 3)
		require.Len(t, rolls, 3)
		require.IsNonIncreasing(t, rolls)
		for _, r := range rolls {
			require.GreaterOrEqual(t, r, 1)
			require.LessOrEqual(t, r, 6)
		}
	}
}

func TestFight(t *testing.T) {
	rules := NewStandardRules()
	rng := newTestRand(11)
	for i := 0; i < 1000; i++ {
		attackers := rng.IntN(10) + 1
		defenders := rng.IntN(10) + 1

		attackerLosses, defenderLosses := Fight(rules, rng, attackers, defenders)

		require.GreaterOrEqual(t, attackerLosses, 0)
		require.GreaterOrEqual(t, defenderLosses, 0)
		require.Contains(t, []int{1, 2}, attackerLosses+defenderLosses)
		require.LessOrEqual(t, attackerLosses, min(attackers, 3))
		require.LessOrEqual(t, defenderLosses, min(defenders, 2))
	}
}
