package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// fixedRules always produces the same losses, capped by the number of dice.
type fixedRules struct {
	attackerLosses int
	defenderLosses int
}

func (r fixedRules) MaxAttackDice() int { return 3 }
func (r fixedRules) MaxDefendDice() int { return 2 }
func (r fixedRules) DetermineAttackOutcome(attackerRolls, defenderRolls []int) (int, int) {
	return min(r.attackerLosses, len(attackerRolls)), min(r.defenderLosses, len(defenderRolls))
}

func territory(t *testing.T, topology *Topology, name string) int {
	id, ok := topology.TerritoryID(name)
	require.True(t, ok, "territory %q should exist", name)
	return id
}

func continent(t *testing.T, topology *Topology, name string) int {
	id, ok := topology.ContinentID(name)
	require.True(t, ok, "continent %q should exist", name)
	return id
}

// boardOwnedBy returns a board where the player owns every territory with a
// single army.
func boardOwnedBy(t *testing.T, player int, options ...BoardOption) *Board {
	topology := StandardTopology()
	owners := make([]int, topology.Size())
	armies := make([]int, topology.Size())
	for i := range owners {
		owners[i] = player
		armies[i] = 1
	}
	b, err := NewBoardWithState(topology, owners, armies, newTestRand(1), options...)
	require.NoError(t, err)
	return b
}

func TestStandardTopology(t *testing.T) {
	topology := StandardTopology()

	require.Equal(t, 42, topology.Size())
	require.Len(t, topology.Continents, 6)

	borders := 0
	for id, territory := range topology.Territories {
		require.Equal(t, id, territory.ID)
		require.NotEmpty(t, territory.Neighbors, "%s should have neighbors", territory.Name)
		require.IsIncreasing(t, territory.Neighbors, "neighbors of %s should be sorted", territory.Name)
		for _, n := range territory.Neighbors {
			require.NotEqual(t, id, n, "%s should not border itself", territory.Name)
			require.True(t, topology.IsAdjacent(n, id), "border %s - %d should be bidirectional", territory.Name, n)
		}
		borders += len(territory.Neighbors)
	}
	require.Equal(t, 82, borders/2)
	require.False(t, topology.IsAdjacent(territory(t, topology, "Southern Europe"), territory(t, topology, "North Africa")),
		"Southern Europe reaches Africa through Egypt only")

	members := 0
	bonus := 0
	for c, continent := range topology.Continents {
		for _, id := range continent.Territories {
			require.Equal(t, c, topology.Territories[id].Continent)
		}
		members += len(continent.Territories)
		bonus += continent.Bonus
	}
	require.Equal(t, 42, members, "continents should partition the territories")
	require.Equal(t, 24, bonus)

	alaska := territory(t, topology, "Alaska")
	require.Equal(t, 0, alaska)
	require.Equal(t, []int{
		territory(t, topology, "Alberta"),
		territory(t, topology, "Northwest Territory"),
		territory(t, topology, "Kamchatka"),
	}, topology.Neighbors(alaska))

	for players, want := range map[int]int{2: 40, 3: 35, 4: 30, 5: 25, 6: 20} {
		got, err := topology.Starting(players)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := topology.Starting(7)
	require.Error(t, err)
}

func TestNewBoard(t *testing.T) {
	topology := StandardTopology()

	t.Run("partitions every territory", func(t *testing.T) {
		for _, players := range []int{3, 4, 5, 6} {
			b, err := NewBoard(topology, players, newTestRand(uint64(players)))
			require.NoError(t, err)
			require.Equal(t, 42, b.Size())

			total := 0
			for p := 0; p < players; p++ {
				count := b.TerritoryCount(p)
				require.Contains(t, []int{42 / players, (42 + players - 1) / players}, count,
					"territories should be dealt evenly")
				total += count
			}
			require.Equal(t, 42, total, "every territory should have exactly one owner")
			for id := 0; id < b.Size(); id++ {
				require.Equal(t, 1, b.Armies(id))
				require.Less(t, b.Owner(id), players)
			}
		}
	})

	t.Run("three players get fourteen territories each", func(t *testing.T) {
		b, err := NewBoard(topology, 3, newTestRand(5))
		require.NoError(t, err)
		require.Equal(t, 14, b.TerritoryCount(0))
	})

	t.Run("rejects unsupported player counts", func(t *testing.T) {
		_, err := NewBoard(topology, 1, newTestRand(1))
		require.Error(t, err)
		_, err = NewBoard(topology, 7, newTestRand(1))
		require.Error(t, err)
	})

	t.Run("rejects inconsistent state", func(t *testing.T) {
		_, err := NewBoardWithState(topology, []int{0}, []int{1}, newTestRand(1))
		require.ErrorIs(t, err, ErrInvalidState)

		owners := make([]int, 42)
		armies := make([]int, 42)
		_, err = NewBoardWithState(topology, owners, armies, newTestRand(1))
		require.ErrorIs(t, err, ErrInvalidState, "territories without armies should be rejected")
	})
}

func TestArmies(t *testing.T) {
	b := boardOwnedBy(t, 0)

	require.NoError(t, b.SetArmies(3, 7))
	require.Equal(t, 7, b.Armies(3))
	require.NoError(t, b.AddArmies(3, -6))
	require.Equal(t, 1, b.Armies(3))

	require.ErrorIs(t, b.SetArmies(3, 0), ErrInvalidState)
	require.ErrorIs(t, b.AddArmies(3, -1), ErrInvalidState)
	require.Equal(t, 1, b.Armies(3), "failed updates should not change the board")
	require.Equal(t, 42, b.ArmyCount(0))
}

func TestNeighbors(t *testing.T) {
	b := boardOwnedBy(t, 0)
	topology := b.Topology()
	alaska := territory(t, topology, "Alaska")
	kamchatka := territory(t, topology, "Kamchatka")
	b.SetOwner(kamchatka, 1)

	collect := func(seq func(func(int) bool)) []int {
		var ids []int
		for id := range seq {
			ids = append(ids, id)
		}
		return ids
	}

	require.Len(t, collect(b.Neighbors(alaska)), 3)
	require.Equal(t, []int{kamchatka}, collect(b.HostileNeighbors(alaska)))
	require.Len(t, collect(b.FriendlyNeighbors(alaska)), 2)

	for range b.Neighbors(alaska) {
		break // stopping early must not panic
	}
}

func TestContinents(t *testing.T) {
	b := boardOwnedBy(t, 0)
	topology := b.Topology()
	southAmerica := continent(t, topology, "South America")
	northAmerica := continent(t, topology, "North America")
	b.SetOwner(territory(t, topology, "Argentina"), 1)

	owner, ok := b.ContinentOwner(northAmerica)
	require.True(t, ok)
	require.Equal(t, 0, owner)
	_, ok = b.ContinentOwner(southAmerica)
	require.False(t, ok, "a split continent has no owner")

	require.InDelta(t, 0.75, b.ContinentFraction(southAmerica, 0), 1e-9)
	require.InDelta(t, 0.25, b.ContinentFraction(southAmerica, 1), 1e-9)
	require.Equal(t, 5, b.ContinentCount(0))
	require.Equal(t, 0, b.ContinentCount(1))

	require.Equal(t, 41/3+24-2, b.Reinforcements(0))
	require.Equal(t, 3, b.Reinforcements(1), "reinforcements should never drop below three")
}

func TestPossibleMoves(t *testing.T) {
	b := boardOwnedBy(t, 0)
	topology := b.Topology()
	alaska := territory(t, topology, "Alaska")
	kamchatka := territory(t, topology, "Kamchatka")
	b.SetOwner(kamchatka, 1)
	require.NoError(t, b.SetArmies(alaska, 5))

	require.Equal(t, []Move{{From: alaska, To: kamchatka, Armies: 4}}, b.PossibleAttacks(0))
	require.Equal(t, []Move{
		{From: alaska, To: territory(t, topology, "Alberta"), Armies: 4},
		{From: alaska, To: territory(t, topology, "Northwest Territory"), Armies: 4},
	}, b.PossibleFortifications(0))
	require.Empty(t, b.PossibleAttacks(1), "single armies cannot attack")
}

func TestAttack(t *testing.T) {
	setup := func(t *testing.T, options ...BoardOption) (*Board, int, int) {
		b := boardOwnedBy(t, 0, options...)
		alaska := territory(t, b.Topology(), "Alaska")
		kamchatka := territory(t, b.Topology(), "Kamchatka")
		b.SetOwner(kamchatka, 1)
		require.NoError(t, b.SetArmies(alaska, 5))
		return b, alaska, kamchatka
	}

	t.Run("rejects illegal attacks", func(t *testing.T) {
		b, alaska, kamchatka := setup(t)
		alberta := territory(t, b.Topology(), "Alberta")
		japan := territory(t, b.Topology(), "Japan")

		for _, m := range []Move{
			{From: alaska, To: kamchatka, Armies: 0},
			{From: alaska, To: kamchatka, Armies: 5},
			{From: alaska, To: alberta, Armies: 2},
			{From: alaska, To: japan, Armies: 2},
			{From: alaska, To: 42, Armies: 2},
			{From: kamchatka, To: alaska, Armies: 1},
		} {
			_, err := b.Attack(m.From, m.To, m.Armies)
			require.ErrorIs(t, err, ErrInvalidMove, "attack %+v should be rejected", m)
		}
		require.Equal(t, 5, b.Armies(alaska), "rejected attacks should not change the board")
		require.Equal(t, 1, b.Owner(kamchatka))
	})

	t.Run("captures a wiped out territory", func(t *testing.T) {
		b, alaska, kamchatka := setup(t, WithRules(fixedRules{defenderLosses: 2}))

		result, err := b.Attack(alaska, kamchatka, 3)

		require.NoError(t, err)
		require.True(t, result.Captured)
		require.Equal(t, 0, b.Owner(kamchatka), "attacker should take the territory")
		require.Equal(t, 3, b.Armies(kamchatka), "surviving attackers should move in")
		require.Equal(t, 2, b.Armies(alaska))
	})

	t.Run("capture keeps the survivors of the round", func(t *testing.T) {
		b, alaska, kamchatka := setup(t, WithRules(fixedRules{attackerLosses: 1, defenderLosses: 1}))

		result, err := b.Attack(alaska, kamchatka, 3)

		require.NoError(t, err)
		require.True(t, result.Captured)
		require.Equal(t, 2, b.Armies(kamchatka))
		require.Equal(t, 2, b.Armies(alaska))
	})

	t.Run("repelled attack only removes losses", func(t *testing.T) {
		b, alaska, kamchatka := setup(t, WithRules(fixedRules{attackerLosses: 1}))
		require.NoError(t, b.SetArmies(kamchatka, 4))

		result, err := b.Attack(alaska, kamchatka, 4)

		require.NoError(t, err)
		require.False(t, result.Captured)
		require.Equal(t, 4, b.Armies(alaska))
		require.Equal(t, 4, b.Armies(kamchatka))
		require.Equal(t, 1, b.Owner(kamchatka))
	})

	t.Run("never creates armies or hands territories to a third party", func(t *testing.T) {
		rng := newTestRand(7)
		for i := 0; i < 1000; i++ {
			b, alaska, kamchatka := setup(t)
			require.NoError(t, b.SetArmies(alaska, rng.IntN(10)+2))
			require.NoError(t, b.SetArmies(kamchatka, rng.IntN(10)+1))
			n := rng.IntN(b.Armies(alaska)-1) + 1
			before := b.Armies(alaska) + b.Armies(kamchatka)

			result, err := b.Attack(alaska, kamchatka, n)

			require.NoError(t, err)
			require.LessOrEqual(t, b.Armies(alaska)+b.Armies(kamchatka), before)
			require.Contains(t, []int{1, 2}, result.AttackerLosses+result.DefenderLosses)
			require.Contains(t, []int{0, 1}, b.Owner(kamchatka))
			require.Equal(t, result.Captured, b.Owner(kamchatka) == 0)
			require.GreaterOrEqual(t, b.Armies(alaska), 1)
			require.GreaterOrEqual(t, b.Armies(kamchatka), 1)
		}
	})
}

func TestFortify(t *testing.T) {
	b := boardOwnedBy(t, 0)
	topology := b.Topology()
	alaska := territory(t, topology, "Alaska")
	alberta := territory(t, topology, "Alberta")
	kamchatka := territory(t, topology, "Kamchatka")
	japan := territory(t, topology, "Japan")
	b.SetOwner(kamchatka, 1)
	require.NoError(t, b.SetArmies(alaska, 5))

	require.NoError(t, b.Fortify(alaska, alberta, 0))
	require.NoError(t, b.Fortify(alaska, alberta, 3))
	require.Equal(t, 2, b.Armies(alaska))
	require.Equal(t, 4, b.Armies(alberta))

	require.ErrorIs(t, b.Fortify(alaska, alberta, 2), ErrInvalidMove, "one army must stay behind")
	require.ErrorIs(t, b.Fortify(alaska, alberta, -1), ErrInvalidMove)
	require.ErrorIs(t, b.Fortify(alaska, kamchatka, 1), ErrInvalidMove, "cannot fortify a hostile territory")
	require.ErrorIs(t, b.Fortify(alaska, japan, 1), ErrInvalidMove, "territories must be adjacent")
}

func TestLargestGroup(t *testing.T) {
	b := boardOwnedBy(t, 1)
	topology := b.Topology()
	for _, name := range []string{"Alaska", "Alberta", "Kamchatka", "Argentina"} {
		b.SetOwner(territory(t, topology, name), 0)
	}
	require.Equal(t, 3, b.LargestGroup(0))
	require.Equal(t, 0, b.LargestGroup(2))
}
