package player

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"riskga/game"
	"riskga/genome"
)

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

const (
	siam       = 34
	easternAus = 38
	indonesia  = 39
	newGuinea  = 40
	westernAus = 41
)

// oceaniaSeat seats player 0 on a board where it holds Oceania with five
// armies in Indonesia, and player 1 holds everything else with single armies.
func oceaniaSeat(t *testing.T) *game.Seat {
	topology := game.StandardTopology()
	owners := make([]int, topology.Size())
	armies := make([]int, topology.Size())
	for id := range owners {
		owners[id], armies[id] = 1, 1
		if topology.Territories[id].Continent == 5 {
			owners[id] = 0
		}
	}
	armies[indonesia] = 5
	b, err := game.NewBoardWithState(topology, owners, armies, newTestRand(1))
	require.NoError(t, err)

	mission := game.NewBaseMission()
	require.NoError(t, mission.AssignTo(0))
	return &game.Seat{Player: 0, Board: b, Hand: game.NewHand(0, 0, 0), Mission: mission}
}

func joined(t *testing.T, p *Player) *Player {
	p.Join(oceaniaSeat(t))
	return p
}

func TestPlayerBinding(t *testing.T) {
	p := NewBaselinePlayer("baseline")
	require.Equal(t, "baseline", p.Name())
	require.Nil(t, p.Seat())

	_, err := p.Reinforce()
	require.ErrorIs(t, err, ErrNotJoined)
	_, err = p.TurnInCards()
	require.ErrorIs(t, err, ErrNotJoined)
	_, err = p.Attack(false)
	require.ErrorIs(t, err, ErrNotJoined)
	_, err = p.Fortify()
	require.ErrorIs(t, err, ErrNotJoined)

	seat := oceaniaSeat(t)
	p.Join(seat)
	require.Same(t, seat, p.Seat())
	_, err = p.Reinforce()
	require.NoError(t, err)

	p.Leave()
	_, err = p.Attack(true)
	require.ErrorIs(t, err, ErrNotJoined)
}

func TestComposition(t *testing.T) {
	p := joined(t, New("mixed", Baseline{}, WithFortifier(Basic{}), WithAttacker(Basic{})))
	require.NoError(t, p.Seat().Board.SetArmies(siam, 9))

	move, err := p.Attack(false)
	require.NoError(t, err)
	require.Nil(t, move, "the basic attacker refuses poor odds")

	move, err = p.Fortify()
	require.NoError(t, err)
	require.NotNil(t, move, "the basic fortifier replaces the baseline one")
}

func TestBaseline(t *testing.T) {
	p := joined(t, NewBaselinePlayer("baseline"))

	territory, err := p.Reinforce()
	require.NoError(t, err)
	require.Equal(t, indonesia, territory, "the first territory with a hostile neighbor")

	move, err := p.Attack(false)
	require.NoError(t, err)
	require.Equal(t, &game.Move{From: indonesia, To: siam, Armies: 4}, move)

	move, err = p.Fortify()
	require.NoError(t, err)
	require.Nil(t, move)

	t.Run("cards", func(t *testing.T) {
		for hand, want := range map[[3]int]string{
			{0, 0, 0}: "",
			{3, 0, 0}: "infantry",
			{1, 1, 1}: "mix",
			{0, 3, 3}: "cavalry",
		} {
			*p.Seat().Hand = *game.NewHand(hand[0], hand[1], hand[2])
			set, err := p.TurnInCards()
			require.NoError(t, err)
			require.Equal(t, want, set, "hand %v", hand)
		}
	})
}

func TestBasic(t *testing.T) {
	p := joined(t, NewBasicPlayer("basic"))

	territory, err := p.Reinforce()
	require.NoError(t, err)
	require.Equal(t, indonesia, territory, "the least territory vantage")

	move, err := p.Attack(false)
	require.NoError(t, err)
	require.Equal(t, &game.Move{From: indonesia, To: siam, Armies: 4}, move)

	require.NoError(t, p.Seat().Board.SetArmies(siam, 9))
	move, err = p.Attack(false)
	require.NoError(t, err)
	require.Nil(t, move)

	move, err = p.Fortify()
	require.NoError(t, err)
	require.Equal(t, &game.Move{From: indonesia, To: newGuinea, Armies: 4}, move)

	t.Run("cards", func(t *testing.T) {
		for hand, want := range map[[3]int]string{
			{3, 0, 0}: "",
			{1, 1, 1}: "mix",
			{3, 1, 1}: "mix",
			{3, 0, 2}: "infantry",
		} {
			*p.Seat().Hand = *game.NewHand(hand[0], hand[1], hand[2])
			set, err := p.TurnInCards()
			require.NoError(t, err)
			require.Equal(t, want, set, "hand %v", hand)
		}
	})
}

func TestRandom(t *testing.T) {
	p := joined(t, NewRandomPlayer("random", newTestRand(7)))
	b := p.Seat().Board
	stops := 0

	for i := 0; i < 200; i++ {
		territory, err := p.Reinforce()
		require.NoError(t, err)
		require.Equal(t, 0, b.Owner(territory))

		move, err := p.Attack(false)
		require.NoError(t, err)
		if move == nil {
			stops++
		} else {
			require.Equal(t, game.Move{From: indonesia, To: siam, Armies: 4}, *move)
		}

		move, err = p.Fortify()
		require.NoError(t, err)
		require.NotNil(t, move)
		require.Equal(t, indonesia, move.From)
		require.Contains(t, []int{newGuinea, westernAus}, move.To)
		require.GreaterOrEqual(t, move.Armies, 1)
		require.LessOrEqual(t, move.Armies, 4)
	}
	require.Positive(t, stops)
	require.Less(t, stops, 100)

	*p.Seat().Hand = *game.NewHand(2, 2, 1)
	for i := 0; i < 20; i++ {
		set, err := p.TurnInCards()
		require.NoError(t, err)
		require.Equal(t, "mix", set, "a full hand must be turned in")
	}
}

func TestWeighted(t *testing.T) {
	t.Run("cards", func(t *testing.T) {
		p := joined(t, NewWeightedPlayer("weighted", Weights{TurnInCutoff: 8}))
		for hand, want := range map[[3]int]string{
			{0, 0, 0}: "",
			{3, 0, 0}: "",
			{0, 0, 3}: "artillery",
			{1, 1, 1}: "mix",
			{3, 2, 0}: "infantry",
		} {
			*p.Seat().Hand = *game.NewHand(hand[0], hand[1], hand[2])
			set, err := p.TurnInCards()
			require.NoError(t, err)
			require.Equal(t, want, set, "hand %v", hand)
		}
	})

	t.Run("attack cutoff", func(t *testing.T) {
		p := joined(t, NewWeightedPlayer("weighted", Weights{AttackConquer: 10, AttackCutoff: 5, AttackCutoffWin: 10}))

		move, err := p.Attack(true)
		require.NoError(t, err)
		require.Equal(t, &game.Move{From: indonesia, To: siam, Armies: 4}, move)

		move, err = p.Attack(false)
		require.NoError(t, err)
		require.Nil(t, move, "a higher cutoff applies before the first conquest")

		require.NoError(t, p.Seat().Board.SetArmies(siam, 20))
		move, err = p.Attack(true)
		require.NoError(t, err)
		require.Nil(t, move)
	})

	t.Run("fortify cutoff", func(t *testing.T) {
		p := joined(t, NewWeightedPlayer("weighted", Weights{FortifyArmies: 1, FortifyMin: 3}))
		move, err := p.Fortify()
		require.NoError(t, err)
		require.Equal(t, &game.Move{From: indonesia, To: newGuinea, Armies: 4}, move)

		p = joined(t, NewWeightedPlayer("weighted", Weights{FortifyArmies: 1, FortifyMin: 5}))
		move, err = p.Fortify()
		require.NoError(t, err)
		require.Nil(t, move)
	})

	t.Run("reinforce", func(t *testing.T) {
		p := joined(t, NewWeightedPlayer("weighted", Weights{ReinforceTerritoryVantage: -1}))
		territory, err := p.Reinforce()
		require.NoError(t, err)
		require.Equal(t, indonesia, territory)

		p = joined(t, NewWeightedPlayer("weighted", Weights{ReinforceArmyVantage: 1}))
		territory, err = p.Reinforce()
		require.NoError(t, err)
		require.Equal(t, easternAus, territory, "interior territories have the most army vantage")
	})
}

func TestGeneticPlayer(t *testing.T) {
	schema := GeneticSchema()
	require.Equal(t, 24, schema.Len())

	rng := newTestRand(3)
	g := genome.New(schema, rng)
	weights := WeightsFromGenome(g)
	require.Equal(t, g.Float(GeneAttackCutoff), weights.AttackCutoff)
	require.Equal(t, g.Float(GeneFortifyArmies), weights.FortifyArmies)
	require.Contains(t, []float64{4, 6, 8, 10}, weights.TurnInCutoff)

	p := joined(t, NewGeneticPlayer("genetic", g))
	b := p.Seat().Board
	territory, err := p.Reinforce()
	require.NoError(t, err)
	require.Equal(t, 0, b.Owner(territory))

	move, err := p.Attack(false)
	require.NoError(t, err)
	if move != nil {
		require.Contains(t, b.PossibleAttacks(0), *move)
	}
	move, err = p.Fortify()
	require.NoError(t, err)
	if move != nil {
		require.Contains(t, b.PossibleFortifications(0), *move)
	}
}

func TestGarrisonCandidates(t *testing.T) {
	seat := oceaniaSeat(t)
	b := seat.Board
	for id := 0; id < 20; id++ {
		b.SetOwner(id, 0)
		if id < 10 {
			require.NoError(t, b.SetArmies(id, 2))
		}
	}
	require.Len(t, territories(seat), 24, "the base mission considers every territory")

	mission := game.NewTerritoryMission()
	require.NoError(t, mission.AssignTo(0))
	seat.Mission = mission
	candidates := territories(seat)
	require.Len(t, candidates, 13)
	for _, id := range candidates {
		require.Less(t, b.Armies(id), game.GarrisonArmies)
	}

	for _, id := range b.TerritoriesOf(0) {
		require.NoError(t, b.SetArmies(id, 2))
	}
	require.Len(t, territories(seat), 24, "a complete garrison falls back to every territory")
}

// relabeled reports another kind for a real mission.
type relabeled struct {
	game.Mission
	kind game.MissionKind
}

func (m relabeled) Kind() game.MissionKind { return m.kind }

func TestMissionWeights(t *testing.T) {
	weights := Weights{
		MissionBase:      2,
		MissionTerritory: 3,
		MissionPlayer:    5,
		MissionContinent: 7,
		MissionExtra:     11,
	}
	w := &Weighted{Weights: weights}
	seat := oceaniaSeat(t)
	base := MissionValue(seat, siam)
	require.Positive(t, base)

	for kind, want := range map[game.MissionKind]float64{
		game.BaseKind:           2,
		game.TerritoryKind:      3,
		game.PlayerKind:         5,
		game.ContinentKind:      7,
		game.ExtraContinentKind: 11,
		game.MissionKind(42):    1,
	} {
		seat.Mission = relabeled{Mission: game.NewBaseMission(), kind: kind}
		require.NoError(t, seat.Mission.AssignTo(0))
		require.InDelta(t, base*want, w.missionValue(seat, siam), 1e-9, "kind %v", kind)
	}
}
