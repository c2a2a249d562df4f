package player

import (
	"riskga/game"
	"riskga/genome"
)

// Weights scale the decision features of a weighted player.
type Weights struct {
	// TurnInCutoff is the least number of armies a voluntary turn in must yield.
	TurnInCutoff float64

	AttackBonus     float64
	AttackChance    float64
	AttackConquer   float64
	AttackArmies    float64
	AttackMission   float64
	AttackCutoff    float64
	AttackCutoffWin float64 // Added to the cutoff until a territory was won this turn

	// Mission weights per mission kind, they scale every mission value.
	MissionBase      float64
	MissionContinent float64
	MissionExtra     float64
	MissionTerritory float64
	MissionPlayer    float64

	ReinforceBonus            float64
	ReinforceContinent        float64
	ReinforceMission          float64
	ReinforceArmyVantage      float64
	ReinforceTerritoryVantage float64

	FortifyMin              float64
	FortifyArmyVantage      float64
	FortifyTerritoryVantage float64
	FortifyMission          float64
	FortifyBonus            float64
	FortifyArmies           float64
}

// DefaultWeights is a hand tuned aggressive parameterization.
func DefaultWeights() Weights {
	return Weights{
		TurnInCutoff:              8,
		AttackBonus:               1,
		AttackChance:              1,
		AttackConquer:             10,
		AttackMission:             1,
		AttackCutoff:              5,
		AttackCutoffWin:           -2,
		MissionBase:               1,
		MissionContinent:          1,
		MissionExtra:              1,
		MissionTerritory:          1,
		MissionPlayer:             1,
		ReinforceBonus:            1,
		ReinforceContinent:        1,
		ReinforceMission:          1,
		ReinforceArmyVantage:      -1,
		ReinforceTerritoryVantage: -1,
		FortifyMin:                1,
		FortifyArmyVantage:        1,
		FortifyTerritoryVantage:   1,
	}
}

// WeightsFromGenome reads the weights from a genome following GeneticSchema.
func WeightsFromGenome(g *genome.Genome) Weights {
	return Weights{
		TurnInCutoff:              g.Float(GeneTurnInCutoff),
		AttackBonus:               g.Float(GeneAttackBonus),
		AttackChance:              g.Float(GeneAttackChance),
		AttackConquer:             g.Float(GeneAttackConquer),
		AttackArmies:              g.Float(GeneAttackArmies),
		AttackMission:             g.Float(GeneAttackMission),
		AttackCutoff:              g.Float(GeneAttackCutoff),
		AttackCutoffWin:           g.Float(GeneAttackCutoffWin),
		MissionBase:               g.Float(GeneMissionBase),
		MissionContinent:          g.Float(GeneMissionContinent),
		MissionExtra:              g.Float(GeneMissionExtra),
		MissionTerritory:          g.Float(GeneMissionTerritory),
		MissionPlayer:             g.Float(GeneMissionPlayer),
		ReinforceBonus:            g.Float(GeneReinforceBonus),
		ReinforceContinent:        g.Float(GeneReinforceContinent),
		ReinforceMission:          g.Float(GeneReinforceMission),
		ReinforceArmyVantage:      g.Float(GeneReinforceArmyVantage),
		ReinforceTerritoryVantage: g.Float(GeneReinforceTerritoryVantage),
		FortifyMin:                g.Float(GeneFortifyMin),
		FortifyArmyVantage:        g.Float(GeneFortifyArmyVantage),
		FortifyTerritoryVantage:   g.Float(GeneFortifyTerritoryVantage),
		FortifyMission:            g.Float(GeneFortifyMission),
		FortifyBonus:              g.Float(GeneFortifyBonus),
		FortifyArmies:             g.Float(GeneFortifyArmies),
	}
}

// Weighted picks the option with the highest linear combination of features.
type Weighted struct {
	Weights
}

func NewWeightedPlayer(name string, weights Weights) *Player {
	return New(name, &Weighted{Weights: weights})
}

func NewGeneticPlayer(name string, g *genome.Genome) *Player {
	return NewWeightedPlayer(name, WeightsFromGenome(g))
}

func (w *Weighted) Reinforce(seat *game.Seat) (int, error) {
	t, _ := argmax(territories(seat), func(t int) float64 {
		return w.reinforceWeight(seat, t)
	})
	return t, nil
}

func (w *Weighted) reinforceWeight(seat *game.Seat, t int) float64 {
	b, p := seat.Board, seat.Player
	return DirectBonus(b, p, t)*w.ReinforceBonus +
		ContinentValue(b, p, t)*w.ReinforceContinent +
		w.missionValue(seat, t)*w.ReinforceMission +
		ArmyVantage(b, t)*w.ReinforceArmyVantage +
		TerritoryVantage(b, t)*w.ReinforceTerritoryVantage
}

// TurnInCards turns in the best set when forced or when it is worth at least
// the cutoff.
func (w *Weighted) TurnInCards(seat *game.Seat) (string, error) {
	set, ok := bestSet(seat.Hand)
	if !ok {
		return "", nil
	}
	if seat.Hand.ObligatoryTurnIn() || float64(set.Armies) >= w.TurnInCutoff {
		return set.Name, nil
	}
	return "", nil
}

func (w *Weighted) Attack(seat *game.Seat, wonYet bool) (*game.Move, error) {
	attacks := seat.Board.PossibleAttacks(seat.Player)
	if len(attacks) == 0 {
		return nil, nil
	}
	move, weight := argmax(attacks, func(m game.Move) float64 {
		return w.attackWeight(seat, m)
	})
	cutoff := w.AttackCutoff
	if !wonYet {
		cutoff += w.AttackCutoffWin
	}
	if weight < cutoff {
		return nil, nil
	}
	return &move, nil
}

func (w *Weighted) attackWeight(seat *game.Seat, m game.Move) float64 {
	b := seat.Board
	return DirectBonus(b, seat.Player, m.To)*w.AttackBonus +
		ArmyRatio(b, m.From, m.To)*w.AttackChance +
		ConqueringChance(b, m.From, m.To)*w.AttackConquer +
		w.missionValue(seat, m.To)*w.AttackMission +
		float64(m.Armies)*w.AttackArmies
}

func (w *Weighted) Fortify(seat *game.Seat) (*game.Move, error) {
	fortifications := seat.Board.PossibleFortifications(seat.Player)
	if len(fortifications) == 0 {
		return nil, nil
	}
	move, weight := argmax(fortifications, func(m game.Move) float64 {
		return w.fortifyWeight(seat, m)
	})
	if weight < w.FortifyMin {
		return nil, nil
	}
	return &move, nil
}

func (w *Weighted) fortifyWeight(seat *game.Seat, m game.Move) float64 {
	b, p := seat.Board, seat.Player
	return (ArmyVantage(b, m.From)-ArmyVantage(b, m.To))*w.FortifyArmyVantage +
		(TerritoryVantage(b, m.From)-TerritoryVantage(b, m.To))*w.FortifyTerritoryVantage +
		(w.missionValue(seat, m.From)-w.missionValue(seat, m.To))*w.FortifyMission +
		(DirectBonus(b, p, m.From)-DirectBonus(b, p, m.To))*w.FortifyBonus +
		float64(m.Armies)*w.FortifyArmies
}

// missionValue scales the mission value of t by the weight of the mission kind.
func (w *Weighted) missionValue(seat *game.Seat, t int) float64 {
	var weight float64
	switch seat.Mission.Kind() {
	case game.BaseKind:
		weight = w.MissionBase
	case game.ContinentKind:
		weight = w.MissionContinent
	case game.ExtraContinentKind:
		weight = w.MissionExtra
	case game.TerritoryKind:
		weight = w.MissionTerritory
	case game.PlayerKind:
		weight = w.MissionPlayer
	default:
		weight = 1
	}
	return MissionValue(seat, t) * weight
}
