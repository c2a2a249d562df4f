package player

import (
	"math/rand/v2"

	"riskga/game"
)

const (
	randomStopChance = 0.1
	randomStopArmies = 50
	randomCardChance = 0.5
)

// Random picks uniformly among the legal options.
type Random struct {
	rng *rand.Rand
}

func NewRandomPlayer(name string, rng *rand.Rand) *Player {
	return New(name, &Random{rng: rng})
}

func (r *Random) Reinforce(seat *game.Seat) (int, error) {
	owned := seat.Board.TerritoriesOf(seat.Player)
	return owned[r.rng.IntN(len(owned))], nil
}

// TurnInCards turns in a random complete set half of the time, and always
// when the hand is full.
func (r *Random) TurnInCards(seat *game.Seat) (string, error) {
	sets := seat.Hand.CompleteSets()
	if len(sets) == 0 || (!seat.Hand.ObligatoryTurnIn() && r.rng.Float64() < randomCardChance) {
		return "", nil
	}
	return sets[r.rng.IntN(len(sets))].Name, nil
}

// Attack stops at random while the player is small, otherwise it launches a
// random attack with every movable army.
func (r *Random) Attack(seat *game.Seat, _ bool) (*game.Move, error) {
	if r.rng.Float64() < randomStopChance && seat.Board.ArmyCount(seat.Player) < randomStopArmies {
		return nil, nil
	}
	attacks := seat.Board.PossibleAttacks(seat.Player)
	if len(attacks) == 0 {
		return nil, nil
	}
	return &attacks[r.rng.IntN(len(attacks))], nil
}

func (r *Random) Fortify(seat *game.Seat) (*game.Move, error) {
	fortifications := seat.Board.PossibleFortifications(seat.Player)
	if len(fortifications) == 0 {
		return nil, nil
	}
	move := fortifications[r.rng.IntN(len(fortifications))]
	move.Armies = 1 + r.rng.IntN(move.Armies)
	return &move, nil
}
