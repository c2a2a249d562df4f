package player

import "riskga/game"

// Baseline always takes the first available option and never fortifies.
type Baseline struct{}

func NewBaselinePlayer(name string) *Player {
	return New(name, Baseline{})
}

// Reinforce picks the first owned territory bordering an opponent.
func (Baseline) Reinforce(seat *game.Seat) (int, error) {
	owned := seat.Board.TerritoriesOf(seat.Player)
	for _, t := range owned {
		for range seat.Board.HostileNeighbors(t) {
			return t, nil
		}
	}
	return owned[0], nil
}

func (Baseline) TurnInCards(seat *game.Seat) (string, error) {
	if sets := seat.Hand.CompleteSets(); len(sets) > 0 {
		return sets[0].Name, nil
	}
	return "", nil
}

func (Baseline) Attack(seat *game.Seat, _ bool) (*game.Move, error) {
	attacks := seat.Board.PossibleAttacks(seat.Player)
	if len(attacks) == 0 {
		return nil, nil
	}
	return &attacks[0], nil
}

func (Baseline) Fortify(*game.Seat) (*game.Move, error) {
	return nil, nil
}
