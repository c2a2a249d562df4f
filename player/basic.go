package player

import "riskga/game"

// Basic is a greedy rule based strategy.
type Basic struct{}

func NewBasicPlayer(name string) *Player {
	return New(name, Basic{})
}

// Reinforce strengthens the most exposed territory.
func (Basic) Reinforce(seat *game.Seat) (int, error) {
	t, _ := argmax(territories(seat), func(t int) float64 {
		return -TerritoryVantage(seat.Board, t)
	})
	return t, nil
}

// TurnInCards turns in the best set when forced and otherwise only a mix.
func (Basic) TurnInCards(seat *game.Seat) (string, error) {
	if seat.Hand.ObligatoryTurnIn() {
		set, _ := bestSet(seat.Hand)
		return set.Name, nil
	}
	if ok, _ := seat.Hand.IsComplete("mix"); ok {
		return "mix", nil
	}
	return "", nil
}

// Attack launches the attack with the best army ratio as long as the
// attacker outnumbers the defender.
func (Basic) Attack(seat *game.Seat, _ bool) (*game.Move, error) {
	attacks := seat.Board.PossibleAttacks(seat.Player)
	if len(attacks) == 0 {
		return nil, nil
	}
	move, ratio := argmax(attacks, func(m game.Move) float64 {
		return ArmyRatio(seat.Board, m.From, m.To)
	})
	if ratio < 1 {
		return nil, nil
	}
	return &move, nil
}

// Fortify moves every movable army from the safest to the most threatened
// territory of a pair.
func (Basic) Fortify(seat *game.Seat) (*game.Move, error) {
	fortifications := seat.Board.PossibleFortifications(seat.Player)
	if len(fortifications) == 0 {
		return nil, nil
	}
	move, _ := argmax(fortifications, func(m game.Move) float64 {
		return ArmyVantage(seat.Board, m.From) / ArmyVantage(seat.Board, m.To)
	})
	return &move, nil
}
