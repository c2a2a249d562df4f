package player

import (
	"errors"

	"riskga/game"
)

var ErrNotJoined = errors.New("player is not joined to a game")

// The four phases of a turn. Each receives the seat the player is bound to.
type (
	Reinforcer interface {
		Reinforce(seat *game.Seat) (int, error)
	}
	CardTrader interface {
		TurnInCards(seat *game.Seat) (string, error)
	}
	Attacker interface {
		Attack(seat *game.Seat, wonYet bool) (*game.Move, error)
	}
	Fortifier interface {
		Fortify(seat *game.Seat) (*game.Move, error)
	}
)

// Strategy plays every phase of a turn.
type Strategy interface {
	Reinforcer
	CardTrader
	Attacker
	Fortifier
}

// Player is a game.Agent composed of one strategy per phase.
type Player struct {
	name       string
	seat       *game.Seat
	reinforcer Reinforcer
	trader     CardTrader
	attacker   Attacker
	fortifier  Fortifier
}

type Option func(p *Player)

func WithReinforcer(r Reinforcer) Option {
	return func(p *Player) {
		p.reinforcer = r
	}
}

func WithCardTrader(c CardTrader) Option {
	return func(p *Player) {
		p.trader = c
	}
}

func WithAttacker(a Attacker) Option {
	return func(p *Player) {
		p.attacker = a
	}
}

func WithFortifier(f Fortifier) Option {
	return func(p *Player) {
		p.fortifier = f
	}
}

// New returns a player following strategy in every phase, unless an option
// replaces it for one of them.
func New(name string, strategy Strategy, options ...Option) *Player {
	p := &Player{
		name:       name,
		reinforcer: strategy,
		trader:     strategy,
		attacker:   strategy,
		fortifier:  strategy,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *Player) Name() string {
	return p.name
}

func (p *Player) Join(seat *game.Seat) {
	p.seat = seat
}

func (p *Player) Leave() {
	p.seat = nil
}

// Seat returns the seat the player is bound to, or nil between matches.
func (p *Player) Seat() *game.Seat {
	return p.seat
}

func (p *Player) Reinforce() (int, error) {
	if p.seat == nil {
		return 0, ErrNotJoined
	}
	return p.reinforcer.Reinforce(p.seat)
}

func (p *Player) TurnInCards() (string, error) {
	if p.seat == nil {
		return "", ErrNotJoined
	}
	return p.trader.TurnInCards(p.seat)
}

func (p *Player) Attack(wonYet bool) (*game.Move, error) {
	if p.seat == nil {
		return nil, ErrNotJoined
	}
	return p.attacker.Attack(p.seat, wonYet)
}

func (p *Player) Fortify() (*game.Move, error) {
	if p.seat == nil {
		return nil, ErrNotJoined
	}
	return p.fortifier.Fortify(p.seat)
}

// territories returns the reinforcement candidates of the seat. A player
// holding enough territories for a double occupancy mission only considers
// the ones still missing a garrison.
func territories(seat *game.Seat) []int {
	owned := seat.Board.TerritoriesOf(seat.Player)
	if !seat.Mission.DoubleOccupancy() || len(owned) < game.GarrisonTerritories {
		return owned
	}
	var thin []int
	for _, t := range owned {
		if seat.Board.Armies(t) < game.GarrisonArmies {
			thin = append(thin, t)
		}
	}
	if len(thin) == 0 {
		return owned
	}
	return thin
}

// argmax returns the first element with the highest weight.
func argmax[T any](options []T, weight func(T) float64) (T, float64) {
	best, bestWeight := options[0], weight(options[0])
	for _, option := range options[1:] {
		if w := weight(option); w > bestWeight {
			best, bestWeight = option, w
		}
	}
	return best, bestWeight
}

// bestSet returns the complete set worth the most armies.
func bestSet(hand *game.Hand) (game.CardSet, bool) {
	sets := hand.CompleteSets()
	if len(sets) == 0 {
		return game.CardSet{}, false
	}
	set, _ := argmax(sets, func(s game.CardSet) float64 { return float64(s.Armies) })
	return set, true
}
