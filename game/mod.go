package game

// Move is an attack or fortification order.
type Move struct {
	From   int
	To     int
	Armies int
}

// Seat is what a player slot exposes to its agent for one match: the shared
// board, and the hand and mission of that player. Agents must treat the board
// as read-only.
type Seat struct {
	Player  int
	Board   *Board
	Hand    *Hand
	Mission Mission
}

// Agent decides the moves of one player slot. It is bound to a seat by Join
// at the start of a match and released by Leave at the end.
type Agent interface {
	Name() string
	Join(seat *Seat)
	Leave()
	// Reinforce returns an owned territory to place one army on.
	Reinforce() (int, error)
	// TurnInCards returns the name of a complete card set, or "" to keep the cards.
	TurnInCards() (string, error)
	// Attack returns the next attack, or nil to stop attacking.
	Attack(wonYet bool) (*Move, error)
	// Fortify returns a fortification, or nil to skip it.
	Fortify() (*Move, error)
}
