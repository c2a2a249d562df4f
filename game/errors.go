package game

import "errors"

var (
	// ErrInvalidMove is returned when a placement, attack or fortification
	// breaks ownership, adjacency or army constraints.
	ErrInvalidMove = errors.New("invalid move")
	// ErrInvalidState marks a contract violation such as a territory without
	// armies or an unassigned mission.
	ErrInvalidState      = errors.New("invalid state")
	ErrInvalidRedemption = errors.New("invalid card redemption")
	ErrUnknownCardSet    = errors.New("unknown card set")
	ErrGameOver          = errors.New("game is over")
)
