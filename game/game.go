package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// PreGame is the turn counter value before the initial armies are placed.
const PreGame = -1

// Game runs a single match between a fixed list of agents.
type Game struct {
	board    *Board
	agents   []Agent
	seats    []*Seat
	starting int
	turn     int
	rng      *rand.Rand
	closed   bool
}

// NewGame deals the board, a hand and a mission to every player and binds
// each agent to its seat. Player ids follow the order of the agents.
func NewGame(topology *Topology, agents []Agent, rng *rand.Rand, options ...BoardOption) (*Game, error) {
	players := len(agents)
	if players < 2 {
		return nil, fmt.Errorf("need at least two players, got %d", players)
	}
	starting, err := topology.Starting(players)
	if err != nil {
		return nil, err
	}
	board, err := NewBoard(topology, players, rng, options...)
	if err != nil {
		return nil, err
	}

	deck := Missions(topology, players)
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	g := &Game{
		board:    board,
		agents:   agents,
		seats:    make([]*Seat, players),
		starting: starting,
		turn:     PreGame,
		rng:      rng,
	}
	for p, agent := range agents {
		mission := deck[p]
		if err := mission.AssignTo(p); err != nil {
			return nil, err
		}
		g.seats[p] = &Seat{Player: p, Board: board, Hand: NewHand(0, 0, 0), Mission: mission}
		agent.Join(g.seats[p])
	}
	return g, nil
}

func (g *Game) Board() *Board {
	return g.board
}

func (g *Game) Players() int {
	return len(g.agents)
}

func (g *Game) Agent(player int) Agent {
	return g.agents[player]
}

func (g *Game) Hand(player int) *Hand {
	return g.seats[player].Hand
}

func (g *Game) Mission(player int) Mission {
	return g.seats[player].Mission
}

func (g *Game) StartingArmies() int {
	return g.starting
}

// Turn is the number of turns played, or PreGame before the initial placement.
func (g *Game) Turn() int {
	return g.turn
}

// CurrentPlayer is the player whose turn it is, or PreGame before the initial
// placement.
func (g *Game) CurrentPlayer() int {
	if g.turn < 0 {
		return PreGame
	}
	return g.turn % len(g.agents)
}

func (g *Game) IsAlive(player int) bool {
	return g.board.TerritoryCount(player) > 0
}

func (g *Game) HasWon(player int) bool {
	if !g.IsAlive(player) {
		return false
	}
	if g.board.TerritoryCount(player) == g.board.Size() {
		return true
	}
	achieved, err := g.seats[player].Mission.Evaluate(g.board)
	return err == nil && achieved
}

// Winner returns the first player, in id order, that has won.
func (g *Game) Winner() (int, bool) {
	for p := range g.agents {
		if g.HasWon(p) {
			return p, true
		}
	}
	return 0, false
}

func (g *Game) HasEnded() bool {
	_, ok := g.Winner()
	return ok
}

// InitializeArmies lets the players take turns placing a single army until
// each of them holds the starting armies, then starts the first turn.
func (g *Game) InitializeArmies() error {
	if g.turn != PreGame {
		return fmt.Errorf("%w: armies already initialized", ErrInvalidState)
	}
	for placing := true; placing; {
		placing = false
		for p := range g.agents {
			if g.board.ArmyCount(p) >= g.starting {
				continue
			}
			if err := g.place(p, 1); err != nil {
				return err
			}
			placing = true
		}
	}
	g.NextTurn()
	return nil
}

// NextTurn advances the turn counter to the next player that is still alive.
func (g *Game) NextTurn() {
	for range g.agents {
		g.turn++
		if g.IsAlive(g.CurrentPlayer()) {
			return
		}
	}
}

// PlayTurn plays the reinforce, attack and fortify phases of the current
// player and advances the turn. Any illegal move returned by the agent aborts
// the turn with an ErrInvalidMove.
func (g *Game) PlayTurn() error {
	if g.turn < 0 {
		return fmt.Errorf("%w: armies are not initialized", ErrInvalidState)
	}
	if g.HasEnded() {
		return ErrGameOver
	}
	p := g.CurrentPlayer()
	if err := g.reinforce(p); err != nil {
		return fmt.Errorf("player %d reinforce: %w", p, err)
	}
	if err := g.attack(p); err != nil {
		return fmt.Errorf("player %d attack: %w", p, err)
	}
	if err := g.fortify(p); err != nil {
		return fmt.Errorf("player %d fortify: %w", p, err)
	}
	g.NextTurn()
	return nil
}

func (g *Game) reinforce(p int) error {
	if err := g.place(p, g.board.Reinforcements(p)); err != nil {
		return err
	}

	hand := g.seats[p].Hand
	name, err := g.agents[p].TurnInCards()
	if err != nil {
		return err
	}
	if name == "" {
		if hand.ObligatoryTurnIn() {
			return fmt.Errorf("%w: %s must be turned in", ErrInvalidRedemption, hand)
		}
		return nil
	}
	armies, err := hand.TurnIn(name)
	if err != nil {
		return err
	}
	return g.place(p, armies)
}

// place asks the agent of player p for n single army placements.
func (g *Game) place(p, n int) error {
	for i := 0; i < n; i++ {
		t, err := g.agents[p].Reinforce()
		if err != nil {
			return err
		}
		if !g.board.valid(t) || g.board.Owner(t) != p {
			return fmt.Errorf("%w: territory %d is not owned by player %d", ErrInvalidMove, t, p)
		}
		if err := g.board.AddArmies(t, 1); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) attack(p int) error {
	wonYet := false
	for {
		move, err := g.agents[p].Attack(wonYet)
		if err != nil {
			return err
		}
		if move == nil {
			break
		}
		if err := g.checkOrigin(p, move); err != nil {
			return err
		}
		result, err := g.board.Attack(move.From, move.To, move.Armies)
		if err != nil {
			return err
		}
		wonYet = wonYet || result.Captured
	}
	if wonYet {
		g.seats[p].Hand.Receive(g.rng)
	}
	return nil
}

func (g *Game) fortify(p int) error {
	move, err := g.agents[p].Fortify()
	if err != nil || move == nil {
		return err
	}
	if err := g.checkOrigin(p, move); err != nil {
		return err
	}
	return g.board.Fortify(move.From, move.To, move.Armies)
}

func (g *Game) checkOrigin(p int, move *Move) error {
	if !g.board.valid(move.From) || g.board.Owner(move.From) != p {
		return fmt.Errorf("%w: territory %d is not owned by player %d", ErrInvalidMove, move.From, p)
	}
	return nil
}

// Close releases every agent from its seat. It is safe to call more than once.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	for _, agent := range g.agents {
		agent.Leave()
	}
}

// IsProtocolViolation reports whether err was caused by an agent breaking the
// rules, as opposed to a broken game invariant.
func IsProtocolViolation(err error) bool {
	return errors.Is(err, ErrInvalidMove) || errors.Is(err, ErrInvalidRedemption) || errors.Is(err, ErrUnknownCardSet)
}
