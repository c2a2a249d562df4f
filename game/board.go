package game

import (
	"fmt"
	"iter"
	"math/rand/v2"
)

// Board holds the owner and army count of every territory for one match.
type Board struct {
	topology *Topology
	rules    Rules
	rng      *rand.Rand
	owners   []int
	armies   []int
}

type BoardOption func(b *Board)

func WithRules(r Rules) BoardOption {
	return func(b *Board) {
		if r != nil {
			b.rules = r
		}
	}
}

type AttackResult struct {
	AttackerLosses int
	DefenderLosses int
	Captured       bool
}

// NewBoard deals the territories of the topology evenly over the players in a
// random order and puts a single army on each of them.
func NewBoard(topology *Topology, players int, rng *rand.Rand, options ...BoardOption) (*Board, error) {
	if _, err := topology.Starting(players); err != nil {
		return nil, err
	}
	size := topology.Size()
	b := &Board{
		topology: topology,
		rules:    NewStandardRules(),
		rng:      rng,
		owners:   make([]int, size),
		armies:   make([]int, size),
	}
	for _, option := range options {
		option(b)
	}
	for t := range b.owners {
		b.owners[t] = t % players
		b.armies[t] = 1
	}
	rng.Shuffle(size, func(i, j int) {
		b.owners[i], b.owners[j] = b.owners[j], b.owners[i]
	})
	return b, nil
}

// NewBoardWithState creates a board with the given owner and army count per
// territory.
func NewBoardWithState(topology *Topology, owners, armies []int, rng *rand.Rand, options ...BoardOption) (*Board, error) {
	size := topology.Size()
	if len(owners) != size || len(armies) != size {
		return nil, fmt.Errorf("%w: state covers %d owners and %d armies for %d territories",
			ErrInvalidState, len(owners), len(armies), size)
	}
	b := &Board{
		topology: topology,
		rules:    NewStandardRules(),
		rng:      rng,
		owners:   append([]int(nil), owners...),
		armies:   make([]int, size),
	}
	for _, option := range options {
		option(b)
	}
	for t, n := range armies {
		if err := b.SetArmies(t, n); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *Board) Topology() *Topology {
	return b.topology
}

func (b *Board) Size() int {
	return len(b.owners)
}

func (b *Board) Owner(t int) int {
	return b.owners[t]
}

func (b *Board) Armies(t int) int {
	return b.armies[t]
}

func (b *Board) SetOwner(t, player int) {
	b.owners[t] = player
}

func (b *Board) SetArmies(t, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: territory %d cannot hold %d armies", ErrInvalidState, t, n)
	}
	b.armies[t] = n
	return nil
}

func (b *Board) AddArmies(t, delta int) error {
	return b.SetArmies(t, b.armies[t]+delta)
}

// Neighbors yields the territories adjacent to t.
func (b *Board) Neighbors(t int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, n := range b.topology.Neighbors(t) {
			if !yield(n) {
				return
			}
		}
	}
}

// HostileNeighbors yields the neighbors of t owned by another player.
func (b *Board) HostileNeighbors(t int) iter.Seq[int] {
	return b.filterNeighbors(t, func(n int) bool { return b.owners[n] != b.owners[t] })
}

// FriendlyNeighbors yields the neighbors of t owned by the owner of t.
func (b *Board) FriendlyNeighbors(t int) iter.Seq[int] {
	return b.filterNeighbors(t, func(n int) bool { return b.owners[n] == b.owners[t] })
}

func (b *Board) filterNeighbors(t int, keep func(int) bool) iter.Seq[int] {
	return func(yield func(int) bool) {
		for n := range b.Neighbors(t) {
			if keep(n) && !yield(n) {
				return
			}
		}
	}
}

func (b *Board) TerritoriesOf(player int) []int {
	var territories []int
	for t, owner := range b.owners {
		if owner == player {
			territories = append(territories, t)
		}
	}
	return territories
}

func (b *Board) TerritoryCount(player int) int {
	count := 0
	for _, owner := range b.owners {
		if owner == player {
			count++
		}
	}
	return count
}

func (b *Board) ArmyCount(player int) int {
	count := 0
	for t, owner := range b.owners {
		if owner == player {
			count += b.armies[t]
		}
	}
	return count
}

// ContinentOwner returns the player owning every territory of continent c.
func (b *Board) ContinentOwner(c int) (int, bool) {
	territories := b.topology.Continents[c].Territories
	owner := b.owners[territories[0]]
	for _, t := range territories[1:] {
		if b.owners[t] != owner {
			return 0, false
		}
	}
	return owner, true
}

// ContinentFraction is the share of continent c owned by the player.
func (b *Board) ContinentFraction(c, player int) float64 {
	territories := b.topology.Continents[c].Territories
	owned := 0
	for _, t := range territories {
		if b.owners[t] == player {
			owned++
		}
	}
	return float64(owned) / float64(len(territories))
}

func (b *Board) ContinentCount(player int) int {
	count := 0
	for c := range b.topology.Continents {
		if owner, ok := b.ContinentOwner(c); ok && owner == player {
			count++
		}
	}
	return count
}

// Reinforcements is the number of armies a player receives at the start of a
// turn: a third of the territories (at least 3) plus continent bonuses.
func (b *Board) Reinforcements(player int) int {
	armies := max(3, b.TerritoryCount(player)/3)
	for c, continent := range b.topology.Continents {
		if owner, ok := b.ContinentOwner(c); ok && owner == player {
			armies += continent.Bonus
		}
	}
	return armies
}

// PossibleAttacks lists every attack the player can launch, each with the
// maximum number of armies that may take part.
func (b *Board) PossibleAttacks(player int) []Move {
	return b.possibleMoves(player, b.HostileNeighbors)
}

// PossibleFortifications lists every fortification the player can make, each
// with the maximum number of armies that may be moved.
func (b *Board) PossibleFortifications(player int) []Move {
	return b.possibleMoves(player, b.FriendlyNeighbors)
}

func (b *Board) possibleMoves(player int, targets func(int) iter.Seq[int]) []Move {
	var moves []Move
	for from, owner := range b.owners {
		if owner != player || b.armies[from] < 2 {
			continue
		}
		for to := range targets(from) {
			moves = append(moves, Move{From: from, To: to, Armies: b.armies[from] - 1})
		}
	}
	return moves
}

// Attack performs one combat round from one territory into a hostile neighbor
// with n armies. A defender wiped out in this round loses the territory to the
// attacker, who moves in the surviving attacking armies.
func (b *Board) Attack(from, to, n int) (AttackResult, error) {
	if err := b.checkMove(from, to, n); err != nil {
		return AttackResult{}, err
	}
	if n < 1 {
		return AttackResult{}, fmt.Errorf("%w: attack with %d armies", ErrInvalidMove, n)
	}
	if b.owners[from] == b.owners[to] {
		return AttackResult{}, fmt.Errorf("%w: territory %d attacks own territory %d", ErrInvalidMove, from, to)
	}

	attackerLosses, defenderLosses := Fight(b.rules, b.rng, n, b.armies[to])
	result := AttackResult{AttackerLosses: attackerLosses, DefenderLosses: defenderLosses}
	if defenderLosses == b.armies[to] {
		result.Captured = true
		b.owners[to] = b.owners[from]
		b.armies[to] = n - attackerLosses
		b.armies[from] -= n
		return result, nil
	}
	b.armies[from] -= attackerLosses
	b.armies[to] -= defenderLosses
	return result, nil
}

// Fortify moves n armies between two adjacent territories of the same owner.
func (b *Board) Fortify(from, to, n int) error {
	if err := b.checkMove(from, to, n); err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("%w: fortify with %d armies", ErrInvalidMove, n)
	}
	if b.owners[from] != b.owners[to] {
		return fmt.Errorf("%w: territory %d fortifies hostile territory %d", ErrInvalidMove, from, to)
	}
	b.armies[from] -= n
	b.armies[to] += n
	return nil
}

func (b *Board) checkMove(from, to, n int) error {
	if !b.valid(from) || !b.valid(to) {
		return fmt.Errorf("%w: unknown territory in move %d -> %d", ErrInvalidMove, from, to)
	}
	if !b.topology.IsAdjacent(from, to) {
		return fmt.Errorf("%w: territories %d and %d are not adjacent", ErrInvalidMove, from, to)
	}
	if b.armies[from] <= n {
		return fmt.Errorf("%w: territory %d has %d armies, cannot move %d", ErrInvalidMove, from, b.armies[from], n)
	}
	return nil
}

func (b *Board) valid(t int) bool {
	return t >= 0 && t < len(b.owners)
}
