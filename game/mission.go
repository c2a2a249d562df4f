package game

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	BaseTerritories     = 24
	GarrisonTerritories = 18
	GarrisonArmies      = 2
)

// Mission is the private objective of a player. Score reports the completed
// fraction in [0, 1] and TerritoryValue how much holding a territory advances
// the objective. All three fail with ErrInvalidState before assignment.
type Mission interface {
	AssignTo(player int) error
	Player() (int, bool)
	Evaluate(b *Board) (bool, error)
	Score(b *Board) (float64, error)
	TerritoryValue(b *Board, t int) (float64, error)
	// DoubleOccupancy reports whether every held territory needs a garrison
	// of at least two armies.
	DoubleOccupancy() bool
	Kind() MissionKind
	Description() string
}

// MissionKind identifies the objective of a mission.
type MissionKind int

const (
	BaseKind MissionKind = iota
	TerritoryKind
	PlayerKind
	ContinentKind
	ExtraContinentKind
)

func (k MissionKind) String() string {
	switch k {
	case BaseKind:
		return "base"
	case TerritoryKind:
		return "territory"
	case PlayerKind:
		return "player"
	case ContinentKind:
		return "continent"
	case ExtraContinentKind:
		return "extra continent"
	default:
		return fmt.Sprintf("MissionKind(%d)", int(k))
	}
}

type assignment struct {
	player   int
	assigned bool
}

func (a *assignment) AssignTo(player int) error {
	if a.assigned && a.player != player {
		return fmt.Errorf("%w: mission already assigned to player %d", ErrInvalidState, a.player)
	}
	a.player, a.assigned = player, true
	return nil
}

func (a *assignment) Player() (int, bool) {
	return a.player, a.assigned
}

func (a *assignment) owner() (int, error) {
	if !a.assigned {
		return 0, fmt.Errorf("%w: mission is not assigned to a player", ErrInvalidState)
	}
	return a.player, nil
}

func (a *assignment) DoubleOccupancy() bool {
	return false
}

func clamp01(x float64) float64 {
	return max(0, min(1, x))
}

// BaseMission: conquer at least 24 territories.
type BaseMission struct {
	assignment
}

func (m *BaseMission) Kind() MissionKind { return BaseKind }

func NewBaseMission() *BaseMission {
	return &BaseMission{}
}

func (m *BaseMission) Description() string {
	return fmt.Sprintf("conquer at least %d territories", BaseTerritories)
}

func (m *BaseMission) Evaluate(b *Board) (bool, error) {
	p, err := m.owner()
	if err != nil {
		return false, err
	}
	return b.TerritoryCount(p) >= BaseTerritories, nil
}

func (m *BaseMission) Score(b *Board) (float64, error) {
	p, err := m.owner()
	if err != nil {
		return 0, err
	}
	return clamp01(float64(b.TerritoryCount(p)) / BaseTerritories), nil
}

func (m *BaseMission) TerritoryValue(b *Board, t int) (float64, error) {
	if _, err := m.owner(); err != nil {
		return 0, err
	}
	return 1.0 / BaseTerritories, nil
}

// TerritoryMission: conquer at least 18 territories and hold each with at
// least two armies.
type TerritoryMission struct {
	assignment
}

func (m *TerritoryMission) Kind() MissionKind { return TerritoryKind }

func NewTerritoryMission() *TerritoryMission {
	return &TerritoryMission{}
}

func (m *TerritoryMission) Description() string {
	return fmt.Sprintf("conquer at least %d territories and have at least %d armies on each of them",
		GarrisonTerritories, GarrisonArmies)
}

func (m *TerritoryMission) DoubleOccupancy() bool {
	return true
}

func (m *TerritoryMission) garrisoned(b *Board, p int) int {
	count := 0
	for _, t := range b.TerritoriesOf(p) {
		if b.Armies(t) >= GarrisonArmies {
			count++
		}
	}
	return count
}

func (m *TerritoryMission) Evaluate(b *Board) (bool, error) {
	p, err := m.owner()
	if err != nil {
		return false, err
	}
	return m.garrisoned(b, p) >= GarrisonTerritories, nil
}

func (m *TerritoryMission) Score(b *Board) (float64, error) {
	p, err := m.owner()
	if err != nil {
		return 0, err
	}
	return clamp01(float64(m.garrisoned(b, p)) / GarrisonTerritories), nil
}

// A territory that already counts towards the mission adds nothing.
func (m *TerritoryMission) TerritoryValue(b *Board, t int) (float64, error) {
	p, err := m.owner()
	if err != nil {
		return 0, err
	}
	if b.Owner(t) == p && b.Armies(t) >= GarrisonArmies {
		return 0, nil
	}
	return 1.0 / GarrisonTerritories, nil
}

// PlayerMission: eliminate the target player. Falls back to the base mission
// when the target is the mission owner.
type PlayerMission struct {
	BaseMission
	target int
}

func (m *PlayerMission) Kind() MissionKind { return PlayerKind }

func NewPlayerMission(target int) *PlayerMission {
	return &PlayerMission{target: target}
}

func (m *PlayerMission) Target() int {
	return m.target
}

func (m *PlayerMission) fallback() bool {
	p, ok := m.Player()
	return ok && p == m.target
}

func (m *PlayerMission) Description() string {
	if m.fallback() {
		return "fallback: " + m.BaseMission.Description()
	}
	return fmt.Sprintf("eliminate player %d", m.target)
}

func (m *PlayerMission) Evaluate(b *Board) (bool, error) {
	if _, err := m.owner(); err != nil {
		return false, err
	}
	if m.fallback() {
		return m.BaseMission.Evaluate(b)
	}
	return b.TerritoryCount(m.target) == 0, nil
}

func (m *PlayerMission) Score(b *Board) (float64, error) {
	if _, err := m.owner(); err != nil {
		return 0, err
	}
	if m.fallback() {
		return m.BaseMission.Score(b)
	}
	size := float64(b.Size())
	return clamp01((size - float64(b.TerritoryCount(m.target))) / size), nil
}

func (m *PlayerMission) TerritoryValue(b *Board, t int) (float64, error) {
	if _, err := m.owner(); err != nil {
		return 0, err
	}
	if m.fallback() {
		return m.BaseMission.TerritoryValue(b, t)
	}
	if b.Owner(t) != m.target {
		return 0, nil
	}
	return 1.0 / float64(max(1, b.TerritoryCount(m.target))), nil
}

// ContinentMission: conquer every territory of a fixed set of continents.
type ContinentMission struct {
	assignment
	continents []int
	names      []string
}

func (m *ContinentMission) Kind() MissionKind { return ContinentKind }

func NewContinentMission(topology *Topology, continents ...int) *ContinentMission {
	names := make([]string, len(continents))
	for i, c := range continents {
		names[i] = topology.Continents[c].Name
	}
	return &ContinentMission{continents: continents, names: names}
}

func (m *ContinentMission) Continents() []int {
	return m.continents
}

func (m *ContinentMission) Description() string {
	return "conquer " + strings.Join(m.names, " and ")
}

func (m *ContinentMission) ownsTargets(b *Board, p int) bool {
	for _, c := range m.continents {
		if owner, ok := b.ContinentOwner(c); !ok || owner != p {
			return false
		}
	}
	return true
}

func (m *ContinentMission) Evaluate(b *Board) (bool, error) {
	p, err := m.owner()
	if err != nil {
		return false, err
	}
	return m.ownsTargets(b, p), nil
}

func (m *ContinentMission) Score(b *Board) (float64, error) {
	p, err := m.owner()
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, c := range m.continents {
		sum += b.ContinentFraction(c, p)
	}
	return clamp01(sum / float64(len(m.continents))), nil
}

func (m *ContinentMission) TerritoryValue(b *Board, t int) (float64, error) {
	if _, err := m.owner(); err != nil {
		return 0, err
	}
	continent := b.Topology().ContinentOf(t)
	if !slices.Contains(m.continents, continent.ID) {
		return 0, nil
	}
	return 1.0 / float64(len(continent.Territories)*len(m.continents)), nil
}

// ExtraContinentMission: conquer a fixed set of continents plus one more
// continent of choice.
type ExtraContinentMission struct {
	ContinentMission
}

func (m *ExtraContinentMission) Kind() MissionKind { return ExtraContinentKind }

func NewExtraContinentMission(topology *Topology, continents ...int) *ExtraContinentMission {
	return &ExtraContinentMission{ContinentMission: *NewContinentMission(topology, continents...)}
}

func (m *ExtraContinentMission) Description() string {
	return m.ContinentMission.Description() + " and an additional continent of choice"
}

func (m *ExtraContinentMission) Evaluate(b *Board) (bool, error) {
	p, err := m.owner()
	if err != nil {
		return false, err
	}
	return m.ownsTargets(b, p) && b.ContinentCount(p) > len(m.continents), nil
}

// bestOther returns the continent outside the target set the player holds the
// largest share of.
func (m *ExtraContinentMission) bestOther(b *Board, p int) (int, float64) {
	best, fraction := -1, -1.0
	for c := range b.Topology().Continents {
		if slices.Contains(m.continents, c) {
			continue
		}
		if f := b.ContinentFraction(c, p); f > fraction {
			best, fraction = c, f
		}
	}
	return best, fraction
}

func (m *ExtraContinentMission) Score(b *Board) (float64, error) {
	p, err := m.owner()
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, c := range m.continents {
		sum += b.ContinentFraction(c, p)
	}
	if _, f := m.bestOther(b, p); f > 0 {
		sum += f
	}
	return clamp01(sum / float64(len(m.continents)+1)), nil
}

func (m *ExtraContinentMission) TerritoryValue(b *Board, t int) (float64, error) {
	p, err := m.owner()
	if err != nil {
		return 0, err
	}
	continent := b.Topology().ContinentOf(t)
	best, _ := m.bestOther(b, p)
	if !slices.Contains(m.continents, continent.ID) && continent.ID != best {
		return 0, nil
	}
	return 1.0 / float64(len(continent.Territories)*(len(m.continents)+1)), nil
}

// Missions returns the mission deck for a match with the given number of
// players: the continent missions the topology supports, the territory
// missions and one elimination mission per player.
func Missions(topology *Topology, players int) []Mission {
	var deck []Mission
	for _, pattern := range continentMissionData {
		ids := make([]int, 0, len(pattern.continents))
		for _, name := range pattern.continents {
			if c, ok := topology.ContinentID(name); ok {
				ids = append(ids, c)
			}
		}
		if len(ids) < len(pattern.continents) {
			continue
		}
		if pattern.extra {
			deck = append(deck, NewExtraContinentMission(topology, ids...))
		} else {
			deck = append(deck, NewContinentMission(topology, ids...))
		}
	}
	deck = append(deck, NewBaseMission(), NewTerritoryMission())
	for p := 0; p < players; p++ {
		deck = append(deck, NewPlayerMission(p))
	}
	return deck
}

var continentMissionData = []struct {
	continents []string
	extra      bool
}{
	{[]string{"North America", "Africa"}, false},
	{[]string{"North America", "Oceania"}, false},
	{[]string{"Asia", "South America"}, false},
	{[]string{"Asia", "Africa"}, false},
	{[]string{"Europe", "South America"}, true},
	{[]string{"Europe", "Oceania"}, true},
}
