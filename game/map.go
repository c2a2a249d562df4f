package game

import (
	"fmt"

	"golang.org/x/exp/slices"
)

type Territory struct {
	ID        int    // Unique identifier for the territory
	Name      string // Full name of the territory
	Continent int    // ID of the continent the territory belongs to
	Neighbors []int  // IDs of adjacent territories, ascending
}

type Continent struct {
	ID          int
	Name        string
	Bonus       int   // Reinforcement bonus for owning every territory
	Territories []int // IDs of member territories, ascending
}

// Topology is the static board layout. It is never mutated after construction,
// so a single instance may be shared by any number of concurrent matches.
type Topology struct {
	Territories    []Territory
	Continents     []Continent
	StartingArmies map[int]int // Player count -> starting armies per player
}

// NewTopology creates and returns an empty topology.
func NewTopology() *Topology {
	return &Topology{
		StartingArmies: make(map[int]int),
	}
}

// AddContinent appends a continent and returns its ID.
func (m *Topology) AddContinent(name string, bonus int) int {
	id := len(m.Continents)
	m.Continents = append(m.Continents, Continent{ID: id, Name: name, Bonus: bonus})
	return id
}

// AddTerritory appends a territory to the given continent and returns its ID.
func (m *Topology) AddTerritory(name string, continent int) int {
	id := len(m.Territories)
	m.Territories = append(m.Territories, Territory{ID: id, Name: name, Continent: continent})
	m.Continents[continent].Territories = append(m.Continents[continent].Territories, id)
	return id
}

// AddBorder adds a bidirectional border between two territories.
func (m *Topology) AddBorder(id1, id2 int) {
	t1, t2 := &m.Territories[id1], &m.Territories[id2]
	if !slices.Contains(t1.Neighbors, id2) {
		t1.Neighbors = append(t1.Neighbors, id2)
		slices.Sort(t1.Neighbors)
	}
	if !slices.Contains(t2.Neighbors, id1) {
		t2.Neighbors = append(t2.Neighbors, id1)
		slices.Sort(t2.Neighbors)
	}
}

func (m *Topology) Size() int {
	return len(m.Territories)
}

func (m *Topology) Neighbors(t int) []int {
	return m.Territories[t].Neighbors
}

func (m *Topology) IsAdjacent(from, to int) bool {
	_, found := slices.BinarySearch(m.Territories[from].Neighbors, to)
	return found
}

func (m *Topology) ContinentOf(t int) *Continent {
	return &m.Continents[m.Territories[t].Continent]
}

// Starting returns the starting armies for a match with the given player count.
func (m *Topology) Starting(players int) (int, error) {
	armies, ok := m.StartingArmies[players]
	if !ok {
		return 0, fmt.Errorf("unsupported number of players %d", players)
	}
	return armies, nil
}

// TerritoryID looks up a territory by name.
func (m *Topology) TerritoryID(name string) (int, bool) {
	i := slices.IndexFunc(m.Territories, func(t Territory) bool { return t.Name == name })
	return i, i >= 0
}

// ContinentID looks up a continent by name.
func (m *Topology) ContinentID(name string) (int, bool) {
	i := slices.IndexFunc(m.Continents, func(c Continent) bool { return c.Name == name })
	return i, i >= 0
}

// StandardTopology builds the classic 42 territory world map with its
// continents, borders and starting armies.
func StandardTopology() *Topology {
	m := NewTopology()

	for _, c := range continentData {
		cid := m.AddContinent(c.name, c.bonus)
		for _, name := range c.territories {
			m.AddTerritory(name, cid)
		}
	}

	// Iterate in territory order so the build does not depend on map ordering
	for _, t := range m.Territories {
		for _, neighbor := range adjacencyData[t.Name] {
			id, ok := m.TerritoryID(neighbor)
			if !ok {
				panic(fmt.Sprintf("unknown neighbor %q of %q", neighbor, t.Name))
			}
			m.AddBorder(t.ID, id)
		}
	}

	for players, armies := range startingArmies {
		m.StartingArmies[players] = armies
	}
	return m
}

// GLOBAL DATA. Continents in id order, territories in id order within each continent.

var continentData = []struct {
	name        string
	bonus       int
	territories []string
}{
	{"North America", 5, []string{"Alaska", "Alberta", "Central America", "Eastern United States", "Greenland",
		"Northwest Territory", "Ontario", "Quebec", "Western United States"}},
	{"South America", 2, []string{"Argentina", "Brazil", "Peru", "Venezuela"}},
	{"Europe", 5, []string{"Great Britain", "Iceland", "Northern Europe", "Scandinavia", "Southern Europe",
		"Ukraine", "Western Europe"}},
	{"Africa", 3, []string{"Congo", "East Africa", "Egypt", "Madagascar", "North Africa", "South Africa"}},
	{"Asia", 7, []string{"Afghanistan", "China", "India", "Irkutsk", "Japan", "Kamchatka", "Middle East",
		"Mongolia", "Siam", "Siberia", "Ural", "Yakutsk"}},
	{"Oceania", 2, []string{"Eastern Australia", "Indonesia", "New Guinea", "Western Australia"}},
}

var startingArmies = map[int]int{2: 40, 3: 35, 4: 30, 5: 25, 6: 20}

// Adjacency data: mapping of territory names to their neighboring territories
var adjacencyData = map[string][]string{
	"Alaska":                {"Northwest Territory", "Alberta", "Kamchatka"},
	"Alberta":               {"Alaska", "Northwest Territory", "Ontario", "Western United States"},
	"Central America":       {"Western United States", "Eastern United States", "Venezuela"},
	"Eastern United States": {"Central America", "Western United States", "Ontario", "Quebec"},
	"Greenland":             {"Northwest Territory", "Ontario", "Quebec", "Iceland"},
	"Northwest Territory":   {"Alaska", "Alberta", "Ontario", "Greenland"},
	"Ontario":               {"Northwest Territory", "Alberta", "Western United States", "Eastern United States", "Quebec", "Greenland"},
	"Quebec":                {"Ontario", "Eastern United States", "Greenland"},
	"Western United States": {"Alberta", "Ontario", "Eastern United States", "Central America"},
	"Argentina":             {"Peru", "Brazil"},
	"Brazil":                {"Venezuela", "Peru", "Argentina", "North Africa"},
	"Peru":                  {"Venezuela", "Brazil", "Argentina"},
	"Venezuela":             {"Central America", "Brazil", "Peru"},
	"Great Britain":         {"Iceland", "Scandinavia", "Northern Europe", "Western Europe"},
	"Iceland":               {"Greenland", "Great Britain", "Scandinavia"},
	"Northern Europe":       {"Great Britain", "Scandinavia", "Ukraine", "Southern Europe", "Western Europe"},
	"Scandinavia":           {"Iceland", "Great Britain", "Northern Europe", "Ukraine"},
	"Southern Europe":       {"Western Europe", "Northern Europe", "Ukraine", "Middle East", "Egypt"},
	"Ukraine":               {"Scandinavia", "Northern Europe", "Southern Europe", "Middle East", "Afghanistan", "Ural"},
	"Western Europe":        {"Great Britain", "Northern Europe", "Southern Europe", "North Africa"},
	"Congo":                 {"North Africa", "East Africa", "South Africa"},
	"East Africa":           {"Egypt", "North Africa", "Congo", "South Africa", "Madagascar", "Middle East"},
	"Egypt":                 {"North Africa", "East Africa", "Southern Europe", "Middle East"},
	"Madagascar":            {"East Africa", "South Africa"},
	"North Africa":          {"Brazil", "Western Europe", "Egypt", "East Africa", "Congo"},
	"South Africa":          {"Congo", "East Africa", "Madagascar"},
	"Afghanistan":           {"Ukraine", "Ural", "China", "India", "Middle East"},
	"China":                 {"Afghanistan", "Ural", "Siberia", "Mongolia", "Siam", "India"},
	"India":                 {"Middle East", "Afghanistan", "China", "Siam"},
	"Irkutsk":               {"Siberia", "Yakutsk", "Kamchatka", "Mongolia"},
	"Japan":                 {"Kamchatka", "Mongolia"},
	"Kamchatka":             {"Alaska", "Yakutsk", "Irkutsk", "Mongolia", "Japan"},
	"Middle East":           {"Southern Europe", "Ukraine", "Afghanistan", "India", "East Africa", "Egypt"},
	"Mongolia":              {"China", "Siberia", "Irkutsk", "Kamchatka", "Japan"},
	"Siam":                  {"India", "China", "Indonesia"},
	"Siberia":               {"Ural", "Yakutsk", "Irkutsk", "Mongolia", "China"},
	"Ural":                  {"Ukraine", "Siberia", "China", "Afghanistan"},
	"Yakutsk":               {"Siberia", "Irkutsk", "Kamchatka"},
	"Eastern Australia":     {"New Guinea", "Western Australia"},
	"Indonesia":             {"Siam", "New Guinea", "Western Australia"},
	"New Guinea":            {"Indonesia", "Eastern Australia", "Western Australia"},
	"Western Australia":     {"Indonesia", "New Guinea", "Eastern Australia"},
}
