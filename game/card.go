package game

import (
	"fmt"
	"math/rand/v2"
)

type CardType int

const (
	Infantry  CardType = iota // 0
	Cavalry                   // 1
	Artillery                 // 2
	cardTypes
)

// ObligatoryCards is the hand size from which a set must be turned in.
const ObligatoryCards = 5

type CardSet struct {
	Name    string
	Pattern [cardTypes]int
	Armies  int
}

var cardSets = []CardSet{
	{Name: "infantry", Pattern: [cardTypes]int{3, 0, 0}, Armies: 4},
	{Name: "cavalry", Pattern: [cardTypes]int{0, 3, 0}, Armies: 6},
	{Name: "artillery", Pattern: [cardTypes]int{0, 0, 3}, Armies: 8},
	{Name: "mix", Pattern: [cardTypes]int{1, 1, 1}, Armies: 10},
}

// CardSets returns the redeemable sets in a fixed order.
func CardSets() []CardSet {
	return append([]CardSet(nil), cardSets...)
}

func lookupCardSet(name string) (CardSet, error) {
	for _, set := range cardSets {
		if set.Name == name {
			return set, nil
		}
	}
	return CardSet{}, fmt.Errorf("%w: %q", ErrUnknownCardSet, name)
}

// Hand keeps track of the reinforcement cards of a single player.
type Hand struct {
	cards [cardTypes]int
}

func NewHand(infantry, cavalry, artillery int) *Hand {
	return &Hand{cards: [cardTypes]int{infantry, cavalry, artillery}}
}

func (h *Hand) String() string {
	return fmt.Sprintf("Hand%v", h.cards)
}

func (h *Hand) Count(c CardType) int {
	return h.cards[c]
}

func (h *Hand) Total() int {
	total := 0
	for _, n := range h.cards {
		total += n
	}
	return total
}

// ObligatoryTurnIn reports whether the hand is full enough that a set must be
// turned in before reinforcing.
func (h *Hand) ObligatoryTurnIn() bool {
	return h.Total() >= ObligatoryCards
}

func (h *Hand) IsComplete(name string) (bool, error) {
	set, err := lookupCardSet(name)
	if err != nil {
		return false, err
	}
	return h.holds(set), nil
}

func (h *Hand) holds(set CardSet) bool {
	for i, n := range set.Pattern {
		if h.cards[i] < n {
			return false
		}
	}
	return true
}

// CompleteSets returns every set the hand could turn in right now.
func (h *Hand) CompleteSets() []CardSet {
	var sets []CardSet
	for _, set := range cardSets {
		if h.holds(set) {
			sets = append(sets, set)
		}
	}
	return sets
}

// Receive adds a card of a random type.
func (h *Hand) Receive(rng *rand.Rand) CardType {
	c := CardType(rng.IntN(int(cardTypes)))
	h.cards[c]++
	return c
}

// TurnIn removes a complete set from the hand and returns its bonus armies.
func (h *Hand) TurnIn(name string) (int, error) {
	set, err := lookupCardSet(name)
	if err != nil {
		return 0, err
	}
	if !h.holds(set) {
		return 0, fmt.Errorf("%w: %s does not hold a complete %s set", ErrInvalidRedemption, h, name)
	}
	for i, n := range set.Pattern {
		h.cards[i] -= n
	}
	return set.Armies, nil
}
