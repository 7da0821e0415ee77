package game

import "fmt"

type Species int

const (
	Flamingo Species = iota // 0
	Owl                     // 1
	Toucan                  // 2
	Duck                    // 3
	Parrot                  // 4
	Magpie                  // 5
	ReedWarbler             // 6
	Robin                   // 7
)

// NoFamily marks a turn where no family is converted.
const NoFamily Species = -1

const NumSpecies = 8

// DeckSize is the number of physical cards in the game.
const DeckSize = 110

type Bird struct {
	Name        string
	SmallFamily int // Cards needed to collect one bird
	BigFamily   int // Cards needed to collect two birds
	InDeck      int
	Rarity      float64
}

// Catalog holds the static per-species data, indexed by Species.
var Catalog = newCatalog()

func newCatalog() [NumSpecies]Bird {
	birds := [NumSpecies]Bird{
		{Name: "Flamingo", SmallFamily: 2, BigFamily: 3, InDeck: 7},
		{Name: "Owl", SmallFamily: 3, BigFamily: 4, InDeck: 10},
		{Name: "Toucan", SmallFamily: 3, BigFamily: 4, InDeck: 10},
		{Name: "Duck", SmallFamily: 4, BigFamily: 6, InDeck: 13},
		{Name: "Parrot", SmallFamily: 4, BigFamily: 6, InDeck: 13},
		{Name: "Magpie", SmallFamily: 5, BigFamily: 7, InDeck: 17},
		{Name: "Reed warbler", SmallFamily: 6, BigFamily: 9, InDeck: 20},
		{Name: "Robin", SmallFamily: 6, BigFamily: 9, InDeck: 20},
	}

	// Rarity falls with the number of copies, the rarest bird weighs 1
	rarest := birds[0].InDeck
	for _, b := range birds {
		rarest = min(rarest, b.InDeck)
	}
	for i := range birds {
		birds[i].Rarity = float64(rarest) / float64(birds[i].InDeck)
	}
	return birds
}

func (s Species) Bird() Bird {
	s.mustBeValid()
	return Catalog[s]
}

func (s Species) String() string {
	if s == NoFamily {
		return "none"
	}
	if s < 0 || s >= NumSpecies {
		return fmt.Sprintf("Species(%d)", int(s))
	}
	return Catalog[s].Name
}

func (s Species) mustBeValid() {
	if s < 0 || s >= NumSpecies {
		panic(fmt.Sprintf("invalid species %d", int(s)))
	}
}

// FullDeck returns the per-species counts of a complete deck.
func FullDeck() Counts {
	var c Counts
	for i, b := range Catalog {
		c[i] = b.InDeck
	}
	return c
}
