package game

import "fmt"

type Side int

const (
	Front Side = iota // Left end of a row
	Back              // Right end of a row
)

func (s Side) String() string {
	if s == Front {
		return "front"
	}
	return "back"
}

// Placement lays every card of a species in hand at one end of a row.
type Placement struct {
	Species Species
	Row     int
	Side    Side
}

func (p Placement) String() string {
	return fmt.Sprintf("%s@%d/%s", p.Species, p.Row, p.Side)
}

// Replace decides whether a player draws two cards after a placement that
// collected nothing.
type Replace int

const (
	ReplaceNever Replace = iota
	ReplaceAlways
	ReplaceCoinFlip
)

// Play is a strategy's choice for the card laying phase of a turn.
type Play struct {
	Placement Placement
	Replace   Replace
}

// LegalPlacements enumerates species ascending, row ascending, front
// before back.
func LegalPlacements(hand Counts) []Placement {
	placements := []Placement{}
	for s, n := range hand {
		if n == 0 {
			continue
		}
		for row := 0; row < NumRows; row++ {
			for _, side := range []Side{Front, Back} {
				placements = append(placements, Placement{Species: Species(s), Row: row, Side: side})
			}
		}
	}
	return placements
}

// LegalFamilies lists species in hand that reach at least a small family.
func LegalFamilies(hand Counts) []Species {
	families := []Species{}
	for s, n := range hand {
		if n > 0 && n >= Catalog[s].SmallFamily {
			families = append(families, Species(s))
		}
	}
	return families
}
