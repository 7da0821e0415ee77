package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

type WinReason int

const (
	Depletion    WinReason = iota // Piles ran out, larger collection wins
	SevenSpecies                  // Seven distinct species collected
	TwoTriplets                   // Two species with three or more collected
)

func (r WinReason) String() string {
	switch r {
	case Depletion:
		return "depletion"
	case SevenSpecies:
		return "seven species"
	case TwoTriplets:
		return "two triplets"
	default:
		return fmt.Sprintf("WinReason(%d)", int(r))
	}
}

// CheckWin reports whether a collection wins the game.
func CheckWin(collection Counts) (WinReason, bool) {
	if collection.Distinct() >= 7 {
		return SevenSpecies, true
	}
	if collection.AtLeast(3) >= 2 {
		return TwoTriplets, true
	}
	return Depletion, false
}

// FamilySize returns how many birds a family of n cards of species adds
// to a collection.
func FamilySize(species Species, n int) int {
	bird := species.Bird()
	switch {
	case n >= bird.BigFamily:
		return 2
	case n >= bird.SmallFamily:
		return 1
	default:
		return 0
	}
}

// ConvertFamily moves every card of species out of the player's hand, one
// or two into the collection and the rest onto the discard pile. It
// returns the number of birds collected.
func (s *State) ConvertFamily(id int, species Species) int {
	player := s.Player(id)
	n := player.Hand[species]
	size := FamilySize(species, n)
	if size == 0 {
		panic(fmt.Sprintf("%s cannot form a %s family with %d cards", player, species, n))
	}
	player.Collection[species] += size
	s.Board.DiscardPile[species] += n - size
	player.Hand[species] = 0
	return size
}

// PlaceCards lays the player's whole hand of a species and takes the
// enclosed cards into hand.
func (s *State) PlaceCards(id int, p Placement, rng *rand.Rand) []Species {
	player := s.Player(id)
	p.Species.mustBeValid()
	n := player.Hand[p.Species]
	if n == 0 {
		panic(fmt.Sprintf("%s has no %s to place", player, p.Species))
	}
	player.Hand[p.Species] = 0
	collected := s.Board.Place(p.Species, p.Row, p.Side, n, rng)
	player.Hand.AddAll(collected)
	return collected
}

// DrawCards draws n cards into a player's hand. Cards drawn before the
// piles run out are kept.
func (s *State) DrawCards(id int, n int, rng *rand.Rand) error {
	player := s.Player(id)
	for i := 0; i < n; i++ {
		card, err := s.Board.Draw(rng)
		if err != nil {
			return fmt.Errorf("%s drew %d of %d cards: %w", player, i, n, err)
		}
		player.Hand[card]++
	}
	return nil
}

// Redeal discards every hand and deals a fresh one to each player. When
// the cards left cannot fill every hand nothing changes and
// ErrPileExhausted is returned.
func (s *State) Redeal(rng *rand.Rand) error {
	held := 0
	for _, p := range s.Players {
		held += p.Hand.Total()
	}
	if s.Board.Available()+held < HandSize*NumPlayers {
		return ErrPileExhausted
	}

	for i := range s.Players {
		s.Board.DiscardPile.Merge(s.Players[i].Hand)
		s.Players[i].Hand = Counts{}
	}
	for i := range s.Players {
		if err := s.DrawCards(s.Players[i].ID, HandSize, rng); err != nil {
			return fmt.Errorf("failed to redeal: %w", err)
		}
	}
	return nil
}

// Leader returns the player with the larger collection, or Tie.
func (s *State) Leader() int {
	first := s.Players[0].Collection.Total()
	second := s.Players[1].Collection.Total()
	switch {
	case first > second:
		return s.Players[0].ID
	case second > first:
		return s.Players[1].ID
	default:
		return Tie
	}
}
