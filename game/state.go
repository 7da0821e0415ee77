package game

import (
	"fmt"
	"slices"

	"golang.org/x/exp/rand"
)

// State is the full mutable state of a game: the board, both players and
// the turn counter.
type State struct {
	Board   *Board
	Players [NumPlayers]Player
	Turn    int
}

// NewState returns a state with the whole deck in the draw pile. Call
// Setup to deal.
func NewState(weights1, weights2 Weights) *State {
	return &State{
		Board: NewBoard(),
		Players: [NumPlayers]Player{
			{ID: 1, Weights: weights1},
			{ID: 2, Weights: weights2},
		},
	}
}

// Setup lays out the rows, deals every hand and one collection card per
// player, then shuffles the discarded duplicates back into the draw pile.
func (s *State) Setup(rng *rand.Rand) error {
	if err := s.Board.SetupRows(rng); err != nil {
		return err
	}
	for _, p := range s.Players {
		if err := s.DrawCards(p.ID, HandSize, rng); err != nil {
			return fmt.Errorf("failed to deal: %w", err)
		}
	}
	for i := range s.Players {
		card, err := s.Board.Draw(rng)
		if err != nil {
			return fmt.Errorf("failed to draw starting collection: %w", err)
		}
		s.Players[i].Collection[card]++
	}
	s.Board.Reshuffle()
	return nil
}

func (s *State) Player(id int) *Player {
	mustBePlayer(id)
	return &s.Players[id-1]
}

func (s *State) Copy() *State {
	c := *s
	c.Board = s.Board.Copy()
	return &c
}

// Census counts every card in the game by species, wherever it lies.
func (s *State) Census() Counts {
	c := s.Board.DrawPile
	c.Merge(s.Board.DiscardPile)
	c.Merge(s.Board.Boxed)
	c.Merge(s.Board.OnBoard())
	for _, p := range s.Players {
		c.Merge(p.Hand)
		c.Merge(p.Collection)
	}
	return c
}

// Snapshot is a frozen copy of a State.
type Snapshot struct {
	state State
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{state: *s.Copy()}
}

// Restore overwrites the state with a snapshot, reusing row storage.
func (s *State) Restore(snapshot Snapshot) {
	if s.Board == nil {
		s.Board = &Board{}
	}
	rows := s.Board.Rows
	*s.Board = *snapshot.state.Board
	for i, row := range snapshot.state.Board.Rows {
		s.Board.Rows[i] = append(rows[i][:0], row...)
	}
	s.Players = snapshot.state.Players
	s.Turn = snapshot.state.Turn
}

// State returns a fresh copy of the snapshot's state.
func (snap Snapshot) State() *State {
	return snap.state.Copy()
}

// SetCollection replaces a player's collection, trading cards with the
// draw pile.
func (s *State) SetCollection(id int, collection Counts) error {
	player := s.Player(id)
	if !exchange(&s.Board.DrawPile, &player.Collection, collection) {
		return fmt.Errorf("cannot set collection of %s: %w", player, ErrInsufficientCards)
	}
	return nil
}

// SetHand replaces a player's hand, trading cards with the draw pile.
func (s *State) SetHand(id int, hand Counts) error {
	player := s.Player(id)
	if !exchange(&s.Board.DrawPile, &player.Hand, hand) {
		return fmt.Errorf("cannot set hand of %s: %w", player, ErrInsufficientCards)
	}
	return nil
}

// SetRow replaces the cards of a row, trading cards with the draw pile.
func (s *State) SetRow(row int, cards Row) error {
	var current, target Counts
	current.AddAll(s.Board.row(row))
	target.AddAll(cards)
	if !exchange(&s.Board.DrawPile, &current, target) {
		return fmt.Errorf("cannot set row %d: %w", row, ErrInsufficientCards)
	}
	s.Board.Rows[row] = slices.Clone(cards)
	return nil
}

// SetDrawPile replaces the draw pile. Surplus cards are set aside, missing
// cards come from the set aside cards first and the discard pile second.
func (s *State) SetDrawPile(pile Counts) error {
	b := s.Board
	for i, n := range pile {
		if n < 0 || n > b.DrawPile[i]+b.Boxed[i]+b.DiscardPile[i] {
			return fmt.Errorf("cannot set draw pile to %d %s: %w", n, Species(i), ErrInsufficientCards)
		}
	}
	for i, n := range pile {
		if n <= b.DrawPile[i] {
			b.Boxed[i] += b.DrawPile[i] - n
		} else {
			need := n - b.DrawPile[i]
			fromBox := min(need, b.Boxed[i])
			b.Boxed[i] -= fromBox
			b.DiscardPile[i] -= need - fromBox
		}
		b.DrawPile[i] = n
	}
	return nil
}

// exchange returns slot to pile and takes target from it. Nothing changes
// when pile cannot cover target.
func exchange(pile, slot *Counts, target Counts) bool {
	pool := *pile
	pool.Merge(*slot)
	for _, n := range target {
		if n < 0 {
			return false
		}
	}
	if !pool.Contains(target) {
		return false
	}
	*pile = pool.Sub(target)
	*slot = target
	return true
}
