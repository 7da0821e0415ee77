package game

import (
	"fmt"
	"slices"

	"cubirds/utils"

	"golang.org/x/exp/rand"
)

const NumRows = 4

// RowSetup is the number of distinct species each row starts with.
const RowSetup = 3

// Row is an ordered line of cards, index 0 is the front.
type Row []Species

// Board holds the shared rows and the two piles.
type Board struct {
	Rows        [NumRows]Row
	DrawPile    Counts
	DiscardPile Counts
	Boxed       Counts // Cards set aside by state injection, out of play
}

func NewBoard() *Board {
	return &Board{DrawPile: FullDeck()}
}

func (b *Board) Copy() *Board {
	c := *b
	for i, row := range b.Rows {
		c.Rows[i] = slices.Clone(row)
	}
	return &c
}

// Available returns the number of cards that can still be drawn,
// reshuffles included.
func (b *Board) Available() int {
	return b.DrawPile.Total() + b.DiscardPile.Total()
}

// Reshuffle moves the discard pile into the draw pile.
func (b *Board) Reshuffle() {
	b.DrawPile.Merge(b.DiscardPile)
	b.DiscardPile = Counts{}
}

// Draw takes one card from the draw pile, each species weighted by its
// remaining count. An empty draw pile is refilled from the discard pile
// first.
func (b *Board) Draw(rng *rand.Rand) (Species, error) {
	if b.DrawPile.Total() == 0 {
		b.Reshuffle()
	}
	total := b.DrawPile.Total()
	if total == 0 {
		return 0, ErrPileExhausted
	}
	card := b.DrawPile.Sample(rng.Intn(total))
	b.DrawPile[card]--
	return card, nil
}

// SetupRows fills every row with RowSetup distinct species. Duplicates are
// discarded.
func (b *Board) SetupRows(rng *rand.Rand) error {
	for i := range b.Rows {
		row := make(Row, 0, RowSetup)
		for len(row) < RowSetup {
			card, err := b.Draw(rng)
			if err != nil {
				return fmt.Errorf("failed to set up row %d: %w", i, err)
			}
			if slices.Contains(row, card) {
				b.DiscardPile[card]++
				continue
			}
			row = append(row, card)
		}
		b.Rows[i] = row
	}
	return nil
}

// Enclosed returns the cards that laying species at the given end of a row
// would collect, without changing the row.
func (b *Board) Enclosed(row int, species Species, side Side) []Species {
	r := b.row(row)
	start, end, ok := enclosure(r, species, side)
	if !ok {
		return nil
	}
	return slices.Clone(r[start:end])
}

// Place lays count cards of species at one end of a row, removes and
// returns the enclosed cards, then draws onto the row while it holds a
// single species.
func (b *Board) Place(species Species, row int, side Side, count int, rng *rand.Rand) []Species {
	species.mustBeValid()
	if count <= 0 {
		panic(fmt.Sprintf("cannot place %d cards", count))
	}
	r := b.row(row)

	var collected []Species
	start, end, ok := enclosure(r, species, side)
	if ok {
		collected = slices.Clone(r[start:end])
	}

	next := make(Row, 0, len(r)-len(collected)+count)
	if side == Front {
		next = append(next, utils.Repeat(species, count)...)
	}
	next = append(next, r[:start]...)
	next = append(next, r[end:]...)
	if side == Back {
		next = append(next, utils.Repeat(species, count)...)
	}
	b.Rows[row] = next

	b.refill(row, rng)
	return collected
}

// refill draws onto the back of a single species row until another
// species shows up or the piles run out.
func (b *Board) refill(row int, rng *rand.Rand) {
	r := b.Rows[row]
	for r.single() {
		card, err := b.Draw(rng)
		if err != nil { // Pile exhausted, leave the row as is
			break
		}
		r = append(r, card)
	}
	b.Rows[row] = r
}

func (b *Board) row(row int) Row {
	if row < 0 || row >= NumRows {
		panic(fmt.Sprintf("invalid row %d", row))
	}
	return b.Rows[row]
}

// OnBoard counts the cards lying in the rows.
func (b *Board) OnBoard() Counts {
	var c Counts
	for _, row := range b.Rows {
		c.AddAll(row)
	}
	return c
}

// enclosure locates the cards caught between a run of species laid at
// one end of row and the next card of that species further in. Cards of
// the same species already sitting at that end join the laid run. The
// enclosed cards are row[start:end].
func enclosure(row Row, species Species, side Side) (start, end int, ok bool) {
	switch side {
	case Front:
		i := utils.SkipRun(row, species, 0, 1)
		k := utils.FindIndex(row, species, i, 1)
		if k < 0 {
			return 0, 0, false
		}
		return i, k, true
	case Back:
		j := utils.SkipRun(row, species, len(row)-1, -1)
		k := utils.FindIndex(row, species, j, -1)
		if k < 0 {
			return 0, 0, false
		}
		return k + 1, j + 1, true
	default:
		panic(fmt.Sprintf("invalid side %d", side))
	}
}

func (r Row) single() bool {
	if len(r) == 0 {
		return false
	}
	for _, card := range r[1:] {
		if card != r[0] {
			return false
		}
	}
	return true
}
