package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestPlace(t *testing.T) {
	t.Run("back placement encloses up to the far boundary", func(t *testing.T) {
		b := &Board{}
		b.Rows[0] = Row{Flamingo, Owl, Toucan, Flamingo}
		b.DrawPile[Magpie] = 1

		collected := b.Place(Flamingo, 0, Back, 1, newTestRand())

		require.Equal(t, []Species{Owl, Toucan}, collected, "Should collect the cards between the flamingos")
		require.Equal(t, Row{Flamingo, Flamingo, Flamingo, Magpie}, b.Rows[0],
			"Single species row should draw until another species shows up")
		require.Equal(t, 0, b.DrawPile.Total(), "Should have drawn the only card")
	})

	t.Run("front placement encloses up to the nearest occurrence", func(t *testing.T) {
		b := &Board{}
		b.Rows[1] = Row{Owl, Duck, Flamingo, Duck}

		collected := b.Place(Flamingo, 1, Front, 2, newTestRand())

		require.Equal(t, []Species{Owl, Duck}, collected, "Should collect the cards before the first flamingo")
		require.Equal(t, Row{Flamingo, Flamingo, Flamingo, Duck}, b.Rows[1], "Should keep the rest of the row")
	})

	t.Run("no occurrence extends the row", func(t *testing.T) {
		b := &Board{}
		b.Rows[2] = Row{Owl, Toucan, Duck}

		collected := b.Place(Robin, 2, Back, 3, newTestRand())

		require.Empty(t, collected, "Should collect nothing")
		require.Equal(t, Row{Owl, Toucan, Duck, Robin, Robin, Robin}, b.Rows[2], "Should append the cards")
	})

	t.Run("adjacent occurrence encloses nothing", func(t *testing.T) {
		b := &Board{}
		b.Rows[0] = Row{Owl, Toucan, Duck}

		collected := b.Place(Owl, 0, Front, 1, newTestRand())

		require.Empty(t, collected, "Should collect nothing")
		require.Equal(t, Row{Owl, Owl, Toucan, Duck}, b.Rows[0], "Should prepend the card")
	})

	t.Run("exhausted piles leave a single species row", func(t *testing.T) {
		b := &Board{}
		b.Rows[3] = Row{Duck, Owl, Duck}

		collected := b.Place(Duck, 3, Back, 1, newTestRand())

		require.Equal(t, []Species{Owl}, collected, "Should collect the owl")
		require.Equal(t, Row{Duck, Duck, Duck}, b.Rows[3], "Should stop refilling without cards")
	})

	t.Run("panics on illegal input", func(t *testing.T) {
		b := &Board{}
		b.Rows[0] = Row{Owl, Toucan, Duck}

		require.Panics(t, func() { b.Place(Owl, NumRows, Back, 1, newTestRand()) }, "Should panic on a bad row")
		require.Panics(t, func() { b.Place(Owl, 0, Back, 0, newTestRand()) }, "Should panic on zero cards")
		require.Panics(t, func() { b.Place(Species(NumSpecies), 0, Back, 1, newTestRand()) }, "Should panic on a bad species")
	})
}

func TestEnclosed(t *testing.T) {
	t.Run("matches placement without mutating", func(t *testing.T) {
		b := &Board{}
		b.Rows[0] = Row{Flamingo, Owl, Toucan, Flamingo}

		enclosed := b.Enclosed(0, Flamingo, Back)

		require.Equal(t, []Species{Owl, Toucan}, enclosed, "Should report the same cards as a placement")
		require.Equal(t, Row{Flamingo, Owl, Toucan, Flamingo}, b.Rows[0], "Should leave the row untouched")
	})

	t.Run("returns nothing without a boundary", func(t *testing.T) {
		b := &Board{}
		b.Rows[0] = Row{Owl, Toucan, Duck}

		require.Nil(t, b.Enclosed(0, Robin, Front), "Should not enclose anything")
	})
}

func TestDraw(t *testing.T) {
	t.Run("frequency follows pile counts", func(t *testing.T) {
		rng := newTestRand()
		b := &Board{}
		draws := 100000
		flamingos := 0
		for i := 0; i < draws; i++ {
			b.DrawPile = Counts{Flamingo: 7, Owl: 3}
			card, err := b.Draw(rng)
			require.NoError(t, err)
			if card == Flamingo {
				flamingos++
			}
		}

		require.InDelta(t, 0.7, float64(flamingos)/float64(draws), 0.01,
			"Should draw flamingos about 70% of the time")
	})

	t.Run("reshuffles the discard pile", func(t *testing.T) {
		b := &Board{}
		b.DiscardPile[Owl] = 2

		card, err := b.Draw(newTestRand())

		require.NoError(t, err)
		require.Equal(t, Owl, card, "Should draw from the reshuffled discards")
		require.Equal(t, Counts{Owl: 1}, b.DrawPile, "Should leave one owl to draw")
		require.Equal(t, Counts{}, b.DiscardPile, "Should empty the discard pile")
	})

	t.Run("signals exhaustion", func(t *testing.T) {
		b := &Board{}

		_, err := b.Draw(newTestRand())

		require.ErrorIs(t, err, ErrPileExhausted, "Should report empty piles")
	})
}

func TestSetupRows(t *testing.T) {
	t.Run("rows start with distinct species", func(t *testing.T) {
		b := NewBoard()

		require.NoError(t, b.SetupRows(newTestRand()))

		for i, row := range b.Rows {
			require.Len(t, row, RowSetup, "Row %d should hold three cards", i)
			var c Counts
			c.AddAll(row)
			require.Equal(t, RowSetup, c.Distinct(), "Row %d should hold distinct species", i)
		}
		total := b.DrawPile.Total() + b.DiscardPile.Total() + b.OnBoard().Total()
		require.Equal(t, DeckSize, total, "Should keep every card")
	})
}
