package searcher

import (
	"context"
	"testing"

	"cubirds/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestRandomPlayCards(t *testing.T) {
	t.Run("plays only legal placements", func(t *testing.T) {
		s := newTestState(t)
		rng := rand.New(rand.NewSource(3))
		hand := s.Player(2).Hand

		seen := map[game.Species]int{}
		for i := 0; i < 1000; i++ {
			play, err := Random{}.PlayCards(context.Background(), s, 2, rng)
			require.NoError(t, err)
			require.Greater(t, hand[play.Placement.Species], 0, "Should lay a species in hand")
			require.GreaterOrEqual(t, play.Placement.Row, 0, "Should pick a valid row")
			require.Less(t, play.Placement.Row, game.NumRows, "Should pick a valid row")
			require.Equal(t, game.ReplaceCoinFlip, play.Replace, "Should draw on a coin flip")
			seen[play.Placement.Species]++
		}

		require.Len(t, seen, 3, "Should try every species in hand")
		require.Greater(t, seen[game.Duck], seen[game.Parrot], "Should favour species with more cards")
	})
}

func TestRandomPlayFamily(t *testing.T) {
	t.Run("keeps or converts a legal family", func(t *testing.T) {
		s := newTestState(t)
		require.NoError(t, s.SetHand(1, game.Counts{game.Flamingo: 2, game.Owl: 1}))
		rng := rand.New(rand.NewSource(3))

		seen := map[game.Species]bool{}
		for i := 0; i < 100; i++ {
			seen[Random{}.PlayFamily(s, 1, rng)] = true
		}

		require.Equal(t, map[game.Species]bool{game.NoFamily: true, game.Flamingo: true}, seen,
			"Should only keep the cards or convert flamingos")
	})
}
