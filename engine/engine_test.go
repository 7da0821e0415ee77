package engine

import (
	"context"
	"testing"
	"time"

	"cubirds/game"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fakeClock advances by step on every reading.
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

func newTestGame(p1, p2 StrategyKind, options ...Option) *Game {
	options = append([]Option{WithSeed(1), WithLogger(zerolog.Nop())}, options...)
	return NewGame(DefaultConfig(p1), DefaultConfig(p2), options...)
}

// smallPile takes n cards from draw, lowest species first.
func smallPile(draw game.Counts, n int) game.Counts {
	var pile game.Counts
	for i := range draw {
		take := min(draw[i], n)
		pile[i] = take
		n -= take
	}
	return pile
}

func TestNewGame(t *testing.T) {
	t.Run("deals a conserved deck", func(t *testing.T) {
		g := newTestGame(Greedy, Random)
		s := g.Snapshot().State()

		require.Equal(t, game.FullDeck(), s.Census(), "Should account for every card")
		require.Equal(t, 0, g.Turns(), "Should not have played yet")
		require.NotEmpty(t, g.ID(), "Should have an ID")
	})
}

func TestDepletion(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, collection1, collection2 game.Counts) *Game {
		g := newTestGame(Greedy, Greedy)
		require.NoError(t, g.SetHand(1, game.Counts{}))
		require.NoError(t, g.SetHand(2, game.Counts{}))
		require.NoError(t, g.SetStartingCollection(1, collection1))
		require.NoError(t, g.SetStartingCollection(2, collection2))
		draw := g.Snapshot().State().Board.DrawPile
		require.NoError(t, g.SetDrawPile(smallPile(draw, 5)))
		return g
	}

	t.Run("larger collection wins", func(t *testing.T) {
		g := setup(t, game.Counts{game.Robin: 1}, game.Counts{game.Robin: 1, game.Magpie: 1})

		result, over, err := g.PlayTurn(ctx)

		require.NoError(t, err)
		require.True(t, over, "Should end the game")
		require.Equal(t, Result{Winner: 2, Reason: game.Depletion}, result, "Should award the larger collection")
		require.Equal(t, game.FullDeck(), g.Snapshot().State().Census(), "Should keep every card")
	})

	t.Run("equal collections tie", func(t *testing.T) {
		g := setup(t, game.Counts{game.Robin: 1}, game.Counts{game.Magpie: 1})

		result, over, err := g.PlayTurn(ctx)

		require.NoError(t, err)
		require.True(t, over, "Should end the game")
		require.Equal(t, Result{Winner: game.Tie, Reason: game.Depletion}, result, "Should be a tie")
	})

	t.Run("finished game keeps its result", func(t *testing.T) {
		g := setup(t, game.Counts{game.Robin: 2}, game.Counts{game.Magpie: 1})
		first, _, err := g.PlayTurn(ctx)
		require.NoError(t, err)

		second, over, err := g.PlayTurn(ctx)

		require.NoError(t, err)
		require.True(t, over, "Should stay over")
		require.Equal(t, first, second, "Should repeat the result")
		require.Equal(t, 1, g.Turns(), "Should not play again")
	})
}

func TestPlay(t *testing.T) {
	ctx := context.Background()

	t.Run("random players finish a game", func(t *testing.T) {
		g := newTestGame(Random, Random)

		result, err := g.Play(ctx)

		require.NoError(t, err)
		require.Contains(t, []int{0, 1, 2}, result.Winner, "Should report a winner index")
		require.Greater(t, g.Turns(), 0, "Should count turns")
		require.Equal(t, game.FullDeck(), g.Snapshot().State().Census(), "Should keep every card")
	})

	t.Run("greedy players finish a game", func(t *testing.T) {
		g := newTestGame(Greedy, Greedy)

		result, err := g.Play(ctx)

		require.NoError(t, err)
		if result.Reason != game.Depletion {
			winner := g.Snapshot().State().Player(result.Winner)
			reason, ok := game.CheckWin(winner.Collection)
			require.True(t, ok, "Winner should hold a winning collection")
			require.Equal(t, result.Reason, reason, "Should report the winning set")
		}
		require.Equal(t, game.FullDeck(), g.Snapshot().State().Census(), "Should keep every card")
	})

	t.Run("same seed replays the same game", func(t *testing.T) {
		first := newTestGame(Greedy, Random, WithSeed(21))
		second := newTestGame(Greedy, Random, WithSeed(21))

		firstResult, err := first.Play(ctx)
		require.NoError(t, err)
		secondResult, err := second.Play(ctx)
		require.NoError(t, err)

		require.Equal(t, firstResult, secondResult, "Should end the same way")
		require.Equal(t, first.Turns(), second.Turns(), "Should take the same turns")
		require.Equal(t, first.Snapshot(), second.Snapshot(), "Should end in the same state")
	})

	t.Run("monte carlo player records searches", func(t *testing.T) {
		p1 := DefaultConfig(MonteCarlo)
		p1.Rollouts = 2
		p1.Goroutines = 2
		g := NewGame(p1, DefaultConfig(Random), WithSeed(3), WithLogger(zerolog.Nop()), WithMaxTurns(12), WithMetrics())

		_, err := g.Play(ctx)

		require.NoError(t, err)
		require.NotEmpty(t, g.Metrics(), "Should record the searches")
		for _, move := range g.Metrics() {
			require.Equal(t, 1, move.Player, "Only player 1 searches")
			require.Equal(t, move.Combinations*2, move.Playouts, "Should run every playout")
		}
	})

	t.Run("turn cap ends by depletion", func(t *testing.T) {
		g := newTestGame(Random, Random, WithMaxTurns(3))

		result, err := g.Play(ctx)

		require.NoError(t, err)
		require.Equal(t, 3, g.Turns(), "Should stop at the cap")
		require.Equal(t, game.Depletion, result.Reason, "Should compare collections")
	})

	t.Run("cancelled search stops the game", func(t *testing.T) {
		p1 := DefaultConfig(MonteCarlo)
		p1.Rollouts = 2
		g := NewGame(p1, DefaultConfig(Random), WithSeed(3), WithLogger(zerolog.Nop()))
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := g.Play(cancelled)

		require.ErrorIs(t, err, context.Canceled, "Should surface the cancellation")
	})
}

func TestElapsed(t *testing.T) {
	t.Run("charges each turn to its player", func(t *testing.T) {
		clock := &fakeClock{step: time.Millisecond}
		g := newTestGame(Random, Random, WithClock(clock), WithMaxTurns(6))

		_, err := g.Play(context.Background())
		require.NoError(t, err)

		elapsed1, elapsed2 := g.Elapsed()
		require.Equal(t, 3*time.Millisecond, elapsed1, "Player 1 played three turns")
		require.Equal(t, 3*time.Millisecond, elapsed2, "Player 2 played three turns")
		require.Equal(t, elapsed1, g.GameMetric().Elapsed1, "Should report elapsed time in the game metric")
	})
}

func TestInjection(t *testing.T) {
	t.Run("rejects cards the draw pile does not hold", func(t *testing.T) {
		g := newTestGame(Greedy, Greedy)

		err := g.SetHand(1, game.Counts{game.Flamingo: 8})

		require.ErrorIs(t, err, game.ErrInsufficientCards, "Should refuse impossible hands")
	})
}

func TestParseStrategy(t *testing.T) {
	t.Run("parses known names", func(t *testing.T) {
		kind, err := ParseStrategy("MonteCarlo")
		require.NoError(t, err)
		require.Equal(t, MonteCarlo, kind, "Should ignore case")
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := ParseStrategy("minimax")
		require.Error(t, err, "Should fail on unknown strategies")
	})
}
