package engine

import (
	"context"
	"fmt"
	"time"

	"cubirds/experiments/metrics"
	"cubirds/game"
	"cubirds/meta"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(g *Game)

// Result is the end of a game. Winner is 0 for a tie.
type Result struct {
	Winner int
	Reason game.WinReason
}

// Game runs a two player game from setup to the end.
type Game struct {
	id         uuid.UUID
	seed       uint64
	state      *game.State
	configs    [game.NumPlayers]PlayerConfig
	strategies [game.NumPlayers]game.Strategy
	rng        *rand.Rand
	clock      Clock
	logger     zerolog.Logger
	maxTurns   int
	metrics    bool
	current    int // Player to move
	elapsed    [game.NumPlayers]time.Duration
	moves      []metrics.MoveMetric
	startTime  time.Time
	endTime    time.Time
	result     *Result
}

func WithSeed(seed uint64) Option {
	return func(g *Game) {
		g.seed = seed
	}
}

func WithClock(clock Clock) Option {
	return func(g *Game) {
		if clock != nil {
			g.clock = clock
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

func WithMaxTurns(turns int) Option {
	return func(g *Game) {
		if turns > 0 {
			g.maxTurns = turns
		}
	}
}

// WithMetrics records search metrics for every Monte-Carlo move.
func WithMetrics() Option {
	return func(g *Game) {
		g.metrics = true
	}
}

// NewGame deals a new game between two players. Player 1 starts.
func NewGame(player1, player2 PlayerConfig, options ...Option) *Game {
	g := &Game{ // Default values
		id:       uuid.New(),
		seed:     uint64(time.Now().UnixNano()),
		configs:  [game.NumPlayers]PlayerConfig{player1, player2},
		clock:    SystemClock{},
		logger:   log.Logger,
		maxTurns: meta.MAX_TURNS,
		current:  1,
	}
	for _, option := range options {
		option(g)
	}
	g.logger = g.logger.With().Str("game", g.id.String()).Logger()
	g.rng = rand.New(rand.NewSource(g.seed))
	for i, config := range g.configs {
		g.strategies[i] = config.newStrategy(g.maxTurns, g.metrics)
	}

	g.state = game.NewState(player1.Weights, player2.Weights)
	if err := g.state.Setup(g.rng); err != nil {
		panic(fmt.Sprintf("failed to set up a full deck: %v", err))
	}
	return g
}

// Play runs turns until the game ends.
func (g *Game) Play(ctx context.Context) (Result, error) {
	g.logger.Info().
		Uint64("seed", g.seed).
		Stringer("player1", g.configs[0]).
		Stringer("player2", g.configs[1]).
		Msg("game started")

	for {
		result, over, err := g.PlayTurn(ctx)
		if err != nil {
			return Result{}, err
		}
		if over {
			return result, nil
		}
	}
}

// PlayTurn plays the turn of the player to move and reports whether the
// game is over.
func (g *Game) PlayTurn(ctx context.Context) (Result, bool, error) {
	if g.result != nil {
		return *g.result, true, nil
	}
	if g.startTime.IsZero() {
		g.startTime = g.clock.Now()
	}
	if g.state.Turn >= g.maxTurns {
		g.logger.Warn().Int("turns", g.state.Turn).Msg("turn cap reached, ending by depletion")
		return g.finish(g.state.Deplete()), true, nil
	}

	id := g.current
	g.state.Turn++
	start := g.clock.Now()
	outcome, err := g.state.PlayTurn(ctx, id, g.strategies[id-1], g.rng)
	g.elapsed[id-1] += g.clock.Now().Sub(start)
	if err != nil {
		return Result{}, false, fmt.Errorf("turn %d of Player%d failed: %w", g.state.Turn, id, err)
	}
	g.collect(id)

	player := g.state.Player(id)
	g.logger.Debug().
		Int("turn", g.state.Turn).
		Int("player", id).
		Int("hand", player.Hand.Total()).
		Int("collection", player.Collection.Total()).
		Int("draw", g.state.Board.DrawPile.Total()).
		Msg("turn played")

	if outcome.Over {
		return g.finish(outcome), true, nil
	}
	g.current = game.Opponent(id)
	return Result{}, false, nil
}

func (g *Game) finish(outcome game.Outcome) Result {
	result := Result{Winner: outcome.Winner, Reason: outcome.Reason}
	g.result = &result
	g.endTime = g.clock.Now()
	g.logger.Info().
		Int("winner", result.Winner).
		Stringer("reason", result.Reason).
		Int("turns", g.state.Turn).
		Dur("elapsed1", g.elapsed[0]).
		Dur("elapsed2", g.elapsed[1]).
		Msg("game over")
	return result
}

// collect gathers the search metrics of the player's last turn.
func (g *Game) collect(id int) {
	flusher, ok := g.strategies[id-1].(interface{ Flush() []metrics.SearchMetric })
	if !ok {
		return
	}
	searches := flusher.Flush()
	if !g.metrics {
		return
	}
	for _, search := range searches {
		g.moves = append(g.moves, metrics.MoveMetric{Turn: g.state.Turn, Player: id, SearchMetric: search})
	}
}

func (g *Game) ID() string {
	return g.id.String()
}

// Turns returns the number of player turns played so far.
func (g *Game) Turns() int {
	return g.state.Turn
}

// Elapsed returns the time each player spent on their turns.
func (g *Game) Elapsed() (time.Duration, time.Duration) {
	return g.elapsed[0], g.elapsed[1]
}

// Metrics returns the search metrics recorded with WithMetrics.
func (g *Game) Metrics() []metrics.MoveMetric {
	return g.moves
}

// GameMetric summarizes a finished game.
func (g *Game) GameMetric() metrics.GameMetric {
	m := metrics.GameMetric{
		ID:             g.ID(),
		StartingPlayer: 1,
		Turns:          g.state.Turn,
		StartTime:      g.startTime,
		EndTime:        g.endTime,
		Duration:       g.endTime.Sub(g.startTime),
		Elapsed1:       g.elapsed[0],
		Elapsed2:       g.elapsed[1],
	}
	if g.result != nil {
		m.Winner = g.result.Winner
		m.Reason = g.result.Reason.String()
	}
	return m
}

// Snapshot returns a frozen copy of the game state.
func (g *Game) Snapshot() game.Snapshot {
	return g.state.Snapshot()
}

func (g *Game) SetStartingCollection(id int, collection game.Counts) error {
	return g.state.SetCollection(id, collection)
}

func (g *Game) SetHand(id int, hand game.Counts) error {
	return g.state.SetHand(id, hand)
}

func (g *Game) SetDrawPile(pile game.Counts) error {
	return g.state.SetDrawPile(pile)
}

func (g *Game) SetRow(row int, cards game.Row) error {
	return g.state.SetRow(row, cards)
}
