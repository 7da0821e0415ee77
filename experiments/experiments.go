package experiments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cubirds/engine"
	"cubirds/experiments/metrics"
	"cubirds/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Agent is a player configuration taking part in an experiment.
type Agent struct {
	ID     int
	Config engine.PlayerConfig
}

func (a Agent) record() metrics.AgentConfig {
	w := a.Config.Weights
	return metrics.AgentConfig{
		ID:         a.ID,
		Strategy:   a.Config.Strategy.String(),
		Rollouts:   a.Config.Rollouts,
		Goroutines: a.Config.Goroutines,
		Own:        w.Own,
		LookAhead:  w.LookAhead,
		Rarity:     w.Rarity,
		Opponent:   w.Opponent,
		Goal:       w.Goal,
		Volume:     w.Volume,
	}
}

// Summary aggregates the results of a matchup.
type Summary struct {
	Games    int
	Scores   [3][3]int // Games by win reason and winner, winner 0 is a tie
	Turns    int
	Elapsed1 time.Duration
	Elapsed2 time.Duration
}

func (s *Summary) add(result engine.Result, g *engine.Game) {
	s.Games++
	s.Scores[result.Reason][result.Winner]++
	s.Turns += g.Turns()
	e1, e2 := g.Elapsed()
	s.Elapsed1 += e1
	s.Elapsed2 += e2
}

// Wins returns the number of games a player won, 0 counts ties.
func (s Summary) Wins(player int) int {
	wins := 0
	for _, byWinner := range s.Scores {
		wins += byWinner[player]
	}
	return wins
}

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-14s %8s %8s %8s\n", "reason", "tie", "player1", "player2")
	for _, reason := range []game.WinReason{game.Depletion, game.SevenSpecies, game.TwoTriplets} {
		row := s.Scores[reason]
		fmt.Fprintf(&b, "%-14s %8d %8d %8d\n", reason, row[0], row[1], row[2])
	}
	fmt.Fprintf(&b, "%-14s %8d %8d %8d\n", "total", s.Wins(0), s.Wins(1), s.Wins(2))
	if s.Games > 0 {
		fmt.Fprintf(&b, "games=%d avg_turns=%.1f avg_time1=%s avg_time2=%s",
			s.Games,
			float64(s.Turns)/float64(s.Games),
			s.Elapsed1/time.Duration(s.Games),
			s.Elapsed2/time.Duration(s.Games))
	}
	return b.String()
}

// Matchup plays a number of games between two agents.
type Matchup struct {
	Agent1   Agent
	Agent2   Agent
	Games    int
	Seed     uint64
	Workers  int  // Games played at once
	MaxTurns int  // 0 keeps the engine default
	Record   bool // Keep per move search metrics
}

type matchupResult struct {
	Summary Summary
	Games   []metrics.GameRecord
	Moves   []metrics.MoveRecord
}

// RunMatchup plays the games of a matchup. Every game gets its own seed
// drawn from the matchup seed, so results do not depend on scheduling.
func RunMatchup(ctx context.Context, m Matchup) (Summary, []metrics.GameRecord, []metrics.MoveRecord, error) {
	r, err := runMatchup(ctx, m, log.Logger)
	return r.Summary, r.Games, r.Moves, err
}

func runMatchup(ctx context.Context, m Matchup, logger zerolog.Logger) (matchupResult, error) {
	master := rand.New(rand.NewSource(m.Seed))
	seeds := make([]uint64, m.Games)
	for i := range seeds {
		seeds[i] = master.Uint64()
	}

	games := make([]*engine.Game, m.Games)
	results := make([]engine.Result, m.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(m.Workers, 1))
	for i := range seeds {
		i := i // per-iteration copy; go directive lowered to 1.21 for the local toolchain
		g.Go(func() error {
			options := []engine.Option{engine.WithSeed(seeds[i]), engine.WithLogger(logger)}
			if m.MaxTurns > 0 {
				options = append(options, engine.WithMaxTurns(m.MaxTurns))
			}
			if m.Record {
				options = append(options, engine.WithMetrics())
			}
			games[i] = engine.NewGame(m.Agent1.Config, m.Agent2.Config, options...)

			result, err := games[i].Play(ctx)
			if err != nil {
				return fmt.Errorf("game %d of %d failed: %w", i+1, m.Games, err)
			}
			results[i] = result
			logger.Debug().Msgf("completed game %d of %d with winner %d by %s", i+1, m.Games, result.Winner, result.Reason)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return matchupResult{}, err
	}

	var r matchupResult
	for i, played := range games {
		r.Summary.add(results[i], played)
		r.Games = append(r.Games, metrics.GameRecord{
			Index:      i + 1,
			Agent1:     m.Agent1.ID,
			Agent2:     m.Agent2.ID,
			GameMetric: played.GameMetric(),
		})
		for _, move := range played.Metrics() {
			r.Moves = append(r.Moves, metrics.MoveRecord{Game: i + 1, MoveMetric: move})
		}
	}
	return r, nil
}

// Run plays every matchup, logs a summary per matchup and, when dir is
// set, stores the records under dir/name.
func Run(ctx context.Context, name, dir string, matchups []Matchup) ([]Summary, error) {
	log.Info().Msgf("starting %s experiment...", name)

	summaries := []Summary{}
	agents := map[int]metrics.AgentConfig{}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	for mi, m := range matchups {
		log.Info().Msgf("starting matchup %d of %d between agent1=%s and agent2=%s...",
			mi+1, len(matchups), m.Agent1.Config, m.Agent2.Config)

		r, err := runMatchup(ctx, m, log.Logger)
		if err != nil {
			return summaries, fmt.Errorf("matchup %d failed: %w", mi+1, err)
		}
		summaries = append(summaries, r.Summary)
		agents[m.Agent1.ID] = m.Agent1.record()
		agents[m.Agent2.ID] = m.Agent2.record()

		// Number games across matchups
		offset := len(gameRecords)
		for _, record := range r.Games {
			record.Index += offset
			gameRecords = append(gameRecords, record)
		}
		for _, record := range r.Moves {
			record.Game += offset
			moveRecords = append(moveRecords, record)
		}

		log.Info().Msgf("completed matchup %d of %d\n%s", mi+1, len(matchups), r.Summary)
	}

	log.Info().Msgf("completed %s experiment", name)
	if dir == "" {
		return summaries, nil
	}

	configs := []metrics.AgentConfig{}
	for _, m := range matchups {
		for _, id := range []int{m.Agent1.ID, m.Agent2.ID} {
			if config, ok := agents[id]; ok {
				configs = append(configs, config)
				delete(agents, id)
			}
		}
	}
	if err := store(dir, name, configs, gameRecords, moveRecords); err != nil {
		return summaries, err
	}
	return summaries, nil
}

func store(dir, name string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(games)
	if err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moves)
	if err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}
