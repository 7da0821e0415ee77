package searcher

import (
	"context"
	"fmt"

	"cubirds/experiments/metrics"
	"cubirds/game"
	"cubirds/meta"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type Option func(m *MonteCarlo)

// Combination is one full turn choice: a placement and the family to
// convert afterwards.
type Combination struct {
	Placement game.Placement
	Family    game.Species
}

// MonteCarlo rates every combination by the number of random playouts the
// player wins after making it.
type MonteCarlo struct {
	goroutines int
	repeats    int
	maxTurns   int
	metrics    metrics.Collector
	family     game.Species // Chosen by the last search, converted by PlayFamily
	searches   []metrics.SearchMetric
}

type job struct {
	combination int
	repeat      int
}

func WithGoroutines(goroutines int) Option {
	return func(m *MonteCarlo) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

func WithRepeats(repeats int) Option {
	return func(m *MonteCarlo) {
		if repeats > 0 {
			m.repeats = repeats
		}
	}
}

func WithMaxTurns(turns int) Option {
	return func(m *MonteCarlo) {
		if turns > 0 {
			m.maxTurns = turns
		}
	}
}

func WithMetrics() Option {
	return func(m *MonteCarlo) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMonteCarlo(options ...Option) *MonteCarlo {
	m := &MonteCarlo{ // Default values
		goroutines: meta.GO_ROUTINES,
		repeats:    meta.ROLLOUTS,
		maxTurns:   meta.MAX_TURNS,
		metrics:    metrics.NewDummyCollector(),
		family:     game.NoFamily,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Combinations enumerates placements in game.LegalPlacements order, each
// followed by keeping the cards and then every other legal family.
func Combinations(hand game.Counts) []Combination {
	families := game.LegalFamilies(hand)
	combinations := []Combination{}
	for _, p := range game.LegalPlacements(hand) {
		combinations = append(combinations, Combination{Placement: p, Family: game.NoFamily})
		for _, f := range families {
			if f != p.Species {
				combinations = append(combinations, Combination{Placement: p, Family: f})
			}
		}
	}
	return combinations
}

// Search plays out every combination for player id and returns the one
// with the most wins. Ties keep the first combination. The state is only
// read. Every playout seeds its own generator from seed, the combination
// and the repeat, so results do not depend on scheduling.
func (m *MonteCarlo) Search(ctx context.Context, s *game.State, id int, seed uint64) (Combination, metrics.SearchMetric, error) {
	combinations := Combinations(s.Player(id).Hand)
	if len(combinations) == 0 {
		panic(fmt.Sprintf("Player%d has no legal moves", id))
	}
	snapshot := s.Snapshot()
	m.metrics.Start(m.goroutines, m.repeats, len(combinations))

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan job, m.goroutines)
	g.Go(func() error {
		defer close(jobs)
		for c := range combinations {
			for r := 0; r < m.repeats; r++ {
				select {
				case jobs <- job{combination: c, repeat: r}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
		return nil
	})

	tallies := make([][]int, m.goroutines)
	for w := range tallies {
		tally := make([]int, len(combinations))
		tallies[w] = tally
		g.Go(func() error {
			var local game.State
			rng := rand.New(rand.NewSource(seed))
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				rng.Seed(jobSeed(seed, j))
				local.Restore(snapshot)
				winner, err := m.playout(ctx, &local, id, combinations[j.combination], rng)
				if err != nil {
					return err
				}
				if winner == id {
					tally[j.combination]++
				}
				m.metrics.AddPlayout()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Combination{}, metrics.SearchMetric{}, fmt.Errorf("rollout search aborted: %w", err)
	}

	wins := make([]int, len(combinations))
	for _, tally := range tallies {
		for c, n := range tally {
			wins[c] += n
		}
	}
	best := 0
	for c := range wins {
		if wins[c] > wins[best] {
			best = c
		}
	}
	return combinations[best], m.metrics.Complete(wins[best]), nil
}

// playout makes the combination then plays random turns until the game
// ends or the turn cap is hit, and returns the winner.
func (m *MonteCarlo) playout(ctx context.Context, s *game.State, id int, c Combination, rng *rand.Rand) (int, error) {
	outcome, err := s.PlayTurn(ctx, id, &scripted{combination: c}, rng)
	if err != nil {
		return game.Tie, err
	}

	player := id
	for turns := 0; !outcome.Over; turns++ {
		if turns >= m.maxTurns {
			return s.Leader(), nil
		}
		player = game.Opponent(player)
		s.Turn++
		outcome, err = s.PlayTurn(ctx, player, Random{}, rng)
		if err != nil {
			return game.Tie, err
		}
	}
	m.metrics.AddFullPlayout()
	return outcome.Winner, nil
}

// PlayCards searches for the best combination and lays its cards. The
// family is kept for PlayFamily.
func (m *MonteCarlo) PlayCards(ctx context.Context, s *game.State, id int, rng *rand.Rand) (game.Play, error) {
	c, metric, err := m.Search(ctx, s, id, rng.Uint64())
	if err != nil {
		return game.Play{}, err
	}
	m.family = c.Family
	m.searches = append(m.searches, metric)
	return game.Play{Placement: c.Placement, Replace: game.ReplaceAlways}, nil
}

// PlayFamily converts the family of the last search if it is still legal.
func (m *MonteCarlo) PlayFamily(s *game.State, id int, rng *rand.Rand) game.Species {
	f := m.family
	m.family = game.NoFamily
	if f == game.NoFamily || s.Player(id).Hand[f] < game.Catalog[f].SmallFamily {
		return game.NoFamily
	}
	return f
}

// Flush returns the metrics of the searches since the last call.
func (m *MonteCarlo) Flush() []metrics.SearchMetric {
	searches := m.searches
	m.searches = nil
	return searches
}

// scripted makes a fixed combination, then falls back to random play if
// a redeal restarts the turn.
type scripted struct {
	combination Combination
	played      bool
	converted   bool
}

func (s *scripted) PlayCards(ctx context.Context, st *game.State, id int, rng *rand.Rand) (game.Play, error) {
	if s.played {
		return Random{}.PlayCards(ctx, st, id, rng)
	}
	s.played = true
	return game.Play{Placement: s.combination.Placement, Replace: game.ReplaceAlways}, nil
}

func (s *scripted) PlayFamily(st *game.State, id int, rng *rand.Rand) game.Species {
	if s.converted {
		return Random{}.PlayFamily(st, id, rng)
	}
	s.converted = true
	f := s.combination.Family
	if f == game.NoFamily || st.Player(id).Hand[f] < game.Catalog[f].SmallFamily {
		return game.NoFamily
	}
	return f
}

// jobSeed mixes the search seed with a job's position (splitmix64).
func jobSeed(seed uint64, j job) uint64 {
	z := seed + uint64(j.combination)*0x9E3779B97F4A7C15 + uint64(j.repeat+1)*0xD1B54A32D192ED03
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
