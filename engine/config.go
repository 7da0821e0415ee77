package engine

import (
	"fmt"
	"strings"

	"cubirds/game"
	"cubirds/meta"
	"cubirds/searcher"
)

type StrategyKind int

const (
	Greedy     StrategyKind = iota // Best heuristic score
	MonteCarlo                     // Most wins over random playouts
	Random                         // Random legal moves
)

func (k StrategyKind) String() string {
	switch k {
	case Greedy:
		return "greedy"
	case MonteCarlo:
		return "montecarlo"
	case Random:
		return "random"
	default:
		return fmt.Sprintf("StrategyKind(%d)", int(k))
	}
}

func ParseStrategy(name string) (StrategyKind, error) {
	for _, k := range []StrategyKind{Greedy, MonteCarlo, Random} {
		if strings.EqualFold(name, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}

// PlayerConfig describes how a player decides.
type PlayerConfig struct {
	Strategy   StrategyKind
	Weights    game.Weights
	GoalSwitch *searcher.GoalSwitch // Greedy only
	Rollouts   int                  // Playouts per combination, MonteCarlo only
	Goroutines int                  // MonteCarlo only
}

func DefaultConfig(kind StrategyKind) PlayerConfig {
	return PlayerConfig{
		Strategy:   kind,
		Weights:    game.DefaultWeights(),
		Rollouts:   meta.ROLLOUTS,
		Goroutines: meta.GO_ROUTINES,
	}
}

func (c PlayerConfig) String() string {
	if c.Strategy == MonteCarlo {
		return fmt.Sprintf("%s(rollouts=%d goroutines=%d)", c.Strategy, c.Rollouts, c.Goroutines)
	}
	return fmt.Sprintf("%s%+v", c.Strategy, c.Weights)
}

func (c PlayerConfig) newStrategy(maxTurns int, withMetrics bool) game.Strategy {
	switch c.Strategy {
	case Greedy:
		return searcher.NewGreedy(c.GoalSwitch)
	case MonteCarlo:
		options := []searcher.Option{
			searcher.WithRepeats(c.Rollouts),
			searcher.WithGoroutines(c.Goroutines),
			searcher.WithMaxTurns(maxTurns),
		}
		if withMetrics {
			options = append(options, searcher.WithMetrics())
		}
		return searcher.NewMonteCarlo(options...)
	case Random:
		return searcher.Random{}
	default:
		panic(fmt.Sprintf("unknown strategy %d", c.Strategy))
	}
}
