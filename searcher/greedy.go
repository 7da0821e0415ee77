package searcher

import (
	"context"

	"cubirds/game"

	"golang.org/x/exp/rand"
)

// GoalSwitch replaces a player's goal preference once the turn counter
// passes AfterTurn.
type GoalSwitch struct {
	AfterTurn int
	Goal      float64
}

// Greedy plays the placement with the best heuristic score and converts
// families toward its active goal.
type Greedy struct {
	goalSwitch *GoalSwitch
}

func NewGreedy(goalSwitch *GoalSwitch) *Greedy {
	return &Greedy{goalSwitch: goalSwitch}
}

// player returns a copy of the player with the goal preference in effect
// for the current turn.
func (g *Greedy) player(s *game.State, id int) game.Player {
	p := *s.Player(id)
	if g.goalSwitch != nil && s.Turn > g.goalSwitch.AfterTurn {
		p.Weights.Goal = g.goalSwitch.Goal
	}
	return p
}

func (g *Greedy) PlayCards(ctx context.Context, s *game.State, id int, rng *rand.Rand) (game.Play, error) {
	me := g.player(s, id)
	opponent := *s.Player(game.Opponent(id))

	placement, score := Best(s.Board, me, opponent, true)
	if score > 0 {
		return game.Play{Placement: placement, Replace: game.ReplaceAlways}, nil
	}

	// Nothing worth collecting, lay something at random
	placements := game.LegalPlacements(me.Hand)
	return game.Play{Placement: placements[rng.Intn(len(placements))], Replace: game.ReplaceCoinFlip}, nil
}

func (g *Greedy) PlayFamily(s *game.State, id int, rng *rand.Rand) game.Species {
	return chooseFamily(s, id, g.player(s, id).Weights)
}
