package searcher

import (
	"context"

	"cubirds/game"

	"golang.org/x/exp/rand"
)

// Random plays random legal moves. Species are weighted by the number of
// cards in hand, rows and sides are uniform.
type Random struct{}

func (Random) PlayCards(ctx context.Context, s *game.State, id int, rng *rand.Rand) (game.Play, error) {
	hand := s.Player(id).Hand
	placement := game.Placement{
		Species: hand.Sample(rng.Intn(hand.Total())),
		Row:     rng.Intn(game.NumRows),
		Side:    game.Side(rng.Intn(2)),
	}
	return game.Play{Placement: placement, Replace: game.ReplaceCoinFlip}, nil
}

// PlayFamily picks uniformly among keeping the cards and every legal family.
func (Random) PlayFamily(s *game.State, id int, rng *rand.Rand) game.Species {
	families := game.LegalFamilies(s.Player(id).Hand)
	pick := rng.Intn(len(families) + 1)
	if pick == len(families) {
		return game.NoFamily
	}
	return families[pick]
}
