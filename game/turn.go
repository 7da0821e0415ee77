package game

import (
	"context"
	"errors"

	"cubirds/meta"

	"golang.org/x/exp/rand"
)

// Outcome is the result of a turn. Winner and Reason are only meaningful
// when Over is set.
type Outcome struct {
	Over   bool
	Winner int // 0 for a tie
	Reason WinReason
}

// Strategy makes the decisions of a turn.
type Strategy interface {
	// PlayCards picks the species to lay and where.
	PlayCards(ctx context.Context, s *State, id int, rng *rand.Rand) (Play, error)
	// PlayFamily picks a family to convert after the cards were laid, or
	// NoFamily.
	PlayFamily(s *State, id int, rng *rand.Rand) Species
}

func (r Replace) draws(rng *rand.Rand) bool {
	switch r {
	case ReplaceAlways:
		return true
	case ReplaceCoinFlip:
		return rng.Intn(2) == 0
	default:
		return false
	}
}

// PlayTurn plays one turn for a player: lay cards, maybe convert a family,
// and when the hand runs empty redeal and start over. The turn counter is
// left to the caller.
func (s *State) PlayTurn(ctx context.Context, id int, strategy Strategy, rng *rand.Rand) (Outcome, error) {
	player := s.Player(id)
	if s.Board.Available() == 0 {
		return s.Deplete(), nil
	}

	for cycle := 0; cycle <= meta.MAX_REDEALS; cycle++ {
		if player.Hand.Total() == 0 {
			if err := s.Redeal(rng); err != nil {
				if errors.Is(err, ErrPileExhausted) {
					return s.Deplete(), nil
				}
				return Outcome{}, err
			}
		}

		play, err := strategy.PlayCards(ctx, s, id, rng)
		if err != nil {
			return Outcome{}, err
		}
		collected := s.PlaceCards(id, play.Placement, rng)
		if len(collected) == 0 && player.Hand.Total() > 0 && play.Replace.draws(rng) {
			// Whatever could be drawn stays in hand
			_ = s.DrawCards(id, ReplacementDraw, rng)
		}

		if family := strategy.PlayFamily(s, id, rng); family != NoFamily {
			s.ConvertFamily(id, family)
			if reason, ok := CheckWin(player.Collection); ok {
				return Outcome{Over: true, Winner: id, Reason: reason}, nil
			}
		}

		if player.Hand.Total() > 0 {
			return Outcome{}, nil
		}
	}
	return Outcome{}, nil
}

// Deplete ends the game on collection size.
func (s *State) Deplete() Outcome {
	return Outcome{Over: true, Winner: s.Leader(), Reason: Depletion}
}
