package searcher

import (
	"math"

	"cubirds/game"
)

// Damping scales down the best follow-up play in look-ahead terms.
const Damping = 3.0

// Volume is normalized by the largest number of cards one play could ever collect.
var maxVolume = math.Log(1 + game.DeckSize)

// SevenDistance returns how many species the collection still misses for
// the seven species goal.
func SevenDistance(collection game.Counts) int {
	return game.NumSpecies - collection.Distinct() - 1
}

// TripletsDistance grades how far the collection is from two triplets on
// a scale from 0 (done) to 5 (nothing collected).
func TripletsDistance(collection game.Counts) int {
	var ones, twos, threes int
	for _, n := range collection {
		switch {
		case n >= 3:
			threes++
		case n == 2:
			twos++
		case n == 1:
			ones++
		}
	}

	switch {
	case threes >= 2:
		return 0
	case threes == 1 && twos >= 1:
		return 1
	case threes == 1 && ones >= 1, twos >= 2:
		return 2
	case twos == 1 && ones >= 1, threes == 1:
		return 3
	case ones >= 2, twos == 1:
		return 4
	default:
		return 5
	}
}

// sevenGoal reports whether the seven species goal is the closer one once
// the goal preference is applied.
func sevenGoal(weights game.Weights, collection game.Counts) bool {
	return weights.Goal*float64(TripletsDistance(collection)) > float64(SevenDistance(collection))
}

// helps reports whether one more card of species advances the active goal.
func helps(collection game.Counts, species game.Species, seven bool) bool {
	have := collection[species]
	if seven {
		return have == 0
	}
	return have == 1 || have == 2 || (have == 0 && collection.Distinct() <= 1)
}

// Score rates collecting the enclosed cards for player me. With lookAhead
// it also credits the best follow-up play for both players, one ply deep.
func Score(board *game.Board, me, opponent game.Player, enclosed []game.Species, lookAhead bool) float64 {
	if len(enclosed) == 0 {
		return 0
	}
	w := me.Weights
	seven := sevenGoal(w, me.Collection)

	helpful, rarity := 0, 0.0
	for _, card := range enclosed {
		if helps(me.Collection, card, seven) {
			helpful++
		}
		rarity += card.Bird().Rarity
	}
	volume := math.Log(1+float64(len(enclosed))) / maxVolume
	score := w.Own*float64(helpful) + w.Rarity*rarity + w.Volume*volume
	if !lookAhead {
		return score
	}

	mine := me
	mine.Hand.AddAll(enclosed)
	if mine.Hand.Distinct() <= 1 {
		score += w.LookAhead
	} else {
		_, best := Best(board, mine, opponent, false)
		score += w.LookAhead * best / Damping
	}

	// Cards worth a lot to the opponent are worth taking away
	theirs := opponent
	theirs.Hand.AddAll(enclosed)
	_, best := Best(board, theirs, me, false)
	score += w.Opponent * best / Damping

	return score
}

// Best returns the placement with the highest positive score and that
// score, or a zero score when no placement scores above zero. Ties keep
// the first placement in enumeration order.
func Best(board *game.Board, me, opponent game.Player, lookAhead bool) (game.Placement, float64) {
	var best game.Placement
	bestScore := 0.0
	for _, p := range game.LegalPlacements(me.Hand) {
		enclosed := board.Enclosed(p.Row, p.Species, p.Side)
		if score := Score(board, me, opponent, enclosed, lookAhead); score > bestScore {
			best, bestScore = p, score
		}
	}
	return best, bestScore
}
