package searcher

import "cubirds/game"

// chooseFamily picks the family to convert toward the active goal, or
// game.NoFamily to keep the cards.
func chooseFamily(s *game.State, id int, weights game.Weights) game.Species {
	me := s.Player(id)
	families := game.LegalFamilies(me.Hand)
	if len(families) == 0 {
		return game.NoFamily
	}

	if sevenGoal(weights, me.Collection) {
		for _, f := range families {
			if me.Collection[f] == 0 {
				return f
			}
		}
		return game.NoFamily
	}

	// Finish a triplet with a big family first
	for _, f := range families {
		if me.Collection[f] == 1 && me.Hand[f] >= game.Catalog[f].BigFamily {
			return f
		}
	}

	// Cash in a pair, or anything when the opponent is about to redeal
	opponent := s.Player(game.Opponent(id)).Hand.Total()
	risky := opponent < 3 || (opponent < 6 && s.Turn > 10)
	for _, f := range families {
		if me.Collection[f] == 2 || risky {
			return f
		}
	}

	// Start a new species when the current ones cannot make two triplets
	if me.Collection.Distinct() <= 1 || completable(s.Board.DrawPile, me.Collection) < 2 {
		for _, f := range families {
			if me.Collection[f] == 0 {
				return f
			}
		}
	}
	return game.NoFamily
}

// completable counts the species of a collection that are, or can still
// become, triplets with the cards left in the draw pile.
func completable(draw, collection game.Counts) int {
	n := 0
	for s, have := range collection {
		bird := game.Catalog[s]
		switch {
		case have >= 3:
			n++
		case have == 2 && draw[s] >= bird.SmallFamily:
			n++
		case have == 1 && draw[s] >= bird.BigFamily:
			n++
		}
	}
	return n
}
