package game

// Weights scale the terms of the move scoring heuristic. Any real value is
// accepted, the tuned ranges are roughly [0,1] with Goal in [0,2] and
// Rarity in [-1,1].
type Weights struct {
	Own       float64 // Cards that advance the active goal
	LookAhead float64 // Best follow-up play with the collected cards
	Rarity    float64 // Rarity of the collected cards
	Opponent  float64 // Value of the collected cards to the opponent
	Goal      float64 // Preference for two triplets over seven species
	Volume    float64 // Number of collected cards
}

func DefaultWeights() Weights {
	return Weights{Own: 1, LookAhead: 1, Rarity: 1, Opponent: 1, Goal: 1, Volume: 1}
}

type Player struct {
	ID         int // 1 or 2
	Hand       Counts
	Collection Counts
	Weights    Weights
}

func (p *Player) String() string {
	return playerName(p.ID)
}
