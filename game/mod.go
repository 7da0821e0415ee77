package game

import "fmt"

const NumPlayers = 2

// HandSize is the number of cards dealt to each player.
const HandSize = 8

// ReplacementDraw is the number of cards drawn after a placement that
// collected nothing.
const ReplacementDraw = 2

// Tie is the winner index of a game without a winner.
const Tie = 0

// Opponent returns the ID of the other player.
func Opponent(id int) int {
	mustBePlayer(id)
	return NumPlayers + 1 - id
}

func playerName(id int) string {
	return fmt.Sprintf("Player%d", id)
}

func mustBePlayer(id int) {
	if id < 1 || id > NumPlayers {
		panic(fmt.Sprintf("invalid player %d", id))
	}
}
