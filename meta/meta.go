// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines used by rollout search.
const GO_ROUTINES = 8

// ROLLOUTS defines the number of playouts per candidate move.
const ROLLOUTS = 1000

// MAX_TURNS bounds the length of a game and of every playout.
const MAX_TURNS = 1000

// MAX_REDEALS bounds the redeal cycles within a single turn.
const MAX_REDEALS = 16
