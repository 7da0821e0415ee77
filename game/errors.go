package game

import "errors"

// ErrPileExhausted is returned when a card is needed but both the draw
// and discard piles are empty.
var ErrPileExhausted = errors.New("draw and discard piles exhausted")

// ErrInsufficientCards is returned when cards are requested from a pile
// that does not hold them.
var ErrInsufficientCards = errors.New("insufficient cards")
