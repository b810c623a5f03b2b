package game

import "math/rand"

// Rand covers the randomness the game needs: room codes, doctor assignment and
// prompt picks. Injectable so tests can script exact outcomes.
type Rand interface {
    Intn(n int) int
}

type mathRand struct{}

func (mathRand) Intn(n int) int { return rand.Intn(n) }
