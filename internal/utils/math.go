package utils

import (
	"math/rand"
)

// RandomFloat returns a random float64 in [0.0, 1.0)
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// RandomInt returns a random integer between min and max (inclusive)
func RandomInt(min, max int) int {
	if min > max {
		return min
	}
	return rand.Intn(max-min+1) + min //nolint:gosec // Game logic randomness, not security critical
}

// Rand exposes the package generator through the IntN/Float64 method set
// consumed by the drop and upgrade engines
type Rand struct{}

// IntN returns a random integer in [0, n)
func (Rand) IntN(n int) int {
	return rand.Intn(n) //nolint:gosec // Game logic randomness, not security critical
}

// Float64 returns a random float64 in [0.0, 1.0)
func (Rand) Float64() float64 {
	return RandomFloat()
}
