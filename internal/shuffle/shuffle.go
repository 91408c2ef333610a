// Package shuffle provides uniform random permutations over slices.
package shuffle

import "math/rand/v2"

// Shuffle returns a new slice holding the elements of xs in a uniformly
// random order. xs is never modified. A nil rng uses the global source.
func Shuffle[T any](rng *rand.Rand, xs []T) []T {
	out := make([]T, len(xs))
	copy(out, xs)
	for i := len(out) - 1; i > 0; i-- {
		j := intN(rng, i+1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Sample returns up to n distinct elements of xs chosen uniformly at random.
// It runs a partial Fisher–Yates pass over a copy, so xs is left untouched.
func Sample[T any](rng *rand.Rand, xs []T, n int) []T {
	if n <= 0 || len(xs) == 0 {
		return nil
	}
	if n > len(xs) {
		n = len(xs)
	}
	out := make([]T, len(xs))
	copy(out, xs)
	last := len(out) - 1
	for k := 0; k < n; k++ {
		j := k + intN(rng, last-k+1)
		out[k], out[j] = out[j], out[k]
	}
	return out[:n]
}

func intN(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}
