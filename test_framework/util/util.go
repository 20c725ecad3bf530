package util

import (
	"math/rand"
)

// Returns a random int in [start, end].
func NextInt(r *rand.Rand, start, end int) int {
	return r.Intn(end-start+1) + start
}

// Returns a copy of names in random order.
func Shuffled(r *rand.Rand, names []string) []string {
	ans := append([]string(nil), names...)
	r.Shuffle(len(ans), func(i, j int) { ans[i], ans[j] = ans[j], ans[i] })
	return ans
}
