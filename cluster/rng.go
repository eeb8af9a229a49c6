// Package cluster - RNG policy for initial-centroid selection.
//
// Same contract as elsewhere in the module: a non-zero seed reproduces
// the selection exactly; seed 0 draws from a time-based source. The
// global generator is never touched.
package cluster

import (
	"math/rand"
	"time"
)

// rngFromSeed returns a private *rand.Rand under the seed policy.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// pickDistinct draws k distinct indices from [0, n) by partial
// Fisher–Yates. Selection order defines the cluster ids.
func pickDistinct(n, k int, seed int64) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rng := rngFromSeed(seed)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}
