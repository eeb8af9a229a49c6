package cluster

import (
	"math"

	"github.com/katalvlaran/dtwcluster/dba"
	"github.com/katalvlaran/dtwcluster/distmat"
	"github.com/katalvlaran/dtwcluster/dtw"
)

// DBAUpdate adapts barycenter averaging into an UpdateFunc: each
// cluster's centroid is refined from its current value over the
// cluster's members. The refinement seed is always the current
// centroid, so the update involves no randomness regardless of o.Seed.
// Non-convergence inside a single update is a soft outcome and the
// best-known centroid is used.
func DBAUpdate(o dba.Options) UpdateFunc {
	return func(members distmat.Collection, current dtw.Sequence) (dtw.Sequence, error) {
		ro := o
		ro.Initial = current
		res, err := dba.Refine(members, ro)
		if err != nil {
			return nil, err
		}
		return res.Centroid, nil
	}
}

// MedoidUpdate adapts PAM-style medoid selection into an UpdateFunc:
// the new centroid is the member minimizing the total distance to all
// other members, lowest index on ties. o should keep the default
// fail-fast policy; NaN rows from a tolerant batch never win.
func MedoidUpdate(o distmat.Options) UpdateFunc {
	return func(members distmat.Collection, _ dtw.Sequence) (dtw.Sequence, error) {
		dists, _, err := distmat.Cross(members, nil, o)
		if err != nil {
			return nil, err
		}
		best, bestSum := 0, math.Inf(1)
		for i := range members {
			sum := 0.0
			for j := range members {
				sum += dists.At(i, j)
			}
			if sum < bestSum {
				best, bestSum = i, sum
			}
		}
		return members[best].Clone(), nil
	}
}

// defaultUpdate is the loop's fallback strategy: DBA with defaults.
func defaultUpdate() UpdateFunc {
	return DBAUpdate(dba.DefaultOptions())
}
