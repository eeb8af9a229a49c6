package cluster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dtwcluster/cluster"
	"github.com/katalvlaran/dtwcluster/dba"
	"github.com/katalvlaran/dtwcluster/distmat"
	"github.com/katalvlaran/dtwcluster/dtw"
)

// twoGroups returns four series forming two well-separated groups:
// indices 0,1 near zero and indices 2,3 near ten.
func twoGroups() distmat.Collection {
	return distmat.Collection{
		dtw.UnivariateSequence([]float64{0, 0, 0, 0}),
		dtw.UnivariateSequence([]float64{0, 1, 0, 1}),
		dtw.UnivariateSequence([]float64{9, 9, 9, 9}),
		dtw.UnivariateSequence([]float64{9, 8, 9, 8}),
	}
}

// TestRun_Validation covers the pre-computation sentinels.
func TestRun_Validation(t *testing.T) {
	c := twoGroups()

	_, err := cluster.Run(nil, 2, cluster.DefaultOptions())
	assert.ErrorIs(t, err, cluster.ErrEmptyCollection)

	_, err = cluster.Run(c, 0, cluster.DefaultOptions())
	assert.ErrorIs(t, err, cluster.ErrInvalidK)

	_, err = cluster.Run(c, len(c)+1, cluster.DefaultOptions())
	assert.ErrorIs(t, err, cluster.ErrInvalidK)

	opts := cluster.DefaultOptions()
	opts.MaxIter = 0
	_, err = cluster.Run(c, 2, opts)
	assert.ErrorIs(t, err, cluster.ErrInvalidIterBudget)

	opts = cluster.DefaultOptions()
	opts.Delta = -1
	_, err = cluster.Run(c, 2, opts)
	assert.ErrorIs(t, err, cluster.ErrInvalidDelta)

	opts = cluster.DefaultOptions()
	opts.Initial = []dtw.Sequence{c[0]} // wrong count for k=2
	_, err = cluster.Run(c, 2, opts)
	assert.ErrorIs(t, err, cluster.ErrBadInitial)

	opts = cluster.DefaultOptions()
	opts.Initial = []dtw.Sequence{c[0], {{1, 2}, {3, 4}}} // wrong width
	_, err = cluster.Run(c, 2, opts)
	assert.ErrorIs(t, err, cluster.ErrBadInitial)
}

// TestRun_TwoGroupsDBA verifies that two separated groups are recovered
// with the default DBA update and fixed initial centroids.
func TestRun_TwoGroupsDBA(t *testing.T) {
	c := twoGroups()

	opts := cluster.DefaultOptions()
	opts.Initial = []dtw.Sequence{c[0], c[2]}

	res, err := cluster.Run(c, 2, opts)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, []int{0, 0, 1, 1}, res.Assignment)
	assert.Len(t, res.Centroids, 2)
	assert.Zero(t, res.Reseeded)
}

// TestRun_TwoGroupsMedoid verifies the medoid update strategy recovers
// the same grouping and returns an actual member as each centroid.
func TestRun_TwoGroupsMedoid(t *testing.T) {
	c := twoGroups()

	opts := cluster.DefaultOptions()
	opts.Initial = []dtw.Sequence{c[0], c[2]}
	opts.Update = cluster.MedoidUpdate(distmat.DefaultOptions())

	res, err := cluster.Run(c, 2, opts)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, []int{0, 0, 1, 1}, res.Assignment)

	// Each medoid must be one of its cluster's members.
	for _, centroid := range res.Centroids {
		found := false
		for _, s := range c {
			if sequencesEqual(centroid, s) {
				found = true
				break
			}
		}
		assert.True(t, found, "medoid centroid must be a collection member")
	}
}

// TestRun_SeededDeterminism pins reproducibility: two runs with the
// same seed yield identical assignments and centroids.
func TestRun_SeededDeterminism(t *testing.T) {
	c := twoGroups()

	opts := cluster.DefaultOptions()
	opts.Seed = 99

	a, err := cluster.Run(c, 2, opts)
	require.NoError(t, err)
	b, err := cluster.Run(c, 2, opts)
	require.NoError(t, err)

	assert.Equal(t, a.Assignment, b.Assignment)
	assert.Equal(t, a.Centroids, b.Centroids)
	assert.Equal(t, a.Iterations, b.Iterations)
	assert.Equal(t, a.Converged, b.Converged)
}

// TestRun_EmptyClusterReseed places one of k=3 centroids far outside
// the data range so it attracts zero members, and verifies the reseed
// policy fires exactly once before the run settles.
func TestRun_EmptyClusterReseed(t *testing.T) {
	c := distmat.Collection{
		dtw.UnivariateSequence([]float64{0, 0, 0}),
		dtw.UnivariateSequence([]float64{0.1, 0.1, 0.1}),
		dtw.UnivariateSequence([]float64{10, 10, 10}),
		dtw.UnivariateSequence([]float64{10.2, 10.2, 10.2}),
	}
	far := dtw.UnivariateSequence([]float64{-1000, -1000, -1000})

	opts := cluster.DefaultOptions()
	opts.Initial = []dtw.Sequence{c[0], c[2], far}

	res, err := cluster.Run(c, 3, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Reseeded, "the far centroid must be reseeded exactly once")
	assert.True(t, res.Converged)
	assert.ElementsMatch(t, []int{0, 1, 2}, uniqueInts(res.Assignment),
		"after reseeding every cluster must attract members")
}

// TestRun_EmptyClusterFail verifies the explicit failure policy on the
// same construction.
func TestRun_EmptyClusterFail(t *testing.T) {
	c := distmat.Collection{
		dtw.UnivariateSequence([]float64{0, 0, 0}),
		dtw.UnivariateSequence([]float64{0.1, 0.1, 0.1}),
		dtw.UnivariateSequence([]float64{10, 10, 10}),
		dtw.UnivariateSequence([]float64{10.2, 10.2, 10.2}),
	}
	far := dtw.UnivariateSequence([]float64{-1000, -1000, -1000})

	opts := cluster.DefaultOptions()
	opts.Initial = []dtw.Sequence{c[0], c[2], far}
	opts.EmptyPolicy = cluster.FailOnEmpty

	_, err := cluster.Run(c, 3, opts)
	assert.ErrorIs(t, err, cluster.ErrEmptyCluster)
}

// TestRun_TieBreakLowestIndex verifies that identical centroids funnel
// every member into the lower cluster id, which FailOnEmpty then
// surfaces for the starved higher id.
func TestRun_TieBreakLowestIndex(t *testing.T) {
	c := distmat.Collection{
		dtw.UnivariateSequence([]float64{1, 1}),
		dtw.UnivariateSequence([]float64{1, 1}),
	}

	opts := cluster.DefaultOptions()
	opts.Initial = []dtw.Sequence{c[0], c[0]}
	opts.EmptyPolicy = cluster.FailOnEmpty

	_, err := cluster.Run(c, 2, opts)
	assert.ErrorIs(t, err, cluster.ErrEmptyCluster, "ties must resolve to the lowest centroid index")
}

// TestRun_CentroidDeltaConvergence verifies the alternative stopping
// test settles on the same grouping.
func TestRun_CentroidDeltaConvergence(t *testing.T) {
	c := twoGroups()

	opts := cluster.DefaultOptions()
	opts.Initial = []dtw.Sequence{c[0], c[2]}
	opts.Convergence = cluster.CentroidDelta

	res, err := cluster.Run(c, 2, opts)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, []int{0, 0, 1, 1}, res.Assignment)
}

// TestRun_BudgetExhaustion verifies the soft MaxIterReached terminal
// state: last assignment and centroids returned, Converged=false.
func TestRun_BudgetExhaustion(t *testing.T) {
	c := twoGroups()

	opts := cluster.DefaultOptions()
	opts.Initial = []dtw.Sequence{c[0], c[2]}
	opts.MaxIter = 1

	res, err := cluster.Run(c, 2, opts)
	require.NoError(t, err)
	assert.False(t, res.Converged, "a single iteration cannot pass the stability test")
	assert.Equal(t, 1, res.Iterations)
	assert.Len(t, res.Assignment, len(c))
	assert.Len(t, res.Centroids, 2)
}

// TestRun_InputNotMutated verifies the collection survives a full run
// byte for byte.
func TestRun_InputNotMutated(t *testing.T) {
	c := twoGroups()
	snapshot := make([]dtw.Sequence, len(c))
	for i, s := range c {
		snapshot[i] = s.Clone()
	}

	opts := cluster.DefaultOptions()
	opts.Initial = []dtw.Sequence{c[0], c[2]}
	opts.Update = cluster.DBAUpdate(dba.DefaultOptions())

	_, err := cluster.Run(c, 2, opts)
	require.NoError(t, err)

	for i := range c {
		assert.True(t, sequencesEqual(snapshot[i], c[i]), "input sequence %d was mutated", i)
	}
}

func sequencesEqual(a, b dtw.Sequence) bool {
	if len(a) != len(b) {
		return false
	}
	for t := range a {
		if len(a[t]) != len(b[t]) {
			return false
		}
		for v := range a[t] {
			if a[t][v] != b[t][v] {
				return false
			}
		}
	}
	return true
}

func uniqueInts(a []int) []int {
	seen := map[int]struct{}{}
	out := []int{}
	for _, v := range a {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
