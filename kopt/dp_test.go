package kopt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kopt/kopt"
)

// pathDecomposition builds the simplest valid tree decomposition for a
// k-edge signature: introduce every edge 0..k-1 in order, then forget them
// all in the same order. It never needs a Join node, so its correctness
// does not depend on matching structure — only on DFS visiting every edge
// exactly once on the way down and up, which any Decomposition must do.
func pathDecomposition(k int) *kopt.Decomposition {
	d := kopt.DecompLeaf()
	for e := 0; e < k; e++ {
		d = kopt.DecompIntroduce(kopt.SigEdge(e), d)
	}
	for e := 0; e < k; e++ {
		d = kopt.DecompForget(kopt.SigEdge(e), d)
	}
	return d
}

// bruteForceBestGain enumerates every monotone embedding of a k-edge domain
// into [0,n) and returns the best Join gain, mirroring NaiveAlgo's
// exhaustive search (§8 "DP correctness").
func bruteForceBestGain(g kopt.Distancer, m *kopt.Matching, k int) int64 {
	gf := kopt.NewGainFunc(g, m)
	emb := kopt.NewFastEmbedding(k, g.N())
	best := int64(-1 << 62)
	for {
		if gain := gf.Join(emb); gain > best {
			best = gain
		}
		if !emb.Next() {
			break
		}
	}
	return best
}

func TestDPEvaluate_MatchesBruteForce_K2(t *testing.T) {
	g := mockDistancer{d: [][]int64{
		{0, 3, 4, 2, 7},
		{3, 0, 5, 6, 1},
		{4, 5, 0, 2, 8},
		{2, 6, 2, 0, 3},
		{7, 1, 8, 3, 0},
	}}
	decomp := pathDecomposition(2)
	m := kopt.NewMatching(2)
	for m.NextIrreducible() {
		want := bruteForceBestGain(g, m, 2)
		gain, emb := kopt.DPEvaluate(g.N(), g, m, decomp)
		require.Equal(t, want, gain)
		require.NotNil(t, emb)
		require.Equal(t, gain, kopt.NewGainFunc(g, m).Join(emb))
	}
}

func TestDPEvaluate_MatchesBruteForce_K3(t *testing.T) {
	g := mockDistancer{d: [][]int64{
		{0, 2, 9, 4, 3, 6},
		{2, 0, 3, 8, 5, 1},
		{9, 3, 0, 2, 7, 4},
		{4, 8, 2, 0, 6, 3},
		{3, 5, 7, 6, 0, 2},
		{6, 1, 4, 3, 2, 0},
	}}
	decomp := pathDecomposition(3)
	m := kopt.NewMatching(3)
	count := 0
	for m.NextIrreducible() {
		want := bruteForceBestGain(g, m, 3)
		gain, emb := kopt.DPEvaluate(g.N(), g, m, decomp)
		require.Equal(t, want, gain)
		require.NotNil(t, emb)
		count++
	}
	require.Equal(t, 4, count)
}

func TestTreewidth_PathDecomposition(t *testing.T) {
	// Introducing up to k edges before forgetting any gives a max bag size
	// of k, so treewidth (max bag size - 1) is k-1.
	require.Equal(t, 2, kopt.Treewidth(pathDecomposition(3)))
	require.Equal(t, 1, kopt.Treewidth(pathDecomposition(2)))
}

func TestEstimateComplexity_NeverOverflowsSmallBags(t *testing.T) {
	cost, overflowed := kopt.EstimateComplexity(pathDecomposition(3), 10)
	require.False(t, overflowed)
	require.Greater(t, cost, 0.0)
}

func TestBagSizeVisitor_HistogramCountsEveryNode(t *testing.T) {
	d := pathDecomposition(2)
	v := kopt.NewBagSizeVisitor()
	kopt.Dfs[int](d, v)
	// leaf(0) -> introduce(1) -> introduce(2) -> forget(1) -> forget(0)
	require.Equal(t, map[int]int{0: 2, 1: 2, 2: 1}, v.Histogram)
}
