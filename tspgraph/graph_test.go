package tspgraph_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kopt/tspgraph"
)

func squarePoints() []tspgraph.Point {
	return []tspgraph.Point{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
	}
}

func TestNew_RejectsEmptyPoints(t *testing.T) {
	_, err := tspgraph.New(nil)
	require.ErrorIs(t, err, tspgraph.ErrTooFewPoints)
}

func TestNew_SinglePointIsValid(t *testing.T) {
	g, err := tspgraph.New([]tspgraph.Point{{X: 1, Y: 1}})
	require.NoError(t, err)
	require.Equal(t, 1, g.N())
	require.Equal(t, int64(0), g.D(0, 0))
}

func TestGraph_D_RoundedEuclidean(t *testing.T) {
	g, err := tspgraph.New(squarePoints())
	require.NoError(t, err)
	require.Equal(t, int64(10), g.D(0, 1))
	require.Equal(t, int64(10), g.D(1, 2))
	// Diagonal: sqrt(200) ~= 14.142, rounds to 14.
	require.Equal(t, int64(14), g.D(0, 2))
}

func TestGraph_D_WrapsIndices(t *testing.T) {
	g, err := tspgraph.New(squarePoints())
	require.NoError(t, err)
	require.Equal(t, g.D(0, 3), g.D(0, -1))
	require.Equal(t, g.D(0, 1), g.D(4, 1))
}

func TestGraph_CycleWeight_Square(t *testing.T) {
	g, err := tspgraph.New(squarePoints())
	require.NoError(t, err)
	// Perimeter of a 10x10 square.
	require.Equal(t, int64(40), g.CycleWeight())
}

func TestGraph_Point_TracksPermutation(t *testing.T) {
	g, err := tspgraph.New(squarePoints())
	require.NoError(t, err)
	require.NoError(t, g.ApplyPermutation([]int{1, 0, 2, 3}))

	p0, err := g.Point(0)
	require.NoError(t, err)
	require.Equal(t, tspgraph.Point{X: 10, Y: 0}, p0)

	_, err = g.Point(-1)
	require.ErrorIs(t, err, tspgraph.ErrIndexOutOfRange)
	_, err = g.Point(4)
	require.ErrorIs(t, err, tspgraph.ErrIndexOutOfRange)
}

func TestGraph_ApplyPermutation_RejectsWrongLength(t *testing.T) {
	g, err := tspgraph.New(squarePoints())
	require.NoError(t, err)
	err = g.ApplyPermutation([]int{0, 1, 2})
	require.ErrorIs(t, err, tspgraph.ErrBadPermutation)
}

func TestGraph_ApplyPermutation_RejectsNonBijection(t *testing.T) {
	g, err := tspgraph.New(squarePoints())
	require.NoError(t, err)
	err = g.ApplyPermutation([]int{0, 0, 1, 2})
	require.ErrorIs(t, err, tspgraph.ErrBadPermutation)

	err = g.ApplyPermutation([]int{0, 1, 2, 4})
	require.ErrorIs(t, err, tspgraph.ErrBadPermutation)
}

func TestGraph_ApplyPermutation_ComposesAndPreservesDistances(t *testing.T) {
	g, err := tspgraph.New(squarePoints())
	require.NoError(t, err)
	before := g.CycleWeight()

	require.NoError(t, g.ApplyPermutation([]int{3, 2, 1, 0}))
	// A pure reversal of the cycle has the same total length.
	require.Equal(t, before, g.CycleWeight())
}

func TestGraph_ResetPermutation_RestoresIdentity(t *testing.T) {
	g, err := tspgraph.New(squarePoints())
	require.NoError(t, err)
	require.NoError(t, g.ApplyPermutation([]int{2, 0, 3, 1}))
	g.ResetPermutation()
	require.Equal(t, []int{0, 1, 2, 3}, g.PermutationIDs())
}

func TestGraph_RandomShuffle_IsPermutationAndDeterministicPerSeed(t *testing.T) {
	g1, _ := tspgraph.New(squarePoints())
	g2, _ := tspgraph.New(squarePoints())

	g1.RandomShuffle(rand.New(rand.NewSource(11)))
	g2.RandomShuffle(rand.New(rand.NewSource(11)))
	require.Equal(t, g1.PermutationIDs(), g2.PermutationIDs())

	seen := make(map[int]bool)
	for _, id := range g1.PermutationIDs() {
		require.False(t, seen[id])
		seen[id] = true
	}
}

func TestChanges_IdentityCycleHasNoChanges(t *testing.T) {
	require.Equal(t, 0, tspgraph.Changes([]int{0, 1, 2, 3}))
}

func TestChanges_ReversedCycleHasNoChanges(t *testing.T) {
	// Every edge is still between index-adjacent nodes, just traversed
	// backwards, so Changes must still report zero.
	require.Equal(t, 0, tspgraph.Changes([]int{0, 3, 2, 1}))
}

func TestChanges_FullyScrambledCycleCountsEveryEdge(t *testing.T) {
	// Every edge connects indices more than one apart (and not wrapping
	// adjacent either), so every one of the 5 edges counts as a change.
	require.Equal(t, 5, tspgraph.Changes([]int{0, 2, 4, 1, 3}))
}

func TestRoundedEuclidean_MatchesMathRound(t *testing.T) {
	g, err := tspgraph.New([]tspgraph.Point{{X: 0, Y: 0}, {X: 3, Y: 4}})
	require.NoError(t, err)
	require.Equal(t, int64(5), g.D(0, 1))
	require.Equal(t, int64(math.Floor(5+0.5)), g.D(0, 1))
}
