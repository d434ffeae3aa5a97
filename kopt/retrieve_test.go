package kopt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kopt/kopt"
)

func TestCanonicalRotation_Empty(t *testing.T) {
	require.Nil(t, kopt.CanonicalRotation(nil))
}

func TestCanonicalRotation_RotationInvariant(t *testing.T) {
	base := []int{0, 1, 2, 3, 4}
	rotated := []int{2, 3, 4, 0, 1}
	require.Equal(t, kopt.CanonicalRotation(base), kopt.CanonicalRotation(rotated))
}

func TestCanonicalRotation_ReflectionInvariant(t *testing.T) {
	base := []int{0, 1, 2, 3, 4}
	reflected := []int{0, 4, 3, 2, 1}
	require.Equal(t, kopt.CanonicalRotation(base), kopt.CanonicalRotation(reflected))
}

func TestCanonicalRotation_AlwaysStartsAtZero(t *testing.T) {
	cycle := []int{3, 4, 0, 1, 2}
	canon := kopt.CanonicalRotation(cycle)
	require.Equal(t, 0, canon[0])
	require.ElementsMatch(t, cycle, canon)
}

// mockDistancer is a tiny symmetric Distancer over a fixed cost matrix, used
// to exercise RetrieveSolution end-to-end via the hardcoded 2-opt move. Like
// the production Distancers it reduces both indices mod N.
type mockDistancer struct {
	d [][]int64
}

func (m mockDistancer) N() int { return len(m.d) }
func (m mockDistancer) D(u, v int) int64 {
	n := len(m.d)
	return m.d[((u%n)+n)%n][((v%n)+n)%n]
}

func TestRetrieveSolution_TwoOptAppliesExpectedSwap(t *testing.T) {
	// A 4-city instance where swapping edges (0,1) and (2,3) via 2-opt
	// strictly improves total length.
	g := mockDistancer{d: [][]int64{
		{0, 5, 1, 1},
		{5, 0, 1, 1},
		{1, 1, 0, 5},
		{1, 1, 5, 0},
	}}
	move := kopt.Naive2optBase(g)
	require.Greater(t, move.Gain, int64(0))

	m, err := kopt.MatchingFromID(move.MatchingID)
	require.NoError(t, err)
	cycle := kopt.RetrieveSolution(g.N(), m, move.Embedding)
	require.Len(t, cycle, 4)

	seen := make(map[kopt.CycleNode]bool)
	for _, c := range cycle {
		require.False(t, seen[c], "no duplicate node in retrieved cycle")
		seen[c] = true
	}
}
