package kopt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kopt/kopt"
)

func TestIdentityCycle(t *testing.T) {
	cycle := kopt.IdentityCycle(4)
	require.Equal(t, []kopt.CycleNode{0, 1, 2, 3}, cycle)
}

// squareGraph is a 4-city instance where the identity order 0,1,2,3 is a
// crossed (suboptimal) tour and 0,1,3,2 (i.e. swapping the last two legs)
// is the true shortest cycle.
func squareGraph() mockDistancer {
	return mockDistancer{d: [][]int64{
		{0, 1, 1, 5},
		{1, 0, 5, 1},
		{1, 5, 0, 1},
		{5, 1, 1, 0},
	}}
}

func TestNaive2opt_ImprovesCrossedTour(t *testing.T) {
	g := squareGraph()
	before := g.D(0, 1) + g.D(1, 2) + g.D(2, 3) + g.D(3, 0)

	cycle, err := kopt.Naive2opt(g)
	require.NoError(t, err)
	require.Len(t, cycle, 4)

	after := int64(0)
	for i := range cycle {
		j := (i + 1) % len(cycle)
		after += g.D(int(cycle[i]), int(cycle[j]))
	}
	require.Less(t, after, before)
}

func TestNaive3opt_NeverWorsensATriangle(t *testing.T) {
	g := mockDistancer{d: [][]int64{
		{0, 2, 2, 3},
		{2, 0, 2, 3},
		{2, 2, 0, 3},
		{3, 3, 3, 0},
	}}
	before := int64(0)
	ident := kopt.IdentityCycle(4)
	for i := range ident {
		j := (i + 1) % len(ident)
		before += g.D(int(ident[i]), int(ident[j]))
	}

	cycle, err := kopt.Naive3opt(g)
	require.NoError(t, err)

	after := int64(0)
	for i := range cycle {
		j := (i + 1) % len(cycle)
		after += g.D(int(cycle[i]), int(cycle[j]))
	}
	require.LessOrEqual(t, after, before)
}

func TestExperimental3opt_RejectsTooFewNodes(t *testing.T) {
	g := mockDistancer{d: [][]int64{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}}}
	_, err := kopt.Experimental3opt(g)
	require.ErrorIs(t, err, kopt.ErrKOutOfRange)
}

func TestExperimental3opt_MatchesNaive3optGain(t *testing.T) {
	g := squareGraphWithFifthCity()

	cycle, err := kopt.Experimental3opt(g)
	require.NoError(t, err)

	tourLen := func(c []kopt.CycleNode) int64 {
		var total int64
		for i := range c {
			j := (i + 1) % len(c)
			total += g.D(int(c[i]), int(c[j]))
		}
		return total
	}

	naiveCycle, err := kopt.Naive3opt(g)
	require.NoError(t, err)
	require.Equal(t, tourLen(naiveCycle), tourLen(cycle))
}

func squareGraphWithFifthCity() mockDistancer {
	return mockDistancer{d: [][]int64{
		{0, 1, 5, 1, 9},
		{1, 0, 1, 5, 9},
		{5, 1, 0, 1, 9},
		{1, 5, 1, 0, 9},
		{9, 9, 9, 9, 0},
	}}
}
