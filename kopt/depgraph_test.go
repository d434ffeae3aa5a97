package kopt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kopt/kopt"
)

func TestNewDependenceGraph_IdentityMatchingHasNoEdges(t *testing.T) {
	// NewMatching's identity is reducible, but a dependence graph can still
	// be computed for it directly; what matters here is that purely local
	// (adjacent) reconnections contribute no dependence edge.
	m, err := kopt.MatchingFromID("A")
	require.NoError(t, err)
	g := kopt.NewDependenceGraph(m)
	require.Equal(t, 2, g.NodeCount)
	require.Empty(t, g.Edges)
}

func TestDependenceGraph_LessIsStrictWeakOrdering(t *testing.T) {
	small := &kopt.DependenceGraph{NodeCount: 2, Edges: nil}
	big := &kopt.DependenceGraph{NodeCount: 3, Edges: nil}
	require.True(t, small.Less(big))
	require.False(t, big.Less(small))
	require.False(t, small.Less(small))
}

func TestDependenceGraph_LessOrdersByEdgeCountThenEdges(t *testing.T) {
	a := &kopt.DependenceGraph{NodeCount: 3, Edges: []kopt.DepEdge{{1, 2}}}
	b := &kopt.DependenceGraph{NodeCount: 3, Edges: []kopt.DepEdge{{1, 2}, {1, 3}}}
	require.True(t, a.Less(b))

	c := &kopt.DependenceGraph{NodeCount: 3, Edges: []kopt.DepEdge{{1, 2}}}
	d := &kopt.DependenceGraph{NodeCount: 3, Edges: []kopt.DepEdge{{1, 3}}}
	require.True(t, c.Less(d))
}

func TestDependenceGraph_EqualIgnoresIdentity(t *testing.T) {
	a := &kopt.DependenceGraph{NodeCount: 2, Edges: []kopt.DepEdge{{1, 2}}}
	b := &kopt.DependenceGraph{NodeCount: 2, Edges: []kopt.DepEdge{{1, 2}}}
	require.True(t, a.Equal(b))
	require.NotSame(t, a, b)
}

func TestNewDependenceGraph_DedupsConsecutiveEdges(t *testing.T) {
	m := kopt.NewMatching(5)
	for m.NextIrreducible() {
		g := kopt.NewDependenceGraph(m)
		for i := 1; i < len(g.Edges); i++ {
			require.NotEqual(t, g.Edges[i-1], g.Edges[i], "no two consecutive edges should be identical")
		}
	}
}
