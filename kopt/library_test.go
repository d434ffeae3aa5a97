package kopt_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kopt/kopt"
)

func buildTestLibrary(k int) *kopt.DecompositionLibrary {
	return kopt.BuildDecompositionLibrary(k, func(g *kopt.DependenceGraph) *kopt.Decomposition {
		d := kopt.DecompLeaf()
		for e := 0; e < k; e++ {
			d = kopt.DecompIntroduce(kopt.SigEdge(e), d)
		}
		for e := 0; e < k; e++ {
			d = kopt.DecompForget(kopt.SigEdge(e), d)
		}
		return d
	})
}

func TestBuildDecompositionLibrary_LookupFindsEveryMatching(t *testing.T) {
	lib := buildTestLibrary(3)
	m := kopt.NewMatching(3)
	for m.Next() {
		g := kopt.NewDependenceGraph(m)
		_, err := lib.Lookup(g)
		require.NoError(t, err, "matching %s should have a decomposition", m.Id())
	}
}

func TestDecompositionLibrary_LookupMissReturnsSentinel(t *testing.T) {
	lib := buildTestLibrary(2)
	bogus := &kopt.DependenceGraph{NodeCount: 99, Edges: nil}
	_, err := lib.Lookup(bogus)
	require.ErrorIs(t, err, kopt.ErrNoTreeDecomposition)
}

func TestWriteAndReadDecompositionLibrary_RoundTrips(t *testing.T) {
	lib := buildTestLibrary(2)
	var buf bytes.Buffer
	require.NoError(t, kopt.WriteDecompositionLibrary(&buf, lib))

	parsed, err := kopt.ReadDecompositionLibrary(&buf)
	require.NoError(t, err)
	require.Equal(t, lib.Len(), parsed.Len())

	m := kopt.NewMatching(2)
	for m.Next() {
		g := kopt.NewDependenceGraph(m)
		want, err := lib.Lookup(g)
		require.NoError(t, err)
		got, err := parsed.Lookup(g)
		require.NoError(t, err)
		require.Equal(t, kopt.Treewidth(want), kopt.Treewidth(got))
	}
}

func TestMergeDecompositionLibraries_CombinesAndStaysSorted(t *testing.T) {
	libA := buildTestLibrary(2)
	libB := buildTestLibrary(3)
	merged := kopt.MergeDecompositionLibraries(libA, libB)
	require.Equal(t, libA.Len()+libB.Len(), merged.Len())

	m2 := kopt.NewMatching(2)
	for m2.Next() {
		_, err := merged.Lookup(kopt.NewDependenceGraph(m2))
		require.NoError(t, err)
	}
	m3 := kopt.NewMatching(3)
	for m3.Next() {
		_, err := merged.Lookup(kopt.NewDependenceGraph(m3))
		require.NoError(t, err)
	}
}

func TestMergeDecompositionLibraries_EmptyInput(t *testing.T) {
	merged := kopt.MergeDecompositionLibraries()
	require.Equal(t, 0, merged.Len())
}
