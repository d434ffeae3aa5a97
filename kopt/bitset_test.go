package kopt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kopt/kopt"
)

type sigT = kopt.SigEdge

func TestBits_SingletonAndContains(t *testing.T) {
	s := kopt.SingletonBits[sigT](3)
	require.True(t, s.Contains(3))
	require.False(t, s.Contains(2))
	require.Equal(t, 1, s.Size())
}

func TestBits_FullBits(t *testing.T) {
	s := kopt.FullBits[sigT](4)
	for i := sigT(0); i < 4; i++ {
		require.True(t, s.Contains(i))
	}
	require.False(t, s.Contains(4))
	require.Equal(t, 4, s.Size())

	require.Equal(t, 0, kopt.FullBits[sigT](0).Size())
}

func TestBits_FromSlice(t *testing.T) {
	s := kopt.FromSlice([]sigT{0, 2, 5})
	require.Equal(t, 3, s.Size())
	require.True(t, s.Contains(0))
	require.True(t, s.Contains(2))
	require.True(t, s.Contains(5))
	require.False(t, s.Contains(1))
}

func TestBits_UnionDiffWithWithout(t *testing.T) {
	a := kopt.FromSlice([]sigT{0, 1, 2})
	b := kopt.FromSlice([]sigT{1, 2, 3})

	require.Equal(t, kopt.FromSlice([]sigT{0, 1, 2, 3}), a.Union(b))
	require.Equal(t, kopt.FromSlice([]sigT{0}), a.Diff(b))
	require.Equal(t, kopt.FromSlice([]sigT{0, 1, 2, 4}), a.With(4))
	require.Equal(t, kopt.FromSlice([]sigT{0, 2}), a.Without(1))
}

func TestBits_RankAndNth(t *testing.T) {
	s := kopt.FromSlice([]sigT{1, 3, 5})
	require.Equal(t, 0, s.Rank(0))
	require.Equal(t, 1, s.Rank(3))
	require.Equal(t, 2, s.Rank(5))
	require.Equal(t, 3, s.Rank(6))

	require.Equal(t, sigT(1), s.Nth(0))
	require.Equal(t, sigT(3), s.Nth(1))
	require.Equal(t, sigT(5), s.Nth(2))
}

func TestBits_Elements(t *testing.T) {
	s := kopt.FromSlice([]sigT{4, 0, 2})
	require.Equal(t, []sigT{0, 2, 4}, s.Elements())

	require.Empty(t, kopt.EmptyBits[sigT]().Elements())
}
