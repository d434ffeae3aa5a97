package kopt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kopt/kopt"
)

func TestMatching_NewIsLexSmallest(t *testing.T) {
	m := kopt.NewMatching(3)
	require.Equal(t, 3, m.K())
	// The identity matching pairs each endpoint with its immediate neighbor
	// across the first cut: 0-1, 2-3, 4-5 chained via p=[0,1].
	require.True(t, m.Reducible())
}

func TestMatching_IdRoundTrips(t *testing.T) {
	m := kopt.NewMatching(4)
	for i := 0; i < 50; i++ {
		id := m.Id()
		decoded, err := kopt.MatchingFromID(id)
		require.NoError(t, err)
		require.Equal(t, id, decoded.Id())
		require.Equal(t, m.K(), decoded.K())
		for n := kopt.SigNode(0); int(n) < 2*m.K(); n++ {
			require.Equal(t, m.At(n), decoded.At(n), "node %d", n)
		}
		if !m.Next() {
			break
		}
	}
}

func TestMatchingFromID_RejectsMalformed(t *testing.T) {
	_, err := kopt.MatchingFromID("0")
	require.ErrorIs(t, err, kopt.ErrBadMatchingID)

	_, err = kopt.MatchingFromID("Z")
	require.ErrorIs(t, err, kopt.ErrBadMatchingID)
}

func TestMatching_NextIsInvolutionOverFullDomain(t *testing.T) {
	m := kopt.NewMatching(3)
	for i := 0; i < 20; i++ {
		domain := m.Domain()
		require.Equal(t, 6, domain.Size())
		for _, n := range domain.Elements() {
			partner := m.At(n)
			require.Equal(t, n, m.At(partner), "involution must be symmetric at node %d", n)
			require.NotEqual(t, n, partner, "no fixed points")
		}
		if !m.Next() {
			break
		}
	}
}

func TestMatching_CloneIsIndependent(t *testing.T) {
	m := kopt.NewMatching(3)
	clone := m.Clone()
	m.Next()
	require.NotEqual(t, m.Id(), clone.Id())
}

// irreducibleCount enumerates NewMatching(k) through NextIrreducible until
// exhaustion, counting how many distinct irreducible matchings exist.
func irreducibleCount(k int) int {
	m := kopt.NewMatching(k)
	count := 0
	if !m.Reducible() {
		count++
	}
	for m.NextIrreducible() {
		count++
	}
	return count
}

func TestMatching_IrreducibleCounts(t *testing.T) {
	cases := []struct {
		k    int
		want int
	}{
		{2, 1},
		{3, 4},
		{4, 23},
	}
	for _, tc := range cases {
		t.Run("", func(t *testing.T) {
			require.Equal(t, tc.want, irreducibleCount(tc.k), "k=%d", tc.k)
		})
	}
}
