package kopt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kopt/kopt"
)

func TestDeBergEvaluate_MatchesBruteForce_K2(t *testing.T) {
	g := mockDistancer{d: [][]int64{
		{0, 3, 4, 2, 7},
		{3, 0, 5, 6, 1},
		{4, 5, 0, 2, 8},
		{2, 6, 2, 0, 3},
		{7, 1, 8, 3, 0},
	}}
	m := kopt.NewMatching(2)
	for {
		want := bruteForceBestGain(g, m, 2)
		gain, emb := kopt.DeBergEvaluate(g, m)
		if want <= 0 {
			require.LessOrEqual(t, gain, int64(0))
			require.Nil(t, emb)
		} else {
			require.Equal(t, want, gain)
			require.NotNil(t, emb)
		}
		if !m.NextIrreducible() {
			break
		}
	}
}

func TestDeBergEvaluate_MatchesBruteForce_K3(t *testing.T) {
	g := mockDistancer{d: [][]int64{
		{0, 2, 9, 4, 3, 6},
		{2, 0, 3, 8, 5, 1},
		{9, 3, 0, 2, 7, 4},
		{4, 8, 2, 0, 6, 3},
		{3, 5, 7, 6, 0, 2},
		{6, 1, 4, 3, 2, 0},
	}}
	m := kopt.NewMatching(3)
	for {
		want := bruteForceBestGain(g, m, 3)
		gain, emb := kopt.DeBergEvaluate(g, m)
		if want <= 0 {
			require.LessOrEqual(t, gain, int64(0))
			require.Nil(t, emb)
		} else {
			require.Equal(t, want, gain)
			require.NotNil(t, emb)
		}
		if !m.NextIrreducible() {
			break
		}
	}
}

func TestDeBergExponent_AtLeastOne(t *testing.T) {
	m := kopt.NewMatching(3)
	for {
		require.GreaterOrEqual(t, kopt.DeBergExponent(m), 1)
		if !m.NextIrreducible() {
			break
		}
	}
}

func TestSingleDeBerg_RoundTripsThroughID(t *testing.T) {
	g := mockDistancer{d: [][]int64{
		{0, 1, 5, 1},
		{1, 0, 1, 5},
		{5, 1, 0, 1},
		{1, 5, 1, 0},
	}}
	m := kopt.NewMatching(2)
	move, err := kopt.SingleDeBerg(m.Id(), g)
	require.NoError(t, err)
	if move != nil {
		require.Greater(t, move.Gain, int64(0))
		require.Equal(t, m.Id(), move.MatchingID)
	}
}

func TestSingleDeBerg_RejectsBadID(t *testing.T) {
	g := mockDistancer{d: [][]int64{{0, 1}, {1, 0}}}
	_, err := kopt.SingleDeBerg("0", g)
	require.ErrorIs(t, err, kopt.ErrBadMatchingID)
}

func TestGenerateDeBergSignatures_CountMatchesIrreducibleTotal(t *testing.T) {
	sigs := kopt.GenerateDeBergSignatures(2, 4)
	require.NotEmpty(t, sigs)

	want := 0
	for k := 2; k <= 4; k++ {
		want += irreducibleCount(k)
	}
	require.Len(t, sigs, want)
}
