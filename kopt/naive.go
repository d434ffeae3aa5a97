package kopt

import "math"

// IdentityCycle returns the trivial tour 0,1,...,n-1 (§4.10, used as the
// starting point/fallback whenever no improving move has been found yet).
func IdentityCycle(n int) []CycleNode {
	cycle := make([]CycleNode, n)
	for i := range cycle {
		cycle[i] = CycleNode(i)
	}
	return cycle
}

// Naive2optBase brute-forces the best 2-opt move by trying every pair of
// cycle edges directly, bypassing signature enumeration entirely (§4.10,
// used as a correctness oracle for the general engines at small N).
//
// Grounded on original_source/src/naive_kopt.h/.cpp.
func Naive2optBase(g Distancer) *KMove {
	n := g.N()
	bestGain := int64(math.MinInt64)
	var bestI, bestJ CycleEdge
	for i := CycleEdge(0); int(i) < n; i++ {
		for j := i + 1; int(j) < n; j++ {
			gain := g.D(int(i.Left()), int(i.Right(n))) + g.D(int(j.Left()), int(j.Right(n))) -
				g.D(int(i.Left()), int(j.Left())) - g.D(int(i.Right(n)), int(j.Right(n)))
			if gain > bestGain {
				bestGain, bestI, bestJ = gain, i, j
			}
		}
	}
	e := NewSlowEmbedding(n)
	e.SetVal(SigEdge(0), bestI)
	e.SetVal(SigEdge(1), bestJ)
	return &KMove{Gain: bestGain, MatchingID: "a", Embedding: e}
}

// Naive2opt returns the cycle realizing Naive2optBase's best move.
func Naive2opt(g Distancer) ([]CycleNode, error) {
	result := Naive2optBase(g)
	m, err := MatchingFromID(result.MatchingID)
	if err != nil {
		return nil, err
	}
	return RetrieveSolution(g.N(), m, result.Embedding), nil
}

// threeOptMove is the brute-force search's internal result shape, shared
// by Naive3optBase (matching/embedding form) and Experimental3opt (direct
// index-range form).
type threeOptMove struct {
	gain     int64
	typ      int
	i, j, k  int
}

// findBest3opt brute-forces the best of the four 3-opt reconnection types
// over every ordered edge triple i<j<k.
func findBest3opt(g Distancer) threeOptMove {
	n := g.N()
	var best threeOptMove
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				cost := [4]int64{
					g.D(i, wrapMod(j+1, n)) + g.D(k, wrapMod(i+1, n)) + g.D(j, wrapMod(k+1, n)),
					g.D(i, k) + g.D(wrapMod(j+1, n), wrapMod(i+1, n)) + g.D(j, wrapMod(k+1, n)),
					g.D(j, i) + g.D(wrapMod(k+1, n), wrapMod(j+1, n)) + g.D(k, wrapMod(i+1, n)),
					g.D(k, j) + g.D(wrapMod(i+1, n), wrapMod(k+1, n)) + g.D(i, wrapMod(j+1, n)),
				}
				typ := 0
				for l := 1; l < 4; l++ {
					if cost[l] < cost[typ] {
						typ = l
					}
				}
				gain := g.D(i, wrapMod(i+1, n)) + g.D(j, wrapMod(j+1, n)) + g.D(k, wrapMod(k+1, n)) - cost[typ]
				if gain > best.gain {
					best = threeOptMove{gain: gain, typ: typ, i: i, j: j, k: k}
				}
			}
		}
	}
	return best
}

// threeOptIds is the canonical matching id for each of the four 3-opt
// reconnection types, in findBest3opt's cost[] order.
var threeOptIds = [4]string{"BA", "bA", "ab", "Ba"}

// Naive3optBase brute-forces the best 3-opt move over every edge triple,
// expressed as a matching id plus a SlowEmbedding (§4.10).
func Naive3optBase(g Distancer) *KMove {
	b := findBest3opt(g)
	e := NewSlowEmbedding(g.N())
	e.SetVal(SigEdge(0), CycleEdge(b.i))
	e.SetVal(SigEdge(1), CycleEdge(b.j))
	e.SetVal(SigEdge(2), CycleEdge(b.k))
	return &KMove{Gain: b.gain, MatchingID: threeOptIds[b.typ], Embedding: e}
}

// Naive3opt returns the cycle realizing Naive3optBase's best move, or the
// identity cycle when no move has positive gain.
func Naive3opt(g Distancer) ([]CycleNode, error) {
	result := Naive3optBase(g)
	if result.Gain <= 0 {
		return IdentityCycle(g.N()), nil
	}
	m, err := MatchingFromID(result.MatchingID)
	if err != nil {
		return nil, err
	}
	return RetrieveSolution(g.N(), m, result.Embedding), nil
}

// experimentalRetrieve rebuilds the cycle directly from the four
// hardcoded 3-opt reconnection index ranges, without going through
// Matching/RetrieveSolution.
func experimentalRetrieve(n, typ, i, j, k int) []CycleNode {
	type span struct{ from, to, step int }
	ranges := [4][2]span{
		{{j + 1, k + 1, 1}, {i + 1, j + 1, 1}},
		{{k, j, -1}, {i + 1, j + 1, 1}},
		{{j, i, -1}, {k, j, -1}},
		{{j + 1, k + 1, 1}, {j, i, -1}},
	}
	sol := make([]CycleNode, 0, n)
	for at := 0; at <= i; at++ {
		sol = append(sol, CycleNode(at))
	}
	for at := ranges[typ][0].from; at != ranges[typ][0].to; at += ranges[typ][0].step {
		sol = append(sol, CycleNode(at))
	}
	for at := ranges[typ][1].from; at != ranges[typ][1].to; at += ranges[typ][1].step {
		sol = append(sol, CycleNode(at))
	}
	for at := k + 1; at < n; at++ {
		sol = append(sol, CycleNode(at))
	}
	return sol
}

// Experimental3opt is a direct-reconstruction variant of Naive3opt that
// skips the general matching/embedding machinery in favor of the four
// hardcoded index-range patterns (§4.10, §9 Open Question).
//
// The original hardcodes only these four 3-edge signatures and produces
// out-of-range index arithmetic for N <= 3 (no edge triple i<j<k<N with
// enough room for all four spans); this port resolves that Open Question
// by rejecting N <= 3 explicitly instead of producing a malformed cycle.
func Experimental3opt(g Distancer) ([]CycleNode, error) {
	n := g.N()
	if n <= 3 {
		return nil, ErrKOutOfRange
	}
	b := findBest3opt(g)
	if b.gain <= 0 {
		return IdentityCycle(n), nil
	}
	return experimentalRetrieve(n, b.typ, b.i, b.j, b.k), nil
}
