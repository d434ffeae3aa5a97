// Package tspgraph is the Graph collaborator: a fixed set of Euclidean
// points, a cached rounded-distance matrix, and the current working
// permutation a driver mutates while it searches (§3, §6 of the design).
//
// Design note on the permutation model: rather than physically moving
// points around a backing array and recomposing a running permutation on
// every accepted move (the original's Permutate/Compose/Inverse dance),
// Graph caches distances once, keyed by ORIGINAL node id, in a
// *matrix.Dense, and tracks the current arrangement with a single
// indirection array perm (perm[i] is the original id now sitting at
// position i). D(u,v) becomes dist.At(perm[u], perm[v]); ApplyPermutation
// composes perm with the supplied move in place. Externally observable
// behavior is identical (same distances, same CycleWeight, same
// PermutationIDs output, same ResetPermutation semantics) while avoiding
// an O(N) point-array copy and a fresh distance recomputation on every
// accepted k-move.
package tspgraph

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/kopt/matrix"
)

// Point is a 2-D Euclidean coordinate, read from a TSPLIB NODE_COORD_SECTION.
type Point struct {
	X, Y float64
}

// Graph is a fixed set of points together with the current working
// permutation. Distances are rounded Euclidean (TSPLIB EUC_2D): every
// lookup returns int64(math.Sqrt(dx*dx+dy*dy) + 0.5).
type Graph struct {
	points []Point       // original coordinates, indexed by original id
	dist   *matrix.Dense // dist.At(i,j) is the rounded distance between original ids i and j
	perm   []int         // perm[pos] is the original id currently at pos
}

// New builds a Graph from points, eagerly computing and caching the full
// pairwise rounded-distance matrix. The initial permutation is identity.
func New(points []Point) (*Graph, error) {
	n := len(points)
	if n < 1 {
		return nil, ErrTooFewPoints
	}
	dist, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if err := dist.Set(i, j, roundedEuclid(points[i], points[j])); err != nil {
				return nil, err
			}
		}
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return &Graph{points: points, dist: dist, perm: perm}, nil
}

func roundedEuclid(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Floor(math.Sqrt(dx*dx+dy*dy) + 0.5)
}

// N returns the number of nodes.
func (g *Graph) N() int { return len(g.perm) }

// D returns the rounded Euclidean distance between the nodes currently at
// positions u and v, wrapping both indices modulo N. Satisfies
// kopt.Distancer.
func (g *Graph) D(u, v int) int64 {
	n := g.N()
	pu, pv := g.perm[wrapMod(u, n)], g.perm[wrapMod(v, n)]
	if pu == pv {
		return 0
	}
	val, _ := g.dist.At(pu, pv)
	return int64(val)
}

// Point returns the coordinate of the node currently at position v.
func (g *Graph) Point(v int) (Point, error) {
	n := g.N()
	if v < 0 || v >= n {
		return Point{}, ErrIndexOutOfRange
	}
	return g.points[g.perm[v]], nil
}

// CycleWeight returns the total length of the cycle 0->1->...->N-1->0 under
// the current permutation.
func (g *Graph) CycleWeight() int64 {
	n := g.N()
	var total int64
	for i := 0; i < n; i++ {
		total += g.D(i, i+1)
	}
	return total
}

// ApplyPermutation re-arranges the working order so that the node formerly
// at position p[i] is now at position i, for every i (§4 "applying a
// k-move"). p must be a bijection on [0,N).
func (g *Graph) ApplyPermutation(p []int) error {
	n := g.N()
	if len(p) != n {
		return ErrBadPermutation
	}
	seen := make([]bool, n)
	next := make([]int, n)
	for i, pi := range p {
		if pi < 0 || pi >= n || seen[pi] {
			return ErrBadPermutation
		}
		seen[pi] = true
		next[i] = g.perm[pi]
	}
	g.perm = next
	return nil
}

// PermutationIDs returns the original node id currently at each position,
// i.e. a copy of the internal perm array.
func (g *Graph) PermutationIDs() []int {
	out := make([]int, len(g.perm))
	copy(out, g.perm)
	return out
}

// ResetPermutation restores identity order (original id i back at
// position i).
func (g *Graph) ResetPermutation() {
	for i := range g.perm {
		g.perm[i] = i
	}
}

// RandomShuffle randomizes the working order uniformly at random using rng.
func (g *Graph) RandomShuffle(rng *rand.Rand) {
	n := len(g.perm)
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		g.perm[i], g.perm[j] = g.perm[j], g.perm[i]
	}
}

// Changes counts tour edges that are not adjacent in original node-index
// order: a diagnostic for how far the current permutation has drifted from
// identity, not used on the search hot path.
//
// Grounded on original_source/src/permutation.cpp's Changes.
func Changes(tour []int) int {
	n := len(tour)
	if n == 0 {
		return 0
	}
	areNeighbors := func(i, j int) bool {
		d := i - j
		if d < 0 {
			d = -d
		}
		return d == 1 || d == n-1
	}
	neighbors := 0
	if areNeighbors(tour[n-1], tour[0]) {
		neighbors++
	}
	for i := 1; i < n; i++ {
		if areNeighbors(tour[i-1], tour[i]) {
			neighbors++
		}
	}
	return n - neighbors
}

func wrapMod(x, n int) int {
	x %= n
	if x < 0 {
		x += n
	}
	return x
}
