// Package kopt implements a k-opt local-search heuristic for the symmetric
// Euclidean traveling salesman problem.
//
// What & Why:
//
//	Given a Hamiltonian cycle over N nodes, a k-move replaces k existing
//	cycle edges with k new ones that form a strictly cheaper cycle. The
//	hard part is enumerating and evaluating candidate k-moves in time far
//	better than the naive O(N^k): this package encodes each candidate
//	"swap pattern" as a canonical Matching, reduces it to a small
//	DependenceGraph, looks up a precomputed tree Decomposition, and runs
//	a tree-DP (or, alternatively, a de Berg reduced embedding) to find the
//	best-gain placement of the pattern onto the current cycle.
//
// Algorithms & Complexity:
//
//	Matching enumeration costs O(k) per Next step (the involution is
//	rebuilt each time); NextIrreducible additionally skips reducible ones.
//	The clever engine is exponential in treewidth, not in k; the de Berg
//	engine is exponential in |del|+1, the size of the brute-forced residue
//	after removing monotone chains. Both are exact for the signature they
//	evaluate: the reported gain, if positive, is the true best achievable
//	gain for that swap pattern against the current cycle.
//
// Determinism & Stability:
//
//	All randomness (initial-cycle shuffle/walk, equal-cost signature
//	group shuffling) flows through a Config-carried seeded RNG; there is
//	no package-global PRNG or flag state. Given the same Config and
//	Graph, every run produces byte-identical output.
//
// Errors:
//
//	Sentinel errors only (see errors.go); no fmt.Errorf wrapping where a
//	sentinel suffices. ErrNoImprovement names a status, not a failure; no
//	function here returns it: a candidate that finds nothing to improve
//	reports a nil KMove or one with non-positive gain.
package kopt
