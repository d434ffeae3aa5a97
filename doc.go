// Module kopt implements a k-opt local-search heuristic for the
// symmetric Euclidean Traveling Salesman Problem.
//
// Under the hood:
//
//	kopt/     — signature enumeration, dependence graphs, tree
//	            decompositions, the clever/de Berg evaluation engines,
//	            and the iterated local-search driver
//	tspgraph/ — the working graph: points, a cached distance matrix,
//	            TSPLIB I/O, and the mutable tour permutation
//	matrix/   — the dense distance-matrix primitive tspgraph caches on
//	cmd/kopt/ — the command-line entry point
package kopt
