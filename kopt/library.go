package kopt

import (
	"fmt"
	"io"
	"sort"
)

// Decomposer builds a tree decomposition for a given dependence graph. It is
// the pluggable hook original_source/src/decomposition_library.cpp takes as
// a constructor argument; production use loads a precomputed library from
// disk (ReadDecompositionLibrary) per spec.md's non-goal on persistent
// decomposition generation, but a Decomposer-driven in-memory build remains
// a legitimate bootstrap/testing facility (SPEC_FULL.md §4).
type Decomposer func(*DependenceGraph) *Decomposition

// DecompositionLibrary is a sorted, deduplicated map from DependenceGraph to
// Decomposition (§3), looked up by binary search.
//
// Grounded on original_source/src/decomposition_library.h/.cpp.
type DecompositionLibrary struct {
	args []*DependenceGraph
	vals []*Decomposition
}

// BuildDecompositionLibrary enumerates every dependence graph reachable from
// a matching of kmoveSize pairs (via repeated Next(), including the
// trivially-reducible ones the original does not filter out — they are
// simply never looked up by the irreducible-only candidate stream), sorts
// and deduplicates them, and applies decomposer to each unique graph.
func BuildDecompositionLibrary(kmoveSize int, decomposer Decomposer) *DecompositionLibrary {
	m := NewMatching(kmoveSize)
	var graphs []*DependenceGraph
	for m.Next() {
		graphs = append(graphs, NewDependenceGraph(m))
	}
	sort.Slice(graphs, func(i, j int) bool { return graphs[i].Less(graphs[j]) })
	deduped := graphs[:0]
	for i, g := range graphs {
		if i == 0 || !deduped[len(deduped)-1].Equal(g) {
			deduped = append(deduped, g)
		}
	}
	lib := &DecompositionLibrary{args: deduped, vals: make([]*Decomposition, len(deduped))}
	for i, g := range deduped {
		lib.vals[i] = decomposer(g)
	}
	return lib
}

// Len returns the number of entries in the library.
func (lib *DecompositionLibrary) Len() int { return len(lib.args) }

// Lookup returns the decomposition for the exact dependence graph g, via
// binary search over the sorted argument list. Returns ErrNoTreeDecomposition
// if g has no entry.
func (lib *DecompositionLibrary) Lookup(g *DependenceGraph) (*Decomposition, error) {
	i := sort.Search(len(lib.args), func(i int) bool { return !lib.args[i].Less(g) })
	if i >= len(lib.args) || !lib.args[i].Equal(g) {
		return nil, ErrNoTreeDecomposition
	}
	return lib.vals[i], nil
}

// ReadDecompositionLibrary parses a library file (§6): entry count, then
// per entry a dependence graph (node_count edge_count, edges as 1-based
// "a b" pairs) and a tree decomposition in prefix notation.
func ReadDecompositionLibrary(r io.Reader) (*DecompositionLibrary, error) {
	t := newTokenScanner(r)
	n, err := t.nextInt()
	if err != nil {
		return nil, ErrLibraryCorrupt
	}
	lib := &DecompositionLibrary{args: make([]*DependenceGraph, n), vals: make([]*Decomposition, n)}
	for i := 0; i < n; i++ {
		g, err := readDependenceGraph(t)
		if err != nil {
			return nil, err
		}
		d, err := ReadDecomposition(t)
		if err != nil {
			return nil, err
		}
		lib.args[i] = g
		lib.vals[i] = d
	}
	for i := 1; i < n; i++ {
		if lib.args[i-1].Less(lib.args[i]) || lib.args[i-1].Equal(lib.args[i]) {
			continue
		}
		return nil, ErrLibraryCorrupt
	}
	return lib, nil
}

func readDependenceGraph(t *tokenScanner) (*DependenceGraph, error) {
	nodeCount, err := t.nextInt()
	if err != nil {
		return nil, ErrLibraryCorrupt
	}
	edgeCount, err := t.nextInt()
	if err != nil {
		return nil, ErrLibraryCorrupt
	}
	if nodeCount < 0 || edgeCount < 0 {
		return nil, ErrLibraryCorrupt
	}
	g := &DependenceGraph{NodeCount: nodeCount, Edges: make([]DepEdge, edgeCount)}
	for i := 0; i < edgeCount; i++ {
		x, err := t.nextInt()
		if err != nil {
			return nil, ErrLibraryCorrupt
		}
		y, err := t.nextInt()
		if err != nil {
			return nil, ErrLibraryCorrupt
		}
		g.Edges[i] = DepEdge{X: x, Y: y}
	}
	return g, nil
}

// MergeDecompositionLibraries combines libraries loaded separately per k
// (§6 "a directory containing files named 2, 3, ..., 7") into the single
// sorted library Lookup expects.
func MergeDecompositionLibraries(libs ...*DecompositionLibrary) *DecompositionLibrary {
	var args []*DependenceGraph
	var vals []*Decomposition
	for _, lib := range libs {
		args = append(args, lib.args...)
		vals = append(vals, lib.vals...)
	}
	idx := make([]int, len(args))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return args[idx[i]].Less(args[idx[j]]) })
	merged := &DecompositionLibrary{args: make([]*DependenceGraph, len(idx)), vals: make([]*Decomposition, len(idx))}
	for i, j := range idx {
		merged.args[i] = args[j]
		merged.vals[i] = vals[j]
	}
	return merged
}

// WriteDecompositionLibrary serializes lib in the §6 file format.
func WriteDecompositionLibrary(w io.Writer, lib *DecompositionLibrary) error {
	if _, err := fmt.Fprintln(w, lib.Len()); err != nil {
		return err
	}
	for i, g := range lib.args {
		if _, err := fmt.Fprintf(w, "%d %d", g.NodeCount, len(g.Edges)); err != nil {
			return err
		}
		for _, e := range g.Edges {
			if _, err := fmt.Fprintf(w, " %d %d", e.X, e.Y); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, "\n"); err != nil {
			return err
		}
		if err := WriteDecomposition(w, lib.vals[i]); err != nil {
			return err
		}
		if _, err := fmt.Fprint(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
