package kopt

// DepEdge is an extra adjacency edge of a DependenceGraph, 1-based node ids
// (matching the decomposition-library file format, §6).
type DepEdge struct {
	X, Y int
}

// DependenceGraph is the small graph derived from a Matching that records
// non-trivial adjacency among the k modified cycle positions (§3, §4.4).
// Inner nodes 1..k-1 are implicitly chained (not stored); Edges holds only
// the "extra" long-range dependencies.
//
// Grounded on original_source/src/dependence_graph.h/.cpp, ported exactly:
// the dedup-against-last-pushed-only behavior is load-bearing, not a
// simplification, because the library lookup is keyed on this exact
// canonical form.
type DependenceGraph struct {
	NodeCount int
	Edges     []DepEdge
}

// NewDependenceGraph derives the dependence graph of m.
func NewDependenceGraph(m *Matching) *DependenceGraph {
	g := &DependenceGraph{}
	twoK := len(m.matching)
	for n := 0; n < twoK; n++ {
		node := SigNode(n)
		x := int(node.Edge()) + 1
		y := int(m.At(node).Edge()) + 1
		if y-x >= 2 {
			if len(g.Edges) == 0 || g.Edges[len(g.Edges)-1] != (DepEdge{x, y}) {
				g.Edges = append(g.Edges, DepEdge{x, y})
			}
		}
	}
	g.NodeCount = twoK / 2
	return g
}

// Less implements the (node_count, edge_count, edges) lexicographic
// ordering used by the decomposition library's binary search (§3, §4.4).
func (g *DependenceGraph) Less(other *DependenceGraph) bool {
	if g.NodeCount != other.NodeCount {
		return g.NodeCount < other.NodeCount
	}
	if len(g.Edges) != len(other.Edges) {
		return len(g.Edges) < len(other.Edges)
	}
	for i := range g.Edges {
		if g.Edges[i] != other.Edges[i] {
			if g.Edges[i].X != other.Edges[i].X {
				return g.Edges[i].X < other.Edges[i].X
			}
			return g.Edges[i].Y < other.Edges[i].Y
		}
	}
	return false
}

// Equal reports structural equality of two dependence graphs.
func (g *DependenceGraph) Equal(other *DependenceGraph) bool {
	if g.NodeCount != other.NodeCount || len(g.Edges) != len(other.Edges) {
		return false
	}
	for i := range g.Edges {
		if g.Edges[i] != other.Edges[i] {
			return false
		}
	}
	return true
}
