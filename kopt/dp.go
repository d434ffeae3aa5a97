package kopt

import "math"

// dpNone marks an infeasible table entry. Gains are 64-bit signed integers
// so overflow never collides with this sentinel (§4.6 "Failure semantics").
const dpNone = int64(math.MinInt64)

// dynResult is one node's computed state in the clever tree-DP (§4.6): its
// bag, a dense gain table indexed by monotone-embedding rank, and pointers
// to the child results needed by solution retrieval.
type dynResult struct {
	bag         Bits[SigEdge]
	table       []int64
	left, right *dynResult
}

func newDPTable(bag Bits[SigEdge], n int) []int64 {
	size := FastEmbeddingIdSize(bag, n)
	t := make([]int64, size)
	for i := range t {
		t[i] = dpNone
	}
	return t
}

// dpVisitor implements Visitor[*dynResult], the clever tree-DP embedding
// engine (§4.6). Grounded on original_source/src/dynamic.h/.cpp, ported
// recurrence for recurrence: the do/while iteration over every embedding
// of a bag becomes a Go "execute, then Next(), break if exhausted" loop
// with identical enumeration order.
type dpVisitor struct {
	n    int
	gain *GainFunc
}

func (v *dpVisitor) Leaf() *dynResult {
	bag := EmptyBits[SigEdge]()
	table := newDPTable(bag, v.n)
	emb := NewFastEmbeddingOverDomain(bag, v.n)
	table[emb.Id()] = 0
	return &dynResult{bag: bag, table: table}
}

func (v *dpVisitor) Introduce(introduced SigEdge, child *dynResult) *dynResult {
	parentBag := child.bag.With(introduced)
	table := newDPTable(parentBag, v.n)
	emb := NewFastEmbeddingOverDomain(parentBag, v.n)
	for {
		childGain := child.table[emb.WithoutIndex(introduced)]
		if childGain != dpNone {
			table[emb.Id()] = childGain + v.gain.Introduce(emb, introduced)
		}
		if !emb.Next() {
			break
		}
	}
	return &dynResult{bag: parentBag, table: table, left: child}
}

func (v *dpVisitor) Forget(forgotten SigEdge, child *dynResult) *dynResult {
	parentBag := child.bag.Without(forgotten)
	table := newDPTable(parentBag, v.n)
	emb := NewFastEmbeddingOverDomain(child.bag, v.n)
	for {
		idx := emb.WithoutIndex(forgotten)
		childGain := child.table[emb.Id()]
		if childGain > table[idx] {
			table[idx] = childGain
		}
		if !emb.Next() {
			break
		}
	}
	return &dynResult{bag: parentBag, table: table, left: child}
}

func (v *dpVisitor) Join(left, right *dynResult) *dynResult {
	parentBag := left.bag
	table := newDPTable(parentBag, v.n)
	emb := NewFastEmbeddingOverDomain(parentBag, v.n)
	for {
		lg := left.table[emb.Id()]
		rg := right.table[emb.Id()]
		if lg != dpNone && rg != dpNone {
			table[emb.Id()] = lg + rg - v.gain.Join(emb)
		}
		if !emb.Next() {
			break
		}
	}
	return &dynResult{bag: parentBag, table: table, left: left, right: right}
}

// retrieveEmbeddingDfs walks the DP tree top-down, reconstructing the
// best-gain embedding (§4.6 "Solution retrieval"). full accumulates the
// complete sparse embedding; bag tracks the currently-live bag's
// assignment, needed to disambiguate Forget's choice.
func retrieveEmbeddingDfs(node *dynResult, full, bag *SlowEmbedding) {
	switch {
	case node.left == nil:
		// Leaf: nothing to do.
	case node.right != nil:
		// Join: recurse into both children against independent bag copies.
		saved := bag.Clone()
		retrieveEmbeddingDfs(node.left, full, bag)
		*bag = *saved
		retrieveEmbeddingDfs(node.right, full, bag)
	case node.bag.Size() > node.left.bag.Size():
		// Introduce: the bag loses the introduced edge going down.
		introduced := node.bag.Diff(node.left.bag).Nth(0)
		bag.Remove(introduced)
		retrieveEmbeddingDfs(node.left, full, bag)
	default:
		// Forget: pick the best cycle-edge position for the forgotten edge
		// by scanning the gap between its bagged neighbors.
		forgotten := node.left.bag.Diff(node.bag).Nth(0)
		idx := bag.Domain().Rank(forgotten)

		lowest := 0
		if idx > 0 {
			lowest = int(bag.MapEdge(bag.Domain().Nth(idx-1))) + 1
		}
		highest := bag.Codomain() - 1
		if idx < bag.Domain().Size() {
			highest = int(bag.MapEdge(bag.Domain().Nth(idx))) - 1
		}

		best := dpNone
		bestI := -1
		for i := lowest; i <= highest; i++ {
			bag.SetVal(forgotten, CycleEdge(i))
			now := node.left.table[bag.Index()]
			if now > best {
				best = now
				bestI = i
			}
		}
		full.SetVal(forgotten, CycleEdge(bestI))
		bag.SetVal(forgotten, CycleEdge(bestI))

		retrieveEmbeddingDfs(node.left, full, bag)
	}
}

// RetrieveEmbedding reconstructs the sparse embedding realizing the root
// table's best gain.
func RetrieveEmbedding(root *dynResult, n int) *SlowEmbedding {
	full := NewSlowEmbedding(n)
	bag := NewSlowEmbedding(n)
	retrieveEmbeddingDfs(root, full, bag)
	return full
}

// Clone returns a deep copy of e.
func (e *SlowEmbedding) Clone() *SlowEmbedding {
	values := make([]CycleEdge, len(e.values))
	copy(values, e.values)
	return &SlowEmbedding{domain: e.domain, codomain: e.codomain, values: values}
}

// DPEvaluate runs the clever tree-DP engine over decomposition d for
// matching m against graph g of size n, returning the best gain and its
// realizing embedding. A dpNone-equivalent infeasible result is reported
// by a nil embedding and a non-positive gain; callers must still check the
// gain themselves (§4.6 "no candidate with negative or zero best gain
// contributes to a move").
func DPEvaluate(n int, g Distancer, m *Matching, d *Decomposition) (int64, *SlowEmbedding) {
	v := &dpVisitor{n: n, gain: NewGainFunc(g, m)}
	root := Dfs[*dynResult](d, v)
	best := root.table[0]
	if best == dpNone {
		return dpNone, nil
	}
	return best, RetrieveEmbedding(root, n)
}
