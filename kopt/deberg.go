package kopt

import "sort"

// fastSubset enumerates every k-element increasing subset of {0,...,n-1} in
// colex order (Subset, by contrast, iterates in lex order), specialized for
// the de Berg engine's node-mapping (§4.7 "reduced embedding").
//
// Grounded on original_source/src/de_berg.cpp's FastSubset.
type fastSubset struct {
	k int
	v []int // length k+1; v[k] holds the sentinel n
}

func newFastSubset(k, n int) *fastSubset {
	v := make([]int, k+1)
	for i := 0; i < k; i++ {
		v[i] = i
	}
	v[k] = n
	return &fastSubset{k: k, v: v}
}

func (s *fastSubset) at(idx int) int { return s.v[idx] }

// next advances to the next subset, reporting whether one exists. Called
// in a do/while pattern: the zero subset is always visited once even when
// k == 0.
func (s *fastSubset) next() bool {
	i := 0
	for i < s.k && s.v[i]+1 == s.v[i+1] {
		s.v[i] = i
		i++
	}
	if i < s.k {
		s.v[i]++
		return true
	}
	return false
}

// mapNode maps a del-subset-relative node index (possibly -1 for "no
// neighbor", or 2*k for "past the end") to an absolute graph node.
func (s *fastSubset) mapNode(x int) int {
	switch {
	case x < 0:
		return 0
	case x < 2*s.k:
		return s.v[x/2] + x%2
	default:
		return s.v[s.k]
	}
}

// chainTable is shared DP scratch space for every chain within one
// de Berg signature evaluation, sized to the graph and the longest chain.
type chainTable struct {
	bestIdx []int
	gain    []int64
	ydim    int
}

func newChainTable(xdim, ydim int) *chainTable {
	if ydim == 0 {
		ydim = 1
	}
	return &chainTable{bestIdx: make([]int, xdim*ydim), gain: make([]int64, ydim), ydim: ydim}
}

func (t *chainTable) bestIdxAt(x, y int) int    { return t.bestIdx[x*t.ydim+y] }
func (t *chainTable) setBestIdx(x, y, val int)  { t.bestIdx[x*t.ydim+y] = val }
func (t *chainTable) gainAt(y int) int64        { return t.gain[y] }
func (t *chainTable) setGain(y int, val int64)  { t.gain[y] = val }

// chainEdge is one surviving signature edge within a chain: its home
// signature-edge index i, and the two neighbor nodes (x, y) it must reach
// around whichever graph node it is ultimately placed at.
type chainEdge struct {
	i, x, y int
}

// gain returns the gain of placing this edge at graph node at (or, if at
// is negative, at the edge's own already-assigned i).
func (e chainEdge) gain(g Distancer, at int) int64 {
	if at < 0 {
		at = e.i
	}
	n := g.N()
	return g.D(at, wrapMod(at+1, n)) - g.D(at, e.x) - g.D(wrapMod(at+1, n), e.y)
}

// chain is one maximal run of consecutive surviving edges between two
// deleted (bagged) positions. Feasible tells whether the chain's edges can
// fit in the gap between its mapped endpoints; run computes the optimal
// subsequence-placement DP (a weighted interval-scheduling recurrence: at
// most one edge may land on each graph node).
//
// Grounded on original_source/src/de_berg.cpp's Dynamic struct.
type chain struct {
	begin, end int
	edges      []chainEdge
}

func (c *chain) feasible() bool { return len(c.edges) <= c.end-c.begin }

func (c *chain) run(g Distancer, t *chainTable) {
	n := c.end - c.begin
	m := len(c.edges)
	for i := 0; i < n; i++ {
		top := i
		if m-1 < top {
			top = m - 1
		}
		for j := top; j >= 0; j-- {
			if i > j {
				t.setBestIdx(i, j, t.bestIdxAt(i-1, j))
			}
			var prevGain int64
			if j > 0 {
				prevGain = t.gainAt(j - 1)
			}
			gain := prevGain + c.edges[j].gain(g, c.begin+i)
			if i == j || gain > t.gainAt(j) {
				t.setGain(j, gain)
				t.setBestIdx(i, j, i)
			}
		}
	}
	i := n
	for j := m - 1; j >= 0; j-- {
		i = t.bestIdxAt(i-1, j)
		c.edges[j].i = c.begin + i
	}
}

// chainData holds a chain in both its signature-relative (unmapped) form
// and its current graph-relative (mapped) form under a candidate del
// subset.
type chainData struct {
	unmapped, mapped chain
}

func (d *chainData) mapChain(subset *fastSubset) {
	d.mapped.begin = subset.mapNode(d.unmapped.begin)
	d.mapped.end = subset.mapNode(d.unmapped.end)
	d.mapped.edges = make([]chainEdge, len(d.unmapped.edges))
	for i, e := range d.unmapped.edges {
		d.mapped.edges[i] = chainEdge{x: subset.mapNode(e.x), y: subset.mapNode(e.y)}
	}
}

// reducedIndex classifies each of a signature's k edges as "dependent"
// (removed — a candidate for the del subset) or "independent" (part of a
// surviving chain), following each fragment's cycle walk and alternating
// the classification every other step.
//
// Grounded on original_source/src/de_berg.cpp's ReducedIndex.
type reducedIndex struct {
	k, l int
	idx  []int // -1 for an independent (chain) edge, else the dependent edge's slot in the del subset
}

func newReducedIndex(sig []int) *reducedIndex {
	k := len(sig) / 2
	visited := make([]bool, k)
	reduce := make([]bool, k)
	for i := 0; i < k; i++ {
		ep, step := 2*i, 0
		for !visited[ep/2] {
			visited[ep/2] = true
			reduce[ep/2] = step%2 == 1
			ep = sig[ep^1]
			step++
		}
	}
	idx := make([]int, k)
	l := 0
	for i := 0; i < k; i++ {
		if reduce[i] {
			idx[i] = -1
		} else {
			idx[i] = l
			l++
		}
	}
	return &reducedIndex{k: k, l: l, idx: idx}
}

// dep reports whether edge is dependent (del-subset candidate). An edge
// index of k itself (the virtual boundary past the last edge) is always
// treated as dependent.
func (r *reducedIndex) dep(edge int) bool {
	return edge >= r.k || r.idx[edge] >= 0
}

// at maps a signature node (or boundary sentinel) through the reduced
// index: ep < 0 is "no neighbor", ep >= 2k is "past the end".
func (r *reducedIndex) at(ep int) int {
	switch {
	case ep < 0:
		return -1
	case ep < 2*r.k:
		return 2*r.idx[ep/2] + ep%2
	default:
		return 2 * r.l
	}
}

// addEdge is a fixed (non-deleted) matched pair whose both endpoints
// survive reduction: its gain cost is paid unconditionally, not via a
// chain DP.
type addEdge struct{ x, y int }

// deBergSignature is one matching's reduced-embedding evaluator (§4.7):
// del holds the original signature-edge indices available for removal,
// add the fixed surviving pairs, and dyn the chain DPs for the remaining
// runs of consecutive surviving edges.
//
// Grounded on original_source/src/de_berg.cpp's DeBergSignature.
type deBergSignature struct {
	matching *Matching
	k        int
	del      []int
	add      []addEdge
	dyn      []*chainData
}

func newDeBergSignature(m *Matching) *deBergSignature {
	k := m.K()
	sig := make([]int, 2*k)
	for i := 0; i < 2*k; i++ {
		sig[i] = int(m.At(SigNode(i)))
	}
	s := &deBergSignature{matching: m, k: k}
	s.init(sig)
	return s
}

func (s *deBergSignature) init(sig []int) {
	idx := newReducedIndex(sig)
	for i := 0; i < s.k; i++ {
		if idx.dep(i) {
			s.del = append(s.del, i)
		}
	}
	for i := 0; i < 2*s.k; i++ {
		j := sig[i]
		if i < j && idx.dep(i/2) && idx.dep(j/2) {
			s.add = append(s.add, addEdge{x: idx.at(i), y: idx.at(j)})
		}
	}
	for i := 0; i < s.k; i++ {
		if idx.dep(i) {
			continue
		}
		d := &chainData{}
		d.unmapped.begin = idx.at(2*i - 1)
		for {
			d.unmapped.edges = append(d.unmapped.edges, chainEdge{i: i, x: idx.at(sig[2*i]), y: idx.at(sig[2*i+1])})
			i++
			if idx.dep(i) {
				break
			}
		}
		d.unmapped.end = idx.at(2 * i)
		s.dyn = append(s.dyn, d)
	}
}

// dynSize returns the longest chain's edge count, the table's y-dimension.
func (s *deBergSignature) dynSize() int {
	max := 0
	for _, d := range s.dyn {
		if n := len(d.unmapped.edges); n > max {
			max = n
		}
	}
	return max
}

// gain evaluates the total reduced-embedding gain for the given del
// subset, assuming every chain has already been mapped and run against it.
func (s *deBergSignature) gain(g Distancer, subset *fastSubset) int64 {
	var total int64
	for i := 0; i < len(s.del); i++ {
		pos := subset.at(i)
		total += g.D(pos, wrapMod(pos+1, g.N()))
	}
	for _, e := range s.add {
		total -= g.D(subset.mapNode(e.x), subset.mapNode(e.y))
	}
	for _, d := range s.dyn {
		for _, e := range d.mapped.edges {
			total += e.gain(g, -1)
		}
	}
	return total
}

// retrieveResult packs the current best subset and chain placements into a
// single node-index array (del edges by position, chain edges by their
// home signature index), ready for conversion to a SlowEmbedding.
func (s *deBergSignature) retrieveResult(subset *fastSubset) *fastSubset {
	result := newFastSubset(s.k, 0)
	for i, di := range s.del {
		result.v[di] = subset.at(i)
	}
	for _, d := range s.dyn {
		for i, ue := range d.unmapped.edges {
			result.v[ue.i] = d.mapped.edges[i].i
		}
	}
	return result
}

// embed searches every feasible del subset, running each chain's DP and
// summing total gain, returning the best gain found and the subset that
// realizes it (nil if no subset improves on the identity cycle).
func (s *deBergSignature) embed(g Distancer) (int64, *fastSubset) {
	var bestGain int64
	var bestResult *fastSubset
	table := newChainTable(g.N(), s.dynSize())
	subset := newFastSubset(len(s.del), g.N())
	for {
		feasible := true
		for _, d := range s.dyn {
			d.mapChain(subset)
			if !d.mapped.feasible() {
				feasible = false
			}
		}
		if feasible {
			for _, d := range s.dyn {
				d.mapped.run(g, table)
			}
			if gain := s.gain(g, subset); gain > bestGain {
				bestGain = gain
				bestResult = s.retrieveResult(subset)
			}
		}
		if !subset.next() {
			break
		}
	}
	return bestGain, bestResult
}

// DeBergExponent returns the reduced-embedding engine's exponent for
// matching m: its del-subset size (deleted-edge count) plus one (§4.7, used
// to order signatures by expected cost).
func DeBergExponent(m *Matching) int {
	return len(newDeBergSignature(m).del) + 1
}

// DeBergEvaluate runs the reduced-embedding engine for matching m against
// graph g. A non-positive gain is reported with a nil embedding (unlike
// DPEvaluate, which returns an embedding for every feasible result).
//
// Note: the FasterSubset variant from original_source/src/de_berg.cpp (a
// weight-sorted del-node ordering meant to prune the subset search early)
// is not ported — it changes only which feasible subsets are visited
// first, not which ones are feasible or what gain they realize, so it is
// a pure speed optimization with no effect on DeBergEvaluate's result.
func DeBergEvaluate(g Distancer, m *Matching) (int64, *SlowEmbedding) {
	sig := newDeBergSignature(m)
	gain, result := sig.embed(g)
	if gain <= 0 {
		return gain, nil
	}
	e := NewSlowEmbedding(g.N())
	for i := 0; i < sig.k; i++ {
		e.SetVal(SigEdge(i), CycleEdge(result.at(i)))
	}
	return gain, e
}

// SingleDeBerg decodes id and runs DeBergEvaluate against it, returning a
// ready-to-apply KMove, or nil if id admits no improving reduced
// embedding.
func SingleDeBerg(id string, g Distancer) (*KMove, error) {
	m, err := MatchingFromID(id)
	if err != nil {
		return nil, err
	}
	gain, emb := DeBergEvaluate(g, m)
	if emb == nil {
		return nil, nil
	}
	return &KMove{Gain: gain, MatchingID: id, Embedding: emb}, nil
}

// GenerateDeBergSignatures builds one deBergSignature per irreducible
// matching over k in [minK, maxK], sorted ascending by del-subset size so
// a deadline-bounded caller evaluates the cheapest signatures first.
func GenerateDeBergSignatures(minK, maxK int) []*deBergSignature {
	var result []*deBergSignature
	for k := minK; k <= maxK; k++ {
		m := NewMatching(k)
		for m.NextIrreducible() {
			result = append(result, newDeBergSignature(m.Clone()))
		}
	}
	sort.Slice(result, func(i, j int) bool { return len(result[i].del) < len(result[j].del) })
	return result
}
