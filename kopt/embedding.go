package kopt

// Embedding is the capability set shared by the two embedding
// representations (§3, §9 "Polymorphic embedding"): a partial injection
// from a subset of signature edges to cycle edges.
type Embedding interface {
	Domain() Bits[SigEdge]
	MapEdge(edge SigEdge) CycleEdge
}

// EmbedNode maps a signature node through e: ε(node) = ε(edge(node)) +
// (node mod 2) (§4.9).
func EmbedNode(e Embedding, node SigNode) CycleNode {
	base := e.MapEdge(node.Edge())
	if node.IsLeft() {
		return CycleNode(base)
	}
	return CycleNode(int(base) + 1)
}

// FastEmbedding is the dense/monotone representation (§3 "Subset form"):
// the domain's values form a strictly increasing sequence of cycle-edge
// positions, ranked by the monotone-subset bijection. Used by the DP
// engines, where dense table indexing matters.
//
// Grounded on original_source/src/fast_embedding.h/.cpp.
type FastEmbedding struct {
	domain Bits[SigEdge]
	values *Subset
}

// NewFastEmbedding returns the lexicographically smallest embedding whose
// domain is the full {0,...,domainSize-1} signature-edge set, mapping into
// [0,codomain).
func NewFastEmbedding(domainSize, codomain int) *FastEmbedding {
	return NewFastEmbeddingOverDomain(FullBits[SigEdge](domainSize), codomain)
}

// NewFastEmbeddingOverDomain returns the lexicographically smallest
// embedding over the given (possibly non-full) domain.
func NewFastEmbeddingOverDomain(domain Bits[SigEdge], codomain int) *FastEmbedding {
	return &FastEmbedding{domain: domain, values: NewSubset(domain.Size(), codomain)}
}

func (e *FastEmbedding) Domain() Bits[SigEdge] { return e.domain }
func (e *FastEmbedding) Codomain() int         { return e.values.MaxValue() }

// MapEdge returns ε(edge): the cycle-edge position assigned to a domain
// signature edge, looked up by the edge's rank within the domain.
func (e *FastEmbedding) MapEdge(edge SigEdge) CycleEdge {
	return CycleEdge(e.values.At(e.domain.Rank(edge)))
}

// Id returns a unique id among embeddings sharing this domain (the
// monotone-subset rank), used to index a per-bag DP table.
func (e *FastEmbedding) Id() int64 { return e.values.Index() }

// IdSize returns the upper bound for Id(): C(codomain, |domain|).
func (e *FastEmbedding) IdSize() int64 {
	return FastEmbeddingIdSize(e.domain, e.Codomain())
}

// FastEmbeddingIdSize returns C(codomain, domain.Size()) without
// constructing an embedding.
func FastEmbeddingIdSize(domain Bits[SigEdge], codomain int) int64 {
	return Binom(codomain, domain.Size())
}

// WithoutIndex returns the rank of this embedding with edge removed from
// its domain (original_source's Embedding::operator-(SigEdge), used by the
// DP engine's Introduce/Forget projections between parent and child bags).
func (e *FastEmbedding) WithoutIndex(edge SigEdge) int64 {
	return e.values.IndexWithout(e.domain.Rank(edge))
}

// Next advances to the lexicographically next embedding with this domain.
func (e *FastEmbedding) Next() bool { return e.values.Next() }

// SlowEmbedding is the sparse representation (§3 "Sparse form"): a bitmask
// domain plus per-edge values in insertion (domain-rank) order, allowing
// any assignment with pairwise-distinct values — not necessarily monotone
// globally. Used during solution retrieval and by the de Berg engine.
//
// Grounded on original_source/src/slow_embedding.h/.cpp.
type SlowEmbedding struct {
	domain   Bits[SigEdge]
	codomain int
	values   []CycleEdge // ordered by domain rank
}

// NewSlowEmbedding returns the empty sparse embedding over [0,codomain).
func NewSlowEmbedding(codomain int) *SlowEmbedding {
	return &SlowEmbedding{codomain: codomain}
}

// NewSlowEmbeddingFromFast converts a dense embedding to sparse form.
func NewSlowEmbeddingFromFast(fe *FastEmbedding) *SlowEmbedding {
	se := NewSlowEmbedding(fe.Codomain())
	for _, arg := range fe.Domain().Elements() {
		se.SetVal(arg, fe.MapEdge(arg))
	}
	return se
}

func (e *SlowEmbedding) Domain() Bits[SigEdge] { return e.domain }
func (e *SlowEmbedding) Codomain() int         { return e.codomain }

// MapEdge returns ε(edge), looked up by the edge's rank within the domain.
func (e *SlowEmbedding) MapEdge(edge SigEdge) CycleEdge {
	return e.values[e.domain.Rank(edge)]
}

// Index returns the sparse embedding's combinatorial rank, computed
// directly from values_ (mirrors FastEmbedding.Id for a domain built up
// incrementally rather than iterated monotonically).
func (e *SlowEmbedding) Index() int64 {
	var result int64
	for i := e.domain.Size(); i > 0; i-- {
		result += Binom(int(e.values[i-1]), i)
	}
	return result
}

// SetVal assigns val to arg, inserting arg into the domain if absent while
// keeping values_ ordered by domain rank.
func (e *SlowEmbedding) SetVal(arg SigEdge, val CycleEdge) {
	pos := e.domain.Rank(arg)
	if e.domain.Contains(arg) {
		e.values[pos] = val
		return
	}
	e.domain = e.domain.With(arg)
	e.values = append(e.values, 0)
	copy(e.values[pos+1:], e.values[pos:])
	e.values[pos] = val
}

// Remove deletes arg from the domain.
func (e *SlowEmbedding) Remove(arg SigEdge) {
	pos := e.domain.Rank(arg)
	e.values = append(e.values[:pos], e.values[pos+1:]...)
	e.domain = e.domain.Without(arg)
}

// KMove is the result of evaluating a signature against the current cycle
// (§3): a gain/matching/embedding triple for RetrieveSolution. The gain
// may be non-positive (Naive2optBase/Naive3optBase always return their
// best move); callers apply it only when Gain > 0.
//
// Grounded on original_source/src/slow_embedding.h's Kmove struct.
type KMove struct {
	Gain      int64
	MatchingID string
	Embedding  *SlowEmbedding
}
