package kopt

// Distancer is the minimal collaborator the gain function and the engines
// need from a working graph (§1 "the Graph exposes only N() and an integer
// distance oracle d(u,v)"). The graph package's Graph type satisfies this.
type Distancer interface {
	N() int
	D(u, v int) int64
}

// GainFunc computes the incremental gain contributions used by the clever
// DP engine (§4.9), keyed on an embedding plus an introduced or joined bag.
//
// gain_func.cpp was not present in the retrieval pack (only gain_func.h),
// so the arithmetic here is implemented directly from the documented
// formulas, cross-checked against dynamic.cpp's call sites for argument
// shape.
type GainFunc struct {
	g Distancer
	m *Matching
}

// NewGainFunc returns a GainFunc evaluating gains against g for matching m.
func NewGainFunc(g Distancer, m *Matching) *GainFunc {
	return &GainFunc{g: g, m: m}
}

// Introduce returns the gain contributed by introducing signature edge e
// into embedding emb′: the weight of the removed cycle edge at ε′(e),
// minus the weight of any new edge between ε′(e) and an endpoint's matched
// partner whose signature edge is already present in emb′'s domain.
func (gf *GainFunc) Introduce(emb Embedding, e SigEdge) int64 {
	n := gf.g.N()
	pos := int(emb.MapEdge(e))
	removed := gf.g.D(pos, wrapMod(pos+1, n))

	var added int64
	for _, x := range [2]SigNode{e.Left(), e.Right()} {
		partner := gf.m.At(x)
		if emb.Domain().Contains(partner.Edge()) {
			added += gf.g.D(int(EmbedNode(emb, x)), int(EmbedNode(emb, partner)))
		}
	}
	return removed - added
}

// Join returns the total gain of a fully-embedded signature: the sum of
// removed cycle-edge weights over the domain, minus the sum of added
// matched-pair edge weights, each counted exactly once (via the x < m(x)
// ordering constraint).
func (gf *GainFunc) Join(emb Embedding) int64 {
	n := gf.g.N()
	var total int64
	for _, e := range emb.Domain().Elements() {
		pos := int(emb.MapEdge(e))
		total += gf.g.D(pos, wrapMod(pos+1, n))

		for _, x := range [2]SigNode{e.Left(), e.Right()} {
			partner := gf.m.At(x)
			if int(x) >= int(partner) {
				continue
			}
			if emb.Domain().Contains(partner.Edge()) {
				total -= gf.g.D(int(EmbedNode(emb, x)), int(EmbedNode(emb, partner)))
			}
		}
	}
	return total
}
