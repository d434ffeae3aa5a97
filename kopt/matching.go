package kopt

// Matching represents a perfect matching on the 2k signature nodes of a
// k-move (§3, §4.3): a permutation of {0,...,2k-1} that is an involution
// with no fixed points, together with the (k-1)-length permutation/
// orientation pair that encodes and enumerates it canonically.
//
// Grounded on original_source/src/matching.h/.cpp, ported algorithm for
// algorithm (Next/NextIrreducible/Id/UpdateMatching are a direct port; the
// enumeration order and canonical id format must match bit-for-bit since
// the decomposition library is keyed on it).
type Matching struct {
	matching []int // permutation of 0..2k-1: the involution (matching_)
	p        []int // permutation of cycle pieces, length k-1
	o        []int // orientation of cycle pieces (0/1), length k-1
}

// NewMatching returns the lexicographically smallest matching on 2*k
// signature nodes (k signature edges).
func NewMatching(k int) *Matching {
	m := &Matching{
		matching: make([]int, 2*k),
		p:        make([]int, k-1),
		o:        make([]int, k-1),
	}
	for i := range m.p {
		m.p[i] = i
	}
	m.updateMatching()
	return m
}

// MatchingFromID decodes a canonical id produced by Id back into a Matching.
// Fails only on a malformed id (wrong character range or too long to encode
// with single A-Z/a-z letters).
func MatchingFromID(id string) (*Matching, error) {
	n := len(id)
	if n > 26 {
		return nil, ErrBadMatchingID
	}
	m := &Matching{
		matching: make([]int, 2*n+2),
		p:        make([]int, n),
		o:        make([]int, n),
	}
	for i := 0; i < n; i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z':
			m.o[i] = 1
			m.p[i] = int(c - 'a')
		case c >= 'A' && c <= 'Z':
			m.o[i] = 0
			m.p[i] = int(c - 'A')
		default:
			return nil, ErrBadMatchingID
		}
		if m.p[i] >= n {
			return nil, ErrBadMatchingID
		}
	}
	m.updateMatching()
	return m, nil
}

// K returns k, the number of signature edges (half the domain size).
func (m *Matching) K() int { return len(m.matching) / 2 }

// Domain returns the full domain {0,...,2k-1} as a signature-node bit-set.
func (m *Matching) Domain() Bits[SigNode] {
	return FullBits[SigNode](len(m.matching))
}

// At returns m(node), the partner of node under the matching.
func (m *Matching) At(node SigNode) SigNode {
	return SigNode(m.matching[int(node)])
}

// Reducible reports whether the matching reconnects some removed edge's
// own endpoints together, which would re-introduce that edge (§4.3).
func (m *Matching) Reducible() bool {
	k := m.K()
	for i := 0; i < k; i++ {
		if m.matching[2*i] == 2*i+1 {
			return true
		}
	}
	return false
}

// Next advances to the lexicographically next matching in the canonical
// enumeration order. Returns false (and resets to the smallest matching)
// when the order is exhausted.
func (m *Matching) Next() bool {
	sz := len(m.o)
	i := sz - 1
	for ; i >= 0; i-- {
		m.o[i] = 1 - m.o[i]
		if m.o[i] != 0 {
			break
		}
		if i+1 < sz && m.p[i] < m.p[i+1] {
			low := sz - 1
			for m.p[i] >= m.p[low] {
				low--
			}
			m.p[i], m.p[low] = m.p[low], m.p[i]
			break
		}
	}
	reverseInts(m.p[i+1:])
	m.updateMatching()
	return i >= 0
}

// NextIrreducible repeatedly calls Next until a non-reducible matching is
// reached (true) or the enumeration is exhausted (false). The irreducible
// stream is the only one consumed by the engines (§4.3).
func (m *Matching) NextIrreducible() bool {
	for m.Next() {
		if !m.Reducible() {
			return true
		}
	}
	return false
}

// Clone returns an independent copy, needed whenever a Matching is stored
// past a subsequent Next/NextIrreducible call on the original.
func (m *Matching) Clone() *Matching {
	c := &Matching{
		matching: make([]int, len(m.matching)),
		p:        make([]int, len(m.p)),
		o:        make([]int, len(m.o)),
	}
	copy(c.matching, m.matching)
	copy(c.p, m.p)
	copy(c.o, m.o)
	return c
}

// Id returns the canonical k-1 character id: 'A'+p[i] for an unreversed
// fragment, 'a'+p[i] for a reversed one (§3).
func (m *Matching) Id() string {
	buf := make([]byte, len(m.p))
	for i, pi := range m.p {
		if m.o[i] != 0 {
			buf[i] = byte('a' + pi)
		} else {
			buf[i] = byte('A' + pi)
		}
	}
	return string(buf)
}

// updateMatching rebuilds the involution matching_ from p_/o_ (§3's
// "permutation-and-orientation of k-1 inner cycle fragments relative to
// the fixed first and last endpoints").
func (m *Matching) updateMatching() {
	k := m.K()
	for i := 0; i < k; i++ {
		var a int
		if i == 0 {
			a = 0
		} else {
			a = 2*m.p[i-1] + 2 - m.o[i-1]
		}
		var b int
		if i == k-1 {
			b = 2*k - 1
		} else {
			b = 2*m.p[i] + 1 + m.o[i]
		}
		m.matching[a] = b
		m.matching[b] = a
	}
}

func reverseInts(xs []int) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}
