package kopt

import "sync"

// binomTable caches C(n,k) in a Pascal's-triangle table that grows by
// doubling as larger n are requested. Grounded on
// original_source/src/monotonic_sequence.h's cached Binom table.
type binomTable struct {
	mu  sync.Mutex
	rows [][]int64 // rows[n][k] = C(n,k), rows[n] has length n+1
}

var globalBinom = &binomTable{}

// Binom returns C(n,k), the number of k-subsets of an n-set. Returns 0 for
// k<0, k>n, or n<0.
func Binom(n, k int) int64 {
	return globalBinom.get(n, k)
}

func (t *binomTable) get(n, k int) int64 {
	if n < 0 || k < 0 || k > n {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.growTo(n)
	return t.rows[n][k]
}

func (t *binomTable) growTo(n int) {
	have := len(t.rows)
	if have > n {
		return
	}
	want := have * 2
	if want <= n {
		want = n + 1
	}
	rows := make([][]int64, want)
	copy(rows, t.rows)
	for i := have; i < want; i++ {
		row := make([]int64, i+1)
		row[0] = 1
		row[i] = 1
		for j := 1; j < i; j++ {
			row[j] = rows[i-1][j-1] + rows[i-1][j]
		}
		rows[i] = row
	}
	t.rows = rows
}

// Subset models a strictly increasing k-tuple x0<x1<...<x_{k-1}<N, iterated
// in lexicographic order (§4.2). The lexicographically smallest tuple is
// {0,1,...,k-1}.
//
// Grounded on original_source/src/monotonic_sequence.h/.cpp's Subset class.
type Subset struct {
	x   []int // current tuple, length k, strictly increasing, values in [0,n)
	n   int   // universe size N
}

// NewSubset returns the lexicographically smallest monotone k-tuple over
// [0,n). k=0 yields the (unique) empty tuple.
func NewSubset(k, n int) *Subset {
	x := make([]int, k)
	for i := range x {
		x[i] = i
	}
	return &Subset{x: x, n: n}
}

// Length returns k, the tuple's arity.
func (s *Subset) Length() int { return len(s.x) }

// MaxValue returns N, the universe size.
func (s *Subset) MaxValue() int { return s.n }

// At returns the i-th component of the tuple.
func (s *Subset) At(i int) int { return s.x[i] }

// ToVector returns a copy of the tuple.
func (s *Subset) ToVector() []int {
	out := make([]int, len(s.x))
	copy(out, s.x)
	return out
}

// Next advances to the lexicographically next tuple. Returns false and
// resets to the smallest tuple when the sequence is exhausted (mirrors
// §4.2's "advance to the lex-next tuple or reset and report end").
func (s *Subset) Next() bool {
	k := len(s.x)
	if k == 0 {
		return false // the only k=0 tuple is visited once by the caller
	}
	// Find the rightmost position that can still be incremented.
	i := k - 1
	for i >= 0 {
		limit := s.n - (k - i)
		if s.x[i] < limit {
			break
		}
		i--
	}
	if i < 0 {
		for j := range s.x {
			s.x[j] = j
		}
		return false
	}
	s.x[i]++
	for j := i + 1; j < k; j++ {
		s.x[j] = s.x[j-1] + 1
	}
	return true
}

// Index returns the current tuple's rank Σᵢ C(xᵢ, i+1) among all C(N,k)
// monotone k-tuples (§3, §4.2).
func (s *Subset) Index() int64 {
	var rank int64
	for i, xi := range s.x {
		rank += Binom(xi, i+1)
	}
	return rank
}

// IndexWithout returns the rank of the (k-1)-tuple obtained by dropping
// position p, computed in O(k) from the same tuple (§4.2's
// "rank_without(p)"). The original achieves O(1) via running prefix sums
// kept across Next() calls; k is bounded by 7 in this system so the O(k)
// direct recomputation used here is not a measurable cost.
func (s *Subset) IndexWithout(p int) int64 {
	var rank int64
	for i, xi := range s.x {
		if i == p {
			continue
		}
		pos := i
		if i > p {
			pos--
		}
		rank += Binom(xi, pos+1)
	}
	return rank
}
