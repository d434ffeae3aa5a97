// Driver: signature ranking, initial-cycle policies, and the iterated
// local-search loop that ties the engines together (§4.10).
//
// Grounded on original_source/src/main.cpp's Algo hierarchy
// (FuncAlgo/NaiveAlgo/CleverAlgo/DeBergAlgo/ChooseAlgo), PrepareSignatures,
// GenerateWalk, SetInitialCycle, PrintHeader/PrintStep, and GenericGlobal.
// Unlike the original, every knob (algorithm choice, k range, deadlines,
// seed, shuffle) lives in a caller-owned Config value (spec.md §9 "Global
// PRNG and flags" redesign) instead of gflags and a package-global RNG.
package kopt

import (
	"math/rand"
	"time"

	"fortio.org/log"
)

// WorkingGraph is what the driver needs from a graph collaborator beyond
// Distancer: the ability to measure and mutate the current working
// permutation (§4.10). tspgraph.Graph satisfies this structurally.
type WorkingGraph interface {
	Distancer
	CycleWeight() int64
	ApplyPermutation(p []int) error
	PermutationIDs() []int
	ResetPermutation()
	RandomShuffle(rng *rand.Rand)
}

// signatureAlgo is one candidate entry in a prepared signature list: a
// matching/implementation pair ready to be tried against the current
// cycle, ranked by an estimated-cost tuple (§4.10).
//
// Grounded on original_source/src/main.cpp's abstract Algo.
type signatureAlgo interface {
	// Run evaluates this candidate against g and returns its best move
	// (possibly non-improving; callers check Gain > 0).
	Run(g Distancer) *KMove

	// K returns the move size this candidate searches.
	K() int

	// Cost is the estimated-running-time ranking key: lower sorts first.
	Cost() [3]int

	// Type names the implementation that produced this candidate, for
	// the event log ("hardcoded", "naive", "clever", "deberg").
	Type() string

	// Sig names the candidate for the event log. For the two hardcoded
	// entries this is a fixed placeholder, not the specific reconnection
	// actually applied — cosmetic only, the applied move always comes
	// from the KMove Run returns.
	Sig() string
}

// costLess lexicographically compares two 3-tuple cost keys.
func costLess(a, b [3]int) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	if a[1] != b[1] {
		return a[1] < b[1]
	}
	return a[2] < b[2]
}

// improve runs algo against g and, if it finds a strictly improving move,
// applies it and reports true.
func improve(algo signatureAlgo, g WorkingGraph) (bool, *KMove, error) {
	move := algo.Run(g)
	if move == nil || move.Gain <= 0 {
		return false, nil, nil
	}
	m, err := MatchingFromID(move.MatchingID)
	if err != nil {
		return false, nil, err
	}
	cycle := RetrieveSolution(g.N(), m, move.Embedding)
	perm := make([]int, len(cycle))
	for i, cn := range cycle {
		perm[i] = int(cn)
	}
	if err := g.ApplyPermutation(perm); err != nil {
		return false, nil, err
	}
	return true, move, nil
}

// funcAlgo wraps a fixed-k, hardcoded brute-force function (Naive2optBase,
// Naive3optBase) as a signatureAlgo with a cosmetic static signature.
type funcAlgo struct {
	run  func(Distancer) *KMove
	typ  string
	cost int
	sig  string
}

func (a funcAlgo) Run(g Distancer) *KMove { return a.run(g) }
func (a funcAlgo) K() int                 { return a.cost }
func (a funcAlgo) Cost() [3]int           { return [3]int{a.cost, 0, 0} }
func (a funcAlgo) Type() string           { return a.typ }
func (a funcAlgo) Sig() string            { return a.sig }

// naiveAlgo brute-forces a single fixed matching by enumerating every
// FastEmbedding over its full domain and returning the first improving
// one found (§4.10's "naive" algorithm choice, generalized to any k).
//
// Grounded on original_source/src/main.cpp's NaiveAlgo, which enumerates
// via Embedding::Next() in the same do/while-until-improving shape.
type naiveAlgo struct {
	matchingID string
	k          int
}

func (a naiveAlgo) Run(g Distancer) *KMove {
	m, err := MatchingFromID(a.matchingID)
	if err != nil {
		return nil
	}
	gf := NewGainFunc(g, m)
	emb := NewFastEmbedding(a.k, g.N())
	for {
		if gain := gf.Join(emb); gain > 0 {
			return &KMove{Gain: gain, MatchingID: a.matchingID, Embedding: NewSlowEmbeddingFromFast(emb)}
		}
		if !emb.Next() {
			return nil
		}
	}
}

func (a naiveAlgo) K() int       { return a.k }
func (a naiveAlgo) Cost() [3]int { return [3]int{a.k, 3, 0} }
func (a naiveAlgo) Type() string { return "naive" }
func (a naiveAlgo) Sig() string  { return a.matchingID }

// cleverAlgo runs the tree-DP engine against a matching whose dependence
// graph has a library decomposition.
//
// Grounded on original_source/src/main.cpp's CleverAlgo.
type cleverAlgo struct {
	matchingID string
	decomp     *Decomposition
	treewidth  int
	complexity int
}

func (a cleverAlgo) Run(g Distancer) *KMove {
	m, err := MatchingFromID(a.matchingID)
	if err != nil {
		return nil
	}
	gain, emb := DPEvaluate(g.N(), g, m, a.decomp)
	if emb == nil {
		return nil
	}
	return &KMove{Gain: gain, MatchingID: a.matchingID, Embedding: emb}
}

func (a cleverAlgo) K() int       { return len(a.matchingID) + 1 }
func (a cleverAlgo) Cost() [3]int { return [3]int{a.treewidth + 1, 2, a.complexity} }
func (a cleverAlgo) Type() string { return "clever" }
func (a cleverAlgo) Sig() string  { return a.matchingID }

// deBergAlgo runs the reduced-embedding engine against a fixed matching.
//
// Grounded on original_source/src/main.cpp's DeBergAlgo.
type deBergAlgo struct {
	matchingID string
	exponent   int
}

func (a deBergAlgo) Run(g Distancer) *KMove {
	move, err := SingleDeBerg(a.matchingID, g)
	if err != nil {
		return nil
	}
	return move
}

func (a deBergAlgo) K() int       { return len(a.matchingID) + 1 }
func (a deBergAlgo) Cost() [3]int { return [3]int{a.exponent, 1, 0} }
func (a deBergAlgo) Type() string { return "deberg" }
func (a deBergAlgo) Sig() string  { return a.matchingID }

// chooseAlgo builds the signatureAlgo for matching m under the algorithm
// policy named by algo (§6 --algorithm).
//
// Grounded on original_source/src/main.cpp's ChooseAlgo.
func chooseAlgo(n int, m *Matching, lib *DecompositionLibrary, algo Algorithm) (signatureAlgo, error) {
	switch algo {
	case Naive:
		return naiveAlgo{matchingID: m.Id(), k: m.K()}, nil
	case Clever:
		decomp, err := lib.Lookup(NewDependenceGraph(m))
		if err != nil {
			return nil, err
		}
		tw := Treewidth(decomp)
		cost, _ := EstimateComplexity(decomp, n)
		return cleverAlgo{matchingID: m.Id(), decomp: decomp, treewidth: tw, complexity: int(cost)}, nil
	case DeBerg:
		return deBergAlgo{matchingID: m.Id(), exponent: DeBergExponent(m)}, nil
	case Combined:
		deberg := deBergAlgo{matchingID: m.Id(), exponent: DeBergExponent(m)}
		decomp, err := lib.Lookup(NewDependenceGraph(m))
		if err != nil {
			log.Warnf("kopt: no decomposition for matching %s, falling back to de Berg: %v", m.Id(), err)
			return deberg, nil
		}
		tw := Treewidth(decomp)
		cost, _ := EstimateComplexity(decomp, n)
		clever := cleverAlgo{matchingID: m.Id(), decomp: decomp, treewidth: tw, complexity: int(cost)}
		if costLess(clever.Cost(), deberg.Cost()) {
			return clever, nil
		}
		return deberg, nil
	default:
		return nil, ErrUnsupportedAlgorithm
	}
}

// PrepareSignatures builds the ranked candidate list the driver walks
// each local-search pass: the two hardcoded brute-force entries for
// k in {2,3} (when in range), then every irreducible matching for
// k in [max(4,minK),maxK] under the chosen algorithm, sorted by Cost and
// optionally shuffled among equal-cost groups.
//
// Grounded on original_source/src/main.cpp's PrepareSignatures.
func PrepareSignatures(n int, lib *DecompositionLibrary, cfg Config) ([]signatureAlgo, error) {
	var sig []signatureAlgo
	if cfg.MinK <= 2 && 2 <= cfg.MaxK {
		sig = append(sig, funcAlgo{run: Naive2optBase, typ: "hardcoded", cost: 2, sig: "#2"})
	}
	if cfg.MinK <= 3 && 3 <= cfg.MaxK {
		sig = append(sig, funcAlgo{run: Naive3optBase, typ: "hardcoded", cost: 3, sig: "#3"})
	}
	fixed := len(sig)

	start := cfg.MinK
	if start < 4 {
		start = 4
	}
	for k := start; k <= cfg.MaxK; k++ {
		m := NewMatching(k)
		for m.NextIrreducible() {
			algo, err := chooseAlgo(n, m.Clone(), lib, cfg.Algo)
			if err != nil {
				return nil, err
			}
			sig = append(sig, algo)
		}
	}

	ranked := sig[fixed:]
	sortByCost(ranked)

	if cfg.ShuffleSignatures {
		rng := deriveRNG(rngFromSeed(cfg.Seed), shuffleSignaturesStream)
		shuffleEqualCostGroups(ranked, rng)
	}
	return sig, nil
}

const (
	shuffleSignaturesStream uint64 = 1
	walkPolicyStream        uint64 = 2
)

// sortByCost sorts candidates ascending by Cost (insertion sort: the
// candidate lists here are small, at most a few thousand entries, and
// this keeps the dependency surface free of a throwaway sort.Interface
// wrapper type).
func sortByCost(a []signatureAlgo) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && costLess(a[j].Cost(), a[j-1].Cost()); j-- {
			a[j], a[j-1] = a[j-1], a[j]
		}
	}
}

// shuffleEqualCostGroups randomizes the order within each run of
// consecutive candidates sharing the same Cost, leaving group boundaries
// (and therefore the overall ranking) untouched.
func shuffleEqualCostGroups(a []signatureAlgo, rng *rand.Rand) {
	for begin := 0; begin < len(a); {
		end := begin + 1
		for end < len(a) && a[end].Cost() == a[begin].Cost() {
			end++
		}
		shuffleAlgosInPlace(a[begin:end], rng)
		begin = end
	}
}

func shuffleAlgosInPlace(a []signatureAlgo, rng *rand.Rand) {
	for i := len(a) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// GenerateWalk builds a starting tour via a nearest-5 greedy walk: from a
// uniformly random start, repeatedly jump to a uniformly random choice
// among the 5 nearest unvisited nodes (§4.10 step 3, WalkCycle).
//
// Grounded on original_source/src/main.cpp's GenerateWalk.
func GenerateWalk(g Distancer, rng *rand.Rand) []CycleNode {
	n := g.N()
	cycle := make([]CycleNode, 0, n)
	visited := make([]bool, n)
	at := CycleNode(rng.Intn(n))
	cycle = append(cycle, at)
	visited[int(at)] = true

	type candidate struct {
		dist int64
		v    CycleNode
	}
	for len(cycle) < n {
		var candidates []candidate
		for i := 0; i < n; i++ {
			if !visited[i] {
				candidates = append(candidates, candidate{dist: g.D(int(at), i), v: CycleNode(i)})
			}
		}
		for i := 1; i < len(candidates); i++ {
			for j := i; j > 0 && candidates[j].dist < candidates[j-1].dist; j-- {
				candidates[j], candidates[j-1] = candidates[j-1], candidates[j]
			}
		}
		top := len(candidates)
		if top > 5 {
			top = 5
		}
		at = candidates[rng.Intn(top)].v
		visited[int(at)] = true
		cycle = append(cycle, at)
	}
	return cycle
}

// SetInitialCycle seeds g's working permutation per cfg.InitialCycle
// (§4.10 step 3).
//
// Grounded on original_source/src/main.cpp's SetInitialCycle.
func SetInitialCycle(g WorkingGraph, cfg Config) error {
	switch cfg.InitialCycle {
	case IdentityCycleOrder:
		return nil
	case ShuffleCycle:
		g.RandomShuffle(rngFromSeed(cfg.Seed))
		return nil
	case WalkCycle:
		walk := GenerateWalk(g, deriveRNG(rngFromSeed(cfg.Seed), walkPolicyStream))
		perm := make([]int, len(walk))
		for i, cn := range walk {
			perm[i] = int(cn)
		}
		return g.ApplyPermutation(perm)
	default:
		return ErrUnsupportedAlgorithm
	}
}

// StepEvent is one line of the driver's CSV event log
// (time,weight,k,method,exponent,signature), emitted after each accepted
// improving move.
type StepEvent struct {
	Elapsed   time.Duration
	Weight    int64
	K         int
	Method    string
	Exponent  int
	Signature string
}

// csvHeader is the event-log header line, written once before the first
// StepEvent of a RunLocalSearch call.
//
// Grounded on original_source/src/main.cpp's PrintHeader.
const csvHeader = "time,weight,k,method,exponent,signature"

// logStep writes ev as one comma-joined CSV record matching csvHeader.
//
// Grounded on original_source/src/main.cpp's PrintStep.
func logStep(ev StepEvent) {
	log.Infof("%s,%d,%d,%s,%d,%s",
		ev.Elapsed, ev.Weight, ev.K, ev.Method, ev.Exponent, ev.Signature)
}

// RunLocalSearch seeds the initial cycle, ranks candidate signatures, and
// applies the first improving candidate it finds (§4.10, §9 "single-pass
// local search" vs. "iterated global search"):
//   - cfg.Iterate == false: applies at most one improving move and returns.
//   - cfg.Iterate == true: restarts the scan from the top of the ranked
//     list after every accepted move, converging to a local optimum over
//     the full k range (or stopping early at a deadline).
//
// Grounded on original_source/src/main.cpp's GenericGlobal (the
// cfg.Iterate == true behavior) and its non-iterate Local() dispatch
// (cfg.Iterate == false); unified into a single pipeline rather than the
// original's two separate driver entry points, since both walk the same
// ranked candidate list and differ only in whether they restart after a
// hit. Unlike the original's global process-clock deadline,
// Deadline/DeadlineStep are measured from this call's own start via
// time.Now, so results don't depend on how long the process had already
// been running.
func RunLocalSearch(g WorkingGraph, lib *DecompositionLibrary, cfg Config) ([]int, error) {
	if err := SetInitialCycle(g, cfg); err != nil {
		return nil, err
	}
	sig, err := PrepareSignatures(g.N(), lib, cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var deadline time.Time
	if cfg.Deadline > 0 {
		deadline = start.Add(cfg.Deadline)
	} else if cfg.DeadlineStep > 0 {
		deadline = start.Add(cfg.DeadlineStep)
	}

	log.Infof(csvHeader)

	idx := 0
	for idx < len(sig) {
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
		ok, move, err := improve(sig[idx], g)
		if err != nil {
			return nil, err
		}
		if ok {
			logStep(StepEvent{
				Elapsed:   time.Since(start),
				Weight:    g.CycleWeight(),
				K:         sig[idx].K(),
				Method:    sig[idx].Type(),
				Exponent:  sig[idx].Cost()[0],
				Signature: move.MatchingID,
			})
			if !cfg.Iterate {
				break
			}
			idx = 0
			if cfg.DeadlineStep > 0 {
				next := time.Now().Add(cfg.DeadlineStep)
				if next.After(deadline) {
					deadline = next
				}
			}
			continue
		}
		idx++
	}

	result := g.PermutationIDs()
	g.ResetPermutation()
	return result, nil
}
