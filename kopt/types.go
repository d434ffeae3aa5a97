// Config, Algorithm, and InitialCycle: the driver's single knob bundle
// (§9 "Global PRNG and flags" redesign — no package-global PRNG or flag
// state; every knob flows through a value the caller constructs and
// owns).
//
// Design goals:
//   - Zero surprises: sensible defaults (single-pass clever-engine search).
//   - Determinism: every random-driven policy is controlled by Seed.
//   - Extensibility: one Config struct covers single-pass and iterated search.
package kopt

import "time"

// Algorithm selects the embedding engine (or a bypass of it) the driver
// uses to evaluate candidate signatures (§4.10, §6 --algorithm).
type Algorithm int

const (
	// Clever runs the tree-decomposition DP engine (DPEvaluate). Default.
	Clever Algorithm = iota

	// DeBerg runs the reduced-embedding engine (DeBergEvaluate).
	DeBerg

	// Naive evaluates each k>=4 signature by enumerating every embedding
	// of its matching (naiveAlgo) instead of running an engine; k=2 and
	// k=3 use the hardcoded Naive2optBase/Naive3optBase entries.
	Naive

	// Experimental runs Experimental3opt's hardcoded direct reconstruction.
	Experimental

	// Combined picks, per signature, whichever of Clever and DeBerg has the
	// lower estimated Cost, and uses DeBerg on a decomposition library miss
	// rather than failing the candidate.
	Combined
)

// InitialCycle selects how the driver seeds the starting tour (§4.10 step 3).
type InitialCycle int

const (
	// IdentityCycleOrder starts at the TSPLIB input order 0,1,...,N-1.
	IdentityCycleOrder InitialCycle = iota

	// ShuffleCycle starts at a uniformly random permutation (Config.Seed).
	ShuffleCycle

	// WalkCycle starts at GenerateWalk's nearest-5 greedy tour.
	WalkCycle
)

// Config carries every driver knob. The zero value is not meaningful; use
// DefaultConfig() and override fields as needed.
type Config struct {
	// Algo selects the embedding engine. Default: Clever.
	Algo Algorithm

	// InitialCycle selects the starting tour policy. Default: IdentityCycleOrder.
	InitialCycle InitialCycle

	// K fixes a single k-move size for one local-search pass. Zero means
	// "use MinK/MaxK instead".
	K int

	// MinK, MaxK bound the k range scanned each local-search pass when K
	// is zero. Defaults: 2, 7 (the library's supported range).
	MinK, MaxK int

	// Iterate runs the driver to a local optimum (repeated passes until no
	// k in [MinK,MaxK] improves), instead of a single pass.
	Iterate bool

	// Deadline bounds wall-clock search time, measured from the start of
	// RunLocalSearch. Zero means no limit unless DeadlineStep is set, in
	// which case the initial deadline is DeadlineStep after the start.
	Deadline time.Duration

	// DeadlineStep moves the deadline, after each improving move, to at
	// least DeadlineStep past that move. Zero means no extension. The
	// deadline is checked only between candidates; a running candidate is
	// never interrupted.
	DeadlineStep time.Duration

	// ShuffleSignatures randomizes the candidate order among signatures of
	// equal estimated cost, instead of canonical enumeration order.
	ShuffleSignatures bool

	// Seed controls every randomized policy (ShuffleCycle, ShuffleSignatures).
	// Default: 0 (fixed seed, deterministic).
	Seed int64
}

// DefaultConfig returns a fully populated Config with safe, reproducible
// defaults:
//   - Clever engine, identity initial cycle
//   - Full k range [2,7], single pass (no iteration)
//   - No deadlines, canonical signature order, deterministic RNG (Seed=0)
func DefaultConfig() Config {
	return Config{
		Algo:              Clever,
		InitialCycle:      IdentityCycleOrder,
		K:                 0,
		MinK:              2,
		MaxK:              7,
		Iterate:           false,
		Deadline:          0,
		DeadlineStep:      0,
		ShuffleSignatures: false,
		Seed:              0,
	}
}
