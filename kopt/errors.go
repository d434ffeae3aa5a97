package kopt

import "errors"

// Sentinel errors for the kopt package. Grouped by concern: validation,
// decomposition-library integrity, and algorithmic control flow.
var (
	// ErrBadMatchingID indicates a canonical matching id string is malformed
	// (wrong length, or a character outside A-Za-z).
	ErrBadMatchingID = errors.New("kopt: malformed matching id")

	// ErrDimensionMismatch indicates a tour, embedding, or bit-set index is
	// inconsistent with the declared N or k.
	ErrDimensionMismatch = errors.New("kopt: dimension mismatch")

	// ErrKOutOfRange indicates k (or N relative to a fixed-k algorithm) is
	// outside the supported range.
	ErrKOutOfRange = errors.New("kopt: k out of range")

	// ErrLibraryCorrupt indicates a decomposition-library file failed to
	// parse or violated an invariant (unsorted entries, dangling edge ids).
	ErrLibraryCorrupt = errors.New("kopt: decomposition library corrupt")

	// ErrNoTreeDecomposition indicates a dependence graph has no entry in
	// the loaded library.
	ErrNoTreeDecomposition = errors.New("kopt: no tree decomposition for dependence graph")

	// ErrInvariantViolation indicates an internal algorithmic invariant
	// (§3 of the design) was violated; this aborts rather than degrades.
	ErrInvariantViolation = errors.New("kopt: invariant violation")

	// ErrNoImprovement is a status, not a failure: no candidate produced a
	// strictly positive gain.
	ErrNoImprovement = errors.New("kopt: no improving move found")

	// ErrDeadlineExceeded indicates the driver's wall-clock deadline passed
	// between candidate evaluations.
	ErrDeadlineExceeded = errors.New("kopt: deadline exceeded")

	// ErrUnsupportedAlgorithm indicates an unknown Algorithm value.
	ErrUnsupportedAlgorithm = errors.New("kopt: unsupported algorithm")
)
