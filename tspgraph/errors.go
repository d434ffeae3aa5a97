package tspgraph

import "errors"

// Sentinel errors for the tspgraph package.
var (
	// ErrTooFewPoints indicates fewer than one point was supplied to New.
	ErrTooFewPoints = errors.New("tspgraph: need at least one point")

	// ErrIndexOutOfRange indicates a node/position index fell outside [0,N).
	ErrIndexOutOfRange = errors.New("tspgraph: index out of range")

	// ErrBadPermutation indicates a permutation argument was not a bijection
	// on [0,N).
	ErrBadPermutation = errors.New("tspgraph: not a valid permutation")

	// ErrMalformedTSPLIB indicates a TSPLIB file failed to parse in a way
	// not covered by the more specific sentinels below (e.g. a
	// NODE_COORD_SECTION present but left empty).
	ErrMalformedTSPLIB = errors.New("tspgraph: malformed TSPLIB file")

	// ErrMalformedHeader indicates a coordinate line inside
	// NODE_COORD_SECTION had too few fields or an unparsable x/y value.
	ErrMalformedHeader = errors.New("tspgraph: malformed TSPLIB coordinate line")

	// ErrNoCoordSection indicates the input never contained a
	// NODE_COORD_SECTION marker.
	ErrNoCoordSection = errors.New("tspgraph: no NODE_COORD_SECTION found")

	// ErrDuplicateNodeID indicates NODE_COORD_SECTION listed the same node
	// id more than once.
	ErrDuplicateNodeID = errors.New("tspgraph: duplicate node id in NODE_COORD_SECTION")

	// ErrUnsupportedEdgeWeightType indicates the TSPLIB file declares an
	// EDGE_WEIGHT_TYPE other than EUC_2D.
	ErrUnsupportedEdgeWeightType = errors.New("tspgraph: unsupported EDGE_WEIGHT_TYPE")
)
