package tspgraph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadGraph parses a TSPLIB file from r: a NODE_COORD_SECTION of "id x y"
// lines (1-based ids, EUC_2D distances), terminated by EOF or end of
// input. Lines outside the section (NAME, TYPE, DIMENSION, ...) are
// skipped. Returns ErrNoCoordSection if no NODE_COORD_SECTION marker is
// ever seen, ErrMalformedHeader for a coordinate line with too few fields
// or an unparsable value, ErrDuplicateNodeID if a node id repeats, and
// ErrUnsupportedEdgeWeightType for a non-EUC_2D declaration.
//
// Grounded on original_source/src/graph.cpp's operator>>.
func ReadGraph(r io.Reader) (*Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var points []Point
	seenIDs := make(map[int]bool)
	sawSection := false
	inSection := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "NODE_COORD_SECTION":
			inSection = true
			sawSection = true
		case line == "EOF":
			inSection = false
		case inSection && line != "":
			fields := strings.Fields(line)
			if len(fields) < 3 {
				return nil, ErrMalformedHeader
			}
			id, errID := strconv.Atoi(fields[0])
			x, errX := strconv.ParseFloat(fields[1], 64)
			y, errY := strconv.ParseFloat(fields[2], 64)
			if errID != nil || errX != nil || errY != nil {
				return nil, ErrMalformedHeader
			}
			if seenIDs[id] {
				return nil, ErrDuplicateNodeID
			}
			seenIDs[id] = true
			points = append(points, Point{X: x, Y: y})
		case strings.HasPrefix(line, "EDGE_WEIGHT_TYPE"):
			if idx := strings.Index(line, ":"); idx >= 0 {
				typ := strings.TrimSpace(line[idx+1:])
				if typ != "" && typ != "EUC_2D" {
					return nil, ErrUnsupportedEdgeWeightType
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !sawSection {
		return nil, ErrNoCoordSection
	}
	if len(points) == 0 {
		return nil, ErrMalformedTSPLIB
	}
	return New(points)
}

// WriteGraph emits g in TSPLIB format: a NAME line (if name is non-empty),
// TYPE/DIMENSION/EDGE_WEIGHT_TYPE headers, a NODE_COORD_SECTION with
// 1-based ids under the current permutation, and a trailing EOF marker.
//
// Grounded on original_source/src/graph.cpp's WriteGraph.
func WriteGraph(w io.Writer, g *Graph, name string) error {
	bw := bufio.NewWriter(w)
	if name != "" {
		if _, err := fmt.Fprintf(bw, "NAME : %s\n", name); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(bw, "TYPE : TSP\nDIMENSION : %d\nEDGE_WEIGHT_TYPE : EUC_2D\nNODE_COORD_SECTION\n", g.N()); err != nil {
		return err
	}
	for i := 0; i < g.N(); i++ {
		p, err := g.Point(i)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "%d %g %g\n", i+1, p.X, p.Y); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(bw, "EOF\n"); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteTours emits a sequence of tours in TSPLIB TOUR_SECTION format: each
// tour is a line of 1-based node ids terminated by -1. dimension < 0
// omits the DIMENSION header line.
//
// Grounded on original_source/src/graph.cpp's WriteTours.
func WriteTours(w io.Writer, tours [][]int, name string, dimension int) error {
	bw := bufio.NewWriter(w)
	if name != "" {
		if _, err := fmt.Fprintf(bw, "NAME : %s\n", name); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(bw, "TYPE : TOUR\n"); err != nil {
		return err
	}
	if dimension >= 0 {
		if _, err := fmt.Fprintf(bw, "DIMENSION : %d\n", dimension); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(bw, "TOUR_SECTION\n"); err != nil {
		return err
	}
	for _, tour := range tours {
		for _, id := range tour {
			if _, err := fmt.Fprintf(bw, "%d ", id+1); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(bw, "-1\n"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(bw, "EOF\n"); err != nil {
		return err
	}
	return bw.Flush()
}
