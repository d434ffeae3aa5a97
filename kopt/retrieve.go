package kopt

// RetrieveSolution reconstructs the full cycle permutation realizing a
// matching and its embedding (§4, "applying a k-move"): it walks the
// matching's 2k signature nodes, alternating a single jump across a new
// (embedded) edge with a run of unchanged old cycle edges, until it
// returns to the starting node.
//
// Grounded on original_source/src/retrieve_solution.h/.cpp, ported
// line-for-line.
func RetrieveSolution(graphSize int, m *Matching, emb Embedding) []CycleNode {
	result := make([]CycleNode, 0, graphSize)
	modPos := SigNode(0)
	for {
		result = append(result, EmbedNode(emb, modPos))
		modPos = m.At(modPos)

		step := 1
		if modPos.IsLeft() {
			step = -1
		}
		cyclePos := EmbedNode(emb, modPos).Step(0, graphSize)
		modPos = modPos.Step(step, m.Domain().Size())
		cycleTarget := EmbedNode(emb, modPos)
		for cyclePos != cycleTarget {
			result = append(result, cyclePos)
			cyclePos = cyclePos.Step(step, graphSize)
		}

		if modPos == SigNode(0) {
			break
		}
	}
	return result
}

// CanonicalRotation returns the unique rotation/direction of cycle that
// starts at node 0 and proceeds toward node 0's lower-id neighbor, visiting
// it right after 0 (§9 "canonical tour output"): two cycles equal up
// to rotation and reflection produce identical output from this function,
// resolving spec.md's Open Question on tour-equality by definition.
//
// Grounded on original_source/src/retrieve_solution.cpp's print_canonical.
func CanonicalRotation(cycle []int) []int {
	n := len(cycle)
	if n == 0 {
		return nil
	}
	get := func(idx int) int {
		switch {
		case idx < 0:
			return cycle[idx+n]
		case idx >= n:
			return cycle[idx-n]
		default:
			return cycle[idx]
		}
	}
	at := 0
	for get(at) != 0 {
		at++
	}
	step := 1
	if get(at+1) >= get(at-1) {
		step = -1
	}
	out := make([]int, n)
	for i := 0; i < n; i, at = i+1, at+step {
		out[i] = get(at)
	}
	return out
}
