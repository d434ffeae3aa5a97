// Command kopt runs the k-opt local-search heuristic over a TSPLIB
// instance (spec.md §6).
//
// Grounded on original_source/src/main.cpp's gflags-based main(), flag
// validation, and single-pass/iterate dispatch; re-expressed with the
// standard library's flag package plus fortio.org/log for output (no pack
// example wires a third-party flag library against a CLI surface this
// flat — see DESIGN.md).
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"fortio.org/log"

	"github.com/katalvlaran/kopt/kopt"
	"github.com/katalvlaran/kopt/tspgraph"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("kopt", flag.ContinueOnError)
	seed := fs.Int64("seed", 0, "PRNG seed")
	input := fs.String("input", "", "graph file (stdin if empty)")
	library := fs.String("library", "", "directory containing decomposition files named 2..7")
	algorithm := fs.String("algorithm", "clever", "clever|deberg|naive|hardcoded|combined|experimental")
	initialCycle := fs.String("initial_cycle", "identity", "identity|shuffle|walk")
	k := fs.Int("k", 0, "fixed k for single-pass search (0 means use min_k/max_k)")
	minK := fs.Int("min_k", 2, "minimum k scanned per pass")
	maxK := fs.Int("max_k", 7, "maximum k scanned per pass")
	iterate := fs.Bool("iterate", false, "run iterated global search")
	deadline := fs.Float64("deadline", 0, "total wall-clock budget in seconds (0 means unlimited unless --deadline_step is set)")
	deadlineStep := fs.Float64("deadline_step", 0, "seconds the deadline is kept ahead of each improving move (0 means no extension)")
	shuffleSignatures := fs.Bool("shuffle_signatures", false, "randomize equal-cost candidate order")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg := kopt.DefaultConfig()
	cfg.Seed = *seed
	cfg.K = *k
	cfg.MinK = *minK
	cfg.MaxK = *maxK
	cfg.Iterate = *iterate
	cfg.Deadline = time.Duration(*deadline * float64(time.Second))
	cfg.DeadlineStep = time.Duration(*deadlineStep * float64(time.Second))
	cfg.ShuffleSignatures = *shuffleSignatures

	algo, err := parseAlgorithm(*algorithm)
	if err != nil {
		log.Errf("%v", err)
		return 1
	}
	cfg.Algo = algo

	ic, err := parseInitialCycle(*initialCycle)
	if err != nil {
		log.Errf("%v", err)
		return 1
	}
	cfg.InitialCycle = ic

	if cfg.K != 0 {
		cfg.MinK, cfg.MaxK = cfg.K, cfg.K
	}
	if cfg.MinK < 2 || cfg.MaxK > 7 || cfg.MinK > cfg.MaxK {
		log.Errf("kopt: k range [%d,%d] out of supported bounds [2,7]", cfg.MinK, cfg.MaxK)
		return 1
	}
	if *algorithm == "hardcoded" && (cfg.MinK < 2 || cfg.MaxK > 3) {
		log.Errf("kopt: no hardcoded algorithm for k outside {2,3}")
		return 1
	}

	in := os.Stdin
	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			log.Errf("kopt: reading input: %v", err)
			return 1
		}
		defer f.Close()
		in = f
	}
	g, err := tspgraph.ReadGraph(in)
	if err != nil {
		log.Errf("kopt: parsing graph: %v", err)
		return 1
	}

	var lib *kopt.DecompositionLibrary
	if algo == kopt.Clever || algo == kopt.Combined {
		lib, err = loadLibrary(*library, cfg.MinK, cfg.MaxK)
		if err != nil {
			log.Errf("kopt: loading decomposition library: %v", err)
			return 1
		}
	}

	if algo == kopt.Experimental {
		if cfg.MinK != 3 || cfg.MaxK != 3 {
			log.Errf("kopt: --algorithm experimental only supports k=3")
			return 1
		}
		cycle, err := kopt.Experimental3opt(g)
		if err != nil {
			log.Errf("kopt: %v", err)
			return 1
		}
		return writeResult(g, cycle)
	}

	tour, err := kopt.RunLocalSearch(g, lib, cfg)
	if err != nil {
		log.Errf("kopt: %v", err)
		return 1
	}
	canon := kopt.CanonicalRotation(tour)
	if err := tspgraph.WriteTours(os.Stdout, [][]int{canon}, "", g.N()); err != nil {
		log.Errf("kopt: writing tour: %v", err)
		return 1
	}
	return 0
}

func writeResult(g *tspgraph.Graph, cycle []kopt.CycleNode) int {
	tour := make([]int, len(cycle))
	for i, cn := range cycle {
		tour[i] = int(cn)
	}
	canon := kopt.CanonicalRotation(tour)
	if err := tspgraph.WriteTours(os.Stdout, [][]int{canon}, "", g.N()); err != nil {
		log.Errf("kopt: writing tour: %v", err)
		return 1
	}
	return 0
}

func parseAlgorithm(s string) (kopt.Algorithm, error) {
	switch s {
	case "clever":
		return kopt.Clever, nil
	case "deberg":
		return kopt.DeBerg, nil
	case "naive", "hardcoded":
		return kopt.Naive, nil
	case "combined":
		return kopt.Combined, nil
	case "experimental":
		return kopt.Experimental, nil
	default:
		return 0, fmt.Errorf("kopt: unknown --algorithm %q", s)
	}
}

func parseInitialCycle(s string) (kopt.InitialCycle, error) {
	switch s {
	case "identity":
		return kopt.IdentityCycleOrder, nil
	case "shuffle":
		return kopt.ShuffleCycle, nil
	case "walk":
		return kopt.WalkCycle, nil
	default:
		return 0, fmt.Errorf("kopt: unknown --initial_cycle %q", s)
	}
}

// loadLibrary reads one decomposition file per k in [minK,maxK] from dir
// (named "2", "3", ..., "7") and merges them into a single library.
func loadLibrary(dir string, minK, maxK int) (*kopt.DecompositionLibrary, error) {
	if dir == "" {
		return nil, fmt.Errorf("kopt: --library is required for the clever/combined algorithms")
	}
	var libs []*kopt.DecompositionLibrary
	for k := minK; k <= maxK; k++ {
		if k < 4 {
			continue // k in {2,3} always use the hardcoded brute-force path
		}
		path := filepath.Join(dir, strconv.Itoa(k))
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		lib, err := kopt.ReadDecompositionLibrary(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("kopt: parsing %s: %w", path, err)
		}
		libs = append(libs, lib)
	}
	return kopt.MergeDecompositionLibraries(libs...), nil
}
