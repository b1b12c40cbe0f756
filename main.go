// Command pcb-tracer runs the routing core end to end over a
// SimpleRouteJson fixture: Mesh Builder, stub cell router, Section Builder,
// and Unravel Solver, then reports each section's cost improvement.
package main

import (
	"flag"
	"log"
	"os"

	"pcb-tracer/internal/config"
	"pcb-tracer/internal/pipeline"
	"pcb-tracer/internal/routeio"
	"pcb-tracer/internal/version"
)

const appTitle = "PCB Tracer"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s (%s)", appTitle, version.Version, version.GitCommit)

	inputPath := flag.String("input", "", "Path to a SimpleRouteJson file")
	configPath := flag.String("config", "", "Optional TOML file of tunable pipeline constants")
	maxDepth := flag.Int("max-depth", 0, "Maximum quad-tree subdivision depth (0 selects the config/default)")
	mutableHops := flag.Int("mutable-hops", 0, "Section Builder MUTABLE_HOPS (0 selects the config/default)")
	maxIterations := flag.Int("max-iterations", 0, "Unravel Solver MAX_ITERATIONS (0 selects the config/default)")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("usage: pcb-tracer -input <SimpleRouteJson path> [-config tunables.toml] [-max-depth N] [-mutable-hops N] [-max-iterations N]")
	}

	tunables := config.Defaults()
	if *configPath != "" {
		if _, statErr := os.Stat(*configPath); statErr != nil {
			log.Fatalf("failed to read config %s: %v", *configPath, statErr)
		}
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config %s: %v", *configPath, err)
		}
		tunables = loaded
	}
	if *maxDepth != 0 {
		tunables.MaxDepth = *maxDepth
	}
	if *mutableHops != 0 {
		tunables.MutableHops = *mutableHops
	}
	if *maxIterations != 0 {
		tunables.MaxIterations = *maxIterations
	}

	doc, err := routeio.Load(*inputPath)
	if err != nil {
		log.Fatalf("failed to load %s: %v", *inputPath, err)
	}

	res, err := pipeline.Run(doc, pipeline.Options{
		MaxDepth:      tunables.MaxDepth,
		MutableHops:   tunables.MutableHops,
		MaxIterations: tunables.MaxIterations,
		Cost:          tunables.Cost,
	})
	if err != nil {
		log.Fatalf("pipeline run failed: %v", err)
	}

	log.Printf("run %s: %d cells, %d sections", res.RunID, len(res.Cells), len(res.Sections))
	for i, sr := range res.Sections {
		orig := sr.Solver.OriginalCandidate().G
		best := sr.Solver.BestCandidate().G
		log.Printf("section %d (root %s): %d nodes, %d iterations, g %.4f -> %.4f",
			i, sr.RootNodeID, len(sr.Section.AllNodeIDs), sr.Solver.Iterations(), orig, best)
	}
}
