// Command unraveldebug runs the full pipeline up through the Unravel
// Solver for one section of a SimpleRouteJson fixture and prints a summary,
// optionally rendering a PNG of the best candidate found.
package main

import (
	"flag"
	"fmt"
	"os"

	"pcb-tracer/internal/config"
	"pcb-tracer/internal/pipeline"
	"pcb-tracer/internal/routeio"
	"pcb-tracer/internal/unravel"
	"pcb-tracer/internal/visualize"
)

func main() {
	fixturePath := flag.String("fixture", "", "Path to a SimpleRouteJson fixture")
	configPath := flag.String("config", "", "Optional TOML file of tunable pipeline constants")
	maxDepth := flag.Int("max-depth", 0, "Maximum quad-tree subdivision depth (0 selects the config/default)")
	mutableHops := flag.Int("mutable-hops", 0, "Section Builder MUTABLE_HOPS (0 selects the config/default)")
	maxIterations := flag.Int("max-iterations", 0, "Unravel Solver MAX_ITERATIONS (0 selects the config/default)")
	section := flag.Int("section", 0, "Index of the section to report in detail")
	outPNG := flag.String("out", "", "Optional path to write a rendered PNG of that section's best candidate")
	width := flag.Int("width", 800, "PNG width in pixels")
	height := flag.Int("height", 800, "PNG height in pixels")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Println("Usage: unraveldebug -fixture <path> [-config tunables.toml] [-section 0] [-out section.png]")
		os.Exit(1)
	}

	tunables := config.Defaults()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
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

	doc, err := routeio.Load(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load fixture: %v\n", err)
		os.Exit(1)
	}

	res, err := pipeline.Run(doc, pipeline.Options{
		MaxDepth:      tunables.MaxDepth,
		MutableHops:   tunables.MutableHops,
		MaxIterations: tunables.MaxIterations,
		Cost:          tunables.Cost,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Pipeline run failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Run %s: %d cells, %d sections\n", res.RunID, len(res.Cells), len(res.Sections))
	fmt.Printf("%-6s %-14s %10s %8s %8s %10s %10s\n",
		"Idx", "Root", "Nodes", "Mutable", "Iters", "OrigG", "BestG")
	for i, sr := range res.Sections {
		fmt.Printf("%-6d %-14s %10d %8d %8d %10.4f %10.4f\n",
			i, sr.RootNodeID, len(sr.Section.AllNodeIDs), len(sr.Section.MutableNodeIDs),
			sr.Solver.Iterations(), sr.Solver.OriginalCandidate().G, sr.Solver.BestCandidate().G)
	}

	if *section < 0 || *section >= len(res.Sections) {
		return
	}
	sr := res.Sections[*section]
	best := sr.Solver.BestCandidate()
	fmt.Printf("\nSection %d best candidate: g=%.4f, %d operations, %d remaining issues\n",
		*section, best.G, best.OperationsPerformed, len(best.Issues))

	if *outPNG != "" {
		colors := visualize.NewColorMap()
		g := unravel.Visualize(sr.Section, best, colors)
		if err := visualize.Render(g, doc.Bounds.Rect(), *width, *height, *outPNG); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render PNG: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *outPNG)
	}
}
