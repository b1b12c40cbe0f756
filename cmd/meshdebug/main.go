// Command meshdebug builds the capacity mesh for a SimpleRouteJson fixture
// and prints a summary table, optionally rendering a PNG.
package main

import (
	"flag"
	"fmt"
	"os"

	"pcb-tracer/internal/config"
	"pcb-tracer/internal/mesh"
	"pcb-tracer/internal/routeio"
	"pcb-tracer/internal/visualize"
)

func main() {
	fixturePath := flag.String("fixture", "", "Path to a SimpleRouteJson fixture")
	configPath := flag.String("config", "", "Optional TOML file of tunable pipeline constants")
	maxDepth := flag.Int("max-depth", 0, "Maximum quad-tree subdivision depth (0 selects the config/default)")
	outPNG := flag.String("out", "", "Optional path to write a rendered PNG")
	width := flag.Int("width", 800, "PNG width in pixels")
	height := flag.Int("height", 800, "PNG height in pixels")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Println("Usage: meshdebug -fixture <path> [-config tunables.toml] [-max-depth 8] [-out mesh.png]")
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

	doc, err := routeio.Load(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load fixture: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded fixture: bounds %+v, %d obstacles, %d connections\n",
		doc.Bounds, len(doc.Obstacles), len(doc.Connections))

	b := mesh.NewBuilder(doc, tunables.MaxDepth)
	steps := 0
	for !b.Done() {
		b.Step()
		steps++
	}
	cells := b.Finished()

	fmt.Printf("\nBuilt mesh in %d steps: %d cells\n", steps, len(cells))
	fmt.Printf("%-14s %10s %10s %10s %8s %6s %6s\n",
		"ID", "CenterX", "CenterY", "Width", "Height", "Z", "Target")
	for _, c := range cells {
		target := ""
		if c.ContainsTarget {
			target = c.TargetConnectionName
		}
		fmt.Printf("%-14s %10.2f %10.2f %10.2f %8.2f %6v %6s\n",
			c.ID, c.Center.X, c.Center.Y, c.Width, c.Height, c.AvailableZ, target)
	}

	adj := mesh.BuildAdjacency(cells)
	fmt.Printf("\n%d adjacency segments\n", len(adj.Segments))

	if *outPNG != "" {
		g := mesh.Visualize(cells)
		if err := visualize.Render(g, doc.Bounds.Rect(), *width, *height, *outPNG); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render PNG: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nWrote %s\n", *outPNG)
	}
}
