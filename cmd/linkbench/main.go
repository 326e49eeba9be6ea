// Command linkbench times the brute-force and grid link indexes on a random
// field and checks that they agree.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"time"

	"dotsphere/internal/field"
	"dotsphere/internal/links"

	"github.com/dustin/go-humanize"
)

func main() {
	var (
		count     = flag.Int("count", 1000, "Number of points.")
		radius    = flag.Float64("radius", 50, "Container radius.")
		threshold = flag.Float64("distance", 15, "Link distance.")
		frames    = flag.Int("frames", 200, "Frames to advance and relink.")
		seed      = flag.Uint64("seed", 1, "Random seed.")
	)
	flag.Parse()

	if *frames <= 0 {
		fatalf("frames must be positive (got %d)", *frames)
	}

	fc := field.DefaultConfig()
	fc.Count = *count
	fc.ContainerRadius = *radius
	f, err := field.New(fc, rand.New(rand.NewPCG(*seed, *seed+1)))
	if err != nil {
		fatalf("field: %v", err)
	}

	brute, err := links.New(links.Config{Threshold: *threshold, Every: 1, Index: links.IndexBrute})
	if err != nil {
		fatalf("links: %v", err)
	}
	grid, err := links.New(links.Config{Threshold: *threshold, Every: 1, Index: links.IndexGrid})
	if err != nil {
		fatalf("links: %v", err)
	}

	var bruteTime, gridTime time.Duration
	var total int
	for i := 0; i < *frames; i++ {
		f.Advance()

		t0 := time.Now()
		a := brute.Recompute(f)
		t1 := time.Now()
		b := grid.Recompute(f)
		t2 := time.Now()
		bruteTime += t1.Sub(t0)
		gridTime += t2.Sub(t1)

		if !slices.Equal(a.Pairs, b.Pairs) {
			fatalf("frame %d: brute found %d links, grid %d", i, a.Len(), b.Len())
		}
		total += a.Len()
	}

	n := time.Duration(*frames)
	fmt.Printf("%s points, %s frames, %s links/frame avg\n",
		humanize.Comma(int64(*count)), humanize.Comma(int64(*frames)), humanize.Comma(int64(total / *frames)))
	fmt.Printf("brute: %v/frame\n", bruteTime/n)
	fmt.Printf("grid:  %v/frame\n", gridTime/n)
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
