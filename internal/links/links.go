// Package links derives the proximity line set between points of a field.
//
// A LinkSet is rebuilt from scratch on every Recompute: there is no incremental
// add/remove and no identity across recomputes.
package links

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidConfig is wrapped by every construction error.
var ErrInvalidConfig = errors.New("links: invalid config")

// Positions is the read side of a point set.
type Positions interface {
	Len() int
	Position(i int) mgl64.Vec3
}

// IndexKind selects how candidate pairs are enumerated.
type IndexKind uint8

const (
	// IndexBrute checks every unordered pair.
	IndexBrute IndexKind = iota
	// IndexGrid buckets points into cells of edge Threshold and only checks
	// neighbouring cells.
	IndexGrid
)

func (k IndexKind) String() string {
	switch k {
	case IndexBrute:
		return "brute"
	case IndexGrid:
		return "grid"
	default:
		return "unknown"
	}
}

// ParseIndexKind maps "brute" or "grid" to an IndexKind.
func ParseIndexKind(s string) (IndexKind, error) {
	switch s {
	case "brute", "":
		return IndexBrute, nil
	case "grid":
		return IndexGrid, nil
	default:
		return 0, fmt.Errorf("%w: unknown index %q", ErrInvalidConfig, s)
	}
}

// Config controls link generation.
type Config struct {
	// Threshold is the exclusive distance below which two points are linked.
	Threshold float64
	// Every recomputes links once per Every frames; 1 means every frame.
	Every int
	Index IndexKind
}

func DefaultConfig() Config {
	return Config{Threshold: 15, Every: 1, Index: IndexBrute}
}

// Pair is a linked pair of point indices with I < J.
type Pair struct {
	I, J int
}

// LinkSet is the output of one recompute.
type LinkSet struct {
	Pairs []Pair
	// Segments holds six scalars per pair: x,y,z of I then x,y,z of J.
	Segments []float64
}

// Len is the number of linked pairs.
func (s LinkSet) Len() int { return len(s.Pairs) }

// Graph recomputes link sets. Storage alternates between two buffers so the
// previously returned LinkSet stays intact while the next one is built.
type Graph struct {
	cfg  Config
	bufs [2]LinkSet
	cur  int
	grid grid
}

// New validates cfg and returns a Graph.
func New(cfg Config) (*Graph, error) {
	if !(cfg.Threshold > 0) {
		return nil, fmt.Errorf("%w: threshold must be positive (got %g)", ErrInvalidConfig, cfg.Threshold)
	}
	if cfg.Every <= 0 {
		return nil, fmt.Errorf("%w: every must be positive (got %d)", ErrInvalidConfig, cfg.Every)
	}
	if cfg.Index != IndexBrute && cfg.Index != IndexGrid {
		return nil, fmt.Errorf("%w: unknown index %d", ErrInvalidConfig, cfg.Index)
	}
	return &Graph{cfg: cfg}, nil
}

func (g *Graph) Config() Config { return g.cfg }

// Due reports whether links should be recomputed on the given frame number.
func (g *Graph) Due(frame uint64) bool {
	return frame%uint64(g.cfg.Every) == 0
}

// Recompute returns every pair i<j whose distance is strictly below the
// threshold, ordered by i then j. The result is valid until the second
// following call.
func (g *Graph) Recompute(src Positions) LinkSet {
	g.cur ^= 1
	out := &g.bufs[g.cur]
	out.Pairs = out.Pairs[:0]
	out.Segments = out.Segments[:0]

	switch g.cfg.Index {
	case IndexGrid:
		g.grid.pairs(src, g.cfg.Threshold, out)
	default:
		brute(src, g.cfg.Threshold, out)
	}
	return *out
}

func brute(src Positions, threshold float64, out *LinkSet) {
	n := src.Len()
	limit := threshold * threshold
	for i := 0; i < n; i++ {
		a := src.Position(i)
		for j := i + 1; j < n; j++ {
			b := src.Position(j)
			if distSq(a, b) < limit {
				out.add(i, j, a, b)
			}
		}
	}
}

func (s *LinkSet) add(i, j int, a, b mgl64.Vec3) {
	s.Pairs = append(s.Pairs, Pair{I: i, J: j})
	s.Segments = append(s.Segments, a[0], a[1], a[2], b[0], b[1], b[2])
}

func distSq(a, b mgl64.Vec3) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}
