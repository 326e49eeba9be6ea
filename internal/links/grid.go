package links

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

type cellKey [3]int32

// grid is a uniform spatial hash rebuilt on every recompute. Its buffers are
// kept between recomputes.
type grid struct {
	cells   map[cellKey]int
	buckets [][]int
	keys    []cellKey
	cand    []int
}

func (g *grid) reset(n int) {
	if g.cells == nil {
		g.cells = make(map[cellKey]int)
	}
	clear(g.cells)
	for i := range g.buckets {
		g.buckets[i] = g.buckets[i][:0]
	}
	g.buckets = g.buckets[:0]
	if cap(g.keys) < n {
		g.keys = make([]cellKey, n)
	}
	g.keys = g.keys[:n]
}

func cellOf(p mgl64.Vec3, size float64) cellKey {
	return cellKey{
		int32(math.Floor(p[0] / size)),
		int32(math.Floor(p[1] / size)),
		int32(math.Floor(p[2] / size)),
	}
}

// pairs emits the same pairs in the same order as brute.
func (g *grid) pairs(src Positions, threshold float64, out *LinkSet) {
	n := src.Len()
	g.reset(n)

	for i := 0; i < n; i++ {
		k := cellOf(src.Position(i), threshold)
		g.keys[i] = k
		b, ok := g.cells[k]
		if !ok {
			b = len(g.buckets)
			g.cells[k] = b
			if b < cap(g.buckets) {
				g.buckets = g.buckets[:b+1]
			} else {
				g.buckets = append(g.buckets, nil)
			}
		}
		g.buckets[b] = append(g.buckets[b], i)
	}

	limit := threshold * threshold
	for i := 0; i < n; i++ {
		a := src.Position(i)
		k := g.keys[i]
		g.cand = g.cand[:0]
		for dx := int32(-1); dx <= 1; dx++ {
			for dy := int32(-1); dy <= 1; dy++ {
				for dz := int32(-1); dz <= 1; dz++ {
					b, ok := g.cells[cellKey{k[0] + dx, k[1] + dy, k[2] + dz}]
					if !ok {
						continue
					}
					for _, j := range g.buckets[b] {
						if j > i && distSq(a, src.Position(j)) < limit {
							g.cand = append(g.cand, j)
						}
					}
				}
			}
		}
		slices.Sort(g.cand)
		for _, j := range g.cand {
			out.add(i, j, a, src.Position(j))
		}
	}
}
