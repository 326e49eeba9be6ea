package quarkgl

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Sprite is a world-space disc that always faces the camera.
type Sprite struct {
	Pos    mgl64.Vec3
	Radius float64
	Color  Color
}

// Frame is everything drawn in one Render call.
type Frame struct {
	Camera  Camera
	Sprites []Sprite
	// Segments holds six scalars per line: both endpoints' x,y,z.
	Segments []float64
}

// Renderer draws frames into a Target.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	ClearColor Color
	LinkColor  Color
	// LinkOpacity blends LinkColor over ClearColor; 1 draws LinkColor as is.
	LinkOpacity float64

	drawn []projectedSprite
}

type projectedSprite struct {
	x, y, r, depth float64
	c              Color
}

func NewRenderer() *Renderer {
	return &Renderer{
		ClearColor:  RGB(0x05, 0x08, 0x12),
		LinkColor:   RGB(0xFF, 0xFF, 0xFF),
		LinkOpacity: 0.2,
	}
}

// Render clears t and draws f.
func (r *Renderer) Render(t Target, f Frame) {
	if r == nil || t == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(r.ClearColor)

	p := newProjector(f.Camera, w, h)

	link := r.ClearColor.Blend(r.LinkColor, r.LinkOpacity)
	for i := 0; i+5 < len(f.Segments); i += 6 {
		s := f.Segments[i : i+6]
		x0, y0, _, ok0 := p.project(mgl64.Vec3{s[0], s[1], s[2]})
		x1, y1, _, ok1 := p.project(mgl64.Vec3{s[3], s[4], s[5]})
		if !ok0 || !ok1 {
			continue
		}
		drawLine(t, w, h, round(x0), round(y0), round(x1), round(y1), link)
	}

	r.drawn = r.drawn[:0]
	for _, s := range f.Sprites {
		x, y, depth, ok := p.project(s.Pos)
		if !ok {
			continue
		}
		r.drawn = append(r.drawn, projectedSprite{
			x: x, y: y, depth: depth,
			r: p.pixelRadius(s.Radius, depth),
			c: s.Color,
		})
	}
	slices.SortFunc(r.drawn, func(a, b projectedSprite) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})
	for _, s := range r.drawn {
		fillDisc(t, w, h, s.x, s.y, s.r, s.c)
	}
}

func round(v float64) int { return int(math.Floor(v + 0.5)) }

func drawLine(t Target, w, h, x0, y0, x1, y1 int, c Color) {
	if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) || (x0 >= w && x1 >= w) || (y0 >= h && y1 >= h) {
		return
	}
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// fillDisc fills a disc; anything smaller than a pixel still gets one pixel.
func fillDisc(t Target, w, h int, cx, cy, r float64, c Color) {
	if r < 0.5 {
		t.SetPixel(round(cx), round(cy), c)
		return
	}
	minY := max(int(math.Floor(cy-r)), 0)
	maxY := min(int(math.Ceil(cy+r)), h-1)
	for y := minY; y <= maxY; y++ {
		dy := float64(y) - cy
		span := r*r - dy*dy
		if span < 0 {
			continue
		}
		half := math.Sqrt(span)
		x0 := max(round(cx-half), 0)
		x1 := min(round(cx+half), w-1)
		for x := x0; x <= x1; x++ {
			t.SetPixel(x, y, c)
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
