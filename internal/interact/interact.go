// Package interact turns pointer positions into hover hits on a point field.
package interact

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"dotsphere/internal/field"
	"dotsphere/internal/quarkgl"
)

// ErrInvalidConfig is wrapped by every construction error.
var ErrInvalidConfig = errors.New("interact: invalid config")

// Config controls the hover response.
type Config struct {
	// EnlargeScale is the scale a hit point jumps to.
	EnlargeScale float64
	// EnlargedAt is the scale at or above which a point counts as already
	// enlarged and ignores further hits.
	EnlargedAt float64
	// The hold time is HoldMin plus a uniform random share of HoldSpan.
	HoldMin  time.Duration
	HoldSpan time.Duration
}

func DefaultConfig() Config {
	return Config{
		EnlargeScale: 2.5,
		EnlargedAt:   2.0,
		HoldMin:      2 * time.Second,
		HoldSpan:     time.Second,
	}
}

func (c Config) validate() error {
	switch {
	case !(c.EnlargedAt > 1):
		return fmt.Errorf("%w: enlarged-at %g must exceed 1", ErrInvalidConfig, c.EnlargedAt)
	case c.EnlargeScale < c.EnlargedAt:
		return fmt.Errorf("%w: enlarge scale %g below enlarged-at %g", ErrInvalidConfig, c.EnlargeScale, c.EnlargedAt)
	case c.HoldMin < 0 || c.HoldSpan < 0:
		return fmt.Errorf("%w: negative hold %v+%v", ErrInvalidConfig, c.HoldMin, c.HoldSpan)
	}
	return nil
}

// NDC is a pointer position in normalized device coordinates, both axes in [-1, 1]
// with +Y up.
type NDC struct {
	X, Y float64
}

// Hit is one point under the pointer ray.
type Hit struct {
	Index    int
	Distance float64
	// Triggered is set when this hit moved the point into the enlarged state.
	Triggered bool
}

// Controller holds the pointer state and applies hover hits.
//
// UpdatePointer may be called from an input goroutine while the frame loop
// calls ResolveHits; the pointer is a single atomically swapped value.
type Controller struct {
	cfg     Config
	rng     *rand.Rand
	pointer atomic.Pointer[NDC]
	hits    []Hit
}

func New(cfg Config, rng *rand.Rand) (*Controller, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	return &Controller{cfg: cfg, rng: rng}, nil
}

func (c *Controller) Config() Config { return c.cfg }

// UpdatePointer stores a screen position (pixels, origin top-left) in a viewport
// of the given size. Pixel w maps to NDC +1, matching quarkgl.Camera.Project.
// A degenerate viewport is ignored.
func (c *Controller) UpdatePointer(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	c.pointer.Store(&NDC{
		X: x/w*2 - 1,
		Y: 1 - y/h*2,
	})
}

// ClearPointer forgets the pointer (it left the viewport).
func (c *Controller) ClearPointer() { c.pointer.Store(nil) }

// Pointer returns the last stored position; ok is false before the first update.
func (c *Controller) Pointer() (NDC, bool) {
	p := c.pointer.Load()
	if p == nil {
		return NDC{}, false
	}
	return *p, true
}

// Ray is the pick ray through the current pointer. ok is false when no
// pointer has been set or the camera is degenerate.
func (c *Controller) Ray(cam quarkgl.Camera, aspect float64) (origin, dir mgl64.Vec3, ok bool) {
	ndc, set := c.Pointer()
	if !set {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	return cam.Ray(ndc.X, ndc.Y, aspect)
}

// ResolveHits casts the pointer ray through f and enlarges every intersected
// point that is not already enlarged. Hits are returned nearest first; the
// slice is reused by the next call.
func (c *Controller) ResolveHits(f *field.Field, cam quarkgl.Camera, aspect float64, now time.Duration) []Hit {
	c.hits = c.hits[:0]
	origin, dir, ok := c.Ray(cam, aspect)
	if !ok {
		return c.hits
	}

	for i := 0; i < f.Len(); i++ {
		p := f.Point(i)
		if t, ok := IntersectSphere(origin, dir, p.Position, p.Radius()); ok {
			c.hits = append(c.hits, Hit{Index: i, Distance: t})
		}
	}
	slices.SortStableFunc(c.hits, func(a, b Hit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})

	for k := range c.hits {
		h := &c.hits[k]
		if f.Point(h.Index).Scale >= c.cfg.EnlargedAt {
			continue
		}
		f.Enlarge(h.Index, c.cfg.EnlargeScale, now+c.holdTime())
		h.Triggered = true
	}
	return c.hits
}

func (c *Controller) holdTime() time.Duration {
	return c.cfg.HoldMin + time.Duration(c.rng.Float64()*float64(c.cfg.HoldSpan))
}
