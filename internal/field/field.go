// Package field owns the simulated point cloud: a fixed set of points drifting
// inside a containing sphere, each carrying a transient enlarge state.
package field

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidConfig is wrapped by every construction error.
var ErrInvalidConfig = errors.New("field: invalid config")

// Config fixes the shape of a field at construction.
type Config struct {
	Count           int
	ContainerRadius float64
	// Margin is how far inside the wall an escaping point is put back.
	Margin  float64
	Palette []colorful.Color
	// Speed bounds each velocity component to [-Speed, Speed].
	Speed   float64
	SizeMin float64
	SizeMax float64
	// DecayRate is the fraction of the remaining distance to 1.0 removed per DecayScale call.
	DecayRate float64
	// SettleEpsilon is the distance from 1.0 at which a decaying point snaps back to normal.
	SettleEpsilon float64
}

// DefaultConfig returns the stock effect parameters.
func DefaultConfig() Config {
	return Config{
		Count:           1000,
		ContainerRadius: 50,
		Margin:          0.1,
		Palette:         DefaultPalette(),
		Speed:           0.025,
		SizeMin:         0.5,
		SizeMax:         1.5,
		DecayRate:       0.05,
		SettleEpsilon:   1e-3,
	}
}

func (c Config) validate() error {
	switch {
	case c.Count <= 0:
		return fmt.Errorf("%w: count must be positive (got %d)", ErrInvalidConfig, c.Count)
	case !(c.ContainerRadius > 0):
		return fmt.Errorf("%w: container radius must be positive (got %g)", ErrInvalidConfig, c.ContainerRadius)
	case c.Margin < 0 || c.Margin >= c.ContainerRadius:
		return fmt.Errorf("%w: margin %g outside [0, %g)", ErrInvalidConfig, c.Margin, c.ContainerRadius)
	case len(c.Palette) == 0:
		return fmt.Errorf("%w: empty palette", ErrInvalidConfig)
	case c.Speed < 0:
		return fmt.Errorf("%w: negative speed %g", ErrInvalidConfig, c.Speed)
	case c.SizeMin <= 0 || c.SizeMax < c.SizeMin:
		return fmt.Errorf("%w: size range [%g, %g]", ErrInvalidConfig, c.SizeMin, c.SizeMax)
	case !(c.DecayRate > 0 && c.DecayRate <= 1):
		return fmt.Errorf("%w: decay rate %g outside (0, 1]", ErrInvalidConfig, c.DecayRate)
	case c.SettleEpsilon < 0:
		return fmt.Errorf("%w: negative settle epsilon %g", ErrInvalidConfig, c.SettleEpsilon)
	}
	return nil
}

// Point is one member of the field.
type Point struct {
	Position   mgl64.Vec3
	Velocity   mgl64.Vec3
	BaseRadius float64
	ColorIndex int

	Scale         float64
	EnlargedUntil time.Duration
	State         EnlargeState
}

// Radius is the rendered (and hit-tested) radius of the point.
func (p *Point) Radius() float64 { return p.BaseRadius * p.Scale }

// Field is the set of points and the sphere they are confined to.
type Field struct {
	cfg    Config
	points []Point
}

// New samples cfg.Count points uniformly by volume inside the container.
func New(cfg Config, rng *rand.Rand) (*Field, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}

	points := make([]Point, cfg.Count)
	for i := range points {
		points[i] = Point{
			Position: SampleBall(rng, cfg.ContainerRadius),
			Velocity: mgl64.Vec3{
				uniform(rng, -cfg.Speed, cfg.Speed),
				uniform(rng, -cfg.Speed, cfg.Speed),
				uniform(rng, -cfg.Speed, cfg.Speed),
			},
			BaseRadius: uniform(rng, cfg.SizeMin, cfg.SizeMax),
			ColorIndex: rng.IntN(len(cfg.Palette)),
			Scale:      1,
		}
	}
	return &Field{cfg: cfg, points: points}, nil
}

// NewFromPositions builds a motionless field at fixed positions. Count is taken
// from len(positions); every point gets SizeMin as base radius and colour 0.
func NewFromPositions(cfg Config, positions []mgl64.Vec3) (*Field, error) {
	cfg.Count = len(positions)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	points := make([]Point, len(positions))
	for i, p := range positions {
		if p.Len() > cfg.ContainerRadius {
			return nil, fmt.Errorf("%w: position %d %v outside radius %g", ErrInvalidConfig, i, p, cfg.ContainerRadius)
		}
		points[i] = Point{Position: p, BaseRadius: cfg.SizeMin, Scale: 1}
	}
	return &Field{cfg: cfg, points: points}, nil
}

func (f *Field) Config() Config { return f.cfg }

// Len is the number of points; it never changes.
func (f *Field) Len() int { return len(f.points) }

// Position returns the current position of point i.
func (f *Field) Position(i int) mgl64.Vec3 { return f.points[i].Position }

// Point returns a pointer to point i. Callers outside the field should only read it.
func (f *Field) Point(i int) *Point { return &f.points[i] }

// Points exposes the backing slice for read-only iteration.
func (f *Field) Points() []Point { return f.points }

// Advance moves every point by its velocity and reflects points that crossed
// the container wall back inside.
func (f *Field) Advance() {
	limit := f.cfg.ContainerRadius
	inside := limit - f.cfg.Margin
	for i := range f.points {
		p := &f.points[i]
		p.Position = p.Position.Add(p.Velocity)

		d := p.Position.Len()
		if math.IsNaN(d) || math.IsInf(d, 0) {
			panic(fmt.Sprintf("field: point %d has non-finite position %v", i, p.Position))
		}
		if d <= limit {
			continue
		}

		n := p.Position.Mul(1 / d)
		p.Velocity = reflect(p.Velocity, n)
		p.Position = n.Mul(inside)
	}
}

// reflect mirrors v across the plane with unit normal n. A velocity already
// pointing inward is kept so the point is not pushed back out.
func reflect(v, n mgl64.Vec3) mgl64.Vec3 {
	vn := v.Dot(n)
	if vn <= 0 {
		return v
	}
	return v.Sub(n.Mul(2 * vn))
}

// DecayScale eases every point whose hold window has passed back towards scale 1.0.
func (f *Field) DecayScale(now time.Duration) {
	for i := range f.points {
		f.points[i].decay(now, f.cfg.DecayRate, f.cfg.SettleEpsilon)
	}
}

// Enlarge puts point i into the enlarged state until the given time.
func (f *Field) Enlarge(i int, scale float64, until time.Duration) {
	f.points[i].enlarge(scale, until)
}

// CountEnlarged returns how many points are not in the normal state.
func (f *Field) CountEnlarged() int {
	n := 0
	for i := range f.points {
		if f.points[i].State != StateNormal {
			n++
		}
	}
	return n
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
