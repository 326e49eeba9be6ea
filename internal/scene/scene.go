// Package scene owns one running instance of the point cloud effect: the field,
// its links, the pointer controller and the camera.
package scene

import (
	"fmt"
	"math/rand/v2"
	"time"

	"dotsphere/internal/field"
	"dotsphere/internal/interact"
	"dotsphere/internal/links"
	"dotsphere/internal/quarkgl"
)

// Config aggregates the configuration of every part of a scene.
type Config struct {
	Field    field.Config
	Links    links.Config
	Interact interact.Config
	// CameraDistance is the orbit radius of the camera around the field centre.
	CameraDistance float64
	FOVYRad        float64
}

func DefaultConfig() Config {
	cam := quarkgl.DefaultCamera()
	return Config{
		Field:          field.DefaultConfig(),
		Links:          links.DefaultConfig(),
		Interact:       interact.DefaultConfig(),
		CameraDistance: cam.Position.Len(),
		FOVYRad:        cam.FOVYRad,
	}
}

// Stats summarizes one Tick.
type Stats struct {
	Frame    uint64
	Links    int
	Hits     int
	Enlarged int
	// Relinked is set when the link set was recomputed on this frame.
	Relinked bool
}

// Scene is the explicit context passed through the frame loop.
type Scene struct {
	field *field.Field
	graph *links.Graph
	ctl   *interact.Controller

	cam   quarkgl.Camera
	orbit quarkgl.OrbitController

	w, h  int
	frame uint64
	links links.LinkSet

	palette []quarkgl.Color
	sprites []quarkgl.Sprite
}

// New builds a scene. rng seeds the field layout and the hover hold times.
func New(cfg Config, rng *rand.Rand) (*Scene, error) {
	f, err := field.New(cfg.Field, rng)
	if err != nil {
		return nil, err
	}
	return newScene(cfg, f, rng)
}

// NewWithField builds a scene around an existing field.
func NewWithField(cfg Config, f *field.Field, rng *rand.Rand) (*Scene, error) {
	if f == nil {
		return nil, fmt.Errorf("scene: nil field")
	}
	return newScene(cfg, f, rng)
}

func newScene(cfg Config, f *field.Field, rng *rand.Rand) (*Scene, error) {
	g, err := links.New(cfg.Links)
	if err != nil {
		return nil, err
	}
	ctl, err := interact.New(cfg.Interact, rng)
	if err != nil {
		return nil, err
	}
	if !(cfg.CameraDistance > 0) {
		return nil, fmt.Errorf("scene: camera distance must be positive (got %g)", cfg.CameraDistance)
	}

	s := &Scene{
		field: f,
		graph: g,
		ctl:   ctl,
		cam:   quarkgl.DefaultCamera(),
		orbit: quarkgl.OrbitController{
			Radius:    cfg.CameraDistance,
			MinRadius: f.Config().ContainerRadius * 0.25,
			MaxRadius: cfg.CameraDistance * 4,
		},
		w: 1,
		h: 1,
	}
	if cfg.FOVYRad > 0 {
		s.cam.FOVYRad = cfg.FOVYRad
	}
	s.orbit.Apply(&s.cam)

	for _, c := range f.Config().Palette {
		s.palette = append(s.palette, quarkgl.FromColorful(c))
	}
	s.sprites = make([]quarkgl.Sprite, f.Len())
	return s, nil
}

func (s *Scene) Field() *field.Field              { return s.field }
func (s *Scene) Links() links.LinkSet             { return s.links }
func (s *Scene) Camera() quarkgl.Camera           { return s.cam }
func (s *Scene) Controller() *interact.Controller { return s.ctl }
func (s *Scene) Frame() uint64                    { return s.frame }
func (s *Scene) Viewport() (w, h int)             { return s.w, s.h }

// SetViewport sets the pixel size used for pointer normalization and aspect.
func (s *Scene) SetViewport(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	s.w, s.h = w, h
}

// UpdatePointer records a pointer position in viewport pixels.
func (s *Scene) UpdatePointer(x, y float64) {
	s.ctl.UpdatePointer(x, y, float64(s.w), float64(s.h))
}

// ClearPointer forgets the pointer so no point is hovered.
func (s *Scene) ClearPointer() { s.ctl.ClearPointer() }

// Orbit rotates and zooms the camera around the field centre.
func (s *Scene) Orbit(dYaw, dPitch, dZoom float64) {
	s.orbit.Rotate(dYaw, dPitch)
	s.orbit.Zoom(dZoom)
	s.orbit.Apply(&s.cam)
}

func (s *Scene) aspect() float64 { return float64(s.w) / float64(s.h) }

// Tick runs one frame: advance, pointer hits, scale decay, then links when due.
func (s *Scene) Tick(now time.Duration) Stats {
	s.field.Advance()
	hits := s.ctl.ResolveHits(s.field, s.cam, s.aspect(), now)
	s.field.DecayScale(now)

	relinked := s.graph.Due(s.frame)
	if relinked {
		s.links = s.graph.Recompute(s.field)
	}

	st := Stats{
		Frame:    s.frame,
		Links:    s.links.Len(),
		Hits:     len(hits),
		Enlarged: s.field.CountEnlarged(),
		Relinked: relinked,
	}
	s.frame++
	return st
}

// Render draws the current state into t.
func (s *Scene) Render(r *quarkgl.Renderer, t quarkgl.Target) {
	pts := s.field.Points()
	for i := range pts {
		p := &pts[i]
		s.sprites[i] = quarkgl.Sprite{
			Pos:    p.Position,
			Radius: p.Radius(),
			Color:  s.palette[p.ColorIndex],
		}
	}
	r.Render(t, quarkgl.Frame{
		Camera:   s.cam,
		Sprites:  s.sprites,
		Segments: s.links.Segments,
	})
}
