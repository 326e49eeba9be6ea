// Package app wires a HAL to a running scene and returns the per-frame step
// the backend loop calls.
package app

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime/debug"

	"dotsphere/hal"
	"dotsphere/internal/buildinfo"
	"dotsphere/internal/quarkgl"
	"dotsphere/internal/scene"

	"github.com/dustin/go-humanize"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrNoDisplay is returned when the HAL has no RGB565 framebuffer to draw into.
var ErrNoDisplay = errors.New("app: no display")

type Config struct {
	Scene scene.Config
	Seed  uint64
	// StatsEvery logs a stats line every N frames; 0 disables it.
	StatsEvery int
	HUD        bool
}

func DefaultConfig() Config {
	return Config{
		Scene:      scene.DefaultConfig(),
		Seed:       1,
		StatsEvery: 600,
		HUD:        true,
	}
}

// Keyboard orbit steps.
var (
	orbitStep = mgl64.DegToRad(5)
	zoomStep  = 5.0
)

type system struct {
	h      hal.HAL
	cfg    Config
	fb     hal.Framebuffer
	sc     *scene.Scene
	r      *quarkgl.Renderer
	target quarkgl.RGB565Target
	hud    bool
	stats  *statsLog

	panicked error
}

// New returns a hal.NewApp that runs the effect with cfg.
func New(cfg Config) hal.NewApp {
	return func(h hal.HAL) (func() error, error) {
		s, err := newSystem(h, cfg)
		if err != nil {
			return nil, err
		}
		return s.step, nil
	}
}

func newSystem(h hal.HAL, cfg Config) (*system, error) {
	disp := h.Display()
	if disp == nil {
		return nil, ErrNoDisplay
	}
	fb := disp.Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return nil, ErrNoDisplay
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	sc, err := scene.New(cfg.Scene, rng)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	sc.SetViewport(fb.Width(), fb.Height())

	s := &system{
		h:   h,
		cfg: cfg,
		fb:  fb,
		sc:  sc,
		r:   quarkgl.NewRenderer(),
		target: quarkgl.RGB565Target{
			Buf:    fb.Buffer(),
			Stride: fb.StrideBytes(),
			W:      fb.Width(),
			H:      fb.Height(),
		},
		hud:   cfg.HUD,
		stats: newStatsLog(h.Logger(), cfg.StatsEvery),
	}

	fc := cfg.Scene.Field
	lc := cfg.Scene.Links
	s.logf("dotsphere %s: %s points, radius %g, links < %g every %d frame(s) (%s), %dx%d",
		buildinfo.Short(),
		humanize.Comma(int64(fc.Count)), fc.ContainerRadius,
		lc.Threshold, lc.Every, lc.Index,
		fb.Width(), fb.Height())
	return s, nil
}

func (s *system) logf(format string, args ...any) {
	if l := s.h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf(format, args...))
	}
}

// step runs one frame. A panic inside the frame is reported on screen and
// ends the loop.
func (s *system) step() (err error) {
	if s.panicked != nil {
		return s.panicked
	}
	defer func() {
		if v := recover(); v != nil {
			s.panicked = s.reportPanic(v, debug.Stack())
			err = s.panicked
		}
	}()

	if err := s.pollInput(); err != nil {
		return err
	}

	now := s.h.Time().Now()
	st := s.sc.Tick(now)
	s.sc.Render(s.r, &s.target)
	if s.hud {
		drawHUD(s.fb, st)
	}
	if err := s.fb.Present(); err != nil {
		return err
	}
	s.stats.observe(st, now)
	return nil
}

func (s *system) pollInput() error {
	in := s.h.Input()
	if in == nil {
		return nil
	}
	if p := in.Pointer(); p != nil {
		if x, y, ok := p.Position(); ok {
			s.sc.UpdatePointer(float64(x), float64(y))
		} else {
			s.sc.ClearPointer()
		}
	}

	kbd := in.Keyboard()
	if kbd == nil {
		return nil
	}
	for {
		select {
		case ev := <-kbd.Events():
			if !ev.Press {
				continue
			}
			if err := s.handleKey(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (s *system) handleKey(ev hal.KeyEvent) error {
	switch ev.Code {
	case hal.KeyEscape:
		return hal.ErrQuit
	case hal.KeyLeft:
		s.sc.Orbit(-orbitStep, 0, 0)
	case hal.KeyRight:
		s.sc.Orbit(orbitStep, 0, 0)
	case hal.KeyUp:
		s.sc.Orbit(0, orbitStep, 0)
	case hal.KeyDown:
		s.sc.Orbit(0, -orbitStep, 0)
	}
	switch ev.Rune {
	case 'q', 'Q':
		return hal.ErrQuit
	case '+', '=':
		s.sc.Orbit(0, 0, -zoomStep)
	case '-', '_':
		s.sc.Orbit(0, 0, zoomStep)
	case 'h', 'H':
		s.hud = !s.hud
	}
	return nil
}
