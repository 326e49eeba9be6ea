//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Width   int
	Height  int
	Hz      int
	// Ticks stops the run after N steps; 0 runs until ctx is done.
	Ticks uint64
	// Sweep moves a virtual pointer in a circle around the framebuffer centre.
	Sweep bool
	// Unthrottled steps back to back instead of waiting for the ticker. The
	// clock still advances by 1/Hz per step.
	Unthrottled bool
}

// sweepPeriod is one full revolution of the virtual pointer.
const sweepPeriod = 4 * time.Second

// RunHeadless runs the app without opening a window. The clock advances by
// exactly 1/Hz per step.
func RunHeadless(ctx context.Context, newApp NewApp, cfg HeadlessConfig, logOut io.Writer) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Width <= 0 {
		cfg.Width = 480
	}
	if cfg.Height <= 0 {
		cfg.Height = 320
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h, err := newHost(cfg.Width, cfg.Height, logOut)
	if err != nil {
		return err
	}
	clock := &stepTime{period: d}
	h.t = clock

	step, err := newApp(h)
	if err != nil {
		return err
	}

	var tickC <-chan time.Time
	if !cfg.Unthrottled {
		t := time.NewTicker(d)
		defer t.Stop()
		tickC = t.C
	}

	var tick uint64
	for {
		if tickC != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tickC:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		clock.step()
		if cfg.Sweep {
			x, y := sweepPosition(clock.Now(), cfg.Width, cfg.Height)
			h.ptr.set(x, y, true)
		}
		if step != nil {
			if err := step(); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		}
		tick++
		if cfg.Ticks > 0 && tick >= cfg.Ticks {
			return nil
		}
	}
}

func sweepPosition(now time.Duration, w, h int) (x, y int) {
	a := 2 * math.Pi * float64(now%sweepPeriod) / float64(sweepPeriod)
	r := float64(min(w, h)) / 3
	cx, cy := float64(w)/2, float64(h)/2
	return int(math.Round(cx + r*math.Cos(a))), int(math.Round(cy + r*math.Sin(a)))
}
