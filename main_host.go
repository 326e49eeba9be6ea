//go:build !tinygo

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"dotsphere/app"
	"dotsphere/hal"
	"dotsphere/internal/buildinfo"
	"dotsphere/internal/field"
	"dotsphere/internal/links"

	"github.com/go-gl/mathgl/mgl64"
)

func main() {
	cfg := app.DefaultConfig()
	fc := &cfg.Scene.Field
	lc := &cfg.Scene.Links
	ic := &cfg.Scene.Interact

	var (
		headless hal.HeadlessConfig
		window   hal.WindowConfig
		term     bool
		termHz   int
		palette  string
		index    string
		fovDeg   float64
		version  bool
	)
	flag.IntVar(&fc.Count, "count", fc.Count, "Number of points.")
	flag.Float64Var(&fc.ContainerRadius, "radius", fc.ContainerRadius, "Radius of the containing sphere.")
	flag.Float64Var(&fc.Margin, "margin", fc.Margin, "How far inside the wall a reflected point is placed.")
	flag.Float64Var(&fc.Speed, "speed", fc.Speed, "Per-axis velocity bound.")
	flag.Float64Var(&fc.SizeMin, "size-min", fc.SizeMin, "Smallest base radius.")
	flag.Float64Var(&fc.SizeMax, "size-max", fc.SizeMax, "Largest base radius.")
	flag.Float64Var(&fc.DecayRate, "decay", fc.DecayRate, "Fraction of the remaining scale removed per frame.")
	flag.StringVar(&palette, "palette", "", "Comma separated hex colours (default: built-in palette).")
	flag.Float64Var(&lc.Threshold, "link-distance", lc.Threshold, "Link points closer than this.")
	flag.IntVar(&lc.Every, "link-every", lc.Every, "Recompute links every N frames.")
	flag.StringVar(&index, "link-index", lc.Index.String(), "brute|grid.")
	flag.Float64Var(&ic.EnlargeScale, "enlarge", ic.EnlargeScale, "Scale of a hovered point.")
	flag.Float64Var(&ic.EnlargedAt, "enlarged-at", ic.EnlargedAt, "Scale at which a point counts as enlarged.")
	flag.DurationVar(&ic.HoldMin, "hold-min", ic.HoldMin, "Minimum time a hovered point stays enlarged.")
	flag.DurationVar(&ic.HoldSpan, "hold-span", ic.HoldSpan, "Random extra hold time.")
	flag.Float64Var(&fovDeg, "fov", mgl64.RadToDeg(cfg.Scene.FOVYRad), "Vertical field of view in degrees.")
	flag.Float64Var(&cfg.Scene.CameraDistance, "distance", cfg.Scene.CameraDistance, "Camera distance from the centre.")
	flag.Uint64Var(&cfg.Seed, "seed", uint64(time.Now().UnixNano()), "Random seed.")
	flag.IntVar(&cfg.StatsEvery, "stats-every", cfg.StatsEvery, "Log a stats line every N frames (0 = never).")
	flag.BoolVar(&cfg.HUD, "hud", cfg.HUD, "Draw the stats overlay.")

	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.BoolVar(&headless.Sweep, "sweep", false, "Move a virtual pointer in a circle in headless mode.")
	flag.BoolVar(&term, "term", false, "Draw in the terminal.")
	flag.IntVar(&termHz, "term-hz", 30, "Frame rate in terminal mode.")
	flag.IntVar(&window.Width, "width", 480, "Framebuffer width.")
	flag.IntVar(&window.Height, "height", 320, "Framebuffer height.")
	flag.IntVar(&window.Scale, "scale", 2, "Window scale.")
	flag.BoolVar(&version, "version", false, "Print the build version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	if palette != "" {
		p, err := field.ParsePalette(palette)
		if err != nil {
			fatalf("%v", err)
		}
		fc.Palette = p
	}
	kind, err := links.ParseIndexKind(index)
	if err != nil {
		fatalf("%v", err)
	}
	lc.Index = kind
	cfg.Scene.FOVYRad = mgl64.DegToRad(fovDeg)

	newApp := app.New(cfg)

	switch {
	case headless.Enabled:
		headless.Width, headless.Height = window.Width, window.Height
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, headless, os.Stdout); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fatalf("%v", err)
		}

	case term:
		// The screen owns the terminal until RunTerminal returns.
		var logs bytes.Buffer
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err := hal.RunTerminal(ctx, newApp, hal.TerminalConfig{Hz: termHz}, &logs)
		stop()
		_, _ = io.Copy(os.Stdout, &logs)
		if err != nil && !errors.Is(err, context.Canceled) {
			fatalf("%v", err)
		}

	default:
		if err := hal.RunWindow(window, newApp, os.Stdout); err != nil {
			fatalf("%v", err)
		}
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
