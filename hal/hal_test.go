//go:build !tinygo

package hal

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

func TestRGB565RoundTrip(t *testing.T) {
	cases := []struct {
		r, g, b uint8
		want    uint16
	}{
		{0, 0, 0, 0x0000},
		{255, 255, 255, 0xFFFF},
		{255, 0, 0, 0xF800},
		{0, 255, 0, 0x07E0},
		{0, 0, 255, 0x001F},
	}
	for _, tc := range cases {
		got := rgb565(tc.r, tc.g, tc.b)
		if got != tc.want {
			t.Fatalf("rgb565(%d,%d,%d) = %#04x, want %#04x", tc.r, tc.g, tc.b, got, tc.want)
		}
		r, g, b := rgb888From565(got)
		if r != tc.r || g != tc.g || b != tc.b {
			t.Fatalf("rgb888From565(%#04x) = %d,%d,%d, want %d,%d,%d", got, r, g, b, tc.r, tc.g, tc.b)
		}
	}
}

func TestFramebufferClearAndSnapshot(t *testing.T) {
	fb := newHostFramebuffer(4, 3)
	fb.ClearRGB(255, 0, 0)
	snap := make([]byte, len(fb.buf))
	fb.snapshotRGB565(snap)

	r, g, b := fb.rgbaAt(snap, 3, 2)
	if r != 255 || g != 0 || b != 0 {
		t.Fatalf("rgbaAt(3,2) = %d,%d,%d, want 255,0,0", r, g, b)
	}
	if r, g, b := fb.rgbaAt(snap, 4, 0); r|g|b != 0 {
		t.Fatalf("rgbaAt out of bounds = %d,%d,%d, want black", r, g, b)
	}
}

func TestNewRejectsEmptyFramebuffer(t *testing.T) {
	if _, err := New(0, 10, nil); err == nil {
		t.Fatalf("New(0, 10) = nil error")
	}
}

func TestLoggerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	h, err := New(2, 2, &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.Logger().WriteLineString("a")
	h.Logger().WriteLineBytes([]byte("b"))
	if got, want := buf.String(), "a\nb\n"; got != want {
		t.Fatalf("log = %q, want %q", got, want)
	}
}

func TestStepTime(t *testing.T) {
	clock := &stepTime{period: 20 * time.Millisecond}
	if got := clock.Now(); got != 0 {
		t.Fatalf("Now() = %v, want 0", got)
	}
	clock.step()
	clock.step()
	if got, want := clock.Now(), 40*time.Millisecond; got != want {
		t.Fatalf("Now() = %v, want %v", got, want)
	}
}

func TestRunHeadlessStopsAfterTicks(t *testing.T) {
	var (
		steps int
		times []time.Duration
	)
	newApp := func(h HAL) (func() error, error) {
		return func() error {
			steps++
			times = append(times, h.Time().Now())
			return nil
		}, nil
	}
	err := RunHeadless(context.Background(), newApp, HeadlessConfig{Hz: 50, Ticks: 5, Unthrottled: true}, nil)
	if err != nil {
		t.Fatalf("RunHeadless() = %v", err)
	}
	if steps != 5 {
		t.Fatalf("steps = %d, want 5", steps)
	}
	for i, got := range times {
		if want := time.Duration(i+1) * 20 * time.Millisecond; got != want {
			t.Fatalf("times[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestRunHeadlessQuitAndError(t *testing.T) {
	quit := func(HAL) (func() error, error) {
		return func() error { return ErrQuit }, nil
	}
	if err := RunHeadless(context.Background(), quit, HeadlessConfig{Unthrottled: true}, nil); err != nil {
		t.Fatalf("RunHeadless(quit) = %v, want nil", err)
	}

	boom := errors.New("boom")
	fail := func(HAL) (func() error, error) {
		return func() error { return boom }, nil
	}
	if err := RunHeadless(context.Background(), fail, HeadlessConfig{Unthrottled: true}, nil); !errors.Is(err, boom) {
		t.Fatalf("RunHeadless(fail) = %v, want boom", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	idle := func(HAL) (func() error, error) { return func() error { return nil }, nil }
	if err := RunHeadless(ctx, idle, HeadlessConfig{}, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("RunHeadless(cancelled) = %v, want context.Canceled", err)
	}
}

func TestRunHeadlessSweepMovesPointer(t *testing.T) {
	var seen []int
	newApp := func(h HAL) (func() error, error) {
		return func() error {
			x, _, ok := h.Input().Pointer().Position()
			if !ok {
				return errors.New("pointer not set")
			}
			seen = append(seen, x)
			return nil
		}, nil
	}
	cfg := HeadlessConfig{Width: 90, Height: 60, Hz: 1, Ticks: 4, Sweep: true, Unthrottled: true}
	if err := RunHeadless(context.Background(), newApp, cfg, nil); err != nil {
		t.Fatalf("RunHeadless() = %v", err)
	}
	// Quarter turns of a radius-20 circle around (45, 30).
	want := []int{45, 25, 45, 65}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("pointer x = %v, want %v", seen, want)
		}
	}
}
