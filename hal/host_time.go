//go:build !tinygo

package hal

import (
	"sync/atomic"
	"time"
)

// wallTime reports real elapsed time since construction.
type wallTime struct {
	start time.Time
}

func newWallTime() *wallTime { return &wallTime{start: time.Now()} }

func (t *wallTime) Now() time.Duration { return time.Since(t.start) }

// stepTime advances by a fixed period per step, so headless runs are
// reproducible regardless of scheduling jitter.
type stepTime struct {
	period time.Duration
	steps  atomic.Uint64
}

func (t *stepTime) Now() time.Duration {
	return time.Duration(t.steps.Load()) * t.period
}

func (t *stepTime) step() { t.steps.Add(1) }
