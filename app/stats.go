package app

import (
	"fmt"
	"time"

	"dotsphere/hal"
	"dotsphere/internal/scene"

	"github.com/dustin/go-humanize"
)

// statsLog writes one summary line every n frames.
type statsLog struct {
	l     hal.Logger
	every uint64

	lastFrame uint64
	lastAt    time.Duration
}

func newStatsLog(l hal.Logger, every int) *statsLog {
	if every < 0 {
		every = 0
	}
	return &statsLog{l: l, every: uint64(every)}
}

func (s *statsLog) observe(st scene.Stats, now time.Duration) {
	if s.l == nil || s.every == 0 || (st.Frame+1)%s.every != 0 {
		return
	}
	frames := st.Frame + 1 - s.lastFrame
	elapsed := now - s.lastAt
	s.lastFrame, s.lastAt = st.Frame+1, now
	s.l.WriteLineString(formatStats(st, frames, elapsed))
}

func formatStats(st scene.Stats, frames uint64, elapsed time.Duration) string {
	fps := "-"
	if elapsed > 0 {
		fps = humanize.FtoaWithDigits(float64(frames)/elapsed.Seconds(), 1)
	}
	return fmt.Sprintf("frame %s: links %s, hits %d, enlarged %s, %s fps",
		humanize.Comma(int64(st.Frame)),
		humanize.Comma(int64(st.Links)),
		st.Hits,
		humanize.Comma(int64(st.Enlarged)),
		fps)
}
