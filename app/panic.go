package app

import (
	"fmt"
	"image/color"
	"strings"

	"tinygo.org/x/tinyfont"
)

// reportPanic logs a recovered frame panic with its stack, leaves a panic
// screen in the framebuffer and returns the error that ends the loop.
func (s *system) reportPanic(v any, stack []byte) error {
	lines := []string{"dotsphere panic:", fmt.Sprintf("frame: %d", s.sc.Frame()), fmt.Sprintf("panic: %v", v)}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, line)
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}
	for _, line := range lines {
		s.logf("%s", line)
	}

	s.fb.ClearRGB(255, 255, 255)
	drawPanicText(fbDisplay{fb: s.fb}, lines)
	_ = s.fb.Present()

	return fmt.Errorf("app: panic in frame %d: %v", s.sc.Frame(), v)
}

func drawPanicText(d fbDisplay, lines []string) {
	w, h := d.Size()
	_, outbox := tinyfont.LineWidth(hudFont, "0")
	cols := 1
	if outbox > 0 {
		cols = max(1, int(w)/int(outbox))
	}
	fg := color.RGBA{A: 0xFF}

	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if y+hudLineHeight > h {
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, hudFont, 0, y+hudAscent, chunk, fg)
			y += hudLineHeight
			line = strings.TrimLeft(rest, " \t")
		}
	}
}
