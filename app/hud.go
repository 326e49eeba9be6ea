package app

import (
	"fmt"
	"image/color"
	"unicode/utf8"

	"dotsphere/hal"
	"dotsphere/internal/scene"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// TomThumb is a 3x5 font drawn on a 6px line with the baseline 5px down.
var hudFont = &tinyfont.TomThumb

const (
	hudLineHeight = 6
	hudAscent     = 5
)

var hudColor = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}

func drawHUD(fb hal.Framebuffer, st scene.Stats) {
	d := fbDisplay{fb: fb}
	line := fmt.Sprintf("f %d  links %d  hits %d  big %d", st.Frame, st.Links, st.Hits, st.Enlarged)
	tinyfont.WriteLine(d, hudFont, 2, 2+hudAscent, line, hudColor)
}

// fbDisplay lets tinyfont draw into an RGB565 framebuffer.
type fbDisplay struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = fbDisplay{}

func (d fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d fbDisplay) Display() error { return nil }

// takeRunes splits s after at most n runes.
func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	i := 0
	for count := 0; i < len(s) && count < n; count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i], s[i:]
}
