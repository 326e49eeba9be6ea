package quarkgl

import "github.com/lucasb-eyer/go-colorful"

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 0xFF} }

// FromColorful converts a go-colorful colour, clamping out-of-gamut values.
func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return RGB(r, g, b)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Blend mixes c towards o; t=0 is c, t=1 is o.
func (c Color) Blend(o Color, t float64) Color {
	return FromColorful(c.colorful().BlendRgb(o.colorful(), t))
}
