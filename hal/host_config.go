//go:build !tinygo

package hal

// WindowConfig controls the desktop window backend.
type WindowConfig struct {
	Width  int
	Height int
	// Scale is the window size multiplier over the framebuffer.
	Scale int
	TPS   int
	Title string
}

func (c WindowConfig) withDefaults() WindowConfig {
	if c.Width <= 0 {
		c.Width = 480
	}
	if c.Height <= 0 {
		c.Height = 320
	}
	if c.Scale <= 0 {
		c.Scale = 2
	}
	if c.TPS <= 0 {
		c.TPS = 60
	}
	if c.Title == "" {
		c.Title = "dotsphere"
	}
	return c
}
