package field

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var defaultPaletteHex = []string{"#4fc3f7", "#81c784", "#ffb74d", "#f06292", "#ba68c8"}

// DefaultPalette returns the stock dot colours.
func DefaultPalette() []colorful.Color {
	p := make([]colorful.Color, 0, len(defaultPaletteHex))
	for _, h := range defaultPaletteHex {
		c, _ := colorful.Hex(h)
		p = append(p, c)
	}
	return p
}

// ParsePalette parses a comma separated list of "#rrggbb" colours.
func ParsePalette(s string) ([]colorful.Color, error) {
	var p []colorful.Color
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.HasPrefix(part, "#") {
			part = "#" + part
		}
		c, err := colorful.Hex(part)
		if err != nil {
			return nil, fmt.Errorf("palette: %q: %w", part, err)
		}
		p = append(p, c)
	}
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: empty palette %q", ErrInvalidConfig, s)
	}
	return p, nil
}
