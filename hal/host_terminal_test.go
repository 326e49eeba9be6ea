//go:build !tinygo

package hal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestTerminalMouseMapsToUpperHalfRow(t *testing.T) {
	h, err := newHost(8, 6, nil)
	if err != nil {
		t.Fatalf("newHost: %v", err)
	}

	if stop := handleTerminalEvent(h, tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone)); stop {
		t.Fatalf("mouse motion stopped the loop")
	}
	if x, y, ok := h.ptr.Position(); !ok || x != 3 || y != 4 {
		t.Fatalf("Position() = %d,%d,%v, want 3,4,true", x, y, ok)
	}

	handleTerminalEvent(h, tcell.NewEventMouse(3, 3, tcell.ButtonNone, tcell.ModNone))
	if _, _, ok := h.ptr.Position(); ok {
		t.Fatalf("pointer below the framebuffer reported inside")
	}
}
