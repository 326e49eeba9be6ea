//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var ebitenKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEscape, KeyEscape},
}

// pollInput samples ebiten's input state once per Update.
func pollInput(h *hostHAL) {
	x, y := ebiten.CursorPosition()
	inside := x >= 0 && y >= 0 && x < h.fb.width && y < h.fb.height
	h.ptr.set(x, y, inside)

	for _, r := range ebiten.AppendInputChars(nil) {
		h.kbd.emit(KeyEvent{Press: true, Rune: r})
	}

	for _, k := range ebitenKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			h.kbd.emit(KeyEvent{Code: k.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(k.key) {
			h.kbd.emit(KeyEvent{Code: k.code, Press: false})
		}
	}
}
