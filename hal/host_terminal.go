//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TerminalConfig controls the tcell backend.
type TerminalConfig struct {
	Hz int
}

// RunTerminal draws the framebuffer into the terminal with half-block cells
// (two framebuffer rows per cell) and feeds mouse motion to the pointer.
// The framebuffer is sized to the terminal at start-up.
func RunTerminal(ctx context.Context, newApp NewApp, cfg TerminalConfig, logOut io.Writer) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	cols, rows := screen.Size()
	h, err := newHost(cols, rows*2, logOut)
	if err != nil {
		return err
	}
	step, err := newApp(h)
	if err != nil {
		return err
	}

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	t := time.NewTicker(time.Second / time.Duration(cfg.Hz))
	defer t.Stop()

	snap := make([]byte, len(h.fb.buf))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if stop := handleTerminalEvent(h, ev); stop {
				return nil
			}
		case <-t.C:
			if err := step(); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
			h.fb.snapshotRGB565(snap)
			drawHalfBlocks(screen, h.fb, snap)
			screen.Show()
		}
	}
}

func handleTerminalEvent(h *hostHAL, ev tcell.Event) (stop bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return true
		case tcell.KeyEscape:
			h.kbd.emit(KeyEvent{Code: KeyEscape, Press: true})
		case tcell.KeyUp:
			h.kbd.emit(KeyEvent{Code: KeyUp, Press: true})
		case tcell.KeyDown:
			h.kbd.emit(KeyEvent{Code: KeyDown, Press: true})
		case tcell.KeyLeft:
			h.kbd.emit(KeyEvent{Code: KeyLeft, Press: true})
		case tcell.KeyRight:
			h.kbd.emit(KeyEvent{Code: KeyRight, Press: true})
		case tcell.KeyRune:
			h.kbd.emit(KeyEvent{Press: true, Rune: ev.Rune()})
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		// Each cell covers two framebuffer rows; aim at the upper one.
		h.ptr.set(x, y*2, x >= 0 && x < h.fb.width && y*2 < h.fb.height)
	}
	return false
}

// drawHalfBlocks renders two framebuffer rows per terminal row using '▀'
// with the upper pixel as foreground and the lower as background.
func drawHalfBlocks(screen tcell.Screen, fb *hostFramebuffer, snap []byte) {
	cols, rows := screen.Size()
	for cy := 0; cy < rows && cy*2 < fb.height; cy++ {
		for cx := 0; cx < cols && cx < fb.width; cx++ {
			tr, tg, tb := fb.rgbaAt(snap, cx, cy*2)
			br, bg, bb := fb.rgbaAt(snap, cx, cy*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(tr), int32(tg), int32(tb))).
				Background(tcell.NewRGBColor(int32(br), int32(bg), int32(bb)))
			screen.SetContent(cx, cy, '▀', nil, style)
		}
	}
}
