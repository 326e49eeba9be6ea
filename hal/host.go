//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"sync"
)

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	ptr    *hostPointer
	t      Time
}

// New returns a host HAL with a framebuffer of the given size logging to w.
func New(width, height int, w io.Writer) (HAL, error) {
	h, err := newHost(width, height, w)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func newHost(width, height int, w io.Writer) (*hostHAL, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("hal: invalid framebuffer size %dx%d", width, height)
	}
	if w == nil {
		w = io.Discard
	}
	return &hostHAL{
		logger: &hostLogger{w: w},
		fb:     newHostFramebuffer(width, height),
		kbd:    newHostKeyboard(),
		ptr:    &hostPointer{},
		t:      newWallTime(),
	}, nil
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd, ptr: h.ptr} }
func (h *hostHAL) Time() Time       { return h.t }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// hostPointer is written by the backend loop (or its input goroutine) and read
// by the app step.
type hostPointer struct {
	mu     sync.Mutex
	x, y   int
	inside bool
}

func (p *hostPointer) Position() (x, y int, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.x, p.y, p.inside
}

func (p *hostPointer) set(x, y int, inside bool) {
	p.mu.Lock()
	p.x, p.y, p.inside = x, y, inside
	p.mu.Unlock()
}

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}
