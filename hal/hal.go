// Package hal is the only contact point between the effect and the outside
// world: a framebuffer to draw into, pointer and keyboard input, a clock and a
// logger. Backends run the frame loop in a window, in a terminal or headless.
package hal

import (
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// ErrQuit is returned by an app step to end the loop without an error.
var ErrQuit = errors.New("quit")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp little endian: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
)

// KeyEvent is a keyboard event. Text input arrives with Code KeyUnknown and
// the character in Rune.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each backend).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Pointer reports the pointer position in framebuffer pixels. ok is false
// while the pointer is outside the framebuffer or unknown.
type Pointer interface {
	Position() (x, y int, ok bool)
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// Time is the frame clock: elapsed time since the backend started.
type Time interface {
	Now() time.Duration
}

// HAL bundles the devices of one backend.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
}

// NewApp builds the per-frame step function for a HAL. A step error stops
// the backend loop and is returned from the Run function.
type NewApp func(HAL) (step func() error, err error)
