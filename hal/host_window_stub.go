//go:build !tinygo && !cgo

package hal

import (
	"errors"
	"io"
)

func RunWindow(_ WindowConfig, _ NewApp, _ io.Writer) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
