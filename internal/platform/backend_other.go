//go:build !linux && !windows

package platform

import (
	"fmt"
	"runtime"
)

// NewBackend reports that this platform has no window backend.
func NewBackend(Options) (Backend, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, runtime.GOOS)
}
