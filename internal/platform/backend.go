package platform

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned by NewBackend on systems without a window backend.
var ErrUnsupported = errors.New("no window backend for this platform")

// WindowID is a platform-neutral window identifier.
type WindowID uint64

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Display describes a physical display.
type Display struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Bounds Rect   `json:"bounds"`
}

// Window is a top-level application window that passed the backend's
// real-window filter.
type Window struct {
	ID     WindowID `json:"id"`
	Title  string   `json:"title"`
	Bounds Rect     `json:"bounds"`
}

// Backend abstracts the window-system operations tilefit needs.
type Backend interface {
	// Windows returns a snapshot of real windows in enumeration order.
	Windows() ([]Window, error)
	// PrimaryDisplay returns the bounds of the primary monitor.
	PrimaryDisplay() (Display, error)
	// MoveResize moves and resizes one window without changing z-order or focus.
	MoveResize(windowID WindowID, bounds Rect) error
	// Close releases any connection held by the backend.
	Close() error
}

// Options configures backend construction.
type Options struct {
	// Display overrides the X11 DISPLAY. Ignored elsewhere.
	Display string
}

// UsableRegion returns the display bounds minus reservedChrome pixels of
// height kept free for a taskbar or panel.
func UsableRegion(display Display, reservedChrome int) (Rect, error) {
	if reservedChrome < 0 {
		return Rect{}, fmt.Errorf("reserved chrome must be >= 0, got %d", reservedChrome)
	}

	usable := display.Bounds
	usable.Height -= reservedChrome
	if usable.Width < 1 || usable.Height < 1 {
		return Rect{}, fmt.Errorf(
			"reserved chrome %d leaves no usable space on %s (%dx%d)",
			reservedChrome, display.Name, display.Bounds.Width, display.Bounds.Height,
		)
	}
	return usable, nil
}
