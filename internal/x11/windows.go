package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Geometry is a window's outer frame in root coordinates.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// ClientWindow is a managed top-level window with its title and frame.
type ClientWindow struct {
	ID    xproto.Window
	Title string
	Frame Geometry
}

// Window types that never count as application windows.
var skippedWindowTypes = map[string]bool{
	"_NET_WM_WINDOW_TYPE_DESKTOP":      true,
	"_NET_WM_WINDOW_TYPE_DOCK":         true,
	"_NET_WM_WINDOW_TYPE_TOOLBAR":      true,
	"_NET_WM_WINDOW_TYPE_MENU":         true,
	"_NET_WM_WINDOW_TYPE_UTILITY":      true,
	"_NET_WM_WINDOW_TYPE_SPLASH":       true,
	"_NET_WM_WINDOW_TYPE_DIALOG":       true,
	"_NET_WM_WINDOW_TYPE_NOTIFICATION": true,
}

// RealWindows lists the managed windows that are visible, unowned, normal
// application windows with a non-empty title, in _NET_CLIENT_LIST order.
func (c *Connection) RealWindows() ([]ClientWindow, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, err
	}

	windows := make([]ClientWindow, 0, len(clients))
	for _, windowID := range clients {
		if !c.isViewable(windowID) || c.hasOwner(windowID) {
			continue
		}
		if !c.IsNormalWindow(windowID) || c.skipByState(windowID) {
			continue
		}

		title := c.WindowTitle(windowID)
		if title == "" {
			continue
		}

		frame, ok := c.FrameGeometry(windowID)
		if !ok {
			continue
		}

		windows = append(windows, ClientWindow{
			ID:    windowID,
			Title: title,
			Frame: frame,
		})
	}

	return windows, nil
}

// MoveResizeWindow places a window so that its outer frame covers the given
// geometry. Stacking order and focus are left alone.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	if _, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply(); err != nil {
		return fmt.Errorf("window 0x%x is gone: %w", uint32(windowID), err)
	}

	// Maximized windows ignore geometry requests on most WMs.
	_ = c.unmaximizeWindow(windowID)

	left, right, top, bottom := c.GetFrameExtents(windowID)
	clientWidth, clientHeight := clientSize(width, height, left, right, top, bottom)

	// Use EWMH MoveResize for better WM compatibility
	err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, clientWidth, clientHeight)
	if err != nil {
		// Fallback to direct window manipulation
		xwindow.New(c.XUtil, windowID).MoveResize(x, y, clientWidth, clientHeight)
	}

	return nil
}

// unmaximizeWindow removes maximized state from a window
func (c *Connection) unmaximizeWindow(windowID xproto.Window) error {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return err
	}

	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_MAXIMIZED_HORZ", "_NET_WM_STATE_MAXIMIZED_VERT":
			if err := ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, state); err != nil {
				return err
			}
		}
	}

	return nil
}

// GetFrameExtents returns the window decoration sizes, or zeros when the WM
// does not publish them.
func (c *Connection) GetFrameExtents(windowID xproto.Window) (left, right, top, bottom int) {
	extents, err := ewmh.FrameExtentsGet(c.XUtil, windowID)
	if err != nil {
		return 0, 0, 0, 0
	}

	return int(extents.Left), int(extents.Right), int(extents.Top), int(extents.Bottom)
}

// FrameGeometry returns the outer frame of a window, decorations included.
func (c *Connection) FrameGeometry(windowID xproto.Window) (Geometry, bool) {
	rect, err := xwindow.New(c.XUtil, windowID).DecorGeometry()
	if err != nil {
		return Geometry{}, false
	}
	if rect.Width() <= 0 || rect.Height() <= 0 {
		return Geometry{}, false
	}

	return Geometry{
		X:      rect.X(),
		Y:      rect.Y(),
		Width:  rect.Width(),
		Height: rect.Height(),
	}, true
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}
	return isNormalType(types)
}

// isNormalType reports whether a _NET_WM_WINDOW_TYPE list describes an
// application window. Types are in preference order, so the first known one
// decides. An unset type counts as normal.
func isNormalType(types []string) bool {
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
		if skippedWindowTypes[t] {
			return false
		}
	}
	return len(types) == 0
}

// clientSize converts an outer frame size to the client size the WM expects,
// never below one pixel.
func clientSize(width, height, left, right, top, bottom int) (int, int) {
	return max(1, width-left-right), max(1, height-top-bottom)
}

// WindowTitle prefers _NET_WM_NAME and falls back to WM_NAME.
func (c *Connection) WindowTitle(windowID xproto.Window) string {
	if title, err := ewmh.WmNameGet(c.XUtil, windowID); err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}

	if title, err := icccm.WmNameGet(c.XUtil, windowID); err == nil {
		return strings.TrimSpace(title)
	}

	return ""
}

func (c *Connection) isViewable(windowID xproto.Window) bool {
	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply()
	if err != nil {
		return false
	}
	return attrs.MapState == xproto.MapStateViewable
}

// hasOwner reports whether the window is transient for another window,
// the X11 equivalent of an owned window.
func (c *Connection) hasOwner(windowID xproto.Window) bool {
	owner, err := icccm.WmTransientForGet(c.XUtil, windowID)
	return err == nil && owner != 0 && owner != c.Root
}

func (c *Connection) skipByState(windowID xproto.Window) bool {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_HIDDEN", "_NET_WM_STATE_SKIP_TASKBAR":
			return true
		}
	}
	return false
}
