//go:build windows

package platform

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procEnumWindows          = user32.NewProc("EnumWindows")
	procIsWindowVisible      = user32.NewProc("IsWindowVisible")
	procIsWindow             = user32.NewProc("IsWindow")
	procIsZoomed             = user32.NewProc("IsZoomed")
	procGetParent            = user32.NewProc("GetParent")
	procGetWindow            = user32.NewProc("GetWindow")
	procGetWindowLongW       = user32.NewProc("GetWindowLongW")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
	procGetWindowRect        = user32.NewProc("GetWindowRect")
	procGetSystemMetrics     = user32.NewProc("GetSystemMetrics")
	procSetWindowPos         = user32.NewProc("SetWindowPos")
	procShowWindow           = user32.NewProc("ShowWindow")
)

const (
	gwOwner = 4

	wsExToolWindow = 0x00000080
	wsExAppWindow  = 0x00040000

	smCxScreen = 0
	smCyScreen = 1

	swRestore = 9

	swpNoZOrder    = 0x0004
	swpNoActivate  = 0x0010
	swpShowWindow  = 0x0040
	placementFlags = swpNoZOrder | swpNoActivate | swpShowWindow
)

// GWL_EXSTYLE is -20.
var gwlExStyle = ^uintptr(19)

// EnumWindows callbacks cannot be freed, so a single one is shared and the
// collected handles are guarded by enumMu.
var (
	enumMu      sync.Mutex
	enumHandles []windows.HWND
	enumProc    = windows.NewCallback(func(hwnd windows.HWND, _ uintptr) uintptr {
		enumHandles = append(enumHandles, hwnd)
		return 1
	})
)

// Win32Backend talks to user32 directly.
type Win32Backend struct{}

var _ Backend = (*Win32Backend)(nil)

// NewBackend returns the Win32 backend. Options are ignored on Windows.
func NewBackend(Options) (Backend, error) {
	if err := user32.Load(); err != nil {
		return nil, fmt.Errorf("failed to load user32: %w", err)
	}
	return &Win32Backend{}, nil
}

// Close is a no-op; user32 holds no per-backend state.
func (b *Win32Backend) Close() error { return nil }

// Windows returns the real application windows in EnumWindows order.
func (b *Win32Backend) Windows() ([]Window, error) {
	handles, err := enumTopLevel()
	if err != nil {
		return nil, err
	}

	result := make([]Window, 0, len(handles))
	for _, hwnd := range handles {
		if !isRealWindow(hwnd) {
			continue
		}
		title := windowText(hwnd)
		if title == "" {
			continue
		}
		rect, ok := windowRect(hwnd)
		if !ok {
			continue
		}
		result = append(result, Window{
			ID:     WindowID(hwnd),
			Title:  title,
			Bounds: rect,
		})
	}
	return result, nil
}

// PrimaryDisplay returns the primary monitor resolution.
func (b *Win32Backend) PrimaryDisplay() (Display, error) {
	width, _, _ := procGetSystemMetrics.Call(smCxScreen)
	height, _, _ := procGetSystemMetrics.Call(smCyScreen)
	if width == 0 || height == 0 {
		return Display{}, fmt.Errorf("GetSystemMetrics returned %dx%d", width, height)
	}
	return Display{
		ID:     0,
		Name:   "primary",
		Bounds: Rect{Width: int(width), Height: int(height)},
	}, nil
}

// MoveResize moves and resizes a window without touching z-order or focus.
func (b *Win32Backend) MoveResize(windowID WindowID, bounds Rect) error {
	hwnd := uintptr(windowID)
	if ok, _, _ := procIsWindow.Call(hwnd); ok == 0 {
		return fmt.Errorf("window 0x%x is gone", hwnd)
	}

	// SetWindowPos on a maximized window only moves its restore rect.
	if zoomed, _, _ := procIsZoomed.Call(hwnd); zoomed != 0 {
		procShowWindow.Call(hwnd, swRestore)
	}

	ok, _, callErr := procSetWindowPos.Call(
		hwnd,
		0,
		uintptr(int32(bounds.X)),
		uintptr(int32(bounds.Y)),
		uintptr(int32(bounds.Width)),
		uintptr(int32(bounds.Height)),
		placementFlags,
	)
	if ok == 0 {
		return fmt.Errorf("SetWindowPos(0x%x): %w", hwnd, callErr)
	}
	return nil
}

func enumTopLevel() ([]windows.HWND, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumHandles = enumHandles[:0]
	ok, _, callErr := procEnumWindows.Call(enumProc, 0)
	if ok == 0 {
		return nil, fmt.Errorf("EnumWindows: %w", callErr)
	}

	handles := make([]windows.HWND, len(enumHandles))
	copy(handles, enumHandles)
	return handles, nil
}

// isRealWindow keeps visible, parentless windows that either have no owner
// and are not tool windows, or are owned but flagged as app windows.
func isRealWindow(hwnd windows.HWND) bool {
	h := uintptr(hwnd)
	if visible, _, _ := procIsWindowVisible.Call(h); visible == 0 {
		return false
	}
	if parent, _, _ := procGetParent.Call(h); parent != 0 {
		return false
	}

	owner, _, _ := procGetWindow.Call(h, gwOwner)
	hasNoOwner := owner == 0
	exStyle, _, _ := procGetWindowLongW.Call(h, gwlExStyle)

	if exStyle&wsExToolWindow == 0 && hasNoOwner {
		return true
	}
	return exStyle&wsExAppWindow != 0 && !hasNoOwner
}

func windowText(hwnd windows.HWND) string {
	n, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd))
	if n == 0 {
		return ""
	}
	buf := make([]uint16, n+1)
	procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf)
}

func windowRect(hwnd windows.HWND) (Rect, bool) {
	var r windows.Rect
	ok, _, _ := procGetWindowRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&r)))
	if ok == 0 {
		return Rect{}, false
	}
	width := int(r.Right - r.Left)
	height := int(r.Bottom - r.Top)
	if width <= 0 || height <= 0 {
		return Rect{}, false
	}
	return Rect{X: int(r.Left), Y: int(r.Top), Width: width, Height: height}, true
}
