package x11

import "testing"

func TestIsNormalType(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  bool
	}{
		{"unset", nil, true},
		{"normal", []string{"_NET_WM_WINDOW_TYPE_NORMAL"}, true},
		{"dock", []string{"_NET_WM_WINDOW_TYPE_DOCK"}, false},
		{"dialog", []string{"_NET_WM_WINDOW_TYPE_DIALOG"}, false},
		{"first known wins", []string{"_KDE_NET_WM_WINDOW_TYPE_OVERRIDE", "_NET_WM_WINDOW_TYPE_NORMAL", "_NET_WM_WINDOW_TYPE_DIALOG"}, true},
		{"skipped before normal", []string{"_NET_WM_WINDOW_TYPE_UTILITY", "_NET_WM_WINDOW_TYPE_NORMAL"}, false},
		{"only unknown types", []string{"_VENDOR_TYPE"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNormalType(tt.types); got != tt.want {
				t.Errorf("isNormalType(%v) = %v, want %v", tt.types, got, tt.want)
			}
		})
	}
}

func TestClientSize(t *testing.T) {
	w, h := clientSize(458, 344, 2, 2, 30, 2)
	if w != 454 || h != 312 {
		t.Errorf("clientSize() = %dx%d, want 454x312", w, h)
	}

	w, h = clientSize(10, 10, 8, 8, 20, 0)
	if w != 1 || h != 1 {
		t.Errorf("clientSize() = %dx%d, want 1x1", w, h)
	}
}
