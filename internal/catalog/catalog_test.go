package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/1broseidon/tilefit/internal/platform"
	"github.com/1broseidon/tilefit/internal/tiling"
)

func win(id platform.WindowID, title string, w, h int) platform.Window {
	return platform.Window{ID: id, Title: title, Bounds: platform.Rect{X: 10, Y: 20, Width: w, Height: h}}
}

func ids(records []Record) []platform.WindowID {
	out := make([]platform.WindowID, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestSelect_NoTitlesKeepsSnapshotOrder(t *testing.T) {
	windows := []platform.Window{win(3, "c", 1, 1), win(1, "a", 1, 1), win(2, "b", 1, 1)}

	got := Select(windows, nil)
	assert.Equal(t, []platform.WindowID{3, 1, 2}, ids(got))
}

func TestSelect_OrdersByTitleList(t *testing.T) {
	windows := []platform.Window{
		win(1, "Editor", 800, 600),
		win(2, "Terminal", 640, 480),
		win(3, "Browser", 1024, 768),
	}

	got := Select(windows, []string{"Browser", "Editor", "Terminal"})
	assert.Equal(t, []platform.WindowID{3, 1, 2}, ids(got))
	assert.Equal(t, tiling.Size{Width: 1024, Height: 768}, got[0].Size)
	assert.Equal(t, "Editor", got[1].Title)
}

func TestSelect_FirstMatchPerTitle(t *testing.T) {
	windows := []platform.Window{
		win(1, "Terminal", 640, 480),
		win(2, "Terminal", 800, 600),
		win(3, "Editor", 800, 600),
	}

	got := Select(windows, []string{"Terminal", "Editor"})
	assert.Equal(t, []platform.WindowID{1, 3}, ids(got))
}

func TestSelect_RepeatedTitleTakesDistinctWindows(t *testing.T) {
	windows := []platform.Window{
		win(1, "Terminal", 640, 480),
		win(2, "Terminal", 800, 600),
	}

	got := Select(windows, []string{"Terminal", "Terminal", "Terminal"})
	assert.Equal(t, []platform.WindowID{1, 2}, ids(got))
	assert.Equal(t, []string{"Terminal"}, Missing(windows, []string{"Terminal", "Terminal", "Terminal"}))
}

func TestSelect_ExactMatchOnly(t *testing.T) {
	windows := []platform.Window{win(1, "Terminal - zsh", 640, 480)}

	assert.Empty(t, Select(windows, []string{"Terminal"}))
	assert.Equal(t, []string{"Terminal"}, Missing(windows, []string{"Terminal"}))
}

func TestMissing_AllFound(t *testing.T) {
	windows := []platform.Window{win(1, "a", 1, 1), win(2, "b", 1, 1)}
	assert.Empty(t, Missing(windows, []string{"b", "a"}))
}

func TestSizes(t *testing.T) {
	records := []Record{
		{ID: 1, Size: tiling.Size{Width: 1, Height: 2}},
		{ID: 2, Size: tiling.Size{Width: 3, Height: 4}},
	}
	assert.Equal(t, []tiling.Size{{Width: 1, Height: 2}, {Width: 3, Height: 4}}, Sizes(records))
}
