// Package catalog selects and orders the windows to be tiled from a backend
// snapshot.
package catalog

import (
	"github.com/1broseidon/tilefit/internal/platform"
	"github.com/1broseidon/tilefit/internal/tiling"
)

// Record is one window chosen for placement.
type Record struct {
	ID    platform.WindowID `json:"id"`
	Title string            `json:"title"`
	Size  tiling.Size       `json:"size"`
}

// Select returns the windows matching titles, ordered like titles. Each title
// takes the first window with exactly that title that is not already taken.
// Titles without a match are skipped. An empty titles list selects every
// window in snapshot order.
func Select(windows []platform.Window, titles []string) []Record {
	if len(titles) == 0 {
		records := make([]Record, 0, len(windows))
		for _, w := range windows {
			records = append(records, recordFrom(w))
		}
		return records
	}

	taken := make(map[platform.WindowID]bool, len(titles))
	records := make([]Record, 0, len(titles))
	for _, title := range titles {
		for _, w := range windows {
			if w.Title != title || taken[w.ID] {
				continue
			}
			taken[w.ID] = true
			records = append(records, recordFrom(w))
			break
		}
	}
	return records
}

// Missing returns the titles Select could not satisfy, in titles order.
func Missing(windows []platform.Window, titles []string) []string {
	available := make(map[string]int, len(windows))
	for _, w := range windows {
		available[w.Title]++
	}

	var missing []string
	for _, title := range titles {
		if available[title] == 0 {
			missing = append(missing, title)
			continue
		}
		available[title]--
	}
	return missing
}

// Sizes extracts the current window sizes in record order.
func Sizes(records []Record) []tiling.Size {
	sizes := make([]tiling.Size, len(records))
	for i, r := range records {
		sizes[i] = r.Size
	}
	return sizes
}

func recordFrom(w platform.Window) Record {
	return Record{
		ID:    w.ID,
		Title: w.Title,
		Size: tiling.Size{
			Width:  w.Bounds.Width,
			Height: w.Bounds.Height,
		},
	}
}
