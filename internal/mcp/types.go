package mcp

import "github.com/1broseidon/tilefit/internal/tiling"

// ComputeLayoutInput is the input for the compute_layout tool.
type ComputeLayoutInput struct {
	ScreenWidth  int           `json:"screen_width" jsonschema:"Usable screen width in pixels"`
	ScreenHeight int           `json:"screen_height" jsonschema:"Usable screen height in pixels (display height minus reserved chrome)"`
	Rows         int           `json:"rows" jsonschema:"Number of grid rows"`
	Cols         int           `json:"cols" jsonschema:"Number of grid columns"`
	Windows      []tiling.Size `json:"windows" jsonschema:"Current window sizes; their summed widths over summed heights set the cell aspect ratio"`
	Overlap      *int          `json:"overlap,omitempty" jsonschema:"Pixels neighbouring cells share (default: 1)"`
}

// ComputeLayoutOutput is the output for the compute_layout tool.
type ComputeLayoutOutput struct {
	Size           tiling.Size       `json:"size"`
	Constraint     tiling.Constraint `json:"constraint"`
	AggregateRatio float64           `json:"aggregate_ratio"`
	Positions      []tiling.Position `json:"positions"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	Titles []string `json:"titles,omitempty" jsonschema:"Titles to select, in order (default: configured titles)"`
	All    bool     `json:"all,omitempty" jsonschema:"When true, list every real window and ignore titles"`
}

// WindowInfo describes a real window.
type WindowInfo struct {
	ID     uint64 `json:"id"`
	Title  string `json:"title"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
	Missing []string     `json:"missing,omitempty"`
}

// ArrangeWindowsInput is the input for the arrange_windows tool.
type ArrangeWindowsInput struct {
	DryRun bool `json:"dry_run,omitempty" jsonschema:"When true, compute the arrangement without moving any window"`
}

// PlacementInfo is one window's assigned bounds.
type PlacementInfo struct {
	ID     uint64 `json:"id"`
	Title  string `json:"title"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Placed bool   `json:"placed"`
	Error  string `json:"error,omitempty"`
}

// ArrangeWindowsOutput is the output for the arrange_windows tool.
type ArrangeWindowsOutput struct {
	RunID      string            `json:"run_id"`
	DryRun     bool              `json:"dry_run"`
	Rows       int               `json:"rows"`
	Cols       int               `json:"cols"`
	Size       tiling.Size       `json:"size"`
	Constraint tiling.Constraint `json:"constraint"`
	Placements []PlacementInfo   `json:"placements"`
	Failures   int               `json:"failures"`
}
