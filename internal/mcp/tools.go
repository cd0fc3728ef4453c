package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/tilefit/internal/arrange"
	"github.com/1broseidon/tilefit/internal/catalog"
	"github.com/1broseidon/tilefit/internal/platform"
	"github.com/1broseidon/tilefit/internal/tiling"
)

func (s *Server) handleComputeLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args ComputeLayoutInput) (*mcpsdk.CallToolResult, ComputeLayoutOutput, error) {
	overlap := tiling.DefaultOverlap
	if args.Overlap != nil {
		overlap = *args.Overlap
	}

	screen := tiling.Region{Width: args.ScreenWidth, Height: args.ScreenHeight}
	grid := tiling.Grid{Rows: args.Rows, Cols: args.Cols}

	ratio, err := tiling.AggregateRatio(args.Windows)
	if err != nil {
		return nil, ComputeLayoutOutput{}, err
	}
	result, err := tiling.Compute(screen, grid, args.Windows, overlap)
	if err != nil {
		return nil, ComputeLayoutOutput{}, err
	}

	s.logger.Debug("compute_layout", "grid", fmt.Sprintf("%dx%d", grid.Rows, grid.Cols),
		"size", fmt.Sprintf("%dx%d", result.Size.Width, result.Size.Height))

	return nil, ComputeLayoutOutput{
		Size:           result.Size,
		Constraint:     result.Constraint,
		AggregateRatio: ratio,
		Positions:      result.Positions,
	}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	if s.backend == nil {
		return nil, ListWindowsOutput{}, errNoBackend
	}

	s.mu.Lock()
	windows, err := s.backend.Windows()
	s.mu.Unlock()
	if err != nil {
		return nil, ListWindowsOutput{}, fmt.Errorf("failed to enumerate windows: %w", err)
	}

	out := ListWindowsOutput{Windows: []WindowInfo{}}
	if args.All {
		for _, w := range windows {
			out.Windows = append(out.Windows, windowInfo(w))
		}
		return nil, out, nil
	}

	titles := args.Titles
	if len(titles) == 0 {
		titles = s.config.Titles
	}

	byID := make(map[platform.WindowID]platform.Window, len(windows))
	for _, w := range windows {
		byID[w.ID] = w
	}
	for _, rec := range catalog.Select(windows, titles) {
		out.Windows = append(out.Windows, windowInfo(byID[rec.ID]))
	}
	out.Missing = catalog.Missing(windows, titles)

	return nil, out, nil
}

func (s *Server) handleArrangeWindows(ctx context.Context, _ *mcpsdk.CallToolRequest, args ArrangeWindowsInput) (*mcpsdk.CallToolResult, ArrangeWindowsOutput, error) {
	if s.arranger == nil {
		return nil, ArrangeWindowsOutput{}, errNoBackend
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	plan, err := s.arranger.Plan(ctx)
	if err != nil {
		return nil, ArrangeWindowsOutput{}, err
	}

	out := ArrangeWindowsOutput{
		RunID:      plan.RunID,
		DryRun:     args.DryRun,
		Rows:       plan.Grid.Rows,
		Cols:       plan.Grid.Cols,
		Size:       plan.Layout.Size,
		Constraint: plan.Layout.Constraint,
	}

	if args.DryRun {
		for _, p := range plan.Placements() {
			out.Placements = append(out.Placements, placementInfo(p, nil))
		}
		return nil, out, nil
	}

	report := s.arranger.Apply(ctx, plan)
	failed := make(map[platform.WindowID]*arrange.PlacementError, len(report.Failed))
	for _, f := range report.Failed {
		failed[f.ID] = f
	}
	for _, p := range plan.Placements() {
		info := placementInfo(p, failed[p.Record.ID])
		if !info.Placed {
			out.Failures++
		}
		out.Placements = append(out.Placements, info)
	}

	return nil, out, nil
}

func windowInfo(w platform.Window) WindowInfo {
	return WindowInfo{
		ID:     uint64(w.ID),
		Title:  w.Title,
		X:      w.Bounds.X,
		Y:      w.Bounds.Y,
		Width:  w.Bounds.Width,
		Height: w.Bounds.Height,
	}
}

func placementInfo(p arrange.Placement, perr *arrange.PlacementError) PlacementInfo {
	info := PlacementInfo{
		ID:     uint64(p.Record.ID),
		Title:  p.Record.Title,
		X:      p.Bounds.X,
		Y:      p.Bounds.Y,
		Width:  p.Bounds.Width,
		Height: p.Bounds.Height,
		Placed: perr == nil,
	}
	if perr != nil {
		info.Error = perr.Err.Error()
	}
	return info
}
