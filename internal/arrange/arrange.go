// Package arrange runs the discover, compute and place sequence against a
// platform backend.
package arrange

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/1broseidon/tilefit/internal/catalog"
	"github.com/1broseidon/tilefit/internal/config"
	"github.com/1broseidon/tilefit/internal/platform"
	"github.com/1broseidon/tilefit/internal/tiling"
)

var (
	// ErrCountMismatch is returned when the selected windows do not fill the grid.
	ErrCountMismatch = errors.New("window count does not match grid")
	// ErrNoWindows is returned when nothing matched the configured titles.
	ErrNoWindows = fmt.Errorf("%w: no matching windows", tiling.ErrInvalidInput)
)

// PlacementError records a window the backend failed to move.
type PlacementError struct {
	Title string
	ID    platform.WindowID
	Err   error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("place %q (0x%x): %v", e.Title, uint64(e.ID), e.Err)
}

func (e *PlacementError) Unwrap() error {
	return e.Err
}

// Placement is one window and the absolute bounds assigned to it.
type Placement struct {
	Record catalog.Record `json:"window"`
	Bounds platform.Rect  `json:"bounds"`
}

// Plan is a computed arrangement that has not been applied yet.
type Plan struct {
	RunID   string           `json:"run_id"`
	Display platform.Display `json:"display"`
	Region  platform.Rect    `json:"region"`
	Grid    tiling.Grid      `json:"grid"`
	Records []catalog.Record `json:"windows"`
	Ratio   float64          `json:"aggregate_ratio"`
	Layout  tiling.Result    `json:"layout"`
}

// Placements pairs each record with its cell, offset by the region origin.
func (p *Plan) Placements() []Placement {
	placements := make([]Placement, len(p.Records))
	for i, rec := range p.Records {
		pos := p.Layout.Positions[i]
		placements[i] = Placement{
			Record: rec,
			Bounds: platform.Rect{
				X:      p.Region.X + pos.X,
				Y:      p.Region.Y + pos.Y,
				Width:  p.Layout.Size.Width,
				Height: p.Layout.Size.Height,
			},
		}
	}
	return placements
}

// Report is the outcome of applying a plan.
type Report struct {
	Plan   *Plan             `json:"plan"`
	Placed []Placement       `json:"placed"`
	Failed []*PlacementError `json:"-"`
}

// Err joins every placement failure, or returns nil.
func (r *Report) Err() error {
	if r == nil || len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failed))
	for i, f := range r.Failed {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Arranger ties a backend to a configuration.
type Arranger struct {
	backend  platform.Backend
	config   *config.Config
	logger   *log.Logger
	newRunID func() string
}

// New creates an arranger. A nil logger uses log.Default().
func New(backend platform.Backend, cfg *config.Config, logger *log.Logger) *Arranger {
	if logger == nil {
		logger = log.Default()
	}
	return &Arranger{
		backend:  backend,
		config:   cfg,
		logger:   logger,
		newRunID: uuid.NewString,
	}
}

// Discover returns every real window and the subset selected by the
// configured titles.
func (a *Arranger) Discover() ([]platform.Window, []catalog.Record, error) {
	windows, err := a.backend.Windows()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to enumerate windows: %w", err)
	}
	return windows, catalog.Select(windows, a.config.Titles), nil
}

// Plan discovers windows and computes their layout without moving anything.
func (a *Arranger) Plan(ctx context.Context) (*Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := a.newRunID()
	logger := a.logger.With("run", shortID(runID))

	windows, records, err := a.Discover()
	if err != nil {
		return nil, err
	}
	logger.Debug("enumerated windows", "real", len(windows), "selected", len(records))
	for i, rec := range records {
		logger.Info("window", "index", i, "title", rec.Title, "id", fmt.Sprintf("0x%x", uint64(rec.ID)),
			"size", fmt.Sprintf("%dx%d", rec.Size.Width, rec.Size.Height))
	}

	if missing := catalog.Missing(windows, a.config.Titles); len(missing) > 0 {
		logger.Warn("titles not found", "titles", strings.Join(missing, ", "))
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w (titles: %s)", ErrNoWindows, describeTitles(a.config.Titles))
	}

	grid := a.config.TilingGrid()
	if len(records) != grid.Cells() {
		return nil, fmt.Errorf("%w: found %d windows for a %dx%d grid (%d cells)",
			ErrCountMismatch, len(records), grid.Rows, grid.Cols, grid.Cells())
	}

	display, err := a.backend.PrimaryDisplay()
	if err != nil {
		return nil, fmt.Errorf("failed to get primary display: %w", err)
	}
	region, err := platform.UsableRegion(display, a.config.ReservedChrome)
	if err != nil {
		return nil, err
	}
	logger.Info("screen", "display", display.Name,
		"region", fmt.Sprintf("%dx%d at %d,%d", region.Width, region.Height, region.X, region.Y),
		"reserved_chrome", a.config.ReservedChrome)

	sizes := catalog.Sizes(records)
	ratio, err := tiling.AggregateRatio(sizes)
	if err != nil {
		return nil, err
	}
	result, err := tiling.Compute(
		tiling.Region{Width: region.Width, Height: region.Height},
		grid,
		sizes,
		a.config.CellOverlap,
	)
	if err != nil {
		return nil, err
	}
	logger.Info("layout", "grid", fmt.Sprintf("%dx%d", grid.Rows, grid.Cols),
		"ratio", fmt.Sprintf("%.3f", ratio), "constraint", result.Constraint,
		"size", fmt.Sprintf("%dx%d", result.Size.Width, result.Size.Height))
	logger.Debug("positions", "positions", formatPositions(result.Positions))

	return &Plan{
		RunID:   runID,
		Display: display,
		Region:  region,
		Grid:    grid,
		Records: records,
		Ratio:   ratio,
		Layout:  result,
	}, nil
}

// Apply moves every window in plan. A failed window is recorded and the rest
// are still placed. Cancelling ctx marks the remaining windows as failed.
func (a *Arranger) Apply(ctx context.Context, plan *Plan) *Report {
	logger := a.logger.With("run", shortID(plan.RunID))
	report := &Report{Plan: plan}

	for _, p := range plan.Placements() {
		if err := ctx.Err(); err != nil {
			report.Failed = append(report.Failed, &PlacementError{Title: p.Record.Title, ID: p.Record.ID, Err: err})
			continue
		}

		if err := a.backend.MoveResize(p.Record.ID, p.Bounds); err != nil {
			perr := &PlacementError{Title: p.Record.Title, ID: p.Record.ID, Err: err}
			logger.Error("placement failed", "title", p.Record.Title, "err", err)
			report.Failed = append(report.Failed, perr)
			continue
		}

		logger.Info("updated", "title", p.Record.Title,
			"bounds", fmt.Sprintf("%dx%d at %d,%d", p.Bounds.Width, p.Bounds.Height, p.Bounds.X, p.Bounds.Y))
		report.Placed = append(report.Placed, p)
	}

	return report
}

// Run plans and applies one arrangement.
func (a *Arranger) Run(ctx context.Context) (*Report, error) {
	plan, err := a.Plan(ctx)
	if err != nil {
		return nil, err
	}
	return a.Apply(ctx, plan), nil
}

// RunN repeats Run n times. Windows that resize themselves after the first
// pass usually settle by the second or third. It stops at the first planning
// error; placement failures are kept in the reports.
func (a *Arranger) RunN(ctx context.Context, n int) ([]*Report, error) {
	reports := make([]*Report, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		a.logger.Debug("pass", "n", i+1, "of", n)

		report, err := a.Run(ctx)
		if err != nil {
			return reports, fmt.Errorf("pass %d: %w", i+1, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func describeTitles(titles []string) string {
	if len(titles) == 0 {
		return "any"
	}
	quoted := make([]string, len(titles))
	for i, t := range titles {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return strings.Join(quoted, ", ")
}

func formatPositions(positions []tiling.Position) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}
