package tiling

import (
	"errors"
	"fmt"
)

// DefaultOverlap is the number of pixels neighbouring cells share along each
// axis. One pixel lets window borders butt against each other.
const DefaultOverlap = 1

// ErrInvalidInput is returned when layout inputs violate a precondition.
var ErrInvalidInput = errors.New("invalid layout input")

// Size is a window or cell bounding box in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Region is the usable screen area available for tiling.
type Region struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Grid is the fixed row and column split of a region.
type Grid struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Cells returns the number of cells in the grid.
func (g Grid) Cells() int {
	return g.Rows * g.Cols
}

// Position is a top-left coordinate relative to the region origin.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Constraint names the screen dimension that limits the cell size.
type Constraint string

const (
	ConstraintWidth  Constraint = "width"
	ConstraintHeight Constraint = "height"
)

// Result is a computed layout: one uniform size and a row-major list of
// cell positions.
type Result struct {
	Size       Size       `json:"size"`
	Positions  []Position `json:"positions"`
	Constraint Constraint `json:"constraint"`
}

// AggregateRatio returns sum(widths)/sum(heights) over sizes.
func AggregateRatio(sizes []Size) (float64, error) {
	if len(sizes) == 0 {
		return 0, fmt.Errorf("%w: no window sizes", ErrInvalidInput)
	}

	var totalWidth, totalHeight int
	for i, s := range sizes {
		if s.Width <= 0 || s.Height <= 0 {
			return 0, fmt.Errorf("%w: window %d has size %dx%d", ErrInvalidInput, i, s.Width, s.Height)
		}
		totalWidth += s.Width
		totalHeight += s.Height
	}

	return float64(totalWidth) / float64(totalHeight), nil
}

// Constrained reports which screen dimension limits the uniform cell size
// when sizes are arranged in grid on screen.
func Constrained(screen Region, grid Grid, sizes []Size) (Constraint, error) {
	if err := validateFrame(screen, grid); err != nil {
		return "", err
	}
	ratio, err := AggregateRatio(sizes)
	if err != nil {
		return "", err
	}
	return constraintFor(screen, grid, ratio), nil
}

func constraintFor(screen Region, grid Grid, ratio float64) Constraint {
	adjusted := ratio * float64(grid.Cols) / float64(grid.Rows)
	screenRatio := float64(screen.Width) / float64(screen.Height)
	if adjusted > screenRatio {
		return ConstraintWidth
	}
	return ConstraintHeight
}

// TargetSize computes the single cell size that fills the grid exactly along
// the constraining dimension and keeps the aggregate aspect ratio of sizes
// along the other.
func TargetSize(screen Region, grid Grid, sizes []Size) (Size, error) {
	if err := validateFrame(screen, grid); err != nil {
		return Size{}, err
	}
	ratio, err := AggregateRatio(sizes)
	if err != nil {
		return Size{}, err
	}

	var target Size
	switch constraintFor(screen, grid, ratio) {
	case ConstraintWidth:
		width := float64(screen.Width) / float64(grid.Cols)
		target.Width = int(width)
		target.Height = int(float64(target.Width) / ratio)
	default:
		height := float64(screen.Height) / float64(grid.Rows)
		target.Height = int(height)
		target.Width = int(float64(target.Height) * ratio)
	}

	if target.Width <= 0 || target.Height <= 0 {
		return Size{}, fmt.Errorf(
			"%w: region %dx%d too small for %dx%d grid at ratio %.3f (cell=%dx%d)",
			ErrInvalidInput, screen.Width, screen.Height, grid.Rows, grid.Cols, ratio, target.Width, target.Height,
		)
	}

	return target, nil
}

// CellPositions lays out rows*cols cells of the given size, centered in
// screen and pinned to the top-left when the grid is larger than the screen.
// Each step between cells is the cell size minus overlap.
func CellPositions(screen Region, grid Grid, cell Size, overlap int) ([]Position, error) {
	if err := validateFrame(screen, grid); err != nil {
		return nil, err
	}
	if cell.Width <= 0 || cell.Height <= 0 {
		return nil, fmt.Errorf("%w: cell size %dx%d", ErrInvalidInput, cell.Width, cell.Height)
	}
	if overlap < 0 || overlap >= cell.Width || overlap >= cell.Height {
		return nil, fmt.Errorf("%w: overlap %d for cell %dx%d", ErrInvalidInput, overlap, cell.Width, cell.Height)
	}

	occupiedWidth := grid.Cols * cell.Width
	occupiedHeight := grid.Rows * cell.Height

	offsetX := max(0, (screen.Width-occupiedWidth)/2)
	offsetY := max(0, (screen.Height-occupiedHeight)/2)

	stepX := cell.Width - overlap
	stepY := cell.Height - overlap

	positions := make([]Position, grid.Cells())
	for i := range positions {
		row := i / grid.Cols
		col := i % grid.Cols
		positions[i] = Position{
			X: offsetX + col*stepX,
			Y: offsetY + row*stepY,
		}
	}

	return positions, nil
}

// Compute runs TargetSize and CellPositions in sequence.
func Compute(screen Region, grid Grid, sizes []Size, overlap int) (Result, error) {
	target, err := TargetSize(screen, grid, sizes)
	if err != nil {
		return Result{}, err
	}
	positions, err := CellPositions(screen, grid, target, overlap)
	if err != nil {
		return Result{}, err
	}
	constraint, err := Constrained(screen, grid, sizes)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Size:       target,
		Positions:  positions,
		Constraint: constraint,
	}, nil
}

func validateFrame(screen Region, grid Grid) error {
	if grid.Rows <= 0 || grid.Cols <= 0 {
		return fmt.Errorf("%w: grid rows=%d cols=%d", ErrInvalidInput, grid.Rows, grid.Cols)
	}
	if screen.Width <= 0 || screen.Height <= 0 {
		return fmt.Errorf("%w: screen region %dx%d", ErrInvalidInput, screen.Width, screen.Height)
	}
	return nil
}
