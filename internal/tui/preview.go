package tui

import (
	"fmt"
	"strings"

	"github.com/1broseidon/tilefit/internal/arrange"
)

// Summarize returns a one-line description of a plan.
func Summarize(plan *arrange.Plan) string {
	if plan == nil {
		return ""
	}
	size := plan.Layout.Size
	return fmt.Sprintf("%d windows • %dx%d grid • %d×%d px each • %s-constrained",
		len(plan.Records), plan.Grid.Rows, plan.Grid.Cols, size.Width, size.Height, plan.Layout.Constraint)
}

// RenderPreview draws the plan's cells, numbered in placement order, on a
// width x height character canvas scaled from the usable region.
func RenderPreview(plan *arrange.Plan, width, height int) []string {
	if plan == nil || width < 5 || height < 3 || plan.Region.Width < 1 || plan.Region.Height < 1 {
		return emptyCanvas(width, height)
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for i, p := range plan.Placements() {
		cell := cellRect{
			x:      p.Bounds.X - plan.Region.X,
			y:      p.Bounds.Y - plan.Region.Y,
			width:  p.Bounds.Width,
			height: p.Bounds.Height,
		}
		drawTile(canvas, cell, i+1, plan.Region.Width, plan.Region.Height, width, height)
	}

	drawBorder(canvas, width, height)

	lines := make([]string, height)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

type cellRect struct {
	x, y, width, height int
}

func drawTile(canvas [][]rune, rect cellRect, num int, regionW, regionH, canvasW, canvasH int) {
	x1 := rect.x * canvasW / regionW
	y1 := rect.y * canvasH / regionH
	x2 := (rect.x + rect.width) * canvasW / regionW
	y2 := (rect.y + rect.height) * canvasH / regionH

	// Keep inside the outer border.
	x1 = max(x1, 1)
	y1 = max(y1, 1)
	x2 = min(x2, canvasW-2)
	y2 = min(y2, canvasH-2)

	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x <= x2; x++ {
		canvas[y1][x] = '─'
		canvas[y2][x] = '─'
	}
	for y := y1; y <= y2; y++ {
		canvas[y][x1] = '│'
		canvas[y][x2] = '│'
	}
	canvas[y1][x1] = '┌'
	canvas[y1][x2] = '┐'
	canvas[y2][x1] = '└'
	canvas[y2][x2] = '┘'

	centerY := (y1 + y2) / 2
	centerX := (x1 + x2) / 2
	if centerY > y1 && centerY < y2 && centerX > x1 && centerX < x2 {
		label := fmt.Sprintf("%d", num)
		startX := centerX - len(label)/2
		for i, r := range label {
			if startX+i > x1 && startX+i < x2 {
				canvas[centerY][startX+i] = r
			}
		}
	}
}

func drawBorder(canvas [][]rune, width, height int) {
	for x := 0; x < width; x++ {
		canvas[0][x] = '═'
		canvas[height-1][x] = '═'
	}
	for y := 0; y < height; y++ {
		canvas[y][0] = '║'
		canvas[y][width-1] = '║'
	}
	canvas[0][0] = '╔'
	canvas[0][width-1] = '╗'
	canvas[height-1][0] = '╚'
	canvas[height-1][width-1] = '╝'
}

func emptyCanvas(width, height int) []string {
	if width < 0 || height < 0 {
		return nil
	}
	lines := make([]string, height)
	empty := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = empty
	}
	return lines
}
