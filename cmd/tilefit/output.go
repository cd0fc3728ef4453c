package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/1broseidon/tilefit/internal/arrange"
	"github.com/1broseidon/tilefit/internal/platform"
)

var headingStyle = lipgloss.NewStyle().Bold(true)

func heading(w io.Writer, text string) {
	fmt.Fprintln(w, headingStyle.Render(text))
}

// printPlan writes the value of every stage: the selected windows, the usable
// screen, the ratio and target size, and the cell positions.
func printPlan(w io.Writer, plan *arrange.Plan) {
	if plan == nil {
		return
	}

	heading(w, "windows:")
	for i, rec := range plan.Records {
		fmt.Fprintf(w, "  %d  %q  0x%x  %dx%d\n", i, rec.Title, uint64(rec.ID), rec.Size.Width, rec.Size.Height)
	}

	heading(w, "screen_size:")
	fmt.Fprintf(w, "  %dx%d at %d,%d (%s)\n",
		plan.Region.Width, plan.Region.Height, plan.Region.X, plan.Region.Y, plan.Display.Name)

	heading(w, "aggregate_ratio:")
	fmt.Fprintf(w, "  %.4f (%s-constrained)\n", plan.Ratio, plan.Layout.Constraint)

	heading(w, "new_window_size:")
	fmt.Fprintf(w, "  %dx%d\n", plan.Layout.Size.Width, plan.Layout.Size.Height)

	heading(w, "new_positions:")
	cols := max(plan.Grid.Cols, 1)
	for row := 0; row*cols < len(plan.Layout.Positions); row++ {
		end := min((row+1)*cols, len(plan.Layout.Positions))
		parts := make([]string, 0, cols)
		for _, p := range plan.Layout.Positions[row*cols : end] {
			parts = append(parts, fmt.Sprintf("(%d,%d)", p.X, p.Y))
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(parts, " "))
	}
}

// printReport writes one line per window placed or failed.
func printReport(w io.Writer, report *arrange.Report) {
	if report == nil {
		return
	}
	for _, p := range report.Placed {
		fmt.Fprintf(w, "Updated %s successfully\n", p.Record.Title)
	}
	for _, f := range report.Failed {
		fmt.Fprintf(w, "Failed to update %s: %v\n", f.Title, f.Err)
	}
}

// printWindows lists windows as a table. selected maps the windows the
// config would arrange to their slot.
func printWindows(w io.Writer, windows []platform.Window, selected map[platform.WindowID]int) {
	rows := make([][]string, 0, len(windows))
	for _, win := range windows {
		slot := "-"
		if idx, ok := selected[win.ID]; ok {
			slot = strconv.Itoa(idx)
		}
		rows = append(rows, []string{
			fmt.Sprintf("0x%x", uint64(win.ID)),
			win.Title,
			fmt.Sprintf("%dx%d+%d+%d", win.Bounds.Width, win.Bounds.Height, win.Bounds.X, win.Bounds.Y),
			slot,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "GEOMETRY", "SLOT").
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
}
