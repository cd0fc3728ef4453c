package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/tilefit/internal/config"
)

// DiffKind classifies a line of a config diff.
type DiffKind int

const (
	DiffContext DiffKind = iota
	DiffRemoved
	DiffAdded
)

// DiffLine is one line of a config diff.
type DiffLine struct {
	Kind DiffKind
	Text string
}

var (
	addStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	rmStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	ctxStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// DiffConfigs returns the changed YAML lines between two configs with two
// lines of context, or nil when they render identically.
func DiffConfigs(original, current *config.Config) []DiffLine {
	if original == nil || current == nil {
		return nil
	}

	origBytes, err := config.Marshal(original)
	if err != nil {
		return nil
	}
	currBytes, err := config.Marshal(current)
	if err != nil {
		return nil
	}

	origStr := strings.TrimSpace(string(origBytes))
	currStr := strings.TrimSpace(string(currBytes))
	if origStr == currStr {
		return nil
	}

	return lcsDiff(strings.Split(origStr, "\n"), strings.Split(currStr, "\n"))
}

// RenderDiff colours a diff for the terminal.
func RenderDiff(lines []DiffLine) string {
	out := make([]string, len(lines))
	for i, dl := range lines {
		switch dl.Kind {
		case DiffAdded:
			out[i] = addStyle.Render("+ " + dl.Text)
		case DiffRemoved:
			out[i] = rmStyle.Render("- " + dl.Text)
		default:
			out[i] = ctxStyle.Render("  " + dl.Text)
		}
	}
	return strings.Join(out, "\n")
}

// lcsDiff computes a diff using longest common subsequence.
func lcsDiff(a, b []string) []DiffLine {
	m, n := len(a), len(b)

	tbl := make([][]int, m+1)
	for i := range tbl {
		tbl[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if a[i] == b[j] {
				tbl[i][j] = tbl[i+1][j+1] + 1
			} else if tbl[i+1][j] >= tbl[i][j+1] {
				tbl[i][j] = tbl[i+1][j]
			} else {
				tbl[i][j] = tbl[i][j+1]
			}
		}
	}

	var all []DiffLine
	i, j := 0, 0
	for i < m && j < n {
		if a[i] == b[j] {
			all = append(all, DiffLine{Kind: DiffContext, Text: a[i]})
			i++
			j++
		} else if tbl[i+1][j] >= tbl[i][j+1] {
			all = append(all, DiffLine{Kind: DiffRemoved, Text: a[i]})
			i++
		} else {
			all = append(all, DiffLine{Kind: DiffAdded, Text: b[j]})
			j++
		}
	}
	for ; i < m; i++ {
		all = append(all, DiffLine{Kind: DiffRemoved, Text: a[i]})
	}
	for ; j < n; j++ {
		all = append(all, DiffLine{Kind: DiffAdded, Text: b[j]})
	}

	return filterDiffContext(all, 2)
}

// filterDiffContext keeps changed lines and ctx surrounding context lines.
func filterDiffContext(lines []DiffLine, ctx int) []DiffLine {
	if len(lines) == 0 {
		return nil
	}

	keep := make([]bool, len(lines))
	for i, l := range lines {
		if l.Kind == DiffContext {
			continue
		}
		lo := max(i-ctx, 0)
		hi := min(i+ctx, len(lines)-1)
		for j := lo; j <= hi; j++ {
			keep[j] = true
		}
	}

	var result []DiffLine
	prevKept := true
	hasChange := false
	for i, l := range lines {
		if !keep[i] {
			prevKept = false
			continue
		}
		if !prevKept {
			result = append(result, DiffLine{Kind: DiffContext, Text: "..."})
		}
		result = append(result, l)
		if l.Kind != DiffContext {
			hasChange = true
		}
		prevKept = true
	}

	if !hasChange {
		return nil
	}
	return result
}
