// Package tui holds the interactive setup form and the terminal renderings
// of plans and config changes.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/1broseidon/tilefit/internal/config"
	"github.com/1broseidon/tilefit/internal/platform"
)

// SetupValues are the form-bound fields. huh inputs bind strings, so the
// numeric fields are converted in Apply.
type SetupValues struct {
	Titles         []string
	Rows           string
	Cols           string
	ReservedChrome string
	CellOverlap    string
	Runs           string
}

// NewSetupValues seeds the form from cfg.
func NewSetupValues(cfg *config.Config) *SetupValues {
	return &SetupValues{
		Titles:         append([]string{}, cfg.Titles...),
		Rows:           strconv.Itoa(cfg.Grid.Rows),
		Cols:           strconv.Itoa(cfg.Grid.Cols),
		ReservedChrome: strconv.Itoa(cfg.ReservedChrome),
		CellOverlap:    strconv.Itoa(cfg.CellOverlap),
		Runs:           strconv.Itoa(cfg.Runs),
	}
}

// Apply returns a copy of base with the form values applied. The result is
// validated.
func (v *SetupValues) Apply(base *config.Config) (*config.Config, error) {
	cfg := base.Clone()
	cfg.Titles = append([]string{}, v.Titles...)

	fields := []struct {
		name string
		raw  string
		dst  *int
	}{
		{"grid.rows", v.Rows, &cfg.Grid.Rows},
		{"grid.cols", v.Cols, &cfg.Grid.Cols},
		{"reserved_chrome", v.ReservedChrome, &cfg.ReservedChrome},
		{"cell_overlap", v.CellOverlap, &cfg.CellOverlap},
		{"runs", v.Runs, &cfg.Runs},
	}
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f.raw))
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", f.name, f.raw)
		}
		*f.dst = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TitleOptions builds one option per distinct window title, in enumeration
// order. Titles shared by several windows show the count.
func TitleOptions(windows []platform.Window) []huh.Option[string] {
	counts := map[string]int{}
	var order []string
	for _, w := range windows {
		if counts[w.Title] == 0 {
			order = append(order, w.Title)
		}
		counts[w.Title]++
	}

	opts := make([]huh.Option[string], 0, len(order))
	for _, title := range order {
		label := title
		if n := counts[title]; n > 1 {
			label = fmt.Sprintf("%s (%d windows)", title, n)
		}
		opts = append(opts, huh.NewOption(label, title))
	}
	return opts
}

func validateInt(minimum int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		if n < minimum {
			return fmt.Errorf("must be >= %d", minimum)
		}
		return nil
	}
}

// NewSetupForm builds the setup form over values. windows supplies the
// title choices; without any, the title step is skipped.
func NewSetupForm(values *SetupValues, windows []platform.Window) *huh.Form {
	var groups []*huh.Group

	if opts := TitleOptions(windows); len(opts) > 0 {
		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[string]().
				Key("titles").
				Title("Windows to tile").
				Description("Selected titles are placed in the order listed. Select none to tile every window.").
				Options(opts...).
				Value(&values.Titles),
		))
	}

	groups = append(groups,
		huh.NewGroup(
			huh.NewInput().
				Key("rows").
				Title("Grid rows").
				Validate(validateInt(1)).
				Value(&values.Rows),
			huh.NewInput().
				Key("cols").
				Title("Grid columns").
				Validate(validateInt(1)).
				Value(&values.Cols),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("reserved_chrome").
				Title("Reserved chrome").
				Description("Pixels kept free at the bottom for a taskbar or panel").
				Validate(validateInt(0)).
				Value(&values.ReservedChrome),
			huh.NewInput().
				Key("cell_overlap").
				Title("Cell overlap").
				Description("Pixels neighbouring windows share").
				Validate(validateInt(0)).
				Value(&values.CellOverlap),
			huh.NewInput().
				Key("runs").
				Title("Passes").
				Description("How many times to repeat the arrangement").
				Validate(validateInt(1)).
				Value(&values.Runs),
		),
	)

	return huh.NewForm(groups...).WithShowHelp(true).WithShowErrors(true)
}

// RunSetup runs the setup form on the terminal and returns the edited
// config. The form draws on out so stdout stays free for results.
func RunSetup(ctx context.Context, base *config.Config, windows []platform.Window, out io.Writer) (*config.Config, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("setup requires an interactive terminal")
	}

	values := NewSetupValues(base)
	form := NewSetupForm(values, windows).WithProgramOptions(tea.WithOutput(out))
	if err := form.RunWithContext(ctx); err != nil {
		return nil, err
	}
	return values.Apply(base)
}

// Confirm asks a yes/no question on the terminal.
func Confirm(ctx context.Context, title string, out io.Writer) (bool, error) {
	var ok bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Affirmative("Save").Negative("Cancel").Value(&ok),
	)).WithProgramOptions(tea.WithOutput(out)).RunWithContext(ctx)
	return ok, err
}
