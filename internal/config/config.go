package config

import (
	"fmt"
	"strings"

	"github.com/1broseidon/tilefit/internal/tiling"
)

// GridConfig is the fixed row and column count of the layout.
type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// Config holds the application configuration.
type Config struct {
	// Titles lists the window titles to arrange, in placement order.
	// Empty means every real window.
	Titles []string `yaml:"titles"`
	// ReservedChrome is the number of pixels kept free at the bottom of the
	// display for a taskbar or panel.
	ReservedChrome int        `yaml:"reserved_chrome"`
	Grid           GridConfig `yaml:"grid"`
	CellOverlap    int        `yaml:"cell_overlap"`
	Runs           int        `yaml:"runs"`
	LogLevel       string     `yaml:"log_level"`
	Display        string     `yaml:"display,omitempty"`
}

const (
	DefaultReservedChrome = 48 // common taskbar heights: 72, 48, 32
	DefaultRows           = 3
	DefaultCols           = 3
	DefaultRuns           = 3
)

func DefaultConfig() *Config {
	return &Config{
		Titles:         []string{},
		ReservedChrome: DefaultReservedChrome,
		Grid: GridConfig{
			Rows: DefaultRows,
			Cols: DefaultCols,
		},
		CellOverlap: tiling.DefaultOverlap,
		Runs:        DefaultRuns,
		LogLevel:    "info",
	}
}

// TilingGrid returns the configured grid for the layout engine.
func (c *Config) TilingGrid() tiling.Grid {
	return tiling.Grid{Rows: c.Grid.Rows, Cols: c.Grid.Cols}
}

// ValidationError reports an invalid configuration value and, when known,
// where it was set.
type ValidationError struct {
	Path string
	File string
	Line int
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %v", e.File, e.Line, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	for i, title := range c.Titles {
		if strings.TrimSpace(title) == "" {
			return &ValidationError{Path: fmt.Sprintf("titles[%d]", i), Err: fmt.Errorf("title must not be empty")}
		}
	}
	if c.ReservedChrome < 0 {
		return &ValidationError{Path: "reserved_chrome", Err: fmt.Errorf("reserved_chrome must be >= 0")}
	}
	if c.Grid.Rows < 1 {
		return &ValidationError{Path: "grid.rows", Err: fmt.Errorf("rows must be >= 1")}
	}
	if c.Grid.Cols < 1 {
		return &ValidationError{Path: "grid.cols", Err: fmt.Errorf("cols must be >= 1")}
	}
	if len(c.Titles) > 0 && len(c.Titles) != c.Grid.Rows*c.Grid.Cols {
		return &ValidationError{Path: "grid", Err: fmt.Errorf(
			"%dx%d grid has %d cells but %d titles are listed",
			c.Grid.Rows, c.Grid.Cols, c.Grid.Rows*c.Grid.Cols, len(c.Titles),
		)}
	}
	if c.CellOverlap < 0 {
		return &ValidationError{Path: "cell_overlap", Err: fmt.Errorf("cell_overlap must be >= 0")}
	}
	if c.Runs < 1 {
		return &ValidationError{Path: "runs", Err: fmt.Errorf("runs must be >= 1")}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	return nil
}
