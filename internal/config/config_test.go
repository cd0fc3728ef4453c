package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/tilefit/internal/tiling"
)

func writeConfig(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, tiling.Grid{Rows: 3, Cols: 3}, cfg.TilingGrid())
	assert.Equal(t, 48, cfg.ReservedChrome)
	assert.Equal(t, tiling.DefaultOverlap, cfg.CellOverlap)
	assert.Equal(t, 3, cfg.Runs)
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), res.Config)
	assert.Empty(t, res.File)
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, "# empty")

	res, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), res.Config)
	assert.Equal(t, path, res.File)
}

func TestLoadFromPath_OverridesDefaults(t *testing.T) {
	path := writeConfig(t,
		"titles: [Terminal, Editor]",
		"reserved_chrome: 32",
		"grid:",
		"  rows: 1",
		"  cols: 2",
		"cell_overlap: 0",
		"runs: 1",
		"log_level: debug",
		`display: ":1"`,
	)

	res, err := LoadFromPath(path)
	require.NoError(t, err)
	cfg := res.Config
	assert.Equal(t, []string{"Terminal", "Editor"}, cfg.Titles)
	assert.Equal(t, 32, cfg.ReservedChrome)
	assert.Equal(t, tiling.Grid{Rows: 1, Cols: 2}, cfg.TilingGrid())
	assert.Equal(t, 0, cfg.CellOverlap)
	assert.Equal(t, 1, cfg.Runs)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":1", cfg.Display)
	assert.Equal(t, 4, res.Lines["grid.rows"])
}

func TestLoadFromPath_PartialGridKeepsOtherDefault(t *testing.T) {
	path := writeConfig(t,
		"grid:",
		"  rows: 2",
	)

	res, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, tiling.Grid{Rows: 2, Cols: DefaultCols}, res.Config.TilingGrid())
}

func TestLoadFromPath_UnknownKeyRejected(t *testing.T) {
	path := writeConfig(t, "gap_size: 8")

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gap_size")
}

func TestLoadFromPath_ValidationErrorHasLine(t *testing.T) {
	path := writeConfig(t,
		"reserved_chrome: 48",
		"grid:",
		"  rows: 0",
		"  cols: 3",
	)

	_, err := LoadFromPath(path)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "grid.rows", ve.Path)
	assert.Equal(t, 3, ve.Line)
	assert.Contains(t, err.Error(), path+":3:")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"blank title", func(c *Config) { c.Titles = []string{" "} }, "titles[0]"},
		{"negative chrome", func(c *Config) { c.ReservedChrome = -1 }, "reserved_chrome"},
		{"zero rows", func(c *Config) { c.Grid.Rows = 0 }, "grid.rows"},
		{"zero cols", func(c *Config) { c.Grid.Cols = 0 }, "grid.cols"},
		{"titles do not fill grid", func(c *Config) { c.Titles = []string{"a", "b"} }, "grid"},
		{"negative overlap", func(c *Config) { c.CellOverlap = -1 }, "cell_overlap"},
		{"zero runs", func(c *Config) { c.Runs = 0 }, "runs"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.path, ve.Path)
		})
	}
}

func TestDefaultConfigPath_EnvOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom.yaml")

	path, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yaml", path)
}

func TestMarshal_RoundTripsThroughLoader(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Titles = []string{"a"}
	cfg.Grid = GridConfig{Rows: 1, Cols: 1}

	data, err := Marshal(cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	res, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, res.Config)
}

func TestSaveToPath_CreatesDirectoryAndValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Grid = GridConfig{Rows: 1, Cols: 2}
	cfg.Titles = []string{"left", "right"}
	require.NoError(t, SaveToPath(cfg, path))

	res, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, res.Config)

	bad := DefaultConfig()
	bad.Runs = 0
	var ve *ValidationError
	require.ErrorAs(t, SaveToPath(bad, filepath.Join(t.TempDir(), "bad.yaml")), &ve)
	assert.Equal(t, "runs", ve.Path)
}

func TestClone_CopiesTitles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Titles = []string{"a", "b"}

	clone := cfg.Clone()
	clone.Titles[0] = "changed"
	clone.Grid.Rows = 9

	assert.Equal(t, "a", cfg.Titles[0])
	assert.Equal(t, DefaultRows, cfg.Grid.Rows)
}
