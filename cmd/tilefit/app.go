package main

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/1broseidon/tilefit/internal/config"
	"github.com/1broseidon/tilefit/internal/platform"
)

// app holds the state shared by every command of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool

	logger  *log.Logger
	cfg     *config.Config
	cfgFile string
	backend platform.Backend

	newBackend func(platform.Options) (platform.Backend, error)
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:     stdout,
		stderr:     stderr,
		logger:     newLogger(stderr, log.InfoLevel),
		newBackend: platform.NewBackend,
	}
}

// resolveConfigPath returns --config, or the default location.
func (a *app) resolveConfigPath() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	return config.DefaultConfigPath()
}

// loadConfig reads the config once and applies its log level unless -v was given.
func (a *app) loadConfig() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}

	path, err := a.resolveConfigPath()
	if err != nil {
		return nil, err
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}

	if !a.verbose {
		level, err := parseLevel(res.Config.LogLevel)
		if err != nil {
			return nil, err
		}
		a.logger.SetLevel(level)
	}

	a.cfg = res.Config
	a.cfgFile = res.File
	if a.cfgFile == "" {
		a.logger.Debug("no config file, using defaults", "path", path)
	} else {
		a.logger.Debug("loaded config", "path", a.cfgFile)
	}
	return a.cfg, nil
}

// openBackend connects to the window system once per invocation.
func (a *app) openBackend() (platform.Backend, error) {
	if a.backend != nil {
		return a.backend, nil
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	backend, err := a.newBackend(platform.Options{Display: cfg.Display})
	if err != nil {
		return nil, err
	}
	a.backend = backend
	return backend, nil
}

func (a *app) close() {
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.logger.Warn("failed to close backend", "err", err)
		}
		a.backend = nil
	}
}
