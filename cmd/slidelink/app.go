package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/slidelink/internal/config"
	"github.com/vovakirdan/slidelink/internal/core"
	"github.com/vovakirdan/slidelink/internal/levels"
	"github.com/vovakirdan/slidelink/internal/palette"
	"github.com/vovakirdan/slidelink/internal/play"
	"github.com/vovakirdan/slidelink/internal/registry"
	"github.com/vovakirdan/slidelink/internal/storage"
)

// app is the state every command builds from the global flags.
type app struct {
	cfg    config.Config
	logger *log.Logger
	levels *levels.Loader
	store  *storage.Store // nil when the database cannot be opened
	dbPath string
}

// newApp loads the config and opens the level source and the database. A
// database that cannot be opened is logged and skipped.
func newApp() (*app, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "slidelink",
	})
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetLevel(lvl)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	logger.Debug("config loaded", "source", cfg.Source)

	if !registry.Exists(flagEngine) {
		return nil, fmt.Errorf("unknown engine %q (available: %v)", flagEngine, engineIDs())
	}

	levelDir := flagLevels
	if levelDir == "" {
		levelDir = cfg.Assets.Levels
	}

	a := &app{
		cfg:    cfg,
		logger: logger,
		levels: levels.Open(config.ExpandHome(levelDir)),
		dbPath: flagDBPath,
	}
	if a.dbPath == "" {
		a.dbPath = cfg.Storage.DB
	}
	a.dbPath = config.ExpandHome(a.dbPath)

	store, err := storage.Open(a.dbPath)
	if err != nil {
		logger.Warn("could not open database, continuing without it", "err", err)
	} else {
		a.store = store
	}
	return a, nil
}

// close releases the database.
func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
}

// logToFile sends logs next to the database so they do not draw over a
// full-screen terminal UI.
func (a *app) logToFile(name string) (io.Closer, error) {
	path := filepath.Join(filepath.Dir(a.dbPath), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, err
	}
	a.logger.SetOutput(f)
	return f, nil
}

// paletteConfig combines the stored random colors preference with the
// configured table.
func (a *app) paletteConfig() (palette.Config, error) {
	table, err := a.cfg.PaletteTable()
	if err != nil {
		return palette.Config{}, err
	}
	pc := palette.Config{Table: table}
	if a.store != nil {
		random, err := a.store.RandomColors()
		if err != nil {
			a.logger.Warn("could not read preference, using default", "err", err)
		}
		pc.RandomColors = random
	}
	return pc, nil
}

// env builds the front-end environment. copyFn may be nil.
func (a *app) env(copyFn func(string) error) (play.Env, error) {
	pc, err := a.paletteConfig()
	if err != nil {
		return play.Env{}, err
	}
	ropts, err := a.cfg.RenderOptions()
	if err != nil {
		return play.Env{}, err
	}
	return play.Env{
		Levels:    a.levels,
		Palette:   pc,
		Render:    ropts,
		AtlasPath: config.ExpandHome(a.cfg.Assets.Atlas),
		Store:     a.store,
		Logger:    a.logger,
		Copy:      copyFn,
	}, nil
}

// runtime returns the runtime config from the global flags.
func (a *app) runtime() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = flagSeed
	cfg.Engine = flagEngine
	cfg.LevelID = flagLevel
	return cfg
}

func engineIDs() []string {
	var ids []string
	for _, e := range registry.List() {
		ids = append(ids, e.ID)
	}
	return ids
}

// fail prints an error and exits, as every command does on fatal errors.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
