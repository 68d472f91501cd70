package play

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/slidelink/internal/engine"
	"github.com/vovakirdan/slidelink/internal/levels"
	"github.com/vovakirdan/slidelink/internal/palette"
	"github.com/vovakirdan/slidelink/internal/registry"
)

// OpenLevel loads a level by id (empty means the first one) and builds the
// named engine for it. It returns the id of the level actually opened.
func OpenLevel(loader *levels.Loader, engineID, levelID string, logger *log.Logger) (engine.Engine, string, error) {
	lvl, err := loader.LoadByID(levelID)
	if err != nil {
		return nil, "", fmt.Errorf("play: %w", err)
	}
	eng, err := registry.Create(engineID, lvl, logger)
	if err != nil {
		return nil, "", fmt.Errorf("play: %w", err)
	}
	return eng, lvl.ID, nil
}

// StepLevel returns the id offset steps from current in the loader's order.
func StepLevel(loader *levels.Loader, current string, offset int) (string, error) {
	ids, err := loader.ListIDs()
	if err != nil {
		return "", fmt.Errorf("play: %w", err)
	}
	return levels.Neighbor(ids, current, offset), nil
}

// NewPalette builds a session palette. A zero seed uses the current time.
func NewPalette(cfg palette.Config, seed int64, logger *log.Logger) (*palette.Palette, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return palette.New(cfg, rand.New(rand.NewSource(seed)), logger)
}
