// Package registry provides a global registry of puzzle engines.
// Engines register themselves in init() functions, so front-ends can pick
// one by name without importing it directly.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/slidelink/internal/engine"
	"github.com/vovakirdan/slidelink/internal/levels"
)

// ErrUnknownEngine is returned by Create for names nobody registered.
var ErrUnknownEngine = errors.New("registry: unknown engine")

// Factory builds an engine whose games start from lvl.
type Factory func(lvl levels.Level, logger *log.Logger) engine.Engine

// EngineInfo contains metadata about a registered engine.
type EngineInfo struct {
	ID    string
	Title string
}

type entry struct {
	title   string
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds an engine factory. Panics if the id is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: engine %q already registered", id))
	}
	entries[id] = entry{title: title, factory: f}
}

// List returns all registered engines, sorted by id.
func List() []EngineInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]EngineInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, EngineInfo{ID: id, Title: e.title})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create builds an engine by id for the given level.
func Create(id string, lvl levels.Level, logger *log.Logger) (engine.Engine, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownEngine, id)
	}
	return e.factory(lvl, logger), nil
}

// Exists checks if an engine with the given id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
