package reference

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/slidelink/internal/engine"
	"github.com/vovakirdan/slidelink/internal/levels"
	"github.com/vovakirdan/slidelink/internal/registry"
)

// ID is the registry name of this engine.
const ID = "reference"

func init() {
	registry.Register(ID, "Reference engine", func(lvl levels.Level, logger *log.Logger) engine.Engine {
		return New(lvl, logger)
	})
}
