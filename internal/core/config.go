package core

// RuntimeConfig contains configuration passed to a play session at startup.
type RuntimeConfig struct {
	ScreenW int    // Terminal width in characters (terminal front-end only)
	ScreenH int    // Terminal height in characters (terminal front-end only)
	Seed    int64  // RNG seed for the palette shuffle; 0 means time based
	Engine  string // Registered engine name
	LevelID string // Level to open; empty means the first level
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
		Engine:  "reference",
	}
}

// Stats are the engine counters shown in the HUD.
type Stats struct {
	Moves       int
	Actions     int
	UndoAvail   int
	BlockCount  int
	LevelID     string
	AtlasLoaded bool
}
