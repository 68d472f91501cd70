package config

import (
	_ "embed"
)

//go:embed defaults/slidelink.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration, used when the embedded
// YAML cannot be parsed.
func DefaultConfig() Config {
	table := make([]PaletteEntry, 0, 10)
	for _, hex := range []string{
		"#090710", "#8c8c8c", "#4f3718", "#22614f", "#66c360",
		"#130e3a", "#4b4b87", "#c962dd", "#e6e86a", "#e33b3b",
	} {
		table = append(table, PaletteEntry{Color: hex, Column: len(table)})
	}
	return Config{
		Board: BoardConfig{
			Highlight:      "#32cd32",
			HighlightWidth: 3,
		},
		Palette: table,
		Window: WindowConfig{
			Scale: 1.0,
			Title: "slidelink",
		},
		Storage: StorageConfig{
			DB: "~/.slidelink/slidelink.db",
		},
		Server: ServerConfig{
			Addr:    ":2323",
			HostKey: ".ssh/slidelink_ed25519",
		},
		Source: "builtin",
	}
}
