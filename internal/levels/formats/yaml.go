// Package formats provides level file parsers.
package formats

import (
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/slidelink/internal/core"
)

// Reserved row runes. Every other rune must appear in the legend.
const (
	RuneWall   = '#'
	RuneEmpty  = '.'
	RuneEmerge = 'E'
)

// YAMLLevel is the on-disk shape of a level file.
type YAMLLevel struct {
	ID       string                `yaml:"id"`
	Name     string                `yaml:"name"`
	Rows     []string              `yaml:"rows"`
	Legend   map[string]YAMLLegend `yaml:"legend"`
	Metadata map[string]string     `yaml:"metadata,omitempty"`
}

// YAMLLegend describes the piece a legend rune stands for.
type YAMLLegend struct {
	Color   int    `yaml:"color"`
	Connect string `yaml:"connect"` // direction letters, e.g. "LR"; empty means all four
	Fixed   bool   `yaml:"fixed,omitempty"`
}

// Cell is one parsed board cell.
type Cell struct {
	Kind    core.CellKind
	Color   int
	Connect core.ConnMask
	Fixed   bool
}

// Level is a parsed level ready for an engine.
type Level struct {
	ID       string
	Name     string
	Cells    [core.BoardH][core.BoardW]Cell
	Metadata map[string]string
}

// ParseError points at the offending row.
type ParseError struct {
	Row     int // -1 when not row specific
	Message string
}

func (e *ParseError) Error() string {
	if e.Row < 0 {
		return e.Message
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ParseYAML parses and validates a YAML level.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, &ParseError{Row: -1, Message: "missing id"}
	}
	if len(yl.Rows) != core.BoardH {
		return Level{}, &ParseError{Row: -1, Message: fmt.Sprintf("expected %d rows, got %d", core.BoardH, len(yl.Rows))}
	}

	legend := make(map[rune]Cell, len(yl.Legend))
	for key, l := range yl.Legend {
		r, size := utf8.DecodeRuneInString(key)
		if size != len(key) || size == 0 {
			return Level{}, &ParseError{Row: -1, Message: fmt.Sprintf("legend key %q must be a single character", key)}
		}
		if r == RuneWall || r == RuneEmpty || r == RuneEmerge {
			return Level{}, &ParseError{Row: -1, Message: fmt.Sprintf("legend key %q is reserved", key)}
		}
		mask := core.ConnAll
		if l.Connect != "" {
			m, err := core.ParseConnMask(l.Connect)
			if err != nil {
				return Level{}, &ParseError{Row: -1, Message: fmt.Sprintf("legend %q: %v", key, err)}
			}
			mask = m
		}
		if l.Color < 0 {
			return Level{}, &ParseError{Row: -1, Message: fmt.Sprintf("legend %q: negative color", key)}
		}
		legend[r] = Cell{Kind: core.CellPiece, Color: l.Color, Connect: mask, Fixed: l.Fixed}
	}

	lvl := Level{ID: yl.ID, Name: yl.Name, Metadata: yl.Metadata}
	for y, row := range yl.Rows {
		runes := []rune(row)
		if len(runes) != core.BoardW {
			return Level{}, &ParseError{Row: y, Message: fmt.Sprintf("expected %d cells, got %d", core.BoardW, len(runes))}
		}
		for x, r := range runes {
			switch r {
			case RuneWall:
				lvl.Cells[y][x] = Cell{Kind: core.CellWall, Connect: core.ConnNone, Fixed: true}
			case RuneEmpty:
				lvl.Cells[y][x] = Cell{Kind: core.CellEmpty, Connect: core.ConnNone}
			case RuneEmerge:
				lvl.Cells[y][x] = Cell{Kind: core.CellEmerge, Connect: core.ConnNone, Fixed: true}
			default:
				c, ok := legend[r]
				if !ok {
					return Level{}, &ParseError{Row: y, Message: fmt.Sprintf("unknown cell %q at column %d", r, x)}
				}
				lvl.Cells[y][x] = c
			}
		}
	}
	return lvl, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
