package play

import (
	"strings"

	"github.com/vovakirdan/slidelink/internal/core"
	"github.com/vovakirdan/slidelink/internal/palette"
)

// Dump returns the board as text, one row per line: '#' wall, 'E' emerge,
// '.' empty, '*' black piece, and a piece's color index as a digit (or '?'
// above 9). The selected cell, if any, is wrapped as the last line "sel (x,y)".
func (s *Session) Dump() string {
	var b strings.Builder
	for y := 0; y < core.BoardH; y++ {
		for x := 0; x < core.BoardW; x++ {
			b.WriteByte(cellGlyph(s, x, y))
		}
		b.WriteByte('\n')
	}
	if sel := s.Selection(); sel != nil {
		b.WriteString("sel " + sel.String() + "\n")
	}
	return b.String()
}

func cellGlyph(s *Session, x, y int) byte {
	g := s.game
	ref := g.Cell(x, y)
	switch g.Kind(ref) {
	case core.CellWall:
		return '#'
	case core.CellEmerge:
		return 'E'
	case core.CellPiece:
		if palette.IsBlackPiece(g.CanConnect(ref), g.Connected(ref)) {
			return '*'
		}
		c := g.Color(ref)
		if c < 0 || c > 9 {
			return '?'
		}
		return byte('0' + c)
	default:
		return '.'
	}
}
