package core

import "fmt"

// Board geometry. The board is fixed size; every front-end draws it in the
// same logical pixel space of BoardW*CellSize x BoardH*CellSize.
const (
	BoardW   = 14
	BoardH   = 10
	CellSize = 64

	// TileSize is the width and height of one atlas column (a 3x3 grid of
	// CellSize sub-tiles).
	TileSize     = 192
	AtlasColumns = 10
	AtlasWidth   = TileSize * AtlasColumns
	AtlasHeight  = TileSize

	// BoardPixelsW and BoardPixelsH are the logical surface dimensions.
	BoardPixelsW = BoardW * CellSize
	BoardPixelsH = BoardH * CellSize
)

// CellKind is the type of a board cell as reported by the engine.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellWall
	CellPiece
	CellEmerge
)

// String returns the string representation of a cell kind.
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "Empty"
	case CellWall:
		return "Wall"
	case CellPiece:
		return "Piece"
	case CellEmerge:
		return "Emerge"
	default:
		return fmt.Sprintf("CellKind(%d)", int(k))
	}
}

// IsStatic reports whether the kind renders as a single static border tile.
func (k CellKind) IsStatic() bool {
	return k == CellWall || k == CellEmerge
}

// Dir is a cardinal direction. The numeric values are the bit positions used
// by ConnMask and match the engine call table.
type Dir uint8

const (
	DirLeft Dir = iota
	DirRight
	DirUp
	DirDown
)

// Dirs lists all directions in bit order.
var Dirs = [4]Dir{DirLeft, DirRight, DirUp, DirDown}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	default:
		return d
	}
}

// Horizontal reports whether d is Left or Right.
func (d Dir) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// Bit returns the ConnMask bit for this direction.
func (d Dir) Bit() ConnMask {
	return 1 << d
}

// ConnMask is a 4-bit set of directions, one bit per Dir.
// ConnNone marks "not a piece" in where-can-connect queries.
type ConnMask int

const (
	ConnNone  ConnMask = -1
	ConnEmpty ConnMask = 0
	ConnAll   ConnMask = 0b1111

	ConnLeft  = ConnMask(1 << DirLeft)
	ConnRight = ConnMask(1 << DirRight)
	ConnUp    = ConnMask(1 << DirUp)
	ConnDown  = ConnMask(1 << DirDown)
)

// Has reports whether the direction bit is set. ConnNone has no bits.
func (m ConnMask) Has(d Dir) bool {
	if m < 0 {
		return false
	}
	return m&d.Bit() != 0
}

// With returns m with the direction bit set.
func (m ConnMask) With(d Dir) ConnMask {
	if m < 0 {
		m = 0
	}
	return m | d.Bit()
}

// String renders the mask as direction letters, e.g. "LU".
func (m ConnMask) String() string {
	if m == ConnNone {
		return "none"
	}
	s := ""
	for _, d := range Dirs {
		if m.Has(d) {
			s += d.String()[:1]
		}
	}
	if s == "" {
		return "-"
	}
	return s
}

// ParseConnMask parses direction letters (L, R, U, D) into a mask.
// An empty string yields ConnEmpty.
func ParseConnMask(s string) (ConnMask, error) {
	var m ConnMask
	for _, r := range s {
		switch r {
		case 'L', 'l':
			m = m.With(DirLeft)
		case 'R', 'r':
			m = m.With(DirRight)
		case 'U', 'u':
			m = m.With(DirUp)
		case 'D', 'd':
			m = m.With(DirDown)
		default:
			return ConnEmpty, fmt.Errorf("invalid direction %q", r)
		}
	}
	return m, nil
}

// InBoard reports whether (x, y) lies on the board.
func InBoard(x, y int) bool {
	return x >= 0 && x < BoardW && y >= 0 && y < BoardH
}
