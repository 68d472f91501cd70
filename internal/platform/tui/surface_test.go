package tui

import (
	"image"
	"image/color"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/slidelink/internal/atlas"
	"github.com/vovakirdan/slidelink/internal/autotile"
	"github.com/vovakirdan/slidelink/internal/core"
	"github.com/vovakirdan/slidelink/internal/palette"
)

func TestQuadrantGlyphs(t *testing.T) {
	tl, tr := image.Pt(0, 0), image.Pt(1, 0)
	bl, br := image.Pt(0, 1), image.Pt(1, 1)

	tests := []struct {
		name string
		sub  int
		quad image.Point
		want string
	}{
		{"top-left corner", autotile.SubTopLeft, tl, "╭─"},
		{"top-right corner", autotile.SubTopRight, tr, "─╮"},
		{"bottom-left corner", autotile.SubBottomLeft, bl, "╰─"},
		{"bottom-right corner", autotile.SubBottomRight, br, "─╯"},
		{"top edge", autotile.SubTop, tl, "──"},
		{"left edge", autotile.SubLeft, bl, "│ "},
		{"right edge", autotile.SubRight, tr, " │"},
		{"center", autotile.SubInterior, br, "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := quadrantGlyphs(tt.sub, tt.quad)
			if got := string(g[:]); got != tt.want {
				t.Errorf("quadrantGlyphs(%d, %v) = %q, expected %q", tt.sub, tt.quad, got, tt.want)
			}
		})
	}
}

func TestCharRect(t *testing.T) {
	r := image.Rect(2*core.CellSize, 3*core.CellSize, 3*core.CellSize, 4*core.CellSize)
	got := charRect(r)
	want := core.NewRect(2*cellCols, 3*cellRows, cellCols, cellRows)
	if got != want {
		t.Errorf("charRect = %+v, expected %+v", got, want)
	}
}

func TestSurfaceFillAndStroke(t *testing.T) {
	s := newBoardSurface(color.RGBA{A: 0xff})
	s.Clear()

	cell := image.Rect(core.CellSize, 0, 2*core.CellSize, core.CellSize)
	s.FillRect(cell, color.RGBA{R: 0xff, A: 0xff})
	if c := s.screen.GetCell(cellCols, 0); c.Style.BG != "#ff0000" {
		t.Errorf("filled cell BG = %q", c.Style.BG)
	}
	if c := s.screen.GetCell(0, 0); c.Style.BG != "#000000" {
		t.Errorf("background cell BG = %q", c.Style.BG)
	}

	s.StrokeRect(cell, 3, color.RGBA{G: 0xff, A: 0xff})
	if got := string([]rune(s.screen.Row(0))[cellCols:]); !strings.HasPrefix(got, "┏━━┓") {
		t.Errorf("stroke top row = %q", got)
	}
	if c := s.screen.GetCell(cellCols, 0); c.Style.FG != "#00ff00" || c.Style.BG != "#ff0000" {
		t.Errorf("stroke style = %+v, expected green on red", c.Style)
	}
}

func TestSurfaceBlitNeedsAtlas(t *testing.T) {
	s := newBoardSurface(color.RGBA{A: 0xff})
	s.Clear()
	s.Blit(image.Rect(0, 0, autotile.Half, autotile.Half), image.Pt(0, 0))
	if got := s.screen.Row(0); strings.TrimSpace(got) != "" {
		t.Errorf("blit without atlas drew %q", got)
	}
}

func TestSurfaceBlitSamplesAtlas(t *testing.T) {
	pal, err := palette.New(palette.Config{}, nil, log.New(io.Discard))
	if err != nil {
		t.Fatalf("palette.New failed: %v", err)
	}
	s := newBoardSurface(color.RGBA{A: 0xff})
	s.SetAtlas(atlas.Generate(pal))
	s.Clear()

	column := 4
	base := autotile.TileBase(column)
	src := autotile.AtlasOrigin(base, autotile.SubTopLeft, image.Pt(0, 0))
	s.Blit(image.Rectangle{Min: src, Max: src.Add(image.Pt(autotile.Half, autotile.Half))}, image.Pt(0, 0))

	if got := string([]rune(s.screen.Row(0))[:2]); got != "╭─" {
		t.Errorf("blit glyphs = %q, expected top-left corner", got)
	}
	want, _ := pal.ColumnColor(column)
	if c := s.screen.GetCell(0, 0); c.Style.BG != palette.Hex(want) {
		t.Errorf("blit BG = %q, expected %q", c.Style.BG, palette.Hex(want))
	}
}
