package render

import (
	"image"
	"image/color"
	"io"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/slidelink/internal/core"
	"github.com/vovakirdan/slidelink/internal/engine"
	"github.com/vovakirdan/slidelink/internal/engine/enginetest"
	"github.com/vovakirdan/slidelink/internal/palette"
)

func setup(t *testing.T) (*enginetest.Fake, *Pipeline, *palette.Palette) {
	t.Helper()
	f := enginetest.NewFake()
	f.SetPiece(2, 2, 0, core.ConnAll, core.ConnRight)
	f.SetPiece(3, 2, 0, core.ConnAll, core.ConnLeft)
	f.SetPiece(6, 4, 1, core.ConnLeft|core.ConnRight, core.ConnLeft|core.ConnRight) // black
	f.SetWall(0, 9)
	f.SetEmerge(13, 0)

	pal, err := palette.New(palette.Config{}, nil, log.New(io.Discard))
	if err != nil {
		t.Fatalf("palette.New failed: %v", err)
	}
	g := engine.Open(f)
	t.Cleanup(g.Close)
	return f, New(g, pal, Options{}, log.New(io.Discard)), pal
}

func TestRedrawIsIdempotent(t *testing.T) {
	for _, loaded := range []bool{false, true} {
		_, p, _ := setup(t)
		p.SetAtlasLoaded(loaded)
		sel := core.C(2, 2)

		var rec Recorder
		p.Redraw(&rec, &sel)
		first := rec.Frame()
		p.Redraw(&rec, &sel)
		second := rec.Frame()

		if !slices.Equal(first, second) {
			t.Errorf("loaded=%v: frames differ\nfirst:  %v\nsecond: %v", loaded, first, second)
		}
		if p.Redraws() != 2 {
			t.Errorf("Redraws = %d, expected 2", p.Redraws())
		}
	}
}

func TestFallbackFillsOccupiedCells(t *testing.T) {
	_, p, pal := setup(t)
	var rec Recorder
	p.Redraw(&rec, nil)

	if rec.Count(OpBlit) != 0 {
		t.Fatalf("fallback issued %d blits", rec.Count(OpBlit))
	}
	if rec.Ops[0].Kind != OpClear {
		t.Fatalf("first op = %s, expected clear", rec.Ops[0])
	}

	want := map[image.Rectangle]color.RGBA{
		cellRect(2, 2):  pal.ResolveDisplayColor(0, false),
		cellRect(3, 2):  pal.ResolveDisplayColor(0, false),
		cellRect(6, 4):  pal.ResolveDisplayColor(1, true),
		cellRect(0, 9):  pal.WallColor(),
		cellRect(13, 0): pal.WallColor(),
	}
	fills := 0
	for _, op := range rec.Ops {
		if op.Kind != OpFill {
			continue
		}
		fills++
		c, ok := want[op.Rect]
		if !ok {
			t.Errorf("unexpected fill %s", op)
			continue
		}
		if op.Color != c {
			t.Errorf("fill %v color = %s, expected %s", op.Rect, palette.Hex(op.Color), palette.Hex(c))
		}
	}
	if fills != len(want) {
		t.Errorf("fills = %d, expected %d", fills, len(want))
	}
}

func TestTiledBlitCounts(t *testing.T) {
	_, p, _ := setup(t)
	p.SetAtlasLoaded(true)
	var rec Recorder
	p.Redraw(&rec, nil)

	// Three pieces at four quadrants each, two static cells at one blit each.
	if got := rec.Count(OpBlit); got != 3*4+2 {
		t.Errorf("blits = %d, expected %d", got, 3*4+2)
	}
	if rec.Count(OpFill) != 0 {
		t.Errorf("tiled mode issued %d fills", rec.Count(OpFill))
	}
}

func TestTiledPairOpensSharedSeam(t *testing.T) {
	_, p, _ := setup(t)
	p.SetAtlasLoaded(true)
	var rec Recorder
	p.Redraw(&rec, nil)

	// The top-right quadrant of (2,2) samples the top edge sub-tile of its
	// column: the seam towards (3,2) is open.
	dst := image.Pt(2*core.CellSize+core.CellSize/2, 2*core.CellSize)
	for _, op := range rec.Ops {
		if op.Kind == OpBlit && op.Dst == dst {
			col := palette.Reserved
			wantX := col*core.TileSize + core.CellSize + core.CellSize/2
			if op.Rect.Min != image.Pt(wantX, 0) {
				t.Errorf("seam quadrant src = %v, expected (%d,0)", op.Rect.Min, wantX)
			}
			return
		}
	}
	t.Fatalf("no blit at %v", dst)
}

func TestHighlightDrawnLast(t *testing.T) {
	for _, loaded := range []bool{false, true} {
		_, p, _ := setup(t)
		p.SetAtlasLoaded(loaded)
		sel := core.C(3, 2)
		var rec Recorder
		p.Redraw(&rec, &sel)

		last := rec.Ops[len(rec.Ops)-1]
		if last.Kind != OpStroke {
			t.Fatalf("loaded=%v: last op = %s, expected stroke", loaded, last)
		}
		if last.Rect != cellRect(3, 2) || last.Width != DefaultHighlightWidth || last.Color != DefaultHighlight {
			t.Errorf("loaded=%v: highlight = %s", loaded, last)
		}
	}
}

func TestNoHighlightWithoutSelection(t *testing.T) {
	_, p, _ := setup(t)
	var rec Recorder
	p.Redraw(&rec, nil)
	if rec.Count(OpStroke) != 0 {
		t.Error("stroke drawn without a selection")
	}
}

func TestRasterDrawsFallback(t *testing.T) {
	_, p, pal := setup(t)
	bg := pal.Entries()[palette.NoColorIdx].Color
	r := NewRaster(nil, bg)
	p.Redraw(r, nil)

	img := r.Image()
	if got := img.RGBAAt(2*core.CellSize+10, 2*core.CellSize+10); got != pal.ResolveDisplayColor(0, false) {
		t.Errorf("piece pixel = %v", got)
	}
	if got := img.RGBAAt(5, 9*core.CellSize+5); got != pal.WallColor() {
		t.Errorf("wall pixel = %v", got)
	}
	if got := img.RGBAAt(8*core.CellSize, 8*core.CellSize); got != bg {
		t.Errorf("empty pixel = %v, expected background", got)
	}
}

func TestRasterScaled(t *testing.T) {
	r := NewRaster(nil, color.RGBA{A: 0xff})
	r.Clear()
	out := r.Scaled(0.5)
	if out.Bounds().Dx() != core.BoardPixelsW/2 || out.Bounds().Dy() != core.BoardPixelsH/2 {
		t.Errorf("scaled bounds = %v", out.Bounds())
	}
}
