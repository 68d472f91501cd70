package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/vovakirdan/slidelink/internal/core"
)

// Raster is a Surface backed by an in-memory RGBA image the size of the board.
// It is used for headless snapshots.
type Raster struct {
	img        *image.RGBA
	atlas      image.Image
	background color.RGBA
}

// NewRaster returns a board-sized raster. atlas may be nil, in which case
// Blit is a no-op.
func NewRaster(atlas image.Image, background color.RGBA) *Raster {
	return &Raster{
		img:        image.NewRGBA(image.Rect(0, 0, core.BoardPixelsW, core.BoardPixelsH)),
		atlas:      atlas,
		background: background,
	}
}

// Image returns the backing image.
func (r *Raster) Image() *image.RGBA { return r.img }

// SetAtlas replaces the atlas used by Blit.
func (r *Raster) SetAtlas(atlas image.Image) { r.atlas = atlas }

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), &image.Uniform{C: r.background}, image.Point{}, draw.Src)
}

func (r *Raster) FillRect(rect image.Rectangle, c color.RGBA) {
	draw.Draw(r.img, rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// StrokeRect draws a border of the given width centered on the edges of rect,
// as a canvas stroke would.
func (r *Raster) StrokeRect(rect image.Rectangle, width int, c color.RGBA) {
	if width <= 0 {
		return
	}
	outer := rect.Inset(-width / 2)
	inner := outer.Inset(width)
	u := &image.Uniform{C: c}
	draw.Draw(r.img, image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, inner.Min.Y), u, image.Point{}, draw.Over)
	draw.Draw(r.img, image.Rect(outer.Min.X, inner.Max.Y, outer.Max.X, outer.Max.Y), u, image.Point{}, draw.Over)
	draw.Draw(r.img, image.Rect(outer.Min.X, inner.Min.Y, inner.Min.X, inner.Max.Y), u, image.Point{}, draw.Over)
	draw.Draw(r.img, image.Rect(inner.Max.X, inner.Min.Y, outer.Max.X, inner.Max.Y), u, image.Point{}, draw.Over)
}

func (r *Raster) Blit(src image.Rectangle, dst image.Point) {
	if r.atlas == nil {
		return
	}
	dr := image.Rectangle{Min: dst, Max: dst.Add(src.Size())}
	draw.Draw(r.img, dr, r.atlas, src.Min, draw.Over)
}

// Scaled returns a copy of the raster scaled by factor using nearest-neighbor
// sampling, which keeps tile edges crisp.
func (r *Raster) Scaled(factor float64) *image.RGBA {
	if factor <= 0 || factor == 1 {
		out := image.NewRGBA(r.img.Bounds())
		draw.Draw(out, out.Bounds(), r.img, image.Point{}, draw.Src)
		return out
	}
	w := int(float64(r.img.Bounds().Dx()) * factor)
	h := int(float64(r.img.Bounds().Dy()) * factor)
	out := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.NearestNeighbor.Scale(out, out.Bounds(), r.img, r.img.Bounds(), draw.Src, nil)
	return out
}

// WritePNG encodes the raster, scaled by factor, as PNG.
func (r *Raster) WritePNG(w io.Writer, factor float64) error {
	if err := png.Encode(w, r.Scaled(factor)); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}
