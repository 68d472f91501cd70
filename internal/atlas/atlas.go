// Package atlas loads or generates the texture atlas: AtlasColumns columns of
// TileSize x TileSize, each a 3x3 grid of CellSize sub-tiles forming a
// 9-slice of one rounded piece.
package atlas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/vovakirdan/slidelink/internal/core"
	"github.com/vovakirdan/slidelink/internal/palette"
)

// CornerRadius is the rounding of piece corners in board pixels.
const CornerRadius = 6

// BorderWidth is the width of the darker outline of generated tiles.
const BorderWidth = 4

// ErrBadSize is returned for images that are not AtlasWidth x AtlasHeight.
var ErrBadSize = errors.New("atlas: unexpected image size")

// Colors gives the display color of each atlas column.
type Colors interface {
	ColumnColor(column int) (color.RGBA, bool)
}

// Load decodes a PNG atlas from path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("atlas: open: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a PNG atlas and checks its size.
func Decode(r io.Reader) (image.Image, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("atlas: decode: %w", err)
	}
	b := img.Bounds()
	if b.Dx() != core.AtlasWidth || b.Dy() != core.AtlasHeight {
		return nil, fmt.Errorf("%w: %dx%d, expected %dx%d", ErrBadSize, b.Dx(), b.Dy(), core.AtlasWidth, core.AtlasHeight)
	}
	if b.Min != (image.Point{}) {
		out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
		return out, nil
	}
	return img, nil
}

// Encode writes an atlas as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("atlas: encode: %w", err)
	}
	return nil
}

// Generate draws an atlas procedurally. Each column is one rounded rectangle
// spanning the whole tile, so the 3x3 sub-tiles are its corners, edges and
// interior.
func Generate(colors Colors) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, core.AtlasWidth, core.AtlasHeight))
	outer := roundedMask(core.TileSize, core.TileSize, CornerRadius)
	inner := roundedMask(core.TileSize-2*BorderWidth, core.TileSize-2*BorderWidth, CornerRadius-BorderWidth/2)

	for col := 0; col < core.AtlasColumns; col++ {
		fill, ok := colors.ColumnColor(col)
		if !ok {
			fill = palette.Fallback
		}
		tile := image.Rect(col*core.TileSize, 0, (col+1)*core.TileSize, core.TileSize)
		draw.DrawMask(img, tile, &image.Uniform{C: outline(fill)}, image.Point{}, outer, image.Point{}, draw.Over)
		draw.DrawMask(img, tile.Inset(BorderWidth), &image.Uniform{C: fill}, image.Point{}, inner, image.Point{}, draw.Over)
	}
	return img
}

// outline returns a darker shade of c, or a lighter one for very dark colors.
func outline(c color.RGBA) color.RGBA {
	cf, _ := colorful.MakeColor(c)
	h, ch, l := cf.Hcl()
	if l < 0.2 {
		l += 0.25
	} else {
		l *= 0.65
	}
	r, g, b := colorful.Hcl(h, ch, l).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func roundedMask(w, h int, radius float32) *image.Alpha {
	fw, fh := float32(w), float32(h)
	z := vector.NewRasterizer(w, h)
	z.MoveTo(radius, 0)
	z.LineTo(fw-radius, 0)
	z.QuadTo(fw, 0, fw, radius)
	z.LineTo(fw, fh-radius)
	z.QuadTo(fw, fh, fw-radius, fh)
	z.LineTo(radius, fh)
	z.QuadTo(0, fh, 0, fh-radius)
	z.LineTo(0, radius)
	z.QuadTo(0, 0, radius, 0)
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}
