package window

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/slidelink/internal/core"
)

// surface draws board pixel space into an offscreen image that Draw scales
// onto the window.
type surface struct {
	img   *ebiten.Image
	atlas *ebiten.Image
	bg    color.RGBA
}

func newSurface(bg color.RGBA) *surface {
	return &surface{
		img: ebiten.NewImage(core.BoardPixelsW, core.BoardPixelsH),
		bg:  bg,
	}
}

// SetAtlas uploads the atlas. Until then blits are dropped.
func (s *surface) SetAtlas(img image.Image) {
	s.atlas = ebiten.NewImageFromImage(img)
}

func (s *surface) Clear() {
	s.img.Fill(s.bg)
}

func (s *surface) FillRect(r image.Rectangle, c color.RGBA) {
	vector.FillRect(s.img, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), c, false)
}

func (s *surface) StrokeRect(r image.Rectangle, width int, c color.RGBA) {
	vector.StrokeRect(s.img, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), float32(width), c, false)
}

func (s *surface) Blit(src image.Rectangle, dst image.Point) {
	if s.atlas == nil {
		return
	}
	sub, ok := s.atlas.SubImage(src).(*ebiten.Image)
	if !ok {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(dst.X), float64(dst.Y))
	s.img.DrawImage(sub, &op)
}
