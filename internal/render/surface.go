package render

import (
	"fmt"
	"image"
	"image/color"
)

// Surface is a drawing target in board pixel space. Blit copies a rectangle of
// the texture atlas owned by the surface.
type Surface interface {
	Clear()
	FillRect(r image.Rectangle, c color.RGBA)
	StrokeRect(r image.Rectangle, width int, c color.RGBA)
	Blit(src image.Rectangle, dst image.Point)
}

// OpKind identifies a recorded draw instruction.
type OpKind int

const (
	OpClear OpKind = iota
	OpFill
	OpStroke
	OpBlit
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpFill:
		return "fill"
	case OpStroke:
		return "stroke"
	case OpBlit:
		return "blit"
	default:
		return "unknown"
	}
}

// Op is one recorded draw instruction. Unused fields are zero.
type Op struct {
	Kind  OpKind
	Rect  image.Rectangle
	Dst   image.Point
	Color color.RGBA
	Width int
}

func (o Op) String() string {
	switch o.Kind {
	case OpClear:
		return "clear"
	case OpFill:
		return fmt.Sprintf("fill %v #%02x%02x%02x", o.Rect, o.Color.R, o.Color.G, o.Color.B)
	case OpStroke:
		return fmt.Sprintf("stroke %v w%d #%02x%02x%02x", o.Rect, o.Width, o.Color.R, o.Color.G, o.Color.B)
	case OpBlit:
		return fmt.Sprintf("blit %v -> %v", o.Rect, o.Dst)
	default:
		return o.Kind.String()
	}
}

// Recorder is a Surface that keeps the instructions of the last frame.
// Clear starts a new frame.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) Clear() {
	r.Ops = append(r.Ops[:0], Op{Kind: OpClear})
}

func (r *Recorder) FillRect(rect image.Rectangle, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Rect: rect, Color: c})
}

func (r *Recorder) StrokeRect(rect image.Rectangle, width int, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpStroke, Rect: rect, Width: width, Color: c})
}

func (r *Recorder) Blit(src image.Rectangle, dst image.Point) {
	r.Ops = append(r.Ops, Op{Kind: OpBlit, Rect: src, Dst: dst})
}

// Count returns how many recorded instructions have the given kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Frame returns a copy of the recorded instructions.
func (r *Recorder) Frame() []Op {
	out := make([]Op, len(r.Ops))
	copy(out, r.Ops)
	return out
}
