package effect

import (
	"math"

	"github.com/san-kum/wobbly/internal/dynamo"
	"github.com/san-kum/wobbly/internal/host"
)

// PaintBoxOffset pads the plain paint box on every side to absorb
// rounding in the host's volume-to-box conversion.
const PaintBoxOffset = 1

// DeformVertex moves a paint vertex onto the deformed mesh. Texture axes
// are swapped on the way in to match the model's (row, column) order.
func (w *Wobbly) DeformVertex(v *host.TextureVertex) {
	if w.model == nil {
		return
	}
	d := w.model.DeformTexcoords(dynamo.Vector{X: v.TY, Y: v.TX})
	v.X, v.Y = d.X, d.Y
}

// extremesBox is the outward-rounded envelope of the mesh corners.
func (w *Wobbly) extremesBox() host.Box {
	e := w.model.QueryExtremes()
	return host.Box{
		X1: math.Floor(math.Min(e[0].X, e[2].X)),
		Y1: math.Floor(math.Min(e[0].Y, e[1].Y)),
		X2: math.Ceil(math.Max(e[1].X, e[3].X)),
		Y2: math.Ceil(math.Max(e[2].Y, e[3].Y)),
	}
}

// ExtendPaintVolume grows v to cover the deformed mesh. It never shrinks
// the volume it is given.
func (w *Wobbly) ExtendPaintVolume(v *host.PaintVolume) {
	if w.model == nil {
		return
	}
	v.UnionBox(w.extremesBox())
}

// PrePaint returns the size of the offscreen buffer the surface should be
// redirected into: its plain paint box, without this effect's growth.
func (w *Wobbly) PrePaint() dynamo.Vector {
	if w.surface == nil {
		return dynamo.Vector{}
	}
	return PlainBoxSize(w.surface)
}

// PlainBoxSize is the size of s's paint box with no effect growth
// applied, padded by PaintBoxOffset. Surfaces with no paint volume fall
// back to their raw size.
func PlainBoxSize(s host.Surface) dynamo.Vector {
	vol, ok := s.PaintVolume(host.VolumePlain)
	if !ok {
		return s.Size()
	}

	// Only correct while the volume is flat and axis-aligned; there is
	// no projection to undo here.
	pos := s.Position()
	x1 := math.Floor(vol.Origin.X+pos.X) - PaintBoxOffset
	y1 := math.Floor(vol.Origin.Y+pos.Y) - PaintBoxOffset
	box := host.Box{
		X1: x1,
		Y1: y1,
		X2: x1 + math.Ceil(vol.Width) + PaintBoxOffset*2,
		Y2: y1 + math.Ceil(vol.Height) + PaintBoxOffset*2,
	}
	return box.Size()
}
