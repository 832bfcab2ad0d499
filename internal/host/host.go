// Package host is the boundary between the wobbly effect and the scene
// graph that paints it.
//
// The effect only sees a [Surface]. [Actor] is a small in-memory
// implementation used by the CLI, the viewers and the tests; it has a
// position, a size, a list of effects and a texture mesh that deform
// effects bend each paint.
package host

import (
	"math"

	"github.com/san-kum/wobbly/internal/dynamo"
)

// Box is an axis-aligned rectangle given by two corners.
type Box struct {
	X1, Y1, X2, Y2 float64
}

func (b Box) Size() dynamo.Vector { return dynamo.Vector{X: b.X2 - b.X1, Y: b.Y2 - b.Y1} }

func (b Box) Union(o Box) Box {
	return Box{
		X1: math.Min(b.X1, o.X1),
		Y1: math.Min(b.Y1, o.Y1),
		X2: math.Max(b.X2, o.X2),
		Y2: math.Max(b.Y2, o.Y2),
	}
}

// Contains reports whether o lies entirely inside b.
func (b Box) Contains(o Box) bool {
	return o.X1 >= b.X1 && o.Y1 >= b.Y1 && o.X2 <= b.X2 && o.Y2 <= b.Y2
}

// PaintVolume is the region an actor may touch when painted, in
// actor-local coordinates.
type PaintVolume struct {
	Origin        dynamo.Vector
	Width, Height float64
}

func (v PaintVolume) Box() Box {
	return Box{X1: v.Origin.X, Y1: v.Origin.Y, X2: v.Origin.X + v.Width, Y2: v.Origin.Y + v.Height}
}

// UnionBox grows the volume to cover b. It never shrinks.
func (v *PaintVolume) UnionBox(b Box) {
	u := v.Box().Union(b)
	v.Origin = dynamo.Vector{X: u.X1, Y: u.Y1}
	v.Width = u.X2 - u.X1
	v.Height = u.Y2 - u.Y1
}

// VolumeMode selects whether effects may extend a paint volume.
type VolumeMode uint8

const (
	// VolumeDeformed includes the growth contributed by enabled effects.
	VolumeDeformed VolumeMode = iota
	// VolumePlain is the actor alone, as if no effect were attached.
	VolumePlain
)

func (m VolumeMode) String() string {
	if m == VolumePlain {
		return "plain"
	}
	return "deformed"
}

// TextureVertex is one vertex of an actor's paint mesh. TX and TY are
// texture coordinates in [0, 1]; X and Y the actor-local position.
type TextureVertex struct {
	X, Y   float64
	TX, TY float64
}

// Surface is what an effect is attached to.
type Surface interface {
	Position() dynamo.Vector
	Size() dynamo.Vector
	// PaintVolume reports false when the surface has no volume to give,
	// for instance because it was never painted.
	PaintVolume(mode VolumeMode) (PaintVolume, bool)
	// OnSizeChanged registers fn for width or height changes. The
	// returned func unregisters it.
	OnSizeChanged(fn func()) (cancel func())
	QueueRedraw()
}

// Effect is attached to at most one Surface at a time. SetActor(nil)
// detaches it.
type Effect interface {
	SetActor(s Surface)
	Enabled() bool
}

type VolumeEffect interface {
	Effect
	ExtendPaintVolume(v *PaintVolume)
}

type DeformEffect interface {
	Effect
	DeformVertex(v *TextureVertex)
}
