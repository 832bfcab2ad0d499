package metrics

import (
	"math"

	"github.com/san-kum/wobbly/internal/dynamo"
	"github.com/san-kum/wobbly/internal/effect"
)

// PeakDisplacement is the furthest any corner got from where the
// undeformed rectangle, hung off the top-left corner, would put it.
type PeakDisplacement struct {
	peak float64
}

func NewPeakDisplacement() *PeakDisplacement { return &PeakDisplacement{} }

func (p *PeakDisplacement) Name() string { return "peak_displacement" }

func (p *PeakDisplacement) Observe(f effect.Frame) {
	offsets := [4]dynamo.Vector{
		{},
		{X: f.Rest.X},
		{Y: f.Rest.Y},
		{X: f.Rest.X, Y: f.Rest.Y},
	}
	origin := f.Extremes[0]
	for i := 1; i < 4; i++ {
		d := f.Extremes[i].Dist(origin.Add(offsets[i]))
		p.peak = math.Max(p.peak, d)
	}
}

func (p *PeakDisplacement) Value() float64 { return p.peak }
func (p *PeakDisplacement) Reset()         { p.peak = 0 }

// BoundsGrowth is the largest ratio of deformed bounds area to the rest
// area. 1 means the paint volume never grew.
type BoundsGrowth struct {
	peak float64
}

func NewBoundsGrowth() *BoundsGrowth { return &BoundsGrowth{peak: 1} }

func (b *BoundsGrowth) Name() string { return "bounds_growth" }

func (b *BoundsGrowth) Observe(f effect.Frame) {
	rest := f.Rest.X * f.Rest.Y
	if rest <= 0 {
		return
	}
	s := f.Bounds.Size()
	b.peak = math.Max(b.peak, s.X*s.Y/rest)
}

func (b *BoundsGrowth) Value() float64 { return b.peak }
func (b *BoundsGrowth) Reset()         { b.peak = 1 }
