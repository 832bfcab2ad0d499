package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/wobbly/internal/effect"
)

// Growth returns, per frame, how far the paint bounds exceed the rest
// size on each axis.
func Growth(frames []effect.Frame) (wide, tall []float64) {
	wide = make([]float64, len(frames))
	tall = make([]float64, len(frames))
	for i, f := range frames {
		s := f.Bounds.Size()
		wide[i] = s.X - f.Rest.X
		tall[i] = s.Y - f.Rest.Y
	}
	return wide, tall
}

// PlotFrames charts bounding-volume growth over a run. It returns an
// empty string when there is nothing to chart.
func PlotFrames(frames []effect.Frame, width, height int, caption string) string {
	if len(frames) < 2 {
		return ""
	}
	wide, tall := Growth(frames)
	return asciigraph.PlotMany(
		[][]float64{wide, tall},
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta),
		asciigraph.SeriesLegends("width", "height"),
	)
}

func sparkline(values []float64, width, height int, caption string) string {
	if len(values) < 2 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}
