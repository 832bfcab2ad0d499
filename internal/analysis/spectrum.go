package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/wobbly/internal/dynamo"
	"github.com/san-kum/wobbly/internal/effect"
)

// minSamples is the shortest trace worth transforming.
const minSamples = 8

// PowerSpectrum returns the magnitudes of the first half of the DFT of
// data, after removing its mean. Bin k sits at k*rate/len(data) Hz.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	var mean float64
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	bins := fft.FFTReal(centred)
	ps := make([]float64, len(bins)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(bins[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest
// oscillation in data sampled at rate Hz. Traces that are too short or
// completely flat report 0.
func DominantFrequency(data []float64, rate float64) float64 {
	if len(data) < minSamples || rate <= 0 {
		return 0
	}
	ps := PowerSpectrum(data)

	best, peak := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > peak {
			best, peak = k, ps[k]
		}
	}
	if best == 0 {
		return 0
	}
	return float64(best) * rate / float64(len(data))
}

// CornerTrace returns, for every frame, the signed horizontal plus
// vertical deviation of corner (0..3, QueryExtremes order) from where
// the undeformed rectangle hung off the top-left corner would put it.
// Corner 0 is measured against the bottom-right corner instead.
func CornerTrace(frames []effect.Frame, corner int) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = cornerDeviation(f, corner)
	}
	return out
}

func cornerDeviation(f effect.Frame, corner int) float64 {
	offsets := [4]dynamo.Vector{
		{},
		{X: f.Rest.X},
		{Y: f.Rest.Y},
		{X: f.Rest.X, Y: f.Rest.Y},
	}
	ref, at := 0, corner
	if corner == 0 {
		ref, at = 3, 0
	}
	want := f.Extremes[ref].Sub(offsets[ref]).Add(offsets[at])
	d := f.Extremes[at].Sub(want)
	return d.X + d.Y
}

// SampleRate returns the frame rate implied by the average frame delta.
func SampleRate(frames []effect.Frame) float64 {
	var total int64
	for _, f := range frames {
		total += f.DeltaMs
	}
	if total <= 0 {
		return 0
	}
	return 1000 * float64(len(frames)) / float64(total)
}
