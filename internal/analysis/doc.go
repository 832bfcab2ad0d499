// Package analysis looks at recorded wobble traces in the frequency
// domain.
//
//   - [PowerSpectrum]: magnitude spectrum of a real-valued trace
//   - [DominantFrequency]: strongest non-DC component of a trace, in Hz
//   - [CornerTrace]: per-frame deviation of one corner from its rest spot
//
// A jelly preset wobbles slowly with many visible swings; a stiff one
// snaps back after a short, high-pitched shiver:
//
//	hz := analysis.DominantFrequency(analysis.CornerTrace(res.Frames, 3), 1000/16.0)
package analysis
