package audio

import "math"

const (
	SampleRate = 44100
	BufferSize = 512

	// BaseHz is the pitch of a barely deformed mesh. Full deformation
	// raises it by an octave.
	BaseHz = 110.0

	volume = 0.25
	cutoff = 900.0
)

// Voice is a filtered triangle oscillator whose loudness and pitch follow
// a wobble level in [0, 1]. It is not safe for concurrent use.
type Voice struct {
	phase  float64
	level  float64
	filter [2]float64
}

// triangle is a unit triangle wave over one cycle of phase.
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// lpf is a one-pole low-pass filter.
func lpf(sample, state, dt float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

// Level returns the smoothed wobble level currently sounding.
func (v *Voice) Level() float64 { return v.level }

// Render fills every channel of out, easing towards target so level
// jumps between frames do not click.
func (v *Voice) Render(out [][]float32, target float64) {
	if len(out) == 0 {
		return
	}
	target = math.Max(0, math.Min(1, target))
	dt := 1.0 / SampleRate

	for i := range out[0] {
		v.level += (target - v.level) * 0.002
		hz := BaseHz * (1 + v.level)
		v.phase += hz * dt
		if v.phase >= 1 {
			v.phase -= math.Floor(v.phase)
		}

		s := triangle(v.phase) * v.level
		for ch := range out {
			f := &v.filter[ch%len(v.filter)]
			*f = lpf(s, *f, dt)
			out[ch][i] = float32(*f * volume)
		}
	}
}
