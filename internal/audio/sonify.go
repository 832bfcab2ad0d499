package audio

import (
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/san-kum/wobbly/internal/dynamo"
	"github.com/san-kum/wobbly/internal/effect"
)

// Sonifier plays a tone that tracks how far the mesh is from its rest
// shape. It is an effect.Observer; frames arrive on the render thread
// while samples are pulled on the audio thread.
type Sonifier struct {
	stream *portaudio.Stream

	mu     sync.Mutex
	target float64
	voice  Voice
}

func NewSonifier() *Sonifier { return &Sonifier{} }

// WobbleLevel is the largest corner deviation of f from the undeformed
// rectangle, relative to the rectangle's diagonal and capped at 1.
func WobbleLevel(f effect.Frame) float64 {
	diag := f.Rest.Len()
	if diag <= 0 {
		return 0
	}
	offsets := [4]dynamo.Vector{
		{},
		{X: f.Rest.X},
		{Y: f.Rest.Y},
		{X: f.Rest.X, Y: f.Rest.Y},
	}
	var worst float64
	for i := 1; i < 4; i++ {
		d := f.Extremes[i].Dist(f.Extremes[0].Add(offsets[i]))
		worst = math.Max(worst, d)
	}
	return math.Min(1, worst/diag)
}

func (s *Sonifier) OnFrame(f effect.Frame) {
	level := 0.0
	if f.Settling {
		level = WobbleLevel(f)
	}
	s.mu.Lock()
	s.target = level
	s.mu.Unlock()
}

func (s *Sonifier) process(out [][]float32) {
	s.mu.Lock()
	target := s.target
	s.mu.Unlock()
	s.voice.Render(out, target)
}

func (s *Sonifier) Active() bool { return s.stream != nil }

// Start opens the default output device.
func (s *Sonifier) Start() error {
	if s.stream != nil {
		return nil
	}
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, s.process)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}
	s.stream = stream
	return nil
}

func (s *Sonifier) Stop() error {
	if s.stream == nil {
		return nil
	}
	s.stream.Stop()
	err := s.stream.Close()
	s.stream = nil
	portaudio.Terminate()
	return err
}
