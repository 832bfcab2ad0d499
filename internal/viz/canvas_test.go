package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/wobbly/internal/dynamo"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if !c.IsSet(0, 0) || !c.IsSet(3, 3) {
		t.Error("expected dots to be set")
	}
	if c.IsSet(1, 0) {
		t.Error("neighbouring dot should be clear")
	}

	got := c.String()
	want := string([]rune{0x2801, 0x2880}) + "\n"
	if got != want {
		t.Errorf("got %q, expected %q", got, want)
	}

	c.Clear()
	if strings.ContainsFunc(c.String(), func(r rune) bool { return r != brailleBlank && r != '\n' }) {
		t.Error("expected blank canvas after clear")
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Line(0, 0, 19, 0)
	for x := 0; x < 20; x++ {
		if !c.IsSet(x, 0) {
			t.Errorf("dot %d on horizontal line not set", x)
		}
	}

	c.Clear()
	c.Line(5, 19, 5, 0)
	for y := 0; y < 20; y++ {
		if !c.IsSet(5, y) {
			t.Errorf("dot %d on vertical line not set", y)
		}
	}
}

func TestViewportFit(t *testing.T) {
	c := NewCanvas(80, 24)
	vp := Fit(c, dynamo.Vector{X: 640, Y: 480})

	if vp.Scale != 96.0/480 {
		t.Errorf("expected height-limited scale, got %f", vp.Scale)
	}
	x, y := vp.Project(dynamo.Vector{X: 640, Y: 480})
	if x != 128 || y != 96 {
		t.Errorf("far corner projected to %d,%d", x, y)
	}
}
