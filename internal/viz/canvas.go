package viz

import (
	"strings"

	"github.com/san-kum/wobbly/internal/dynamo"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBlank = 0x2800

var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells addressed in dot coordinates. A
// canvas of W x H cells has 2W x 4H dots.
type Canvas struct {
	Width, Height int
	cells         []rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([]rune, w*h)}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = brailleBlank
	}
}

func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) cell(x, y int) (int, bool) {
	if x < 0 || y < 0 {
		return 0, false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, false
	}
	return row*c.Width + col, true
}

// Set turns on the dot at (x, y). Dots off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if i, ok := c.cell(x, y); ok {
		c.cells[i] |= dotBits[y%4][x%2]
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	i, ok := c.cell(x, y)
	return ok && c.cells[i]&dotBits[y%4][x%2] != 0
}

// Line draws a Bresenham line between two dots.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(len(c.cells)*3 + c.Height)
	for row := 0; row < c.Height; row++ {
		b.WriteString(string(c.cells[row*c.Width : (row+1)*c.Width]))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps a world rectangle onto a canvas, preserving aspect.
type Viewport struct {
	Origin dynamo.Vector
	Scale  float64
}

// Fit returns the viewport that shows world, a size starting at the
// origin, inside c.
func Fit(c *Canvas, world dynamo.Vector) Viewport {
	dw, dh := c.Dots()
	sx := float64(dw) / world.X
	sy := float64(dh) / world.Y
	s := sx
	if sy < s {
		s = sy
	}
	return Viewport{Scale: s}
}

func (v Viewport) Project(p dynamo.Vector) (int, int) {
	q := p.Sub(v.Origin).Scale(v.Scale)
	return int(q.X + 0.5), int(q.Y + 0.5)
}

// Segment draws a world-space line.
func (v Viewport) Segment(c *Canvas, a, b dynamo.Vector) {
	x0, y0 := v.Project(a)
	x1, y1 := v.Project(b)
	c.Line(x0, y0, x1, y1)
}
