package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/wobbly/internal/clock"
	"github.com/san-kum/wobbly/internal/config"
	"github.com/san-kum/wobbly/internal/dynamo"
	"github.com/san-kum/wobbly/internal/effect"
	"github.com/san-kum/wobbly/internal/host"
)

const (
	canvasCols  = 80
	canvasRows  = 24
	historySize = 120

	// ArrowStep is how far one arrow press moves the pointer.
	ArrowStep = 12.0
)

type TickMsg time.Time

// grabPoints are the surface-local grab targets C cycles through, as
// fractions of the surface size.
var grabPoints = []struct {
	name string
	at   dynamo.Vector
}{
	{"title", dynamo.Vector{X: 0.5, Y: 0.05}},
	{"top-left", dynamo.Vector{X: 0.02, Y: 0.02}},
	{"top-right", dynamo.Vector{X: 0.98, Y: 0.02}},
	{"bottom-left", dynamo.Vector{X: 0.02, Y: 0.98}},
	{"bottom-right", dynamo.Vector{X: 0.98, Y: 0.98}},
	{"centre", dynamo.Vector{X: 0.5, Y: 0.5}},
}

// Live is a Bubble Tea model hosting one surface with the wobbly effect
// attached. Each tick dispatches the effect's frame loop on the UI
// goroutine.
type Live struct {
	loop     *clock.Loop
	actor    *host.Actor
	w        *effect.Wobbly
	ptr      *host.Pointer
	world    dynamo.Vector
	sizes    [2]dynamo.Vector
	interval time.Duration

	canvas  *Canvas
	grabAt  int
	last    effect.Frame
	growth  []float64
	quitted bool
}

// NewLive builds the live view. src is normally clock.Monotonic().
func NewLive(cfg *config.Config, src clock.Source) (*Live, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	loop := clock.NewLoop(src)
	l := &Live{
		loop:     loop,
		interval: time.Duration(cfg.FrameIntervalMs) * time.Millisecond,
		canvas:   NewCanvas(canvasCols, canvasRows),
		growth:   make([]float64, 0, historySize),
	}

	w, err := effect.New(loop, src,
		effect.WithParams(cfg.Params),
		effect.WithIntegrator(cfg.NewIntegrator()),
		effect.WithObserver(effect.ObserverFunc(l.onFrame)),
	)
	if err != nil {
		return nil, err
	}

	size := cfg.Surface.Size()
	l.sizes = [2]dynamo.Vector{size, size.Scale(0.6)}
	l.world = cfg.Surface.Position().Add(size).Scale(2)
	l.actor = host.NewActor("live", cfg.Surface.Position(), size)
	l.actor.Tiles = cfg.Tiles
	l.actor.AddEffect(w)
	l.w = w
	l.ptr = host.NewPointer(l.actor, w)
	return l, nil
}

func (l *Live) Effect() *effect.Wobbly { return l.w }
func (l *Live) Actor() *host.Actor     { return l.actor }

func (l *Live) onFrame(f effect.Frame) {
	l.last = f
	s := f.Bounds.Size()
	l.growth = append(l.growth, (s.X*s.Y)/(f.Rest.X*f.Rest.Y))
	if len(l.growth) > historySize {
		l.growth = l.growth[1:]
	}
}

func (l *Live) tick() tea.Cmd {
	return tea.Tick(l.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (l *Live) Init() tea.Cmd { return l.tick() }

func (l *Live) pointer() dynamo.Vector {
	frac := grabPoints[l.grabAt].at
	size := l.actor.Size()
	return l.actor.Position().Add(dynamo.Vector{X: frac.X * size.X, Y: frac.Y * size.Y})
}

// move drags the surface when the pointer is down and otherwise just
// repositions it.
func (l *Live) move(d dynamo.Vector) {
	if l.ptr.Down() {
		l.ptr.Move(l.pointer().Add(d))
		return
	}
	l.actor.MoveBy(d)
}

func (l *Live) toggleGrab() {
	if l.ptr.Down() {
		l.ptr.Release()
		return
	}
	l.ptr.Press(l.pointer())
}

func (l *Live) toggleSize() {
	next := l.sizes[0]
	if l.actor.Size() == next {
		next = l.sizes[1]
	}
	l.actor.SetSize(next)
}

func (l *Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			l.quitted = true
			l.w.Destroy()
			return l, tea.Quit
		case " ":
			l.toggleGrab()
		case "up", "k":
			l.move(dynamo.Vector{Y: -ArrowStep})
		case "down", "j":
			l.move(dynamo.Vector{Y: ArrowStep})
		case "left", "h":
			l.move(dynamo.Vector{X: -ArrowStep})
		case "right", "l":
			l.move(dynamo.Vector{X: ArrowStep})
		case "c":
			if !l.ptr.Down() {
				l.grabAt = (l.grabAt + 1) % len(grabPoints)
			}
		case "r":
			l.toggleSize()
		case "t":
			NextTheme()
		}
	case TickMsg:
		if l.quitted {
			return l, nil
		}
		l.loop.Dispatch()
		return l, l.tick()
	}
	return l, nil
}

// draw paints the surface's paint mesh, deformed when the effect is
// enabled, and a cross at the pointer.
func (l *Live) draw() {
	l.canvas.Clear()
	vp := Fit(l.canvas, l.world)
	pos := l.actor.Position()
	mesh := l.actor.Mesh()
	n := l.actor.MeshTiles() + 1

	at := func(row, col int) dynamo.Vector {
		v := mesh[row*n+col]
		return pos.Add(dynamo.Vector{X: v.X, Y: v.Y})
	}
	stride := n / 5
	if stride < 1 {
		stride = 1
	}
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if col+1 < n && (row%stride == 0 || row == n-1) {
				vp.Segment(l.canvas, at(row, col), at(row, col+1))
			}
			if row+1 < n && (col%stride == 0 || col == n-1) {
				vp.Segment(l.canvas, at(row, col), at(row+1, col))
			}
		}
	}

	p := l.pointer()
	x, y := vp.Project(p)
	l.canvas.Line(x-2, y, x+2, y)
	l.canvas.Line(x, y-2, x, y+2)
}

func (l *Live) status() string {
	switch {
	case l.w.UngrabPending():
		return idleStyle.Render("RELEASING")
	case l.w.Holding():
		return activeStyle.Render("GRABBED")
	case l.w.Ticking():
		return activeStyle.Render("SETTLING")
	}
	return idleStyle.Render("AT REST")
}

func (l *Live) View() string {
	l.draw()

	var s strings.Builder
	s.WriteString(headerStyle.Render("WOBBLY") + "\n")
	s.WriteString(l.status() + "\n\n")

	p := l.w.Params()
	s.WriteString(row("spring k", fmt.Sprintf("%s %.1f", rangeBar(p.SpringK, dynamo.SpringKRange.Min, dynamo.SpringKRange.Max, 10), p.SpringK)))
	s.WriteString(row("friction", fmt.Sprintf("%s %.1f", rangeBar(p.Friction, dynamo.FrictionRange.Min, dynamo.FrictionRange.Max, 10), p.Friction)))
	s.WriteString(row("slowdown", fmt.Sprintf("%.1fx", p.SlowdownFactor)))
	s.WriteString(row("range", fmt.Sprintf("%.0f", p.MovementRange)))
	s.WriteString("\n")

	size := l.actor.Size()
	s.WriteString(row("surface", fmt.Sprintf("%.0fx%.0f", size.X, size.Y)))
	s.WriteString(row("grab point", grabPoints[l.grabAt].name))
	s.WriteString(row("frames", fmt.Sprintf("%d", l.w.Frames())))
	if l.last.Index > 0 {
		b := l.last.Bounds
		s.WriteString(row("bounds", fmt.Sprintf("%.0f,%.0f %.0f,%.0f", b.X1, b.Y1, b.X2, b.Y2)))
	}

	if chart := sparkline(l.growth, 30, 4, "bounds growth"); chart != "" {
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Grab ←↑↓→:Move C:Point\nR:Resize T:Theme Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(l.canvas.String()),
		panelStyle.Render(s.String()),
	)
}

// RunLive runs the live view until the user quits.
func RunLive(cfg *config.Config) error {
	l, err := NewLive(cfg, clock.Monotonic())
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(l, tea.WithAltScreen()).Run()
	return err
}
