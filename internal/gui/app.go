package gui

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/wobbly/internal/audio"
	"github.com/san-kum/wobbly/internal/clock"
	"github.com/san-kum/wobbly/internal/config"
	"github.com/san-kum/wobbly/internal/dynamo"
	"github.com/san-kum/wobbly/internal/effect"
	"github.com/san-kum/wobbly/internal/host"
)

const (
	screenW = 1280
	screenH = 720

	telemetrySize = 240
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)
	ColFill    = rl.NewColor(40, 60, 90, 255)
	ColVolume  = rl.NewColor(200, 80, 80, 255)
)

type App struct {
	Cfg       *config.Config
	Actor     *host.Actor
	Effect    *effect.Wobbly
	Pointer   *host.Pointer
	Loop      *clock.Loop
	Font      rl.Font
	Telemetry []float64
	Audio     *audio.Sonifier

	ShowVolume bool
	ShowGrid   bool
	presets    []string
	preset     int
}

func initWindow() {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(screenW, screenH, "wobbly")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont prefers Liberation Mono and falls back to raylib's built-in
// font when it is not installed.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(cfg *config.Config, presets []string) (*App, error) {
	a := &App{
		Cfg:        cfg,
		Font:       loadFont(),
		Telemetry:  make([]float64, 0, telemetrySize),
		ShowVolume: true,
		ShowGrid:   true,
		Audio:      audio.NewSonifier(),
		presets:    presets,
	}
	if err := a.attach(); err != nil {
		return nil, err
	}
	return a, nil
}

// attach builds a fresh actor and effect from the current config.
func (a *App) attach() error {
	if a.Effect != nil {
		a.Effect.Destroy()
	}

	src := clock.Monotonic()
	loop := clock.NewLoop(src)
	w, err := effect.New(loop, src,
		effect.WithParams(a.Cfg.Params),
		effect.WithIntegrator(a.Cfg.NewIntegrator()),
		effect.WithObserver(effect.ObserverFunc(a.onFrame)),
		effect.WithObserver(a.Audio),
	)
	if err != nil {
		return err
	}

	actor := host.NewActor("window", a.Cfg.Surface.Position(), a.Cfg.Surface.Size())
	actor.Tiles = a.Cfg.Tiles
	actor.AddEffect(w)

	a.Loop, a.Effect, a.Actor = loop, w, actor
	a.Pointer = host.NewPointer(actor, w)
	a.Telemetry = a.Telemetry[:0]
	return nil
}

func (a *App) onFrame(f effect.Frame) {
	s := f.Bounds.Size()
	a.Telemetry = append(a.Telemetry, s.X*s.Y/(f.Rest.X*f.Rest.Y))
	if len(a.Telemetry) > telemetrySize {
		a.Telemetry = a.Telemetry[1:]
	}
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, presets []string) error {
	initWindow()
	defer rl.CloseWindow()

	app, err := NewApp(cfg, presets)
	if err != nil {
		return err
	}
	app.RunLoop()
	return app.Audio.Stop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
	a.Effect.Destroy()
}

func (a *App) Update() {
	m := rl.GetMousePosition()
	at := dynamo.Vector{X: float64(m.X), Y: float64(m.Y)}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		a.Pointer.Press(at)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		a.Pointer.Move(at)
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		a.Pointer.Release()
	}

	switch {
	case rl.IsKeyPressed(rl.KeyR):
		a.toggleSize()
	case rl.IsKeyPressed(rl.KeyV):
		a.ShowVolume = !a.ShowVolume
	case rl.IsKeyPressed(rl.KeyG):
		a.ShowGrid = !a.ShowGrid
	case rl.IsKeyPressed(rl.KeyP):
		a.nextPreset()
	case rl.IsKeyPressed(rl.KeyA):
		a.toggleAudio()
	}

	a.Loop.Dispatch()
}

func (a *App) toggleSize() {
	base := a.Cfg.Surface.Size()
	next := base
	if a.Actor.Size() == base {
		next = base.Scale(1.4)
	}
	a.Actor.SetSize(next)
}

func (a *App) toggleAudio() {
	if a.Audio.Active() {
		if err := a.Audio.Stop(); err != nil {
			log.Printf("wobbly: audio: %v", err)
		}
		return
	}
	if err := a.Audio.Start(); err != nil {
		log.Printf("wobbly: audio unavailable: %v", err)
	}
}

// nextPreset swaps in the next preset's tunables while keeping the
// window where it is.
func (a *App) nextPreset() {
	if len(a.presets) == 0 || a.Pointer.Down() {
		return
	}
	a.preset = (a.preset + 1) % len(a.presets)
	name := a.presets[a.preset]
	cfg := config.GetPreset(name)
	if cfg == nil {
		return
	}

	pos := a.Actor.Position()
	cfg.Surface.X, cfg.Surface.Y = pos.X, pos.Y
	a.Cfg = cfg
	if err := a.attach(); err != nil {
		log.Printf("wobbly: preset %s: %v", name, err)
		return
	}
	log.Printf("wobbly: switched to preset %s", name)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) status() (string, rl.Color) {
	switch {
	case a.Effect.UngrabPending():
		return "RELEASING", ColAccent
	case a.Effect.Holding():
		return "GRABBED", ColSelect
	case a.Effect.Ticking():
		return "SETTLING", ColAccent
	}
	return "AT REST", ColTextDim
}

func (a *App) paramsLine() string {
	p := a.Effect.Params()
	return fmt.Sprintf("k %.1f  friction %.1f  slowdown %.1f  range %.0f",
		p.SpringK, p.Friction, p.SlowdownFactor, p.MovementRange)
}
