package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/wobbly/internal/dynamo"
	"github.com/san-kum/wobbly/internal/host"
)

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawBackdrop(40)
	a.drawSurface()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) drawBackdrop(spacing int32) {
	for x := int32(0); x < screenW; x += spacing {
		rl.DrawLine(x, 0, x, screenH, ColGrid)
	}
	for y := int32(0); y < screenH; y += spacing {
		rl.DrawLine(0, y, screenW, y, ColGrid)
	}
}

func toScreen(pos dynamo.Vector, v host.TextureVertex) rl.Vector2 {
	return rl.NewVector2(float32(pos.X+v.X), float32(pos.Y+v.Y))
}

// drawSurface fills the paint mesh, deformed while the effect is
// enabled, then outlines it.
func (a *App) drawSurface() {
	pos := a.Actor.Position()
	mesh := a.Actor.Mesh()
	n := a.Actor.MeshTiles() + 1

	for row := 0; row+1 < n; row++ {
		for col := 0; col+1 < n; col++ {
			tl := toScreen(pos, mesh[row*n+col])
			tr := toScreen(pos, mesh[row*n+col+1])
			bl := toScreen(pos, mesh[(row+1)*n+col])
			br := toScreen(pos, mesh[(row+1)*n+col+1])
			rl.DrawTriangle(tl, bl, tr, ColFill)
			rl.DrawTriangle(tr, bl, br, ColFill)
		}
	}

	if a.ShowGrid {
		for row := 0; row < n; row++ {
			for col := 0; col < n; col++ {
				p := toScreen(pos, mesh[row*n+col])
				if col+1 < n {
					rl.DrawLineV(p, toScreen(pos, mesh[row*n+col+1]), ColAccent)
				}
				if row+1 < n {
					rl.DrawLineV(p, toScreen(pos, mesh[(row+1)*n+col]), ColAccent)
				}
			}
		}
	}

	if a.ShowVolume {
		if vol, ok := a.Actor.PaintVolume(host.VolumeDeformed); ok {
			b := vol.Box()
			rl.DrawRectangleLinesEx(rl.NewRectangle(
				float32(pos.X+b.X1), float32(pos.Y+b.Y1),
				float32(b.X2-b.X1), float32(b.Y2-b.Y1),
			), 1, ColVolume)
		}
	}

	if anchor := a.Effect.Anchor(); anchor != nil {
		p := pos.Add(anchor.Position())
		rl.DrawCircleV(rl.NewVector2(float32(p.X), float32(p.Y)), 5, ColSelect)
	}
}

func (a *App) DrawHUD() {
	a.drawText("wobbly", 30, 30, 24, ColSelect)
	a.drawText(a.paramsLine(), 140, 34, 16, ColText)

	status, col := a.status()
	a.drawText(status, 1130, 30, 16, col)

	size := a.Actor.Size()
	a.drawText(fmt.Sprintf("%.0fx%.0f  frames %d", size.X, size.Y, a.Effect.Frames()), 30, 60, 14, ColTextDim)

	a.DrawTelemetry()

	a.drawText("[DRAG] WOBBLE  [R] RESIZE  [P] PRESET  [V] VOLUME  [G] GRID  [A] AUDIO  [ESC] QUIT", 560, 680, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, 680, 14, ColTextDim)
}

// DrawTelemetry plots bounds growth over recent frames.
func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, 600
	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("growth %.3f", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}
