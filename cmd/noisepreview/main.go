// Noise field preview tool - interactive visualization of the line wobble with sliders.
//
// Usage: go run ./cmd/noisepreview
package main

import (
	"fmt"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spiders/components"
	"github.com/pthm-cable/spiders/renderer"
	"github.com/pthm-cable/spiders/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 128
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Noise Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := DefaultFieldParams()

	grid := make([]float64, gridSize*gridSize)
	pixels := make([]rl.Color, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	// The leg preview draws straight onto the window.
	legs := renderer.NewRaylibSurface(1)
	var path []components.Point

	animating := false
	needsRegen := true
	var lo, hi float64

	for !rl.WindowShouldClose() {
		if animating {
			params.T += float64(rl.GetFrameTime())
			needsRegen = true
		}

		if needsRegen {
			lo, hi = sampleField(grid, gridSize, params)
			for i, v := range grid {
				pixels[i] = shade(v)
			}
			rl.UpdateTexture(texture, pixels)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 20)
		rl.DrawText(fmt.Sprintf("Min: %.3f  Max: %.3f", lo, hi), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("t: %.2f", params.T), 15, statsY+20, 16, rl.DarkGray)

		// Leg preview: one wobbly line across the bottom strip
		wobble := renderer.Wobble{
			Field:     systems.NoiseField{T: params.T},
			Steps:     params.Steps,
			Amplitude: params.Amplitude,
			Frequency: params.Frequency,
		}
		path = wobble.Path(path[:0], components.Point{X: 20, Y: windowHeight - 90}, components.Point{X: previewSize, Y: windowHeight - 60})
		rl.DrawRectangle(10, windowHeight-120, previewSize, 90, rl.Black)
		legs.StrokePolyline(path, rl.White)

		// Controls panel
		panelX := float32(previewSize + 30)
		panelY := float32(20)
		rl.DrawText("Noise Field", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		needsRegen = slider(&params.T, "Time (t)", "%.2f", 0, 200, panelX, &panelY) || needsRegen
		needsRegen = slider(&params.Span, "Span (field units)", "%.1f", 1, 200, panelX, &panelY) || needsRegen
		needsRegen = slider(&params.OffsetX, "Offset X", "%.1f", -100, 100, panelX, &panelY) || needsRegen
		needsRegen = slider(&params.OffsetY, "Offset Y", "%.1f", -100, 100, panelX, &panelY) || needsRegen

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15
		rl.DrawText("Wobble", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25

		slider(&params.Amplitude, "Amplitude", "%.2f", 0, 10, panelX, &panelY)
		slider(&params.Frequency, "Frequency divisor", "%.2f", 0.5, 20, panelX, &panelY)
		steps := float64(params.Steps)
		if slider(&steps, "Steps", "%.0f", 1, 200, panelX, &panelY) {
			params.Steps = int(steps)
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = DefaultFieldParams()
			needsRegen = true
		}
		panelY += 55

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range renderYAML(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), windowHeight-30, 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(strings.Join(renderYAML(params), "\n"))
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider bar and reports whether the value changed.
func slider(v *float64, label, format string, lo, hi float32, x float32, y *float32) bool {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		"", "",
		float32(*v), lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, *v), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	if next == float32(*v) {
		return false
	}
	*v = float64(next)
	return true
}

// renderYAML formats the render settings the preview controls.
func renderYAML(p FieldParams) []string {
	return []string{
		"render:",
		fmt.Sprintf("  noise_time: %.2f", p.T),
		fmt.Sprintf("  wobble_steps: %d", p.Steps),
		fmt.Sprintf("  wobble_amplitude: %.2f", p.Amplitude),
		fmt.Sprintf("  wobble_frequency: %.2f", p.Frequency),
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
