package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spiders/config"
	"github.com/pthm-cable/spiders/renderer"
)

// RunWindow opens a raylib window and runs until it is closed or MaxTicks is reached.
func RunWindow(cfg *config.Config, opts GameConfig) error {
	if cfg.Screen.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := NewGame(cfg, opts, renderer.NewRaylibSurface(cfg.Render.LineWidth))
	if err != nil {
		return err
	}
	defer g.Unload()

	for !rl.WindowShouldClose() && !g.Done() {
		g.handleInput()

		rl.BeginDrawing()
		g.Frame(float64(rl.GetFrameTime()), func() {
			if g.debugMode {
				g.drawDebugMenu()
			}
			rl.EndDrawing()
		})
	}
	return nil
}

// drawDebugMenu renders the debug overlay.
func (g *Game) drawDebugMenu() {
	panelX := float32(g.width) - 230
	panelY := float32(10)

	rl.DrawRectangle(int32(panelX), int32(panelY), 220, 96, rl.Color{R: 0, G: 0, B: 0, A: 180})
	rl.DrawRectangleLines(int32(panelX), int32(panelY), 220, 96, rl.Yellow)
	rl.DrawText("DEBUG [D to close]", int32(panelX)+10, int32(panelY)+8, 14, rl.Yellow)

	r := g.swarm.Renderer()
	r.IdleGlow = gui.CheckBox(rl.Rectangle{X: panelX + 10, Y: panelY + 30, Width: 14, Height: 14}, "Idle glow", r.IdleGlow)

	stats := g.swarm.Stats()
	rl.DrawText(fmt.Sprintf("Lit: %d  Legs: %d", stats.Lit, stats.Lines), int32(panelX)+10, int32(panelY)+52, 12, rl.White)

	perf := g.perfCollector.Stats()
	rl.DrawText(fmt.Sprintf("Frame: %v  FPS: %.0f", perf.AvgTickDuration, perf.FPS), int32(panelX)+10, int32(panelY)+70, 12, rl.White)

	gui.StatusBar(
		rl.Rectangle{X: 0, Y: float32(g.height) - 20, Width: float32(g.width), Height: 20},
		fmt.Sprintf("tick %d  t=%.2fs  mean dist %.1f  [S] snapshot", stats.Tick, stats.SimTime, stats.MeanDistance),
	)
}
