package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes window input for one frame.
func (g *Game) handleInput() {
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Debug overlay toggle
	if rl.IsKeyPressed(rl.KeyD) {
		g.debugMode = !g.debugMode
	}

	if rl.IsKeyPressed(rl.KeyS) {
		g.snapshotToOutput()
	}

	g.handlePointer()
}

// handlePointer forwards mouse motion and touches as pointer moves.
func (g *Game) handlePointer() {
	if rl.GetTouchPointCount() > 0 {
		p := rl.GetTouchPosition(0)
		g.PointerMove(float64(p.X), float64(p.Y))
		return
	}
	d := rl.GetMouseDelta()
	if d.X == 0 && d.Y == 0 {
		return
	}
	p := rl.GetMousePosition()
	g.PointerMove(float64(p.X), float64(p.Y))
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
}
