package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/spiders/config"
	"github.com/pthm-cable/spiders/renderer"
)

// RunTerminal draws the swarm as braille dots in the terminal, using the
// mouse as the pointer source. Esc, q or Ctrl-C quits.
func RunTerminal(ctx context.Context, cfg *config.Config, opts GameConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	return runTerminal(ctx, cfg, opts, screen)
}

// runTerminal runs the frame loop on an initialized screen.
func runTerminal(ctx context.Context, cfg *config.Config, opts GameConfig, screen tcell.Screen) error {
	cols, rows := screen.Size()
	surface := renderer.NewTerminalSurface(cols, rows)

	g, err := NewGame(terminalConfig(cfg), opts, surface)
	if err != nil {
		return err
	}
	defer g.Unload()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	frame := time.Second / time.Duration(cfg.Screen.TargetFPS)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	last := time.Now()

	for !g.Done() {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !g.handleTerminalEvent(ev, screen, surface) {
				return nil
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			g.Frame(dt, func() {
				surface.Present(screen)
				screen.Show()
			})
		}
	}
	slog.Info("max ticks reached", "tick", g.Tick())
	return nil
}

// handleTerminalEvent applies one input event. It returns false to quit.
func (g *Game) handleTerminalEvent(ev tcell.Event, screen tcell.Screen, surface *renderer.TerminalSurface) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 's':
			g.snapshotToOutput()
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		g.PointerMove(cellCenter(x, y))

	case *tcell.EventResize:
		screen.Sync()
		cols, rows := screen.Size()
		surface.Resize(cols, rows)
		g.Resize(surface.Size())
	}
	return true
}

// terminalConfig returns a copy of cfg with the wander orbit shrunk to dot
// scale. The other pursuit values already scale with the viewport width.
func terminalConfig(cfg *config.Config) *config.Config {
	c := *cfg
	c.Pursuit.WanderRadiusMin *= cfg.Terminal.WanderScale
	c.Pursuit.WanderRadiusSpread *= cfg.Terminal.WanderScale
	return &c
}

// cellCenter maps a terminal cell to the dot at its center.
func cellCenter(col, row int) (x, y float64) {
	return float64(col*renderer.DotsPerCellX) + renderer.DotsPerCellX/2,
		float64(row*renderer.DotsPerCellY) + renderer.DotsPerCellY/2
}
