package render

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/countdown-tracker/constants"
	"github.com/lixenwraith/countdown-tracker/core"
	"github.com/lixenwraith/countdown-tracker/engine"
)

// App is the terminal host: it owns the frame loop that drives the engine's
// FrameQueue and redraws the latest snapshot on every frame
type App struct {
	screen   tcell.Screen
	frames   *engine.FrameQueue
	renderer *TerminalRenderer
	interval time.Duration
	log      zerolog.Logger

	latest     atomic.Pointer[engine.Snapshot]
	expired    atomic.Bool
	frameCount atomic.Uint64
}

// NewApp creates a host rendering on screen every interval
func NewApp(screen tcell.Screen, frames *engine.FrameQueue, renderer *TerminalRenderer, interval time.Duration, log zerolog.Logger) *App {
	a := &App{
		screen:   screen,
		frames:   frames,
		renderer: renderer,
		interval: interval,
		log:      log,
	}
	zero := engine.ZeroSnapshot
	a.latest.Store(&zero)
	return a
}

// Publish replaces the displayed snapshot, used as the engine's onTick
func (a *App) Publish(s engine.Snapshot) {
	a.latest.Store(&s)
	a.expired.Store(false)
}

// MarkExpired zeroes the fields and shows the expired banner
func (a *App) MarkExpired() {
	zero := engine.ZeroSnapshot
	a.latest.Store(&zero)
	a.expired.Store(true)
}

// Snapshot returns the snapshot drawn on the next frame
func (a *App) Snapshot() engine.Snapshot {
	return *a.latest.Load()
}

// Expired reports whether the expired banner is showing
func (a *App) Expired() bool {
	return a.expired.Load()
}

// FrameCount returns the number of frames rendered
func (a *App) FrameCount() uint64 {
	return a.frameCount.Load()
}

// RenderFrame runs one refresh cycle: due engine ticks first, then draw and show
func (a *App) RenderFrame() {
	a.frames.Flush()
	a.renderer.RenderFrame(a.Snapshot(), a.expired.Load())
	a.screen.Show()
	a.frameCount.Add(1)
}

// Run drives frames until a quit key or ctx cancellation.
// Returns nil on quit and ctx.Err() on cancellation; the caller owns screen Init/Fini
func (a *App) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	eventChan := make(chan tcell.Event, constants.EventChannelSize)
	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	})

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.RenderFrame()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-eventChan:
			if !a.handleEvent(ev) {
				a.log.Debug().Uint64("frames", a.FrameCount()).Msg("quit requested")
				return nil
			}

		case <-ticker.C:
			a.RenderFrame()
		}
	}
}

// handleEvent returns false when the user asked to quit
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			if ev.Rune() == 'q' || ev.Rune() == 'Q' {
				return false
			}
			// Some terminals report Ctrl-C as a modified rune
			if ev.Modifiers()&tcell.ModCtrl != 0 && (ev.Rune() == 'c' || ev.Rune() == 'C') {
				return false
			}
		}

	case *tcell.EventResize:
		a.screen.Sync()
		a.RenderFrame()
	}
	return true
}
