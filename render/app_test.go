package render

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/countdown-tracker/constants"
	"github.com/lixenwraith/countdown-tracker/engine"
)

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen, *engine.FrameQueue) {
	t.Helper()
	s := newSimScreen(t, 80, 24)
	frames := engine.NewFrameQueue()
	app := NewApp(s, frames, NewTerminalRenderer(s, "TEST", false), 5*time.Millisecond, zerolog.Nop())
	return app, s, frames
}

func TestAppInitialSnapshotIsZero(t *testing.T) {
	app, _, _ := newTestApp(t)
	assert.Equal(t, engine.ZeroSnapshot, app.Snapshot())
	assert.False(t, app.Expired())
}

func TestAppRenderFrameDrivesEngine(t *testing.T) {
	app, s, frames := newTestApp(t)
	clock := engine.NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	eng := engine.New(frames,
		engine.WithTimeProvider(clock),
		engine.WithExpireHandler(func(*engine.Handle) { app.MarkExpired() }),
	)

	h, err := eng.StartAt("2025-01-01T00:00:03Z", app.Publish)
	require.NoError(t, err)
	defer h.Stop()
	assert.Equal(t, "03", app.Snapshot().Seconds)

	clock.Advance(time.Second)
	app.RenderFrame()
	assert.Equal(t, "02", app.Snapshot().Seconds)
	assert.NotEqual(t, -1, findRow(s, []string{"00", ":", "00", ":", "00", ":", "02"}))

	clock.Advance(5 * time.Second)
	app.RenderFrame()
	assert.True(t, app.Expired())
	assert.Equal(t, engine.StateStopped, h.State())
	assert.NotEqual(t, -1, findRow(s, []string{"EXPIRED"}))
	assert.Equal(t, uint64(2), app.FrameCount())
}

func TestAppPublishClearsExpired(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.MarkExpired()
	require.True(t, app.Expired())

	app.Publish(engine.ComputeSnapshot(61_000))
	assert.False(t, app.Expired())
	assert.Equal(t, "01", app.Snapshot().Minutes)
}

func runApp(t *testing.T, app *App, ctx context.Context) <-chan error {
	t.Helper()
	result := make(chan error, 1)
	go func() { result <- app.Run(ctx) }()
	require.Eventually(t, func() bool { return app.FrameCount() > 0 }, time.Second, time.Millisecond)
	return result
}

func TestAppRunQuitsOnKey(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
	}{
		{"Escape", tcell.KeyEscape, 0, tcell.ModNone},
		{"q", tcell.KeyRune, 'q', tcell.ModNone},
		{"Q", tcell.KeyRune, 'Q', tcell.ModNone},
		{"Ctrl-C key", tcell.KeyCtrlC, 0, tcell.ModCtrl},
		{"Ctrl-C rune", tcell.KeyRune, 'c', tcell.ModCtrl},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, s, _ := newTestApp(t)
			result := runApp(t, app, context.Background())

			s.InjectKey(tt.key, tt.r, tt.mod)

			select {
			case err := <-result:
				assert.NoError(t, err)
			case <-time.After(2 * time.Second):
				t.Fatal("app did not quit")
			}
		})
	}
}

func TestAppRunIgnoresOtherKeys(t *testing.T) {
	app, s, _ := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	result := runApp(t, app, ctx)

	s.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	start := app.FrameCount()
	require.Eventually(t, func() bool { return app.FrameCount() > start+2 }, time.Second, time.Millisecond)

	select {
	case <-result:
		t.Fatal("app quit on an unbound key")
	default:
	}

	cancel()
	assert.ErrorIs(t, <-result, context.Canceled)
}

func TestHandleEventQuitKeys(t *testing.T) {
	app, _, _ := newTestApp(t)

	assert.False(t, app.handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.False(t, app.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModCtrl)))
	assert.False(t, app.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'C', tcell.ModCtrl)))
	assert.True(t, app.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone)))
}

func TestAppRunRecentersOnResize(t *testing.T) {
	s := newSimScreen(t, 80, 24)
	frames := engine.NewFrameQueue()
	// Long interval so only the resize redraws
	app := NewApp(s, frames, NewTerminalRenderer(s, "TEST", false), time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	result := runApp(t, app, ctx)

	labels := constants.FieldLabels[:]
	blockWidth := layoutWidth(columnWidths(engine.ZeroSnapshot))
	row := findRow(s, labels)
	require.NotEqual(t, -1, row)
	assert.Equal(t, (80-blockWidth)/2, strings.Index(rowText(s, row), "DAYS"))

	s.SetSize(50, 12)
	require.NoError(t, s.PostEvent(tcell.NewEventResize(50, 12)))

	require.Eventually(t, func() bool {
		row := findRow(s, labels)
		return row != -1 && strings.Index(rowText(s, row), "DAYS") == (50-blockWidth)/2
	}, 2*time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, app.FrameCount(), uint64(2))

	cancel()
	assert.ErrorIs(t, <-result, context.Canceled)
}
