package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/countdown-tracker/audio"
	"github.com/lixenwraith/countdown-tracker/config"
	"github.com/lixenwraith/countdown-tracker/constants"
	"github.com/lixenwraith/countdown-tracker/core"
	"github.com/lixenwraith/countdown-tracker/engine"
	"github.com/lixenwraith/countdown-tracker/render"
	"github.com/lixenwraith/countdown-tracker/status"
)

// newScreen is replaced by tests with a simulation screen
var newScreen = tcell.NewScreen

// session wires one engine handle to the display, the status registry and the chime.
// A changed target replaces the handle, never mutates it
type session struct {
	mu     sync.Mutex // serializes start, reload and stop
	cfg    *config.Config
	target engine.Target
	handle *engine.Handle

	// cbMu orders handle callbacks against restarts. gen names the current handle,
	// callbacks of retired handles are dropped
	cbMu sync.Mutex
	gen  uint64

	frames   engine.FrameScheduler
	clock    engine.TimeProvider
	app      *render.App
	renderer *render.TerminalRenderer
	reg      *status.Registry
	chime    *audio.Chime
	log      zerolog.Logger
}

// start stops any running handle and counts down to cfg.Target
func (s *session) start(cfg *config.Config) error {
	target, err := cfg.ParsedTarget()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked(cfg, target)
}

// reload is the config watcher callback. Only a changed target restarts the countdown,
// the title applies live and the remaining fields are read once at startup
func (s *session) reload(cfg *config.Config) error {
	target, err := cfg.ParsedTarget()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev := s.cfg; prev != nil {
		if cfg.FrameRate != prev.FrameRate || cfg.ShowHelp != prev.ShowHelp ||
			cfg.Audio != prev.Audio || cfg.Status != prev.Status || cfg.Log != prev.Log {
			s.log.Warn().Msg("frame_rate, show_help, audio, status and log changes apply on restart")
		}
	}

	if s.handle != nil && target.UnixMilli() == s.target.UnixMilli() {
		s.renderer.SetTitle(cfg.Title)
		s.cfg.Title = cfg.Title
		s.log.Debug().Str("target", target.String()).Msg("target unchanged, countdown kept")
		return nil
	}
	return s.startLocked(cfg, target)
}

func (s *session) startLocked(cfg *config.Config, target engine.Target) error {
	gen := s.retire()
	s.renderer.SetTitle(cfg.Title)

	opts := []engine.Option{
		engine.WithLogger(s.log),
		engine.WithExpireHandler(func(h *engine.Handle) { s.expired(gen, h) }),
	}
	if s.clock != nil {
		opts = append(opts, engine.WithTimeProvider(s.clock))
	}
	eng := engine.New(s.frames, opts...)

	h, err := eng.Start(target, func(snap engine.Snapshot) { s.publish(gen, snap) })
	if err != nil {
		return err
	}

	running := *cfg
	s.cfg = &running
	s.target = target
	s.handle = h
	s.reg.Started(h)
	return nil
}

// retire stops the current handle and invalidates its in-flight callbacks,
// returning the generation of the next handle
func (s *session) retire() uint64 {
	s.cbMu.Lock()
	defer s.cbMu.Unlock()

	s.gen++
	if s.handle != nil {
		s.handle.Stop()
		s.reg.Stopped()
		s.handle = nil
	}
	return s.gen
}

func (s *session) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retire()
}

func (s *session) publish(gen uint64, snap engine.Snapshot) {
	s.cbMu.Lock()
	defer s.cbMu.Unlock()

	if gen != s.gen {
		return
	}
	s.app.Publish(snap)
	s.reg.Publish(snap)
}

func (s *session) expired(gen uint64, h *engine.Handle) {
	s.cbMu.Lock()
	defer s.cbMu.Unlock()

	if gen != s.gen {
		s.log.Debug().Str("handle", h.ID()).Msg("expiry of replaced countdown ignored")
		return
	}
	s.log.Info().Str("handle", h.ID()).Str("target", h.Target().String()).Msg("countdown reached target")
	s.app.MarkExpired()
	s.reg.Expired()
	s.chime.Play()
}

// runCountdown owns the terminal for the lifetime of the widget: mount starts the
// countdown, quit or ctx cancellation stops it
func runCountdown(ctx context.Context, cfg *config.Config, watchPath string, log zerolog.Logger) error {
	screen, err := newScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	core.RegisterScreen(screen)
	defer func() {
		core.RegisterScreen(nil)
		screen.Fini()
	}()

	chime := audio.NewChime(&cfg.Audio, log)
	if err := chime.Initialize(); err != nil {
		// Non-fatal, the countdown runs without sound
		log.Warn().Err(err).Msg("audio unavailable")
	}
	defer chime.Close()

	frames := engine.NewFrameQueue()
	renderer := render.NewTerminalRenderer(screen, cfg.Title, cfg.ShowHelp)
	app := render.NewApp(screen, frames, renderer, constants.FrameInterval(cfg.FrameRate), log)

	sess := &session{
		frames:   frames,
		app:      app,
		renderer: renderer,
		reg:      status.NewRegistry(),
		chime:    chime,
		log:      log,
	}

	if err := sess.start(cfg); err != nil {
		return err
	}
	defer sess.stop()

	if cfg.Status.Addr != "" {
		srv := status.NewServer(cfg.Status.Addr, sess.reg, log)
		if err := srv.Start(); err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn().Err(err).Msg("status server shutdown")
			}
		}()
	}

	if watchPath != "" {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		if err := config.NewWatcher(watchPath, config.DefaultReloadDelay, log, sess.reload).Start(watchCtx); err != nil {
			return err
		}
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
