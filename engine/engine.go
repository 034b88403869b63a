package engine

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// State of a countdown handle
type State int32

const (
	StateNotStarted State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Engine starts countdowns on a host frame scheduler
type Engine struct {
	frames   FrameScheduler
	clock    TimeProvider
	log      zerolog.Logger
	onExpire func(*Handle)
}

// Option configures an Engine
type Option func(*Engine)

// WithTimeProvider replaces the real clock, used by tests and replays
func WithTimeProvider(tp TimeProvider) Option {
	return func(e *Engine) {
		e.clock = tp
	}
}

// WithLogger sets the engine logger, default discards
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithExpireHandler registers a callback fired once when a handle reaches its target.
// It is not called for handles stopped through Stop
func WithExpireHandler(fn func(*Handle)) Option {
	return func(e *Engine) {
		e.onExpire = fn
	}
}

// New creates an engine ticking on frames
func New(frames FrameScheduler, opts ...Option) *Engine {
	e := &Engine{
		frames: frames,
		clock:  NewMonotonicTimeProvider(),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartAt parses raw once and starts a countdown toward it
func (e *Engine) StartAt(raw string, onTick func(Snapshot)) (*Handle, error) {
	target, err := ParseTarget(raw)
	if err != nil {
		e.log.Debug().Err(err).Str("target", raw).Msg("countdown rejected")
		return nil, err
	}
	return e.Start(target, onTick)
}

// Start runs the first tick synchronously and keeps ticking once per frame until
// the target passes or Stop is called. An expired target yields a stopped handle
// that never published a snapshot
func (e *Engine) Start(target Target, onTick func(Snapshot)) (*Handle, error) {
	if !target.IsValid() {
		return nil, &InvalidTargetError{Input: target.String()}
	}
	if onTick == nil {
		onTick = func(Snapshot) {}
	}

	h := &Handle{
		id:     uuid.NewString(),
		engine: e,
		target: target,
		onTick: onTick,
	}
	h.state.Store(int32(StateRunning))

	e.log.Debug().
		Str("handle", h.id).
		Str("target", target.String()).
		Msg("countdown started")

	h.tick()
	return h, nil
}

// Handle controls one running countdown
type Handle struct {
	id     string
	engine *Engine
	target Target
	onTick func(Snapshot)

	mu      sync.Mutex
	pending FrameID
	state   atomic.Int32
	ticks   atomic.Uint64
}

// ID returns the handle identifier used in logs and status output
func (h *Handle) ID() string {
	return h.id
}

// Target returns the instant this handle counts toward
func (h *Handle) Target() Target {
	return h.target
}

// State returns the current lifecycle state
func (h *Handle) State() State {
	return State(h.state.Load())
}

// Ticks returns the number of snapshots published
func (h *Handle) Ticks() uint64 {
	return h.ticks.Load()
}

// Stop cancels the pending frame. Safe to call repeatedly and after expiry
func (h *Handle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.State() == StateStopped {
		return
	}
	h.state.Store(int32(StateStopped))
	if h.pending != 0 {
		h.engine.frames.CancelFrame(h.pending)
		h.pending = 0
	}

	h.engine.log.Debug().
		Str("handle", h.id).
		Uint64("ticks", h.ticks.Load()).
		Msg("countdown stopped")
}

// tick is one recompute-and-publish cycle
func (h *Handle) tick() {
	h.mu.Lock()
	if h.State() != StateRunning {
		h.mu.Unlock()
		return
	}
	h.pending = 0

	remaining := h.target.RemainingMs(h.engine.clock.Now())
	if remaining < 0 {
		h.state.Store(int32(StateStopped))
		h.mu.Unlock()

		h.engine.log.Debug().
			Str("handle", h.id).
			Uint64("ticks", h.ticks.Load()).
			Msg("countdown expired")

		if h.engine.onExpire != nil {
			h.engine.onExpire(h)
		}
		return
	}
	h.mu.Unlock()

	h.ticks.Add(1)
	h.onTick(ComputeSnapshot(remaining))

	// onTick may have stopped the handle
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.State() == StateRunning {
		h.pending = h.engine.frames.RequestFrame(h.tick)
	}
}
