package status

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/countdown-tracker/engine"
)

// Registry is the live status shared by the frame loop and the HTTP server.
// Writers are engine callbacks on the frame goroutine; readers are request handlers
type Registry struct {
	handleID atomic.Pointer[string]
	state    atomic.Int32
	targetMs atomic.Int64
	ticks    atomic.Uint64
	starts   atomic.Uint64
	expiries atomic.Uint64
	latest   atomic.Pointer[engine.Snapshot]
	updated  atomic.Int64 // unix ms of the last publish
}

// Status is the JSON view served at /snapshot
type Status struct {
	Handle    string          `json:"handle,omitempty"`
	State     string          `json:"state"`
	Target    *time.Time      `json:"target,omitempty"`
	Ticks     uint64          `json:"ticks"`
	Starts    uint64          `json:"starts"`
	Expiries  uint64          `json:"expiries"`
	Snapshot  engine.Snapshot `json:"snapshot"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// NewRegistry creates a registry in the not-started state
func NewRegistry() *Registry {
	r := &Registry{}
	zero := engine.ZeroSnapshot
	r.latest.Store(&zero)
	return r
}

// Started records a new running handle
func (r *Registry) Started(h *engine.Handle) {
	id := h.ID()
	r.handleID.Store(&id)
	r.targetMs.Store(h.Target().UnixMilli())
	r.state.Store(int32(h.State()))
	r.starts.Add(1)
}

// Publish records a snapshot, usable as an onTick decorator
func (r *Registry) Publish(s engine.Snapshot) {
	r.latest.Store(&s)
	r.ticks.Add(1)
	r.updated.Store(time.Now().UnixMilli())
}

// Expired records natural completion
func (r *Registry) Expired() {
	zero := engine.ZeroSnapshot
	r.latest.Store(&zero)
	r.state.Store(int32(engine.StateStopped))
	r.expiries.Add(1)
}

// Stopped records an explicit stop
func (r *Registry) Stopped() {
	r.state.Store(int32(engine.StateStopped))
}

// State returns the last recorded handle state
func (r *Registry) State() engine.State {
	return engine.State(r.state.Load())
}

// Latest returns the last published snapshot
func (r *Registry) Latest() engine.Snapshot {
	return *r.latest.Load()
}

// Status assembles a consistent-enough view for reporting
func (r *Registry) Status() Status {
	st := Status{
		State:    r.State().String(),
		Ticks:    r.ticks.Load(),
		Starts:   r.starts.Load(),
		Expiries: r.expiries.Load(),
		Snapshot: r.Latest(),
	}
	if id := r.handleID.Load(); id != nil {
		st.Handle = *id
		target := time.UnixMilli(r.targetMs.Load()).UTC()
		st.Target = &target
	}
	if ms := r.updated.Load(); ms != 0 {
		updated := time.UnixMilli(ms).UTC()
		st.UpdatedAt = &updated
	}
	return st
}
