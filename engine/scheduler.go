package engine

import "sync"

// FrameID identifies a pending frame request, zero is never issued
type FrameID uint64

// FrameScheduler is the host's per-refresh callback primitive.
// RequestFrame must not invoke fn synchronously
type FrameScheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

type frameRequest struct {
	id FrameID
	fn func()
}

// FrameQueue is a FrameScheduler drained explicitly by its owner.
// The render loop flushes it once per frame; tests flush it by hand
type FrameQueue struct {
	mu      sync.Mutex
	nextID  FrameID
	pending []frameRequest
}

// NewFrameQueue creates an empty frame queue
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{
		pending: make([]frameRequest, 0, 4),
	}
}

// RequestFrame queues fn for the next Flush
func (q *FrameQueue) RequestFrame(fn func()) FrameID {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextID++
	q.pending = append(q.pending, frameRequest{id: q.nextID, fn: fn})
	return q.nextID
}

// CancelFrame drops a pending request, unknown or already-run ids are ignored
func (q *FrameQueue) CancelFrame(id FrameID) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, req := range q.pending {
		if req.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Flush runs every callback queued before the call in request order.
// Callbacks requested during the flush wait for the next one, callbacks cancelled
// during the flush are skipped. Returns the number run
func (q *FrameQueue) Flush() int {
	q.mu.Lock()
	limit := q.nextID
	q.mu.Unlock()

	ran := 0
	for {
		q.mu.Lock()
		// Pending is ordered by id since ids are issued monotonically
		if len(q.pending) == 0 || q.pending[0].id > limit {
			q.mu.Unlock()
			return ran
		}
		req := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		req.fn()
		ran++
	}
}

// Len returns the number of pending requests
func (q *FrameQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
