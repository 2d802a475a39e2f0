package services

import (
	"context"
	"sync"
	"time"

	"github.com/warikan-app/split-api/models"
	"github.com/warikan-app/split-api/utils"
)

const flushTimeout = 10 * time.Second

// Writeback coalesces session patches into a single write per debounce
// window. Each session has at most one in-flight timer; a new patch merges
// into the pending one and reschedules the timer. Delivery is at most once
// per window: flush errors are logged, never retried, and the caller never
// sees them. This is the server-side shape of a fire-and-forget debounced
// save.
type Writeback struct {
	store SessionStore
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*pendingWrite
	closed  bool
	wg      sync.WaitGroup
}

type pendingWrite struct {
	patch models.SessionPatch
	timer *time.Timer
	gen   uint64
}

func NewWriteback(store SessionStore, delay time.Duration) *Writeback {
	return &Writeback{
		store:   store,
		delay:   delay,
		pending: make(map[string]*pendingWrite),
	}
}

// Enqueue records a patch for the session, merging it into any patch already
// waiting and restarting the debounce timer.
func (w *Writeback) Enqueue(sessionID string, patch models.SessionPatch) {
	if patch.IsZero() {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	entry, ok := w.pending[sessionID]
	if !ok {
		entry = &pendingWrite{}
		w.pending[sessionID] = entry
	} else {
		entry.timer.Stop()
	}

	entry.patch = entry.patch.Merge(patch)
	entry.gen++
	gen := entry.gen
	entry.timer = time.AfterFunc(w.delay, func() {
		w.fire(sessionID, gen)
	})
}

// fire flushes the pending patch if it has not been superseded by a newer
// enqueue since the timer was set.
func (w *Writeback) fire(sessionID string, gen uint64) {
	w.mu.Lock()
	entry, ok := w.pending[sessionID]
	if !ok || entry.gen != gen {
		w.mu.Unlock()
		return
	}
	delete(w.pending, sessionID)
	patch := entry.patch
	w.wg.Add(1)
	w.mu.Unlock()

	defer w.wg.Done()
	w.write(sessionID, patch)
}

// Flush writes out everything still pending, synchronously. Used on
// shutdown.
func (w *Writeback) Flush() {
	w.mu.Lock()
	drained := make(map[string]models.SessionPatch, len(w.pending))
	for id, entry := range w.pending {
		entry.timer.Stop()
		drained[id] = entry.patch
	}
	w.pending = make(map[string]*pendingWrite)
	w.mu.Unlock()

	for id, patch := range drained {
		w.write(id, patch)
	}
	w.wg.Wait()
}

// Close flushes pending writes and rejects further enqueues.
func (w *Writeback) Close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	w.Flush()
}

func (w *Writeback) write(sessionID string, patch models.SessionPatch) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	if err := w.store.Update(ctx, sessionID, patch); err != nil {
		utils.SafeError("writeback flush failed for session %s: %v", utils.MaskID(sessionID), err)
	}
}
