// Package runtime orchestrates sessions: the registry, the serialized
// state machine, and the timers that re-enter it. Game rules live in
// the game package, not here.
package runtime

import (
	"sync"

	"conclave/contract"
)

// Registry is the only process-wide mutable state: it owns the live
// session handles and the transient subscriber sinks a transport
// attaches per participant. Its lock is only ever held for map
// operations, never across session mutations.
type Registry struct {
	mu          sync.RWMutex
	handles     map[string]*handle
	subscribers map[string]map[string]contract.EventSink
}

func NewRegistry() *Registry {
	return &Registry{
		handles:     make(map[string]*handle),
		subscribers: make(map[string]map[string]contract.EventSink),
	}
}

// add registers a new handle; a false return means an id collision and
// the caller retries with a fresh id.
func (r *Registry) add(h *handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handles[h.session.ID]; exists {
		return false
	}
	r.handles[h.session.ID] = h
	return true
}

func (r *Registry) lookup(sessionID string) (*handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handles[sessionID]
	return h, ok
}

func (r *Registry) remove(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handles, sessionID)
	delete(r.subscribers, sessionID)
}

// Count reports live sessions, used by telemetry.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles)
}

// Subscribe attaches a participant's broadcast sink to a session.
func (r *Registry) Subscribe(sessionID, participantID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subscribers[sessionID]; !ok {
		r.subscribers[sessionID] = make(map[string]contract.EventSink)
	}
	r.subscribers[sessionID][participantID] = sink
}

// Unsubscribe detaches a participant's sink and drops empty session
// entries to avoid leaking map slots over time.
func (r *Registry) Unsubscribe(sessionID, participantID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sinks, ok := r.subscribers[sessionID]; ok {
		delete(sinks, participantID)
		if len(sinks) == 0 {
			delete(r.subscribers, sessionID)
		}
	}
}

// SinksFor resolves the active subscriber sinks of a session.
func (r *Registry) SinksFor(sessionID string) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sinks, ok := r.subscribers[sessionID]
	if !ok {
		return nil
	}
	res := make([]contract.EventSink, 0, len(sinks))
	for _, s := range sinks {
		res = append(res, s)
	}
	return res
}
