package playback

import "sync"

// PlayerID is the opaque, engine-assigned identifier of one live
// playback engine instance.
type PlayerID string

// Registry maps player ids to their state records. Mutating access is
// serialized per key: engine callbacks and user commands may arrive on
// different goroutines, and neither may observe a torn record. Lookups
// for different players proceed independently.
//
// The registry is constructor-injected into every session rather than
// held as package state, so tests and multi-player shells each own
// their table.
type Registry struct {
	mu      sync.RWMutex
	records map[PlayerID]*entry
}

type entry struct {
	mu  sync.RWMutex
	rec *Record
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[PlayerID]*entry)}
}

// Insert registers the record for id. It is called exactly once, by
// session construction.
func (r *Registry) Insert(id PlayerID, rec *Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[id] = &entry{rec: rec}
}

// Remove unregisters the record for id and reports whether one was
// removed. Subsequent lookups for id fail cleanly rather than seeing
// stale state. If fn is non-nil it runs with exclusive access to the
// record after the entry is unlinked: a callback goroutine that
// already resolved the entry and is queued on its lock is serialized
// against the teardown instead of racing it, so fn is the only safe
// place to dismantle a record.
func (r *Registry) Remove(id PlayerID, fn func(*Record)) bool {
	r.mu.Lock()
	e, ok := r.records[id]
	delete(r.records, id)
	r.mu.Unlock()
	if !ok {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if fn != nil {
		fn(e.rec)
	}
	return true
}

// With invokes fn with shared access to the record for id. A lookup for
// an unknown id is silently a no-op: the engine may emit a stray
// callback for a disposed player, and that must never panic the
// callback path.
func (r *Registry) With(id PlayerID, fn func(*Record)) {
	e := r.lookup(id)
	if e == nil {
		return
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	fn(e.rec)
}

// WithMut invokes fn with exclusive access to the record for id; no
// other mutator runs for the same player until fn returns. Unknown ids
// are a no-op, as for With.
//
// fn must not retain the record beyond the call.
func (r *Registry) WithMut(id PlayerID, fn func(*Record)) {
	e := r.lookup(id)
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.rec)
}

// Len returns the number of live records.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

func (r *Registry) lookup(id PlayerID) *entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.records[id]
}
