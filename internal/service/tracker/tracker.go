package tracker

import "sync"

// Tracker records which sessions have a request in flight and whether that
// request is still wanted. An id is present only between Register and Retire.
type Tracker struct {
	mu       sync.RWMutex
	sessions map[string]bool
}

// New returns an empty Tracker.
func New() *Tracker {
	return &Tracker{sessions: make(map[string]bool)}
}

// Register marks id as live. A second Register for the same id overwrites the
// first; the last writer wins.
func (t *Tracker) Register(id string) {
	t.mu.Lock()
	t.sessions[id] = true
	t.mu.Unlock()
}

// SignalCancel flips id to not-live and reports whether an entry existed.
// Repeated calls are harmless.
func (t *Tracker) SignalCancel(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.sessions[id]; !ok {
		return false
	}
	t.sessions[id] = false
	return true
}

// IsLive reports the liveness flag for id and whether an entry exists.
// An absent id is never live.
func (t *Tracker) IsLive(id string) (live bool, found bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	live, found = t.sessions[id]
	return live, found
}

// Retire removes id. Retiring an absent id is a no-op.
func (t *Tracker) Retire(id string) {
	t.mu.Lock()
	delete(t.sessions, id)
	t.mu.Unlock()
}

// Len returns the number of in-flight sessions.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.sessions)
}
