package docqa

import (
	"sync"
	"sync/atomic"
)

// sessionGuards serializes ingestion, chat and reset per session. Chat
// takes the non-blocking path so a second submission is rejected while
// one is in flight, ingestion and reset wait their turn instead.
type sessionGuards struct {
	mu      sync.Mutex
	entries map[string]*guardEntry
}

type guardEntry struct {
	mu   sync.Mutex
	held atomic.Bool
}

func newSessionGuards() *sessionGuards {
	return &sessionGuards{entries: make(map[string]*guardEntry)}
}

func (g *sessionGuards) get(sessionId string) *guardEntry {
	g.mu.Lock()
	defer g.mu.Unlock()
	entry, ok := g.entries[sessionId]
	if !ok {
		entry = &guardEntry{}
		g.entries[sessionId] = entry
	}
	return entry
}

// held reports whether some call currently owns the session. Used to
// derive the awaiting_response view state, never for synchronization.
func (g *sessionGuards) held(sessionId string) bool {
	g.mu.Lock()
	entry, ok := g.entries[sessionId]
	g.mu.Unlock()
	return ok && entry.held.Load()
}

func (e *guardEntry) acquire() {
	e.mu.Lock()
	e.held.Store(true)
}

func (e *guardEntry) tryAcquire() bool {
	if !e.mu.TryLock() {
		return false
	}
	e.held.Store(true)
	return true
}

func (e *guardEntry) release() {
	e.held.Store(false)
	e.mu.Unlock()
}
