package store

import (
	"context"
	"sync"

	"github.com/akolanti/docqa/internal/domain/docmodel"
	"github.com/akolanti/docqa/pkg/applog"
)

var inMemSessionLogger = applog.NewLogger("InMem SessionStore")

type InMemorySessionStore struct {
	sessionMutex *sync.RWMutex
	sessionMap   map[string]docmodel.Session
}

func InitInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		sessionMutex: new(sync.RWMutex),
		sessionMap:   make(map[string]docmodel.Session),
	}
}

func (store *InMemorySessionStore) SaveSession(ctx context.Context, session docmodel.Session) error {
	store.sessionMutex.Lock()
	defer store.sessionMutex.Unlock()
	store.sessionMap[session.Id] = session
	inMemSessionLogger.Debug("Saved session to store", "sessionId", session.Id)
	return nil
}

func (store *InMemorySessionStore) GetSession(ctx context.Context, sessionId string) (docmodel.Session, bool) {
	store.sessionMutex.RLock()
	defer store.sessionMutex.RUnlock()
	result, found := store.sessionMap[sessionId]
	return result, found
}

func (store *InMemorySessionStore) DeleteSession(ctx context.Context, sessionId string) {
	store.sessionMutex.Lock()
	defer store.sessionMutex.Unlock()
	delete(store.sessionMap, sessionId)
}
