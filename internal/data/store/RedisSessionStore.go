package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/docqa/internal/config"
	"github.com/akolanti/docqa/internal/data/redisStore"
	"github.com/akolanti/docqa/internal/domain/docmodel"
	"github.com/akolanti/docqa/pkg/applog"
)

// RedisSessionStore keeps each session as a single JSON blob so the
// document, summary and conversation always change together.
type RedisSessionStore struct {
	store  *redisStore.Store
	logger *applog.Logger
}

func GetRedisSessionStore(ctx context.Context) *RedisSessionStore {
	redis := redisStore.GetRedisStore(ctx, config.RedisSessionStoreDB)
	if redis == nil {
		return nil
	}
	return &RedisSessionStore{
		store:  redis,
		logger: applog.NewLogger("SessionStore"),
	}
}

func (s *RedisSessionStore) SaveSession(ctx context.Context, session docmodel.Session) error {
	log := s.logger.With("traceId", ctx.Value(config.TraceIDKey), "session Id", session.Id)
	log.Debug("saving session")
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, session.Id, data, config.RedisSessionStoreTTL)
	if err == nil {
		log.Debug("Saved session to Redis")
	}
	return err
}

func (s *RedisSessionStore) GetSession(ctx context.Context, sessionId string) (docmodel.Session, bool) {
	var session docmodel.Session
	log := s.logger.With("traceId", ctx.Value(config.TraceIDKey), "session Id", sessionId)
	log.Debug("getting session")
	val, err := s.store.Get(ctx, sessionId)
	if s.store.IsNil(err) {
		return session, false
	} else if err != nil {
		log.Error("Failed to read session from Redis", "err", err)
		return session, false
	}

	err = json.Unmarshal([]byte(val), &session)
	if err != nil {
		log.Error("Failed to unmarshal session", "err", err)
		return session, false
	}

	return session, true
}

func (s *RedisSessionStore) DeleteSession(ctx context.Context, sessionId string) {
	err := s.store.Del(ctx, sessionId)
	if err != nil {
		s.logger.Error("Error deleting session from Redis", "sessionId", sessionId)
		return
	}
	s.logger.Debug("Session deleted from Redis", "sessionId", sessionId)
}

func TestSessionStore(store *redisStore.Store) *RedisSessionStore {
	return &RedisSessionStore{
		store:  store,
		logger: applog.NewLogger("test redis"),
	}
}
