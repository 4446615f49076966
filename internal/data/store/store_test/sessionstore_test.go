package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/akolanti/docqa/internal/config"
	"github.com/akolanti/docqa/internal/data/redisStore"
	"github.com/akolanti/docqa/internal/data/store"
	"github.com/akolanti/docqa/internal/domain/docmodel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func readySession(id string) docmodel.Session {
	session := docmodel.NewSession(id)
	session.InstallDocument(
		docmodel.Document{
			Id:         "doc-1",
			Name:       "notes.txt",
			MediaType:  config.MediaTypePlainText,
			Format:     docmodel.PlainText,
			SizeBytes:  64,
			IngestedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		"hello from the document",
		docmodel.SummaryRecord{Short: "greeting", Keywords: []string{"hello"}},
		config.AssistantGreeting,
	)
	return session
}

func TestRedisSessionStore_Lifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessionStore := store.TestSessionStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TraceIDKey, "test-trace")
	sessionID := "3f6f8a44-9f6d-4d05-8f6e-2f1f0a9b7c21"

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		saved := readySession(sessionID)
		if err := sessionStore.SaveSession(ctx, saved); err != nil {
			t.Fatalf("SaveSession failed: %v", err)
		}

		got, found := sessionStore.GetSession(ctx, sessionID)
		if !found {
			t.Fatal("Session was saved but not found in Redis")
		}
		if got.State != docmodel.StateReady {
			t.Errorf("State mismatch! Got %s, want %s", got.State, docmodel.StateReady)
		}
		if got.Document == nil || got.Document.Name != "notes.txt" {
			t.Errorf("Document did not survive the roundtrip: %+v", got.Document)
		}
		if len(got.Conversation) != 1 || got.Conversation[0].Role != docmodel.RoleAssistant {
			t.Errorf("Conversation did not survive the roundtrip: %+v", got.Conversation)
		}
	})

	t.Run("Reset persists as idle", func(t *testing.T) {
		session, found := sessionStore.GetSession(ctx, sessionID)
		if !found {
			t.Fatal("session missing")
		}
		session.Reset()
		if err := sessionStore.SaveSession(ctx, session); err != nil {
			t.Fatalf("SaveSession failed: %v", err)
		}

		got, found := sessionStore.GetSession(ctx, sessionID)
		if !found {
			t.Fatal("session missing after reset")
		}
		if got.State != docmodel.StateIdle || got.Document != nil || len(got.Conversation) != 0 {
			t.Errorf("Reset state did not persist: %+v", got)
		}
	})

	t.Run("Get Non-Existent Session", func(t *testing.T) {
		_, found := sessionStore.GetSession(ctx, "ghost-id")
		if found {
			t.Error("Expected found=false for non-existent key")
		}
	})

	t.Run("Delete Session", func(t *testing.T) {
		sessionStore.DeleteSession(ctx, sessionID)
		if mr.Exists(sessionID) {
			t.Error("Session still exists in Redis after DeleteSession call")
		}
	})
}

func TestRedisSessionStore_Race(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessionStore := store.TestSessionStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TraceIDKey, "race-trace")
	session := readySession("race-session")

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = sessionStore.SaveSession(ctx, session)
			_, _ = sessionStore.GetSession(ctx, "race-session")
		}()
	}
	wg.Wait()
}

func TestInMemorySessionStore_Lifecycle(t *testing.T) {
	sessionStore := store.InitInMemorySessionStore()
	ctx := context.Background()

	session := readySession("mem-session")
	if err := sessionStore.SaveSession(ctx, session); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	got, found := sessionStore.GetSession(ctx, "mem-session")
	if !found {
		t.Fatal("Session was saved but not found")
	}
	if got.Document == nil || got.Document.Format != docmodel.PlainText {
		t.Errorf("Document mismatch: %+v", got.Document)
	}

	sessionStore.DeleteSession(ctx, "mem-session")
	if _, found := sessionStore.GetSession(ctx, "mem-session"); found {
		t.Error("Session still present after delete")
	}
}
