package chat

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/akolanti/docqa/internal/domain/docmodel"
	"github.com/akolanti/docqa/pkg/applog"
)

func remoteAgainst(srv *httptest.Server) Completer {
	return &remoteCompleter{
		client: srv.Client(),
		url:    srv.URL,
		logger: applog.NewLogger("test completer"),
	}
}

func TestRemoteComplete_WireShape(t *testing.T) {
	var gotBody chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		// roles must serialize as plain strings
		if !strings.Contains(string(raw), `"role":"assistant"`) {
			t.Errorf("assistant role missing from wire body: %s", raw)
		}
		json.NewEncoder(w).Encode(chatResponse{Content: "the answer"})
	}))
	defer srv.Close()

	messages := []docmodel.ChatTurn{
		{Role: docmodel.RoleUser, Content: "framing + document"},
		{Role: docmodel.RoleAssistant, Content: "ack"},
		{Role: docmodel.RoleAssistant, Content: "greeting"},
		{Role: docmodel.RoleUser, Content: "what is this about?"},
	}

	content, err := remoteAgainst(srv).Complete(context.Background(), messages)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if content != "the answer" {
		t.Errorf("content = %q", content)
	}

	if len(gotBody.Messages) != len(messages) {
		t.Fatalf("message count = %d; want %d", len(gotBody.Messages), len(messages))
	}
	for i := range messages {
		if gotBody.Messages[i] != messages[i] {
			t.Errorf("message %d changed in transit: %+v vs %+v", i, gotBody.Messages[i], messages[i])
		}
	}
}

func TestRemoteComplete_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": "backend down"})
	}))
	defer srv.Close()

	_, err := remoteAgainst(srv).Complete(context.Background(), []docmodel.ChatTurn{{Role: docmodel.RoleUser, Content: "hi"}})
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "backend down") {
		t.Errorf("service message lost: %v", err)
	}
}

func TestRemoteComplete_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	_, err := remoteAgainst(srv).Complete(context.Background(), []docmodel.ChatTurn{{Role: docmodel.RoleUser, Content: "hi"}})
	if err == nil {
		t.Fatal("expected error for malformed response body")
	}
}

func TestRemoteComplete_Unreachable(t *testing.T) {
	c := &remoteCompleter{
		client: &http.Client{},
		url:    "http://127.0.0.1:1/chat",
		logger: applog.NewLogger("test completer"),
	}
	_, err := c.Complete(context.Background(), []docmodel.ChatTurn{{Role: docmodel.RoleUser, Content: "hi"}})
	if err == nil {
		t.Fatal("expected error for unreachable service")
	}
}
