package chat

import (
	"context"
	"net/http"
	"os"

	"github.com/akolanti/docqa/internal/config"
	"github.com/akolanti/docqa/internal/domain/docmodel"
)

// Completer sends one fully built message list and returns the
// assistant's reply. It holds no conversation state of its own, the
// caller reconstructs context on every call.
type Completer interface {
	Complete(ctx context.Context, messages []docmodel.ChatTurn) (string, error)
}

// NewCompleter picks the backend from CHAT_PROVIDER, same scheme as
// the summarizer. Returns nil when the chosen backend cannot be
// constructed.
func NewCompleter(ctx context.Context, httpClient *http.Client) Completer {
	provider := os.Getenv("CHAT_PROVIDER")
	if provider == "" {
		provider = config.DefaultChatProvider
	}
	switch provider {
	case "openai":
		return NewOpenAICompleter()
	case "gemini":
		return GetGeminiCompleter(ctx)
	default:
		return NewRemoteCompleter(httpClient)
	}
}
