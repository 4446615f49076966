package chat

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/akolanti/docqa/internal/config"
	"github.com/akolanti/docqa/internal/domain/docmodel"
	"github.com/akolanti/docqa/pkg/applog"
	"google.golang.org/genai"
)

var (
	geminiLogger    *applog.Logger
	geminiSingleton *geminiCompleter
	geminiOnce      sync.Once
)

type geminiCompleter struct {
	client    *genai.Client
	modelName string
}

func GetGeminiCompleter(ctx context.Context) Completer {
	geminiOnce.Do(func() {
		geminiLogger = applog.NewLogger("Gemini Completer")
		newGeminiCompleter(ctx)
	})

	if geminiSingleton == nil {
		return nil
	}
	return geminiSingleton
}

func newGeminiCompleter(ctx context.Context) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: os.Getenv("GEMINI_API_KEY")})
	if err != nil {
		geminiLogger.Error("Error creating Gemini client", "error", err)
		return
	}

	modelName := os.Getenv("GEMINI_MODEL")
	if modelName == "" {
		modelName = config.GeminiModelName
	}
	geminiSingleton = &geminiCompleter{client: c, modelName: modelName}
	geminiLogger.Info("Gemini completer client created", "model", modelName)
}

// Complete maps the assistant role onto gemini's "model" role, user
// stays "user". The framing stays a user turn, not a system
// instruction, so every backend sees the same message list.
func (c *geminiCompleter) Complete(ctx context.Context, messages []docmodel.ChatTurn) (string, error) {
	contents := make([]*genai.Content, 0, len(messages))
	for _, turn := range messages {
		role := "user"
		if turn.Role == docmodel.RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Content}},
		})
	}

	result, err := c.client.Models.GenerateContent(ctx, c.modelName, contents, nil)
	if err != nil {
		geminiLogger.Error("Gemini chat call failed", "error", err)
		return "", fmt.Errorf("gemini chat call: %w", err)
	}
	return result.Text(), nil
}
