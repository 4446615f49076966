package chat

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/akolanti/docqa/internal/config"
	"github.com/akolanti/docqa/internal/domain/docmodel"
	"github.com/akolanti/docqa/pkg/applog"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openAICompleter struct {
	client openai.Client
	model  string
	logger *applog.Logger
}

func NewOpenAICompleter() Completer {
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = config.OpenAIModelName
	}
	opts := []option.RequestOption{option.WithAPIKey(os.Getenv("OPENAI_API_KEY"))}
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	return &openAICompleter{
		client: openai.NewClient(opts...),
		model:  model,
		logger: applog.NewLogger("OpenAI Completer"),
	}
}

func (c *openAICompleter) Complete(ctx context.Context, messages []docmodel.ChatTurn) (string, error) {
	outbound := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, turn := range messages {
		switch turn.Role {
		case docmodel.RoleAssistant:
			outbound = append(outbound, openai.AssistantMessage(turn.Content))
		default:
			outbound = append(outbound, openai.UserMessage(turn.Content))
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: outbound,
		Model:    openai.ChatModel(c.model),
	})
	if err != nil {
		c.logger.Error("OpenAI chat call failed", "error", err)
		return "", fmt.Errorf("openai chat call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai chat call: empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}
