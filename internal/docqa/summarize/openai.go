package summarize

import (
	"context"
	"fmt"
	"os"

	"github.com/akolanti/docqa/internal/config"
	"github.com/akolanti/docqa/internal/domain/docmodel"
	"github.com/akolanti/docqa/pkg/applog"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openAISummarizer struct {
	client openai.Client
	model  string
	logger *applog.Logger
}

func NewOpenAISummarizer() Summarizer {
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = config.OpenAIModelName
	}
	opts := []option.RequestOption{option.WithAPIKey(os.Getenv("OPENAI_API_KEY"))}
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	return &openAISummarizer{
		client: openai.NewClient(opts...),
		model:  model,
		logger: applog.NewLogger("OpenAI Summarizer"),
	}
}

func (s *openAISummarizer) Summarize(ctx context.Context, text string) (docmodel.SummaryRecord, error) {
	var record docmodel.SummaryRecord

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(config.SummaryInstruction),
			openai.UserMessage(text),
		},
		Model: openai.ChatModel(s.model),
	})
	if err != nil {
		s.logger.Error("OpenAI summarize call failed", "error", err)
		return record, fmt.Errorf("%w: %v", docmodel.ErrSummarizationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return record, fmt.Errorf("%w: empty completion", docmodel.ErrSummarizationFailed)
	}
	return parseSummaryJSON(resp.Choices[0].Message.Content)
}
