package summarize

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
	geminiSingleton *geminiSummarizer
	geminiOnce      sync.Once
)

type geminiSummarizer struct {
	client    *genai.Client
	modelName string
}

func GetGeminiSummarizer(ctx context.Context) Summarizer {
	geminiOnce.Do(func() {
		geminiLogger = applog.NewLogger("Gemini Summarizer")
		newGeminiSummarizer(ctx)
	})

	if geminiSingleton == nil {
		return nil
	}
	return geminiSingleton
}

func newGeminiSummarizer(ctx context.Context) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: os.Getenv("GEMINI_API_KEY")})
	if err != nil {
		geminiLogger.Error("Error creating Gemini client", "error", err)
		return
	}

	modelName := os.Getenv("GEMINI_MODEL")
	if modelName == "" {
		modelName = config.GeminiModelName
	}
	geminiSingleton = &geminiSummarizer{client: c, modelName: modelName}
	geminiLogger.Info("Gemini summarizer client created", "model", modelName)
}

func (s *geminiSummarizer) Summarize(ctx context.Context, text string) (docmodel.SummaryRecord, error) {
	var record docmodel.SummaryRecord

	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: config.SummaryInstruction},
			},
		},
	}

	result, err := s.client.Models.GenerateContent(ctx, s.modelName, genai.Text(text), contentConfig)
	if err != nil {
		geminiLogger.Error("Gemini summarize call failed", "error", err)
		return record, fmt.Errorf("%w: %v", docmodel.ErrSummarizationFailed, err)
	}
	return parseSummaryJSON(result.Text())
}
