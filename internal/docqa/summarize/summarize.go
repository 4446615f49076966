package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/akolanti/docqa/internal/config"
	"github.com/akolanti/docqa/internal/domain/docmodel"
)

// Summarizer produces the summary record for a document's full
// extracted text. One call per ingested document.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (docmodel.SummaryRecord, error)
}

// NewSummarizer picks the backend from SUMMARY_PROVIDER. The remote
// summarize service is the default, openai and gemini talk to the
// model APIs directly. Returns nil when the chosen backend cannot be
// constructed.
func NewSummarizer(ctx context.Context, httpClient *http.Client) Summarizer {
	provider := os.Getenv("SUMMARY_PROVIDER")
	if provider == "" {
		provider = config.DefaultSummaryProvider
	}
	switch provider {
	case "openai":
		return NewOpenAISummarizer()
	case "gemini":
		return GetGeminiSummarizer(ctx)
	default:
		return NewRemoteSummarizer(httpClient)
	}
}

// model backends are asked for bare JSON but wrap it in markdown
// fences often enough that we strip them here.
func parseSummaryJSON(raw string) (docmodel.SummaryRecord, error) {
	var record docmodel.SummaryRecord
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)
	if err := json.Unmarshal([]byte(cleaned), &record); err != nil {
		return record, fmt.Errorf("%w: model reply is not the expected JSON: %v", docmodel.ErrSummarizationFailed, err)
	}
	return record, nil
}
