package docqa_test

import (
	"context"

	"github.com/akolanti/docqa/internal/domain/docmodel"
)

// MockExtractor implements docqa.TextExtractor
type MockExtractor struct {
	// Control fields to simulate different behaviors
	OnExtract func(ctx context.Context, format docmodel.Format, doc docmodel.Document) (string, error)
	Called    bool
}

func (m *MockExtractor) Extract(ctx context.Context, format docmodel.Format, doc docmodel.Document) (string, error) {
	m.Called = true
	if m.OnExtract != nil {
		return m.OnExtract(ctx, format, doc)
	}
	return "mock extracted text", nil
}

// MockSummarizer implements summarize.Summarizer
type MockSummarizer struct {
	OnSummarize func(ctx context.Context, text string) (docmodel.SummaryRecord, error)
	Called      bool
}

func (m *MockSummarizer) Summarize(ctx context.Context, text string) (docmodel.SummaryRecord, error) {
	m.Called = true
	if m.OnSummarize != nil {
		return m.OnSummarize(ctx, text)
	}
	return docmodel.SummaryRecord{Short: "mock short summary"}, nil
}

// MockCompleter implements chat.Completer
type MockCompleter struct {
	OnComplete func(ctx context.Context, messages []docmodel.ChatTurn) (string, error)
	// LastMessages keeps the most recent outbound list for assertions
	LastMessages []docmodel.ChatTurn
}

func (m *MockCompleter) Complete(ctx context.Context, messages []docmodel.ChatTurn) (string, error) {
	m.LastMessages = messages
	if m.OnComplete != nil {
		return m.OnComplete(ctx, messages)
	}
	return "mocked chat reply", nil
}
