package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/akolanti/docqa/internal/config"
	"github.com/akolanti/docqa/internal/domain/docmodel"
	"github.com/akolanti/docqa/pkg/applog"
)

type summarizeRequest struct {
	Text string `json:"text"`
}

type summarizeResponse struct {
	Short    string   `json:"short"`
	Detailed string   `json:"detailed"`
	Bullets  []string `json:"bullets"`
	Insights []string `json:"insights"`
	Keywords []string `json:"keywords"`
}

type serviceError struct {
	Error string `json:"error"`
}

type remoteSummarizer struct {
	client *http.Client
	url    string
	logger *applog.Logger
}

func NewRemoteSummarizer(client *http.Client) Summarizer {
	url := os.Getenv("SUMMARY_SERVICE_URL")
	if url == "" {
		url = config.SummaryServiceURL
	}
	return &remoteSummarizer{
		client: client,
		url:    url,
		logger: applog.NewLogger("Remote Summarizer"),
	}
}

// Summarize sends the full text, untruncated. Truncation is a chat
// concern only.
func (s *remoteSummarizer) Summarize(ctx context.Context, text string) (docmodel.SummaryRecord, error) {
	var record docmodel.SummaryRecord

	reqJSON, err := json.Marshal(summarizeRequest{Text: text})
	if err != nil {
		return record, fmt.Errorf("%w: marshal request: %v", docmodel.ErrSummarizationFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(reqJSON))
	if err != nil {
		return record, fmt.Errorf("%w: create http request: %v", docmodel.ErrSummarizationFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	s.logger.Debug("Sending summarize request", "url", s.url, "payload_size", len(reqJSON))

	resp, err := s.client.Do(httpReq)
	if err != nil {
		s.logger.Error("summarize request failed", "error", err)
		return record, fmt.Errorf("%w: %v", docmodel.ErrSummarizationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		s.logger.Error("summarize service error", "status", resp.StatusCode, "body", string(body))
		return record, fmt.Errorf("%w: %s", docmodel.ErrSummarizationFailed, reportedMessage(resp.StatusCode, body))
	}

	var parsed summarizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return record, fmt.Errorf("%w: decode response: %v", docmodel.ErrSummarizationFailed, err)
	}

	// absent fields stay empty, completeness is a presentation concern
	return docmodel.SummaryRecord{
		Short:    parsed.Short,
		Detailed: parsed.Detailed,
		Bullets:  parsed.Bullets,
		Insights: parsed.Insights,
		Keywords: parsed.Keywords,
	}, nil
}

// reportedMessage prefers the error string the service sent over a
// generic status line.
func reportedMessage(status int, body []byte) string {
	var parsed serviceError
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	return fmt.Sprintf("service returned status %d", status)
}
