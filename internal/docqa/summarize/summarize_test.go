package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/akolanti/docqa/internal/domain/docmodel"
	"github.com/akolanti/docqa/pkg/applog"
)

func remoteAgainst(srv *httptest.Server) Summarizer {
	return &remoteSummarizer{
		client: srv.Client(),
		url:    srv.URL,
		logger: applog.NewLogger("test summarizer"),
	}
}

func TestRemoteSummarize_SendsFullText(t *testing.T) {
	// text longer than the chat truncation cap, must go out unmodified
	text := strings.Repeat("full text, no truncation here. ", 1000)

	var gotBody summarizeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		json.NewEncoder(w).Encode(summarizeResponse{
			Short:    "short",
			Detailed: "detailed",
			Bullets:  []string{"a", "b"},
			Insights: []string{"i"},
			Keywords: []string{"k1", "k2"},
		})
	}))
	defer srv.Close()

	record, err := remoteAgainst(srv).Summarize(context.Background(), text)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if gotBody.Text != text {
		t.Errorf("text field was modified in transit (len %d vs %d)", len(gotBody.Text), len(text))
	}
	if record.Short != "short" || record.Detailed != "detailed" {
		t.Errorf("record mismatch: %+v", record)
	}
	if len(record.Bullets) != 2 || len(record.Keywords) != 2 {
		t.Errorf("list fields mismatch: %+v", record)
	}
}

func TestRemoteSummarize_ServiceReportedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "model overloaded"})
	}))
	defer srv.Close()

	_, err := remoteAgainst(srv).Summarize(context.Background(), "some text")
	if !errors.Is(err, docmodel.ErrSummarizationFailed) {
		t.Fatalf("expected ErrSummarizationFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "model overloaded") {
		t.Errorf("service message lost: %v", err)
	}
}

func TestRemoteSummarize_ErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := remoteAgainst(srv).Summarize(context.Background(), "some text")
	if !errors.Is(err, docmodel.ErrSummarizationFailed) {
		t.Fatalf("expected ErrSummarizationFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("expected generic status message, got %v", err)
	}
}

func TestRemoteSummarize_MissingFieldsStayEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"short": "only this"}`))
	}))
	defer srv.Close()

	record, err := remoteAgainst(srv).Summarize(context.Background(), "text")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if record.Short != "only this" {
		t.Errorf("Short = %q", record.Short)
	}
	if record.Detailed != "" || record.Bullets != nil || record.Insights != nil || record.Keywords != nil {
		t.Errorf("absent fields should stay empty: %+v", record)
	}
}

func TestRemoteSummarize_Unreachable(t *testing.T) {
	s := &remoteSummarizer{
		client: &http.Client{},
		url:    "http://127.0.0.1:1/summarize",
		logger: applog.NewLogger("test summarizer"),
	}
	_, err := s.Summarize(context.Background(), "text")
	if !errors.Is(err, docmodel.ErrSummarizationFailed) {
		t.Errorf("expected ErrSummarizationFailed, got %v", err)
	}
}

func TestParseSummaryJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"bare json", `{"short":"s"}`, "s", false},
		{"fenced json", "```json\n{\"short\":\"s\"}\n```", "s", false},
		{"plain fence", "```\n{\"short\":\"s\"}\n```", "s", false},
		{"prose reply", "Sure! Here is the summary you asked for.", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := parseSummaryJSON(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, docmodel.ErrSummarizationFailed) {
					t.Fatalf("expected ErrSummarizationFailed, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSummaryJSON failed: %v", err)
			}
			if record.Short != tt.want {
				t.Errorf("Short = %q; want %q", record.Short, tt.want)
			}
		})
	}
}
