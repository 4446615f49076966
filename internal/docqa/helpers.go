package docqa

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/akolanti/docqa/internal/config"
	"github.com/akolanti/docqa/internal/docqa/classify"
	"github.com/akolanti/docqa/internal/domain/docmodel"
	"github.com/akolanti/docqa/internal/domain/jobModel"
	"github.com/akolanti/docqa/internal/metrics"
	"github.com/akolanti/docqa/pkg/applog"
)

func logStep(job jobModel.Job, status jobModel.InternalStatus, log *applog.Logger) jobModel.Job {
	job.CurrentStep = status
	log.Debug("RunIngestion", "Current Status", job.CurrentStep)
	return job
}

func (s *service) ingestError(job jobModel.Job, err error, log *applog.Logger) jobModel.Job {
	log.Error("ingestion failed", "step", job.CurrentStep, "error", err)

	job.Error = jobModel.JobError{
		Code:    docmodel.ErrorCode(err),
		Message: err.Error(),
		Retry:   errors.Is(err, docmodel.ErrSummarizationFailed),
	}
	job.Status = jobModel.JobStatusFailed
	job.CurrentStep = jobModel.Failed
	return job
}

func (s *service) executeClassifyStep(log *applog.Logger, job *jobModel.Job, doc docmodel.Document) (docmodel.Format, error) {
	*job = logStep(*job, jobModel.IngestClassify, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("classification", time.Since(start)) }()

	return classify.Classify(doc)
}

func (s *service) executeExtractStep(ctx context.Context, log *applog.Logger, job *jobModel.Job, doc docmodel.Document) (string, error) {
	*job = logStep(*job, jobModel.IngestExtract, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("text_extraction", time.Since(start)) }()

	return s.extractor.Extract(ctx, doc.Format, doc)
}

func (s *service) executeSummarizeStep(ctx context.Context, log *applog.Logger, job *jobModel.Job, text string) (docmodel.SummaryRecord, error) {
	*job = logStep(*job, jobModel.IngestSummarize, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("summarization", time.Since(start)) }()

	return s.summarizer.Summarize(ctx, text)
}

func (s *service) executeChatStep(ctx context.Context, log *applog.Logger, messages []docmodel.ChatTurn) (string, error) {
	log.Debug("Chat", "outbound messages", len(messages))

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("chat_completion", time.Since(start)) }()

	return s.completer.Complete(ctx, messages)
}

func (s *service) removeSpoolFile(path string, log *applog.Logger) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Error("Error removing spool file", "path", path, "error", err)
	}
}

// buildChatMessages rebuilds the whole context for one chat call: the
// framing turn with the capped document text, the fixed ack, every
// prior turn verbatim and unbounded, then the new user content last.
func buildChatMessages(extracted string, prior []docmodel.ChatTurn, message string) []docmodel.ChatTurn {
	outbound := make([]docmodel.ChatTurn, 0, len(prior)+3)
	outbound = append(outbound, docmodel.ChatTurn{
		Role:    docmodel.RoleUser,
		Content: config.DocumentFramingPrompt + truncateRunes(extracted, config.ChatContextCharLimit),
	})
	outbound = append(outbound, docmodel.ChatTurn{
		Role:    docmodel.RoleAssistant,
		Content: config.AssistantAck,
	})
	outbound = append(outbound, prior...)
	outbound = append(outbound, docmodel.ChatTurn{
		Role:    docmodel.RoleUser,
		Content: message,
	})
	return outbound
}

// hard cap by character count, not token or sentence aware
func truncateRunes(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
