package docqa

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/akolanti/docqa/internal/config"
	"github.com/akolanti/docqa/internal/docqa/chat"
	"github.com/akolanti/docqa/internal/docqa/summarize"
	"github.com/akolanti/docqa/internal/domain/docmodel"
	"github.com/akolanti/docqa/internal/domain/jobModel"
	"github.com/akolanti/docqa/internal/metrics"
	"github.com/akolanti/docqa/pkg/applog"
)

var (
	ErrEmptyMessage = errors.New("message is empty or whitespace only")
	ErrSessionBusy  = errors.New("a chat call is already in flight for this session")
	ErrNotReady     = errors.New("session has no summarized document")
)

// Service is the only surface the worker, handlers and tools call.
// They never see the extractor or the providers behind it, so tests
// swap those without touching any caller.
type Service interface {
	RunIngestion(ctx context.Context, job jobModel.Job) jobModel.Job
	Chat(ctx context.Context, sessionId string, message string) (string, error)
	ResetSession(ctx context.Context, sessionId string) error
	GetSession(ctx context.Context, sessionId string) (docmodel.Session, bool)
}

// TextExtractor is what the format registry looks like from here.
type TextExtractor interface {
	Extract(ctx context.Context, format docmodel.Format, doc docmodel.Document) (string, error)
}

type service struct {
	extractor  TextExtractor
	summarizer summarize.Summarizer
	completer  chat.Completer
	sessions   jobModel.SessionStore
	guards     *sessionGuards
	logger     *applog.Logger
}

// NewService constructor
func NewService(extractor TextExtractor, summarizer summarize.Summarizer, completer chat.Completer, sessions jobModel.SessionStore) Service {
	return &service{
		extractor:  extractor,
		summarizer: summarizer,
		completer:  completer,
		sessions:   sessions,
		guards:     newSessionGuards(),
		logger:     applog.NewLogger("DocQA Service :"),
	}
}

// RunIngestion tears the old aggregate down before any pipeline work,
// then classifies, extracts and summarizes. The rebuilt aggregate is
// installed with a single save at the end, so a failure at any step
// leaves the session with no current document rather than a stale or
// half-built one.
func (s *service) RunIngestion(ctx context.Context, job jobModel.Job) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", job.TraceId, "JobId", job.Id, "SessionId", job.SessionId)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start)) }()

	outcome := "failure"
	formatLabel := "unknown"
	defer func() { metrics.DocumentsIngested.WithLabelValues(formatLabel, outcome).Inc() }()

	guard := s.guards.get(job.SessionId)
	guard.acquire()
	defer guard.release()

	defer s.removeSpoolFile(job.JobPayload.SpoolPath, inMethodLogger)

	session := docmodel.NewSession(job.SessionId)
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return s.ingestError(job, err, inMethodLogger)
	}

	doc := docmodel.Document{
		Id:         job.Id,
		Name:       job.JobPayload.DocumentName,
		MediaType:  job.JobPayload.MediaType,
		SizeBytes:  job.JobPayload.SizeBytes,
		SpoolPath:  job.JobPayload.SpoolPath,
		IngestedAt: time.Now(),
	}

	format, err := s.executeClassifyStep(inMethodLogger, &job, doc)
	if err != nil {
		return s.ingestError(job, err, inMethodLogger)
	}
	doc.Format = format
	formatLabel = string(format)

	text, err := s.executeExtractStep(ctx, inMethodLogger, &job, doc)
	if err != nil {
		return s.ingestError(job, err, inMethodLogger)
	}

	record, err := s.executeSummarizeStep(ctx, inMethodLogger, &job, text)
	if err != nil {
		return s.ingestError(job, err, inMethodLogger)
	}

	session.InstallDocument(doc, text, record, config.AssistantGreeting)
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return s.ingestError(job, err, inMethodLogger)
	}

	outcome = "success"
	job.CurrentStep = jobModel.Complete
	job.Status = jobModel.JobStatusComplete
	return job
}

// Chat drives one turn: reject bad input, snapshot the prior
// conversation, persist the user turn, call the chat service, persist
// the reply. A failed call becomes the fixed fallback turn, the cause
// goes to the log only.
func (s *service) Chat(ctx context.Context, sessionId string, message string) (string, error) {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TraceIDKey), "SessionId", sessionId)

	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}

	guard := s.guards.get(sessionId)
	if !guard.tryAcquire() {
		return "", ErrSessionBusy
	}
	defer guard.release()

	session, found := s.sessions.GetSession(ctx, sessionId)
	if !found || session.State != docmodel.StateReady {
		return "", ErrNotReady
	}

	// snapshot before the user turn lands, the outbound list carries
	// the new content as its final message only
	outbound := buildChatMessages(session.Extracted, session.Conversation, message)

	session.AppendTurn(docmodel.RoleUser, message)
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return "", err
	}

	reply, err := s.executeChatStep(ctx, inMethodLogger, outbound)
	if err != nil {
		inMethodLogger.Error("chat call failed, serving fallback turn", "error", err)
		metrics.ChatTurns.WithLabelValues("fallback").Inc()
		reply = config.ChatFallbackReply
	} else {
		metrics.ChatTurns.WithLabelValues("success").Inc()
	}

	session.AppendTurn(docmodel.RoleAssistant, reply)
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return "", err
	}
	return reply, nil
}

// ResetSession waits for any in-flight call to resolve, then returns
// the session to the state of a freshly created one.
func (s *service) ResetSession(ctx context.Context, sessionId string) error {
	guard := s.guards.get(sessionId)
	guard.acquire()
	defer guard.release()

	session, found := s.sessions.GetSession(ctx, sessionId)
	if !found {
		session = docmodel.NewSession(sessionId)
	} else {
		session.Reset()
	}
	return s.sessions.SaveSession(ctx, session)
}

// GetSession is the read-only view. awaiting_response is derived from
// the guard, the stores only ever hold idle or ready.
func (s *service) GetSession(ctx context.Context, sessionId string) (docmodel.Session, bool) {
	session, found := s.sessions.GetSession(ctx, sessionId)
	if !found {
		return session, false
	}
	if session.State == docmodel.StateReady && s.guards.held(sessionId) {
		session.State = docmodel.StateAwaitingResponse
	}
	return session, true
}
