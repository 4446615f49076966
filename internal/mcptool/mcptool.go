package mcptool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akolanti/docqa/internal/adapter"
	"github.com/akolanti/docqa/internal/adapter/utils"
	"github.com/akolanti/docqa/internal/config"
	"github.com/akolanti/docqa/internal/docqa"
	"github.com/akolanti/docqa/internal/domain/jobModel"
	"github.com/akolanti/docqa/pkg/applog"
)

var logger *applog.Logger

// NewServer exposes the document pipeline as MCP tools for agent
// clients. Same service instance as the HTTP surface, so sessions are
// shared between the two.
func NewServer(svc docqa.Service) *mcp.Server {
	logger = applog.NewLogger("MCP")
	srv := mcp.NewServer(&mcp.Implementation{Name: "docqa", Version: "1.0.0"}, nil)
	registerIngestTool(srv, svc)
	registerAskTool(srv, svc)
	registerSummaryTool(srv, svc)
	registerResetTool(srv, svc)
	return srv
}

// Run serves the tools over stdio until the context ends.
func Run(ctx context.Context, svc docqa.Service) error {
	return NewServer(svc).Run(ctx, &mcp.StdioTransport{})
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// tool failures are error results, the transport only fails on
// protocol problems
func errorResult(err error) *mcp.CallToolResult {
	var res mcp.CallToolResult
	res.SetError(err)
	return &res
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResult(fmt.Errorf("marshal: %w", err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}
}

// --- ingest_document ---

type ingestArgs struct {
	Path      string `json:"path"`
	MediaType string `json:"media_type"`
	SessionId string `json:"session_id"`
}

type ingestReply struct {
	SessionId string `json:"session_id"`
	JobId     string `json:"job_id"`
	Short     string `json:"short_summary"`
}

func registerIngestTool(srv *mcp.Server, svc docqa.Service) {
	tool := &mcp.Tool{
		Name:        "ingest_document",
		Description: "Ingest a document file (PDF, Word, plain text, JPEG or PNG) into a session: extract its text, summarize it and open it for questions. Runs synchronously.",
		InputSchema: inputSchema(map[string]any{
			"path":       map[string]any{"type": "string", "description": "Path of the file to ingest"},
			"media_type": map[string]any{"type": "string", "description": "Declared media type, derived from the extension when absent"},
			"session_id": map[string]any{"type": "string", "description": "Target session id, generated when absent"},
		}, []string{"path"}),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ingestArgs
		if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
			return errorResult(fmt.Errorf("invalid arguments: %w", err)), nil
		}

		job, err := buildIngestJob(args)
		if err != nil {
			return errorResult(err), nil
		}

		result := svc.RunIngestion(ctx, job)
		if result.Status != jobModel.JobStatusComplete {
			return errorResult(fmt.Errorf("%s: %s", result.Error.Code, result.Error.Message)), nil
		}

		session, found := svc.GetSession(ctx, job.SessionId)
		if !found || session.Summary == nil {
			return errorResult(errors.New("ingestion finished but the session holds no summary")), nil
		}
		return jsonResult(ingestReply{
			SessionId: session.Id,
			JobId:     job.Id,
			Short:     session.Summary.Short,
		}), nil
	})
}

// buildIngestJob spools a copy of the file and wraps it in an ingest
// job. The pipeline deletes its spool file when it is done, copying
// keeps the caller's original in place.
func buildIngestJob(args ingestArgs) (jobModel.Job, error) {
	var job jobModel.Job

	source, err := os.Open(args.Path)
	if err != nil {
		return job, fmt.Errorf("open %s: %w", args.Path, err)
	}
	defer source.Close()

	root, err := os.Getwd()
	if err != nil {
		return job, fmt.Errorf("spool directory: %w", err)
	}
	spoolDir := filepath.Join(root, config.UploadSpoolDir)
	if err := os.MkdirAll(spoolDir, 0750); err != nil {
		return job, fmt.Errorf("spool directory: %w", err)
	}

	spoolPath := filepath.Join(spoolDir, fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(args.Path)))
	spool, err := os.Create(spoolPath)
	if err != nil {
		return job, fmt.Errorf("spool file: %w", err)
	}
	defer spool.Close()

	written, err := io.Copy(spool, source)
	if err != nil {
		return job, fmt.Errorf("spool copy: %w", err)
	}

	sessionId := args.SessionId
	if sessionId == "" {
		sessionId = utils.GetNewUUID()
	}
	mediaType := args.MediaType
	if mediaType == "" {
		mediaType = mime.TypeByExtension(filepath.Ext(args.Path))
	}

	job = jobModel.Job{
		Id:          utils.GetNewUUID(),
		SessionId:   sessionId,
		TraceId:     utils.GetNewUUID(),
		JobType:     jobModel.JobTypeIngest,
		CreatedTime: time.Now(),
		Status:      jobModel.JobStatusQueued,
		CurrentStep: jobModel.IngestInit,
		JobPayload: jobModel.JobPayload{
			DocumentName: filepath.Base(args.Path),
			SpoolPath:    spoolPath,
			MediaType:    mediaType,
			SizeBytes:    written,
		},
	}
	logger.Info("MCP ingest", "session", sessionId, "document", job.JobPayload.DocumentName)
	return job, nil
}

// --- ask_document ---

type askArgs struct {
	SessionId string `json:"session_id"`
	Question  string `json:"question"`
}

type askReply struct {
	SessionId string `json:"session_id"`
	Answer    string `json:"answer"`
}

func registerAskTool(srv *mcp.Server, svc docqa.Service) {
	tool := &mcp.Tool{
		Name:        "ask_document",
		Description: "Ask a question about the document held by a session. The conversation history carries over between calls.",
		InputSchema: inputSchema(map[string]any{
			"session_id": map[string]any{"type": "string", "description": "Session holding the ingested document"},
			"question":   map[string]any{"type": "string", "description": "The question to answer from the document"},
		}, []string{"session_id", "question"}),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args askArgs
		if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
			return errorResult(fmt.Errorf("invalid arguments: %w", err)), nil
		}

		answer, err := svc.Chat(ctx, args.SessionId, args.Question)
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(askReply{SessionId: args.SessionId, Answer: answer}), nil
	})
}

// --- get_summary ---

type sessionArgs struct {
	SessionId string `json:"session_id"`
}

func registerSummaryTool(srv *mcp.Server, svc docqa.Service) {
	tool := &mcp.Tool{
		Name:        "get_summary",
		Description: "Return the stored summary of the session's current document.",
		InputSchema: inputSchema(map[string]any{
			"session_id": map[string]any{"type": "string", "description": "Session holding the ingested document"},
		}, []string{"session_id"}),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args sessionArgs
		if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
			return errorResult(fmt.Errorf("invalid arguments: %w", err)), nil
		}

		session, found := svc.GetSession(ctx, args.SessionId)
		if !found || session.Summary == nil {
			return errorResult(errors.New("no summary for this session")), nil
		}
		return jsonResult(adapter.ToSummaryResponse(session)), nil
	})
}

// --- reset_session ---

type resetReply struct {
	SessionId string `json:"session_id"`
	State     string `json:"state"`
}

func registerResetTool(srv *mcp.Server, svc docqa.Service) {
	tool := &mcp.Tool{
		Name:        "reset_session",
		Description: "Discard the session's document, summary and conversation history.",
		InputSchema: inputSchema(map[string]any{
			"session_id": map[string]any{"type": "string", "description": "Session to reset"},
		}, []string{"session_id"}),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args sessionArgs
		if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
			return errorResult(fmt.Errorf("invalid arguments: %w", err)), nil
		}

		if err := svc.ResetSession(ctx, args.SessionId); err != nil {
			return errorResult(err), nil
		}
		return jsonResult(resetReply{SessionId: args.SessionId, State: "idle"}), nil
	})
}
