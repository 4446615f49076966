package jobModel

import (
	"context"
	"time"

	"github.com/akolanti/docqa/internal/domain/docmodel"
)

type JobStatus string
type InternalStatus string

type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusFailed   JobStatus = "FAILED"

	IngestInit      InternalStatus = "IngestInit"
	IngestClassify  InternalStatus = "IngestClassify"
	IngestExtract   InternalStatus = "IngestExtract"
	IngestSummarize InternalStatus = "IngestSummarize"
	Failed          InternalStatus = "Failed"

	Complete InternalStatus = "Complete"

	JobTypeIngest JobType = "Ingest"
)

type Job struct {
	Id          string         `json:"id"`
	SessionId   string         `json:"session_id"`
	TraceId     string         `json:"trace_id"`
	JobType     JobType        `json:"job_type"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	DocumentName string `json:"document_name,omitempty"`
	SpoolPath    string `json:"spool_path,omitempty"`
	MediaType    string `json:"media_type,omitempty"`
	SizeBytes    int64  `json:"size_bytes,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}

type SessionStore interface {
	GetSession(ctx context.Context, sessionId string) (docmodel.Session, bool)
	SaveSession(ctx context.Context, session docmodel.Session) error
	DeleteSession(ctx context.Context, sessionId string)
}
