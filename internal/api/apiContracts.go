package api

import "time"

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	SessionId string            `json:"session_id" example:"d2f1c7a0-5b8e-4f70-9c1d-3a9e8b2c6d41"`
	Status    string            `json:"status" example:"COMPLETE"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    string `json:"code" example:"UNSUPPORTED_FORMAT"`
	Message string `json:"message" example:"media type \"image/gif\" is not supported"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	SessionId string `json:"session_id"`
	StatusURL string `json:"status_url"`
}

type SessionResponse struct {
	Id        string        `json:"id"`
	State     string        `json:"state" example:"ready"`
	Document  *DocumentInfo `json:"document,omitempty"`
	TurnCount int           `json:"turn_count"`
}

type DocumentInfo struct {
	Name       string    `json:"name"`
	MediaType  string    `json:"media_type"`
	Format     string    `json:"format"`
	SizeBytes  int64     `json:"size_bytes"`
	IngestedAt time.Time `json:"ingested_at"`
}

type SummaryResponse struct {
	SessionId string   `json:"session_id"`
	Short     string   `json:"short"`
	Detailed  string   `json:"detailed"`
	Bullets   []string `json:"bullets"`
	Insights  []string `json:"insights"`
	Keywords  []string `json:"keywords"`
}

type HistoryResponse struct {
	SessionId string         `json:"session_id"`
	Turns     []TurnResponse `json:"turns"`
}

type TurnResponse struct {
	Role    string `json:"role" example:"assistant"`
	Content string `json:"content"`
}

type ChatResponse struct {
	SessionId string `json:"session_id"`
	Content   string `json:"content"`
}

// APIError is the envelope for transport level failures. Pipeline
// failures travel inside JobResponse.Error with their taxonomy code.
type APIError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Bad Request"`
	Id      string `json:"id,omitempty"`
}

// requests---------------------

type ChatRequest struct {
	Message string `json:"message" validate:"required" `
}
