package adapter

import (
	"fmt"

	"github.com/akolanti/docqa/internal/api"
	"github.com/akolanti/docqa/internal/domain/docmodel"
	"github.com/akolanti/docqa/internal/domain/jobModel"
)

func ToInitJobResponse(id string, sessionId string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		SessionId: sessionId,
		StatusURL: fmt.Sprintf("api/v1/jobs/%s", id),
	}
}

func ToJobResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Code != "" || job.Error.Message != "" {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	return api.JobResponse{
		Id:        job.Id,
		SessionId: job.SessionId,
		Status:    string(job.Status),
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
	}
}

func ToSessionResponse(session docmodel.Session) api.SessionResponse {
	response := api.SessionResponse{
		Id:        session.Id,
		State:     string(session.State),
		TurnCount: len(session.Conversation),
	}
	if session.Document != nil {
		response.Document = &api.DocumentInfo{
			Name:       session.Document.Name,
			MediaType:  session.Document.MediaType,
			Format:     string(session.Document.Format),
			SizeBytes:  session.Document.SizeBytes,
			IngestedAt: session.Document.IngestedAt,
		}
	}
	return response
}

// ToSummaryResponse expects a session that holds a summary, callers
// 404 before getting here.
func ToSummaryResponse(session docmodel.Session) api.SummaryResponse {
	summary := session.Summary
	return api.SummaryResponse{
		SessionId: session.Id,
		Short:     summary.Short,
		Detailed:  summary.Detailed,
		Bullets:   emptyIfNil(summary.Bullets),
		Insights:  emptyIfNil(summary.Insights),
		Keywords:  emptyIfNil(summary.Keywords),
	}
}

func ToHistoryResponse(session docmodel.Session) api.HistoryResponse {
	turns := make([]api.TurnResponse, 0, len(session.Conversation))
	for _, turn := range session.Conversation {
		turns = append(turns, api.TurnResponse{
			Role:    string(turn.Role),
			Content: turn.Content,
		})
	}
	return api.HistoryResponse{
		SessionId: session.Id,
		Turns:     turns,
	}
}

func ToChatResponse(sessionId string, content string) api.ChatResponse {
	return api.ChatResponse{
		SessionId: sessionId,
		Content:   content,
	}
}

func BadRequest(id string, error string, code int) api.APIError {
	return api.APIError{
		Code:    code,
		Message: error,
		Id:      id,
	}
}

// summary fields the service never sent render as [] rather than null
func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
