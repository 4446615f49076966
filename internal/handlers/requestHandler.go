package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/akolanti/docqa/internal/adapter"
	"github.com/akolanti/docqa/internal/adapter/utils"
	"github.com/akolanti/docqa/internal/api"
	"github.com/akolanti/docqa/internal/config"
	"github.com/akolanti/docqa/internal/docqa"
	"github.com/akolanti/docqa/pkg/applog"
)

var logRH *applog.Logger

// carries everything the upload handler learned about the file so the
// job push does not need the request anymore
type newJobData struct {
	id           string
	sessionId    string
	traceId      string
	documentName string
	spoolPath    string
	mediaType    string
	sizeBytes    int64
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// UploadDocumentHandler godoc
// @Summary      Upload a document for ingestion
// @Description  Receives a file via multipart/form-data, spools it to disk, and queues an ingestion job for the target session.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        file        formData  file    true   "The document to ingest (PDF, Word, plain text, JPEG or PNG)"
// @Param        session_id  formData  string  false  "Target session id, generated when absent"
// @Success      202  {object}  api.InitJobResponse  "Accepted - job id, session id and status URL"
// @Failure      400  {object}  api.APIError         "Missing file or malformed multipart body"
// @Failure      413  {object}  api.APIError         "Upload body above the transport cap"
// @Failure      500  {object}  api.APIError         "Storage or write error"
// @Router       /api/v1/documents [post]
func UploadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		targetDir, errString := getSpoolDirectory()
		if errString != "" {
			logRH.Error("Couldn't get spool directory :", "err", errString)
			WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes)
		if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				WriteErrorResponse(w, http.StatusRequestEntityTooLarge, "", "Upload body too large")
				return
			}
			WriteErrorResponse(w, http.StatusBadRequest, "", "Malformed multipart request")
			return
		}

		fileReader, fileMetadata, err := r.FormFile("file")
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "file is required")
			return
		}
		defer fileReader.Close()

		sessionId := r.FormValue("session_id")
		if sessionId == "" {
			sessionId = utils.GetNewUUID()
			logRH.Debug(" New session : ", "sessionId:", sessionId)
		}

		filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(fileMetadata.Filename))
		spoolPath := filepath.Join(targetDir, filename)
		destinationFileWriter, err := os.Create(spoolPath)
		if err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, "", "Storage error")
			return
		}
		defer destinationFileWriter.Close()

		written, err := io.Copy(destinationFileWriter, fileReader)
		if err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, "", "Write error")
			return
		}

		newJob := newJobData{
			id:           utils.GetNewUUID(),
			sessionId:    sessionId,
			traceId:      traceIdFromContext(r.Context()),
			documentName: fileMetadata.Filename,
			spoolPath:    spoolPath,
			mediaType:    mediaTypeForUpload(fileMetadata),
			sizeBytes:    written,
		}
		CreateIngestJob(newJob)
		writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id, sessionId))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// JobStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of an ingestion job using its ID.
// @Tags         Job Status
// @Accept       json
// @Produce      json
// @Param        jobID  path  string  true  "Job ID"
// @Success      200  {object}  api.JobResponse  "The current status of the job"
// @Failure      404  {object}  api.APIError     "Job not found"
// @Router       /api/v1/jobs/{jobID} [get]
func JobStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		//use chi get the url id
		idString := utils.GetChiURLParam(r, "jobID")
		result, isFound := validateId(idString, traceIdFromContext(r.Context()))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToJobResponse(result))
	}
}

// SessionHandler godoc
// @Summary      Get session view
// @Description  Returns the session state, its current document if any, and the turn count.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {object}  api.SessionResponse
// @Failure      404  {object}  api.APIError  "Session not found"
// @Router       /api/v1/sessions/{sessionID} [get]
func SessionHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		svc := docService()
		if svc == nil {
			WriteErrorResponse(w, http.StatusServiceUnavailable, "", "Service not ready")
			return
		}
		sessionId := utils.GetChiURLParam(r, "sessionID")
		session, found := svc.GetSession(r.Context(), sessionId)
		if !found {
			WriteErrorResponse(w, http.StatusNotFound, sessionId, "Session not found")
			return
		}
		writeJsonResponse(w, http.StatusOK, adapter.ToSessionResponse(session))
	}
}

// SummaryHandler godoc
// @Summary      Get the document summary
// @Description  Returns the summary record produced when the session's current document was ingested.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {object}  api.SummaryResponse
// @Failure      404  {object}  api.APIError  "Session unknown or holds no summarized document"
// @Router       /api/v1/sessions/{sessionID}/summary [get]
func SummaryHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		svc := docService()
		if svc == nil {
			WriteErrorResponse(w, http.StatusServiceUnavailable, "", "Service not ready")
			return
		}
		sessionId := utils.GetChiURLParam(r, "sessionID")
		session, found := svc.GetSession(r.Context(), sessionId)
		if !found || session.Summary == nil {
			WriteErrorResponse(w, http.StatusNotFound, sessionId, "No summary for this session")
			return
		}
		writeJsonResponse(w, http.StatusOK, adapter.ToSummaryResponse(session))
	}
}

// HistoryHandler godoc
// @Summary      Get the conversation history
// @Description  Returns every recorded chat turn of the session in chronological order.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {object}  api.HistoryResponse
// @Failure      404  {object}  api.APIError  "Session not found"
// @Router       /api/v1/sessions/{sessionID}/history [get]
func HistoryHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		svc := docService()
		if svc == nil {
			WriteErrorResponse(w, http.StatusServiceUnavailable, "", "Service not ready")
			return
		}
		sessionId := utils.GetChiURLParam(r, "sessionID")
		session, found := svc.GetSession(r.Context(), sessionId)
		if !found {
			WriteErrorResponse(w, http.StatusNotFound, sessionId, "Session not found")
			return
		}
		writeJsonResponse(w, http.StatusOK, adapter.ToHistoryResponse(session))
	}
}

// ChatHandler godoc
// @Summary      Ask a question about the session's document
// @Description  Submits one user message and synchronously returns the assistant turn, which is the fallback text when the chat service fails.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path  string           true  "Session ID"
// @Param        request    body  api.ChatRequest  true  "User message"
// @Success      200  {object}  api.ChatResponse  "The assistant turn"
// @Failure      400  {object}  api.APIError      "Malformed request body"
// @Failure      409  {object}  api.APIError      "Session busy or holds no document"
// @Failure      422  {object}  api.APIError      "Empty or whitespace-only message"
// @Router       /api/v1/sessions/{sessionID}/chat [post]
func ChatHandler(w http.ResponseWriter, request *http.Request) {

	if validateContext(request.Context()) {
		svc := docService()
		if svc == nil {
			WriteErrorResponse(w, http.StatusServiceUnavailable, "", "Service not ready")
			return
		}
		sessionId := utils.GetChiURLParam(request, "sessionID")

		var requestData api.ChatRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the Chat handler reader :", err)
			}
		}(request.Body)
		if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil {

			logRH.Warn("Bad Chat Request: ", "error:", err, "session:", sessionId)
			WriteErrorResponse(w, http.StatusBadRequest, sessionId, "Bad Request")
			return
		}

		answer, err := svc.Chat(request.Context(), sessionId, requestData.Message)
		if err != nil {
			writeChatError(w, sessionId, err)
			return
		}
		writeJsonResponse(w, http.StatusOK, adapter.ToChatResponse(sessionId, answer))
		return
	}
	logRH.Warn("Invalid Context by request ", request.RemoteAddr)
}

func writeChatError(w http.ResponseWriter, sessionId string, err error) {
	switch {
	case errors.Is(err, docqa.ErrEmptyMessage):
		WriteErrorResponse(w, http.StatusUnprocessableEntity, sessionId, err.Error())
	case errors.Is(err, docqa.ErrSessionBusy):
		WriteErrorResponse(w, http.StatusConflict, sessionId, err.Error())
	case errors.Is(err, docqa.ErrNotReady):
		WriteErrorResponse(w, http.StatusConflict, sessionId, err.Error())
	default:
		logRH.Error("Chat request failed", "session", sessionId, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, sessionId, "Internal error")
	}
}

// ResetSessionHandler godoc
// @Summary      Reset a session
// @Description  Discards the session's document, summary and conversation. Idempotent, an unknown id becomes a fresh idle session.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {object}  api.SessionResponse  "The session after the reset"
// @Failure      500  {object}  api.APIError
// @Router       /api/v1/sessions/{sessionID}/reset [post]
func ResetSessionHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		svc := docService()
		if svc == nil {
			WriteErrorResponse(w, http.StatusServiceUnavailable, "", "Service not ready")
			return
		}
		sessionId := utils.GetChiURLParam(r, "sessionID")
		if err := svc.ResetSession(r.Context(), sessionId); err != nil {
			logRH.Error("Reset failed", "session", sessionId, "error", err)
			WriteErrorResponse(w, http.StatusInternalServerError, sessionId, "Could not reset session")
			return
		}
		session, _ := svc.GetSession(r.Context(), sessionId)
		writeJsonResponse(w, http.StatusOK, adapter.ToSessionResponse(session))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}
