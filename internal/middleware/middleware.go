package middleware

import (
	"net/http"
	"strconv"

	"github.com/akolanti/docqa/internal/handlers"
	"github.com/akolanti/docqa/internal/metrics"
	"github.com/akolanti/docqa/pkg/applog"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *applog.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
	id           string
}

var HealthHandler = Wrap(handlers.HealthHandler)

var UploadDocumentHandler = Wrap(handlers.UploadDocumentHandler)
var JobStatusHandler = Wrap(handlers.JobStatusHandler)
var SessionHandler = Wrap(handlers.SessionHandler)
var SummaryHandler = Wrap(handlers.SummaryHandler)
var HistoryHandler = Wrap(handlers.HistoryHandler)
var ChatHandler = Wrap(handlers.ChatHandler)
var ResetSessionHandler = Wrap(handlers.ResetSessionHandler)

func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200} //metrics
		re := processRequest(requestResponseStruct{req: r, writer: rec})

		if re.badRequest.isBadRequest {
			handleBadRequest(re)
		} else {
			next(rec, re.req)
		}

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc() //metrics
	}
}

// processRequest only records a failure, Wrap owns the single error
// write so a rejected request is never answered twice.
func processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = applog.NewLogger("middleware")
	re.logger.Info("New request received")
	re = injectTrace(re)
	if re.badRequest.isBadRequest {
		return re
	}
	re = authenticate(re)
	if re.badRequest.isBadRequest {
		return re
	}
	re = rateLimiter(re)

	return re
}
