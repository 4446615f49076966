package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/docqa/internal/config"
	"github.com/akolanti/docqa/internal/docqa"
	"github.com/akolanti/docqa/internal/domain/jobModel"
	"github.com/akolanti/docqa/internal/job"
	"github.com/akolanti/docqa/internal/metrics"
	"github.com/akolanti/docqa/pkg/applog"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *applog.Logger
)

type JobHandler struct {
	jobs *job.Service
	doc  docqa.Service
}

func InitHandlers(jobService *job.Service, docService docqa.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{jobs: jobService, doc: docService}

		logJH = applog.NewLogger("JobHandler")
		logRH = applog.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})

}

func CreateIngestJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	logJH.Info("To create new job")
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TraceIDKey, traceId)
	if handlerInstance != nil {
		return handlerInstance.jobs.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

func docService() docqa.Service {
	if handlerInstance == nil {
		return nil
	}
	return handlerInstance.doc
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.SessionId = newJob.sessionId
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.CurrentStep = jobModel.IngestInit
	_job.JobType = jobModel.JobTypeIngest
	_job.JobPayload = jobModel.JobPayload{
		DocumentName: newJob.documentName,
		SpoolPath:    newJob.spoolPath,
		MediaType:    newJob.mediaType,
		SizeBytes:    newJob.sizeBytes,
	}

	//metrics
	metrics.IncrementJobsInQueue()

	h.jobs.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed

	accurateCount := atomic.AddInt64(&h.jobs.RequestCount, 1) //after sending a request increment counter
	logJH.Debug("Request count ", accurateCount)

	//every ingestion is heavyweight so each one nudges the dispatcher,
	//non-blocking so intake never stalls on a full signal buffer
	select {
	case h.jobs.DispatcherChannel <- true:
	default:
	}
	logJH.Info("Created new job")
}
