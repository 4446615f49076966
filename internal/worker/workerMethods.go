package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/akolanti/docqa/internal/config"
	jobmodel "github.com/akolanti/docqa/internal/domain/jobModel"
	"github.com/akolanti/docqa/internal/metrics"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		// Record total time at the end, labelled with the final status
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TraceIDKey, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.IngestJobTimeout)
	defer cancel()
	logger.With("trace Id ", job.TraceId)
	logger.Debug("Processing job:", "job Id:", job.Id)

	job.Status = jobmodel.JobStatusRunning
	saveJobState(ctx, job)

	if job.JobType == jobmodel.JobTypeIngest {
		job = _docService.RunIngestion(ctx, job)
	} else {
		logger.Error("Unknown job type", "jobType", job.JobType, "job Id", job.Id)
		job.Status = jobmodel.JobStatusFailed
		job.CurrentStep = jobmodel.Failed
		job.Error = jobmodel.JobError{Code: "INTERNAL_ERROR", Message: "unknown job type"}
	}

	job.EndTime = time.Now()
	saveJobState(ctx, job)
}

func removeWorker(reason string) {

	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", atomic.LoadInt64(&currentWorkerCount))
	metrics.DecrementActiveWorkerCount()

}

func saveJobState(ctx context.Context, job jobmodel.Job) {
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update job status", "err", err)
	}
}
