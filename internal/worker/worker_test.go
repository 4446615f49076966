package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akolanti/docqa/internal/domain/docmodel"
	"github.com/akolanti/docqa/internal/domain/jobModel"
	"github.com/akolanti/docqa/internal/job"
	"github.com/akolanti/docqa/pkg/applog"
)

// MockDocService to track if jobs are executed
type MockDocService struct {
	ProcessedCount int32
	OnRunIngestion func(ctx context.Context, j jobModel.Job) jobModel.Job
}

func (m *MockDocService) RunIngestion(ctx context.Context, j jobModel.Job) jobModel.Job {
	atomic.AddInt32(&m.ProcessedCount, 1)
	if m.OnRunIngestion != nil {
		return m.OnRunIngestion(ctx, j)
	}
	j.Status = jobModel.JobStatusComplete
	j.CurrentStep = jobModel.Complete
	return j
}

func (m *MockDocService) Chat(ctx context.Context, sessionId string, message string) (string, error) {
	return "", nil
}

func (m *MockDocService) ResetSession(ctx context.Context, sessionId string) error {
	return nil
}

func (m *MockDocService) GetSession(ctx context.Context, sessionId string) (docmodel.Session, bool) {
	return docmodel.Session{}, false
}

type MockJobStore struct {
	OnSaveJob func(ctx context.Context, job jobModel.Job) error
}

func (m *MockJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	return jobModel.Job{}, false
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobID string) {
}

func (m *MockJobStore) SaveJob(ctx context.Context, j jobModel.Job) error {
	if m.OnSaveJob != nil {
		return m.OnSaveJob(ctx, j)
	}
	return nil
}

func TestWorkerPool_Flow(t *testing.T) {
	// 1. Setup
	jobSvc := &job.Service{
		JobChannel:        make(chan jobModel.Job, 10),
		DispatcherChannel: make(chan bool, 10),
		JobStore:          &MockJobStore{},
	}
	mockDoc := &MockDocService{}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	InitServices(jobSvc, mockDoc)
	InitWorkerPool(stopChan, wg)

	// Reset global state for test
	atomic.StoreInt64(&currentWorkerCount, 0)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		// Signal dispatcher to create a worker
		jobSvc.DispatcherChannel <- true

		// Give it a millisecond to spawn
		time.Sleep(50 * time.Millisecond)

		count := atomic.LoadInt64(&currentWorkerCount)
		if count < 1 {
			t.Errorf("Expected at least 1 worker, got %d", count)
		}
	})

	t.Run("Worker processes a job", func(t *testing.T) {
		testJob := jobModel.Job{Id: "test-1", JobType: jobModel.JobTypeIngest}
		jobSvc.JobChannel <- testJob

		// Wait for worker to pick up and process
		time.Sleep(50 * time.Millisecond)

		processed := atomic.LoadInt32(&mockDoc.ProcessedCount)
		if processed != 1 {
			t.Errorf("Expected 1 job processed, got %d", processed)
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		// Send stop signal
		close(stopChan)

		// Wait for workers to exit
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			// Success
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestExecuteJob_PersistsRunningThenFinalStatus(t *testing.T) {
	var saves []jobModel.JobStatus
	jobSvc := &job.Service{
		JobStore: &MockJobStore{OnSaveJob: func(ctx context.Context, j jobModel.Job) error {
			saves = append(saves, j.Status)
			return nil
		}},
	}
	failing := &MockDocService{OnRunIngestion: func(ctx context.Context, j jobModel.Job) jobModel.Job {
		j.Status = jobModel.JobStatusFailed
		j.CurrentStep = jobModel.Failed
		j.Error = jobModel.JobError{Code: "EXTRACTION_FAILED", Message: "document could not be opened"}
		return j
	}}
	InitServices(jobSvc, failing)
	logger = applog.NewLogger("TestWorkerPool")

	executeJob(jobModel.Job{Id: "job-1", JobType: jobModel.JobTypeIngest})

	if len(saves) != 2 {
		t.Fatalf("Expected 2 job saves (running, final), got %d", len(saves))
	}
	if saves[0] != jobModel.JobStatusRunning {
		t.Errorf("Expected first save to be RUNNING, got %s", saves[0])
	}
	if saves[1] != jobModel.JobStatusFailed {
		t.Errorf("Expected final save to keep FAILED, got %s", saves[1])
	}
}

func TestExecuteJob_UnknownJobTypeFails(t *testing.T) {
	var final jobModel.Job
	jobSvc := &job.Service{
		JobStore: &MockJobStore{OnSaveJob: func(ctx context.Context, j jobModel.Job) error {
			final = j
			return nil
		}},
	}
	mockDoc := &MockDocService{}
	InitServices(jobSvc, mockDoc)
	logger = applog.NewLogger("TestWorkerPool")

	executeJob(jobModel.Job{Id: "job-2", JobType: jobModel.JobType("Transcode")})

	if atomic.LoadInt32(&mockDoc.ProcessedCount) != 0 {
		t.Error("Ingestion should not run for an unknown job type")
	}
	if final.Status != jobModel.JobStatusFailed {
		t.Errorf("Expected FAILED, got %s", final.Status)
	}
	if final.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("Expected INTERNAL_ERROR, got %s", final.Error.Code)
	}
	if final.EndTime.IsZero() {
		t.Error("Expected EndTime to be set on the final save")
	}
}

func TestWorker_IdleTimeoutKeepsMinimumPool(t *testing.T) {
	// Temporarily override config/globals for test
	atomic.StoreInt64(&currentWorkerCount, 0)
	atomic.StoreInt64(&minWorkerCount, 1)
	idleWorkerTimeout = 50 * time.Millisecond
	logger = applog.NewLogger("TestWorkerPool")
	jobSvc := &job.Service{
		JobChannel: make(chan jobModel.Job),
	}
	InitServices(jobSvc, &MockDocService{})

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	// Spawn 1 worker manually, it is the whole minimum pool
	createWorker()
	time.Sleep(300 * time.Millisecond)

	count := atomic.LoadInt64(&currentWorkerCount)
	if count != 1 {
		t.Errorf("Assertion Failed: Last worker of the minimum pool must not retire, count is %d", count)
	}

	close(stopChan)
	wg.Wait()
}

func TestWorker_IdleTimeoutRetiresExcessWorkers(t *testing.T) {
	atomic.StoreInt64(&currentWorkerCount, 0)
	atomic.StoreInt64(&minWorkerCount, 1)
	idleWorkerTimeout = 50 * time.Millisecond
	logger = applog.NewLogger("TestWorkerPool")
	jobSvc := &job.Service{
		JobChannel: make(chan jobModel.Job),
	}
	InitServices(jobSvc, &MockDocService{})

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	// Spawn one worker above the minimum
	createWorker()
	createWorker()
	time.Sleep(300 * time.Millisecond)

	count := atomic.LoadInt64(&currentWorkerCount)
	if count >= 2 {
		t.Errorf("Assertion Failed: Excess idle worker should have retired, count is %d", count)
	}

	close(stopChan)
	wg.Wait()
}
