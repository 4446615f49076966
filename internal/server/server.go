package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/akolanti/docqa/internal/adapter/utils"
	"github.com/akolanti/docqa/internal/config"
	"github.com/akolanti/docqa/internal/middleware"
	"github.com/akolanti/docqa/pkg/applog"
)

var (
	server  *http.Server
	_logger *applog.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	WorkerStop       chan bool
	Group            *sync.WaitGroup
	CloseServices    context.CancelFunc
}

func CreateServer(listenAddr string) {
	_logger = applog.NewLogger("Server")

	r := utils.GetRouter()

	r.Router.Get("/api/v1/health", middleware.HealthHandler)
	r.Router.Post("/api/v1/documents", middleware.UploadDocumentHandler)
	r.Router.Get("/api/v1/jobs/{jobID}", middleware.JobStatusHandler)
	r.Router.Get("/api/v1/sessions/{sessionID}", middleware.SessionHandler)
	r.Router.Get("/api/v1/sessions/{sessionID}/summary", middleware.SummaryHandler)
	r.Router.Get("/api/v1/sessions/{sessionID}/history", middleware.HistoryHandler)
	r.Router.Post("/api/v1/sessions/{sessionID}/chat", middleware.ChatHandler)
	r.Router.Post("/api/v1/sessions/{sessionID}/reset", middleware.ResetSessionHandler)
	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error :", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	println("\nServer is shutting down", state)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully: %s", err)
		}

		//close workers
		close(shutdownParams.WorkerStop)
		shutdownParams.Group.Wait()
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully is shutting down")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
