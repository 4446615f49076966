// @title           Document QA API
// @version         1.0
// @description     This API ingests documents, summarizes them and answers questions about them over multi-turn chat.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email   ank.github@gmail.com

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/akolanti/docqa/internal/config"
	"github.com/akolanti/docqa/internal/customHttpClient"
	"github.com/akolanti/docqa/internal/data/store"
	"github.com/akolanti/docqa/internal/docqa"
	"github.com/akolanti/docqa/internal/docqa/chat"
	"github.com/akolanti/docqa/internal/docqa/extract"
	"github.com/akolanti/docqa/internal/docqa/summarize"
	jobmodel "github.com/akolanti/docqa/internal/domain/jobModel"
	"github.com/akolanti/docqa/internal/handlers"
	"github.com/akolanti/docqa/internal/job"
	"github.com/akolanti/docqa/internal/mcptool"
	"github.com/akolanti/docqa/internal/server"
	"github.com/akolanti/docqa/internal/worker"
	"github.com/akolanti/docqa/pkg/applog"
)

var (
	listenAddr        string
	mcpMode           bool
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	applog.Init()
	var logger = applog.NewLogger("main")

	//config
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file loaded", "reason", err)
	}
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.BoolVar(&mcpMode, "mcp", false, "serve the MCP tools on stdio instead of the HTTP API")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and the stores
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
	}
	logger.Info("Starting job service")

	//keep the concrete pointers until the nil checks are done, a nil
	//pointer inside the interface field would slip past them
	redisJobs := store.GetRedisJobStore(serviceContext)
	redisSessions := store.GetRedisSessionStore(serviceContext)
	if redisJobs == nil || redisSessions == nil {
		if !config.FallbackRedisToInternalStore {
			logger.Error("Redis stores are offline and the in-memory fallback is disabled")
			return
		}
		logger.Error("Redis stores are offline, falling back to the in-memory stores")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
		serviceConfig.SessionStore = store.InitInMemorySessionStore()
	} else {
		serviceConfig.JobStore = redisJobs
		serviceConfig.SessionStore = redisSessions
	}
	service := job.InitJobService(serviceConfig)

	summarizer := summarize.NewSummarizer(serviceContext, customHttpClient.New(config.SummaryRequestTimeout))
	completer := chat.NewCompleter(serviceContext, customHttpClient.New(config.ChatRequestTimeout))

	if summarizer == nil || completer == nil {
		logger.Error("One or more providers failed to initialize. Shutting down.")
		logger.Debug("Available providers : ", "Summarizer", summarizer != nil, "Completer", completer != nil)
		return
	}

	docService := docqa.NewService(extract.NewRegistry(extract.NewPDFParser()), summarizer, completer, serviceConfig.SessionStore)

	if mcpMode {
		logger.Info("Serving MCP tools on stdio")
		if err := mcptool.Run(serviceContext, docService); err != nil {
			logger.Error("MCP server stopped", "error", err)
		}
		return
	}

	handlers.InitHandlers(service, docService)

	//init worker pool
	worker.InitServices(service, docService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
