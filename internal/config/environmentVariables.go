package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IsProd                       = false
	LogLevelProd                 = slog.LevelInfo
	FallbackRedisToInternalStore = true //if redis init fails, fall back to the in-memory stores
	TraceIDKey                   = "traceId"

	RateLimitPerSecond = 2
	BurstRateLimit     = 5
	NoAuthBypass       = true //dev only - set false once AUTH_TOKEN is provisioned

	MaxWorkerCount    int64 = 10
	MinWorkerCount    int64 = 1
	IdleWorkerTimeout       = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 90 * time.Second //chat answers synchronously, leave room for the model call
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//ingestion jobs get one bounded run each, nothing is retried
	IngestJobTimeout = 3 * time.Minute

	//document intake
	MaxDocumentSizeBytes int64 = 10 * 1024 * 1024 //documents at or above this fail validation
	MaxUploadBytes       int64 = MaxDocumentSizeBytes + 1<<20
	UploadSpoolDir             = "temporary_data"

	MediaTypePDF        = "application/pdf"
	MediaTypeWordLegacy = "application/msword"
	MediaTypeWordXML    = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypePlainText  = "text/plain"
	MediaTypeJPEG       = "image/jpeg"
	MediaTypePNG        = "image/png"

	//extraction
	PageExtractTimeout   = 10 * time.Second
	ImagePlaceholderText = "This document is an image (JPEG or PNG). Text recognition (OCR) is not implemented, so no text could be read from it."
	WordPlaceholderText  = "This document is a Word file. Word text extraction is not supported, so no text could be read from it."

	//conversation
	ChatContextCharLimit  = 20000 //document characters resent on every turn
	AssistantGreeting     = "I have read your document. Ask me anything about it."
	DocumentFramingPrompt = "Answer the user's questions using only the document below. If the document does not contain the answer, say that it does not.\n\nDOCUMENT:\n"
	AssistantAck          = "Understood. I will answer using only the supplied document."
	ChatFallbackReply     = "Sorry, something went wrong while answering. Please try again."

	//providers - remote is the plain JSON protocol, openai and gemini talk to the model APIs directly
	DefaultSummaryProvider = "remote"
	DefaultChatProvider    = "remote"
	SummaryServiceURL      = "http://127.0.0.1:8091/summarize"
	ChatServiceURL         = "http://127.0.0.1:8092/chat"
	SummaryRequestTimeout  = 60 * time.Second
	ChatRequestTimeout     = 60 * time.Second

	OpenAIModelName = "gpt-4o-mini"
	GeminiModelName = "gemini-2.5-flash-lite-preview-09-2025"

	SummaryInstruction = "You summarize documents. Reply with a single JSON object with the fields short (string), detailed (string), bullets (array of strings), insights (array of strings) and keywords (array of strings). Reply with the JSON only, no markdown."

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DBs we can use
	RedisJobStoreDB     = 0
	RedisSessionStoreDB = 1

	//redis timeouts
	RedisJobStoreTTL     = 24 * time.Hour
	RedisSessionStoreTTL = 24 * time.Hour
)

// secrets stay out of the const block so they can come from the environment
var (
	AuthToken     = os.Getenv("AUTH_TOKEN")
	RedisPassword = os.Getenv("REDIS_PASSWORD")
)
