package customHttpClient

import (
	"net/http"
	"time"

	"github.com/akolanti/docqa/internal/config"
)

// one pooled transport shared by every remote provider call so the
// summarize and chat services reuse connections instead of paying the
// handshake per request
var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: customTransport,
		Timeout:   timeout,
	}
}
