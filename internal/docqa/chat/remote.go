package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/akolanti/docqa/internal/config"
	"github.com/akolanti/docqa/internal/domain/docmodel"
	"github.com/akolanti/docqa/pkg/applog"
)

type chatRequest struct {
	Messages []docmodel.ChatTurn `json:"messages"`
}

type chatResponse struct {
	Content string `json:"content"`
}

type serviceError struct {
	Error string `json:"error"`
}

type remoteCompleter struct {
	client *http.Client
	url    string
	logger *applog.Logger
}

func NewRemoteCompleter(client *http.Client) Completer {
	url := os.Getenv("CHAT_SERVICE_URL")
	if url == "" {
		url = config.ChatServiceURL
	}
	return &remoteCompleter{
		client: client,
		url:    url,
		logger: applog.NewLogger("Remote Completer"),
	}
}

func (c *remoteCompleter) Complete(ctx context.Context, messages []docmodel.ChatTurn) (string, error) {
	reqJSON, err := json.Marshal(chatRequest{Messages: messages})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqJSON))
	if err != nil {
		return "", fmt.Errorf("create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Sending chat request", "url", c.url, "messages", len(messages))

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Error("chat request failed", "error", err)
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("chat service error", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("chat service: %s", reportedMessage(resp.StatusCode, body))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	return parsed.Content, nil
}

func reportedMessage(status int, body []byte) string {
	var parsed serviceError
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	return fmt.Sprintf("service returned status %d", status)
}
