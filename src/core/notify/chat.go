package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Notifier delivers a form submission to the team chat. Handlers depend on
// the interface so tests can record calls without a live webhook.
type Notifier interface {
	Send(title string, fields map[string]string) error
}

// ChatNotifier posts a formatted message to a chat webhook URL. An empty URL
// disables delivery, which local development relies on.
type ChatNotifier struct {
	WebhookURL string
	Client     *http.Client
}

func NewChatNotifier(webhookURL string) *ChatNotifier {
	return &ChatNotifier{
		WebhookURL: webhookURL,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *ChatNotifier) Send(title string, fields map[string]string) error {
	if n.WebhookURL == "" {
		return nil
	}

	// Build the message text line by line; the chat webhook only needs a
	// plain "text" payload
	text := "*" + title + "*"
	for key, value := range fields {
		text += fmt.Sprintf("\n%s: %s", key, value)
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequest("POST", n.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := n.Client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	// Webhooks answer anywhere in the 2xx range, commonly 204
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook delivery failed with status %s: %s", resp.Status, string(respBody))
	}
	return nil
}
