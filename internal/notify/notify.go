// Package notify hands order summaries to the messaging channel.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const whatsAppBase = "https://wa.me/"

// WhatsAppLink builds the deep link that opens a chat with number prefilled with text.
func WhatsAppLink(number, text string) string {
	return whatsAppBase + url.PathEscape(number) + "?text=" + url.QueryEscape(text)
}

type Message struct {
	OrderNumber string `json:"order_number"`
	Text        string `json:"text"`
	Link        string `json:"link"`
}

// Sender delivers a message to staff. The response body is never inspected.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type WebhookSender struct {
	url    string
	client *http.Client
}

func NewWebhookSender(url string, timeout time.Duration) *WebhookSender {
	return &WebhookSender{url: url, client: &http.Client{Timeout: timeout}}
}

func (s *WebhookSender) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("post message: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// LogSender writes messages to the log. Used when no webhook is configured.
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.log.Info("order notification", "order_number", msg.OrderNumber, "link", msg.Link)
	return nil
}
