package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"snapsort/internal/config"
)

const userAgent = "snapsort/0.1.0"

// Service defines the push notification surface exposed to the daemon.
type Service interface {
	SweepCompleted(ctx context.Context, moved, failed int, duration time.Duration) error
	ClassifyFailed(ctx context.Context, path string, cause error) error
	Test(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

// Noop returns a service that drops every notification.
func Noop() Service {
	return noopService{}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) SweepCompleted(ctx context.Context, moved, failed int, duration time.Duration) error {
	data := payload{
		title:   "Snapsort - Sweep Complete",
		message: fmt.Sprintf("Sorted %d file(s), %d failed in %s", moved, failed, duration.Round(time.Millisecond)),
		tags:    []string{"snapsort", "sweep", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) ClassifyFailed(ctx context.Context, path string, cause error) error {
	data := payload{
		title:    "Snapsort - Classification Failed",
		message:  fmt.Sprintf("Could not sort %s: %v", filepath.Base(path), cause),
		tags:     []string{"snapsort", "classify", "error"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) Test(ctx context.Context) error {
	data := payload{
		title:   "Snapsort - Test",
		message: "Test notification from snapsort",
		tags:    []string{"snapsort", "test"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) SweepCompleted(context.Context, int, int, time.Duration) error { return nil }
func (noopService) ClassifyFailed(context.Context, string, error) error           { return nil }
func (noopService) Test(context.Context) error                                    { return nil }
