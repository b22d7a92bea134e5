package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const userAgent = "scanarr/0.1"

// ntfy publishes messages to an ntfy topic. The body is the message
// text; title, tags and priority travel as headers.
type ntfy struct {
	endpoint string // server URL joined with the topic
	priority string // default priority from config
	client   *http.Client
}

func newNtfy(server, topic, priority string) *ntfy {
	return &ntfy{
		endpoint: strings.TrimSuffix(server, "/") + "/" + topic,
		priority: priority,
		client:   &http.Client{Timeout: sendTimeout},
	}
}

func (n *ntfy) Send(ctx context.Context, msg Message) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.Body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if msg.Title != "" {
		req.Header.Set("Title", msg.Title)
	}
	if len(msg.Tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.Tags, ","))
	}
	priority := msg.Priority
	if priority == "" {
		priority = n.priority
	}
	if priority != "" && priority != "default" {
		req.Header.Set("Priority", priority)
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
