// Package emby talks to an Emby server's library endpoints.
package emby

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxErrorBody caps how much of an error response is kept for messages.
const maxErrorBody = 200

// SystemInfo is the subset of GET /System/Info scanarr cares about.
type SystemInfo struct {
	ServerName      string `json:"ServerName"`
	Version         string `json:"Version"`
	ID              string `json:"Id"`
	OperatingSystem string `json:"OperatingSystem"`
}

// MediaLibrary is one entry from the server's library listing.
type MediaLibrary struct {
	ID             string `json:"Id"`
	Name           string `json:"Name"`
	CollectionType string `json:"CollectionType,omitempty"`
}

type itemsResponse struct {
	Items []MediaLibrary `json:"Items"`
}

// Client issues authenticated requests against an Emby server.
// Every call is a single request: no retries, no caching.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an Emby API client.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Call performs one authenticated request and returns the response body.
// Failures are translated into ConnectionError, TimeoutError, AuthError,
// or ServerError.
func (c *Client) Call(ctx context.Context, method, endpoint string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Emby-Token", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("emby request", "method", method, "endpoint", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Err: err}
		}
		return nil, &ConnectionError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &AuthError{Status: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &ServerError{Status: resp.StatusCode, Body: excerpt(respBody)}
	}

	return respBody, nil
}

// SystemInfo fetches server identity, used for connection tests.
func (c *Client) SystemInfo(ctx context.Context) (*SystemInfo, error) {
	body, err := c.Call(ctx, http.MethodGet, "/System/Info", nil)
	if err != nil {
		return nil, err
	}

	var info SystemInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("decode system info: %w", err)
	}
	return &info, nil
}

// MediaFolders lists the server's libraries.
func (c *Client) MediaFolders(ctx context.Context) ([]MediaLibrary, error) {
	body, err := c.Call(ctx, http.MethodGet, "/Library/MediaFolders", nil)
	if err != nil {
		return nil, err
	}

	var resp itemsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode media folders: %w", err)
	}
	return resp.Items, nil
}

// RefreshAll asks the server to rescan every library.
func (c *Client) RefreshAll(ctx context.Context) error {
	_, err := c.Call(ctx, http.MethodPost, "/Library/Refresh", nil)
	return err
}

// RefreshLibrary asks the server to rescan one library.
func (c *Client) RefreshLibrary(ctx context.Context, id string) error {
	_, err := c.Call(ctx, http.MethodPost, "/Items/"+url.PathEscape(id)+"/Refresh", nil)
	return err
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody]
	}
	return s
}
