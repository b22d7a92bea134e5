package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client wraps HTTP calls to the scanarr daemon.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new scanarr API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// apiError extracts the error message from a JSON error body, falling
// back to the raw body.
func apiError(status int, body []byte) error {
	var e struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return fmt.Errorf("server error %d: %s", status, e.Error)
	}
	return fmt.Errorf("server error %d: %s", status, string(body))
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return apiError(resp.StatusCode, body)
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) post(path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", reader)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return apiError(resp.StatusCode, respBody)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// API response types (mirror server types)

type OutcomeResponse struct {
	Success     bool   `json:"success"`
	LibraryID   string `json:"library_id,omitempty"`
	LibraryName string `json:"library_name,omitempty"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
}

type RefreshResponse struct {
	Outcomes  []OutcomeResponse `json:"outcomes"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

type ListHistoryResponse struct {
	Items []OutcomeResponse `json:"items"`
	Count int               `json:"count"`
	Limit int               `json:"limit"`
}

type LibraryResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	CollectionType string `json:"collection_type,omitempty"`
}

type ListLibrariesResponse struct {
	Items []LibraryResponse `json:"items"`
	Count int               `json:"count"`
}

type ServerInfoResponse struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ID              string `json:"id,omitempty"`
	OperatingSystem string `json:"operating_system,omitempty"`
}

type TestResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Server  *ServerInfoResponse `json:"server,omitempty"`
}

type StatusResponse struct {
	Version        string `json:"version"`
	EmbyConfigured bool   `json:"emby_configured"`
	Refreshing     bool   `json:"refreshing"`
	HistoryCount   int    `json:"history_count"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
}

type EventResponse struct {
	ID         int64           `json:"id"`
	EventType  string          `json:"event_type"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt string          `json:"occurred_at"`
}

type ListEventsResponse struct {
	Items  []EventResponse `json:"items"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// API methods

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refresh runs a refresh campaign and waits for the outcomes.
func (c *Client) Refresh() (*RefreshResponse, error) {
	var resp RefreshResponse
	if err := c.post("/api/v1/refresh", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RefreshAsync queues a refresh campaign without waiting.
func (c *Client) RefreshAsync() error {
	return c.post("/api/v1/refresh/async", nil, nil)
}

func (c *Client) History(limit int) (*ListHistoryResponse, error) {
	path := fmt.Sprintf("/api/v1/refresh/history?limit=%d", limit)
	var resp ListHistoryResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Libraries() (*ListLibrariesResponse, error) {
	var resp ListLibrariesResponse
	if err := c.get("/api/v1/libraries", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Library resolves one library by id or name, including fuzzy matches.
func (c *Client) Library(idOrName string) (*LibraryResponse, error) {
	var resp LibraryResponse
	if err := c.get("/api/v1/libraries/"+url.PathEscape(idOrName), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Test() (*TestResponse, error) {
	var resp TestResponse
	if err := c.get("/api/v1/test", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Events(limit int) (*ListEventsResponse, error) {
	path := fmt.Sprintf("/api/v1/events?limit=%d", limit)
	var resp ListEventsResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Trigger reports an upstream pipeline completion to the daemon.
func (c *Client) Trigger(source, path string, count int) error {
	req := map[string]any{}
	if path != "" {
		req["path"] = path
	}
	if count > 0 {
		req["count"] = count
	}
	return c.post("/api/v1/webhook/"+url.PathEscape(source), req, nil)
}
