package v1

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/vmunix/scanarr/internal/emby"
	"github.com/vmunix/scanarr/internal/events"
	"github.com/vmunix/scanarr/internal/refresh"
)

//go:embed testdata/schema.sql
var testSchema string

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return db
}

type fakeOrchestrator struct {
	outcomes   []refresh.Outcome
	refreshing bool
	submitted  int
	testResult refresh.TestResult
}

func (f *fakeOrchestrator) RunCampaign(ctx context.Context) []refresh.Outcome { return f.outcomes }

func (f *fakeOrchestrator) Submit() { f.submitted++ }

func (f *fakeOrchestrator) TestConnection(ctx context.Context) refresh.TestResult {
	return f.testResult
}

func (f *fakeOrchestrator) RecentHistory(limit int) []refresh.Outcome {
	if limit <= 0 || limit > len(f.outcomes) {
		limit = len(f.outcomes)
	}
	return f.outcomes[:limit]
}

func (f *fakeOrchestrator) Refreshing() bool { return f.refreshing }

type fakeLibraries struct {
	libs []emby.MediaLibrary
}

func (f *fakeLibraries) List(ctx context.Context) []emby.MediaLibrary { return f.libs }

func (f *fakeLibraries) Resolve(ctx context.Context, idOrName string) (emby.MediaLibrary, bool) {
	for _, l := range f.libs {
		if l.ID == idOrName || l.Name == idOrName {
			return l, true
		}
	}
	return emby.MediaLibrary{}, false
}

func newTestServer(t *testing.T, deps ServerDeps) *Server {
	t.Helper()
	if deps.Orchestrator == nil {
		deps.Orchestrator = &fakeOrchestrator{}
	}
	if deps.Libraries == nil {
		deps.Libraries = &fakeLibraries{}
	}
	srv, err := New(deps, Config{Version: "0.1.0-test", EmbyConfigured: true})
	require.NoError(t, err)
	return srv
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	return out
}

func TestNew_ValidatesDeps(t *testing.T) {
	_, err := New(ServerDeps{Libraries: &fakeLibraries{}}, Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orchestrator")

	_, err = New(ServerDeps{Orchestrator: &fakeOrchestrator{}}, Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "library lister")
}

func TestRunRefresh(t *testing.T) {
	orch := &fakeOrchestrator{
		outcomes: []refresh.Outcome{
			{Success: true, LibraryID: "21", LibraryName: "Movies", Message: "refresh triggered"},
			{Success: false, LibraryID: "42", LibraryName: "TV Shows", Message: "emby connection failed"},
		},
	}
	srv := newTestServer(t, ServerDeps{Orchestrator: orch})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	w := httptest.NewRecorder()
	srv.runRefresh(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[refreshResponse](t, w)
	assert.Len(t, resp.Outcomes, 2)
	assert.Equal(t, 1, resp.Succeeded)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, "Movies", resp.Outcomes[0].LibraryName)
}

func TestRunRefresh_AlreadyRunning(t *testing.T) {
	// An empty outcome list is how the orchestrator reports a dropped
	// request, so the API maps it to 409.
	srv := newTestServer(t, ServerDeps{Orchestrator: &fakeOrchestrator{refreshing: true}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	w := httptest.NewRecorder()
	srv.runRefresh(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	resp := decodeBody[errorResponse](t, w)
	assert.Equal(t, "REFRESH_IN_PROGRESS", resp.Code)
}

func TestSubmitRefresh(t *testing.T) {
	orch := &fakeOrchestrator{}
	srv := newTestServer(t, ServerDeps{Orchestrator: orch})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh/async", nil)
	w := httptest.NewRecorder()
	srv.submitRefresh(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)
	resp := decodeBody[acceptedResponse](t, w)
	assert.Equal(t, "accepted", resp.Status)
	assert.Equal(t, 1, orch.submitted)
}

func TestListHistory(t *testing.T) {
	orch := &fakeOrchestrator{
		outcomes: []refresh.Outcome{
			{Success: true, Message: "refresh triggered"},
			{Success: true, Message: "refresh triggered"},
			{Success: false, Message: "emby connection failed"},
		},
	}
	srv := newTestServer(t, ServerDeps{Orchestrator: orch})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/refresh/history?limit=2", nil)
	w := httptest.NewRecorder()
	srv.listHistory(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[listHistoryResponse](t, w)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 2, resp.Limit)
	assert.Len(t, resp.Items, 2)
}

func TestListHistory_NegativeLimit(t *testing.T) {
	srv := newTestServer(t, ServerDeps{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/refresh/history?limit=-5", nil)
	w := httptest.NewRecorder()
	srv.listHistory(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody[errorResponse](t, w)
	assert.Equal(t, "INVALID_PAGINATION", resp.Code)
}

func TestListLibraries(t *testing.T) {
	libs := &fakeLibraries{libs: []emby.MediaLibrary{
		{ID: "21", Name: "Movies", CollectionType: "movies"},
		{ID: "42", Name: "TV Shows", CollectionType: "tvshows"},
	}}
	srv := newTestServer(t, ServerDeps{Libraries: libs})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/libraries", nil)
	w := httptest.NewRecorder()
	srv.listLibraries(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[listLibrariesResponse](t, w)
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "21", resp.Items[0].ID)
	assert.Equal(t, "Movies", resp.Items[0].Name)
	assert.Equal(t, "movies", resp.Items[0].CollectionType)
}

func TestListLibraries_Empty(t *testing.T) {
	srv := newTestServer(t, ServerDeps{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/libraries", nil)
	w := httptest.NewRecorder()
	srv.listLibraries(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	// Items must be an empty array, not null.
	assert.Contains(t, w.Body.String(), `"items":[]`)
}

func TestGetLibrary(t *testing.T) {
	libs := &fakeLibraries{libs: []emby.MediaLibrary{
		{ID: "21", Name: "Movies", CollectionType: "movies"},
	}}
	srv := newTestServer(t, ServerDeps{Libraries: libs})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/libraries/Movies", nil)
	req.SetPathValue("library", "Movies")
	w := httptest.NewRecorder()
	srv.getLibrary(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[libraryResponse](t, w)
	assert.Equal(t, "21", resp.ID)
	assert.Equal(t, "Movies", resp.Name)
}

func TestGetLibrary_NotFound(t *testing.T) {
	srv := newTestServer(t, ServerDeps{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/libraries/Anime", nil)
	req.SetPathValue("library", "Anime")
	w := httptest.NewRecorder()
	srv.getLibrary(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeBody[errorResponse](t, w)
	assert.Equal(t, "LIBRARY_NOT_FOUND", resp.Code)
}

func TestTestConnection(t *testing.T) {
	orch := &fakeOrchestrator{
		testResult: refresh.TestResult{
			Success: true,
			Message: "connected to nas (version 4.8.11.0)",
			ServerInfo: &emby.SystemInfo{
				ServerName:      "nas",
				Version:         "4.8.11.0",
				ID:              "e1a2",
				OperatingSystem: "Linux",
			},
		},
	}
	srv := newTestServer(t, ServerDeps{Orchestrator: orch})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/test", nil)
	w := httptest.NewRecorder()
	srv.testConnection(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[testResponse](t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Server)
	assert.Equal(t, "nas", resp.Server.Name)
	assert.Equal(t, "4.8.11.0", resp.Server.Version)
	assert.Equal(t, "Linux", resp.Server.OperatingSystem)
}

func TestTestConnection_Failure(t *testing.T) {
	orch := &fakeOrchestrator{
		testResult: refresh.TestResult{Message: "emby connection failed: connection refused"},
	}
	srv := newTestServer(t, ServerDeps{Orchestrator: orch})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/test", nil)
	w := httptest.NewRecorder()
	srv.testConnection(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[testResponse](t, w)
	assert.False(t, resp.Success)
	assert.Nil(t, resp.Server)
}

func TestGetStatus(t *testing.T) {
	orch := &fakeOrchestrator{
		refreshing: true,
		outcomes:   []refresh.Outcome{{Success: true}, {Success: false}},
	}
	srv := newTestServer(t, ServerDeps{Orchestrator: orch})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	w := httptest.NewRecorder()
	srv.getStatus(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[statusResponse](t, w)
	assert.Equal(t, "0.1.0-test", resp.Version)
	assert.True(t, resp.EmbyConfigured)
	assert.True(t, resp.Refreshing)
	assert.Equal(t, 2, resp.HistoryCount)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, int64(0))
}

func TestWebhook_Generate(t *testing.T) {
	bus := events.NewBus(nil, testLogger())
	t.Cleanup(func() { bus.Close() })
	ch := bus.Subscribe(events.EventGenerateCompleted, 1)

	srv := newTestServer(t, ServerDeps{Bus: bus})

	body := strings.NewReader(`{"path": "/media/movies", "count": 12}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhook/generate", body)
	req.SetPathValue("source", "generate")
	w := httptest.NewRecorder()
	srv.webhook(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)

	select {
	case e := <-ch:
		gc, ok := e.(*events.GenerateCompleted)
		require.True(t, ok)
		assert.Equal(t, "/media/movies", gc.Path)
		assert.Equal(t, 12, gc.Count)
		assert.Equal(t, events.EntityPipeline, gc.EntityType())
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestWebhook_Rename_EmptyBody(t *testing.T) {
	bus := events.NewBus(nil, testLogger())
	t.Cleanup(func() { bus.Close() })
	ch := bus.Subscribe(events.EventRenameCompleted, 1)

	srv := newTestServer(t, ServerDeps{Bus: bus})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhook/rename", nil)
	req.SetPathValue("source", "rename")
	w := httptest.NewRecorder()
	srv.webhook(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)

	select {
	case e := <-ch:
		// Without a path the source token doubles as the entity id.
		assert.Equal(t, "rename", e.EntityID())
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestWebhook_UnknownSource(t *testing.T) {
	bus := events.NewBus(nil, testLogger())
	t.Cleanup(func() { bus.Close() })

	srv := newTestServer(t, ServerDeps{Bus: bus})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhook/sonarr", nil)
	req.SetPathValue("source", "sonarr")
	w := httptest.NewRecorder()
	srv.webhook(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody[errorResponse](t, w)
	assert.Equal(t, "UNKNOWN_SOURCE", resp.Code)
}

func TestWebhook_InvalidJSON(t *testing.T) {
	bus := events.NewBus(nil, testLogger())
	t.Cleanup(func() { bus.Close() })

	srv := newTestServer(t, ServerDeps{Bus: bus})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhook/generate", strings.NewReader("{not json"))
	req.SetPathValue("source", "generate")
	w := httptest.NewRecorder()
	srv.webhook(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody[errorResponse](t, w)
	assert.Equal(t, "INVALID_JSON", resp.Code)
}

func TestWebhook_NoBus(t *testing.T) {
	srv := newTestServer(t, ServerDeps{})
	handler := srv.requireBus(srv.webhook)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhook/generate", nil)
	req.SetPathValue("source", "generate")
	w := httptest.NewRecorder()
	handler(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeBody[errorResponse](t, w)
	assert.Equal(t, "SERVICE_UNAVAILABLE", resp.Code)
}

func TestListEvents(t *testing.T) {
	db := setupTestDB(t)
	log := events.NewEventLog(db)

	for i := 0; i < 3; i++ {
		_, err := log.Append(&events.GenerateCompleted{
			BaseEvent: events.NewBaseEvent(events.EventGenerateCompleted, events.EntityPipeline, "/data/strm"),
			Path:      "/data/strm",
			Count:     i,
		})
		require.NoError(t, err)
	}

	srv := newTestServer(t, ServerDeps{EventLog: log})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events?limit=2", nil)
	w := httptest.NewRecorder()
	srv.listEvents(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[listEventsResponse](t, w)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.Limit)
	require.Len(t, resp.Items, 2)
	// Newest first.
	assert.Greater(t, resp.Items[0].ID, resp.Items[1].ID)
	assert.Equal(t, events.EventGenerateCompleted, resp.Items[0].EventType)
	assert.Contains(t, string(resp.Items[0].Payload), `"count":2`)
}

func TestListEvents_ForEntity(t *testing.T) {
	db := setupTestDB(t)
	log := events.NewEventLog(db)

	_, err := log.Append(&events.RefreshStarted{
		BaseEvent: events.NewBaseEvent(events.EventRefreshStarted, events.EntityCampaign, "schedule"),
		Trigger:   "schedule",
	})
	require.NoError(t, err)
	_, err = log.Append(&events.GenerateCompleted{
		BaseEvent: events.NewBaseEvent(events.EventGenerateCompleted, events.EntityPipeline, "/data/strm"),
		Path:      "/data/strm",
	})
	require.NoError(t, err)
	_, err = log.Append(&events.RefreshCompleted{
		BaseEvent: events.NewBaseEvent(events.EventRefreshCompleted, events.EntityCampaign, "schedule"),
		Trigger:   "schedule",
	})
	require.NoError(t, err)

	srv := newTestServer(t, ServerDeps{EventLog: log})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events?entity_type=campaign&entity_id=schedule", nil)
	w := httptest.NewRecorder()
	srv.listEvents(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[listEventsResponse](t, w)
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Items, 2)
	// Entity trails read oldest first.
	assert.Equal(t, events.EventRefreshStarted, resp.Items[0].EventType)
	assert.Equal(t, events.EventRefreshCompleted, resp.Items[1].EventType)
}

func TestListEvents_IncompleteEntityFilter(t *testing.T) {
	db := setupTestDB(t)
	srv := newTestServer(t, ServerDeps{EventLog: events.NewEventLog(db)})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events?entity_type=campaign", nil)
	w := httptest.NewRecorder()
	srv.listEvents(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody[errorResponse](t, w)
	assert.Equal(t, "INVALID_FILTER", resp.Code)
}

func TestListEvents_NoEventLog(t *testing.T) {
	srv := newTestServer(t, ServerDeps{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	w := httptest.NewRecorder()
	srv.listEvents(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeBody[errorResponse](t, w)
	assert.Equal(t, "NO_EVENT_LOG", resp.Code)
}

func TestListEvents_InvalidPagination(t *testing.T) {
	db := setupTestDB(t)
	srv := newTestServer(t, ServerDeps{EventLog: events.NewEventLog(db)})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events?offset=-1", nil)
	w := httptest.NewRecorder()
	srv.listEvents(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody[errorResponse](t, w)
	assert.Equal(t, "INVALID_PAGINATION", resp.Code)
}

func TestRegisterRoutes(t *testing.T) {
	bus := events.NewBus(nil, testLogger())
	t.Cleanup(func() { bus.Close() })

	orch := &fakeOrchestrator{outcomes: []refresh.Outcome{{Success: true, Message: "full library refresh triggered"}}}
	srv := newTestServer(t, ServerDeps{Orchestrator: orch, Bus: bus})

	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	// Webhook routed through the mux exercises the {source} path value.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhook/generate", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusAccepted, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Wrong method is rejected by the Go 1.22 mux patterns.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/refresh", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
