package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/scanarr/internal/config"
)

func TestNtfy_Send(t *testing.T) {
	var gotPath, gotTitle, gotTags, gotPriority, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotTitle = r.Header.Get("Title")
		gotTags = r.Header.Get("Tags")
		gotPriority = r.Header.Get("Priority")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := newNtfy(srv.URL, "scanarr", "")
	err := n.Send(context.Background(), Message{
		Title:    "Library refresh finished",
		Body:     "2 succeeded, 0 failed",
		Tags:     []string{"scanarr", "refresh"},
		Priority: "high",
	})
	require.NoError(t, err)

	assert.Equal(t, "/scanarr", gotPath)
	assert.Equal(t, "Library refresh finished", gotTitle)
	assert.Equal(t, "scanarr,refresh", gotTags)
	assert.Equal(t, "high", gotPriority)
	assert.Equal(t, "2 succeeded, 0 failed", gotBody)
}

func TestNtfy_ConfigPriorityUsedWhenMessageHasNone(t *testing.T) {
	var gotPriority string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPriority = r.Header.Get("Priority")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := newNtfy(srv.URL, "scanarr", "low")
	err := n.Send(context.Background(), Message{Body: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "low", gotPriority)
}

func TestNtfy_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	n := newNtfy(srv.URL, "scanarr", "")
	err := n.Send(context.Background(), Message{Body: "hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ntfy returned 429")
	assert.Contains(t, err.Error(), "topic quota exceeded")
}

func TestTelegram_Send(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tg := newTelegram("abc123", "99887")
	tg.apiBase = srv.URL

	err := tg.Send(context.Background(), Message{Title: "Library refresh finished", Body: "1 succeeded, 1 failed"})
	require.NoError(t, err)

	assert.Equal(t, "/botabc123/sendMessage", gotPath)
	assert.Equal(t, "99887", gotPayload["chat_id"])
	assert.Equal(t, "Library refresh finished\n\n1 succeeded, 1 failed", gotPayload["text"])
	assert.Equal(t, false, gotPayload["disable_notification"])
}

func TestTelegram_LowPrioritySendsSilently(t *testing.T) {
	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tg := newTelegram("abc123", "99887")
	tg.apiBase = srv.URL

	err := tg.Send(context.Background(), Message{Body: "hello", Priority: "low"})
	require.NoError(t, err)
	assert.Equal(t, true, gotPayload["disable_notification"])
}

func TestTelegram_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false,"description":"chat not found"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	tg := newTelegram("abc123", "0")
	tg.apiBase = srv.URL

	err := tg.Send(context.Background(), Message{Body: "hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram returned 400")
	assert.Contains(t, err.Error(), "chat not found")
}

func TestNew_NoopWhenUnconfigured(t *testing.T) {
	n := New(config.NotifyConfig{})
	assert.NoError(t, n.Send(context.Background(), Message{Body: "hello"}))
	_, isNoop := n.(noop)
	assert.True(t, isNoop)
}

func TestNew_SelectsConfiguredSenders(t *testing.T) {
	n := New(config.NotifyConfig{NtfyServer: "https://ntfy.sh", NtfyTopic: "scanarr"})
	_, isNtfy := n.(*ntfy)
	assert.True(t, isNtfy)

	n = New(config.NotifyConfig{
		NtfyServer:     "https://ntfy.sh",
		NtfyTopic:      "scanarr",
		TelegramToken:  "abc",
		TelegramChatID: "123",
	})
	senders, isMulti := n.(multi)
	require.True(t, isMulti)
	assert.Len(t, senders, 2)
}

func TestNew_SkipsHalfConfiguredTelegram(t *testing.T) {
	n := New(config.NotifyConfig{TelegramToken: "abc"})
	_, isNoop := n.(noop)
	assert.True(t, isNoop)
}

type fakeSender struct {
	calls int
	err   error
}

func (f *fakeSender) Send(ctx context.Context, msg Message) error {
	f.calls++
	return f.err
}

func TestMulti_SendsToAllAndJoinsErrors(t *testing.T) {
	ok := &fakeSender{}
	bad := &fakeSender{err: errors.New("boom")}

	m := multi{bad, ok}
	err := m.Send(context.Background(), Message{Body: "hello"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, 1, ok.calls)
	assert.Equal(t, 1, bad.calls)
}
