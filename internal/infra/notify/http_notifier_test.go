package notify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"geosynth/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestHTTPNotifier_PublishMatch(t *testing.T) {
	var received PushMessage
	var header http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		header = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewHTTPNotifier(server.URL, testLogger())

	event := &service.MatchEvent{
		MatchID:        "7a1e9f00-0000-4000-8000-000000000001",
		MessageID:      "7a1e9f00-0000-4000-8000-000000000002",
		UserID:         "7a1e9f00-0000-4000-8000-000000000003",
		DistanceMeters: 412.5,
		RequestID:      "req-42",
	}
	require.NoError(t, notifier.PublishMatch(context.Background(), event))

	assert.Equal(t, event.MatchID, received.Message.MessageID)
	assert.Equal(t, event.MatchID, received.Message.Attributes["match_id"])
	assert.Equal(t, event.UserID, received.Message.Attributes["user_id"])
	assert.Equal(t, "req-42", received.Message.Attributes["request_id"])
	assert.Equal(t, "req-42", header.Get("X-Request-Id"))
	assert.Equal(t, "application/json", header.Get("Content-Type"))

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var decoded service.MatchEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *event, decoded)
}

func TestHTTPNotifier_PublishMatchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := NewHTTPNotifier(server.URL, testLogger())

	err := notifier.PublishMatch(context.Background(), &service.MatchEvent{
		MatchID: "7a1e9f00-0000-4000-8000-000000000001",
		UserID:  "7a1e9f00-0000-4000-8000-000000000003",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-success status")
}

func TestHTTPNotifier_PublishMatchWithoutRequestID(t *testing.T) {
	var received PushMessage

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	notifier := NewHTTPNotifier(server.URL, testLogger())

	require.NoError(t, notifier.PublishMatch(context.Background(), &service.MatchEvent{
		MatchID: "7a1e9f00-0000-4000-8000-000000000001",
		UserID:  "7a1e9f00-0000-4000-8000-000000000003",
	}))

	_, hasRequestID := received.Message.Attributes["request_id"]
	assert.False(t, hasRequestID)
}

func TestNoopNotifier(t *testing.T) {
	notifier := &noopNotifier{logger: testLogger()}

	assert.NoError(t, notifier.PublishMatch(context.Background(), &service.MatchEvent{MatchID: "m"}))
	assert.NoError(t, notifier.Close())
}
