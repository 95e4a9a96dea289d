package pubsub

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dropradar/config"
	"dropradar/internal/domain/constants"
	"dropradar/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocalHTTPPublisher_PublishTickEvent(t *testing.T) {
	var (
		received  PushMessage
		requestID string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	event := &service.TickEvent{
		RequestID: "req-1",
		TickID:    "tick-1",
		Preset:    config.PresetDevelop,
		IssuedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, publisher.PublishTickEvent(context.Background(), event))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, constants.EventTypeTick, received.EventType())
	assert.Equal(t, "tick-1", received.Message.MessageID)
	assert.Equal(t, "tick-1", received.Message.Attributes[AttrTickID])
	assert.Equal(t, localSubscription, received.Subscription)

	data, err := received.DecodeData()
	require.NoError(t, err)
	var decoded service.TickEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *event, decoded)
}

func TestLocalHTTPPublisher_PublishDropBatchEvent(t *testing.T) {
	var received PushMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	event := &service.DropBatchEvent{
		TickID:    "tick-2",
		UserID:    "user-1",
		Latitude:  45,
		Longitude: -73,
		DropIDs:   []string{"a", "b"},
		ExpiresAt: time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, publisher.PublishDropBatchEvent(context.Background(), event))

	assert.Equal(t, constants.EventTypeDropBatch, received.EventType())
	assert.Equal(t, "user-1", received.Message.Attributes[AttrUserID])
	assert.NotEmpty(t, received.Message.MessageID)

	data, err := received.DecodeData()
	require.NoError(t, err)
	var decoded service.DropBatchEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, event.DropIDs, decoded.DropIDs)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())

	err := publisher.PublishTickEvent(context.Background(), &service.TickEvent{TickID: "tick-3"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestNewEventPublisher(t *testing.T) {
	tests := []struct {
		name        string
		pubsub      *config.PubSubConfig
		expectNoop  bool
		expectError string
	}{
		{name: "not configured", pubsub: nil, expectNoop: true},
		{name: "none provider", pubsub: &config.PubSubConfig{Provider: constants.PubSubProviderNone}, expectNoop: true},
		{name: "local without endpoint", pubsub: &config.PubSubConfig{Provider: constants.PubSubProviderLocal}, expectError: "local endpoint is required"},
		{name: "local", pubsub: &config.PubSubConfig{Provider: constants.PubSubProviderLocal, LocalEndpoint: "http://localhost:8081/push"}},
		{name: "google without project", pubsub: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle}, expectError: "project ID is required"},
		{name: "google without topic", pubsub: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle, ProjectID: "p"}, expectError: "topic ID is required"},
		{name: "unknown provider", pubsub: &config.PubSubConfig{Provider: "kafka"}, expectError: "unknown pubsub provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := fxtest.NewLifecycle(t)

			publisher, err := NewEventPublisher(PublisherParams{
				Lc:     lc,
				Ctx:    context.Background(),
				Config: &config.Config{PubSub: tt.pubsub},
				Logger: newDiscardLogger(),
			})

			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)

				return
			}
			require.NoError(t, err)

			_, isNoop := publisher.(*noopPublisher)
			assert.Equal(t, tt.expectNoop, isNoop)

			lc.RequireStart().RequireStop()
		})
	}
}

func TestNoopPublisher(t *testing.T) {
	publisher := &noopPublisher{logger: newDiscardLogger()}

	assert.NoError(t, publisher.PublishTickEvent(context.Background(), &service.TickEvent{TickID: "t"}))
	assert.NoError(t, publisher.PublishDropBatchEvent(context.Background(), &service.DropBatchEvent{TickID: "t"}))
	assert.NoError(t, publisher.Close())
}
