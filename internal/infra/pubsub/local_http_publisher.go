package pubsub

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"dropradar/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	localSubscription = "projects/local/subscriptions/drops-sub"

	// The local worker runs the whole tick before answering the push
	localPushTimeout = 3 * time.Minute
)

// localHTTPPublisher implements EventPublisher by sending HTTP POST requests
// to a local endpoint, simulating Pub/Sub push behavior for development
type localHTTPPublisher struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewLocalHTTPPublisher creates a new local HTTP publisher for development
func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return &localHTTPPublisher{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: localPushTimeout,
		},
		logger: logger,
	}
}

// PublishTickEvent pushes a tick trigger to the local worker
func (p *localHTTPPublisher) PublishTickEvent(ctx context.Context, event *service.TickEvent) error {
	msg, err := encodeTickEvent(event)
	if err != nil {
		return err
	}

	return p.push(ctx, msg)
}

// PublishDropBatchEvent pushes a persisted drop batch to the local worker
func (p *localHTTPPublisher) PublishDropBatchEvent(ctx context.Context, event *service.DropBatchEvent) error {
	msg, err := encodeDropBatchEvent(event)
	if err != nil {
		return err
	}

	return p.push(ctx, msg)
}

func (p *localHTTPPublisher) push(ctx context.Context, msg *outgoing) error {
	body, err := json.Marshal(toPushMessage(msg, localSubscription, time.Now()))
	if err != nil {
		return errors.WithStack(err)
	}

	p.logger.Debug("[LocalPubSub] Publishing event",
		slog.String("endpoint", p.endpoint),
		slog.String("event_type", msg.eventType()),
		slog.String("message_id", msg.id),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Add X-Request-Id header for tracing
	if requestID := msg.requestID(); requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("worker returned non-success status: %d", resp.StatusCode)
	}

	p.logger.Info("[LocalPubSub] Event published successfully",
		slog.String("event_type", msg.eventType()),
		slog.String("message_id", msg.id),
	)

	return nil
}

// Close releases resources (no-op for HTTP client)
func (p *localHTTPPublisher) Close() error {
	return nil
}
