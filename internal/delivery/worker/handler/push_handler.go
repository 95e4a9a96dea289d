package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"dropradar/config"
	deliverycontext "dropradar/internal/delivery/context"
	"dropradar/internal/domain/constants"
	"dropradar/internal/domain/service"
	"dropradar/internal/infra/pubsub"
	"dropradar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// RequestVerifier authenticates a push request before it is processed
type RequestVerifier func(req *http.Request) error

// PushHandler turns Pub/Sub push messages into lifecycle ticks
type PushHandler struct {
	verify    RequestVerifier
	logger    *slog.Logger
	cfg       *config.Config
	scheduler usecase.SchedulerUsecase
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Scheduler usecase.SchedulerUsecase
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Google push requests carry an OIDC token everywhere except local development
	var verify RequestVerifier
	if params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop {
		verify = verifyPubSubToken
	}

	return NewPushHandlerWithVerifier(params, verify)
}

// NewPushHandlerWithVerifier creates a handler with an explicit verifier; nil disables verification
func NewPushHandlerWithVerifier(params PushHandlerParams, verify RequestVerifier) *PushHandler {
	return &PushHandler{
		verify:    verify,
		logger:    params.Logger,
		cfg:       params.Config,
		scheduler: params.Scheduler,
	}
}

// HandlePush handles incoming Pub/Sub push messages.
// 503 asks Pub/Sub to redeliver; every other outcome acknowledges the message.
func (h *PushHandler) HandlePush(c echo.Context) error {
	if !h.authorized(c) {
		return c.NoContent(http.StatusUnauthorized)
	}

	var pushMsg pubsub.PushMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := pushMsg.DecodeData()
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	switch pushMsg.EventType() {
	case constants.EventTypeTick:
		var event service.TickEvent
		if err := json.Unmarshal(data, &event); err != nil {
			h.logger.Error("[Worker] Failed to parse tick event", slog.Any("error", err))

			return c.NoContent(http.StatusBadRequest)
		}

		return h.handleTick(c, &pushMsg, &event)

	case constants.EventTypeDropBatch:
		// Batch announcements are for downstream consumers; the worker only acknowledges them.
		h.logger.Debug("[Worker] Drop batch event acknowledged",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.String("tick_id", pushMsg.Message.Attributes[pubsub.AttrTickID]),
		)

		return c.NoContent(http.StatusOK)

	default:
		h.logger.Warn("[Worker] Ignoring message with unknown event type",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.String("event_type", pushMsg.EventType()),
		)

		return c.NoContent(http.StatusOK)
	}
}

func (h *PushHandler) handleTick(c echo.Context, pushMsg *pubsub.PushMessage, event *service.TickEvent) error {
	ctx := c.Request().Context()

	requestID := extractRequestID(ctx, pushMsg, event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	gen := h.cfg.ResolveGeneration(event.Preset)

	reqLogger.Info("[Worker] Processing tick event",
		slog.String("tick_id", event.TickID),
		slog.String("preset", event.Preset),
	)

	result, err := h.scheduler.Tick(ctx, gen)
	if err != nil {
		retryable := result == nil || result.Persisted == 0
		reqLogger.Error("[Worker] Tick finished with errors",
			slog.String("tick_id", event.TickID),
			slog.Any("error", err),
			slog.Bool("retryable", retryable),
		)
		// Redelivery is only safe when nothing was persisted; otherwise a replay would double-seed.
		if retryable {
			return c.NoContent(http.StatusServiceUnavailable)
		}
	}

	return c.NoContent(http.StatusOK)
}

// HandleSweep runs an expiration sweep on demand (e.g. from Cloud Scheduler)
func (h *PushHandler) HandleSweep(c echo.Context) error {
	if !h.authorized(c) {
		return c.NoContent(http.StatusUnauthorized)
	}

	result, err := h.scheduler.Sweep(c.Request().Context())
	if err != nil {
		h.logger.Error("[Worker] Sweep failed", slog.Any("error", err))

		return c.NoContent(http.StatusServiceUnavailable)
	}

	return c.JSON(http.StatusOK, map[string]int64{
		"deleted":  result.Deleted,
		"retained": result.Retained,
	})
}

func (h *PushHandler) authorized(c echo.Context) bool {
	if h.verify == nil {
		return true
	}

	if err := h.verify(c.Request()); err != nil {
		h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

		return false
	}

	return true
}

// extractRequestID prefers message attributes, then the event, then the request context
func extractRequestID(ctx context.Context, pushMsg *pubsub.PushMessage, event *service.TickEvent) string {
	if requestID := pushMsg.Message.Attributes[pubsub.AttrRequestID]; requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	token, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found {
		return errors.New("invalid authorization header format")
	}

	// The audience is the URL of this endpoint
	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := idtoken.Validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
