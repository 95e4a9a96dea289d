// Package mqtt ingests device location reports published on an MQTT broker.
package mqtt

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"dropradar/config"
	"dropradar/internal/delivery"
	"dropradar/internal/delivery/api/validator"
	deliverycontext "dropradar/internal/delivery/context"
	"dropradar/internal/usecase"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	disconnectQuiesceMillis = 250
	handleTimeout           = 5 * time.Second
	locationSegment         = "location"
	usersSegment            = "users"
)

// locationPayload is the JSON body of a location report
type locationPayload struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

type subscriber struct {
	cfg       *config.MQTTConfig
	logger    *slog.Logger
	locations usecase.LocationUsecase
	validator *validator.CustomValidator
	client    pahomqtt.Client
}

// SubscriberParams holds dependencies for the MQTT subscriber
type SubscriberParams struct {
	fx.In

	Lc        fx.Lifecycle
	Cfg       *config.Config
	Logger    *slog.Logger
	Locations usecase.LocationUsecase
}

// NewSubscriber creates the location ingest delivery. It does nothing when MQTT is disabled.
func NewSubscriber(params SubscriberParams) delivery.Delivery {
	mqttCfg := params.Cfg.MQTT
	if mqttCfg == nil {
		mqttCfg = &config.MQTTConfig{}
	}

	sub := &subscriber{
		cfg:       mqttCfg,
		logger:    params.Logger.With(slog.String("component", "mqtt")),
		locations: params.Locations,
		validator: validator.New(),
	}

	params.Lc.Append(fx.Hook{
		OnStop: sub.stop,
	})

	return sub
}

// Serve connects to the broker and subscribes to every user's location topic.
// Messages are handled on paho's goroutines, so Serve returns once subscribed.
func (s *subscriber) Serve(_ context.Context) error {
	if !s.cfg.Enabled {
		s.logger.Info("MQTT location ingest disabled")

		return nil
	}

	clientID := s.cfg.ClientID
	if clientID == "" {
		clientID = "dropradar-" + uuid.NewString()[:8]
	}

	opts := pahomqtt.NewClientOptions().
		AddBroker(s.cfg.Broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetCleanSession(true).
		SetOnConnectHandler(func(client pahomqtt.Client) {
			// Resubscribe after every reconnect; clean sessions drop subscriptions.
			s.subscribe(client)
		}).
		SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
			s.logger.Warn("MQTT connection lost", slog.Any("error", err))
		})

	s.client = pahomqtt.NewClient(opts)
	s.logger.Info("Connecting to MQTT broker",
		slog.String("broker", s.cfg.Broker),
		slog.String("client_id", clientID),
	)

	if token := s.client.Connect(); token.Wait() && token.Error() != nil {
		return errors.Wrap(token.Error(), "mqtt connect")
	}

	return nil
}

func (s *subscriber) subscribe(client pahomqtt.Client) {
	filter := s.topicFilter()
	token := client.Subscribe(filter, s.cfg.QoS, func(_ pahomqtt.Client, msg pahomqtt.Message) {
		ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
		defer cancel()

		if err := s.handleLocation(ctx, msg.Topic(), msg.Payload()); err != nil {
			s.logger.Warn("Dropped location report",
				slog.String("topic", msg.Topic()),
				slog.Any("error", err),
			)
		}
	})
	if token.Wait() && token.Error() != nil {
		s.logger.Error("MQTT subscribe failed", slog.String("filter", filter), slog.Any("error", token.Error()))

		return
	}

	s.logger.Info("Subscribed to location reports", slog.String("filter", filter))
}

func (s *subscriber) topicFilter() string {
	return strings.Join([]string{s.cfg.TopicPrefix, usersSegment, "+", locationSegment}, "/")
}

// handleLocation parses {prefix}/users/{userId}/location and stores the reported position
func (s *subscriber) handleLocation(ctx context.Context, topic string, payload []byte) error {
	userID, err := s.parseUserID(topic)
	if err != nil {
		return err
	}

	var body locationPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return errors.Wrap(err, "invalid location payload")
	}
	if err := s.validator.Validate(&body); err != nil {
		return err
	}

	requestID := uuid.NewString()
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, s.logger.With(slog.String("request_id", requestID)))

	location, err := s.locations.ReportLocation(ctx, userID, &usecase.ReportLocationInput{
		Latitude:  *body.Latitude,
		Longitude: *body.Longitude,
	})
	if err != nil {
		return errors.Wrap(err, "report location")
	}

	s.logger.Debug("Location report stored",
		slog.String("user_id", location.UserID.String()),
		slog.String("request_id", requestID),
	)

	return nil
}

func (s *subscriber) parseUserID(topic string) (uuid.UUID, error) {
	rest, found := strings.CutPrefix(topic, s.cfg.TopicPrefix+"/")
	if !found {
		return uuid.Nil, errors.Errorf("unexpected topic %q", topic)
	}

	segments := strings.Split(rest, "/")
	if len(segments) != 3 || segments[0] != usersSegment || segments[2] != locationSegment {
		return uuid.Nil, errors.Errorf("unexpected topic %q", topic)
	}

	userID, err := uuid.Parse(segments[1])
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "invalid user id in topic %q", topic)
	}

	return userID, nil
}

func (s *subscriber) stop(_ context.Context) error {
	if s.client == nil || !s.client.IsConnected() {
		return nil
	}

	s.logger.Info("Disconnecting from MQTT broker")
	s.client.Disconnect(disconnectQuiesceMillis)

	return nil
}
