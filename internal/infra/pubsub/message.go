package pubsub

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"dropradar/internal/domain/constants"
	"dropradar/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Attribute keys set on every published message
const (
	AttrEventType = "event_type"
	AttrTickID    = "tick_id"
	AttrRequestID = "request_id"
	AttrUserID    = "user_id"
)

// PushMessage represents the structure of a Pub/Sub push message
// This mimics the format Google Pub/Sub uses when pushing to HTTP endpoints
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// EventType returns the event_type attribute of the pushed message
func (m *PushMessage) EventType() string {
	return m.Message.Attributes[AttrEventType]
}

// DecodeData returns the base64-decoded message payload
func (m *PushMessage) DecodeData() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(m.Message.Data)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return data, nil
}

// outgoing is an encoded event shared by every publisher implementation
type outgoing struct {
	id         string
	data       []byte
	attributes map[string]string
}

func (o *outgoing) eventType() string {
	return o.attributes[AttrEventType]
}

func (o *outgoing) requestID() string {
	return o.attributes[AttrRequestID]
}

func encodeTickEvent(event *service.TickEvent) (*outgoing, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	attributes := map[string]string{
		AttrEventType: constants.EventTypeTick,
		AttrTickID:    event.TickID,
	}
	if event.RequestID != "" {
		attributes[AttrRequestID] = event.RequestID
	}

	return &outgoing{id: event.TickID, data: data, attributes: attributes}, nil
}

func encodeDropBatchEvent(event *service.DropBatchEvent) (*outgoing, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &outgoing{
		id:   uuid.NewString(),
		data: data,
		attributes: map[string]string{
			AttrEventType: constants.EventTypeDropBatch,
			AttrTickID:    event.TickID,
			AttrUserID:    event.UserID,
		},
	}, nil
}

// toPushMessage wraps an outgoing event the way a push subscription delivers it
func toPushMessage(o *outgoing, subscription string, publishedAt time.Time) *PushMessage {
	msg := &PushMessage{Subscription: subscription}
	msg.Message.Data = base64.StdEncoding.EncodeToString(o.data)
	msg.Message.Attributes = o.attributes
	msg.Message.MessageID = o.id
	msg.Message.PublishTime = publishedAt.UTC().Format(time.RFC3339)

	return msg
}
