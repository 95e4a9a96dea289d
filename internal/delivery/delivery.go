// Package delivery holds the inbound adapters (HTTP API, Pub/Sub push worker, MQTT ingest).
package delivery

import "context"

// Delivery is a long-running inbound adapter started by the fx application.
type Delivery interface {
	Serve(ctx context.Context) error
}
