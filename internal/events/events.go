package events

import (
	"context"
	"time"
)

// RoutingKeyCaptainRegistered is the topic routing key for new captains.
const RoutingKeyCaptainRegistered = "captain.registered"

// CaptainRegistered is published after a captain account is created.
type CaptainRegistered struct {
	CaptainID    string    `json:"captain_id"`
	Email        string    `json:"email"`
	VehicleType  string    `json:"vehicle_type"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Publisher delivers account events to other services.
type Publisher interface {
	PublishCaptainRegistered(ctx context.Context, event CaptainRegistered) error
}

// NopPublisher discards all events. It is used when no broker is configured.
type NopPublisher struct{}

// PublishCaptainRegistered implements Publisher.
func (NopPublisher) PublishCaptainRegistered(context.Context, CaptainRegistered) error {
	return nil
}
