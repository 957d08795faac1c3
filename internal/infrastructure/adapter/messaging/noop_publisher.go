package messaging

import (
	"context"

	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/messaging"
)

// NoopPublisher discards occupancy events. Used when notifications are
// disabled in configuration.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that does nothing
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

// Publish discards the event
func (p *NoopPublisher) Publish(_ context.Context, _ string, _ messaging.OccupancyChanged) error {
	return nil
}

// Close does nothing
func (p *NoopPublisher) Close() error {
	return nil
}
