package messaging

import "context"

// OccupancyChanged is the payload published after a successful admission
type OccupancyChanged struct {
	SlotID   string `json:"slotId"`
	Date     string `json:"date"`
	UserID   string `json:"userId"`
	NewCount int    `json:"newCount"`
	Capacity int    `json:"capacity"`
}

// Publisher emits occupancy change notifications. Delivery is at most once
// and fire-and-forget: a publish failure must never fail the check-in that
// triggered it.
type Publisher interface {
	// Publish sends the event keyed by its resource key so per-slot
	// ordering is preserved by the transport.
	Publish(ctx context.Context, key string, event OccupancyChanged) error

	// Close releases transport resources
	Close() error
}
