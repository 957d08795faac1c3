package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/entity"
)

// SlotRepository defines the slot-catalog collaborator consumed by the core
type SlotRepository interface {
	// ActiveSlotsFor returns the slot definitions in effect on the given
	// day, materialized onto that day's date and sorted ascending by start
	// time. The returned slice is owned by the caller.
	//
	// Possible errors:
	// - ErrNoSlotsConfigured: if no active slot definitions exist
	// - ErrDatabaseConnection: if the lookup fails
	ActiveSlotsFor(ctx context.Context, day time.Time) ([]entity.TimeSlot, error)
}
