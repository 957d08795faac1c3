package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/entity"
	errs "github.com/amirhossein-jamali/pool-access-controller/internal/domain/error"
	coreport "github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/core"
	"github.com/amirhossein-jamali/pool-access-controller/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/pool-access-controller/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// SlotRepository implements persistence.SlotRepository using GORM. Slot
// definitions are stored as minutes-of-day and materialized onto the
// requested day here, so the domain only ever sees concrete times.
type SlotRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewSlotRepository creates a new SlotRepository instance
func NewSlotRepository(db *gorm.DB, logger coreport.Logger) *SlotRepository {
	return &SlotRepository{
		db:     db,
		logger: logger,
	}
}

// ActiveSlotsFor returns the active slot catalog materialized onto the given
// day, sorted ascending by start time.
func (r *SlotRepository) ActiveSlotsFor(ctx context.Context, day time.Time) ([]entity.TimeSlot, error) {
	// The catalog read is idempotent, so transient failures are retried
	// before the check-in gives up.
	var slotModels []model.TimeSlot
	err := database.RetryOnTransientError(ctx, database.DefaultRetryConfig(), func() error {
		slotModels = slotModels[:0]
		return r.db.WithContext(ctx).
			Where("active = ?", true).
			Order("start_minutes ASC").
			Find(&slotModels).Error
	}, r.logger)

	if err != nil {
		r.logger.Error("Database error when loading slot catalog", map[string]any{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	if len(slotModels) == 0 {
		r.logger.Warn("No active slot definitions found", nil)
		return nil, errs.ErrNoSlotsConfigured
	}

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	slots := make([]entity.TimeSlot, 0, len(slotModels))
	for _, m := range slotModels {
		slot, err := entity.NewTimeSlot(
			m.ID,
			midnight.Add(time.Duration(m.StartMinutes)*time.Minute),
			midnight.Add(time.Duration(m.EndMinutes)*time.Minute),
			entity.Restriction(m.Restriction),
			m.Capacity,
		)
		if err != nil {
			// A malformed row never reaches the domain; skip it loudly.
			r.logger.Error("Skipping malformed slot definition", map[string]any{
				"slot_id": m.ID,
				"error":   err.Error(),
			})
			continue
		}
		slots = append(slots, slot)
	}

	if len(slots) == 0 {
		return nil, errs.ErrNoSlotsConfigured
	}

	return slots, nil
}
