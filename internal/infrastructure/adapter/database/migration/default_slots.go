package migration

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/pool-access-controller/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/core"
	"github.com/amirhossein-jamali/pool-access-controller/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// Default daily slot catalog, seeded once on an empty database. Start and
// end are minutes after midnight.
var defaultSlots = []model.TimeSlot{
	{ID: "morning-lap", StartMinutes: 7 * 60, EndMinutes: 9 * 60, Restriction: string(entity.RestrictionOpen), Capacity: 30},
	{ID: "faculty-grad", StartMinutes: 9 * 60, EndMinutes: 11 * 60, Restriction: string(entity.RestrictionFacultyAndGrad), Capacity: 20},
	{ID: "women-only", StartMinutes: 11 * 60, EndMinutes: 13 * 60, Restriction: string(entity.RestrictionFemaleOnly), Capacity: 25},
	{ID: "men-only", StartMinutes: 14 * 60, EndMinutes: 16 * 60, Restriction: string(entity.RestrictionMaleOnly), Capacity: 25},
	{ID: "open-evening", StartMinutes: 16 * 60, EndMinutes: 20 * 60, Restriction: string(entity.RestrictionOpen), Capacity: 40},
}

// SeedDefaultSlots creates the default slot catalog when no slots exist yet.
// Already-seeded databases are left untouched.
func SeedDefaultSlots(ctx context.Context, db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) error {
	var existing model.TimeSlot
	err := db.WithContext(ctx).First(&existing).Error
	if err == nil {
		logger.Debug("Slot catalog already seeded, skipping", nil)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := timeProvider.Now()
	slots := make([]model.TimeSlot, len(defaultSlots))
	for i, slot := range defaultSlots {
		slot.Active = true
		slot.CreatedAt = now
		slot.UpdatedAt = now
		slots[i] = slot
	}

	if err := db.WithContext(ctx).Create(&slots).Error; err != nil {
		logger.Error("Failed to seed default slot catalog", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	logger.Info("Seeded default slot catalog", map[string]any{
		"slots": len(slots),
	})
	return nil
}
