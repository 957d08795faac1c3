package repository

import (
	"context"
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/pool-access-controller/internal/domain/error"
	coreport "github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/core"
	"github.com/amirhossein-jamali/pool-access-controller/internal/infrastructure/adapter/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceRepository implements persistence.AttendanceRepository using GORM
type AttendanceRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAttendanceRepository creates a new AttendanceRepository instance
func NewAttendanceRepository(db *gorm.DB, logger coreport.Logger) *AttendanceRepository {
	return &AttendanceRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// OccupantsFor returns the IDs of users already admitted to the slot on the
// given date. The unique index on (slot, date, user) guarantees the result
// carries no duplicates.
func (r *AttendanceRepository) OccupantsFor(ctx context.Context, slotID, date string) ([]string, error) {
	var userIDs []string
	result := r.db.WithContext(ctx).
		Model(&model.AttendanceRecord{}).
		Where("slot_id = ? AND date = ?", slotID, date).
		Order("admitted_at ASC").
		Pluck("user_id", &userIDs)

	if result.Error != nil {
		r.logger.Error("Database error when loading occupants", map[string]any{
			"slot_id": slotID,
			"date":    date,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return userIDs, nil
}

// RecordAdmission durably records one admission. A duplicate-key violation
// maps to ErrAlreadyCheckedIn; the lock-protected admit path should have
// ruled that out already, so hitting it means a second process wrote the
// same admission.
func (r *AttendanceRepository) RecordAdmission(ctx context.Context, slotID, date, userID string, at time.Time) error {
	record := model.AttendanceRecord{
		ID:         uuid.NewString(),
		SlotID:     slotID,
		Date:       date,
		UserID:     userID,
		AdmittedAt: at,
		CreatedAt:  at,
	}

	result := r.db.WithContext(ctx).Create(&record)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Duplicate admission rejected by database", map[string]any{
				"slot_id": slotID,
				"date":    date,
				"user_id": userID,
			})
			return errs.ErrAlreadyCheckedIn
		}
		r.logger.Error("Failed to persist admission", map[string]any{
			"slot_id": slotID,
			"date":    date,
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return errs.NewPersistenceError(slotID, date, userID, result.Error)
	}

	r.logger.Debug("Admission persisted", map[string]any{
		"slot_id": slotID,
		"date":    date,
		"user_id": userID,
	})
	return nil
}
