package persistence

import (
	"context"
	"time"
)

// AttendanceRepository defines the attendance persistence collaborator.
// The coordinator only calls it while holding the resource lock for the
// slot+date in question.
type AttendanceRepository interface {
	// OccupantsFor returns the IDs of users already admitted to the slot
	// on the given date. The result set contains no duplicates.
	//
	// Possible errors:
	// - ErrDatabaseConnection: if the query fails
	OccupantsFor(ctx context.Context, slotID, date string) ([]string, error)

	// RecordAdmission durably records that the user was admitted to the
	// slot on the given date at the given time.
	//
	// Possible errors:
	// - ErrPersistenceFailure: if the write fails
	RecordAdmission(ctx context.Context, slotID, date, userID string, at time.Time) error
}
