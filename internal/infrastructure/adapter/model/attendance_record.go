package model

import (
	"time"
)

// AttendanceRecord represents one admission of one user to one slot on one
// date. The composite unique index is the database's own line of defense
// against duplicate admissions; the lock-protected admit path should never
// trip it.
type AttendanceRecord struct {
	ID         string    `gorm:"primaryKey;size:36"` // uuid
	SlotID     string    `gorm:"not null;size:64;uniqueIndex:idx_slot_date_user;index:idx_slot_date"`
	Date       string    `gorm:"not null;size:10;uniqueIndex:idx_slot_date_user;index:idx_slot_date"` // YYYY-MM-DD
	UserID     string    `gorm:"not null;size:64;uniqueIndex:idx_slot_date_user"`
	AdmittedAt time.Time `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for AttendanceRecord
func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
