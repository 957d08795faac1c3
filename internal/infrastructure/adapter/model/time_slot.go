package model

import (
	"time"
)

// TimeSlot represents the database model for slot definitions. Start and
// end are stored as minutes-of-day; the repository materializes them onto
// a concrete date when serving the catalog.
type TimeSlot struct {
	ID           string    `gorm:"primaryKey;size:64"`
	StartMinutes int       `gorm:"not null"` // minutes after midnight
	EndMinutes   int       `gorm:"not null"` // minutes after midnight, exclusive
	Restriction  string    `gorm:"not null;size:32"`
	Capacity     int       `gorm:"not null"`
	Active       bool      `gorm:"not null;default:true;index"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for TimeSlot
func (TimeSlot) TableName() string {
	return "time_slots"
}
