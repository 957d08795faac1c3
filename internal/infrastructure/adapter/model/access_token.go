package model

import (
	"time"
)

// AccessToken represents the database model for pool access tokens
type AccessToken struct {
	ID        uint64     `gorm:"primaryKey;autoIncrement"`
	Value     string     `gorm:"uniqueIndex;not null;size:255"`
	IssuedTo  string     `gorm:"not null;index;size:64"`
	Active    bool       `gorm:"not null;default:true;index"`
	IssuedAt  time.Time  `gorm:"not null"`
	ExpiresAt *time.Time `gorm:"index"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

// TableName specifies the table name for AccessToken
func (AccessToken) TableName() string {
	return "access_tokens"
}
