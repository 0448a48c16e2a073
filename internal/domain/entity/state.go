package entity

import (
	"time"

	"gorm.io/gorm"
)

// StateInfo is a registration-state reference row (code -> display name),
// kept in PostgreSQL alongside the live Mongo records.
type StateInfo struct {
	ID        uint
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
