package model

import (
	"time"

	"github.com/google/uuid"
)

type Board struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null"`
	EventDate   time.Time `gorm:"type:date;not null"`
	EventType   string
	RentalStart time.Time `gorm:"type:date;not null"`
	RentalEnd   time.Time `gorm:"type:date;not null"`
	Budget      *float64
	Notes       string
	Status      string `gorm:"not null;default:'draft';check:status IN ('draft', 'active', 'archived')"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Owner User        `gorm:"foreignKey:OwnerID"`
	Items []BoardItem `gorm:"foreignKey:BoardID"`
}

// Board lifecycle statuses
const (
	BoardStatusDraft    = "draft"
	BoardStatusActive   = "active"
	BoardStatusArchived = "archived"
)

// ValidBoardStatus reports whether s is one of the lifecycle statuses.
func ValidBoardStatus(s string) bool {
	return s == BoardStatusDraft || s == BoardStatusActive || s == BoardStatusArchived
}
