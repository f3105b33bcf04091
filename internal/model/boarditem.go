package model

import (
	"time"

	"github.com/google/uuid"
)

// BoardItem is one product-and-quantity line within a board. Every live item
// has exactly one held Reservation covering the board's rental window.
type BoardItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uint      `gorm:"not null;index"`
	Quantity  int       `gorm:"not null;check:quantity > 0"`
	Notes     string
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Board   Board   `gorm:"foreignKey:BoardID"`
	Product Product `gorm:"foreignKey:ProductID"`
}
