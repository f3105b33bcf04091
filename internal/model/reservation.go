package model

import (
	"time"

	"github.com/google/uuid"
)

// Reservation commits quantity of a product to an inclusive date range.
// Quantity and range always mirror the owning BoardItem. A released
// reservation is never resurrected; a new item gets a new reservation.
type Reservation struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ProductID     uint      `gorm:"not null;index:idx_reservations_product_status"`
	BoardItemID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ReservedFrom  time.Time `gorm:"type:date;not null"`
	ReservedUntil time.Time `gorm:"type:date;not null"`
	Quantity      int       `gorm:"not null;check:quantity > 0"`
	Status        string    `gorm:"not null;default:'held';index:idx_reservations_product_status;check:status IN ('held', 'released')"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`

	Product   Product   `gorm:"foreignKey:ProductID"`
	BoardItem BoardItem `gorm:"foreignKey:BoardItemID"`
}

// Reservation states
const (
	ReservationHeld     = "held"     // counts against available stock
	ReservationReleased = "released" // item deleted, stock returned
)
