package repository

import (
	"context"
	"errors"
	"time"

	"rentalhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReservationRepository is the ledger of stock commitments. Callers are
// expected to have validated availability under the per-product guard before
// writing; every write re-validates defensively inside its own transaction so
// a guard-discipline bug surfaces as ErrInsufficientStock instead of silent
// overbooking.
type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// CreateWithItem inserts a board item together with its held reservation in
// one transaction. Nothing is written if the reservation would violate the
// stock invariant.
func (r *ReservationRepository) CreateWithItem(ctx context.Context, item *model.BoardItem, reservation *model.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		free, err := freeUnits(tx, reservation.ProductID, reservation.ReservedFrom, reservation.ReservedUntil, nil)
		if err != nil {
			return err
		}
		if reservation.Quantity > free {
			return ErrInsufficientStock
		}

		if err := tx.Create(item).Error; err != nil {
			return err
		}

		reservation.BoardItemID = item.ID
		reservation.Status = model.ReservationHeld
		return tx.Create(reservation).Error
	})
}

// UpdateQuantity atomically re-checks availability excluding the reservation's
// own footprint, then updates the reservation and its owning item. On
// ErrInsufficientStock neither row is touched.
func (r *ReservationRepository) UpdateQuantity(ctx context.Context, reservationID uuid.UUID, newQuantity int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reservation model.Reservation
		err := tx.First(&reservation, "id = ? AND status = ?", reservationID, model.ReservationHeld).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}

		free, err := freeUnits(tx, reservation.ProductID, reservation.ReservedFrom, reservation.ReservedUntil, &reservation.ID)
		if err != nil {
			return err
		}
		if newQuantity > free {
			return ErrInsufficientStock
		}

		if err := tx.Model(&model.Reservation{}).
			Where("id = ?", reservation.ID).
			Update("quantity", newQuantity).Error; err != nil {
			return err
		}

		return tx.Model(&model.BoardItem{}).
			Where("id = ?", reservation.BoardItemID).
			Update("quantity", newQuantity).Error
	})
}

// Release transitions a reservation from held to released. Releasing an
// already-released reservation is a no-op.
func (r *ReservationRepository) Release(ctx context.Context, reservationID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reservation model.Reservation
		err := tx.First(&reservation, "id = ?", reservationID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}

		return tx.Model(&model.Reservation{}).
			Where("id = ? AND status = ?", reservationID, model.ReservationHeld).
			Update("status", model.ReservationReleased).Error
	})
}

// ReleaseByItem releases the item's held reservation and deletes the item in
// one transaction, so no state exists where one happened without the other.
func (r *ReservationRepository) ReleaseByItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Reservation{}).
			Where("board_item_id = ? AND status = ?", itemID, model.ReservationHeld).
			Update("status", model.ReservationReleased).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.BoardItem{}, "id = ?", itemID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrItemNotFound
		}
		return nil
	})
}

// GetByItemID returns the item's held reservation
func (r *ReservationRepository) GetByItemID(ctx context.Context, itemID uuid.UUID) (*model.Reservation, error) {
	var reservation model.Reservation
	err := r.db.WithContext(ctx).
		First(&reservation, "board_item_id = ? AND status = ?", itemID, model.ReservationHeld).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

// ListActive returns the held reservations overlapping [from, until] in
// creation order.
func (r *ReservationRepository) ListActive(ctx context.Context, productID uint, from, until time.Time) ([]model.Reservation, error) {
	return heldOverlapping(r.db.WithContext(ctx), productID, from, until)
}

// freeUnits locks the product row and computes total stock minus peak usage in
// the window, optionally excluding one reservation. The row lock makes the
// re-check sound even across processes.
func freeUnits(tx *gorm.DB, productID uint, from, until time.Time, exclude *uuid.UUID) (int, error) {
	var product model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrProductNotFound
		}
		return 0, err
	}

	overlapping, err := heldOverlapping(tx, productID, from, until)
	if err != nil {
		return 0, err
	}

	return product.Quantity - model.PeakUsage(overlapping, from, until, exclude), nil
}

func heldOverlapping(tx *gorm.DB, productID uint, from, until time.Time) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := tx.
		Where("product_id = ? AND status = ? AND reserved_from <= ? AND reserved_until >= ?",
			productID, model.ReservationHeld, until, from).
		Order("created_at").
		Find(&reservations).Error
	return reservations, err
}
