package service

import (
	"context"
	"time"

	"rentalhub/internal/model"

	"github.com/google/uuid"
)

// ProductCatalog is the read-only stock source. The engine never mutates
// catalog rows.
type ProductCatalog interface {
	GetByID(ctx context.Context, id uint) (*model.Product, error)
}

// ReservationLedger is the durable record of stock commitments.
type ReservationLedger interface {
	CreateWithItem(ctx context.Context, item *model.BoardItem, reservation *model.Reservation) error
	UpdateQuantity(ctx context.Context, reservationID uuid.UUID, newQuantity int) error
	Release(ctx context.Context, reservationID uuid.UUID) error
	ReleaseByItem(ctx context.Context, itemID uuid.UUID) error
	GetByItemID(ctx context.Context, itemID uuid.UUID) (*model.Reservation, error)
	ListActive(ctx context.Context, productID uint, from, until time.Time) ([]model.Reservation, error)
}

type AvailabilityResult struct {
	Available bool
	FreeUnits int
}

// AvailabilityService answers "is quantity Q free for product P during
// [from, until]?". It is read-only; checks done outside the product guard are
// best-effort and may be stale by the time a caller acts on them.
type AvailabilityService struct {
	catalog ProductCatalog
	ledger  ReservationLedger
}

func NewAvailabilityService(catalog ProductCatalog, ledger ReservationLedger) *AvailabilityService {
	return &AvailabilityService{catalog: catalog, ledger: ledger}
}

func (s *AvailabilityService) Check(ctx context.Context, productID uint, quantity int, from, until time.Time) (*AvailabilityResult, error) {
	return s.check(ctx, productID, quantity, from, until, nil)
}

// check computes free units as total stock minus peak held usage in the
// window. exclude recomputes availability as if that reservation did not
// exist, for quantity updates of the same reservation.
func (s *AvailabilityService) check(ctx context.Context, productID uint, quantity int, from, until time.Time, exclude *uuid.UUID) (*AvailabilityResult, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if from.After(until) {
		return nil, ErrInvalidDateRange
	}

	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	reservations, err := s.ledger.ListActive(ctx, productID, from, until)
	if err != nil {
		return nil, err
	}

	free := product.Quantity - model.PeakUsage(reservations, from, until, exclude)
	return &AvailabilityResult{
		Available: quantity <= free,
		FreeUnits: free,
	}, nil
}
