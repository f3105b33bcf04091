package service

import (
	"context"
	"fmt"
	"time"

	"rentalhub/internal/model"
	"rentalhub/internal/repository"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

type BoardStore interface {
	Create(ctx context.Context, board *model.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	GetOwned(ctx context.Context, ownerID uuid.UUID, status string) ([]model.Board, error)
	Update(ctx context.Context, board *model.Board) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BoardItemStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.BoardItem, error)
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.BoardItem, error)
}

// BoardService orchestrates board and item lifecycle. Every operation that
// reads then writes a product's reservation set runs under that product's
// lock; the ledger re-validates defensively on top of that.
type BoardService struct {
	boards BoardStore
	items  BoardItemStore
	ledger ReservationLedger
	avail  *AvailabilityService
	locks  *ProductLocks
}

func NewBoardService(boards BoardStore, items BoardItemStore, ledger ReservationLedger, avail *AvailabilityService, locks *ProductLocks) *BoardService {
	return &BoardService{
		boards: boards,
		items:  items,
		ledger: ledger,
		avail:  avail,
		locks:  locks,
	}
}

type CreateBoardParams struct {
	Name        string
	EventDate   time.Time
	EventType   string
	RentalStart time.Time
	RentalEnd   time.Time
	Budget      *float64
	Notes       string
}

type UpdateBoardParams struct {
	Name        *string
	EventDate   *time.Time
	EventType   *string
	RentalStart *time.Time
	RentalEnd   *time.Time
	Budget      *float64
	Notes       *string
	Status      *string
}

func (s *BoardService) CreateBoard(ctx context.Context, ownerID uuid.UUID, p CreateBoardParams) (*model.Board, error) {
	if p.RentalStart.After(p.RentalEnd) {
		return nil, ErrInvalidDateRange
	}
	if p.Budget != nil && *p.Budget < 0 {
		return nil, ErrInvalidQuantity
	}

	board := &model.Board{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        p.Name,
		EventDate:   p.EventDate,
		EventType:   p.EventType,
		RentalStart: p.RentalStart,
		RentalEnd:   p.RentalEnd,
		Budget:      p.Budget,
		Notes:       p.Notes,
		Status:      model.BoardStatusDraft,
	}

	if err := s.boards.Create(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *BoardService) GetBoard(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, repository.ErrBoardNotFound
	}
	return board, nil
}

func (s *BoardService) ListBoards(ctx context.Context, ownerID uuid.UUID, status string) ([]model.Board, error) {
	if status != "" && !model.ValidBoardStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.boards.GetOwned(ctx, ownerID, status)
}

// UpdateBoard patches name, dates, budget, notes and status. The rental window
// is frozen once the board has items: every item's reservation mirrors the
// window, and re-reserving them all is not supported.
func (s *BoardService) UpdateBoard(ctx context.Context, board *model.Board, p UpdateBoardParams) (*model.Board, error) {
	newStart := board.RentalStart
	newEnd := board.RentalEnd
	if p.RentalStart != nil {
		newStart = *p.RentalStart
	}
	if p.RentalEnd != nil {
		newEnd = *p.RentalEnd
	}

	windowChanged := !newStart.Equal(board.RentalStart) || !newEnd.Equal(board.RentalEnd)
	if windowChanged && len(board.Items) > 0 {
		return nil, ErrWindowLocked
	}
	if newStart.After(newEnd) {
		return nil, ErrInvalidDateRange
	}
	if p.Status != nil && !model.ValidBoardStatus(*p.Status) {
		return nil, ErrInvalidStatus
	}
	if p.Budget != nil && *p.Budget < 0 {
		return nil, ErrInvalidQuantity
	}

	board.RentalStart = newStart
	board.RentalEnd = newEnd
	if p.Name != nil {
		board.Name = *p.Name
	}
	if p.EventDate != nil {
		board.EventDate = *p.EventDate
	}
	if p.EventType != nil {
		board.EventType = *p.EventType
	}
	if p.Budget != nil {
		board.Budget = p.Budget
	}
	if p.Notes != nil {
		board.Notes = *p.Notes
	}
	if p.Status != nil {
		board.Status = *p.Status
	}

	if err := s.boards.Update(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// DeleteBoard releases every item's reservation, then deletes the board.
// Each item is released atomically with its own deletion, so a failure midway
// leaves every remaining item with a matching held reservation. The error
// reports how many items remain.
func (s *BoardService) DeleteBoard(ctx context.Context, board *model.Board) error {
	items, err := s.items.ListByBoard(ctx, board.ID)
	if err != nil {
		return err
	}

	var errs *multierror.Error
	remaining := 0
	for _, item := range items {
		if err := s.releaseItem(ctx, item.ProductID, item.ID); err != nil {
			remaining++
			errs = multierror.Append(errs, fmt.Errorf("item %s: %w", item.ID, err))
		}
	}
	if remaining > 0 {
		return &CascadeError{Remaining: remaining, Err: errs.ErrorOrNil()}
	}

	return s.boards.Delete(ctx, board.ID)
}

// AddItem reserves quantity of the product for the board's rental window and
// persists the item with its reservation as one unit. Insufficient stock
// leaves no partial state.
func (s *BoardService) AddItem(ctx context.Context, board *model.Board, productID uint, quantity int, notes string) (*model.BoardItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	s.locks.Lock(productID)
	defer s.locks.Unlock(productID)

	result, err := s.avail.check(ctx, productID, quantity, board.RentalStart, board.RentalEnd, nil)
	if err != nil {
		return nil, err
	}
	if !result.Available {
		return nil, repository.ErrInsufficientStock
	}

	item := &model.BoardItem{
		ID:        uuid.New(),
		BoardID:   board.ID,
		ProductID: productID,
		Quantity:  quantity,
		Notes:     notes,
	}
	reservation := &model.Reservation{
		ID:            uuid.New(),
		ProductID:     productID,
		BoardItemID:   item.ID,
		ReservedFrom:  board.RentalStart,
		ReservedUntil: board.RentalEnd,
		Quantity:      quantity,
		Status:        model.ReservationHeld,
	}

	if err := s.ledger.CreateWithItem(ctx, item, reservation); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemQuantity re-checks availability excluding the item's own
// reservation, then updates both. On conflict the item is left unchanged.
func (s *BoardService) UpdateItemQuantity(ctx context.Context, board *model.Board, itemID uuid.UUID, newQuantity int) (*model.BoardItem, error) {
	if newQuantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.boardItem(ctx, board, itemID)
	if err != nil {
		return nil, err
	}

	s.locks.Lock(item.ProductID)
	defer s.locks.Unlock(item.ProductID)

	reservation, err := s.ledger.GetByItemID(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	result, err := s.avail.check(ctx, item.ProductID, newQuantity, reservation.ReservedFrom, reservation.ReservedUntil, &reservation.ID)
	if err != nil {
		return nil, err
	}
	if !result.Available {
		return nil, repository.ErrInsufficientStock
	}

	if err := s.ledger.UpdateQuantity(ctx, reservation.ID, newQuantity); err != nil {
		return nil, err
	}

	item.Quantity = newQuantity
	return item, nil
}

// DeleteItem releases the reservation and deletes the item as one unit.
func (s *BoardService) DeleteItem(ctx context.Context, board *model.Board, itemID uuid.UUID) error {
	item, err := s.boardItem(ctx, board, itemID)
	if err != nil {
		return err
	}
	return s.releaseItem(ctx, item.ProductID, item.ID)
}

func (s *BoardService) releaseItem(ctx context.Context, productID uint, itemID uuid.UUID) error {
	s.locks.Lock(productID)
	defer s.locks.Unlock(productID)

	return s.ledger.ReleaseByItem(ctx, itemID)
}

// boardItem resolves an item and verifies it belongs to the board.
func (s *BoardService) boardItem(ctx context.Context, board *model.Board, itemID uuid.UUID) (*model.BoardItem, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.BoardID != board.ID {
		return nil, repository.ErrItemNotFound
	}
	return item, nil
}
