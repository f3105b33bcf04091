package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"rentalhub/internal/model"
	"rentalhub/internal/repository"
	"rentalhub/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBoard_InvalidDateRange(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateBoard(context.Background(), f.ownerID, service.CreateBoardParams{
		Name:        "Backwards",
		EventDate:   date("2024-12-25"),
		RentalStart: date("2024-12-26"),
		RentalEnd:   date("2024-12-24"),
	})

	assert.ErrorIs(t, err, service.ErrInvalidDateRange)
}

func TestCreateBoard_StartsAsDraft(t *testing.T) {
	f := newFixture()

	board := f.createBoard("2024-12-24", "2024-12-26")
	assert.Equal(t, model.BoardStatusDraft, board.Status)
}

func TestAddItem_ReducesAvailability(t *testing.T) {
	// Product 59 has stock 5; reserving 1 leaves 4 free in the same window
	f := newFixture()
	board := f.createBoard("2024-12-24", "2024-12-26")

	item, err := f.svc.AddItem(context.Background(), board, 59, 1, "test item")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, item.ID)

	result, err := f.avail.Check(context.Background(), 59, 5, date("2024-12-24"), date("2024-12-26"))
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, 4, result.FreeUnits)
}

func TestUpdateItemQuantity_ReflectedInAvailability(t *testing.T) {
	f := newFixture()
	board := f.createBoard("2024-12-24", "2024-12-26")

	item, err := f.svc.AddItem(context.Background(), board, 59, 1, "")
	require.NoError(t, err)

	updated, err := f.svc.UpdateItemQuantity(context.Background(), board, item.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)

	result, err := f.avail.Check(context.Background(), 59, 3, date("2024-12-24"), date("2024-12-26"))
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, 2, result.FreeUnits)
}

func TestUpdateItemQuantity_ConflictLeavesItemUnchanged(t *testing.T) {
	f := newFixture()
	board := f.createBoard("2024-12-24", "2024-12-26")

	item, err := f.svc.AddItem(context.Background(), board, 59, 2, "")
	require.NoError(t, err)

	// 6 > stock even with the item's own 2 excluded
	_, err = f.svc.UpdateItemQuantity(context.Background(), board, item.ID, 6)
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)

	current, err := f.ledger.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, current.Quantity)
}

func TestDeleteItem_RestoresAvailability(t *testing.T) {
	f := newFixture()
	board := f.createBoard("2024-12-24", "2024-12-26")

	item, err := f.svc.AddItem(context.Background(), board, 59, 3, "")
	require.NoError(t, err)

	err = f.svc.DeleteItem(context.Background(), board, item.ID)
	require.NoError(t, err)

	result, err := f.avail.Check(context.Background(), 59, 5, date("2024-12-24"), date("2024-12-26"))
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Equal(t, 5, result.FreeUnits)

	_, err = f.ledger.GetByID(context.Background(), item.ID)
	assert.ErrorIs(t, err, repository.ErrItemNotFound)
}

func TestAddItem_ExactFitSucceedsOneMoreFails(t *testing.T) {
	f := newFixture()
	board := f.createBoard("2024-12-24", "2024-12-26")

	_, err := f.svc.AddItem(context.Background(), board, 59, 5, "")
	require.NoError(t, err)

	other := f.createBoard("2024-12-24", "2024-12-26")
	_, err = f.svc.AddItem(context.Background(), other, 59, 1, "")
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)
}

func TestAddItem_SharedBoundaryDayWindowsShareStock(t *testing.T) {
	// [24th,26th] and [26th,28th] overlap on the 26th, so their quantities
	// must fit inside stock together
	f := newFixture()
	first := f.createBoard("2024-12-24", "2024-12-26")
	second := f.createBoard("2024-12-26", "2024-12-28")

	_, err := f.svc.AddItem(context.Background(), first, 59, 3, "")
	require.NoError(t, err)

	_, err = f.svc.AddItem(context.Background(), second, 59, 3, "")
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)

	_, err = f.svc.AddItem(context.Background(), second, 59, 2, "")
	assert.NoError(t, err)
}

func TestAddItem_DisjointWindowsDoNotContend(t *testing.T) {
	f := newFixture()
	first := f.createBoard("2024-12-24", "2024-12-25")
	second := f.createBoard("2024-12-27", "2024-12-28")

	_, err := f.svc.AddItem(context.Background(), first, 59, 5, "")
	require.NoError(t, err)

	_, err = f.svc.AddItem(context.Background(), second, 59, 5, "")
	assert.NoError(t, err)
}

func TestAddItem_ValidationAndNotFound(t *testing.T) {
	f := newFixture()
	board := f.createBoard("2024-12-24", "2024-12-26")

	_, err := f.svc.AddItem(context.Background(), board, 59, 0, "")
	assert.ErrorIs(t, err, service.ErrInvalidQuantity)

	_, err = f.svc.AddItem(context.Background(), board, 999, 1, "")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)

	assert.Equal(t, 0, f.ledger.heldCount(59))
}

func TestAddItem_ConcurrentRequestsNeverOverbook(t *testing.T) {
	// Ten concurrent single-unit requests against a stock of five: exactly
	// five may commit
	f := newFixture()
	board := f.createBoard("2024-12-24", "2024-12-26")

	var wg sync.WaitGroup
	results := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.AddItem(context.Background(), board, 59, 1, "")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, repository.ErrInsufficientStock)
		}
	}

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 5, f.ledger.heldCount(59))

	result, err := f.avail.Check(context.Background(), 59, 1, date("2024-12-24"), date("2024-12-26"))
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, 0, result.FreeUnits)
}

func TestUpdateBoard_WindowFrozenWhileItemsExist(t *testing.T) {
	f := newFixture()
	board := f.createBoard("2024-12-24", "2024-12-26")

	_, err := f.svc.AddItem(context.Background(), board, 59, 1, "")
	require.NoError(t, err)

	// Reload so Items is populated
	board, err = f.svc.GetBoard(context.Background(), board.ID)
	require.NoError(t, err)

	newEnd := date("2024-12-30")
	_, err = f.svc.UpdateBoard(context.Background(), board, service.UpdateBoardParams{RentalEnd: &newEnd})
	assert.ErrorIs(t, err, service.ErrWindowLocked)

	// Non-window fields stay editable
	name := "Renamed"
	budget := 6000.0
	updated, err := f.svc.UpdateBoard(context.Background(), board, service.UpdateBoardParams{Name: &name, Budget: &budget})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 6000.0, *updated.Budget)
}

func TestUpdateBoard_WindowChangeAllowedWhenEmpty(t *testing.T) {
	f := newFixture()
	board := f.createBoard("2024-12-24", "2024-12-26")

	newStart := date("2024-12-20")
	newEnd := date("2024-12-22")
	updated, err := f.svc.UpdateBoard(context.Background(), board, service.UpdateBoardParams{
		RentalStart: &newStart,
		RentalEnd:   &newEnd,
	})
	require.NoError(t, err)
	assert.Equal(t, newStart, updated.RentalStart)
	assert.Equal(t, newEnd, updated.RentalEnd)
}

func TestUpdateBoard_InvalidStatus(t *testing.T) {
	f := newFixture()
	board := f.createBoard("2024-12-24", "2024-12-26")

	bad := "cancelled"
	_, err := f.svc.UpdateBoard(context.Background(), board, service.UpdateBoardParams{Status: &bad})
	assert.ErrorIs(t, err, service.ErrInvalidStatus)
}

func TestDeleteBoard_ReleasesEveryReservation(t *testing.T) {
	f := newFixture()
	f.catalog.products[60] = &model.Product{ID: 60, Name: "Candelabra", Quantity: 10}
	board := f.createBoard("2024-12-24", "2024-12-26")

	_, err := f.svc.AddItem(context.Background(), board, 59, 2, "")
	require.NoError(t, err)
	_, err = f.svc.AddItem(context.Background(), board, 60, 4, "")
	require.NoError(t, err)

	err = f.svc.DeleteBoard(context.Background(), board)
	require.NoError(t, err)

	_, err = f.svc.GetBoard(context.Background(), board.ID)
	assert.ErrorIs(t, err, repository.ErrBoardNotFound)
	assert.Equal(t, 0, f.ledger.heldCount(59))
	assert.Equal(t, 0, f.ledger.heldCount(60))
}

func TestDeleteBoard_PartialFailureLeavesRemainingItemsConsistent(t *testing.T) {
	f := newFixture()
	f.catalog.products[60] = &model.Product{ID: 60, Name: "Candelabra", Quantity: 10}
	board := f.createBoard("2024-12-24", "2024-12-26")

	first, err := f.svc.AddItem(context.Background(), board, 59, 2, "")
	require.NoError(t, err)
	second, err := f.svc.AddItem(context.Background(), board, 60, 4, "")
	require.NoError(t, err)

	f.ledger.failRelease[second.ID] = errors.New("connection reset")

	err = f.svc.DeleteBoard(context.Background(), board)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 item(s) still reserved")

	// Board must not be reported deleted
	_, err = f.svc.GetBoard(context.Background(), board.ID)
	assert.NoError(t, err)

	// First item is fully gone, not half-released
	_, err = f.ledger.GetByID(context.Background(), first.ID)
	assert.ErrorIs(t, err, repository.ErrItemNotFound)
	assert.Equal(t, 0, f.ledger.heldCount(59))

	// Second item still live with its held reservation
	_, err = f.ledger.GetByID(context.Background(), second.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, f.ledger.heldCount(60))

	// Retry completes the cascade
	err = f.svc.DeleteBoard(context.Background(), board)
	require.NoError(t, err)
	assert.Equal(t, 0, f.ledger.heldCount(60))
}

func TestDeleteItem_ItemFromAnotherBoardNotFound(t *testing.T) {
	f := newFixture()
	mine := f.createBoard("2024-12-24", "2024-12-26")
	other := f.createBoard("2024-12-24", "2024-12-26")

	item, err := f.svc.AddItem(context.Background(), other, 59, 1, "")
	require.NoError(t, err)

	err = f.svc.DeleteItem(context.Background(), mine, item.ID)
	assert.ErrorIs(t, err, repository.ErrItemNotFound)
}

func TestReleaseReservation_Idempotent(t *testing.T) {
	f := newFixture()
	board := f.createBoard("2024-12-24", "2024-12-26")

	item, err := f.svc.AddItem(context.Background(), board, 59, 2, "")
	require.NoError(t, err)

	reservation, err := f.ledger.GetByItemID(context.Background(), item.ID)
	require.NoError(t, err)

	require.NoError(t, f.ledger.Release(context.Background(), reservation.ID))
	require.NoError(t, f.ledger.Release(context.Background(), reservation.ID))

	result, err := f.avail.Check(context.Background(), 59, 5, date("2024-12-24"), date("2024-12-26"))
	require.NoError(t, err)
	assert.Equal(t, 5, result.FreeUnits)
}

func TestListBoards_StatusFilter(t *testing.T) {
	f := newFixture()
	f.createBoard("2024-12-24", "2024-12-26")

	boards, err := f.svc.ListBoards(context.Background(), f.ownerID, model.BoardStatusDraft)
	require.NoError(t, err)
	assert.Len(t, boards, 1)

	boards, err = f.svc.ListBoards(context.Background(), f.ownerID, model.BoardStatusArchived)
	require.NoError(t, err)
	assert.Len(t, boards, 0)

	_, err = f.svc.ListBoards(context.Background(), f.ownerID, "bogus")
	assert.ErrorIs(t, err, service.ErrInvalidStatus)
}
