package repository

import (
	"context"
	"errors"

	"rentalhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardItemRepository struct {
	db *gorm.DB
}

func NewBoardItemRepository(db *gorm.DB) *BoardItemRepository {
	return &BoardItemRepository{db: db}
}

// GetByID retrieves a board item by its ID
func (r *BoardItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.BoardItem, error) {
	var item model.BoardItem
	result := r.db.WithContext(ctx).First(&item, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, result.Error
	}
	return &item, nil
}

// ListByBoard retrieves all items of a board in creation order
func (r *BoardItemRepository) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.BoardItem, error) {
	var items []model.BoardItem
	result := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("created_at").Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}
