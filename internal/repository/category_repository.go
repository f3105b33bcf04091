package repository

import (
	"context"

	"rentalhub/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetTopLevel returns the root categories of the catalog.
func (r *CategoryRepository) GetTopLevel(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Where("parent_id IS NULL").Order("name").Find(&categories).Error
	return categories, err
}

// GetSubcategories returns subcategories, optionally restricted to one parent.
func (r *CategoryRepository) GetSubcategories(ctx context.Context, parentID *uint) ([]model.Category, error) {
	var categories []model.Category
	query := r.db.WithContext(ctx).Where("parent_id IS NOT NULL")
	if parentID != nil {
		query = query.Where("parent_id = ?", *parentID)
	}
	err := query.Order("name").Find(&categories).Error
	return categories, err
}
