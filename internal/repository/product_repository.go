package repository

import (
	"context"
	"errors"

	"rentalhub/internal/model"

	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ProductFilter narrows catalog listings. Zero values mean "no filter".
type ProductFilter struct {
	Search     string
	CategoryID *uint
	Color      string
	Limit      int
	Offset     int
}

// GetByID retrieves a product by its ID
func (r *ProductRepository) GetByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// List retrieves catalog products matching the filter
func (r *ProductRepository) List(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Color != "" {
		query = query.Where("color = ?", filter.Color)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	err := query.Order("id").Find(&products).Error
	return products, err
}
