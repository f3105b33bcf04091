package model

// Product is a rentable catalog item. The catalog is imported inventory data
// and is read-only to this service: Quantity is the total physical stock and
// is never mutated here.
type Product struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	CategoryID  *uint `gorm:"index"`
	Color       string
	Price       float64
	Quantity    int `gorm:"not null;check:quantity >= 0"`

	Category *Category `gorm:"foreignKey:CategoryID"`
}
