package model

// Category is a catalog grouping. Top-level categories have a nil ParentID;
// subcategories point at their parent.
type Category struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
	ParentID *uint  `gorm:"index"`

	Parent *Category `gorm:"foreignKey:ParentID"`
}
