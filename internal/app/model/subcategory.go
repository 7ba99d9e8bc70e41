package model

import (
	"time"

	"gorm.io/gorm"
)

// Subcategory belongs to exactly one Category. Name uniqueness is scoped to
// the parent category, not global; slugs stay globally unique.
type Subcategory struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"size:100;not null;uniqueIndex:idx_subcategories_category_name" json:"name"`
	Slug        string         `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	CategoryID  uint           `gorm:"not null;uniqueIndex:idx_subcategories_category_name;index" json:"category_id"`
	Category    *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Description string         `gorm:"type:text" json:"description"`
	Active      bool           `gorm:"default:true" json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Products []Product `gorm:"foreignKey:SubcategoryID" json:"-"`
}

func (Subcategory) TableName() string {
	return "subcategories"
}
