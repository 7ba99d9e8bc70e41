package model

import (
	"time"

	"gorm.io/gorm"
)

// ProductImage is the current image gallery shape. At most one entry per
// product should carry IsMain; the write path demotes the others.
type ProductImage struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	ImageURL  string         `gorm:"not null" json:"image_url"`
	AltText   string         `gorm:"size:200" json:"alt_text"`
	Title     string         `gorm:"size:200" json:"title"`
	IsMain    bool           `gorm:"default:false" json:"is_main"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ProductImage) TableName() string {
	return "product_images"
}
