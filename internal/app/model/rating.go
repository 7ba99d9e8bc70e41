package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Rating is a 1-5 star review of a product. One rating per (product, user)
// pair; anonymous ratings carry a null UserID and are exempt from that rule.
type Rating struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ProductID uint           `gorm:"not null;index:idx_ratings_product_user,unique" json:"product_id"`
	UserID    *uint          `gorm:"index:idx_ratings_product_user,unique" json:"user_id"`
	Score     int            `gorm:"not null;check:score >= 1 AND score <= 5" json:"score"`
	Title     string         `gorm:"size:200" json:"title"`
	Comment   string         `gorm:"type:text" json:"comment"`
	ImageURLs pq.StringArray `gorm:"type:text[];default:'{}';not null" json:"image_urls"`
	Verified  bool           `gorm:"default:false" json:"verified"` // compra verificada
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Rating) TableName() string {
	return "ratings"
}
