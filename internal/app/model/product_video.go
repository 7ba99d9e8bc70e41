package model

import (
	"time"

	"gorm.io/gorm"
)

// ProductVideo is the current video gallery shape. Either VideoURL (uploaded
// file) or ExternalURL (hosted link) must be set; both are valid sources.
type ProductVideo struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	ProductID    uint           `gorm:"not null;index" json:"product_id"`
	VideoURL     string         `json:"video_url"`
	ExternalURL  string         `json:"external_url"`
	ThumbnailURL string         `json:"thumbnail_url"`
	Title        string         `gorm:"size:200" json:"title"`
	IsMain       bool           `gorm:"default:false" json:"is_main"`
	SortOrder    int            `gorm:"default:0" json:"sort_order"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ProductVideo) TableName() string {
	return "product_videos"
}

// URL returns whichever source is present, preferring the uploaded file.
func (v *ProductVideo) URL() string {
	if v.VideoURL != "" {
		return v.VideoURL
	}
	return v.ExternalURL
}
