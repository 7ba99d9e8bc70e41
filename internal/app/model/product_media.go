package model

import (
	"time"

	"gorm.io/gorm"
)

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// ProductMedia is the legacy unified media shape: one table for images and
// videos, distinguished by Type. Kept for backward read compatibility; new
// writes go to ProductImage/ProductVideo.
type ProductMedia struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	ProductID        uint           `gorm:"not null;index" json:"product_id"`
	Type             MediaType      `gorm:"type:varchar(10);default:'image'" json:"type"`
	ImageURL         string         `json:"image_url"`
	VideoURL         string         `json:"video_url"`          // uploaded file
	ExternalVideoURL string         `json:"external_video_url"` // YouTube, Vimeo, etc.
	ThumbnailURL     string         `json:"thumbnail_url"`
	AltText          string         `gorm:"size:200" json:"alt_text"`
	Title            string         `gorm:"size:200" json:"title"`
	Description      string         `gorm:"type:text" json:"description"`
	IsMain           bool           `gorm:"default:false" json:"is_main"`
	SortOrder        int            `gorm:"default:0" json:"sort_order"`
	Active           bool           `gorm:"default:true" json:"active"`
	CreatedAt        time.Time      `json:"created_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ProductMedia) TableName() string {
	return "product_medias"
}

// HasVideo reports a usable video source: an uploaded file or an external
// link both count.
func (m *ProductMedia) HasVideo() bool {
	return m.Type == MediaTypeVideo && (m.VideoURL != "" || m.ExternalVideoURL != "")
}

// URL returns the representative URL for the entry's type.
func (m *ProductMedia) URL() string {
	if m.Type == MediaTypeVideo {
		if m.VideoURL != "" {
			return m.VideoURL
		}
		return m.ExternalVideoURL
	}
	return m.ImageURL
}
