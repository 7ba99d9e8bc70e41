package model

import (
	"time"

	"gorm.io/gorm"
)

// Brand is a flat reference entity products can point at.
type Brand struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Slug        string         `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	LogoURL     string         `json:"logo_url"`
	Active      bool           `gorm:"default:true" json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Brand) TableName() string {
	return "brands"
}
