package model

import (
	"time"

	"gorm.io/gorm"
)

// Status is the merchandising status taxonomy (e.g. Nuevo, Reacondicionado).
type Status struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Slug        string         `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	Active      bool           `gorm:"default:true" json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Status) TableName() string {
	return "statuses"
}
