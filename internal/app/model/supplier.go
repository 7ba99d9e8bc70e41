package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier is a flat reference entity with a generated external identifier
// of the form PROV-XXXXXXXX (8 hex chars).
type Supplier struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Slug        string         `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Code        string         `gorm:"size:20;uniqueIndex" json:"code"`
	Description string         `gorm:"type:text" json:"description"`
	Active      bool           `gorm:"default:true" json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.Code == "" {
		raw := strings.ReplaceAll(uuid.New().String(), "-", "")
		s.Code = "PROV-" + strings.ToUpper(raw[:8])
	}
	return nil
}
