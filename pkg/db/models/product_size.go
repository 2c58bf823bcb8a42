package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductSize is reference data, seeded by migration.
type ProductSize struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code      string    `gorm:"size:20;not null;uniqueIndex" json:"code"`
	Label     string    `gorm:"size:100;not null" json:"label"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`

	AuditFields
}

func (s *ProductSize) BeforeCreate(tx *gorm.DB) error {
	return ensureID(tx, &s.ID)
}
