package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RentPrice is a dated rental price for a variant. A nil EffectiveTo
// means the price is open-ended.
type RentPrice struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	VariantID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"variant_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	EffectiveFrom time.Time       `gorm:"not null" json:"effective_from"`
	EffectiveTo   *time.Time      `json:"effective_to,omitempty"`

	AuditFields
}

func (p *RentPrice) BeforeCreate(tx *gorm.DB) error {
	return ensureID(tx, &p.ID)
}
