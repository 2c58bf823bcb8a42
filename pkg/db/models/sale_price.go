package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SalePrice struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	VariantID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"variant_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	EffectiveFrom time.Time       `gorm:"not null" json:"effective_from"`
	EffectiveTo   *time.Time      `json:"effective_to,omitempty"`

	AuditFields
}

func (p *SalePrice) BeforeCreate(tx *gorm.DB) error {
	return ensureID(tx, &p.ID)
}
