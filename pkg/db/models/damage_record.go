package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DamageRecord struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"transaction_id"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	RepairCost    decimal.Decimal `gorm:"type:numeric(12,2)" json:"repair_cost"`

	AuditFields
}

func (d *DamageRecord) BeforeCreate(tx *gorm.DB) error {
	return ensureID(tx, &d.ID)
}
