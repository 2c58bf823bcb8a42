package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Penalty is a charge levied against a transaction, typically for a
// late return. At most one per transaction.
type Penalty struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"transaction_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Reason        string          `gorm:"type:text" json:"reason"`
	IsPaid        bool            `gorm:"not null;default:false" json:"is_paid"`

	AuditFields
}

func (p *Penalty) BeforeCreate(tx *gorm.DB) error {
	return ensureID(tx, &p.ID)
}
