package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentalhq/rental-backend/pkg/enums"
)

// InventoryTransaction records one stock movement against a booking.
type InventoryTransaction struct {
	ID                 uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID          uuid.UUID             `gorm:"type:uuid;not null;index" json:"booking_id"`
	VariantID          uuid.UUID             `gorm:"type:uuid;not null;index" json:"variant_id"`
	TransactionType    enums.TransactionType `gorm:"size:20;not null" json:"transaction_type"`
	Quantity           int                   `gorm:"not null" json:"quantity"`
	TransactionDate    time.Time             `gorm:"not null" json:"transaction_date"`
	ExpectedReturnDate *time.Time            `json:"expected_return_date,omitempty"`
	ActualReturnDate   *time.Time            `json:"actual_return_date,omitempty"`
	Status             string                `gorm:"size:50;not null;default:PENDING" json:"status"`
	Notes              string                `gorm:"type:text" json:"notes"`

	DamageRecords []DamageRecord `gorm:"foreignKey:TransactionID" json:"damage_records,omitempty"`
	Penalty       *Penalty       `gorm:"foreignKey:TransactionID" json:"penalty,omitempty"`

	AuditFields
}

func (t *InventoryTransaction) BeforeCreate(tx *gorm.DB) error {
	return ensureID(tx, &t.ID)
}
