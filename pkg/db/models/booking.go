package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rentalhq/rental-backend/pkg/enums"
)

// Booking is a customer order, either a rental or a sale. Status is
// free-form workflow text, defaulting to PENDING.
type Booking struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"customer_id"`
	BookingType enums.BookingType `gorm:"size:10;not null" json:"booking_type"`
	Status      string            `gorm:"size:50;not null;default:PENDING" json:"status"`
	BookingDate time.Time         `gorm:"not null" json:"booking_date"`
	TotalAmount decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Notes       string            `gorm:"type:text" json:"notes"`

	Customer     *Customer              `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items        []BookingItem          `gorm:"foreignKey:BookingID" json:"items,omitempty"`
	Transactions []InventoryTransaction `gorm:"foreignKey:BookingID" json:"transactions,omitempty"`

	AuditFields
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	return ensureID(tx, &b.ID)
}
