package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"booking_id"`
	VariantID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"variant_id"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	RentalStart *time.Time      `json:"rental_start,omitempty"`
	RentalEnd   *time.Time      `json:"rental_end,omitempty"`

	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`

	AuditFields
}

func (i *BookingItem) BeforeCreate(tx *gorm.DB) error {
	return ensureID(tx, &i.ID)
}
