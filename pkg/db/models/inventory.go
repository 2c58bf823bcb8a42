package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentalhq/rental-backend/pkg/enums"
)

// Inventory tracks the available stock of one variant. One row per
// variant.
type Inventory struct {
	ID                   uuid.UUID                `gorm:"type:uuid;primaryKey" json:"id"`
	VariantID            uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex" json:"variant_id"`
	AvailableQuantity    int                      `gorm:"not null;default:0" json:"available_quantity"`
	AvailabilityStatus   enums.AvailabilityStatus `gorm:"size:30" json:"availability_status"`
	ExpectedRestoreDate  *time.Time               `json:"expected_restore_date,omitempty"`
	NextAvailabilityDate *time.Time               `json:"next_availability_date,omitempty"`

	AuditFields
}

func (Inventory) TableName() string {
	return "inventory"
}

func (i *Inventory) BeforeCreate(tx *gorm.DB) error {
	return ensureID(tx, &i.ID)
}

// BeforeSave keeps quantity and status coherent regardless of what the
// caller set. Zero stock forces UNAVAILABLE unless the row is already
// marked RENTED or SOLD, and positive stock lifts UNAVAILABLE back to
// AVAILABLE. Runs on every create and save so no code path can persist
// an inconsistent pair.
func (i *Inventory) BeforeSave(tx *gorm.DB) error {
	_ = tx
	i.Normalize()
	return nil
}

func (i *Inventory) Normalize() {
	if i.AvailableQuantity <= 0 {
		if !i.AvailabilityStatus.IsFullyCommitted() {
			i.AvailabilityStatus = enums.AvailabilityUnavailable
		}
		return
	}
	if i.AvailabilityStatus == "" || i.AvailabilityStatus == enums.AvailabilityUnavailable {
		i.AvailabilityStatus = enums.AvailabilityAvailable
	}
}
