package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditFields carry who and when for every row. The created_by and
// updated_by columns are stamped by the audit callbacks from the
// principal in the request context.
type AuditFields struct {
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `gorm:"size:255" json:"created_by"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `gorm:"size:255" json:"updated_by"`
}

func ensureID(tx *gorm.DB, id *uuid.UUID) error {
	_ = tx
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	return nil
}
