package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Name           string     `gorm:"size:255;not null" json:"name"`
	MobileNumber   string     `gorm:"size:20;not null" json:"mobile_number"`
	WhatsappNumber string     `gorm:"size:20" json:"whatsapp_number"`
	Email          string     `gorm:"size:255" json:"email"`
	Address        string     `gorm:"type:text" json:"address"`
	IDProofType    string     `gorm:"size:50" json:"id_proof_type"`
	IDProofNo      string     `gorm:"size:100" json:"id_proof_no"`
	IDProofImage   string     `gorm:"size:512" json:"id_proof_image"`

	AuditFields
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	return ensureID(tx, &c.ID)
}
