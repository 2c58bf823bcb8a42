package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Category      string          `gorm:"size:100" json:"category"`
	Description   string          `gorm:"type:text" json:"description"`
	DepositAmount decimal.Decimal `gorm:"type:numeric(12,2)" json:"deposit_amount"`
	IsForSale     bool            `gorm:"not null;default:false" json:"is_for_sale"`
	IsForRent     bool            `gorm:"not null;default:true" json:"is_for_rent"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`

	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`

	AuditFields
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	return ensureID(tx, &p.ID)
}
