package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductVariant is one product in one size. A product carries at most
// one variant per size.
type ProductVariant struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_variant_product_size" json:"product_id"`
	SizeID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_variant_product_size" json:"size_id"`
	PurchasePrice decimal.Decimal `gorm:"type:numeric(12,2)" json:"purchase_price"`

	Size       *ProductSize `gorm:"foreignKey:SizeID" json:"size,omitempty"`
	Inventory  *Inventory   `gorm:"foreignKey:VariantID" json:"inventory,omitempty"`
	RentPrices []RentPrice  `gorm:"foreignKey:VariantID" json:"rent_prices,omitempty"`
	SalePrices []SalePrice  `gorm:"foreignKey:VariantID" json:"sale_prices,omitempty"`

	AuditFields
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	return ensureID(tx, &v.ID)
}
