package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentalhq/rental-backend/pkg/db/models"
	"github.com/rentalhq/rental-backend/pkg/enums"
)

// VariantInput describes one size of a product, with its stock state
// and price windows. Prices only take effect when the product's
// is_for_rent/is_for_sale flags allow them.
type VariantInput struct {
	SizeID               uuid.UUID                `json:"size_id" validate:"required"`
	PurchasePrice        decimal.Decimal          `json:"purchase_price"`
	RentPrice            *decimal.Decimal         `json:"rent_price" validate:"omitempty"`
	RentEffectiveFrom    *time.Time               `json:"rent_effective_from"`
	RentEffectiveTo      *time.Time               `json:"rent_effective_to"`
	SalePrice            *decimal.Decimal         `json:"sale_price" validate:"omitempty"`
	SaleEffectiveFrom    *time.Time               `json:"sale_effective_from"`
	SaleEffectiveTo      *time.Time               `json:"sale_effective_to"`
	Quantity             int                      `json:"quantity" validate:"gte=0"`
	AvailabilityStatus   enums.AvailabilityStatus `json:"availability_status" validate:"omitempty"`
	ExpectedRestoreDate  *time.Time               `json:"expected_restore_date"`
	NextAvailabilityDate *time.Time               `json:"next_availability_date"`
}

type CreateProductInput struct {
	Name          string          `json:"name" validate:"required,max=255"`
	Category      string          `json:"category" validate:"omitempty,max=100"`
	Description   string          `json:"description"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	IsForSale     bool            `json:"is_for_sale"`
	IsForRent     bool            `json:"is_for_rent"`
	Variants      []VariantInput  `json:"variants" validate:"required,min=1,dive"`
}

// UpdateProductInput replaces the variant set wholesale. Sizes missing
// from Variants are removed, new sizes are added, retained sizes get
// their price and stock overwritten.
type UpdateProductInput struct {
	Name          *string          `json:"name" validate:"omitempty,max=255"`
	Category      *string          `json:"category" validate:"omitempty,max=100"`
	Description   *string          `json:"description"`
	DepositAmount *decimal.Decimal `json:"deposit_amount"`
	IsForSale     *bool            `json:"is_for_sale"`
	IsForRent     *bool            `json:"is_for_rent"`
	IsActive      *bool            `json:"is_active"`
	Variants      []VariantInput   `json:"variants" validate:"omitempty,dive"`
}

type VariantDTO struct {
	ID                 uuid.UUID                `json:"id"`
	SizeID             uuid.UUID                `json:"size_id"`
	SizeCode           string                   `json:"size_code"`
	SizeLabel          string                   `json:"size_label"`
	PurchasePrice      decimal.Decimal          `json:"purchase_price"`
	CurrentRentPrice   *decimal.Decimal         `json:"current_rent_price,omitempty"`
	CurrentSalePrice   *decimal.Decimal         `json:"current_sale_price,omitempty"`
	AvailableQuantity  int                      `json:"available_quantity"`
	AvailabilityStatus enums.AvailabilityStatus `json:"availability_status"`
}

type ProductDTO struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category,omitempty"`
	Description   string          `json:"description,omitempty"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	IsForSale     bool            `json:"is_for_sale"`
	IsForRent     bool            `json:"is_for_rent"`
	IsActive      bool            `json:"is_active"`
	Variants      []VariantDTO    `json:"variants"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type SizeDTO struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Label     string    `json:"label"`
	SortOrder int       `json:"sort_order"`
}

func toSizeDTO(s *models.ProductSize) SizeDTO {
	return SizeDTO{ID: s.ID, Code: s.Code, Label: s.Label, SortOrder: s.SortOrder}
}

func applyUpdateToProduct(p *models.Product, input UpdateProductInput) {
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Category != nil {
		p.Category = *input.Category
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.DepositAmount != nil {
		p.DepositAmount = *input.DepositAmount
	}
	if input.IsForSale != nil {
		p.IsForSale = *input.IsForSale
	}
	if input.IsForRent != nil {
		p.IsForRent = *input.IsForRent
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
}
