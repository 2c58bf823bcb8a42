package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentalhq/rental-backend/pkg/db/models"
	"github.com/rentalhq/rental-backend/pkg/enums"
)

type BookingItemInput struct {
	VariantID   uuid.UUID        `json:"variant_id" validate:"required"`
	Quantity    int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Subtotal    *decimal.Decimal `json:"subtotal"`
	RentalStart *time.Time       `json:"rental_start"`
	RentalEnd   *time.Time       `json:"rental_end"`
}

type DamageInput struct {
	ID          *uuid.UUID       `json:"id"`
	Description *string          `json:"description"`
	RepairCost  *decimal.Decimal `json:"repair_cost"`
}

type PenaltyInput struct {
	Amount *decimal.Decimal `json:"amount"`
	Reason *string          `json:"reason"`
	IsPaid *bool            `json:"is_paid"`
}

// TransactionInput creates a transaction when ID is nil and updates the
// existing one otherwise. On update, nil fields leave stored values
// untouched.
type TransactionInput struct {
	ID                 *uuid.UUID             `json:"id"`
	VariantID          *uuid.UUID             `json:"variant_id"`
	TransactionType    *enums.TransactionType `json:"transaction_type"`
	Quantity           *int                   `json:"quantity"`
	TransactionDate    *time.Time             `json:"transaction_date"`
	ExpectedReturnDate *time.Time             `json:"expected_return_date"`
	ActualReturnDate   *time.Time             `json:"actual_return_date"`
	Status             *string                `json:"status"`
	Notes              *string                `json:"notes"`
	Damage             *DamageInput           `json:"damage"`
	Penalty            *PenaltyInput          `json:"penalty"`
}

type CreateBookingInput struct {
	CustomerID   uuid.UUID          `json:"customer_id" validate:"required"`
	BookingType  enums.BookingType  `json:"booking_type" validate:"required,oneof=RENT SALE"`
	Status       string             `json:"status"`
	BookingDate  *time.Time         `json:"booking_date"`
	TotalAmount  *decimal.Decimal   `json:"total_amount"`
	Notes        string             `json:"notes"`
	Items        []BookingItemInput `json:"items" validate:"required,min=1,dive"`
	Transactions []TransactionInput `json:"transactions" validate:"omitempty,dive"`
}

type UpdateBookingInput struct {
	CustomerID   *uuid.UUID         `json:"customer_id"`
	BookingType  *enums.BookingType `json:"booking_type" validate:"omitempty,oneof=RENT SALE"`
	Status       *string            `json:"status"`
	TotalAmount  *decimal.Decimal   `json:"total_amount"`
	Notes        *string            `json:"notes"`
	Items        []BookingItemInput `json:"items" validate:"omitempty,dive"`
	Transactions []TransactionInput `json:"transactions" validate:"omitempty,dive"`
}

type DamageRecordDTO struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	RepairCost  decimal.Decimal `json:"repair_cost"`
	CreatedAt   time.Time       `json:"created_at"`
}

type PenaltyDTO struct {
	ID     uuid.UUID       `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason,omitempty"`
	IsPaid bool            `json:"is_paid"`
}

type TransactionDTO struct {
	ID                 uuid.UUID             `json:"id"`
	VariantID          uuid.UUID             `json:"variant_id"`
	TransactionType    enums.TransactionType `json:"transaction_type"`
	Quantity           int                   `json:"quantity"`
	TransactionDate    time.Time             `json:"transaction_date"`
	ExpectedReturnDate *time.Time            `json:"expected_return_date,omitempty"`
	ActualReturnDate   *time.Time            `json:"actual_return_date,omitempty"`
	Status             string                `json:"status"`
	Notes              string                `json:"notes,omitempty"`
	DamageRecords      []DamageRecordDTO     `json:"damage_records"`
	Penalty            *PenaltyDTO           `json:"penalty,omitempty"`
}

type BookingItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	VariantID   uuid.UUID       `json:"variant_id"`
	ProductName string          `json:"product_name,omitempty"`
	SizeCode    string          `json:"size_code,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	RentalStart *time.Time      `json:"rental_start,omitempty"`
	RentalEnd   *time.Time      `json:"rental_end,omitempty"`
}

type BookingDTO struct {
	ID           uuid.UUID         `json:"id"`
	CustomerID   uuid.UUID         `json:"customer_id"`
	CustomerName string            `json:"customer_name,omitempty"`
	BookingType  enums.BookingType `json:"booking_type"`
	Status       string            `json:"status"`
	BookingDate  time.Time         `json:"booking_date"`
	TotalAmount  decimal.Decimal   `json:"total_amount"`
	Notes        string            `json:"notes,omitempty"`
	Items        []BookingItemDTO  `json:"items"`
	Transactions []TransactionDTO  `json:"transactions"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// itemSubtotal applies the fallback chain: explicit subtotal, then
// unit price times quantity, then zero.
func itemSubtotal(input BookingItemInput) decimal.Decimal {
	if input.Subtotal != nil {
		return *input.Subtotal
	}
	if input.UnitPrice != nil {
		return input.UnitPrice.Mul(decimal.NewFromInt(int64(input.Quantity)))
	}
	return decimal.Zero
}

func itemUnitPrice(input BookingItemInput) decimal.Decimal {
	if input.UnitPrice != nil {
		return *input.UnitPrice
	}
	return decimal.Zero
}

func toDamageRecordDTO(d *models.DamageRecord) DamageRecordDTO {
	return DamageRecordDTO{
		ID:          d.ID,
		Description: d.Description,
		RepairCost:  d.RepairCost,
		CreatedAt:   d.CreatedAt,
	}
}

func toPenaltyDTO(p *models.Penalty) *PenaltyDTO {
	if p == nil {
		return nil
	}
	return &PenaltyDTO{ID: p.ID, Amount: p.Amount, Reason: p.Reason, IsPaid: p.IsPaid}
}

func toTransactionDTO(t *models.InventoryTransaction, damages []models.DamageRecord, penalty *models.Penalty) TransactionDTO {
	dto := TransactionDTO{
		ID:                 t.ID,
		VariantID:          t.VariantID,
		TransactionType:    t.TransactionType,
		Quantity:           t.Quantity,
		TransactionDate:    t.TransactionDate,
		ExpectedReturnDate: t.ExpectedReturnDate,
		ActualReturnDate:   t.ActualReturnDate,
		Status:             t.Status,
		Notes:              t.Notes,
		DamageRecords:      make([]DamageRecordDTO, 0, len(damages)),
		Penalty:            toPenaltyDTO(penalty),
	}
	for i := range damages {
		dto.DamageRecords = append(dto.DamageRecords, toDamageRecordDTO(&damages[i]))
	}
	return dto
}
