package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rentalhq/rental-backend/pkg/db/models"
	"github.com/rentalhq/rental-backend/pkg/enums"
	pkgerrors "github.com/rentalhq/rental-backend/pkg/errors"
)

func TestCreateBookingDecrementsStock(t *testing.T) {
	svc, gdb := newTestService(t)
	f := seedFixture(t, gdb, 10)
	ctx := context.Background()

	end := time.Now().UTC().Add(72 * time.Hour)
	dto, err := svc.Create(ctx, CreateBookingInput{
		CustomerID:  f.customer.ID,
		BookingType: enums.BookingTypeRent,
		Items: []BookingItemInput{{
			VariantID: f.variant.ID,
			Quantity:  3,
			UnitPrice: dec(500),
			RentalEnd: &end,
		}},
	})
	if err != nil {
		t.Fatalf("creating booking: %v", err)
	}

	inv := loadInventory(t, gdb, f)
	if inv.AvailableQuantity != 7 {
		t.Fatalf("available quantity = %d, want 7", inv.AvailableQuantity)
	}
	if inv.AvailabilityStatus != enums.AvailabilityPartiallyRented {
		t.Fatalf("status = %q, want PARTIALLY_RENTED", inv.AvailabilityStatus)
	}
	if inv.ExpectedRestoreDate == nil || inv.NextAvailabilityDate == nil {
		t.Fatal("rent booking should set restore and next availability dates")
	}

	if dto.Status != "PENDING" {
		t.Fatalf("status = %q, want PENDING default", dto.Status)
	}
	if !dto.TotalAmount.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("total = %s, want 1500", dto.TotalAmount)
	}
	if len(dto.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(dto.Items))
	}
	if dto.Items[0].ProductName != "Sherwani Classic" || dto.Items[0].SizeCode != "M" {
		t.Fatalf("item not materialized: %+v", dto.Items[0])
	}
}

func TestCreateBookingExhaustsStock(t *testing.T) {
	svc, gdb := newTestService(t)
	f := seedFixture(t, gdb, 4)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateBookingInput{
		CustomerID:  f.customer.ID,
		BookingType: enums.BookingTypeSale,
		Items: []BookingItemInput{{
			VariantID: f.variant.ID,
			Quantity:  4,
			UnitPrice: dec(900),
		}},
	})
	if err != nil {
		t.Fatalf("creating booking: %v", err)
	}

	inv := loadInventory(t, gdb, f)
	if inv.AvailableQuantity != 0 {
		t.Fatalf("available quantity = %d, want 0", inv.AvailableQuantity)
	}
	if inv.AvailabilityStatus != enums.AvailabilitySold {
		t.Fatalf("status = %q, want SOLD", inv.AvailabilityStatus)
	}
}

func TestCreateBookingAutoTransactions(t *testing.T) {
	svc, gdb := newTestService(t)
	f := seedFixture(t, gdb, 10)
	f2 := seedSecondVariant(t, gdb, f, 5)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateBookingInput{
		CustomerID:  f.customer.ID,
		BookingType: enums.BookingTypeRent,
		Items: []BookingItemInput{
			{VariantID: f.variant.ID, Quantity: 2, UnitPrice: dec(500)},
			{VariantID: f2.ID, Quantity: 1, UnitPrice: dec(700)},
		},
	})
	if err != nil {
		t.Fatalf("creating booking: %v", err)
	}

	if len(dto.Transactions) != 2 {
		t.Fatalf("transactions = %d, want one per item", len(dto.Transactions))
	}
	for _, txn := range dto.Transactions {
		if txn.TransactionType != enums.TransactionRentOut {
			t.Fatalf("transaction type = %q, want RENT_OUT", txn.TransactionType)
		}
		if txn.Status != "ACTIVE" {
			t.Fatalf("transaction status = %q, want ACTIVE", txn.Status)
		}
	}
}

func TestCreateBookingInsufficientStock(t *testing.T) {
	svc, gdb := newTestService(t)
	f := seedFixture(t, gdb, 3)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateBookingInput{
		CustomerID:  f.customer.ID,
		BookingType: enums.BookingTypeRent,
		Items: []BookingItemInput{{
			VariantID: f.variant.ID,
			Quantity:  5,
			UnitPrice: dec(500),
		}},
	})
	if err == nil {
		t.Fatal("expected insufficient inventory error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("error = %v, want INSUFFICIENT_INVENTORY", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("details missing: %v", typed.Details())
	}
	if details["product"] != "Sherwani Classic" || details["size"] != "M" {
		t.Fatalf("details = %v, want product and size named", details)
	}
	if details["available"] != 3 || details["requested"] != 5 {
		t.Fatalf("details = %v, want available 3 requested 5", details)
	}

	// The whole unit of work must roll back.
	inv := loadInventory(t, gdb, f)
	if inv.AvailableQuantity != 3 {
		t.Fatalf("available quantity = %d, want untouched 3", inv.AvailableQuantity)
	}
	var bookingCount, itemCount, txnCount int64
	gdb.Model(&models.Booking{}).Count(&bookingCount)
	gdb.Model(&models.BookingItem{}).Count(&itemCount)
	gdb.Model(&models.InventoryTransaction{}).Count(&txnCount)
	if bookingCount != 0 || itemCount != 0 || txnCount != 0 {
		t.Fatalf("partial commit: bookings=%d items=%d txns=%d", bookingCount, itemCount, txnCount)
	}
}

func TestCreateBookingPartialFailureRollsBack(t *testing.T) {
	svc, gdb := newTestService(t)
	f := seedFixture(t, gdb, 10)
	f2 := seedSecondVariant(t, gdb, f, 1)
	ctx := context.Background()

	// First item fits, second does not; neither decrement may survive.
	_, err := svc.Create(ctx, CreateBookingInput{
		CustomerID:  f.customer.ID,
		BookingType: enums.BookingTypeRent,
		Items: []BookingItemInput{
			{VariantID: f.variant.ID, Quantity: 2, UnitPrice: dec(500)},
			{VariantID: f2.ID, Quantity: 3, UnitPrice: dec(700)},
		},
	})
	if err == nil {
		t.Fatal("expected insufficient inventory error")
	}

	inv := loadInventory(t, gdb, f)
	if inv.AvailableQuantity != 10 {
		t.Fatalf("first variant quantity = %d, want rolled back to 10", inv.AvailableQuantity)
	}
}

func TestCreateBookingCustomerNotFound(t *testing.T) {
	svc, gdb := newTestService(t)
	f := seedFixture(t, gdb, 10)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateBookingInput{
		CustomerID:  uuid.New(),
		BookingType: enums.BookingTypeRent,
		Items:       []BookingItemInput{{VariantID: f.variant.ID, Quantity: 1}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
}

func TestCreateBookingMissingInventoryRow(t *testing.T) {
	svc, gdb := newTestService(t)
	f := seedFixture(t, gdb, 10)
	ctx := context.Background()

	if err := gdb.Where("variant_id = ?", f.variant.ID).Delete(&models.Inventory{}).Error; err != nil {
		t.Fatalf("removing inventory row: %v", err)
	}

	_, err := svc.Create(ctx, CreateBookingInput{
		CustomerID:  f.customer.ID,
		BookingType: enums.BookingTypeRent,
		Items:       []BookingItemInput{{VariantID: f.variant.ID, Quantity: 1}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("error = %v, want NOT_FOUND for missing inventory", err)
	}
}

func TestCreateBookingExplicitTransactionDoesNotTouchStock(t *testing.T) {
	svc, gdb := newTestService(t)
	f := seedFixture(t, gdb, 10)
	ctx := context.Background()

	damageType := enums.TransactionDamage
	desc := "torn sleeve"
	dto, err := svc.Create(ctx, CreateBookingInput{
		CustomerID:  f.customer.ID,
		BookingType: enums.BookingTypeRent,
		Items:       []BookingItemInput{{VariantID: f.variant.ID, Quantity: 2, UnitPrice: dec(500)}},
		Transactions: []TransactionInput{{
			VariantID:       &f.variant.ID,
			TransactionType: &damageType,
			Quantity:        intPtr(1),
			Damage:          &DamageInput{Description: &desc, RepairCost: dec(150)},
			Penalty:         &PenaltyInput{Amount: dec(200), Reason: strPtr("late return")},
		}},
	})
	if err != nil {
		t.Fatalf("creating booking: %v", err)
	}

	// Only the item decrements stock, not the explicit transaction.
	inv := loadInventory(t, gdb, f)
	if inv.AvailableQuantity != 8 {
		t.Fatalf("available quantity = %d, want 8", inv.AvailableQuantity)
	}

	if len(dto.Transactions) != 2 {
		t.Fatalf("transactions = %d, want auto + explicit", len(dto.Transactions))
	}
	var damageTxn *TransactionDTO
	for i := range dto.Transactions {
		if dto.Transactions[i].TransactionType == enums.TransactionDamage {
			damageTxn = &dto.Transactions[i]
		}
	}
	if damageTxn == nil {
		t.Fatal("damage transaction missing")
	}
	if len(damageTxn.DamageRecords) != 1 || damageTxn.DamageRecords[0].Description != "torn sleeve" {
		t.Fatalf("damage records = %+v", damageTxn.DamageRecords)
	}
	if damageTxn.Penalty == nil || !damageTxn.Penalty.Amount.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("penalty = %+v", damageTxn.Penalty)
	}
}

func TestCreateBookingDamageIgnoredForNonDamageType(t *testing.T) {
	svc, gdb := newTestService(t)
	f := seedFixture(t, gdb, 10)
	ctx := context.Background()

	returnType := enums.TransactionReturn
	desc := "scuffed hem"
	_, err := svc.Create(ctx, CreateBookingInput{
		CustomerID:  f.customer.ID,
		BookingType: enums.BookingTypeRent,
		Items:       []BookingItemInput{{VariantID: f.variant.ID, Quantity: 1}},
		Transactions: []TransactionInput{{
			VariantID:       &f.variant.ID,
			TransactionType: &returnType,
			Damage:          &DamageInput{Description: &desc},
		}},
	})
	if err != nil {
		t.Fatalf("creating booking: %v", err)
	}

	var count int64
	gdb.Model(&models.DamageRecord{}).Count(&count)
	if count != 0 {
		t.Fatalf("damage records = %d, create path must restrict to DAMAGE type", count)
	}
}

func TestUpdateBookingReplacesItemsWithoutTouchingStock(t *testing.T) {
	svc, gdb := newTestService(t)
	f := seedFixture(t, gdb, 10)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateBookingInput{
		CustomerID:  f.customer.ID,
		BookingType: enums.BookingTypeRent,
		Items:       []BookingItemInput{{VariantID: f.variant.ID, Quantity: 3, UnitPrice: dec(500)}},
	})
	if err != nil {
		t.Fatalf("creating booking: %v", err)
	}

	updated, err := svc.Update(ctx, dto.ID, UpdateBookingInput{
		Items: []BookingItemInput{{VariantID: f.variant.ID, Quantity: 1, UnitPrice: dec(800)}},
	})
	if err != nil {
		t.Fatalf("updating booking: %v", err)
	}

	if len(updated.Items) != 1 || updated.Items[0].Quantity != 1 {
		t.Fatalf("items = %+v, want replaced list", updated.Items)
	}
	if !updated.TotalAmount.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("total = %s, want recomputed 800", updated.TotalAmount)
	}

	// Item replacement does not reconcile inventory.
	inv := loadInventory(t, gdb, f)
	if inv.AvailableQuantity != 7 {
		t.Fatalf("available quantity = %d, want 7 from the original decrement", inv.AvailableQuantity)
	}
}

func TestUpdateBookingEmptyItemsListKeepsItems(t *testing.T) {
	svc, gdb := newTestService(t)
	f := seedFixture(t, gdb, 10)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateBookingInput{
		CustomerID:  f.customer.ID,
		BookingType: enums.BookingTypeRent,
		Items:       []BookingItemInput{{VariantID: f.variant.ID, Quantity: 2, UnitPrice: dec(500)}},
	})
	if err != nil {
		t.Fatalf("creating booking: %v", err)
	}

	status := "CONFIRMED"
	updated, err := svc.Update(ctx, dto.ID, UpdateBookingInput{
		Status: &status,
		Items:  []BookingItemInput{},
	})
	if err != nil {
		t.Fatalf("updating booking: %v", err)
	}

	if len(updated.Items) != 1 || updated.Items[0].Quantity != 2 {
		t.Fatalf("items = %+v, empty list must not replace them", updated.Items)
	}
	if !updated.TotalAmount.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("total = %s, want unchanged 1000", updated.TotalAmount)
	}

	var count int64
	gdb.Model(&models.BookingItem{}).Count(&count)
	if count != 1 {
		t.Fatalf("booking items = %d, want original row kept", count)
	}
}

func TestUpdateBookingScalarFields(t *testing.T) {
	svc, gdb := newTestService(t)
	f := seedFixture(t, gdb, 10)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateBookingInput{
		CustomerID:  f.customer.ID,
		BookingType: enums.BookingTypeRent,
		Items:       []BookingItemInput{{VariantID: f.variant.ID, Quantity: 1, UnitPrice: dec(500)}},
	})
	if err != nil {
		t.Fatalf("creating booking: %v", err)
	}

	status := "CONFIRMED"
	updated, err := svc.Update(ctx, dto.ID, UpdateBookingInput{
		Status:      &status,
		TotalAmount: dec(999),
	})
	if err != nil {
		t.Fatalf("updating booking: %v", err)
	}
	if updated.Status != "CONFIRMED" {
		t.Fatalf("status = %q, want CONFIRMED", updated.Status)
	}
	if !updated.TotalAmount.Equal(decimal.NewFromInt(999)) {
		t.Fatalf("total = %s, want overwritten 999", updated.TotalAmount)
	}
}

func TestUpdateTransactionCrossBookingRejected(t *testing.T) {
	svc, gdb := newTestService(t)
	f := seedFixture(t, gdb, 10)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateBookingInput{
		CustomerID:  f.customer.ID,
		BookingType: enums.BookingTypeRent,
		Items:       []BookingItemInput{{VariantID: f.variant.ID, Quantity: 1, UnitPrice: dec(500)}},
	})
	if err != nil {
		t.Fatalf("creating first booking: %v", err)
	}
	second, err := svc.Create(ctx, CreateBookingInput{
		CustomerID:  f.customer.ID,
		BookingType: enums.BookingTypeRent,
		Items:       []BookingItemInput{{VariantID: f.variant.ID, Quantity: 1, UnitPrice: dec(500)}},
	})
	if err != nil {
		t.Fatalf("creating second booking: %v", err)
	}

	foreignTxnID := first.Transactions[0].ID
	_, err = svc.Update(ctx, second.ID, UpdateBookingInput{
		Transactions: []TransactionInput{{ID: &foreignTxnID, Status: strPtr("CLOSED")}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("error = %v, want VALIDATION_ERROR for cross-booking transaction", err)
	}
}

func TestUpdateTransactionAttachesDamageRegardlessOfType(t *testing.T) {
	svc, gdb := newTestService(t)
	f := seedFixture(t, gdb, 10)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateBookingInput{
		CustomerID:  f.customer.ID,
		BookingType: enums.BookingTypeRent,
		Items:       []BookingItemInput{{VariantID: f.variant.ID, Quantity: 1, UnitPrice: dec(500)}},
	})
	if err != nil {
		t.Fatalf("creating booking: %v", err)
	}

	// Auto transaction is RENT_OUT; damage still attaches on update.
	txnID := dto.Transactions[0].ID
	desc := "button missing"
	updated, err := svc.Update(ctx, dto.ID, UpdateBookingInput{
		Transactions: []TransactionInput{{
			ID:     &txnID,
			Damage: &DamageInput{Description: &desc, RepairCost: dec(50)},
		}},
	})
	if err != nil {
		t.Fatalf("updating booking: %v", err)
	}
	if len(updated.Transactions[0].DamageRecords) != 1 {
		t.Fatalf("damage records = %+v, want one attached to RENT_OUT", updated.Transactions[0].DamageRecords)
	}
}

func TestUpdateDamageRecordCrossTransactionRejected(t *testing.T) {
	svc, gdb := newTestService(t)
	f := seedFixture(t, gdb, 10)
	ctx := context.Background()

	damageType := enums.TransactionDamage
	desc := "torn sleeve"
	dto, err := svc.Create(ctx, CreateBookingInput{
		CustomerID:  f.customer.ID,
		BookingType: enums.BookingTypeRent,
		Items:       []BookingItemInput{{VariantID: f.variant.ID, Quantity: 1, UnitPrice: dec(500)}},
		Transactions: []TransactionInput{{
			VariantID:       &f.variant.ID,
			TransactionType: &damageType,
			Damage:          &DamageInput{Description: &desc},
		}},
	})
	if err != nil {
		t.Fatalf("creating booking: %v", err)
	}

	var autoTxn, damageTxn *TransactionDTO
	for i := range dto.Transactions {
		if dto.Transactions[i].TransactionType == enums.TransactionDamage {
			damageTxn = &dto.Transactions[i]
		} else {
			autoTxn = &dto.Transactions[i]
		}
	}
	if autoTxn == nil || damageTxn == nil || len(damageTxn.DamageRecords) != 1 {
		t.Fatalf("fixture transactions missing: %+v", dto.Transactions)
	}

	// Point the auto transaction at the other transaction's damage record.
	foreignDamageID := damageTxn.DamageRecords[0].ID
	_, err = svc.Update(ctx, dto.ID, UpdateBookingInput{
		Transactions: []TransactionInput{{
			ID:     &autoTxn.ID,
			Damage: &DamageInput{ID: &foreignDamageID, Description: strPtr("edited")},
		}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("error = %v, want VALIDATION_ERROR for cross-transaction damage", err)
	}
}

func TestUpdatePenaltyIsUpsert(t *testing.T) {
	svc, gdb := newTestService(t)
	f := seedFixture(t, gdb, 10)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateBookingInput{
		CustomerID:  f.customer.ID,
		BookingType: enums.BookingTypeRent,
		Items:       []BookingItemInput{{VariantID: f.variant.ID, Quantity: 1, UnitPrice: dec(500)}},
	})
	if err != nil {
		t.Fatalf("creating booking: %v", err)
	}
	txnID := dto.Transactions[0].ID

	_, err = svc.Update(ctx, dto.ID, UpdateBookingInput{
		Transactions: []TransactionInput{{ID: &txnID, Penalty: &PenaltyInput{Amount: dec(100), Reason: strPtr("late")}}},
	})
	if err != nil {
		t.Fatalf("attaching penalty: %v", err)
	}

	paid := true
	updated, err := svc.Update(ctx, dto.ID, UpdateBookingInput{
		Transactions: []TransactionInput{{ID: &txnID, Penalty: &PenaltyInput{IsPaid: &paid}}},
	})
	if err != nil {
		t.Fatalf("updating penalty: %v", err)
	}

	penalty := updated.Transactions[0].Penalty
	if penalty == nil || !penalty.IsPaid {
		t.Fatalf("penalty = %+v, want paid", penalty)
	}
	if !penalty.Amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("penalty amount = %s, want original 100 preserved", penalty.Amount)
	}

	var count int64
	gdb.Model(&models.Penalty{}).Count(&count)
	if count != 1 {
		t.Fatalf("penalties = %d, want single row per transaction", count)
	}
}

func seedSecondVariant(t *testing.T, gdb *gorm.DB, f fixture, quantity int) models.ProductVariant {
	t.Helper()

	size := models.ProductSize{Code: "L", Label: "Large", SortOrder: 40}
	if err := gdb.Create(&size).Error; err != nil {
		t.Fatalf("seeding size: %v", err)
	}
	variant := models.ProductVariant{
		ProductID:     f.product.ID,
		SizeID:        size.ID,
		PurchasePrice: decimal.NewFromInt(5000),
	}
	if err := gdb.Create(&variant).Error; err != nil {
		t.Fatalf("seeding variant: %v", err)
	}
	inv := models.Inventory{
		VariantID:          variant.ID,
		AvailableQuantity:  quantity,
		AvailabilityStatus: enums.AvailabilityAvailable,
	}
	if err := gdb.Create(&inv).Error; err != nil {
		t.Fatalf("seeding inventory: %v", err)
	}
	return variant
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
