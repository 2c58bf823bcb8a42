package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rentalhq/rental-backend/pkg/db"
	"github.com/rentalhq/rental-backend/pkg/db/models"
	"github.com/rentalhq/rental-backend/pkg/enums"
	pkgerrors "github.com/rentalhq/rental-backend/pkg/errors"
	"github.com/rentalhq/rental-backend/pkg/logger"
	"github.com/rentalhq/rental-backend/pkg/metrics"
)

const defaultBookingStatus = "PENDING"

type Service interface {
	Create(ctx context.Context, input CreateBookingInput) (*BookingDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateBookingInput) (*BookingDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*BookingDTO, error)
	List(ctx context.Context) ([]BookingDTO, error)
}

type service struct {
	dbClient *db.Client
	repo     *Repository
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(dbClient *db.Client, repo *Repository, logg *logger.Logger) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("booking repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		dbClient: dbClient,
		repo:     repo,
		logg:     logg,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Create books the requested items inside one transaction: the booking
// row, its items, the stock decrements with their status transitions,
// one auto-generated inventory transaction per item, and any explicit
// transactions. Nothing survives a failed step.
func (s *service) Create(ctx context.Context, input CreateBookingInput) (*BookingDTO, error) {
	booking := &models.Booking{
		CustomerID:  input.CustomerID,
		BookingType: input.BookingType,
		Status:      input.Status,
		Notes:       input.Notes,
	}
	if booking.Status == "" {
		booking.Status = defaultBookingStatus
	}
	if input.BookingDate != nil {
		booking.BookingDate = *input.BookingDate
	} else {
		booking.BookingDate = s.now()
	}

	total := decimal.Zero
	for _, item := range input.Items {
		total = total.Add(itemSubtotal(item))
	}
	if input.TotalAmount != nil {
		total = *input.TotalAmount
	}
	booking.TotalAmount = total

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.GetCustomer(ctx, input.CustomerID); err != nil {
			return err
		}
		if err := repo.CreateBooking(ctx, booking); err != nil {
			return err
		}

		for _, itemInput := range input.Items {
			variant, err := repo.GetVariant(ctx, itemInput.VariantID)
			if err != nil {
				return err
			}

			item := &models.BookingItem{
				BookingID:   booking.ID,
				VariantID:   variant.ID,
				Quantity:    itemInput.Quantity,
				UnitPrice:   itemUnitPrice(itemInput),
				Subtotal:    itemSubtotal(itemInput),
				RentalStart: itemInput.RentalStart,
				RentalEnd:   itemInput.RentalEnd,
			}
			if err := repo.CreateItem(ctx, item); err != nil {
				return err
			}

			if err := s.applyStock(ctx, repo, booking, variant, itemInput); err != nil {
				return err
			}
			if err := s.createAutoTransaction(ctx, repo, booking, itemInput); err != nil {
				return err
			}
		}

		for _, txnInput := range input.Transactions {
			if _, err := s.createExplicitTransaction(ctx, repo, booking.ID, txnInput); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BookingsCreatedTotal.WithLabelValues(booking.BookingType.String()).Inc()
	ctx = s.logg.WithBookingID(ctx, booking.ID.String())
	s.logg.Info(ctx, "booking created")
	return s.Get(ctx, booking.ID)
}

// applyStock performs the conditional decrement and the status
// transition for one booking item. A failed guard is reported as
// insufficient inventory with the product and size named.
func (s *service) applyStock(ctx context.Context, repo *Repository, booking *models.Booking, variant *models.ProductVariant, item BookingItemInput) error {
	inv, err := repo.GetInventoryByVariant(ctx, variant.ID)
	if err != nil {
		return err
	}

	ok, err := repo.DecrementStock(ctx, variant.ID, item.Quantity)
	if err != nil {
		return err
	}
	if !ok {
		metrics.InsufficientStockTotal.Inc()
		product, perr := repo.GetProduct(ctx, variant.ProductID)
		productName := ""
		if perr == nil {
			productName = product.Name
		}
		sizeCode := ""
		if variant.Size != nil {
			sizeCode = variant.Size.Code
		}
		return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient inventory").WithDetails(map[string]any{
			"product":   productName,
			"size":      sizeCode,
			"available": inv.AvailableQuantity,
			"requested": item.Quantity,
		})
	}

	// Reload so the status transition sees the post-decrement quantity.
	inv, err = repo.GetInventoryByVariant(ctx, variant.ID)
	if err != nil {
		return err
	}
	inv.AvailabilityStatus = DeriveStatus(booking.BookingType, inv.AvailableQuantity, inv.AvailabilityStatus)
	if booking.BookingType == enums.BookingTypeRent && item.RentalEnd != nil {
		inv.ExpectedRestoreDate = item.RentalEnd
		inv.NextAvailabilityDate = item.RentalEnd
	}
	return repo.SaveInventory(ctx, inv)
}

func (s *service) createAutoTransaction(ctx context.Context, repo *Repository, booking *models.Booking, item BookingItemInput) error {
	txnType := enums.TransactionSale
	if booking.BookingType == enums.BookingTypeRent {
		txnType = enums.TransactionRentOut
	}

	txn := &models.InventoryTransaction{
		BookingID:       booking.ID,
		VariantID:       item.VariantID,
		TransactionType: txnType,
		Quantity:        item.Quantity,
		TransactionDate: s.now(),
		Status:          "ACTIVE",
		Notes:           fmt.Sprintf("Auto-generated transaction for booking ID: %s", booking.ID),
	}
	if booking.BookingType == enums.BookingTypeRent && item.RentalEnd != nil {
		txn.ExpectedReturnDate = item.RentalEnd
	}
	return repo.CreateTransaction(ctx, txn)
}

// createExplicitTransaction records a caller-supplied transaction. It
// never touches stock; only the item-driven path mutates inventory.
// Damage and penalty payloads attach only when the type is DAMAGE.
func (s *service) createExplicitTransaction(ctx context.Context, repo *Repository, bookingID uuid.UUID, input TransactionInput) (*models.InventoryTransaction, error) {
	if input.VariantID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction variant_id required")
	}
	if input.TransactionType == nil || !input.TransactionType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction type required")
	}
	if _, err := repo.GetVariant(ctx, *input.VariantID); err != nil {
		return nil, err
	}

	txn := &models.InventoryTransaction{
		BookingID:          bookingID,
		VariantID:          *input.VariantID,
		TransactionType:    *input.TransactionType,
		TransactionDate:    s.now(),
		ExpectedReturnDate: input.ExpectedReturnDate,
		ActualReturnDate:   input.ActualReturnDate,
		Status:             defaultBookingStatus,
	}
	if input.Quantity != nil {
		txn.Quantity = *input.Quantity
	}
	if input.TransactionDate != nil {
		txn.TransactionDate = *input.TransactionDate
	}
	if input.Status != nil {
		txn.Status = *input.Status
	}
	if input.Notes != nil {
		txn.Notes = *input.Notes
	}
	if err := repo.CreateTransaction(ctx, txn); err != nil {
		return nil, err
	}

	if txn.TransactionType == enums.TransactionDamage {
		if input.Damage != nil {
			if err := s.upsertDamage(ctx, repo, txn.ID, *input.Damage); err != nil {
				return nil, err
			}
		}
		if input.Penalty != nil {
			if err := s.upsertPenalty(ctx, repo, txn.ID, *input.Penalty); err != nil {
				return nil, err
			}
		}
	}
	return txn, nil
}

// updateTransaction applies the fields present in the input to an
// existing transaction. The transaction must belong to the booking
// being updated. Damage and penalty payloads attach here regardless of
// transaction type, unlike the create path.
func (s *service) updateTransaction(ctx context.Context, repo *Repository, bookingID uuid.UUID, input TransactionInput) error {
	txn, err := repo.GetTransaction(ctx, *input.ID)
	if err != nil {
		return err
	}
	if txn.BookingID != bookingID {
		return pkgerrors.New(pkgerrors.CodeValidation, "transaction does not belong to this booking")
	}

	if input.VariantID != nil {
		if _, err := repo.GetVariant(ctx, *input.VariantID); err != nil {
			return err
		}
		txn.VariantID = *input.VariantID
	}
	if input.TransactionType != nil {
		if !input.TransactionType.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid transaction type")
		}
		txn.TransactionType = *input.TransactionType
	}
	if input.Quantity != nil {
		txn.Quantity = *input.Quantity
	}
	if input.TransactionDate != nil {
		txn.TransactionDate = *input.TransactionDate
	}
	if input.ExpectedReturnDate != nil {
		txn.ExpectedReturnDate = input.ExpectedReturnDate
	}
	if input.ActualReturnDate != nil {
		txn.ActualReturnDate = input.ActualReturnDate
	}
	if input.Status != nil {
		txn.Status = *input.Status
	}
	if input.Notes != nil {
		txn.Notes = *input.Notes
	}
	if err := repo.SaveTransaction(ctx, txn); err != nil {
		return err
	}

	if input.Damage != nil {
		if err := s.upsertDamage(ctx, repo, txn.ID, *input.Damage); err != nil {
			return err
		}
	}
	if input.Penalty != nil {
		if err := s.upsertPenalty(ctx, repo, txn.ID, *input.Penalty); err != nil {
			return err
		}
	}
	return nil
}

// upsertDamage creates a damage record, or partially updates the one
// named by ID after checking it belongs to the transaction.
func (s *service) upsertDamage(ctx context.Context, repo *Repository, transactionID uuid.UUID, input DamageInput) error {
	if input.ID != nil {
		record, err := repo.GetDamageRecord(ctx, *input.ID)
		if err != nil {
			return err
		}
		if record.TransactionID != transactionID {
			return pkgerrors.New(pkgerrors.CodeValidation, "damage record does not belong to this transaction")
		}
		if input.Description != nil {
			record.Description = *input.Description
		}
		if input.RepairCost != nil {
			record.RepairCost = *input.RepairCost
		}
		return repo.SaveDamageRecord(ctx, record)
	}

	record := &models.DamageRecord{TransactionID: transactionID}
	if input.Description != nil {
		record.Description = *input.Description
	}
	if input.RepairCost != nil {
		record.RepairCost = *input.RepairCost
	}
	return repo.CreateDamageRecord(ctx, record)
}

// upsertPenalty creates or updates the single penalty attached to a
// transaction.
func (s *service) upsertPenalty(ctx context.Context, repo *Repository, transactionID uuid.UUID, input PenaltyInput) error {
	existing, err := repo.GetPenaltyByTransaction(ctx, transactionID)
	if err != nil {
		return err
	}
	if existing != nil {
		if input.Amount != nil {
			existing.Amount = *input.Amount
		}
		if input.Reason != nil {
			existing.Reason = *input.Reason
		}
		if input.IsPaid != nil {
			existing.IsPaid = *input.IsPaid
		}
		return repo.SavePenalty(ctx, existing)
	}

	penalty := &models.Penalty{TransactionID: transactionID}
	if input.Amount != nil {
		penalty.Amount = *input.Amount
	}
	if input.Reason != nil {
		penalty.Reason = *input.Reason
	}
	if input.IsPaid != nil {
		penalty.IsPaid = *input.IsPaid
	}
	return repo.CreatePenalty(ctx, penalty)
}

// Update edits booking fields and routes transaction payloads to
// create or update. Replacing the items list recreates the items and
// recomputes the total but deliberately does not return or re-reserve
// stock; inventory moves only at creation time or through explicit
// transactions.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateBookingInput) (*BookingDTO, error) {
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		booking, err := repo.GetBooking(ctx, id)
		if err != nil {
			return err
		}

		if input.CustomerID != nil {
			if _, err := repo.GetCustomer(ctx, *input.CustomerID); err != nil {
				return err
			}
			booking.CustomerID = *input.CustomerID
		}
		if input.BookingType != nil {
			booking.BookingType = *input.BookingType
		}
		if input.Status != nil {
			booking.Status = *input.Status
		}
		if input.Notes != nil {
			booking.Notes = *input.Notes
		}

		// An empty items list is treated as absent; only a non-empty
		// list replaces the stored items.
		if len(input.Items) > 0 {
			if err := repo.DeleteItemsByBooking(ctx, booking.ID); err != nil {
				return err
			}
			total := decimal.Zero
			for _, itemInput := range input.Items {
				if _, err := repo.GetVariant(ctx, itemInput.VariantID); err != nil {
					return err
				}
				item := &models.BookingItem{
					BookingID:   booking.ID,
					VariantID:   itemInput.VariantID,
					Quantity:    itemInput.Quantity,
					UnitPrice:   itemUnitPrice(itemInput),
					Subtotal:    itemSubtotal(itemInput),
					RentalStart: itemInput.RentalStart,
					RentalEnd:   itemInput.RentalEnd,
				}
				if err := repo.CreateItem(ctx, item); err != nil {
					return err
				}
				total = total.Add(item.Subtotal)
			}
			booking.TotalAmount = total
		} else if input.TotalAmount != nil {
			booking.TotalAmount = *input.TotalAmount
		}

		if err := repo.SaveBooking(ctx, booking); err != nil {
			return err
		}

		for _, txnInput := range input.Transactions {
			if txnInput.ID != nil {
				if err := s.updateTransaction(ctx, repo, booking.ID, txnInput); err != nil {
					return err
				}
				continue
			}
			if _, err := s.createExplicitTransaction(ctx, repo, booking.ID, txnInput); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithBookingID(ctx, id.String()), "booking updated")
	return s.Get(ctx, id)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*BookingDTO, error) {
	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.materialize(ctx, booking)
}

func (s *service) List(ctx context.Context) ([]BookingDTO, error) {
	bookings, err := s.repo.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]BookingDTO, 0, len(bookings))
	for i := range bookings {
		dto, err := s.materialize(ctx, &bookings[i])
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

// materialize assembles the full booking aggregate: items with product
// and size names, transactions with their damage records fetched in
// one grouped query, and penalties.
func (s *service) materialize(ctx context.Context, booking *models.Booking) (*BookingDTO, error) {
	dto := &BookingDTO{
		ID:          booking.ID,
		CustomerID:  booking.CustomerID,
		BookingType: booking.BookingType,
		Status:      booking.Status,
		BookingDate: booking.BookingDate,
		TotalAmount: booking.TotalAmount,
		Notes:       booking.Notes,
		CreatedAt:   booking.CreatedAt,
		UpdatedAt:   booking.UpdatedAt,
	}

	if customer, err := s.repo.GetCustomer(ctx, booking.CustomerID); err == nil {
		dto.CustomerName = customer.Name
	}

	items, err := s.repo.ItemsByBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	dto.Items = make([]BookingItemDTO, 0, len(items))
	for i := range items {
		item := &items[i]
		itemDTO := BookingItemDTO{
			ID:          item.ID,
			VariantID:   item.VariantID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
			RentalStart: item.RentalStart,
			RentalEnd:   item.RentalEnd,
		}
		if item.Variant != nil {
			if product, err := s.repo.GetProduct(ctx, item.Variant.ProductID); err == nil {
				itemDTO.ProductName = product.Name
			}
			if item.Variant.Size != nil {
				itemDTO.SizeCode = item.Variant.Size.Code
			}
		}
		dto.Items = append(dto.Items, itemDTO)
	}

	txns, err := s.repo.TransactionsByBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	txnIDs := make([]uuid.UUID, 0, len(txns))
	for i := range txns {
		txnIDs = append(txnIDs, txns[i].ID)
	}
	damagesByTxn, err := s.repo.DamageRecordsByTransactions(ctx, txnIDs)
	if err != nil {
		return nil, err
	}
	penaltiesByTxn, err := s.repo.PenaltiesByTransactions(ctx, txnIDs)
	if err != nil {
		return nil, err
	}

	dto.Transactions = make([]TransactionDTO, 0, len(txns))
	for i := range txns {
		txn := &txns[i]
		dto.Transactions = append(dto.Transactions, toTransactionDTO(txn, damagesByTxn[txn.ID], penaltiesByTxn[txn.ID]))
	}
	return dto, nil
}
