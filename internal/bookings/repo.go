package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentalhq/rental-backend/pkg/db/models"
	pkgerrors "github.com/rentalhq/rental-backend/pkg/errors"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) (*Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	return &Repository{db: db}, nil
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating booking")
	}
	return nil
}

func (r *Repository) SaveBooking(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Save(booking).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving booking")
	}
	return nil
}

func (r *Repository) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching booking")
	}
	return &booking, nil
}

func (r *Repository) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&bookings).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing bookings")
	}
	return bookings, nil
}

func (r *Repository) CreateItem(ctx context.Context, item *models.BookingItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating booking item")
	}
	return nil
}

func (r *Repository) ItemsByBooking(ctx context.Context, bookingID uuid.UUID) ([]models.BookingItem, error) {
	var items []models.BookingItem
	err := r.db.WithContext(ctx).
		Preload("Variant").
		Preload("Variant.Size").
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing booking items")
	}
	return items, nil
}

func (r *Repository) DeleteItemsByBooking(ctx context.Context, bookingID uuid.UUID) error {
	err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).Delete(&models.BookingItem{}).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting booking items")
	}
	return nil
}

func (r *Repository) GetVariant(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).Preload("Size").First(&variant, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching variant")
	}
	return &variant, nil
}

func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching product")
	}
	return &product, nil
}

func (r *Repository) GetInventoryByVariant(ctx context.Context, variantID uuid.UUID) (*models.Inventory, error) {
	var inv models.Inventory
	err := r.db.WithContext(ctx).First(&inv, "variant_id = ?", variantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory not found for variant")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching inventory")
	}
	return &inv, nil
}

// DecrementStock decrements a variant's available quantity only when
// enough stock remains, in a single statement. Returns false when the
// guard failed, meaning the stock was insufficient at execution time.
func (r *Repository) DecrementStock(ctx context.Context, variantID uuid.UUID, quantity int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Inventory{}).
		Where("variant_id = ? AND available_quantity >= ?", variantID, quantity).
		UpdateColumn("available_quantity", gorm.Expr("available_quantity - ?", quantity))
	if res.Error != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, res.Error, "decrementing stock")
	}
	return res.RowsAffected > 0, nil
}

func (r *Repository) SaveInventory(ctx context.Context, inv *models.Inventory) error {
	if err := r.db.WithContext(ctx).Save(inv).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving inventory")
	}
	return nil
}

func (r *Repository) CreateTransaction(ctx context.Context, txn *models.InventoryTransaction) error {
	if err := r.db.WithContext(ctx).Create(txn).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating inventory transaction")
	}
	return nil
}

func (r *Repository) SaveTransaction(ctx context.Context, txn *models.InventoryTransaction) error {
	if err := r.db.WithContext(ctx).Save(txn).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving inventory transaction")
	}
	return nil
}

func (r *Repository) GetTransaction(ctx context.Context, id uuid.UUID) (*models.InventoryTransaction, error) {
	var txn models.InventoryTransaction
	err := r.db.WithContext(ctx).First(&txn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching transaction")
	}
	return &txn, nil
}

func (r *Repository) TransactionsByBooking(ctx context.Context, bookingID uuid.UUID) ([]models.InventoryTransaction, error) {
	var txns []models.InventoryTransaction
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&txns).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing transactions")
	}
	return txns, nil
}

func (r *Repository) CreateDamageRecord(ctx context.Context, record *models.DamageRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating damage record")
	}
	return nil
}

func (r *Repository) SaveDamageRecord(ctx context.Context, record *models.DamageRecord) error {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving damage record")
	}
	return nil
}

func (r *Repository) GetDamageRecord(ctx context.Context, id uuid.UUID) (*models.DamageRecord, error) {
	var record models.DamageRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "damage record not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching damage record")
	}
	return &record, nil
}

// DamageRecordsByTransactions fetches every damage record for a set of
// transactions in one query, grouped by transaction id in memory.
func (r *Repository) DamageRecordsByTransactions(ctx context.Context, transactionIDs []uuid.UUID) (map[uuid.UUID][]models.DamageRecord, error) {
	grouped := make(map[uuid.UUID][]models.DamageRecord)
	if len(transactionIDs) == 0 {
		return grouped, nil
	}
	var records []models.DamageRecord
	err := r.db.WithContext(ctx).
		Where("transaction_id IN ?", transactionIDs).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing damage records")
	}
	for i := range records {
		grouped[records[i].TransactionID] = append(grouped[records[i].TransactionID], records[i])
	}
	return grouped, nil
}

func (r *Repository) CreatePenalty(ctx context.Context, penalty *models.Penalty) error {
	if err := r.db.WithContext(ctx).Create(penalty).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating penalty")
	}
	return nil
}

func (r *Repository) SavePenalty(ctx context.Context, penalty *models.Penalty) error {
	if err := r.db.WithContext(ctx).Save(penalty).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving penalty")
	}
	return nil
}

func (r *Repository) GetPenaltyByTransaction(ctx context.Context, transactionID uuid.UUID) (*models.Penalty, error) {
	var penalty models.Penalty
	err := r.db.WithContext(ctx).First(&penalty, "transaction_id = ?", transactionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching penalty")
	}
	return &penalty, nil
}

func (r *Repository) PenaltiesByTransactions(ctx context.Context, transactionIDs []uuid.UUID) (map[uuid.UUID]*models.Penalty, error) {
	grouped := make(map[uuid.UUID]*models.Penalty)
	if len(transactionIDs) == 0 {
		return grouped, nil
	}
	var penalties []models.Penalty
	err := r.db.WithContext(ctx).
		Where("transaction_id IN ?", transactionIDs).
		Find(&penalties).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing penalties")
	}
	for i := range penalties {
		grouped[penalties[i].TransactionID] = &penalties[i]
	}
	return grouped, nil
}

func (r *Repository) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching customer")
	}
	return &customer, nil
}
