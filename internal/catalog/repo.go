package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

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

func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}
	return nil
}

func (r *Repository) SaveProduct(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving product")
	}
	return nil
}

// GetProduct loads a product with its variants, sizes and inventory.
// Soft-deleted products stay readable; callers see is_active.
func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Preload("Variants.Size").
		Preload("Variants.Inventory").
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching product")
	}
	return &product, nil
}

func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Preload("Variants.Size").
		Preload("Variants.Inventory").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	return products, nil
}

func (r *Repository) CreateVariant(ctx context.Context, variant *models.ProductVariant) error {
	if err := r.db.WithContext(ctx).Create(variant).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating variant")
	}
	return nil
}

func (r *Repository) SaveVariant(ctx context.Context, variant *models.ProductVariant) error {
	if err := r.db.WithContext(ctx).Save(variant).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving variant")
	}
	return nil
}

func (r *Repository) GetVariant(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Preload("Size").
		Preload("Inventory").
		First(&variant, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching variant")
	}
	return &variant, nil
}

// DeleteVariantCascade removes a variant and everything hanging off it,
// children first so foreign keys never dangle.
func (r *Repository) DeleteVariantCascade(ctx context.Context, variantID uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("variant_id = ?", variantID).Delete(&models.Inventory{}).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting inventory")
	}
	if err := db.Where("variant_id = ?", variantID).Delete(&models.RentPrice{}).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting rent prices")
	}
	if err := db.Where("variant_id = ?", variantID).Delete(&models.SalePrice{}).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting sale prices")
	}
	if err := db.Delete(&models.ProductVariant{}, "id = ?", variantID).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting variant")
	}
	return nil
}

func (r *Repository) CreateInventory(ctx context.Context, inv *models.Inventory) error {
	if err := r.db.WithContext(ctx).Create(inv).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating inventory")
	}
	return nil
}

func (r *Repository) SaveInventory(ctx context.Context, inv *models.Inventory) error {
	if err := r.db.WithContext(ctx).Save(inv).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving inventory")
	}
	return nil
}

func (r *Repository) GetInventoryByVariant(ctx context.Context, variantID uuid.UUID) (*models.Inventory, error) {
	var inv models.Inventory
	err := r.db.WithContext(ctx).First(&inv, "variant_id = ?", variantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching inventory")
	}
	return &inv, nil
}

func (r *Repository) CreateRentPrice(ctx context.Context, price *models.RentPrice) error {
	if err := r.db.WithContext(ctx).Create(price).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating rent price")
	}
	return nil
}

func (r *Repository) SaveRentPrice(ctx context.Context, price *models.RentPrice) error {
	if err := r.db.WithContext(ctx).Save(price).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving rent price")
	}
	return nil
}

func (r *Repository) CreateSalePrice(ctx context.Context, price *models.SalePrice) error {
	if err := r.db.WithContext(ctx).Create(price).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating sale price")
	}
	return nil
}

func (r *Repository) SaveSalePrice(ctx context.Context, price *models.SalePrice) error {
	if err := r.db.WithContext(ctx).Save(price).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving sale price")
	}
	return nil
}

// FindCurrentRentPrice resolves the rent price in effect at the given
// time. The newest effective_from wins when windows overlap.
func (r *Repository) FindCurrentRentPrice(ctx context.Context, variantID uuid.UUID, at time.Time) (*models.RentPrice, error) {
	var price models.RentPrice
	err := r.db.WithContext(ctx).
		Where("variant_id = ? AND effective_from <= ? AND (effective_to IS NULL OR effective_to >= ?)", variantID, at, at).
		Order("effective_from DESC").
		First(&price).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving rent price")
	}
	return &price, nil
}

func (r *Repository) FindCurrentSalePrice(ctx context.Context, variantID uuid.UUID, at time.Time) (*models.SalePrice, error) {
	var price models.SalePrice
	err := r.db.WithContext(ctx).
		Where("variant_id = ? AND effective_from <= ? AND (effective_to IS NULL OR effective_to >= ?)", variantID, at, at).
		Order("effective_from DESC").
		First(&price).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving sale price")
	}
	return &price, nil
}

func (r *Repository) GetSize(ctx context.Context, id uuid.UUID) (*models.ProductSize, error) {
	var size models.ProductSize
	err := r.db.WithContext(ctx).First(&size, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "size not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching size")
	}
	return &size, nil
}

func (r *Repository) ListSizes(ctx context.Context) ([]models.ProductSize, error) {
	var sizes []models.ProductSize
	err := r.db.WithContext(ctx).Order("sort_order ASC").Find(&sizes).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing sizes")
	}
	return sizes, nil
}
