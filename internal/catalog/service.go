package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentalhq/rental-backend/pkg/db"
	"github.com/rentalhq/rental-backend/pkg/db/models"
	pkgerrors "github.com/rentalhq/rental-backend/pkg/errors"
	"github.com/rentalhq/rental-backend/pkg/logger"
)

type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context) ([]ProductDTO, error)
	ListSizes(ctx context.Context) ([]SizeDTO, error)
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
		return nil, fmt.Errorf("catalog repository required")
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

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	product := &models.Product{
		Name:          input.Name,
		Category:      input.Category,
		Description:   input.Description,
		DepositAmount: input.DepositAmount,
		IsForSale:     input.IsForSale,
		IsForRent:     input.IsForRent,
		IsActive:      true,
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateProduct(ctx, product); err != nil {
			return err
		}
		for _, vi := range input.Variants {
			if err := s.provisionVariant(ctx, repo, product, vi); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithField(ctx, "product_id", product.ID.String()), "product created")
	return s.GetProduct(ctx, product.ID)
}

// provisionVariant creates a variant plus its inventory row and opening
// price records. Price rows are only created when the product's flags
// allow that channel.
func (s *service) provisionVariant(ctx context.Context, repo *Repository, product *models.Product, vi VariantInput) error {
	if _, err := repo.GetSize(ctx, vi.SizeID); err != nil {
		return err
	}

	variant := &models.ProductVariant{
		ProductID:     product.ID,
		SizeID:        vi.SizeID,
		PurchasePrice: vi.PurchasePrice,
	}
	if err := repo.CreateVariant(ctx, variant); err != nil {
		return err
	}

	inv := &models.Inventory{
		VariantID:            variant.ID,
		AvailableQuantity:    vi.Quantity,
		AvailabilityStatus:   vi.AvailabilityStatus,
		ExpectedRestoreDate:  vi.ExpectedRestoreDate,
		NextAvailabilityDate: vi.NextAvailabilityDate,
	}
	if err := repo.CreateInventory(ctx, inv); err != nil {
		return err
	}

	if product.IsForRent && vi.RentPrice != nil {
		price := &models.RentPrice{
			VariantID:     variant.ID,
			Amount:        *vi.RentPrice,
			EffectiveFrom: effectiveOrNow(vi.RentEffectiveFrom, s.now),
			EffectiveTo:   vi.RentEffectiveTo,
		}
		if err := repo.CreateRentPrice(ctx, price); err != nil {
			return err
		}
	}
	if product.IsForSale && vi.SalePrice != nil {
		price := &models.SalePrice{
			VariantID:     variant.ID,
			Amount:        *vi.SalePrice,
			EffectiveFrom: effectiveOrNow(vi.SaleEffectiveFrom, s.now),
			EffectiveTo:   vi.SaleEffectiveTo,
		}
		if err := repo.CreateSalePrice(ctx, price); err != nil {
			return err
		}
	}
	return nil
}

func effectiveOrNow(from *time.Time, now func() time.Time) time.Time {
	if from != nil {
		return *from
	}
	return now()
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		product, err := repo.GetProduct(ctx, id)
		if err != nil {
			return err
		}

		applyUpdateToProduct(product, input)
		if err := repo.SaveProduct(ctx, product); err != nil {
			return err
		}

		if input.Variants == nil {
			return nil
		}
		return s.reconcileVariants(ctx, repo, product, input.Variants)
	})
	if err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

// reconcileVariants diffs the incoming variant set against the stored
// one by size id. Existing sizes get their stock and current price
// overwritten in place, new sizes are provisioned, and sizes absent
// from the input are cascade deleted.
func (s *service) reconcileVariants(ctx context.Context, repo *Repository, product *models.Product, inputs []VariantInput) error {
	existingBySize := make(map[uuid.UUID]*models.ProductVariant, len(product.Variants))
	for i := range product.Variants {
		existingBySize[product.Variants[i].SizeID] = &product.Variants[i]
	}

	seen := make(map[uuid.UUID]bool, len(inputs))
	for _, vi := range inputs {
		seen[vi.SizeID] = true

		existing, ok := existingBySize[vi.SizeID]
		if !ok {
			if err := s.provisionVariant(ctx, repo, product, vi); err != nil {
				return err
			}
			continue
		}
		if err := s.overwriteVariant(ctx, repo, existing, vi); err != nil {
			return err
		}
	}

	for sizeID, variant := range existingBySize {
		if seen[sizeID] {
			continue
		}
		if err := repo.DeleteVariantCascade(ctx, variant.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) overwriteVariant(ctx context.Context, repo *Repository, variant *models.ProductVariant, vi VariantInput) error {
	variant.PurchasePrice = vi.PurchasePrice
	if err := repo.SaveVariant(ctx, variant); err != nil {
		return err
	}

	// The inventory row is fetched-or-created and overwritten
	// wholesale, no merge with the stored state.
	inv, err := repo.GetInventoryByVariant(ctx, variant.ID)
	if err != nil {
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
			return err
		}
		inv = &models.Inventory{VariantID: variant.ID}
	}
	inv.AvailableQuantity = vi.Quantity
	inv.AvailabilityStatus = vi.AvailabilityStatus
	inv.ExpectedRestoreDate = vi.ExpectedRestoreDate
	inv.NextAvailabilityDate = vi.NextAvailabilityDate
	if err := repo.SaveInventory(ctx, inv); err != nil {
		return err
	}

	now := s.now()
	if vi.RentPrice != nil {
		current, err := repo.FindCurrentRentPrice(ctx, variant.ID, now)
		if err != nil {
			return err
		}
		if current != nil {
			current.Amount = *vi.RentPrice
			current.EffectiveTo = vi.RentEffectiveTo
			if err := repo.SaveRentPrice(ctx, current); err != nil {
				return err
			}
		} else {
			price := &models.RentPrice{
				VariantID:     variant.ID,
				Amount:        *vi.RentPrice,
				EffectiveFrom: effectiveOrNow(vi.RentEffectiveFrom, s.now),
				EffectiveTo:   vi.RentEffectiveTo,
			}
			if err := repo.CreateRentPrice(ctx, price); err != nil {
				return err
			}
		}
	}
	if vi.SalePrice != nil {
		current, err := repo.FindCurrentSalePrice(ctx, variant.ID, now)
		if err != nil {
			return err
		}
		if current != nil {
			current.Amount = *vi.SalePrice
			current.EffectiveTo = vi.SaleEffectiveTo
			if err := repo.SaveSalePrice(ctx, current); err != nil {
				return err
			}
		} else {
			price := &models.SalePrice{
				VariantID:     variant.ID,
				Amount:        *vi.SalePrice,
				EffectiveFrom: effectiveOrNow(vi.SaleEffectiveFrom, s.now),
				EffectiveTo:   vi.SaleEffectiveTo,
			}
			if err := repo.CreateSalePrice(ctx, price); err != nil {
				return err
			}
		}
	}
	return nil
}

// DeleteProduct removes every variant and its dependents, then marks
// the product inactive. The product row itself stays for history.
func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		product, err := repo.GetProduct(ctx, id)
		if err != nil {
			return err
		}
		for i := range product.Variants {
			if err := repo.DeleteVariantCascade(ctx, product.Variants[i].ID); err != nil {
				return err
			}
		}
		product.IsActive = false
		product.Variants = nil
		return repo.SaveProduct(ctx, product)
	})
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toProductDTO(ctx, product)
}

func (s *service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dto, err := s.toProductDTO(ctx, &products[i])
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

func (s *service) ListSizes(ctx context.Context) ([]SizeDTO, error) {
	sizes, err := s.repo.ListSizes(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]SizeDTO, 0, len(sizes))
	for i := range sizes {
		dtos = append(dtos, toSizeDTO(&sizes[i]))
	}
	return dtos, nil
}

func (s *service) toProductDTO(ctx context.Context, product *models.Product) (*ProductDTO, error) {
	now := s.now()
	dto := &ProductDTO{
		ID:            product.ID,
		Name:          product.Name,
		Category:      product.Category,
		Description:   product.Description,
		DepositAmount: product.DepositAmount,
		IsForSale:     product.IsForSale,
		IsForRent:     product.IsForRent,
		IsActive:      product.IsActive,
		Variants:      make([]VariantDTO, 0, len(product.Variants)),
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}

	for i := range product.Variants {
		variant := &product.Variants[i]
		vdto := VariantDTO{
			ID:            variant.ID,
			SizeID:        variant.SizeID,
			PurchasePrice: variant.PurchasePrice,
		}
		if variant.Size != nil {
			vdto.SizeCode = variant.Size.Code
			vdto.SizeLabel = variant.Size.Label
		}
		if variant.Inventory != nil {
			vdto.AvailableQuantity = variant.Inventory.AvailableQuantity
			vdto.AvailabilityStatus = variant.Inventory.AvailabilityStatus
		}

		rent, err := s.repo.FindCurrentRentPrice(ctx, variant.ID, now)
		if err != nil {
			return nil, err
		}
		if rent != nil {
			amount := rent.Amount
			vdto.CurrentRentPrice = &amount
		}
		sale, err := s.repo.FindCurrentSalePrice(ctx, variant.ID, now)
		if err != nil {
			return nil, err
		}
		if sale != nil {
			amount := sale.Amount
			vdto.CurrentSalePrice = &amount
		}

		dto.Variants = append(dto.Variants, vdto)
	}
	return dto, nil
}
