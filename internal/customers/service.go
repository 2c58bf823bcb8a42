package customers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentalhq/rental-backend/internal/users"
	"github.com/rentalhq/rental-backend/pkg/db"
	"github.com/rentalhq/rental-backend/pkg/db/models"
	"github.com/rentalhq/rental-backend/pkg/logger"
)

type Service interface {
	Create(ctx context.Context, input CreateCustomerInput) (*CustomerDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*CustomerDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*CustomerDTO, error)
	List(ctx context.Context) ([]CustomerDTO, error)
}

type service struct {
	dbClient *db.Client
	repo     *Repository
	users    *users.Repository
	logg     *logger.Logger
}

func NewService(dbClient *db.Client, repo *Repository, userRepo *users.Repository, logg *logger.Logger) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{dbClient: dbClient, repo: repo, users: userRepo, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input CreateCustomerInput) (*CustomerDTO, error) {
	customer := &models.Customer{
		UserID:         input.UserID,
		Name:           input.Name,
		MobileNumber:   input.MobileNumber,
		WhatsappNumber: input.WhatsappNumber,
		Email:          input.Email,
		Address:        input.Address,
		IDProofType:    input.IDProofType,
		IDProofNo:      input.IDProofNo,
		IDProofImage:   input.IDProofImage,
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if input.UserID != nil {
			if _, err := s.users.WithTx(tx).GetByID(ctx, *input.UserID); err != nil {
				return err
			}
		}
		return s.repo.WithTx(tx).Create(ctx, customer)
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithField(ctx, "customer_id", customer.ID.String()), "customer created")
	return toCustomerDTO(customer), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*CustomerDTO, error) {
	var updated *models.Customer
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		customer, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if input.UserID != nil {
			if _, err := s.users.WithTx(tx).GetByID(ctx, *input.UserID); err != nil {
				return err
			}
		}
		applyUpdateToCustomer(customer, input)
		customer.UpdatedAt = time.Now().UTC()
		if err := repo.Save(ctx, customer); err != nil {
			return err
		}
		updated = customer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCustomerDTO(updated), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*CustomerDTO, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCustomerDTO(customer), nil
}

func (s *service) List(ctx context.Context) ([]CustomerDTO, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]CustomerDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *toCustomerDTO(&records[i]))
	}
	return dtos, nil
}
