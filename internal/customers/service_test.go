package customers

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rentalhq/rental-backend/internal/users"
	"github.com/rentalhq/rental-backend/pkg/db"
	"github.com/rentalhq/rental-backend/pkg/db/models"
	"github.com/rentalhq/rental-backend/pkg/enums"
	pkgerrors "github.com/rentalhq/rental-backend/pkg/errors"
	"github.com/rentalhq/rental-backend/pkg/logger"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("getting sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := gdb.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	client, err := db.FromGorm(gdb)
	if err != nil {
		t.Fatalf("wrapping gorm handle: %v", err)
	}
	repo, err := NewRepository(gdb)
	if err != nil {
		t.Fatalf("building repository: %v", err)
	}
	userRepo, err := users.NewRepository(gdb)
	if err != nil {
		t.Fatalf("building user repository: %v", err)
	}
	svc, err := NewService(client, repo, userRepo, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc, gdb
}

func TestCreateAndGetCustomer(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCustomerInput{
		Name:         "Ravi Kumar",
		MobileNumber: "9876543210",
		Email:        "ravi@example.com",
		Address:      "12 MG Road",
	})
	if err != nil {
		t.Fatalf("creating customer: %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("fetching customer: %v", err)
	}
	if got.Name != "Ravi Kumar" || got.Email != "ravi@example.com" {
		t.Fatalf("customer = %+v", got)
	}
}

func TestUpdateCustomerPartial(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCustomerInput{
		Name:         "Ravi Kumar",
		MobileNumber: "9876543210",
		Email:        "ravi@example.com",
		Address:      "12 MG Road",
		IDProofType:  "AADHAAR",
		IDProofNo:    "1234-5678-9012",
	})
	if err != nil {
		t.Fatalf("creating customer: %v", err)
	}

	address := "45 Brigade Road"
	updated, err := svc.Update(ctx, created.ID, UpdateCustomerInput{Address: &address})
	if err != nil {
		t.Fatalf("updating customer: %v", err)
	}

	if updated.Address != "45 Brigade Road" {
		t.Fatalf("address = %q, want updated", updated.Address)
	}
	if updated.Name != "Ravi Kumar" || updated.MobileNumber != "9876543210" ||
		updated.Email != "ravi@example.com" || updated.IDProofType != "AADHAAR" ||
		updated.IDProofNo != "1234-5678-9012" {
		t.Fatalf("partial update touched other fields: %+v", updated)
	}
}

func TestCreateCustomerUnknownUserLink(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	missing := uuid.New()
	_, err := svc.Create(ctx, CreateCustomerInput{
		Name:         "Ravi Kumar",
		MobileNumber: "9876543210",
		UserID:       &missing,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("error = %v, want NOT_FOUND for unknown user", err)
	}
}

func TestUpdateCustomerLinksUser(t *testing.T) {
	svc, gdb := newTestService(t)
	ctx := context.Background()

	user := models.User{Email: "staff@example.com", PasswordHash: "x", Role: enums.RoleStaff, IsActive: true}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("seeding user: %v", err)
	}

	created, err := svc.Create(ctx, CreateCustomerInput{Name: "Ravi Kumar", MobileNumber: "9876543210"})
	if err != nil {
		t.Fatalf("creating customer: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, UpdateCustomerInput{UserID: &user.ID})
	if err != nil {
		t.Fatalf("linking user: %v", err)
	}
	if updated.UserID == nil || *updated.UserID != user.ID {
		t.Fatalf("user link = %v, want %s", updated.UserID, user.ID)
	}
}
