package bookings

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rentalhq/rental-backend/pkg/db"
	"github.com/rentalhq/rental-backend/pkg/db/models"
	"github.com/rentalhq/rental-backend/pkg/enums"
	"github.com/rentalhq/rental-backend/pkg/logger"
)

func newTestDB(t *testing.T) (*db.Client, *gorm.DB) {
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
	return client, gdb
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	client, gdb := newTestDB(t)
	repo, err := NewRepository(gdb)
	if err != nil {
		t.Fatalf("building repository: %v", err)
	}
	logg := logger.New(logger.Options{ServiceName: "test"})
	svc, err := NewService(client, repo, logg)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc, gdb
}

type fixture struct {
	customer models.Customer
	product  models.Product
	size     models.ProductSize
	variant  models.ProductVariant
}

// seedFixture creates a customer plus one product variant with the
// given opening stock.
func seedFixture(t *testing.T, gdb *gorm.DB, quantity int) fixture {
	t.Helper()

	f := fixture{
		customer: models.Customer{Name: "Asha Verma", MobileNumber: "9876543210"},
		product:  models.Product{Name: "Sherwani Classic", IsForRent: true, IsActive: true},
		size:     models.ProductSize{Code: "M", Label: "Medium", SortOrder: 30},
	}
	if err := gdb.Create(&f.customer).Error; err != nil {
		t.Fatalf("seeding customer: %v", err)
	}
	if err := gdb.Create(&f.product).Error; err != nil {
		t.Fatalf("seeding product: %v", err)
	}
	if err := gdb.Create(&f.size).Error; err != nil {
		t.Fatalf("seeding size: %v", err)
	}

	f.variant = models.ProductVariant{
		ProductID:     f.product.ID,
		SizeID:        f.size.ID,
		PurchasePrice: decimal.NewFromInt(4500),
	}
	if err := gdb.Create(&f.variant).Error; err != nil {
		t.Fatalf("seeding variant: %v", err)
	}

	inv := models.Inventory{
		VariantID:          f.variant.ID,
		AvailableQuantity:  quantity,
		AvailabilityStatus: enums.AvailabilityAvailable,
	}
	if err := gdb.Create(&inv).Error; err != nil {
		t.Fatalf("seeding inventory: %v", err)
	}
	return f
}

func loadInventory(t *testing.T, gdb *gorm.DB, f fixture) models.Inventory {
	t.Helper()
	var inv models.Inventory
	if err := gdb.First(&inv, "variant_id = ?", f.variant.ID).Error; err != nil {
		t.Fatalf("loading inventory: %v", err)
	}
	return inv
}

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}
