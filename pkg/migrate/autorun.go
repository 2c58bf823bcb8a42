package migrate

import (
	"context"
	"fmt"

	"github.com/rentalhq/rental-backend/pkg/config"
	"github.com/rentalhq/rental-backend/pkg/db"
)

// MaybeRunDev applies migrations on startup when running in development
// with the auto-migrate flag on. Production deploys run cmd/migrate
// explicitly.
func MaybeRunDev(ctx context.Context, cfg *config.Config, client *db.Client) (bool, error) {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return false, nil
	}
	sqlDB, err := client.Gorm().DB()
	if err != nil {
		return false, fmt.Errorf("getting sql.DB handle: %w", err)
	}
	if err := Run(ctx, sqlDB, DefaultDir); err != nil {
		return false, err
	}
	return true, nil
}
