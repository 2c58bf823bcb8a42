package main

import (
	"context"
	"database/sql"
	"flag"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/rentalhq/rental-backend/pkg/config"
	"github.com/rentalhq/rental-backend/pkg/logger"
	"github.com/rentalhq/rental-backend/pkg/migrate"
)

func main() {
	_ = godotenv.Load()

	dir := flag.String("dir", migrate.DefaultDir, "migrations directory")
	version := flag.Int64("to", -1, "migrate to an exact version instead of latest")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "rental-migrate"})
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "loading config", err)
		os.Exit(1)
	}

	sqlDB, err := sql.Open("postgres", cfg.DB.DSN)
	if err != nil {
		logg.Error(ctx, "opening database", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if *version >= 0 {
		if err := migrate.MigrateToVersion(ctx, sqlDB, *dir, *version); err != nil {
			logg.Error(ctx, "migrating to version", err)
			os.Exit(1)
		}
		logg.Info(ctx, "migrated to requested version")
		return
	}

	if err := migrate.Run(ctx, sqlDB, *dir); err != nil {
		logg.Error(ctx, "running migrations", err)
		os.Exit(1)
	}
	logg.Info(ctx, "migrations applied")
}
