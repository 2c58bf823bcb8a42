package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/rentalhq/rental-backend/api/routes"
	internalauth "github.com/rentalhq/rental-backend/internal/auth"
	"github.com/rentalhq/rental-backend/internal/bookings"
	"github.com/rentalhq/rental-backend/internal/catalog"
	"github.com/rentalhq/rental-backend/internal/customers"
	"github.com/rentalhq/rental-backend/internal/users"
	pkgauth "github.com/rentalhq/rental-backend/pkg/auth"
	"github.com/rentalhq/rental-backend/pkg/auth/session"
	"github.com/rentalhq/rental-backend/pkg/config"
	"github.com/rentalhq/rental-backend/pkg/db"
	"github.com/rentalhq/rental-backend/pkg/logger"
	"github.com/rentalhq/rental-backend/pkg/migrate"
	"github.com/rentalhq/rental-backend/pkg/redis"
	"github.com/rentalhq/rental-backend/pkg/security"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		stderrExit("loading config", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "rental-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite)
	if err != nil {
		logg.Error(ctx, "connecting to database", err)
		os.Exit(1)
	}

	if ran, err := migrate.MaybeRunDev(ctx, cfg, dbClient); err != nil {
		logg.Error(ctx, "running dev migrations", err)
		os.Exit(1)
	} else if ran {
		logg.Info(ctx, "dev migrations applied")
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		logg.Error(ctx, "connecting to redis", err)
		os.Exit(1)
	}

	tokens, err := pkgauth.NewTokenManager(cfg.JWT)
	if err != nil {
		logg.Error(ctx, "building token manager", err)
		os.Exit(1)
	}
	sessions, err := session.NewManager(redisClient.Cmdable(), tokens.TTL())
	if err != nil {
		logg.Error(ctx, "building session manager", err)
		os.Exit(1)
	}
	hasher := security.NewHasher(cfg.Password)

	gdb := dbClient.Gorm()
	userRepo, err := users.NewRepository(gdb)
	if err != nil {
		logg.Error(ctx, "building user repository", err)
		os.Exit(1)
	}
	customerRepo, err := customers.NewRepository(gdb)
	if err != nil {
		logg.Error(ctx, "building customer repository", err)
		os.Exit(1)
	}
	catalogRepo, err := catalog.NewRepository(gdb)
	if err != nil {
		logg.Error(ctx, "building catalog repository", err)
		os.Exit(1)
	}
	bookingRepo, err := bookings.NewRepository(gdb)
	if err != nil {
		logg.Error(ctx, "building booking repository", err)
		os.Exit(1)
	}

	authService, err := internalauth.NewService(userRepo, hasher, tokens, sessions, logg)
	if err != nil {
		logg.Error(ctx, "building auth service", err)
		os.Exit(1)
	}
	customerService, err := customers.NewService(dbClient, customerRepo, userRepo, logg)
	if err != nil {
		logg.Error(ctx, "building customer service", err)
		os.Exit(1)
	}
	catalogService, err := catalog.NewService(dbClient, catalogRepo, logg)
	if err != nil {
		logg.Error(ctx, "building catalog service", err)
		os.Exit(1)
	}
	bookingService, err := bookings.NewService(dbClient, bookingRepo, logg)
	if err != nil {
		logg.Error(ctx, "building booking service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Dependencies{
		Config:          cfg,
		Logger:          logg,
		Tokens:          tokens,
		Sessions:        sessions,
		DBPinger:        dbClient,
		RedisPinger:     redisClient,
		AuthService:     authService,
		BookingService:  bookingService,
		CatalogService:  catalogService,
		CustomerService: customerService,
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.Info(logg.WithField(ctx, "port", cfg.App.Port), "server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "server stopped", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logg.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
	closeErr = multierr.Append(closeErr, dbClient.Close())
	closeErr = multierr.Append(closeErr, redisClient.Close())
	if closeErr != nil {
		logg.Error(ctx, "shutdown errors", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "shutdown complete")
}

func stderrExit(msg string, err error) {
	os.Stderr.WriteString(msg + ": " + err.Error() + "\n")
	os.Exit(1)
}
