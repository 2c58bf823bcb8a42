package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rentalhq/rental-backend/api/controllers"
	"github.com/rentalhq/rental-backend/api/middleware"
	"github.com/rentalhq/rental-backend/internal/auth"
	"github.com/rentalhq/rental-backend/internal/bookings"
	"github.com/rentalhq/rental-backend/internal/catalog"
	"github.com/rentalhq/rental-backend/internal/customers"
	pkgauth "github.com/rentalhq/rental-backend/pkg/auth"
	"github.com/rentalhq/rental-backend/pkg/auth/session"
	"github.com/rentalhq/rental-backend/pkg/config"
	"github.com/rentalhq/rental-backend/pkg/logger"
)

type Dependencies struct {
	Config      *config.Config
	Logger      *logger.Logger
	Tokens      *pkgauth.TokenManager
	Sessions    *session.Manager
	DBPinger    controllers.Pinger
	RedisPinger controllers.Pinger

	AuthService     auth.Service
	BookingService  bookings.Service
	CatalogService  catalog.Service
	CustomerService customers.Service
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health/live", controllers.Liveness())
	r.Get("/health/ready", controllers.Readiness(deps.DBPinger, deps.RedisPinger, deps.Logger))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", controllers.Register(deps.AuthService, deps.Logger))
		r.Post("/auth/login", controllers.Login(deps.AuthService, deps.Logger))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.Tokens, deps.Sessions, deps.Logger))

			r.Post("/auth/logout", controllers.Logout(deps.AuthService, deps.Logger))

			r.Route("/bookings", func(r chi.Router) {
				r.Get("/", controllers.ListBookings(deps.BookingService, deps.Logger))
				r.Post("/", controllers.CreateBooking(deps.BookingService, deps.Logger))
				r.Get("/{id}", controllers.GetBooking(deps.BookingService, deps.Logger))
				r.Put("/{id}", controllers.UpdateBooking(deps.BookingService, deps.Logger))
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.ListProducts(deps.CatalogService, deps.Logger))
				r.Post("/", controllers.CreateProduct(deps.CatalogService, deps.Logger))
				r.Get("/{id}", controllers.GetProduct(deps.CatalogService, deps.Logger))
				r.Put("/{id}", controllers.UpdateProduct(deps.CatalogService, deps.Logger))
				r.Delete("/{id}", controllers.DeleteProduct(deps.CatalogService, deps.Logger))
			})

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", controllers.ListCustomers(deps.CustomerService, deps.Logger))
				r.Post("/", controllers.CreateCustomer(deps.CustomerService, deps.Logger))
				r.Get("/{id}", controllers.GetCustomer(deps.CustomerService, deps.Logger))
				r.Put("/{id}", controllers.UpdateCustomer(deps.CustomerService, deps.Logger))
			})

			r.Get("/sizes", controllers.ListSizes(deps.CatalogService, deps.Logger))
		})
	})

	return r
}
