package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lfarroc/billarpro-backend/internal/config"
	"github.com/lfarroc/billarpro-backend/internal/database"
	"github.com/lfarroc/billarpro-backend/internal/middleware"
	"github.com/lfarroc/billarpro-backend/internal/modules/auth"
	"github.com/lfarroc/billarpro-backend/internal/modules/client"
	"github.com/lfarroc/billarpro-backend/internal/modules/notification"
	"github.com/lfarroc/billarpro-backend/internal/modules/product"
	"github.com/lfarroc/billarpro-backend/internal/modules/rental"
	"github.com/lfarroc/billarpro-backend/internal/modules/report"
	"github.com/lfarroc/billarpro-backend/internal/modules/sale"
	"github.com/lfarroc/billarpro-backend/internal/modules/session"
	"github.com/lfarroc/billarpro-backend/internal/modules/table"
	"github.com/lfarroc/billarpro-backend/internal/modules/tenant"
	"github.com/lfarroc/billarpro-backend/internal/modules/user"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	logger.Info("connected to database")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.Recoverer)
	router.Use(middleware.RequestLogger(logger))

	// ── Repositories ────────────────────────────────────────
	tenantRepo := tenant.NewPostgresRepository(db)
	userRepo := user.NewPostgresRepository(db)
	clientRepo := client.NewPostgresRepository(db)
	tableRepo := table.NewPostgresRepository(db)
	rentalRepo := rental.NewPostgresRepository(db)
	productRepo := product.NewPostgresRepository(db)
	saleRepo := sale.NewPostgresRepository(db)
	sessionRepo := session.NewPostgresRepository(db)
	notificationRepo := notification.NewPostgresRepository(db)

	// ── Services ────────────────────────────────────────────
	tenantService := tenant.NewService(tenantRepo)
	userService := user.NewService(userRepo)
	authService := auth.NewService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	clientService := client.NewService(clientRepo)
	tableService := table.NewService(tableRepo)
	rentalService := rental.NewService(rentalRepo)
	productService := product.NewService(productRepo)
	saleService := sale.NewService(saleRepo, productRepo, clientRepo, rentalRepo)
	notificationService := notification.NewService(notificationRepo, logger)
	sessionService := session.NewService(sessionRepo, notificationService)
	reportService := report.NewService(sessionService)

	// ── Public routes ───────────────────────────────────────
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Authenticated routes ────────────────────────────────
	router.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))

		tenant.NewHandler(tenantService).RegisterRoutes(r)
		user.NewHandler(userService).RegisterRoutes(r)
		client.NewHandler(clientService).RegisterRoutes(r)
		table.NewHandler(tableService).RegisterRoutes(r)
		rental.NewHandler(rentalService).RegisterRoutes(r)
		product.NewHandler(productService).RegisterRoutes(r)
		sale.NewHandler(saleService).RegisterRoutes(r)
		session.NewHandler(sessionService).RegisterRoutes(r)
		report.NewHandler(reportService).RegisterRoutes(r)
		notification.NewHandler(notificationService).RegisterRoutes(r)
	})

	logger.Info("server starting", zap.String("port", cfg.HTTPPort))
	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
