package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/rudenman/Bank-REST/internal/config"
	"github.com/rudenman/Bank-REST/internal/handler"
	"github.com/rudenman/Bank-REST/internal/middleware"
	"github.com/rudenman/Bank-REST/internal/notify"
	"github.com/rudenman/Bank-REST/internal/repository"
	"github.com/rudenman/Bank-REST/internal/scheduler"
	"github.com/rudenman/Bank-REST/internal/service"
	"github.com/rudenman/Bank-REST/internal/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Card number generation and encryption
	gen, err := utils.NewGenerator(cfg.CardBIN, cfg.PanSeqStart)
	if err != nil {
		logger.Fatalf("Failed to create card number generator: %v", err)
	}
	vault, err := utils.NewVault([]byte(cfg.EncryptionKey))
	if err != nil {
		logger.Fatalf("Failed to create vault: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	var notifier service.Notifier
	if cfg.SMTPConfigured() {
		notifier = notify.NewSender(cfg, logger)
	}
	authSvc := service.NewAuthService(repo, logger, cfg.JWTSecret, cfg.TokenTTL)
	cardSvc := service.NewCardService(repo, repo, gen, vault, notifier, logger, cfg.CardValidity)
	transferSvc := service.NewTransferService(repo, repo, logger)
	requestSvc := service.NewCardRequestService(repo, repo, repo, logger)
	adminSvc := service.NewAdminService(repo, repo, repo, vault, notifier, logger)
	expirySvc := service.NewCardExpiryService(repo, logger)
	h := handler.NewHandler(authSvc, cardSvc, transferSvc, requestSvc, adminSvc, logger)

	// Expiry sweep schedule
	sched, err := scheduler.New(expirySvc, logger, cfg.SweepSchedule)
	if err != nil {
		logger.Fatalf("Failed to create scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	api.HandleFunc("/cards", h.ListCards).Methods("GET")
	api.HandleFunc("/cards", h.CreateCard).Methods("POST")
	api.HandleFunc("/cards/{id}", h.GetCard).Methods("GET")
	api.HandleFunc("/cards/{id}/topup", h.TopUpCard).Methods("PATCH")
	api.HandleFunc("/transfers", h.Transfer).Methods("POST")
	api.HandleFunc("/card-requests", h.CreateRequest).Methods("POST")
	api.HandleFunc("/card-requests", h.ListRequests).Methods("GET")
	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminOnly())
	admin.HandleFunc("/cards", h.AdminListCards).Methods("GET")
	admin.HandleFunc("/cards/{id}/status", h.AdminSetCardStatus).Methods("PATCH")
	admin.HandleFunc("/cards/{id}", h.AdminDeleteCard).Methods("DELETE")
	admin.HandleFunc("/users", h.AdminListUsers).Methods("GET")
	admin.HandleFunc("/users/{id}/status", h.AdminSetUserStatus).Methods("PATCH")
	admin.HandleFunc("/card-requests", h.AdminListRequests).Methods("GET")
	admin.HandleFunc("/card-requests/{id}/status", h.AdminSetRequestStatus).Methods("PATCH")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
