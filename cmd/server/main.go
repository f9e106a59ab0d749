package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tax-portal.backend/internal/config"
	"tax-portal.backend/internal/infrastructure/repositories"
	"tax-portal.backend/internal/infrastructure/storage"
	"tax-portal.backend/internal/interfaces/http/handlers"
	"tax-portal.backend/internal/interfaces/http/middleware"
	"tax-portal.backend/internal/realtime"
	"tax-portal.backend/internal/usecases"
	"tax-portal.backend/pkg/jwt"
	"tax-portal.backend/pkg/logger"
	"tax-portal.backend/pkg/redis"
)

// taxDraftTTL bounds how long an abandoned filing draft is kept
const taxDraftTTL = 7 * 24 * time.Hour

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("Connected to PostgreSQL via GORM")
	}

	// Initialize blob storage
	blobStore, err := storage.NewLocalStore(cfg.Storage.RootDir)
	if err != nil {
		return fmt.Errorf("failed to initialize blob storage: %w", err)
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	profileRepo := repositories.NewProfileRepository(db)
	requestRepo := repositories.NewServiceRequestRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	activityRepo := repositories.NewActivityRepository(db)

	// Initialize Session Store
	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	draftStore := redis.NewDraftStore(taxDraftTTL)

	// Initialize the realtime change feed
	hub := realtime.NewHub()
	go hub.Run()

	// Google OAuth config (optional)
	var oauthConfig *oauth2.Config
	if cfg.OAuth.GoogleClientID != "" {
		oauthConfig = &oauth2.Config{
			ClientID:     cfg.OAuth.GoogleClientID,
			ClientSecret: cfg.OAuth.GoogleClientSecret,
			RedirectURL:  cfg.OAuth.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(profileRepo, jwtService, oauthConfig)
	requestUsecase := usecases.NewRequestUsecase(requestRepo, activityRepo, hub)
	paymentUsecase := usecases.NewPaymentUsecase(paymentRepo, requestRepo, activityRepo, blobStore, hub, cfg.Payment, cfg.Storage.ReceiptSizeThreshold)
	documentUsecase := usecases.NewDocumentUsecase(documentRepo, activityRepo, blobStore, hub, cfg.Storage.MaxUploadSize)
	taxFilingUsecase := usecases.NewTaxFilingUsecase(draftStore, requestRepo, activityRepo, hub)
	adminUsecase := usecases.NewAdminUsecase(profileRepo, requestRepo, paymentRepo, activityRepo)
	activityUsecase := usecases.NewActivityUsecase(activityRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase, sessionStore)
	requestHandler := handlers.NewRequestHandler(requestUsecase)
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase, cfg.Storage.MaxUploadSize)
	documentHandler := handlers.NewDocumentHandler(documentUsecase, cfg.Storage.MaxUploadSize)
	taxFilingHandler := handlers.NewTaxFilingHandler(taxFilingUsecase)
	adminHandler := handlers.NewAdminHandler(adminUsecase)
	activityHandler := handlers.NewActivityHandler(activityUsecase)

	// Auth middleware resolves Bearer tokens and session IDs
	authMiddleware := middleware.AuthMiddleware(jwtService, sessionStore)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.Server.AllowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerWebsocketRoute(r, hub, jwtService)
	registerAPIV1Routes(r, routeDeps{
		authHandler:      authHandler,
		requestHandler:   requestHandler,
		paymentHandler:   paymentHandler,
		documentHandler:  documentHandler,
		taxFilingHandler: taxFilingHandler,
		adminHandler:     adminHandler,
		activityHandler:  activityHandler,
		authMiddleware:   authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
	}()

	// Start server
	log.Printf("Tax portal backend starting on port %s", cfg.Server.Port)
	log.Printf("API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
