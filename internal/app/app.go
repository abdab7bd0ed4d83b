package app

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"golang.org/x/crypto/bcrypt"

	"storefront_backend/internal/auth"
	"storefront_backend/internal/config"
	"storefront_backend/internal/email"
	"storefront_backend/internal/handlers"
	"storefront_backend/internal/imageprocessor"
	"storefront_backend/internal/logger"
	"storefront_backend/internal/middleware"
	"storefront_backend/internal/models"
	"storefront_backend/internal/repositories"
	"storefront_backend/internal/routes"
	"storefront_backend/internal/services"
	"storefront_backend/internal/storage"
	"storefront_backend/internal/validator"
)

// seededAdminLevel is well above the admin threshold so the seeded
// account keeps working if the threshold is ever raised.
const seededAdminLevel = 99

func Run() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.New(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)

	serviceContainer := initializeServices(cfg, gormDB, tokens)
	appHandlers := initializeHandlers(cfg, serviceContainer, storageInstance)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, tokens)

	// Uploaded photos are served straight from disk when the local
	// backend is in use; S3/R2 serves them itself.
	if cfg.Storage.Type == "local" {
		ginRouter.Static(cfg.Storage.BaseURL, cfg.Storage.BasePath)
	}

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, tokens *auth.TokenManager) *services.ServiceContainer {
	emailProvider := buildEmailProvider(cfg)

	userRepo := repositories.NewUserRepository(gormDB)
	storeRepo := repositories.NewStoreRepository(gormDB)
	reviewRepo := repositories.NewReviewRepository(gormDB)

	authService := services.NewAuthService(userRepo, emailProvider, tokens, cfg.Server.BaseURL)
	storeService := services.NewStoreService(storeRepo)
	userService := services.NewUserService(userRepo, storeRepo)
	reviewService := services.NewReviewService(reviewRepo, storeRepo)

	return &services.ServiceContainer{
		AuthService:   authService,
		StoreService:  storeService,
		UserService:   userService,
		ReviewService: reviewService,
		EmailProvider: emailProvider,
	}
}

// buildEmailProvider wires SMTP when it is configured and falls back to
// the in-memory mock otherwise, so development runs without a relay.
func buildEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, outgoing mail goes to the in-memory mock")
		return email.NewMockProvider()
	}

	renderer, err := email.NewTemplateManager(cfg.Email.TemplatesDir)
	if err != nil {
		logger.Fatal("Failed to load email templates", "error", err)
	}

	provider, err := email.NewSMTPProvider(email.Config{
		Host:         cfg.Email.SMTPHost,
		Port:         cfg.Email.SMTPPort,
		Username:     cfg.Email.SMTPUser,
		Password:     cfg.Email.SMTPPassword,
		FromEmail:    cfg.Email.FromEmail,
		FromName:     cfg.Email.FromName,
		TemplatesDir: cfg.Email.TemplatesDir,
	}, renderer)
	if err != nil {
		logger.Fatal("Failed to initialize SMTP provider", "error", err)
	}
	return provider
}

func initializeHandlers(cfg *config.Config, container *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	images := imageprocessor.NewProcessor(cfg.Upload.MaxWidth, cfg.Upload.ImageQuality)

	return &handlers.AppHandlers{
		AuthHandler:   handlers.NewAuthHandler(baseHandler, container.AuthService),
		StoreHandler:  handlers.NewStoreHandler(baseHandler, container.StoreService, container.UserService, images, storageInstance),
		UserHandler:   handlers.NewUserHandler(baseHandler, container.UserService),
		ReviewHandler: handlers.NewReviewHandler(baseHandler, container.ReviewService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.MaxMultipartMemory = cfg.Upload.MaxSize
	return router
}

func migrate(db *gorm.DB) error {
	// gen_random_uuid is built in from Postgres 13; uuid-ossp keeps the
	// uuid_generate_v4 default working on older servers.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid extension: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Store{}, &models.Review{}); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	logger.Info("Migrations applied")
	return nil
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Admin.Email
	adminPassword := cfg.Admin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("Admin email or password is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Name:         "Administrator",
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Level:        seededAdminLevel,
	}

	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Created first admin user", "email", adminEmail)
	return nil
}
