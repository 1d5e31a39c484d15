package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"contract-hub.backend/internal/config"
	"contract-hub.backend/internal/infrastructure/jobs"
	"contract-hub.backend/internal/infrastructure/repositories"
	"contract-hub.backend/internal/interfaces/http/handlers"
	"contract-hub.backend/internal/interfaces/http/middleware"
	"contract-hub.backend/internal/usecases"
	"contract-hub.backend/pkg/jwt"
	"contract-hub.backend/pkg/logger"
	"contract-hub.backend/pkg/redis"
)

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
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
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
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	contractRepo := repositories.NewContractRepository(db)
	versionRepo := repositories.NewContractVersionRepository(db)
	partyRepo := repositories.NewContractPartyRepository(db)
	activityRepo := repositories.NewActivityLogRepository(db)
	signatureRepo := repositories.NewSignatureRepository(db)
	tokenRepo := repositories.NewSignatureTokenRepository(db)
	jobRepo := repositories.NewGenerationJobRepository(db)
	cacheRepo := repositories.NewGenerationCacheRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	contractUsecase := usecases.NewContractUsecase(contractRepo, versionRepo, partyRepo, activityRepo, signatureRepo, uow)
	templateUsecase := usecases.NewTemplateUsecase()
	signatureUsecase := usecases.NewSignatureUsecase(contractRepo, versionRepo, partyRepo, activityRepo, signatureRepo, tokenRepo, uow, cfg.Signing.TokenExpiry, cfg.Server.FrontendURL)
	generationUsecase := usecases.NewGenerationUsecase(contractRepo, jobRepo, cacheRepo, contractUsecase, cfg.Generator.JobDelay)
	documentUsecase := usecases.NewDocumentUsecase(contractRepo, versionRepo, activityRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	contractHandler := handlers.NewContractHandler(contractUsecase, signatureUsecase)
	templateHandler := handlers.NewTemplateHandler(templateUsecase)
	signatureHandler := handlers.NewSignatureHandler(signatureUsecase)
	generationHandler := handlers.NewGenerationHandler(generationUsecase)
	documentHandler := handlers.NewDocumentHandler(documentUsecase)

	// Create auth middleware
	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	purgeJob := jobs.NewSignatureTokenPurgeJob(tokenRepo, cfg.Signing.PurgeInterval)
	go purgeJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:       authHandler,
		contractHandler:   contractHandler,
		templateHandler:   templateHandler,
		signatureHandler:  signatureHandler,
		generationHandler: generationHandler,
		documentHandler:   documentHandler,
		authMiddleware:    authMiddleware,
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		purgeJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Contract-Hub Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
