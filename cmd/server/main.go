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

	"bankflow.backend/internal/config"
	"bankflow.backend/internal/domain/repositories"
	"bankflow.backend/internal/infrastructure/external"
	"bankflow.backend/internal/infrastructure/jobs"
	"bankflow.backend/internal/infrastructure/models"
	"bankflow.backend/internal/infrastructure/pending"
	infraRepos "bankflow.backend/internal/infrastructure/repositories"
	"bankflow.backend/internal/interfaces/http/handlers"
	"bankflow.backend/internal/interfaces/http/middleware"
	"bankflow.backend/internal/usecases"
	"bankflow.backend/pkg/jwt"
	"bankflow.backend/pkg/logger"
	"bankflow.backend/pkg/mailer"
	"bankflow.backend/pkg/redis"
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
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Pending confirm flows fall back to process-local storage when Redis
	// is unreachable, so a missing Redis degrades instead of blocking boot.
	var pendingStore repositories.PendingStore
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Warn(context.Background(), "Redis unavailable, using in-memory pending store", zap.Error(err))
		pendingStore = pending.NewMemoryStore()
	} else {
		logger.Info(context.Background(), "Redis initialized")
		pendingStore = pending.NewRedisStore("pending")
		defer redis.Close()
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
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

	if err := db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Beneficiary{},
		&models.Transaction{},
		&models.Transfer{},
		&models.OTP{},
		&models.Notification{},
	); err != nil {
		log.Printf("⚠️ Auto-migration failed: %v", err)
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories
	userRepo := infraRepos.NewUserRepository(db)
	accountRepo := infraRepos.NewAccountRepository(db)
	beneficiaryRepo := infraRepos.NewBeneficiaryRepository(db)
	transactionRepo := infraRepos.NewTransactionRepository(db)
	transferRepo := infraRepos.NewTransferRepository(db)
	otpRepo := infraRepos.NewOTPRepository(db)
	notificationRepo := infraRepos.NewNotificationRepository(db)
	uow := infraRepos.NewUnitOfWork(db)

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.From)
	currencyClient := external.NewCurrencyClient(cfg.Currency.APIBaseURL, cfg.Bank.Currency, cfg.Currency.Timeout)

	// Usecases
	notificationUsecase := usecases.NewNotificationUsecase(notificationRepo, userRepo, smtpMailer, cfg.Bank)
	otpUsecase := usecases.NewOTPUsecase(otpRepo, notificationUsecase, cfg.OTP)
	authUsecase := usecases.NewAuthUsecase(userRepo, otpUsecase, pendingStore, notificationUsecase, jwtService, cfg.OTP)
	accountUsecase := usecases.NewAccountUsecase(accountRepo, transactionRepo, uow, cfg.Bank)
	transactionUsecase := usecases.NewTransactionUsecase(transactionRepo, accountRepo, uow)
	beneficiaryUsecase := usecases.NewBeneficiaryUsecase(beneficiaryRepo)
	transferUsecase := usecases.NewTransferUsecase(transferRepo, accountRepo, beneficiaryRepo, otpUsecase, pendingStore, notificationUsecase, uow, cfg.OTP)
	adminUsecase := usecases.NewAdminUsecase(userRepo, accountRepo, beneficiaryRepo, otpRepo, notificationRepo, uow)
	currencyUsecase := usecases.NewCurrencyUsecase(currencyClient, cfg.Bank)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	accountHandler := handlers.NewAccountHandler(accountUsecase)
	transactionHandler := handlers.NewTransactionHandler(transactionUsecase)
	transferHandler := handlers.NewTransferHandler(transferUsecase)
	beneficiaryHandler := handlers.NewBeneficiaryHandler(beneficiaryUsecase)
	otpHandler := handlers.NewOTPHandler(otpUsecase)
	notificationHandler := handlers.NewNotificationHandler(notificationUsecase)
	currencyHandler := handlers.NewCurrencyHandler(currencyUsecase)
	adminHandler := handlers.NewAdminHandler(adminUsecase, accountUsecase, beneficiaryUsecase, notificationUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleanupJob := jobs.NewOTPCleanupJob(otpRepo)
	go cleanupJob.Start(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:         authHandler,
		accountHandler:      accountHandler,
		transactionHandler:  transactionHandler,
		transferHandler:     transferHandler,
		beneficiaryHandler:  beneficiaryHandler,
		otpHandler:          otpHandler,
		notificationHandler: notificationHandler,
		currencyHandler:     currencyHandler,
		adminHandler:        adminHandler,
		authMiddleware:      authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		cleanupJob.Stop()
		cancel()
	}()

	log.Printf("🚀 BankFlow Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
