package main

import (
	"context"
	"fmt"
	"log"

	"courseplatform/internal/application/usecase"
	"courseplatform/internal/config"
	"courseplatform/internal/domain"
	"courseplatform/internal/infrastructure/cache"
	"courseplatform/internal/infrastructure/repository"
	"courseplatform/internal/infrastructure/security"
	"courseplatform/internal/middleware"
	handlers "courseplatform/internal/transport/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// 1. Конфиг
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}

	// 2. Логгер
	var zapLogger *zap.Logger
	if cfg.AppMode == "prod" {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Logger init failed: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	// 3. Postgres
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Дубль по уникальному индексу приходит как gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		logger.Fatalf("DB connect failed: %v", err)
	}

	// Миграции
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Course{},
		&domain.Video{},
		&domain.CourseAccess{},
		&domain.VideoProgress{},
	); err != nil {
		logger.Fatalf("Migrations failed: %v", err)
	}

	// 4. Redis (кеш каталога, refresh токены, rate limit)
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Fatalf("Redis connect failed: %v", err)
	}
	logger.Infow("connected to redis", "addr", cfg.RedisAddr)

	// 5. Репозитории и инфраструктура
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db, rdb)
	videoRepo := repository.NewVideoRepository(db, rdb)
	accessRepo := repository.NewAccessRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	tokenCache := cache.NewTokenCache(rdb)
	hasher := security.NewPasswordHasher()
	tokenManager := security.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret)

	// 6. Use cases
	authUC := usecase.NewAuthUseCase(userRepo, tokenCache, hasher, tokenManager, logger)
	entitlementUC := usecase.NewEntitlementUseCase(accessRepo, userRepo, courseRepo, logger)
	catalogUC := usecase.NewCatalogUseCase(courseRepo, videoRepo, progressRepo, logger)
	userSearchUC := usecase.NewUserSearchUseCase(userRepo)

	// Первый админ из ENV, если админов еще нет
	if err := authUC.SeedAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Fatalf("Admin seed failed: %v", err)
	}

	// 7. HTTP
	rateLimiter := middleware.NewRateLimiter(rdb)

	authHandler := handlers.NewAuthHandler(authUC, logger)
	courseHandler := handlers.NewCourseHandler(catalogUC, entitlementUC, logger)
	adminCourseHandler := handlers.NewAdminCourseHandler(catalogUC, logger)
	accessHandler := handlers.NewAccessHandler(entitlementUC, userSearchUC, catalogUC, logger)

	router := handlers.NewRouter(
		authHandler,
		courseHandler,
		adminCourseHandler,
		accessHandler,
		tokenManager,
		rateLimiter,
		cfg.AllowedOrigins,
	)

	port := cfg.HTTPPort
	if port == "" {
		port = "8080"
	}

	logger.Infow("course platform running", "port", port)
	if err := router.Run(":" + port); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
}
