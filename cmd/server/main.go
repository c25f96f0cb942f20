package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "github.com/Adarsh108-tech/MyTaskManager/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Adarsh108-tech/MyTaskManager/internal/auth"
	"github.com/Adarsh108-tech/MyTaskManager/internal/cache"
	"github.com/Adarsh108-tech/MyTaskManager/internal/config"
	"github.com/Adarsh108-tech/MyTaskManager/internal/db"
	"github.com/Adarsh108-tech/MyTaskManager/internal/handler"
	"github.com/Adarsh108-tech/MyTaskManager/internal/model"
	"github.com/Adarsh108-tech/MyTaskManager/internal/repository"
	"github.com/Adarsh108-tech/MyTaskManager/internal/router"
	"github.com/Adarsh108-tech/MyTaskManager/internal/service"
	"github.com/Adarsh108-tech/MyTaskManager/internal/storage"
)

// @title MyTaskManager API
// @version 1.0
// @description Task tracking API with daily tasks, completion images, and JWT authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			log.Printf("close database: %v", err)
		}
	}()

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Task{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Task{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() {
		if err := cacheClient.Close(); err != nil {
			log.Printf("close cache: %v", err)
		}
	}()

	objectStorage, err := storage.NewS3Storage(context.Background(), storage.Options{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		log.Fatalf("object storage init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	accountService := service.NewAccountService(userRepo, jwtService, objectStorage, cacheClient)
	taskService := service.NewTaskService(taskRepo, objectStorage)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(accountService)
	accountHandler := handler.NewAccountHandler(accountService)
	taskHandler := handler.NewTaskHandler(taskService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		authHandler,
		accountHandler,
		taskHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
