package main

import (
	"log"
	"net/http"

	_ "durianfarm/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"durianfarm/internal/auth"
	"durianfarm/internal/cache"
	"durianfarm/internal/config"
	"durianfarm/internal/db"
	"durianfarm/internal/handler"
	"durianfarm/internal/model"
	"durianfarm/internal/repository"
	"durianfarm/internal/router"
	"durianfarm/internal/service"
	"durianfarm/internal/storage"
)

// @title Durian Farm API
// @version 1.0
// @description Farm management API with farms, trees, photos, disease and prediction records, and JWT authentication.
// @BasePath /api/v1
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

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Farm{},
		&model.Tree{},
		&model.TreePhoto{},
		&model.Disease{},
		&model.Prediction{},
		&model.UserFarmTable{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	fileStore, err := storage.NewFileStore(cfg.PublicDir)
	if err != nil {
		log.Fatalf("file store init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	farmRepo := repository.NewFarmRepository(gormDB)
	treeRepo := repository.NewTreeRepository(gormDB)
	predictionRepo := repository.NewPredictionRepository(gormDB)
	diseaseRepo := repository.NewDiseaseRepository(gormDB)
	userFarmRepo := repository.NewUserFarmRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	farmService := service.NewFarmService(farmRepo, treeRepo, predictionRepo, diseaseRepo, userFarmRepo, userRepo, fileStore, cacheClient)
	userService := service.NewUserService(userRepo, userFarmRepo, jwtService, cacheClient)

	// Initialize handlers
	farmHandler := handler.NewFarmHandler(farmService)
	userHandler := handler.NewUserHandler(userService)

	// Register routes
	router.Register(e, cfg, farmHandler, userHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
