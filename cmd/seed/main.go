package main

import (
	"context"
	"log"
	"time"

	"durianfarm/internal/auth"
	"durianfarm/internal/config"
	"durianfarm/internal/db"
	"durianfarm/internal/model"
	"durianfarm/internal/repository"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Farm{},
		&model.Tree{},
		&model.TreePhoto{},
		&model.Disease{},
		&model.Prediction{},
		&model.UserFarmTable{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	farmRepo := repository.NewFarmRepository(gormDB)

	exists, err := userRepo.ExistsByUsernameOrEmail(ctx, "admin", "admin@durianfarm.local")
	if err != nil {
		log.Fatalf("Failed to check for existing admin: %v", err)
	}
	if exists {
		log.Println("Admin user already present, nothing to do")
		return
	}

	hash, err := auth.HashPassword("admin1234")
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	admin := &model.User{
		Username:     "admin",
		Email:        "admin@durianfarm.local",
		PasswordHash: hash,
		UserRole:     1,
		CreatedAt:    time.Now(),
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Created admin user with ID %d", admin.UserID)

	demo := &model.Farm{
		FarmName:            "Demo farm",
		FarmLocation:        "Khlung",
		FarmProvince:        "Chanthaburi",
		FarmDurianSpecies:   "Monthong",
		FarmStatus:          true,
		FarmPollinationDate: time.Now(),
		FarmTree:            20,
		FarmSpace:           60,
		Latitude:            12.4534,
		Longitude:           102.2246,
		DurianAmount:        500,
	}
	if err := farmRepo.CreateWithUserLink(ctx, demo, admin.UserID); err != nil {
		log.Fatalf("Failed to create demo farm: %v", err)
	}
	log.Printf("Created demo farm with ID %d linked to admin", demo.ID)

	log.Println("Seed completed")
}
