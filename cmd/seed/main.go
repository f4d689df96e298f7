package main

import (
	"log"
	"os"
	"time"

	"pixfusion-be/internal/model"
	"pixfusion-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	seedPackages(db)
	seedAdmin(db)

	color.Green("Success: seeding completed.")
}

func seedPackages(db *gorm.DB) {
	color.Cyan("Seeding credit packages...")

	packages := []model.CreditPackage{
		{Id: uuid.New(), Name: "Starter", Credits: 50, PriceCents: 499, Active: true},
		{Id: uuid.New(), Name: "Creator", Credits: 200, PriceCents: 1499, Active: true},
		{Id: uuid.New(), Name: "Studio", Credits: 1000, PriceCents: 4999, Active: true},
	}

	for _, pkg := range packages {
		var existing model.CreditPackage
		err := db.Where("name = ?", pkg.Name).First(&existing).Error
		if err == nil {
			continue
		}
		pkg.CreatedAt = time.Now()
		if err := db.Create(&pkg).Error; err != nil {
			log.Printf("Warn: failed to seed package %s: %v", pkg.Name, err)
		}
	}
}

func seedAdmin(db *gorm.DB) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("Info: SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	color.Cyan("Seeding admin user...")

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("Info: admin %s already exists", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: failed to hash admin password: %v", err)
	}
	hashStr := string(hash)

	admin := model.User{
		Id:           uuid.New(),
		Email:        email,
		FullName:     "PixFusion Admin",
		PasswordHash: &hashStr,
		Role:         "admin",
		Status:       "active",
		Credits:      0,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Error: failed to seed admin: %v", err)
	}
}
