package database

import (
	"fmt"

	"finance-tracker/internal/config"
	"finance-tracker/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the configured admin account if it does not exist yet.
func SeedAdmin(db *gorm.DB, cfg config.AdminConfig) error {
	if cfg.Email == "" || cfg.Password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("email = ?", cfg.Email).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Name:         cfg.Name,
		Email:        cfg.Email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

// SeedCategories inserts a starter category set into an empty table.
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	starter := []models.Category{
		{Name: "Food", Description: "Groceries, restaurants and takeaway."},
		{Name: "Transport", Description: "Public transport, fuel and parking."},
		{Name: "Housing", Description: "Rent, utilities and maintenance."},
		{Name: "Health", Description: "Medical bills, pharmacy and fitness."},
		{Name: "Entertainment", Description: "Movies, games and going out."},
		{Name: "Education", Description: "Books, courses and tuition."},
		{Name: "Travel", Description: "Trips, hotels and flights."},
		{Name: "Shopping", Description: "Clothing, gadgets and gifts."},
	}
	if err := db.Create(&starter).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	return nil
}
