package database

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/example/palme/internal/models"
	"github.com/example/palme/internal/utils"
)

// SeedAdmin creates the initial back-office account when none exists for
// the configured email. A blank password disables seeding.
func SeedAdmin(conn *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var existing models.Admin
	err := conn.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Email:        email,
		PasswordHash: hash,
		Role:         "SuperAdmin",
	}
	if err := conn.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("seeded admin account %s", email)
	return nil
}
