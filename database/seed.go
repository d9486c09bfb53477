package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/nmdong/VietThanhProductions/model"
	"github.com/nmdong/VietThanhProductions/utils/auth"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAdminUser creates the initial account when it does not exist yet.
// Empty credentials skip the step.
func (s *Seeder) SeedAdminUser(username, password string) error {
	if username == "" || password == "" {
		slog.Warn("ADMIN_USERNAME and ADMIN_PASSWORD not set, skipping admin user creation")
		return nil
	}

	var existing model.User
	err := s.db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		slog.Info("admin user already exists", "username", username)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("look up admin user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := model.User{Username: username, PasswordHash: hash}
	if err := s.db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	slog.Info("admin user created", "username", username, "user_id", admin.ID)
	return nil
}
