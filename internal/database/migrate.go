package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/franciscosanchezn/gin-user-directory/internal/models"
	"gorm.io/gorm"
)

// initialUsersSeed names the seed set recorded in seed_history.
const initialUsersSeed = "users.initial"

// Migrate creates or updates the users and seed_history tables, including the
// unique index on users.email.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.SeedRecord{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// InitialUsers returns the rows inserted on first initialization.
func InitialUsers(at time.Time) []models.User {
	return []models.User{
		{Name: "John Doe", Email: "john@example.com", CreatedAt: at, IsActive: true},
		{Name: "Jane Smith", Email: "jane@example.com", CreatedAt: at, IsActive: true},
	}
}

// Seed inserts the initial users exactly once per database. It reports whether
// the seed was applied by this call.
func Seed(db *gorm.DB) (bool, error) {
	applied := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var record models.SeedRecord
		err := tx.First(&record, "name = ?", initialUsersSeed).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC().Truncate(time.Microsecond)
		users := InitialUsers(now)
		if err := tx.Create(&users).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.SeedRecord{Name: initialUsersSeed, AppliedAt: now}).Error; err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seed %s: %w", initialUsersSeed, err)
	}

	if applied {
		log.WithField("seed", initialUsersSeed).Info("Database seeded with initial data")
	} else {
		log.WithField("seed", initialUsersSeed).Info("Database already seeded with initial data")
	}
	return applied, nil
}
