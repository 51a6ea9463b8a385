package infra

import (
	"context"
	"errors"
	"fmt"

	"storepos/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the embedded SQLite store and runs the idempotent
// bootstrap migration. Foreign keys are enabled per connection so the
// sales → products ON DELETE CASCADE actually fires.
func NewDatabase(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s?_foreign_keys=on", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// SQLite is a single-writer store; one open connection keeps every
	// logical operation serialized behind the same handle.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("bootstrap migration: %w", err)
	}

	return db, nil
}

// RunMigrations creates the schema when missing. AutoMigrate is conditional
// by construction, so re-running on an existing store is a no-op.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Sale{},
	)
}

// SeedAdmin creates the bootstrap "admin" account on first run when no user
// with that name exists. createUser is injected so this package does not
// depend on the credential service.
func SeedAdmin(db *gorm.DB, password string, createUser func(ctx context.Context, username, password, role string) (uint, error)) error {
	var u model.User
	err := db.Where("username = ?", "admin").First(&u).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := createUser(context.Background(), "admin", password, "admin"); err != nil {
		return err
	}
	// Known-weak bootstrap credential, not a security feature.
	log.Warn().Msg("seeded default 'admin' account, change its password before real use")
	return nil
}
