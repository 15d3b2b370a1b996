package database

import (
	"fmt"

	"companion-app/internal/domain/trial"
	"companion-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres connection and migrates the schema. The handle
// is returned to the caller - no package-level singleton - so stores and
// handlers receive it explicitly and tests can substitute their own.
func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database: empty DSN")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	// Needed for gen_random_uuid() defaults.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return nil, fmt.Errorf("database: enable pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&users.User{},
		&users.UserProfile{},
		&users.VerificationToken{},
		&trial.DeviceTrial{},
	); err != nil {
		return nil, fmt.Errorf("database: migrate: %w", err)
	}

	return db, nil
}
