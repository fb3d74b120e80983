package database

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// Open connects to the configured database and migrates the schema.
// Supported dialects are sqlite3 (the default) and postgres.
func Open(dialect, dsn string) (*gorm.DB, error) {
	if dialect == "" {
		dialect = "sqlite3"
	}

	db, err := gorm.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect, err)
	}

	if err := db.AutoMigrate(
		&MenuItemRecord{},
		&CustomisationRecord{},
	).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}
