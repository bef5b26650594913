// Package store opens the shared SQLite database used by every persistence
// module. All modules must use the same DSN pragmas: foreign keys drive the
// cascade graph, and immediate transactions take the write lock at BEGIN so
// concurrent reorder transactions serialize instead of deadlocking midway.
package store

import (
	"fmt"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultPath returns the database path from the environment, falling back
// to a local file.
func DefaultPath() string {
	if path := os.Getenv("KANBAN_DB_PATH"); path != "" {
		return path
	}
	return "kanban.db"
}

// Open connects to the SQLite database at path with the pragmas the system
// relies on.
func Open(path string) (*gorm.DB, error) {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	dsn := fmt.Sprintf("file:%s?_fk=1&_busy_timeout=5000&_txlock=immediate", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}
