package database

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Initialize(dbPath string) (*gorm.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Court{},
		&Judge{},
		&CaseType{},
		&Party{},
		&Case{},
		&CaseParty{},
		&CourtNameVariation{},
		&JudgeNameVariation{},
		&PartyNameVariation{},
		&IngestRun{},
		&IngestError{},
	); err != nil {
		return err
	}

	return createIndexes(db)
}

// createIndexes creates secondary indexes not covered by model tags
func createIndexes(db *gorm.DB) error {
	// Index for filed-date range queries
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_cases_filed_date
		ON cases(filed_date)
	`).Error; err != nil {
		return err
	}

	// Index for run history queries
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_ingest_runs_started
		ON ingest_runs(started_at)
	`).Error; err != nil {
		return err
	}

	// Index for error breakdown queries
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_ingest_errors_code
		ON ingest_errors(error_code)
	`).Error; err != nil {
		return err
	}

	return nil
}
