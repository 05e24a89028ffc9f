package ingest

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/cache"
	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/database"
	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/pkg/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	return db
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()

	log, err := logger.NewLogger("error", "text")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return log
}

func testResolver(t *testing.T) *EntityResolver {
	t.Helper()

	return NewEntityResolver(cache.NewEntityCache(time.Minute), testLogger(t))
}
