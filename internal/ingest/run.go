package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/database"
	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/pkg/logger"
)

// Totals are the per-run counters reported in the summary and stamped on
// the run row at completion.
type Totals struct {
	Read     int `json:"read"`
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Failed   int `json:"failed"`
}

// RunTracker manages ingestion run lifecycle and failure persistence.
// Run rows are written on the root handle outside any batch transaction;
// error rows ride the batch transaction; the quarantine file is durable
// independently of the database entirely.
type RunTracker struct {
	db            *gorm.DB
	log           *logger.Logger
	quarantineDir string
}

func NewRunTracker(db *gorm.DB, log *logger.Logger, quarantineDir string) *RunTracker {
	return &RunTracker{db: db, log: log, quarantineDir: quarantineDir}
}

// StartRun creates an IngestRun row and returns its id.
func (t *RunTracker) StartRun(sourceName, sourceURI string) (uint, error) {
	run := database.IngestRun{
		SourceName: sourceName,
		SourceURI:  sourceURI,
		StartedAt:  time.Now().UTC(),
	}
	if err := t.db.Create(&run).Error; err != nil {
		return 0, fmt.Errorf("failed to start ingestion run: %w", err)
	}
	t.log.Info("Started ingestion run", "run_id", run.RunID, "source", sourceName)
	return run.RunID, nil
}

// FinishRun stamps finished_at and the final counters.
func (t *RunTracker) FinishRun(runID uint, totals Totals) error {
	now := time.Now().UTC()
	err := t.db.Model(&database.IngestRun{}).Where("run_id = ?", runID).Updates(map[string]interface{}{
		"finished_at":    now,
		"total_read":     totals.Read,
		"total_inserted": totals.Inserted,
		"total_updated":  totals.Updated,
		"total_failed":   totals.Failed,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to finish run %d: %w", runID, err)
	}
	t.log.Info("Finished ingestion run", "run_id", runID)
	return nil
}

// RecordError persists one failure, deduplicated by record content within
// the run: a byte-identical bad record seen again bumps retry_count and
// last_seen_at instead of inserting a second row. Writes go through the
// caller's session; SQLite allows only one writer, so a separate
// connection would stall behind the open batch transaction.
func (t *RunTracker) RecordError(tx *gorm.DB, runID uint, raw Record, errorCode, errorMsg, caseNumber string) error {
	recordHash := RecordHash(raw)

	res := tx.Model(&database.IngestError{}).
		Where("run_id = ? AND record_hash = ?", runID, recordHash).
		Updates(map[string]interface{}{
			"last_seen_at": time.Now().UTC(),
			"retry_count":  gorm.Expr("retry_count + 1"),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update ingest error: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	details, err := json.Marshal(map[string]interface{}{
		"raw": raw,
		"why": errorMsg,
	})
	if err != nil {
		details = []byte("{}")
	}

	now := time.Now().UTC()
	ingestErr := database.IngestError{
		RunID:        runID,
		RecordHash:   recordHash,
		CaseNumber:   caseNumber,
		ErrorCode:    errorCode,
		ErrorMessage: errorMsg,
		FirstSeenAt:  now,
		LastSeenAt:   now,
		Details:      string(details),
	}
	if err := tx.Create(&ingestErr).Error; err != nil {
		return fmt.Errorf("failed to insert ingest error: %w", err)
	}
	return nil
}

// quarantineLine is one rejected record in the append-only JSONL log.
type quarantineLine struct {
	RunID      uint   `json:"run_id"`
	ErrorCode  string `json:"error_code"`
	Why        string `json:"why"`
	Raw        Record `json:"raw"`
	TS         string `json:"ts"`
	RecordHash string `json:"record_hash"`
}

// WriteQuarantine appends one line for the rejected record to the per-run
// quarantine log, creating the directory if absent. Returns the log path.
func (t *RunTracker) WriteQuarantine(runID uint, raw Record, errorCode, why string) (string, error) {
	path := filepath.Join(t.quarantineDir, fmt.Sprintf("ingest_run_%d.jsonl", runID))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create quarantine directory: %w", err)
	}

	line, err := json.Marshal(quarantineLine{
		RunID:      runID,
		ErrorCode:  errorCode,
		Why:        why,
		Raw:        raw,
		TS:         time.Now().UTC().Format("2006-01-02T15:04:05Z"),
		RecordHash: RecordHash(raw),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal quarantine record: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open quarantine file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return "", fmt.Errorf("failed to write quarantine record: %w", err)
	}
	return path, nil
}

// RecordHash computes the deterministic content hash of a raw record:
// SHA-256 over the canonical JSON serialization. encoding/json emits map
// keys sorted, which makes the serialization canonical.
func RecordHash(raw Record) string {
	canonical, err := json.Marshal(raw)
	if err != nil {
		// Unmarshalable input came from json in the first place; fall back
		// to hashing its string form.
		canonical = []byte(fmt.Sprintf("%v", raw))
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}
