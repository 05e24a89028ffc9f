package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/gorm"

	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/cache"
	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/pkg/logger"
)

// Summary is the structured result of one pipeline invocation.
type Summary struct {
	RunID  uint   `json:"run_id"`
	Totals Totals `json:"summary"`
}

// Pipeline drives a whole batch through the record processor: it tracks
// counters, routes rejections to quarantine and the error table, and
// commits the run transaction at a fixed record interval so a crash loses
// at most the uncommitted tail (safe to re-ingest, upserts are
// idempotent on case_number).
type Pipeline struct {
	db         *gorm.DB
	tracker    *RunTracker
	processor  *Processor
	log        *logger.Logger
	commitSize int
}

func NewPipeline(db *gorm.DB, entityCache cache.EntityCache, log *logger.Logger, quarantineDir string, commitSize int) *Pipeline {
	resolver := NewEntityResolver(entityCache, log)
	return &Pipeline{
		db:         db,
		tracker:    NewRunTracker(db, log, quarantineDir),
		processor:  NewProcessor(resolver, log),
		log:        log,
		commitSize: commitSize,
	}
}

// IngestFile reads a JSON batch file and processes every record. An
// unreadable file or invalid JSON is fatal before any run row exists;
// after that, per-record failures are counted and quarantined while the
// run continues. A store failure mid-run rolls back the open transaction
// and leaves the run row without finished_at.
func (p *Pipeline) IngestFile(path, sourceName string) (*Summary, error) {
	if sourceName == "" {
		sourceName = filepath.Base(path)
	}
	p.log.Info("Starting ingestion", "file", path, "source", sourceName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %q: %w", path, err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("invalid JSON in %q: %w", path, err)
	}

	runID, err := p.tracker.StartRun(sourceName, path)
	if err != nil {
		return nil, err
	}
	p.log.Info("Loaded docket records", "count", len(records))

	totals, err := p.processBatch(runID, records)
	if err != nil {
		return nil, err
	}

	if err := p.tracker.FinishRun(runID, *totals); err != nil {
		return nil, err
	}

	summary := &Summary{RunID: runID, Totals: *totals}
	p.log.Info("Ingestion summary",
		"run_id", runID,
		"read", totals.Read,
		"inserted", totals.Inserted,
		"updated", totals.Updated,
		"failed", totals.Failed,
	)
	return summary, nil
}

func (p *Pipeline) processBatch(runID uint, records []Record) (*Totals, error) {
	totals := &Totals{}

	tx := p.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer func() {
		// No-op after a successful commit.
		tx.Rollback()
	}()

	for i, record := range records {
		totals.Read++

		outcome, err := p.processor.Process(tx, record)
		if err != nil {
			p.handleRejection(tx, runID, record, err)
			totals.Failed++
		} else {
			switch outcome.Action {
			case ActionInserted:
				totals.Inserted++
			case ActionUpdated:
				totals.Updated++
			}
		}

		// Batched commits bound the work lost on a crash without paying
		// per-record commit overhead.
		if (i+1)%p.commitSize == 0 {
			if err := tx.Commit().Error; err != nil {
				return nil, fmt.Errorf("failed to commit batch: %w", err)
			}
			tx = p.db.Begin()
			if tx.Error != nil {
				return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
			}
			p.log.Info("Progress",
				"processed", i+1,
				"total", len(records),
				"inserted", totals.Inserted,
				"updated", totals.Updated,
				"failed", totals.Failed,
			)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit final batch: %w", err)
	}
	return totals, nil
}

// handleRejection routes one rejected record to the quarantine log and the
// error table. The quarantine write comes first: it must survive even if
// the error-table write fails.
func (p *Pipeline) handleRejection(tx *gorm.DB, runID uint, record Record, procErr error) {
	code := ErrorCode(procErr)
	msg := procErr.Error()
	caseNumber := record.String("case_number")

	if _, err := p.tracker.WriteQuarantine(runID, record, code, msg); err != nil {
		p.log.Error("Failed to write quarantine record", "run_id", runID, "error", err)
	}
	if err := p.tracker.RecordError(tx, runID, record, code, msg, caseNumber); err != nil {
		p.log.Error("Failed to record ingest error", "run_id", runID, "error", err)
	}

	if code == CodeUnknown {
		p.log.Error("Unexpected error processing record", "case_number", caseNumber, "error", procErr)
	} else {
		p.log.Warn("Failed to process record", "case_number", caseNumber, "code", code, "error", procErr)
	}
}
