package ingest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/cache"
	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/database"
)

func testPipeline(t *testing.T, commitSize int) (*Pipeline, string) {
	t.Helper()

	db := setupTestDB(t)
	quarantineDir := t.TempDir()
	p := NewPipeline(db, cache.NewEntityCache(time.Minute), testLogger(t), quarantineDir, commitSize)
	return p, quarantineDir
}

func writeBatchFile(t *testing.T, records []Record) string {
	t.Helper()

	data, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("Failed to marshal batch: %v", err)
	}
	path := filepath.Join(t.TempDir(), "batch.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write batch file: %v", err)
	}
	return path
}

func TestIngestFileMixedBatch(t *testing.T) {
	p, quarantineDir := testPipeline(t, 100)

	records := []Record{
		{
			"case_number": "2024-CV-1001",
			"title":       "Smith v. Acme Corp",
			"filed_date":  "2024-10-03",
			"court":       "S.D.N.Y.",
			"judge":       "Hon. Maria Rodriguez",
			"parties":     "John Smith (plaintiff); Acme Corp (defendant)",
		},
		{
			"case_number": "2024-CV-1002",
			"title":       "Doe v. MegaCorp",
			"filed_date":  "13-40-2024",
			"court":       "S.D.N.Y.",
		},
		{
			"case_number": "2024-CV-1001",
			"title":       "Smith v. Acme Corp (Amended)",
			"filed_date":  "2024-10-03",
			"court":       "S.D.N.Y.",
			"judge":       "Hon. Maria Rodriguez",
			"parties":     "John Smith (plaintiff); Acme Corp (defendant)",
		},
	}

	summary, err := p.IngestFile(writeBatchFile(t, records), "mixed-batch")
	if err != nil {
		t.Fatalf("IngestFile error: %v", err)
	}

	want := Totals{Read: 3, Inserted: 1, Updated: 1, Failed: 1}
	if summary.Totals != want {
		t.Errorf("totals = %+v, want %+v", summary.Totals, want)
	}

	// The re-ingested record replaced the title in place
	var c database.Case
	if err := p.db.Where("case_number = ?", "2024-CV-1001").First(&c).Error; err != nil {
		t.Fatalf("case not found: %v", err)
	}
	if c.Title != "Smith v. Acme Corp (Amended)" {
		t.Errorf("title = %q, want amended title", c.Title)
	}

	// The bad record left no case row
	var count int64
	p.db.Model(&database.Case{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 case row, got %d", count)
	}

	// Run row closed out with the same totals
	var run database.IngestRun
	p.db.First(&run, summary.RunID)
	if run.FinishedAt == nil {
		t.Error("run not marked finished")
	}
	if run.TotalRead != 3 || run.TotalInserted != 1 || run.TotalUpdated != 1 || run.TotalFailed != 1 {
		t.Errorf("run totals = %+v", run)
	}

	// One error row and one quarantine line for the rejected record
	var ingestErrs []database.IngestError
	p.db.Where("run_id = ?", summary.RunID).Find(&ingestErrs)
	if len(ingestErrs) != 1 {
		t.Fatalf("expected 1 error row, got %d", len(ingestErrs))
	}
	if ingestErrs[0].ErrorCode != CodeBadDate {
		t.Errorf("error_code = %q, want %q", ingestErrs[0].ErrorCode, CodeBadDate)
	}

	qpath := filepath.Join(quarantineDir, "ingest_run_1.jsonl")
	data, err := os.ReadFile(qpath)
	if err != nil {
		t.Fatalf("quarantine file missing: %v", err)
	}
	var line quarantineLine
	if err := json.Unmarshal(data[:len(data)-1], &line); err != nil {
		t.Fatalf("quarantine line is not valid JSON: %v", err)
	}
	if line.Raw.String("case_number") != "2024-CV-1002" {
		t.Errorf("quarantined case_number = %q", line.Raw.String("case_number"))
	}
}

func TestIngestFileIdempotent(t *testing.T) {
	p, _ := testPipeline(t, 100)

	records := []Record{
		{
			"case_number": "2024-CV-2001",
			"title":       "A v. B",
			"filed_date":  "2024-01-15",
			"court":       "N.D. Cal.",
		},
		{
			"case_number": "2024-CV-2002",
			"title":       "C v. D",
			"filed_date":  "2024-02-20",
			"court":       "N.D. Cal.",
		},
	}
	path := writeBatchFile(t, records)

	first, err := p.IngestFile(path, "reingest")
	if err != nil {
		t.Fatalf("first IngestFile error: %v", err)
	}
	if first.Totals.Inserted != 2 || first.Totals.Updated != 0 {
		t.Fatalf("first run totals = %+v", first.Totals)
	}

	second, err := p.IngestFile(path, "reingest")
	if err != nil {
		t.Fatalf("second IngestFile error: %v", err)
	}
	if second.Totals.Inserted != 0 || second.Totals.Updated != 2 {
		t.Errorf("second run totals = %+v, want 0 inserted / 2 updated", second.Totals)
	}

	var count int64
	p.db.Model(&database.Case{}).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 case rows after re-ingestion, got %d", count)
	}
}

func TestIngestFileSmallCommitInterval(t *testing.T) {
	// Commit interval smaller than the batch exercises the mid-batch
	// commit-and-reopen path.
	p, _ := testPipeline(t, 2)

	records := make([]Record, 0, 5)
	for _, n := range []string{"3001", "3002", "3003", "3004", "3005"} {
		records = append(records, Record{
			"case_number": "2024-CV-" + n,
			"title":       "Case " + n,
			"filed_date":  "2024-06-01",
			"court":       "D. Mass.",
		})
	}

	summary, err := p.IngestFile(writeBatchFile(t, records), "chunked")
	if err != nil {
		t.Fatalf("IngestFile error: %v", err)
	}
	if summary.Totals.Inserted != 5 {
		t.Errorf("inserted = %d, want 5", summary.Totals.Inserted)
	}

	var count int64
	p.db.Model(&database.Case{}).Count(&count)
	if count != 5 {
		t.Errorf("expected 5 case rows, got %d", count)
	}
}

func TestIngestFileBadInput(t *testing.T) {
	p, _ := testPipeline(t, 100)

	if _, err := p.IngestFile(filepath.Join(t.TempDir(), "missing.json"), ""); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "garbage.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := p.IngestFile(path, ""); err == nil {
		t.Error("expected error for malformed JSON")
	}

	// Neither failure creates a run row
	var count int64
	p.db.Model(&database.IngestRun{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no run rows, got %d", count)
	}
}
