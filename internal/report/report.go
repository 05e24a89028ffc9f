// Package report produces the data-quality report: read-only aggregates
// over the ingested store, rendered as text. It never writes back into
// ingestion.
package report

import (
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"
)

// Options scope the report to one run, to cases filed on/after a date, or
// to all-time aggregates when both are zero.
type Options struct {
	RunID uint
	Since string
}

type VolumeSummary struct {
	TotalRecords int
	Inserted     int
	Updated      int
	Failed       int
}

type ErrorCount struct {
	ErrorCode  string
	Count      int
	MostRecent string
}

type Completeness struct {
	Total      int
	NoJudge    int
	NoCourt    int
	NoCaseType int
	NoDocket   int
}

type DateSanity struct {
	MinDate  string
	MaxDate  string
	BadDates int
}

type EntityStats struct {
	DistinctNames      int
	DistinctNormalized int
	Total              int
}

type PartyCoverage struct {
	CasesWithParties   int
	CasesWithPlaintiff int
	CasesWithDefendant int
}

type RoleCount struct {
	Role  string
	Count int
}

type Report struct {
	Options      Options
	GeneratedAt  time.Time
	Volume       VolumeSummary
	Errors       []ErrorCount
	Completeness Completeness
	Dates        DateSanity
	Judges       EntityStats
	Courts       EntityStats
	Parties      PartyCoverage
	Roles        []RoleCount
}

// Generate runs all report queries against the store.
func Generate(db *gorm.DB, opts Options) (*Report, error) {
	r := &Report{Options: opts, GeneratedAt: time.Now().UTC()}

	if opts.RunID != 0 {
		var exists int
		if err := db.Raw(`SELECT COUNT(*) FROM ingest_runs WHERE run_id = ?`, opts.RunID).Scan(&exists).Error; err != nil {
			return nil, fmt.Errorf("failed to check run: %w", err)
		}
		if exists == 0 {
			return nil, fmt.Errorf("run %d not found", opts.RunID)
		}
	}

	if err := r.loadVolume(db); err != nil {
		return nil, err
	}
	if err := r.loadErrors(db); err != nil {
		return nil, err
	}
	if err := r.loadCompleteness(db); err != nil {
		return nil, err
	}
	if err := r.loadDateSanity(db); err != nil {
		return nil, err
	}
	if err := r.loadEntityStats(db); err != nil {
		return nil, err
	}
	if err := r.loadPartyCoverage(db); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Report) loadVolume(db *gorm.DB) error {
	query := `
		SELECT COALESCE(SUM(total_read), 0) AS total_records,
		       COALESCE(SUM(total_inserted), 0) AS inserted,
		       COALESCE(SUM(total_updated), 0) AS updated,
		       COALESCE(SUM(total_failed), 0) AS failed
		FROM ingest_runs`
	args := []interface{}{}
	if r.Options.RunID != 0 {
		query += ` WHERE run_id = ?`
		args = append(args, r.Options.RunID)
	}
	if err := db.Raw(query, args...).Scan(&r.Volume).Error; err != nil {
		return fmt.Errorf("failed to load volume summary: %w", err)
	}
	return nil
}

func (r *Report) loadErrors(db *gorm.DB) error {
	query := `
		SELECT error_code, COUNT(*) AS count, MAX(last_seen_at) AS most_recent
		FROM ingest_errors`
	args := []interface{}{}
	switch {
	case r.Options.RunID != 0:
		query += ` WHERE run_id = ?`
		args = append(args, r.Options.RunID)
	case r.Options.Since != "":
		query = `
			SELECT e.error_code AS error_code, COUNT(*) AS count,
			       MAX(e.last_seen_at) AS most_recent
			FROM ingest_errors e
			JOIN ingest_runs r ON e.run_id = r.run_id
			WHERE r.started_at >= ?`
		args = append(args, r.Options.Since)
	}
	query += ` GROUP BY error_code ORDER BY count DESC LIMIT 10`
	if err := db.Raw(query, args...).Scan(&r.Errors).Error; err != nil {
		return fmt.Errorf("failed to load error breakdown: %w", err)
	}
	return nil
}

func (r *Report) loadCompleteness(db *gorm.DB) error {
	query := `
		SELECT COUNT(*) AS total,
		       SUM(CASE WHEN judge_id IS NULL THEN 1 ELSE 0 END) AS no_judge,
		       SUM(CASE WHEN court_id IS NULL THEN 1 ELSE 0 END) AS no_court,
		       SUM(CASE WHEN case_type_id IS NULL THEN 1 ELSE 0 END) AS no_case_type,
		       SUM(CASE WHEN docket_text IS NULL OR docket_text = '' THEN 1 ELSE 0 END) AS no_docket
		FROM cases`
	args := []interface{}{}
	if r.Options.Since != "" {
		query += ` WHERE filed_date >= ?`
		args = append(args, r.Options.Since)
	}
	if err := db.Raw(query, args...).Scan(&r.Completeness).Error; err != nil {
		return fmt.Errorf("failed to load completeness: %w", err)
	}
	return nil
}

func (r *Report) loadDateSanity(db *gorm.DB) error {
	query := `SELECT COALESCE(MIN(filed_date), '') AS min_date, COALESCE(MAX(filed_date), '') AS max_date FROM cases`
	args := []interface{}{}
	if r.Options.Since != "" {
		query += ` WHERE filed_date >= ?`
		args = append(args, r.Options.Since)
	}
	if err := db.Raw(query, args...).Scan(&r.Dates).Error; err != nil {
		return fmt.Errorf("failed to load date range: %w", err)
	}

	badQuery := `SELECT COUNT(*) FROM ingest_errors WHERE error_code = 'BAD_DATE'`
	badArgs := []interface{}{}
	if r.Options.RunID != 0 {
		badQuery += ` AND run_id = ?`
		badArgs = append(badArgs, r.Options.RunID)
	}
	if err := db.Raw(badQuery, badArgs...).Scan(&r.Dates.BadDates).Error; err != nil {
		return fmt.Errorf("failed to load bad date count: %w", err)
	}
	return nil
}

func (r *Report) loadEntityStats(db *gorm.DB) error {
	err := db.Raw(`
		SELECT COUNT(DISTINCT full_name) AS distinct_names,
		       COUNT(DISTINCT normalized_name) AS distinct_normalized,
		       COUNT(*) AS total
		FROM judges`).Scan(&r.Judges).Error
	if err != nil {
		return fmt.Errorf("failed to load judge stats: %w", err)
	}

	err = db.Raw(`
		SELECT COUNT(DISTINCT name) AS distinct_names,
		       COUNT(DISTINCT normalized_name) AS distinct_normalized,
		       COUNT(*) AS total
		FROM courts`).Scan(&r.Courts).Error
	if err != nil {
		return fmt.Errorf("failed to load court stats: %w", err)
	}
	return nil
}

func (r *Report) loadPartyCoverage(db *gorm.DB) error {
	err := db.Raw(`
		WITH per_case AS (
			SELECT case_id,
			       MAX(CASE WHEN role = 'plaintiff' THEN 1 ELSE 0 END) AS has_plaintiff,
			       MAX(CASE WHEN role = 'defendant' THEN 1 ELSE 0 END) AS has_defendant
			FROM case_parties
			GROUP BY case_id
		)
		SELECT COUNT(*) AS cases_with_parties,
		       COALESCE(SUM(has_plaintiff), 0) AS cases_with_plaintiff,
		       COALESCE(SUM(has_defendant), 0) AS cases_with_defendant
		FROM per_case`).Scan(&r.Parties).Error
	if err != nil {
		return fmt.Errorf("failed to load party coverage: %w", err)
	}

	err = db.Raw(`
		SELECT role, COUNT(*) AS count
		FROM case_parties
		GROUP BY role
		ORDER BY count DESC
		LIMIT 10`).Scan(&r.Roles).Error
	if err != nil {
		return fmt.Errorf("failed to load role counts: %w", err)
	}
	return nil
}

// Render writes the human-readable report.
func (r *Report) Render(w io.Writer) {
	scope := "all-time (lifetime aggregates)"
	if r.Options.RunID != 0 {
		scope = fmt.Sprintf("run_id=%d", r.Options.RunID)
	} else if r.Options.Since != "" {
		scope = fmt.Sprintf("cases filed on/after %s", r.Options.Since)
	}

	fmt.Fprintln(w, "============================================================")
	fmt.Fprintln(w, "Data Quality Report")
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintf(w, "Scope: %s\n", scope)
	fmt.Fprintf(w, "Generated: %s UTC\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintln(w, "\n--- Volume Summary ---")
	fmt.Fprintf(w, "Total Records: %d\n", r.Volume.TotalRecords)
	fmt.Fprintf(w, "  Inserted:    %d\n", r.Volume.Inserted)
	fmt.Fprintf(w, "  Updated:     %d\n", r.Volume.Updated)
	fmt.Fprintf(w, "  Failed:      %d\n", r.Volume.Failed)
	if r.Volume.TotalRecords > 0 {
		fmt.Fprintf(w, "  Failed %%:    %.1f%%\n", percent(r.Volume.Failed, r.Volume.TotalRecords))
	}

	fmt.Fprintln(w, "\n--- Error Breakdown (Top 10) ---")
	if len(r.Errors) == 0 {
		fmt.Fprintln(w, "No errors found")
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "%-30s %8d  last: %s\n", e.ErrorCode, e.Count, e.MostRecent)
	}

	fmt.Fprintln(w, "\n--- Completeness Checks (Cases) ---")
	fmt.Fprintf(w, "Total Cases:       %d\n", r.Completeness.Total)
	if r.Completeness.Total > 0 {
		fmt.Fprintf(w, "Missing Judge:     %d (%.1f%%)\n", r.Completeness.NoJudge, percent(r.Completeness.NoJudge, r.Completeness.Total))
		fmt.Fprintf(w, "Missing Court:     %d (%.1f%%)\n", r.Completeness.NoCourt, percent(r.Completeness.NoCourt, r.Completeness.Total))
		fmt.Fprintf(w, "Missing Case Type: %d (%.1f%%)\n", r.Completeness.NoCaseType, percent(r.Completeness.NoCaseType, r.Completeness.Total))
		fmt.Fprintf(w, "Missing Docket:    %d (%.1f%%)\n", r.Completeness.NoDocket, percent(r.Completeness.NoDocket, r.Completeness.Total))
	}

	fmt.Fprintln(w, "\n--- Date Sanity ---")
	if r.Dates.MinDate != "" {
		fmt.Fprintf(w, "Min Filed Date: %s\n", r.Dates.MinDate)
		fmt.Fprintf(w, "Max Filed Date: %s\n", r.Dates.MaxDate)
	} else {
		fmt.Fprintln(w, "No dates found")
	}
	fmt.Fprintf(w, "Invalid Dates:  %d\n", r.Dates.BadDates)

	fmt.Fprintln(w, "\n--- Entity Normalization Sanity ---")
	fmt.Fprintln(w, "Judges:")
	fmt.Fprintf(w, "  Distinct Names:      %d\n", r.Judges.DistinctNames)
	fmt.Fprintf(w, "  Distinct Normalized: %d\n", r.Judges.DistinctNormalized)
	fmt.Fprintf(w, "  Total Rows:          %d\n", r.Judges.Total)
	fmt.Fprintln(w, "Courts:")
	fmt.Fprintf(w, "  Distinct Names:      %d\n", r.Courts.DistinctNames)
	fmt.Fprintf(w, "  Distinct Normalized: %d\n", r.Courts.DistinctNormalized)
	fmt.Fprintf(w, "  Total Rows:          %d\n", r.Courts.Total)

	fmt.Fprintln(w, "\n--- Parties Coverage ---")
	fmt.Fprintf(w, "Cases with Parties: %d\n", r.Parties.CasesWithParties)
	if r.Parties.CasesWithParties > 0 {
		fmt.Fprintf(w, "  With Plaintiff:   %d (%.1f%%)\n", r.Parties.CasesWithPlaintiff, percent(r.Parties.CasesWithPlaintiff, r.Parties.CasesWithParties))
		fmt.Fprintf(w, "  With Defendant:   %d (%.1f%%)\n", r.Parties.CasesWithDefendant, percent(r.Parties.CasesWithDefendant, r.Parties.CasesWithParties))
	}
	fmt.Fprintln(w, "\nTop Party Roles:")
	for _, role := range r.Roles {
		fmt.Fprintf(w, "  %-15s %8d\n", role.Role, role.Count)
	}
}

// ExitCode returns 1 when the failure rate exceeds 5% or any completeness
// gap exceeds 10%, for CI-style quality gating.
func (r *Report) ExitCode() int {
	if r.Volume.TotalRecords > 0 && percent(r.Volume.Failed, r.Volume.TotalRecords) > 5 {
		return 1
	}
	if r.Completeness.Total > 0 {
		if percent(r.Completeness.NoJudge, r.Completeness.Total) > 10 ||
			percent(r.Completeness.NoCourt, r.Completeness.Total) > 10 ||
			percent(r.Completeness.NoCaseType, r.Completeness.Total) > 10 {
			return 1
		}
	}
	return 0
}

func percent(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator) * 100
}
