package ingest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/database"
	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/pkg/logger"
)

// Record is one raw docket object as read from the input batch.
type Record map[string]interface{}

// String returns the trimmed string value for key, or "" when the field is
// absent or not a string.
func (r Record) String(key string) string {
	if v, ok := r[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// Has reports whether the field is present at all, regardless of value.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Outcome actions for an accepted record.
const (
	ActionInserted = "inserted"
	ActionUpdated  = "updated"
)

// Outcome reports what the case upsert did for an accepted record.
type Outcome struct {
	Action string
	CaseID uint
}

var validStatuses = map[string]bool{
	"active":    true,
	"closed":    true,
	"pending":   true,
	"dismissed": true,
}

// Processor validates and writes one record end-to-end.
type Processor struct {
	resolver *EntityResolver
	log      *logger.Logger
}

func NewProcessor(resolver *EntityResolver, log *logger.Logger) *Processor {
	return &Processor{resolver: resolver, log: log}
}

// Process runs the per-record state machine: validate required fields,
// resolve entities, upsert the case, link parties. A returned error means
// the record was rejected with no case or party writes; party-level
// problems are warnings and never reject the record.
func (p *Processor) Process(tx *gorm.DB, record Record) (Outcome, error) {
	caseNumber := record.String("case_number")
	if caseNumber == "" {
		return Outcome{}, &ValidationError{
			Code:    CodeMissingCaseNumber,
			Message: "case_number is required and cannot be empty",
		}
	}

	filedDate, err := ResolveDate(record.String("filed_date"))
	if err != nil {
		return Outcome{}, err
	}

	courtID, err := p.resolver.ResolveCourt(tx, record.String("court"))
	if err != nil {
		return Outcome{}, err
	}

	judgeID, err := p.resolver.ResolveJudge(tx, record.String("judge"))
	if err != nil {
		return Outcome{}, err
	}

	// Case type defaults to civil when the field is absent; a present but
	// blank value is still an error.
	caseType := record.String("case_type")
	if !record.Has("case_type") {
		caseType = "civil"
	}
	caseTypeID, err := p.resolver.ResolveCaseType(tx, caseType)
	if err != nil {
		return Outcome{}, err
	}

	status := strings.ToLower(record.String("status"))
	if !record.Has("status") {
		status = "active"
	}
	if !validStatuses[status] {
		return Outcome{}, &ValidationError{
			Code:    CodeStatusUnmapped,
			Message: fmt.Sprintf("invalid status %q, must be one of: active, closed, pending, dismissed", status),
		}
	}

	outcome, err := p.upsertCase(tx, database.Case{
		CaseNumber: caseNumber,
		CourtID:    courtID,
		JudgeID:    judgeID,
		CaseTypeID: caseTypeID,
		Title:      record.String("title"),
		FiledDate:  filedDate,
		DocketText: record.String("docket_text"),
		Status:     status,
	})
	if err != nil {
		return Outcome{}, err
	}

	p.linkParties(tx, outcome.CaseID, caseNumber, record.String("parties"))

	return outcome, nil
}

// upsertCase inserts a new case or fully overwrites the existing row keyed
// by case_number. Lookup-then-write is race-free under the single-writer
// run model and keeps insert-vs-update observable.
func (p *Processor) upsertCase(tx *gorm.DB, c database.Case) (Outcome, error) {
	var existing database.Case
	err := tx.Where("case_number = ?", c.CaseNumber).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := tx.Create(&c).Error; err != nil {
			return Outcome{}, fmt.Errorf("failed to insert case %q: %w", c.CaseNumber, err)
		}
		return Outcome{Action: ActionInserted, CaseID: c.ID}, nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to look up case %q: %w", c.CaseNumber, err)
	}

	// Full replace of all mutable fields, not a merge. Map form so zero
	// values (empty title, nil judge) overwrite too.
	updates := map[string]interface{}{
		"court_id":     c.CourtID,
		"judge_id":     c.JudgeID,
		"case_type_id": c.CaseTypeID,
		"title":        c.Title,
		"filed_date":   c.FiledDate,
		"docket_text":  c.DocketText,
		"status":       c.Status,
		"updated_at":   time.Now().UTC(),
	}
	if err := tx.Model(&database.Case{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
		return Outcome{}, fmt.Errorf("failed to update case %q: %w", c.CaseNumber, err)
	}
	return Outcome{Action: ActionUpdated, CaseID: existing.ID}, nil
}

// linkParties parses the party string and links each party to the case.
// Failures here are warnings: one bad party name never rejects a record
// that already passed validation, and a case with no parties is legal.
func (p *Processor) linkParties(tx *gorm.DB, caseID uint, caseNumber, partiesStr string) {
	parties := ParseParties(partiesStr)
	if len(parties) == 0 {
		p.log.Warn("No parties found for case", "case_number", caseNumber)
		return
	}

	for _, party := range parties {
		partyID, err := p.resolver.ResolveParty(tx, party.Name)
		if err != nil {
			p.log.Warn("Failed to process party",
				"case_number", caseNumber,
				"party", party.Name,
				"error", err,
			)
			continue
		}

		link := database.CaseParty{CaseID: caseID, PartyID: partyID, Role: party.Role}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
			p.log.Warn("Failed to link party to case",
				"case_number", caseNumber,
				"party", party.Name,
				"error", err,
			)
		}
	}
}
