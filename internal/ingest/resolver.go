package ingest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/cache"
	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/database"
	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/pkg/logger"
)

// EntityResolver collapses raw entity spellings onto canonical rows with a
// get-or-create protocol: normalize, check the per-run cache, fall through
// to the store, insert when absent. Every call also records the raw
// spelling as a name variation, cache hit or not.
//
// Methods take the active transaction so entity writes commit with the
// batch they belong to. One writer per run; the cache is not shared
// across concurrent runs.
type EntityResolver struct {
	cache cache.EntityCache
	log   *logger.Logger
}

func NewEntityResolver(c cache.EntityCache, log *logger.Logger) *EntityResolver {
	return &EntityResolver{cache: c, log: log}
}

// ResolveCourt returns the court id for a raw court name, creating the
// court on first sight of a new normalized form.
func (r *EntityResolver) ResolveCourt(tx *gorm.DB, rawName string) (uint, error) {
	normalized := NormalizeCourt(rawName)
	if normalized == "" {
		return 0, &ValidationError{Code: CodeEmptyRequiredField, Message: "court name cannot be empty"}
	}

	id, cached := r.cache.Get("court", normalized)
	if !cached {
		var court database.Court
		err := tx.Where("normalized_name = ?", normalized).First(&court).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			court = database.Court{Name: rawName, NormalizedName: normalized}
			if err := tx.Create(&court).Error; err != nil {
				return 0, fmt.Errorf("failed to create court %q: %w", rawName, err)
			}
			r.log.Info("Created new court", "name", rawName, "normalized", normalized)
		} else if err != nil {
			return 0, fmt.Errorf("failed to look up court %q: %w", rawName, err)
		}
		id = court.ID
		r.cache.Set("court", normalized, id)
	}

	if err := r.recordCourtVariation(tx, id, rawName); err != nil {
		return 0, err
	}
	return id, nil
}

// ResolveJudge returns the judge id for a raw judge name, or nil when the
// input is empty or honorific-only. A record without a judge is valid.
func (r *EntityResolver) ResolveJudge(tx *gorm.DB, rawName string) (*uint, error) {
	if rawName == "" {
		return nil, nil
	}

	normalized := NormalizeJudge(rawName)
	if normalized == "" {
		return nil, nil
	}

	id, cached := r.cache.Get("judge", normalized)
	if !cached {
		var judge database.Judge
		err := tx.Where("normalized_name = ?", normalized).First(&judge).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			judge = database.Judge{FullName: rawName, NormalizedName: normalized}
			if err := tx.Create(&judge).Error; err != nil {
				return nil, fmt.Errorf("failed to create judge %q: %w", rawName, err)
			}
			r.log.Info("Created new judge", "name", rawName, "normalized", normalized)
		} else if err != nil {
			return nil, fmt.Errorf("failed to look up judge %q: %w", rawName, err)
		}
		id = judge.ID
		r.cache.Set("judge", normalized, id)
	}

	if err := r.recordJudgeVariation(tx, id, rawName); err != nil {
		return nil, err
	}
	return &id, nil
}

// ResolveCaseType returns the case type id for a raw type name. Case types
// are stored lowercase and have no variation table.
func (r *EntityResolver) ResolveCaseType(tx *gorm.DB, rawName string) (uint, error) {
	name := strings.ToLower(strings.TrimSpace(rawName))
	if name == "" {
		return 0, &ValidationError{Code: CodeEmptyRequiredField, Message: "case_type cannot be empty"}
	}

	if id, cached := r.cache.Get("case_type", name); cached {
		return id, nil
	}

	var caseType database.CaseType
	err := tx.Where("name = ?", name).First(&caseType).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		caseType = database.CaseType{Name: name}
		if err := tx.Create(&caseType).Error; err != nil {
			return 0, fmt.Errorf("failed to create case type %q: %w", name, err)
		}
		r.log.Info("Created new case type", "name", name)
	} else if err != nil {
		return 0, fmt.Errorf("failed to look up case type %q: %w", name, err)
	}

	r.cache.Set("case_type", name, caseType.ID)
	return caseType.ID, nil
}

// ResolveParty returns the party id for a raw party name.
func (r *EntityResolver) ResolveParty(tx *gorm.DB, rawName string) (uint, error) {
	normalized := NormalizeParty(rawName)
	if normalized == "" {
		return 0, &ValidationError{Code: CodeEmptyRequiredField, Message: "party name cannot be empty"}
	}

	id, cached := r.cache.Get("party", normalized)
	if !cached {
		var party database.Party
		err := tx.Where("normalized_name = ?", normalized).First(&party).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			party = database.Party{Name: rawName, NormalizedName: normalized}
			if err := tx.Create(&party).Error; err != nil {
				return 0, fmt.Errorf("failed to create party %q: %w", rawName, err)
			}
		} else if err != nil {
			return 0, fmt.Errorf("failed to look up party %q: %w", rawName, err)
		}
		id = party.ID
		r.cache.Set("party", normalized, id)
	}

	if err := r.recordPartyVariation(tx, id, rawName); err != nil {
		return 0, err
	}
	return id, nil
}

// Variation rows are the audit trail of every raw spelling ever seen.
// Insert-or-increment keeps one row per (entity, raw string) with a
// repetition counter.

func (r *EntityResolver) recordCourtVariation(tx *gorm.DB, courtID uint, rawName string) error {
	now := time.Now().UTC()
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "court_id"}, {Name: "raw_name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"seen_count":   gorm.Expr("seen_count + 1"),
			"last_seen_at": now,
		}),
	}).Create(&database.CourtNameVariation{
		CourtID:    courtID,
		RawName:    rawName,
		SeenCount:  1,
		LastSeenAt: now,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to record court variation %q: %w", rawName, err)
	}
	return nil
}

func (r *EntityResolver) recordJudgeVariation(tx *gorm.DB, judgeID uint, rawName string) error {
	now := time.Now().UTC()
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "judge_id"}, {Name: "raw_name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"seen_count":   gorm.Expr("seen_count + 1"),
			"last_seen_at": now,
		}),
	}).Create(&database.JudgeNameVariation{
		JudgeID:    judgeID,
		RawName:    rawName,
		SeenCount:  1,
		LastSeenAt: now,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to record judge variation %q: %w", rawName, err)
	}
	return nil
}

func (r *EntityResolver) recordPartyVariation(tx *gorm.DB, partyID uint, rawName string) error {
	now := time.Now().UTC()
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "party_id"}, {Name: "raw_name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"seen_count":   gorm.Expr("seen_count + 1"),
			"last_seen_at": now,
		}),
	}).Create(&database.PartyNameVariation{
		PartyID:    partyID,
		RawName:    rawName,
		SeenCount:  1,
		LastSeenAt: now,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to record party variation %q: %w", rawName, err)
	}
	return nil
}
