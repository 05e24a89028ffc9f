package ingest

import (
	"errors"
	"testing"

	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/database"
)

func TestResolveCourtCollapsesSpellings(t *testing.T) {
	db := setupTestDB(t)
	r := testResolver(t)

	id1, err := r.ResolveCourt(db, "S.D.N.Y.")
	if err != nil {
		t.Fatalf("ResolveCourt error: %v", err)
	}
	id2, err := r.ResolveCourt(db, "S.D.N.Y")
	if err != nil {
		t.Fatalf("ResolveCourt error: %v", err)
	}
	if id1 != id2 {
		t.Errorf("expected same court id for spelling variants, got %d and %d", id1, id2)
	}

	var count int64
	db.Model(&database.Court{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 court row, got %d", count)
	}

	// Two distinct raw spellings, two variation rows
	var variations []database.CourtNameVariation
	db.Where("court_id = ?", id1).Find(&variations)
	if len(variations) != 2 {
		t.Fatalf("expected 2 variation rows, got %d", len(variations))
	}
	for _, v := range variations {
		if v.SeenCount != 1 {
			t.Errorf("variation %q seen_count = %d, want 1", v.RawName, v.SeenCount)
		}
	}

	// Display name keeps whichever raw form arrived first
	var court database.Court
	db.First(&court, id1)
	if court.Name != "S.D.N.Y." {
		t.Errorf("court display name = %q, want first-seen raw form", court.Name)
	}
}

func TestResolveCourtRepeatIncrementsSeenCount(t *testing.T) {
	db := setupTestDB(t)
	r := testResolver(t)

	id, err := r.ResolveCourt(db, "S.D.N.Y.")
	if err != nil {
		t.Fatalf("ResolveCourt error: %v", err)
	}
	if _, err := r.ResolveCourt(db, "S.D.N.Y."); err != nil {
		t.Fatalf("ResolveCourt error: %v", err)
	}

	var variation database.CourtNameVariation
	if err := db.Where("court_id = ? AND raw_name = ?", id, "S.D.N.Y.").First(&variation).Error; err != nil {
		t.Fatalf("variation row not found: %v", err)
	}
	if variation.SeenCount != 2 {
		t.Errorf("seen_count = %d, want 2", variation.SeenCount)
	}
}

func TestResolveCourtEmpty(t *testing.T) {
	db := setupTestDB(t)
	r := testResolver(t)

	_, err := r.ResolveCourt(db, "")
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Code != CodeEmptyRequiredField {
		t.Errorf("expected EMPTY_REQUIRED_FIELD validation error, got %v", err)
	}
}

func TestResolveJudgeVariants(t *testing.T) {
	db := setupTestDB(t)
	r := testResolver(t)

	id1, err := r.ResolveJudge(db, "Hon. Maria Rodriguez")
	if err != nil {
		t.Fatalf("ResolveJudge error: %v", err)
	}
	id2, err := r.ResolveJudge(db, "Judge Maria Rodriguez")
	if err != nil {
		t.Fatalf("ResolveJudge error: %v", err)
	}
	if id1 == nil || id2 == nil {
		t.Fatal("expected judge ids, got nil")
	}
	if *id1 != *id2 {
		t.Errorf("expected same judge id for honorific variants, got %d and %d", *id1, *id2)
	}

	var variations []database.JudgeNameVariation
	db.Where("judge_id = ?", *id1).Find(&variations)
	if len(variations) != 2 {
		t.Errorf("expected 2 variation rows, got %d", len(variations))
	}
}

func TestResolveJudgeAbsent(t *testing.T) {
	db := setupTestDB(t)
	r := testResolver(t)

	for _, raw := range []string{"", "Hon.", "Judge"} {
		id, err := r.ResolveJudge(db, raw)
		if err != nil {
			t.Errorf("ResolveJudge(%q) error: %v", raw, err)
		}
		if id != nil {
			t.Errorf("ResolveJudge(%q) = %d, want nil (no judge)", raw, *id)
		}
	}
}

func TestResolveCaseType(t *testing.T) {
	db := setupTestDB(t)
	r := testResolver(t)

	id1, err := r.ResolveCaseType(db, "Civil")
	if err != nil {
		t.Fatalf("ResolveCaseType error: %v", err)
	}
	id2, err := r.ResolveCaseType(db, "  CIVIL ")
	if err != nil {
		t.Fatalf("ResolveCaseType error: %v", err)
	}
	if id1 != id2 {
		t.Errorf("expected case types to dedup case-insensitively, got %d and %d", id1, id2)
	}

	var caseType database.CaseType
	db.First(&caseType, id1)
	if caseType.Name != "civil" {
		t.Errorf("case type stored as %q, want lowercase", caseType.Name)
	}
}

func TestResolvePartyProvenance(t *testing.T) {
	db := setupTestDB(t)
	r := testResolver(t)

	id1, err := r.ResolveParty(db, "Acme Corp")
	if err != nil {
		t.Fatalf("ResolveParty error: %v", err)
	}
	id2, err := r.ResolveParty(db, "ACME   CORP")
	if err != nil {
		t.Fatalf("ResolveParty error: %v", err)
	}
	if id1 != id2 {
		t.Errorf("expected same party id for case variants, got %d and %d", id1, id2)
	}

	// Suffix variants stay distinct
	id3, err := r.ResolveParty(db, "Acme Corporation")
	if err != nil {
		t.Fatalf("ResolveParty error: %v", err)
	}
	if id3 == id1 {
		t.Error("Corp and Corporation should resolve to distinct parties")
	}

	var variations []database.PartyNameVariation
	db.Where("party_id = ?", id1).Find(&variations)
	if len(variations) != 2 {
		t.Errorf("expected 2 variation rows for party, got %d", len(variations))
	}
}

func TestResolverCacheConsistentWithStore(t *testing.T) {
	db := setupTestDB(t)

	// Two resolvers with separate caches against the same store must
	// agree on ids: the store is the source of truth.
	r1 := testResolver(t)
	r2 := testResolver(t)

	id1, err := r1.ResolveCourt(db, "N.D. Cal.")
	if err != nil {
		t.Fatalf("ResolveCourt error: %v", err)
	}
	id2, err := r2.ResolveCourt(db, "n.d. cal.")
	if err != nil {
		t.Fatalf("ResolveCourt error: %v", err)
	}
	if id1 != id2 {
		t.Errorf("cache-miss path returned %d, store has %d", id2, id1)
	}
}
