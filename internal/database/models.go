package database

import (
	"time"
)

// Court is a normalized court entity. Name keeps whichever raw form
// arrived first; NormalizedName is the dedup key.
type Court struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name"`
	NormalizedName string    `json:"normalized_name" gorm:"uniqueIndex"`
	CreatedAt      time.Time `json:"created_at"`
}

// Judge is a normalized judge entity. Cases without a judge carry a NULL
// judge_id rather than a placeholder row.
type Judge struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	FullName       string    `json:"full_name"`
	NormalizedName string    `json:"normalized_name" gorm:"uniqueIndex"`
	CreatedAt      time.Time `json:"created_at"`
}

type CaseType struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

type Party struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name"`
	NormalizedName string    `json:"normalized_name" gorm:"uniqueIndex"`
	CreatedAt      time.Time `json:"created_at"`
}

// Case is the upsert target; CaseNumber is the business key and every
// other mutable field is fully overwritten on re-ingestion.
type Case struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CaseNumber string    `json:"case_number" gorm:"uniqueIndex"`
	CourtID    uint      `json:"court_id"`
	JudgeID    *uint     `json:"judge_id"`
	CaseTypeID uint      `json:"case_type_id"`
	Title      string    `json:"title"`
	FiledDate  time.Time `json:"filed_date"`
	DocketText string    `json:"docket_text" gorm:"type:text"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CaseParty links a case to a party under one role; the triple is the
// primary key so duplicate links are silently deduplicated.
type CaseParty struct {
	CaseID  uint   `json:"case_id" gorm:"primaryKey;autoIncrement:false"`
	PartyID uint   `json:"party_id" gorm:"primaryKey;autoIncrement:false"`
	Role    string `json:"role" gorm:"primaryKey"`
}

// CourtNameVariation records every raw spelling ever observed for a court.
type CourtNameVariation struct {
	CourtID    uint      `json:"court_id" gorm:"primaryKey;autoIncrement:false"`
	RawName    string    `json:"raw_name" gorm:"primaryKey"`
	SeenCount  int       `json:"seen_count"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

type JudgeNameVariation struct {
	JudgeID    uint      `json:"judge_id" gorm:"primaryKey;autoIncrement:false"`
	RawName    string    `json:"raw_name" gorm:"primaryKey"`
	SeenCount  int       `json:"seen_count"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

type PartyNameVariation struct {
	PartyID    uint      `json:"party_id" gorm:"primaryKey;autoIncrement:false"`
	RawName    string    `json:"raw_name" gorm:"primaryKey"`
	SeenCount  int       `json:"seen_count"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// IngestRun tracks one pipeline execution over one input batch. A row
// without FinishedAt signals an aborted run.
type IngestRun struct {
	RunID         uint       `json:"run_id" gorm:"primaryKey;column:run_id"`
	SourceName    string     `json:"source_name"`
	SourceURI     string     `json:"source_uri"`
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at"`
	TotalRead     int        `json:"total_read"`
	TotalInserted int        `json:"total_inserted"`
	TotalUpdated  int        `json:"total_updated"`
	TotalFailed   int        `json:"total_failed"`
}

// IngestError is one deduplicated failure within a run; RecordHash is the
// idempotency key, so a byte-identical bad record bumps RetryCount instead
// of inserting a new row.
type IngestError struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RunID        uint      `json:"run_id" gorm:"uniqueIndex:idx_run_record_hash"`
	RecordHash   string    `json:"record_hash" gorm:"uniqueIndex:idx_run_record_hash"`
	CaseNumber   string    `json:"case_number"`
	ErrorCode    string    `json:"error_code"`
	ErrorMessage string    `json:"error_message"`
	RetryCount   int       `json:"retry_count"`
	FirstSeenAt  time.Time `json:"first_seen_at"`
	LastSeenAt   time.Time `json:"last_seen_at"`
	Details      string    `json:"details" gorm:"type:text"`
}

func (Court) TableName() string {
	return "courts"
}

func (Judge) TableName() string {
	return "judges"
}

func (CaseType) TableName() string {
	return "case_types"
}

func (Party) TableName() string {
	return "parties"
}

func (Case) TableName() string {
	return "cases"
}

func (CaseParty) TableName() string {
	return "case_parties"
}

func (CourtNameVariation) TableName() string {
	return "court_name_variations"
}

func (JudgeNameVariation) TableName() string {
	return "judge_name_variations"
}

func (PartyNameVariation) TableName() string {
	return "party_name_variations"
}

func (IngestRun) TableName() string {
	return "ingest_runs"
}

func (IngestError) TableName() string {
	return "ingest_errors"
}
