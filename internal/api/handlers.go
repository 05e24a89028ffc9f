package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/database"
	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/ingest"
	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/internal/search"
	"github.com/Chhaya-Tundwal05/legal-data-ingestion-RAG-pipeline/pkg/logger"
)

// Handlers holds all HTTP handlers. The API is a read-only projection over
// the ingested store; it only ever sees committed, fully-resolved rows.
type Handlers struct {
	db       *gorm.DB
	searcher search.Searcher
	logger   *logger.Logger
}

// NewHandlers creates a new handlers instance. searcher may be nil when no
// semantic-search subsystem is wired in.
func NewHandlers(db *gorm.DB, searcher search.Searcher, logger *logger.Logger) *Handlers {
	return &Handlers{
		db:       db,
		searcher: searcher,
		logger:   logger,
	}
}

// HealthCheck reports service liveness
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

type caseSummary struct {
	CaseNumber string `json:"case_number"`
	Title      string `json:"title"`
	FiledDate  string `json:"filed_date"`
	Status     string `json:"status"`
	Judge      string `json:"judge"`
	Court      string `json:"court"`
}

// ListCases returns case summaries, optionally filtered by judge name
// and/or filing year
func (h *Handlers) ListCases(c *gin.Context) {
	judge := c.Query("judge")
	year := c.Query("year")

	if year != "" && len(year) != 4 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "year must be a 4-digit year",
		})
		return
	}

	query := h.db.Table("cases").
		Select(`cases.case_number, cases.title, cases.filed_date, cases.status,
			COALESCE(judges.full_name, '') AS judge, courts.name AS court`).
		Joins("LEFT JOIN judges ON judges.id = cases.judge_id").
		Joins("JOIN courts ON courts.id = cases.court_id").
		Order("cases.filed_date DESC").
		Limit(200)

	if judge != "" {
		query = query.Where("judges.normalized_name = ?", ingest.NormalizeJudge(judge))
	}
	if year != "" {
		query = query.Where("strftime('%Y', cases.filed_date) = ?", year)
	}

	var rows []struct {
		CaseNumber string
		Title      string
		FiledDate  string
		Status     string
		Judge      string
		Court      string
	}
	if err := query.Scan(&rows).Error; err != nil {
		h.logger.Error("Failed to list cases", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to query cases",
		})
		return
	}

	cases := make([]caseSummary, 0, len(rows))
	for _, row := range rows {
		cases = append(cases, caseSummary{
			CaseNumber: row.CaseNumber,
			Title:      row.Title,
			FiledDate:  formatDate(row.FiledDate),
			Status:     row.Status,
			Judge:      row.Judge,
			Court:      row.Court,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cases,
		"count":   len(cases),
	})
}

type partyInfo struct {
	Name           string `json:"name"`
	NormalizedName string `json:"normalized_name"`
	Role           string `json:"role"`
}

// GetCase returns full case detail with parties
func (h *Handlers) GetCase(c *gin.Context) {
	caseNumber := c.Param("case_number")

	var row struct {
		CaseNumber string
		Title      string
		FiledDate  string
		DocketText string
		Status     string
		Judge      string
		Court      string
		CaseType   string
	}
	err := h.db.Table("cases").
		Select(`cases.case_number, cases.title, cases.filed_date, cases.docket_text,
			cases.status, COALESCE(judges.full_name, '') AS judge,
			courts.name AS court, case_types.name AS case_type`).
		Joins("LEFT JOIN judges ON judges.id = cases.judge_id").
		Joins("JOIN courts ON courts.id = cases.court_id").
		Joins("JOIN case_types ON case_types.id = cases.case_type_id").
		Where("cases.case_number = ?", caseNumber).
		Scan(&row).Error
	if err != nil {
		h.logger.Error("Failed to fetch case", "case_number", caseNumber, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to query case",
		})
		return
	}
	if row.CaseNumber == "" {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "case not found",
		})
		return
	}

	var parties []partyInfo
	err = h.db.Table("case_parties").
		Select("parties.name, parties.normalized_name, case_parties.role").
		Joins("JOIN parties ON parties.id = case_parties.party_id").
		Joins("JOIN cases ON cases.id = case_parties.case_id").
		Where("cases.case_number = ?", caseNumber).
		Order("case_parties.role, parties.name").
		Scan(&parties).Error
	if err != nil {
		h.logger.Error("Failed to fetch parties", "case_number", caseNumber, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to query parties",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"case_number": row.CaseNumber,
			"title":       row.Title,
			"filed_date":  formatDate(row.FiledDate),
			"docket_text": row.DocketText,
			"status":      row.Status,
			"judge":       row.Judge,
			"court":       row.Court,
			"case_type":   row.CaseType,
			"parties":     parties,
		},
	})
}

// SearchCases delegates semantic search over docket text to the search
// subsystem
func (h *Handlers) SearchCases(c *gin.Context) {
	var req struct {
		Query string `json:"query" binding:"required"`
		Limit int    `json:"limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid request body: " + err.Error(),
		})
		return
	}

	req.Query = strings.TrimSpace(req.Query)
	if len(req.Query) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "query must be at least 2 characters",
		})
		return
	}
	if req.Limit == 0 {
		req.Limit = 5
	}
	if req.Limit < 1 || req.Limit > 50 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "limit must be between 1 and 50",
		})
		return
	}

	if h.searcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "semantic search is not configured",
		})
		return
	}

	results, err := h.searcher.Search(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		h.logger.Error("Search failed", "query", req.Query, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "search failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    results,
	})
}

// GetRun returns one ingestion run with its error-code breakdown
func (h *Handlers) GetRun(c *gin.Context) {
	var run database.IngestRun
	if err := h.db.Where("run_id = ?", c.Param("id")).First(&run).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "run not found",
		})
		return
	}

	var breakdown []struct {
		ErrorCode string `json:"error_code"`
		Count     int    `json:"count"`
	}
	err := h.db.Table("ingest_errors").
		Select("error_code, COUNT(*) AS count").
		Where("run_id = ?", run.RunID).
		Group("error_code").
		Order("count DESC").
		Scan(&breakdown).Error
	if err != nil {
		h.logger.Error("Failed to fetch error breakdown", "run_id", run.RunID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to query run errors",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"run":    run,
			"errors": breakdown,
		},
	})
}

// formatDate trims a stored timestamp down to its calendar date
func formatDate(s string) string {
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}
