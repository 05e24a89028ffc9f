package ingest

import (
	"errors"
	"fmt"
)

// Error codes recorded in ingest_errors and the quarantine log.
const (
	CodeMissingCaseNumber  = "MISSING_CASE_NUMBER"
	CodeBadDate            = "BAD_DATE"
	CodeEmptyRequiredField = "EMPTY_REQUIRED_FIELD"
	CodeStatusUnmapped     = "STATUS_UNMAPPED"
	CodeUnknown            = "UNKNOWN"
)

// ValidationError rejects a single record; it never aborts the run.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrMissingDate is returned when the filed_date field is empty or absent.
var ErrMissingDate = &ValidationError{Code: CodeBadDate, Message: "filed_date missing"}

// BadDateError is returned when a date string matches no accepted form or
// describes an impossible calendar date.
type BadDateError struct {
	Input  string
	Reason string
}

func (e *BadDateError) Error() string {
	return fmt.Sprintf("filed_date parse failed: %q: %s", e.Input, e.Reason)
}

// ErrorCode classifies an error from record processing into the taxonomy.
// Anything outside the validation types is an unanticipated failure.
func ErrorCode(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Code
	}
	var derr *BadDateError
	if errors.As(err, &derr) {
		return CodeBadDate
	}
	return CodeUnknown
}
