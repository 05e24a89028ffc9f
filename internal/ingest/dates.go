package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	mdyDateRe = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{4})$`)
)

// mdyFallbackFormats are tried last, for zero-padded numeric forms the
// stricter regex path did not accept.
var mdyFallbackFormats = []string{
	"01/02/2006",
	"01-02-2006",
}

// monthNameFormats cover "Oct 3, 2024" and "October 3, 2024".
var monthNameFormats = []string{
	"Jan 2, 2006",
	"January 2, 2006",
}

// ResolveDate parses a docket date string assuming month-day-year ordering
// whenever ambiguous. It returns a pure calendar date at UTC midnight.
//
// Resolution order, first match wins:
//  1. Strict ISO YYYY-MM-DD
//  2. Numeric M-D-YYYY or M/D/YYYY with 1-2 digit month/day
//  3. Month-name forms, abbreviated or full
//  4. Zero-padded MM/DD/YYYY or MM-DD-YYYY
func ResolveDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, ErrMissingDate
	}

	// 1) Strict ISO
	if isoDateRe.MatchString(s) {
		if t, err := time.ParseInLocation("2006-01-02", s, time.UTC); err == nil {
			return t, nil
		}
		return time.Time{}, &BadDateError{Input: s, Reason: "invalid ISO date"}
	}

	// 2) Numeric MDY allowing single-digit month/day. A match here is
	// terminal: out-of-range values like 13-40-2024 fail rather than
	// falling through.
	if m := mdyDateRe.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		t, err := calendarDate(year, month, day)
		if err != nil {
			return time.Time{}, &BadDateError{Input: s, Reason: err.Error()}
		}
		return t, nil
	}

	// 3) Month-name forms
	for _, format := range monthNameFormats {
		if t, err := time.ParseInLocation(format, s, time.UTC); err == nil {
			return t, nil
		}
	}

	// 4) Zero-padded numeric fallback
	for _, format := range mdyFallbackFormats {
		if t, err := time.ParseInLocation(format, s, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &BadDateError{Input: s, Reason: "unrecognized date format"}
}

// calendarDate builds a date and rejects values time.Date would silently
// normalize, e.g. day 40 rolling into the next month.
func calendarDate(year, month, day int) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month %d out of range", month)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return time.Time{}, fmt.Errorf("day %d out of range for month %d", day, month)
	}
	return t, nil
}
