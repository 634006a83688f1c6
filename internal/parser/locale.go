// Package parser converts loosely structured brokerage CSV exports into
// typed, database-ready records. It handles the two incompatible numeric
// locale conventions found in Brazilian statements (Brazilian "1.234,56" and
// American "1,234.56"), strict DD/MM/YYYY dates, quoted CSV fields, and the
// per-asset-type column schemas of the consolidated position files.
package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"carteirab3/internal/apperrors"
)

// isAbsent reports whether a raw cell holds the statement absence sentinel:
// empty, whitespace-only, or exactly "-".
func isAbsent(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return trimmed == "" || trimmed == "-"
}

// ParseAmbiguousNumber converts a free-text numeric or currency token into a
// float, detecting whether it uses Brazilian (. thousands, , decimal) or
// American (, thousands, . decimal) separators.
//
// Empty, whitespace-only, and "-" values return (nil, nil): absence, not an
// error. Disambiguation is positional: the separator kind that occurs last is
// the decimal marker. When only one separator kind is present the position
// alone cannot decide, so a length heuristic applies: exactly two digits
// after the last separator means decimal, anything else means thousands
// grouping. Statements mix both conventions across files and columns, so a
// fixed per-column locale table would not survive real exports.
func ParseAmbiguousNumber(raw string) (*float64, error) {
	if isAbsent(raw) {
		return nil, nil
	}

	cleaned := strings.ReplaceAll(raw, "R$", "")
	cleaned = strings.ReplaceAll(cleaned, `"`, "")
	cleaned = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, cleaned)

	if cleaned == "" || cleaned == "-" {
		return nil, nil
	}

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// Brazilian: dots group thousands, comma is the decimal marker.
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			// American: commas group thousands.
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		cleaned = resolveSingleSeparator(cleaned, ",", lastComma)
	case lastDot >= 0:
		cleaned = resolveSingleSeparator(cleaned, ".", lastDot)
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidNumber, raw)
	}
	return &value, nil
}

// resolveSingleSeparator applies the two-trailing-digit heuristic when only
// one separator kind is present: exactly two digits after the last
// occurrence means it is a decimal point, otherwise every occurrence is a
// thousands separator and is dropped.
func resolveSingleSeparator(s, sep string, lastIdx int) string {
	tail := s[lastIdx+1:]
	if len(tail) == 2 && isDigits(tail) {
		head := strings.ReplaceAll(s[:lastIdx], sep, "")
		return head + "." + tail
	}
	return strings.ReplaceAll(s, sep, "")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// ParseBrazilianDate parses a strict DD/MM/YYYY date. Absent values return
// (nil, nil). Calendar validity is checked by reconstructing the date and
// comparing day/month/year back: time.Date normalizes 31/02 to March, which
// must be rejected here, not silently rolled over.
func ParseBrazilianDate(raw string) (*time.Time, error) {
	if isAbsent(raw) {
		return nil, nil
	}

	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: %q (expected DD/MM/YYYY)", apperrors.ErrInvalidDate, raw)
	}

	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, raw)
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, raw)
	}
	return &date, nil
}

// SanitizeString trims a raw cell; absent values become nil.
func SanitizeString(raw string) *string {
	if isAbsent(raw) {
		return nil
	}
	trimmed := strings.TrimSpace(raw)
	return &trimmed
}
