package parser

import (
	"errors"
	"strings"
	"testing"
	"time"

	"carteirab3/internal/apperrors"
)

func TestParseAmbiguousNumber(t *testing.T) {
	t.Run("parses Brazilian formatted values", func(t *testing.T) {
		cases := map[string]float64{
			"1.188,00":       1188.00,
			"R$ 3.050,00":    3050.00,
			"1.234.567,89":   1234567.89,
			"0,80":           0.80,
			`"R$ 30,50"`:     30.50,
			"  R$ 1.000,00 ": 1000.00,
		}

		for input, want := range cases {
			got, err := ParseAmbiguousNumber(input)
			if err != nil {
				t.Errorf("ParseAmbiguousNumber(%q) returned error: %v", input, err)
				continue
			}
			if got == nil || *got != want {
				t.Errorf("ParseAmbiguousNumber(%q) = %v, want %v", input, got, want)
			}
		}
	})

	t.Run("parses American formatted values", func(t *testing.T) {
		cases := map[string]float64{
			"1,188.00":     1188.00,
			"R$13.85":      13.85,
			"1,234,567.89": 1234567.89,
			"3,050.00":     3050.00,
		}

		for input, want := range cases {
			got, err := ParseAmbiguousNumber(input)
			if err != nil {
				t.Errorf("ParseAmbiguousNumber(%q) returned error: %v", input, err)
				continue
			}
			if got == nil || *got != want {
				t.Errorf("ParseAmbiguousNumber(%q) = %v, want %v", input, got, want)
			}
		}
	})

	t.Run("parses values without separators", func(t *testing.T) {
		got, err := ParseAmbiguousNumber("100")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || *got != 100 {
			t.Errorf("ParseAmbiguousNumber(\"100\") = %v, want 100", got)
		}
	})

	t.Run("single separator with two trailing digits is decimal", func(t *testing.T) {
		cases := map[string]float64{
			"30,50":  30.50,
			"30.50":  30.50,
			"0,80":   0.80,
			"13.85":  13.85,
			"100,25": 100.25,
		}

		for input, want := range cases {
			got, err := ParseAmbiguousNumber(input)
			if err != nil {
				t.Errorf("ParseAmbiguousNumber(%q) returned error: %v", input, err)
				continue
			}
			if got == nil || *got != want {
				t.Errorf("ParseAmbiguousNumber(%q) = %v, want %v", input, got, want)
			}
		}
	})

	t.Run("single separator without two trailing digits is thousands", func(t *testing.T) {
		cases := map[string]float64{
			"1.234":     1234,
			"1,234":     1234,
			"1.234.567": 1234567,
			"12,5":      125,
		}

		for input, want := range cases {
			got, err := ParseAmbiguousNumber(input)
			if err != nil {
				t.Errorf("ParseAmbiguousNumber(%q) returned error: %v", input, err)
				continue
			}
			if got == nil || *got != want {
				t.Errorf("ParseAmbiguousNumber(%q) = %v, want %v", input, got, want)
			}
		}
	})

	t.Run("absence sentinels map to nil", func(t *testing.T) {
		for _, input := range []string{"", "-", "   ", " - "} {
			got, err := ParseAmbiguousNumber(input)
			if err != nil {
				t.Errorf("ParseAmbiguousNumber(%q) returned error: %v", input, err)
			}
			if got != nil {
				t.Errorf("ParseAmbiguousNumber(%q) = %v, want nil", input, *got)
			}
		}
	})

	t.Run("unparseable value fails with the raw input", func(t *testing.T) {
		_, err := ParseAmbiguousNumber("abc")
		if !errors.Is(err, apperrors.ErrInvalidNumber) {
			t.Fatalf("expected ErrInvalidNumber, got %v", err)
		}
		if err == nil || !strings.Contains(err.Error(), "abc") {
			t.Errorf("error should carry the offending text, got %v", err)
		}
	})
}

func TestParseBrazilianDate(t *testing.T) {
	t.Run("parses valid dates", func(t *testing.T) {
		got, err := ParseBrazilianDate("31/12/2024")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
		if got == nil || !got.Equal(want) {
			t.Errorf("ParseBrazilianDate(\"31/12/2024\") = %v, want %v", got, want)
		}
	})

	t.Run("absence sentinels map to nil", func(t *testing.T) {
		for _, input := range []string{"", "-", "  "} {
			got, err := ParseBrazilianDate(input)
			if err != nil {
				t.Errorf("ParseBrazilianDate(%q) returned error: %v", input, err)
			}
			if got != nil {
				t.Errorf("ParseBrazilianDate(%q) = %v, want nil", input, got)
			}
		}
	})

	t.Run("rejects calendar-invalid dates", func(t *testing.T) {
		// time.Date would silently roll 31/02 into March; the parser must not.
		_, err := ParseBrazilianDate("31/02/2024")
		if !errors.Is(err, apperrors.ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for 31/02/2024, got %v", err)
		}
	})

	t.Run("rejects malformed shapes", func(t *testing.T) {
		for _, input := range []string{"2024-12-31", "31/12", "aa/bb/cccc", "31/12/2024/00"} {
			_, err := ParseBrazilianDate(input)
			if !errors.Is(err, apperrors.ErrInvalidDate) {
				t.Errorf("ParseBrazilianDate(%q): expected ErrInvalidDate, got %v", input, err)
			}
		}
	})
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  PETR4  "); got == nil || *got != "PETR4" {
		t.Errorf("SanitizeString should trim, got %v", got)
	}
	for _, input := range []string{"", "-", "   "} {
		if got := SanitizeString(input); got != nil {
			t.Errorf("SanitizeString(%q) = %q, want nil", input, *got)
		}
	}
}
