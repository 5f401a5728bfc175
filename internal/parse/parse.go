// Package parse normalizes the loosely-formatted raw strings that listing
// rows carry: currency amounts like "$2,999", tax blurbs like
// "Taxes: $4,800 / Annually", and year-built values like "Built in 1987".
package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/stwalsh4118/dealsheet/internal/errors"
)

var amountPattern = regexp.MustCompile(`\$?([\d,]+(?:\.\d+)?)`)

var yearPattern = regexp.MustCompile(`(\d{4})`)

// Currency extracts the first dollar amount from a raw string, stripping the
// currency symbol and thousands separators. Returns a FormatError for the
// named field when no amount is present.
func Currency(field, raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, &apperrors.FormatError{Field: field, Raw: raw}
	}
	match := amountPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return 0, &apperrors.FormatError{Field: field, Raw: raw}
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", ""), 64)
	if err != nil {
		return 0, &apperrors.FormatError{Field: field, Raw: raw}
	}
	return value, nil
}

// AnnualTax extracts the annual tax figure from a raw tax string. The listing
// data stores taxes as annual amounts; callers divide by 12 for the monthly
// figure.
func AnnualTax(raw string) (float64, error) {
	return Currency("tax_information", raw)
}

// MonthlyRent extracts the monthly rent figure from a raw rent value, which
// may be a plain number or a formatted string.
func MonthlyRent(raw string) (float64, error) {
	return Currency("estimated_rent", raw)
}

// YearBuilt extracts a plausible 4-digit construction year from a raw value
// like "1987" or "Built in 1987". Years outside 1800..current are rejected.
func YearBuilt(raw string, now time.Time) (int, error) {
	match := yearPattern.FindStringSubmatch(raw)
	if match == nil {
		return 0, &apperrors.FormatError{Field: "year_built", Raw: raw}
	}
	year, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, &apperrors.FormatError{Field: "year_built", Raw: raw}
	}
	if year < 1800 || year > now.Year() {
		return 0, &apperrors.FormatError{Field: "year_built", Raw: raw}
	}
	return year, nil
}

// PropertyAge converts a raw year-built value into an age in years relative
// to now.
func PropertyAge(raw string, now time.Time) (int, error) {
	year, err := YearBuilt(raw, now)
	if err != nil {
		return 0, err
	}
	return now.Year() - year, nil
}
