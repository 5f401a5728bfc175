package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// EffectiveParameters is the fully-merged parameter set for one analysis run:
// script defaults overridden by config-file values overridden by CLI flags,
// plus the purchase price and square footage/age once the listing row has
// been folded in. Read-only after validation.
type EffectiveParameters struct {
	PurchasePrice float64   `validate:"gt=0"`
	SquareFeet    float64   `validate:"gte=0"`
	PropertyAge   int       `validate:"gte=0"`
	Condition     Condition `validate:"oneof=poor fair good excellent"`

	DownPayment      float64 `validate:"gte=0,ltefield=PurchasePrice"`
	RatePercent      float64 `validate:"gte=0"`
	LoanTermYears    int     `validate:"gt=0"`
	InsuranceAnnual  float64 `validate:"gte=0"`
	MiscMonthly      float64 `validate:"gte=0"`
	UtilitiesMonthly float64 `validate:"gte=0"`

	VacancyRatePercent float64 `validate:"gte=0,lte=100"`
	MgmtFeePercent     float64 `validate:"gte=0,lte=100"`
	MaintenancePercent float64 `validate:"gte=0"`
	CapexPercent       float64 `validate:"gte=0"`
	UseDynamicCapex    bool

	Neighborhood           string
	InvestmentHorizonYears int `validate:"gt=0"`

	// AppreciationOverride is non-nil only when the operator explicitly set a
	// manual rate on the command line. It dominates every other source.
	AppreciationOverride *float64

	FetchRealAppreciation bool
	HistoricalMetric      string
	TargetCity            string
}

var validate = validator.New()

// Validate checks the invariants on a merged parameter set: down payment not
// exceeding purchase price, positive loan term, non-negative rate, known
// condition value. Returns a user-facing error naming the first offending
// field.
func (p *EffectiveParameters) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		first := verrs[0]
		return fmt.Errorf("invalid parameter %s: %s", first.Field(), formatValidationError(first))
	}
	return fmt.Errorf("parameter validation failed: %w", err)
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "this field is required"
	case "gt":
		return "must be greater than " + err.Param()
	case "gte":
		return "must be greater than or equal to " + err.Param()
	case "lt":
		return "must be less than " + err.Param()
	case "lte":
		return "must be less than or equal to " + err.Param()
	case "ltefield":
		return "must not exceed " + err.Param()
	case "oneof":
		return "must be one of: " + err.Param()
	default:
		return "validation failed for tag: " + err.Tag()
	}
}
