package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() EffectiveParameters {
	return EffectiveParameters{
		PurchasePrice:          465000,
		SquareFeet:             1400,
		PropertyAge:            20,
		Condition:              ConditionGood,
		DownPayment:            350000,
		RatePercent:            6.75,
		LoanTermYears:          30,
		InvestmentHorizonYears: 5,
	}
}

func TestValidate_Valid(t *testing.T) {
	p := validParams()
	require.NoError(t, p.Validate())
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*EffectiveParameters)
		contains string
	}{
		{"zero price", func(p *EffectiveParameters) { p.PurchasePrice = 0 }, "PurchasePrice"},
		{"down payment exceeds price", func(p *EffectiveParameters) { p.DownPayment = 500000 }, "DownPayment"},
		{"negative rate", func(p *EffectiveParameters) { p.RatePercent = -1 }, "RatePercent"},
		{"zero loan term", func(p *EffectiveParameters) { p.LoanTermYears = 0 }, "LoanTermYears"},
		{"unknown condition", func(p *EffectiveParameters) { p.Condition = "pristine" }, "Condition"},
		{"vacancy above 100", func(p *EffectiveParameters) { p.VacancyRatePercent = 150 }, "VacancyRatePercent"},
		{"zero horizon", func(p *EffectiveParameters) { p.InvestmentHorizonYears = 0 }, "InvestmentHorizonYears"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestValidate_ZeroRateAllowed(t *testing.T) {
	p := validParams()
	p.RatePercent = 0
	assert.NoError(t, p.Validate())
}
