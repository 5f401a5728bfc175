package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/dealsheet/internal/finance"
	"github.com/stwalsh4118/dealsheet/internal/models"
	"github.com/stwalsh4118/dealsheet/internal/services"
)

func sampleAnalysis(dynamic bool) *services.Analysis {
	p := models.EffectiveParameters{
		PurchasePrice:          465000,
		SquareFeet:             1850,
		PropertyAge:            38,
		Condition:              models.ConditionGood,
		DownPayment:            350000,
		RatePercent:            6.75,
		LoanTermYears:          30,
		InsuranceAnnual:        1200,
		MiscMonthly:            50,
		VacancyRatePercent:     5,
		MaintenancePercent:     1,
		CapexPercent:           1,
		UseDynamicCapex:        dynamic,
		InvestmentHorizonYears: 10,
	}

	annualTax := 4800.0
	var capexModel finance.CapexModel = finance.PercentOfPriceCapex{AnnualPercent: p.CapexPercent}
	if dynamic {
		capexModel = finance.ComponentCapex{}
	}
	cashflow := finance.ComputeCashflow(p, 2999, &annualTax, capexModel)

	appreciation := models.AppreciationDecision{
		RatePercent: 7.0,
		Outlook:     models.OutlookManualOverride,
		Source:      services.SourceManualOverride,
		Rank:        services.RankManualOverride,
	}
	projection := finance.Project(p, appreciation.RatePercent, cashflow.NetMonthly)

	return &services.Analysis{
		RunID:        "test-run",
		GeneratedAt:  time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC),
		Address:      "123 Main St, Denver, CO 80205",
		Params:       p,
		Neighborhood: "five_points",
		Appreciation: appreciation,
		Cashflow:     cashflow,
		Projection:   projection,
		Score:        finance.Score(cashflow, projection),
	}
}

func TestRender_Idempotent(t *testing.T) {
	a := sampleAnalysis(false)

	first := Render(a)
	second := Render(a)

	assert.Equal(t, first, second)
}

func TestRender_Sections(t *testing.T) {
	out := Render(sampleAnalysis(false))

	assert.Contains(t, out, "REAL ESTATE INVESTMENT ANALYSIS: 123 Main St, Denver, CO 80205")
	assert.Contains(t, out, "Analysis Date: June 15, 2025")
	assert.Contains(t, out, "PROPERTY & LOAN DETAILS")
	assert.Contains(t, out, "MONTHLY CASHFLOW ANALYSIS")
	assert.Contains(t, out, "LONG-TERM PROJECTION (10 YEARS)")
	assert.Contains(t, out, "DEAL ANALYSIS & SUMMARY")
	assert.Contains(t, out, "Key Performance Indicators:")

	// Percent-of-price mode carries no component table.
	assert.NotContains(t, out, "DETAILED CAPEX BREAKDOWN")
}

func TestRender_CurrencyAndPercentFormatting(t *testing.T) {
	out := Render(sampleAnalysis(false))

	assert.Contains(t, out, "$465,000.00")
	assert.Contains(t, out, "$350,000.00 (75.27%)")
	assert.Contains(t, out, "$115,000.00")
	assert.Contains(t, out, "6.75%")
	// Mortgage payment from the recorded example run.
	assert.Contains(t, out, "$745.89")
}

func TestRender_LabelColumnWidth(t *testing.T) {
	out := Render(sampleAnalysis(false))

	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Purchase Price:") {
			// Value column starts after a 35-character label field.
			assert.Equal(t, "$", string(line[36]))
			return
		}
	}
	t.Fatal("purchase price line not found")
}

func TestRender_DynamicCapexBreakdown(t *testing.T) {
	out := Render(sampleAnalysis(true))

	assert.Contains(t, out, "DETAILED CAPEX BREAKDOWN (DYNAMIC MODE)")
	assert.Contains(t, out, "Roof")
	assert.Contains(t, out, "Water Heater")
	assert.Contains(t, out, "Total Monthly CapEx Reserve:")
	assert.Contains(t, out, "Cap Rate (NOI Based):")
}

func TestRender_UnparseableTaxAnnotated(t *testing.T) {
	a := sampleAnalysis(false)
	a.Cashflow.AnnualTax = nil
	a.Cashflow.MonthlyTax = 0

	out := Render(a)

	assert.Contains(t, out, "$0.00 (Could not parse)")
}

func TestRender_CapRateUnavailableInSummary(t *testing.T) {
	out := Render(sampleAnalysis(false))

	assert.Contains(t, out, finance.CapRateUnavailable)
}

func TestRender_EndsWithRule(t *testing.T) {
	out := Render(sampleAnalysis(false))

	require.True(t, strings.HasSuffix(out, strings.Repeat("=", 80)+"\n"))
}

func TestCapexGuide(t *testing.T) {
	out := CapexGuide()

	assert.Contains(t, out, "CAPEX COMPONENTS REFERENCE GUIDE")
	assert.Contains(t, out, "Roof")
	assert.Contains(t, out, "Driveway")
	assert.Contains(t, out, "$5.50/sqft + $0.00")
	assert.Contains(t, out, "PROPERTY CONDITION MULTIPLIERS")
	assert.Contains(t, out, "excellent:")
}
