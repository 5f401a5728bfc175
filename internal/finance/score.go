package finance

import (
	"fmt"
	"math"

	"github.com/stwalsh4118/dealsheet/internal/models"
)

// CapRateUnavailable is the rating reported when dynamic CapEx mode is off
// and no NOI-based cap rate exists. Degraded data, not an error.
const CapRateUnavailable = "N/A (Requires Dynamic CapEx mode)"

// Score bounds of the weighted rubric. Max 2.5+2.5+2.0+2.0, min
// -2.5-1.5-2.0-1.0; the raw sum is mapped onto 0-10 across that range.
const (
	maxRawPoints = 9.0
	minRawPoints = -7.0
)

func scoreCashflow(netMonthly float64) models.MetricScore {
	switch {
	case netMonthly > 300:
		return models.MetricScore{Rating: "Excellent", Points: 2.5}
	case netMonthly > 100:
		return models.MetricScore{Rating: "Good", Points: 1.5}
	case netMonthly > 0:
		return models.MetricScore{Rating: "Fair", Points: 0.5}
	case netMonthly == 0:
		return models.MetricScore{Rating: "Neutral", Points: 0}
	case netMonthly > -100:
		return models.MetricScore{Rating: "Poor", Points: -0.5}
	case netMonthly > -300:
		return models.MetricScore{Rating: "Very Poor", Points: -1.5}
	default:
		return models.MetricScore{Rating: "Extremely Poor", Points: -2.5}
	}
}

func scoreCashOnCash(roiPercent float64) models.MetricScore {
	switch {
	case roiPercent > 12:
		return models.MetricScore{Rating: "Excellent", Points: 2.5}
	case roiPercent > 8:
		return models.MetricScore{Rating: "Good", Points: 1.5}
	case roiPercent > 5:
		return models.MetricScore{Rating: "Fair", Points: 0.5}
	case roiPercent > 2:
		return models.MetricScore{Rating: "Neutral", Points: 0}
	case roiPercent >= 0:
		return models.MetricScore{Rating: "Poor", Points: -0.5}
	default:
		return models.MetricScore{Rating: "Very Poor", Points: -1.5}
	}
}

func scoreCapRate(capRate *float64) models.MetricScore {
	if capRate == nil {
		return models.MetricScore{Rating: CapRateUnavailable, Points: 0}
	}
	switch {
	case *capRate > 7:
		return models.MetricScore{Rating: "Excellent", Points: 2.0}
	case *capRate > 5.5:
		return models.MetricScore{Rating: "Good", Points: 1.0}
	case *capRate > 4:
		return models.MetricScore{Rating: "Fair", Points: 0}
	case *capRate > 2.5:
		return models.MetricScore{Rating: "Poor", Points: -1.0}
	default:
		return models.MetricScore{Rating: "Very Poor", Points: -2.0}
	}
}

func scoreAnnualizedROI(roiPercent float64) models.MetricScore {
	switch {
	case roiPercent > 15:
		return models.MetricScore{Rating: "Excellent", Points: 2.0}
	case roiPercent > 10:
		return models.MetricScore{Rating: "Good", Points: 1.0}
	case roiPercent > 7:
		return models.MetricScore{Rating: "Fair", Points: 0.5}
	case roiPercent > 4:
		return models.MetricScore{Rating: "Neutral", Points: 0}
	case roiPercent >= 0:
		return models.MetricScore{Rating: "Poor", Points: -0.5}
	default:
		return models.MetricScore{Rating: "Very Poor", Points: -1.0}
	}
}

// tierLabel maps a normalized 0-10 score to its human-readable tier.
func tierLabel(score float64) string {
	switch {
	case score >= 8.5:
		return "Excellent Investment Prospect!"
	case score >= 6.5:
		return "Good Investment Prospect"
	case score >= 4.0:
		return "Fair Investment Prospect, Potential Upsides"
	case score >= 2.0:
		return "Marginal Investment, Consider Carefully"
	default:
		return "Poor Investment Prospect"
	}
}

// Score applies the weighted rubric to the computed metrics and returns the
// overall 0-10 investment score with per-metric ratings and summary lines.
func Score(cf models.CashflowResult, proj models.ProjectionResult) models.ScoreResult {
	result := models.ScoreResult{
		Cashflow:      scoreCashflow(cf.NetMonthly),
		CashOnCash:    scoreCashOnCash(cf.CashOnCashROI),
		CapRate:       scoreCapRate(cf.CapRate),
		AnnualizedROI: scoreAnnualizedROI(proj.AnnualizedROIPercent),
	}

	result.RawPoints = result.Cashflow.Points +
		result.CashOnCash.Points +
		result.CapRate.Points +
		result.AnnualizedROI.Points

	normalized := (result.RawPoints - minRawPoints) / (maxRawPoints - minRawPoints) * 10
	result.Overall = math.Max(0, math.Min(10, normalized))
	result.Tier = tierLabel(result.Overall)

	result.Summary = []string{
		fmt.Sprintf("Net monthly cashflow: %s", result.Cashflow.Rating),
		fmt.Sprintf("Cash-on-cash ROI: %s", result.CashOnCash.Rating),
		fmt.Sprintf("Cap rate: %s", result.CapRate.Rating),
		fmt.Sprintf("Long-term total returns: %s", result.AnnualizedROI.Rating),
	}

	return result
}
