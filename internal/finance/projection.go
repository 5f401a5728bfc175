package finance

import (
	"math"

	"github.com/stwalsh4118/dealsheet/internal/models"
)

// Project compounds appreciation and loan paydown over the investment
// horizon. Cashflow is held flat for the whole horizon: no reinvestment, rent
// growth, or rate change is modeled.
func Project(p models.EffectiveParameters, appreciationRatePercent, netMonthlyCashflow float64) models.ProjectionResult {
	horizon := p.InvestmentHorizonYears
	loan := p.PurchasePrice - p.DownPayment

	futureValue := p.PurchasePrice * math.Pow(1+appreciationRatePercent/100, float64(horizon))
	remaining := RemainingBalance(loan, p.RatePercent, p.LoanTermYears, horizon*12)

	result := models.ProjectionResult{
		HorizonYears:       horizon,
		FutureValue:        futureValue,
		AppreciationAmount: futureValue - p.PurchasePrice,
		RemainingBalance:   remaining,
		EquityFromPaydown:  loan - remaining,
		TotalEquity:        futureValue - remaining,
		TotalCashflow:      netMonthlyCashflow * 12 * float64(horizon),
	}

	result.TotalProfit = result.TotalEquity + result.TotalCashflow - p.DownPayment

	if p.DownPayment > 0 {
		result.TotalROIPercent = result.TotalProfit / p.DownPayment * 100
		endOverStart := 1 + result.TotalProfit/p.DownPayment
		if endOverStart > 0 && horizon > 0 {
			result.AnnualizedROIPercent = (math.Pow(endOverStart, 1/float64(horizon)) - 1) * 100
		}
	}

	return result
}
