package finance

import (
	"github.com/stwalsh4118/dealsheet/internal/models"
)

// ComputeCashflow aggregates the monthly income and expense picture for a
// property. grossRent is the normalized monthly rent; annualTax is nil when
// the raw tax string could not be parsed, in which case taxes contribute
// zero. capex is the injected reserve model (percent-of-price or
// component-based). No intermediate rounding.
func ComputeCashflow(p models.EffectiveParameters, grossRent float64, annualTax *float64, capex CapexModel) models.CashflowResult {
	result := models.CashflowResult{
		GrossRent:        grossRent,
		DownPayment:      p.DownPayment,
		LoanAmount:       p.PurchasePrice - p.DownPayment,
		MiscMonthly:      p.MiscMonthly,
		UtilitiesMonthly: p.UtilitiesMonthly,
		AnnualTax:        annualTax,
	}

	if p.PurchasePrice > 0 {
		result.DownPaymentPct = p.DownPayment / p.PurchasePrice * 100
	}

	result.MortgagePayment = MonthlyPayment(result.LoanAmount, p.RatePercent, p.LoanTermYears)

	if annualTax != nil {
		result.MonthlyTax = *annualTax / 12
	}
	result.MonthlyInsurance = p.InsuranceAnnual / 12

	result.VacancyAllowance = grossRent * p.VacancyRatePercent / 100
	result.ManagementFee = grossRent * p.MgmtFeePercent / 100

	maintPct := p.MaintenancePercent
	if p.UseDynamicCapex {
		maintPct = p.MaintenancePercent * AgeMultiplier(p.PropertyAge) * ConditionMultiplier(p.Condition)
	}
	result.EffectiveMaintPct = maintPct
	result.MaintenanceReserve = p.PurchasePrice * (maintPct / 100) / 12

	reserve := capex.MonthlyReserve(p.PurchasePrice, p.SquareFeet, p.PropertyAge, p.Condition)
	result.CapexReserve = reserve.Monthly
	result.EffectiveCapexPct = reserve.PercentOfValue
	result.CapexComponents = reserve.Components

	result.TotalExpenses = result.MortgagePayment +
		result.MonthlyTax +
		result.MonthlyInsurance +
		result.MiscMonthly +
		result.UtilitiesMonthly +
		result.VacancyAllowance +
		result.ManagementFee +
		result.MaintenanceReserve +
		result.CapexReserve

	result.NetMonthly = grossRent - result.TotalExpenses
	result.AnnualCashflow = result.NetMonthly * 12

	if p.DownPayment > 0 {
		result.CashOnCashROI = result.AnnualCashflow / p.DownPayment * 100
	}

	// Cap rate only makes sense against the full operating-expense picture
	// the dynamic model produces.
	if p.UseDynamicCapex {
		operating := result.MonthlyTax +
			result.MonthlyInsurance +
			result.MiscMonthly +
			result.UtilitiesMonthly +
			result.VacancyAllowance +
			result.ManagementFee +
			result.MaintenanceReserve +
			result.CapexReserve
		noi := (grossRent - operating) * 12
		result.AnnualNOI = &noi
		if p.PurchasePrice > 0 {
			capRate := noi / p.PurchasePrice * 100
			result.CapRate = &capRate
		}
	}

	return result
}
