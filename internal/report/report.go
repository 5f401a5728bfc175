// Package report renders a completed analysis into the fixed-width text
// document the tool prints. Rendering is deterministic: the same analysis
// always produces byte-identical output.
package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/stwalsh4118/dealsheet/internal/finance"
	"github.com/stwalsh4118/dealsheet/internal/models"
	"github.com/stwalsh4118/dealsheet/internal/services"
)

const (
	lineWidth  = 80
	ruleWidth  = 40
	labelWidth = 35
)

func hr(char string, length int) string {
	return strings.Repeat(char, length)
}

// sectionTitle centers an upper-cased title inside a rule of dashes.
func sectionTitle(title string) string {
	padding := (lineWidth - len(title) - 4) / 2
	if padding < 0 {
		padding = 0
	}
	pad := strings.Repeat("-", padding)
	return fmt.Sprintf("\n%s %s %s", pad, strings.ToUpper(title), pad)
}

func currency(amount float64) string {
	return "$" + humanize.FormatFloat("#,###.##", amount)
}

func percent(amount float64) string {
	return fmt.Sprintf("%.2f%%", amount)
}

func labeled(label, value string) string {
	return fmt.Sprintf("%-*s %s", labelWidth, label, value)
}

// titleCase converts a snake_case component name to a display name, e.g.
// "water_heater" to "Water Heater".
func titleCase(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Render produces the full text report for one analysis.
func Render(a *services.Analysis) string {
	var b strings.Builder

	writeHeader(&b, a)
	writePropertyDetails(&b, a)
	writeCashflow(&b, a)
	writeProjection(&b, a)
	if a.Params.UseDynamicCapex && len(a.Cashflow.CapexComponents) > 0 {
		writeCapexBreakdown(&b, a)
	}
	writeDealSummary(&b, a)

	b.WriteString(hr("=", lineWidth) + "\n")
	return b.String()
}

func writeHeader(b *strings.Builder, a *services.Analysis) {
	fmt.Fprintln(b, hr("=", lineWidth))
	fmt.Fprintf(b, "REAL ESTATE INVESTMENT ANALYSIS: %s\n", a.Address)
	fmt.Fprintf(b, "Analysis Date: %s\n", a.GeneratedAt.Format("January 02, 2006"))
	fmt.Fprintln(b, hr("=", lineWidth))
}

func writePropertyDetails(b *strings.Builder, a *services.Analysis) {
	p := a.Params
	cf := a.Cashflow

	fmt.Fprintln(b, sectionTitle("Property & Loan Details"))
	fmt.Fprintln(b, labeled("Purchase Price:", currency(p.PurchasePrice)))
	sqft := "N/A"
	if p.SquareFeet > 0 {
		sqft = fmt.Sprintf("%.0f sq ft", p.SquareFeet)
	}
	fmt.Fprintln(b, labeled("Square Footage:", sqft))
	fmt.Fprintln(b, labeled("Property Age:", fmt.Sprintf("%d years", p.PropertyAge)))
	fmt.Fprintln(b, labeled("Property Condition:", strings.ToUpper(string(p.Condition))))
	fmt.Fprintln(b, labeled("Down Payment:", fmt.Sprintf("%s (%s)", currency(cf.DownPayment), percent(cf.DownPaymentPct))))
	fmt.Fprintln(b, labeled("Loan Amount:", currency(cf.LoanAmount)))
	fmt.Fprintln(b, labeled("Interest Rate:", percent(p.RatePercent)))
	fmt.Fprintln(b, labeled("Loan Term:", fmt.Sprintf("%d years", p.LoanTermYears)))
}

func writeCashflow(b *strings.Builder, a *services.Analysis) {
	p := a.Params
	cf := a.Cashflow

	fmt.Fprintln(b, sectionTitle("Monthly Cashflow Analysis"))
	fmt.Fprintln(b, labeled("Gross Monthly Rent:", currency(cf.GrossRent)))
	fmt.Fprintln(b, labeled("Mortgage (P&I):", currency(cf.MortgagePayment)))

	taxes := currency(cf.MonthlyTax)
	if cf.AnnualTax == nil {
		taxes += " (Could not parse)"
	}
	fmt.Fprintln(b, labeled("Property Taxes:", taxes))
	fmt.Fprintln(b, labeled("Insurance:", currency(cf.MonthlyInsurance)))
	fmt.Fprintln(b, labeled("Vacancy Allowance:", fmt.Sprintf("%s (%s)", currency(cf.VacancyAllowance), percent(p.VacancyRatePercent))))
	fmt.Fprintln(b, labeled("Property Management:", fmt.Sprintf("%s (%s)", currency(cf.ManagementFee), percent(p.MgmtFeePercent))))
	fmt.Fprintln(b, labeled("Maintenance Reserve:", fmt.Sprintf("%s (%s annual)", currency(cf.MaintenanceReserve), percent(cf.EffectiveMaintPct))))
	fmt.Fprintln(b, labeled("CapEx Reserve:", fmt.Sprintf("%s (%s of value)", currency(cf.CapexReserve), percent(cf.EffectiveCapexPct))))
	fmt.Fprintln(b, labeled("Utilities (Landlord):", currency(cf.UtilitiesMonthly)))
	fmt.Fprintln(b, labeled("Misc. Monthly Costs:", currency(cf.MiscMonthly)))
	fmt.Fprintln(b, hr("-", ruleWidth))
	fmt.Fprintln(b, labeled("Total Monthly Expenses:", currency(cf.TotalExpenses)))
	fmt.Fprintln(b, hr("-", ruleWidth))
	fmt.Fprintln(b, labeled("Net Monthly Cashflow:", currency(cf.NetMonthly)))
	fmt.Fprintln(b, labeled("Annual Cashflow:", currency(cf.AnnualCashflow)))
	fmt.Fprintln(b, labeled("Cash-on-Cash ROI:", percent(cf.CashOnCashROI)))
	if p.UseDynamicCapex && cf.CapRate != nil {
		fmt.Fprintln(b, labeled("Cap Rate (NOI Based):", percent(*cf.CapRate)))
	}
}

func writeProjection(b *strings.Builder, a *services.Analysis) {
	proj := a.Projection
	appr := a.Appreciation

	fmt.Fprintln(b, sectionTitle(fmt.Sprintf("Long-Term Projection (%d Years)", proj.HorizonYears)))
	fmt.Fprintln(b, labeled("Investment Horizon:", fmt.Sprintf("%d years", proj.HorizonYears)))
	fmt.Fprintln(b, labeled("Annual Appreciation Rate:",
		fmt.Sprintf("%s (Market: %s, Source: %s)", percent(appr.RatePercent), appr.Outlook, appr.Source)))
	fmt.Fprintln(b, labeled("Est. Future Property Value:", currency(proj.FutureValue)))
	fmt.Fprintln(b, labeled("Total Property Appreciation:", currency(proj.AppreciationAmount)))
	fmt.Fprintln(b, labeled("Equity from Paydown:", currency(proj.EquityFromPaydown)))
	fmt.Fprintln(b, labeled("Remaining Loan Balance:", currency(proj.RemainingBalance)))
	fmt.Fprintln(b, labeled("Total Equity at Horizon:", currency(proj.TotalEquity)))
	fmt.Fprintln(b, labeled("Total Cashflow during Horizon:", currency(proj.TotalCashflow)))
	fmt.Fprintln(b, hr("-", ruleWidth))
	fmt.Fprintln(b, labeled("Total Estimated Profit:", currency(proj.TotalProfit)))
	fmt.Fprintln(b, labeled("Total ROI (on initial equity):", percent(proj.TotalROIPercent)))
	fmt.Fprintln(b, labeled("Annualized ROI (on equity):", percent(proj.AnnualizedROIPercent)))
}

func writeCapexBreakdown(b *strings.Builder, a *services.Analysis) {
	fmt.Fprintln(b, sectionTitle("Detailed CapEx Breakdown (Dynamic Mode)"))
	fmt.Fprintf(b, "%-24s %18s %12s %18s\n", "Component", "Repl. Cost", "Lifespan", "Monthly Res.")
	fmt.Fprintln(b, hr("-", lineWidth))
	for _, comp := range a.Cashflow.CapexComponents {
		fmt.Fprintf(b, "%-24s %18s %12s %18s\n",
			titleCase(comp.Name),
			currency(comp.ReplacementCost),
			fmt.Sprintf("%.1f yrs", comp.LifespanYears),
			currency(comp.MonthlyReserve))
	}
	fmt.Fprintln(b, hr("-", lineWidth))
	fmt.Fprintln(b, labeled("Total Monthly CapEx Reserve:", currency(a.Cashflow.CapexReserve)))
}

func writeDealSummary(b *strings.Builder, a *services.Analysis) {
	cf := a.Cashflow
	proj := a.Projection
	score := a.Score

	fmt.Fprintln(b, sectionTitle("Deal Analysis & Summary"))
	fmt.Fprintln(b, labeled("Net Monthly Cashflow:", metricLine(currency(cf.NetMonthly), score.Cashflow)))
	fmt.Fprintln(b, labeled("Cash-on-Cash ROI:", metricLine(percent(cf.CashOnCashROI), score.CashOnCash)))

	capRate := finance.CapRateUnavailable
	if cf.CapRate != nil {
		capRate = percent(*cf.CapRate)
	}
	fmt.Fprintln(b, labeled("Cap Rate (NOI Based):", metricLine(capRate, score.CapRate)))
	fmt.Fprintln(b, labeled("Annualized Total ROI (Equity):", metricLine(percent(proj.AnnualizedROIPercent), score.AnnualizedROI)))

	fmt.Fprintln(b, hr("-", ruleWidth))
	fmt.Fprintln(b, labeled("Overall Investment Score:", fmt.Sprintf("%.1f/10 (%s)", score.Overall, score.Tier)))
	fmt.Fprintln(b, hr("-", ruleWidth))

	fmt.Fprintln(b)
	fmt.Fprintln(b, "Key Performance Indicators:")
	for _, line := range score.Summary {
		fmt.Fprintf(b, "  - %s\n", line)
	}
}

func metricLine(value string, m models.MetricScore) string {
	if m.Rating == finance.CapRateUnavailable {
		return fmt.Sprintf("%s (Score: %.1f)", value, m.Points)
	}
	return fmt.Sprintf("%s (Rating: %s, Score: %.1f)", value, m.Rating, m.Points)
}

// CapexGuide renders the standalone CapEx component reference printed by the
// guide flag.
func CapexGuide() string {
	var b strings.Builder

	fmt.Fprintln(&b, sectionTitle("CapEx Components Reference Guide"))
	fmt.Fprintln(&b, "This guide shows typical CapEx components, default lifespans, and costs.")
	fmt.Fprintln(&b, "Values are adjusted by property age/condition in dynamic analysis.")
	fmt.Fprintln(&b, hr("-", lineWidth))
	fmt.Fprintf(&b, "%-20s %-20s %-30s\n", "Component", "Typical Lifespan", "Cost Basis")
	fmt.Fprintln(&b, hr("-", lineWidth))
	for _, entry := range finance.Guide() {
		basis := fmt.Sprintf("$%.2f base", entry.CostBase)
		if entry.CostPerSqft > 0 {
			basis = fmt.Sprintf("$%.2f/sqft + $%.2f", entry.CostPerSqft, entry.CostBase)
		}
		fmt.Fprintf(&b, "%-20s %-20s %-30s\n", titleCase(entry.Name), fmt.Sprintf("%.0f years", entry.Lifespan), basis)
	}
	fmt.Fprintln(&b, hr("-", lineWidth))

	fmt.Fprintln(&b, "\nPROPERTY CONDITION MULTIPLIERS")
	for _, cond := range finance.ConditionGuide() {
		fmt.Fprintf(&b, "  %-12s %.1fx\n", string(cond.Condition)+":", cond.Multiplier)
	}
	return b.String()
}
