package models

// ComponentReserve is one line of the dynamic CapEx breakdown: a building
// component with its adjusted replacement cost, expected remaining lifespan,
// and the monthly reserve needed to fund its replacement.
type ComponentReserve struct {
	Name            string
	ReplacementCost float64
	LifespanYears   float64
	AnnualReserve   float64
	MonthlyReserve  float64
}

// CashflowResult holds the monthly income and expense breakdown for one run.
// Derived, recomputed each run, never persisted. Values stay unrounded;
// rounding happens only at presentation time.
type CashflowResult struct {
	GrossRent       float64
	MortgagePayment float64
	LoanAmount      float64
	DownPayment     float64
	DownPaymentPct  float64

	AnnualTax        *float64 // nil when the raw tax string was unparseable
	MonthlyTax       float64
	MonthlyInsurance float64
	MiscMonthly      float64
	UtilitiesMonthly float64

	VacancyAllowance float64
	ManagementFee    float64

	MaintenanceReserve float64
	EffectiveMaintPct  float64
	CapexReserve       float64
	EffectiveCapexPct  float64
	CapexComponents    []ComponentReserve

	TotalExpenses  float64
	NetMonthly     float64
	AnnualCashflow float64
	CashOnCashROI  float64

	// NOI-based figures are only computed in dynamic CapEx mode.
	AnnualNOI *float64
	CapRate   *float64
}

// ProjectionResult holds the long-term projection over the investment
// horizon. Flat projection: no reinvestment or rate change modeled.
type ProjectionResult struct {
	HorizonYears         int
	FutureValue          float64
	AppreciationAmount   float64
	RemainingBalance     float64
	EquityFromPaydown    float64
	TotalEquity          float64
	TotalCashflow        float64
	TotalProfit          float64
	TotalROIPercent      float64
	AnnualizedROIPercent float64
}

// MetricScore is one scored metric: its qualitative rating and point
// contribution toward the overall score.
type MetricScore struct {
	Rating string
	Points float64
}

// ScoreResult maps the computed metrics to a weighted 0-10 investment score
// with qualitative ratings and a summary tier label.
type ScoreResult struct {
	Cashflow      MetricScore
	CashOnCash    MetricScore
	CapRate       MetricScore
	AnnualizedROI MetricScore

	RawPoints float64
	Overall   float64 // 0-10, clamped
	Tier      string
	Summary   []string
}
