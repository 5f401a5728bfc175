package finance

import (
	"github.com/stwalsh4118/dealsheet/internal/models"
)

// conditionMultipliers scale maintenance and CapEx costs by property
// condition. Good condition is the baseline.
var conditionMultipliers = map[models.Condition]float64{
	models.ConditionExcellent: 0.7,
	models.ConditionGood:      1.0,
	models.ConditionFair:      1.3,
	models.ConditionPoor:      1.7,
}

// ConditionMultiplier returns the cost multiplier for a property condition,
// defaulting to the good-condition baseline for unknown values.
func ConditionMultiplier(cond models.Condition) float64 {
	if m, ok := conditionMultipliers[cond]; ok {
		return m
	}
	return 1.0
}

// AgeMultiplier returns a cost multiplier based on property age. Newer
// properties carry lower reserve costs, older ones higher.
func AgeMultiplier(age int) float64 {
	switch {
	case age <= 5:
		return 0.6
	case age <= 15:
		return 0.9
	case age <= 30:
		return 1.1
	case age <= 50:
		return 1.3
	default:
		return 1.5
	}
}

// capexComponent describes one replaceable building system: its typical
// lifespan and replacement cost basis (flat, per square foot, or both).
type capexComponent struct {
	name        string
	lifespan    float64
	costBase    float64
	costPerSqft float64
}

// capexComponents is the per-square-foot/age/condition reference table
// powering component-based CapEx reserves. Slice, not map, for deterministic
// report ordering.
var capexComponents = []capexComponent{
	{name: "roof", lifespan: 25, costPerSqft: 5.5},
	{name: "hvac", lifespan: 18, costBase: 4500, costPerSqft: 1.5},
	{name: "water_heater", lifespan: 10, costBase: 900},
	{name: "electrical", lifespan: 35, costBase: 1800},
	{name: "plumbing", lifespan: 45, costPerSqft: 2.0},
	{name: "flooring", lifespan: 10, costPerSqft: 3.5},
	{name: "appliances", lifespan: 12, costBase: 3000},
	{name: "bathroom_fixtures", lifespan: 18, costBase: 1000},
	{name: "interior_paint", lifespan: 6, costPerSqft: 1.0},
	{name: "cabinets", lifespan: 18, costPerSqft: 1.25},
	{name: "exterior_paint", lifespan: 8, costPerSqft: 1.5},
	{name: "windows", lifespan: 20, costPerSqft: 1.75},
	{name: "driveway", lifespan: 25, costBase: 3000},
}

// CapexReserveResult is the outcome of a CapEx model evaluation.
type CapexReserveResult struct {
	Monthly        float64
	PercentOfValue float64
	Components     []models.ComponentReserve
}

// CapexModel computes a monthly capital-expenditure reserve for a property.
// The percent-of-price model is the default; the component model is injected
// when dynamic CapEx mode is enabled.
type CapexModel interface {
	MonthlyReserve(price, sqft float64, age int, cond models.Condition) CapexReserveResult
}

// PercentOfPriceCapex reserves a flat annual percentage of the purchase
// price.
type PercentOfPriceCapex struct {
	AnnualPercent float64
}

func (m PercentOfPriceCapex) MonthlyReserve(price, sqft float64, age int, cond models.Condition) CapexReserveResult {
	return CapexReserveResult{
		Monthly:        price * (m.AnnualPercent / 100) / 12,
		PercentOfValue: m.AnnualPercent,
	}
}

// ComponentCapex builds the reserve bottom-up from the component reference
// table, adjusting replacement costs and lifespans by property age and
// condition.
type ComponentCapex struct{}

func (ComponentCapex) MonthlyReserve(price, sqft float64, age int, cond models.Condition) CapexReserveResult {
	ageMult := AgeMultiplier(age)
	condMult := ConditionMultiplier(cond)

	var result CapexReserveResult
	var totalAnnual float64

	for _, comp := range capexComponents {
		// Better condition extends effective lifespan.
		adjustedLifespan := comp.lifespan / condMult

		replacementCost := comp.costBase
		if comp.costPerSqft > 0 && sqft > 0 {
			replacementCost += comp.costPerSqft * sqft
		}

		adjustedCost := replacementCost * condMult * ageMult
		annualReserve := 0.0
		if adjustedLifespan > 0 {
			annualReserve = adjustedCost / adjustedLifespan
		}

		result.Components = append(result.Components, models.ComponentReserve{
			Name:            comp.name,
			ReplacementCost: adjustedCost,
			LifespanYears:   adjustedLifespan,
			AnnualReserve:   annualReserve,
			MonthlyReserve:  annualReserve / 12,
		})
		totalAnnual += annualReserve
	}

	result.Monthly = totalAnnual / 12
	if price > 0 {
		result.PercentOfValue = totalAnnual / price * 100
	}
	return result
}

// CapexGuide describes the reference table for the --capex-guide printout.
type CapexGuideEntry struct {
	Name        string
	Lifespan    float64
	CostBase    float64
	CostPerSqft float64
}

// Guide returns the component reference table in display order.
func Guide() []CapexGuideEntry {
	entries := make([]CapexGuideEntry, 0, len(capexComponents))
	for _, c := range capexComponents {
		entries = append(entries, CapexGuideEntry{
			Name:        c.name,
			Lifespan:    c.lifespan,
			CostBase:    c.costBase,
			CostPerSqft: c.costPerSqft,
		})
	}
	return entries
}

// ConditionGuide returns the condition multipliers in display order.
func ConditionGuide() []struct {
	Condition  models.Condition
	Multiplier float64
} {
	return []struct {
		Condition  models.Condition
		Multiplier float64
	}{
		{models.ConditionExcellent, 0.7},
		{models.ConditionGood, 1.0},
		{models.ConditionFair, 1.3},
		{models.ConditionPoor, 1.7},
	}
}
