// Package finance holds the pure arithmetic of the analysis pipeline:
// amortization, monthly cashflow aggregation, long-term projection, and deal
// scoring. Everything here is deterministic and side-effect free.
package finance

import "math"

// MonthlyPayment computes the fixed monthly principal-and-interest payment
// for a standard amortizing loan: P*r*(1+r)^n / ((1+r)^n - 1). A zero
// interest rate degenerates to straight-line principal, handled explicitly.
func MonthlyPayment(principal, annualRatePercent float64, termYears int) float64 {
	if principal <= 0 || termYears <= 0 {
		return 0
	}

	monthlyRate := annualRatePercent / 100 / 12
	n := float64(termYears * 12)

	if monthlyRate == 0 {
		return principal / n
	}

	growth := math.Pow(1+monthlyRate, n)
	return principal * monthlyRate * growth / (growth - 1)
}

// RemainingBalance computes the outstanding principal after monthsPaid
// payments: L * ((1+r)^n - (1+r)^p) / ((1+r)^n - 1). At month 0 this is the
// full loan amount; at month n it is zero.
func RemainingBalance(principal, annualRatePercent float64, termYears, monthsPaid int) float64 {
	if principal <= 0 || termYears <= 0 {
		return 0
	}

	n := termYears * 12
	if monthsPaid >= n {
		return 0
	}
	if monthsPaid <= 0 {
		return principal
	}

	monthlyRate := annualRatePercent / 100 / 12
	if monthlyRate == 0 {
		remaining := principal * (1 - float64(monthsPaid)/float64(n))
		return math.Max(0, remaining)
	}

	growthN := math.Pow(1+monthlyRate, float64(n))
	growthP := math.Pow(1+monthlyRate, float64(monthsPaid))
	return principal * (growthN - growthP) / (growthN - 1)
}
