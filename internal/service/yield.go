package service

import (
	"math"

	"github.com/moreira/financas-casal-go/internal/domain"
)

// Investment yield rules. CDB pays 120% of a 13% reference rate,
// compounded down to a monthly rate; Renda Fixa and Poupança carry flat
// monthly rates over the principal. Every other type just reports the
// gain its current value already shows, floored at zero.

const (
	cdbReferenceRate  = 0.13
	cdbRateMultiplier = 1.2
	rendaFixaMonthly  = 0.008
	poupancaMonthly   = 0.005
)

// MonthlyYield returns the investment's projected yield for one month.
func MonthlyYield(inv domain.Investment) float64 {
	switch inv.Type {
	case "CDB":
		annual := cdbReferenceRate * cdbRateMultiplier
		monthlyRate := math.Pow(1+annual, 1.0/12) - 1
		return inv.Amount * monthlyRate
	case "Renda Fixa":
		return inv.Amount * rendaFixaMonthly
	case "Poupança":
		return inv.Amount * poupancaMonthly
	default:
		return math.Max(0, inv.CurrentValue-inv.Amount)
	}
}

// AnnualYield is the display annualization: twelve flat months, not
// compounded.
func AnnualYield(inv domain.Investment) float64 {
	return MonthlyYield(inv) * 12
}

// ROI returns the percentage gain over the invested principal.
func ROI(inv domain.Investment) float64 {
	if inv.Amount == 0 {
		return 0
	}
	return (inv.CurrentValue - inv.Amount) / inv.Amount * 100
}

// Projection bundles the per-investment yield view.
func Projection(inv domain.Investment) domain.YieldProjection {
	return domain.YieldProjection{
		Investment:   inv,
		MonthlyYield: MonthlyYield(inv),
		AnnualYield:  AnnualYield(inv),
		ROI:          ROI(inv),
	}
}

// Projections computes the yield view for every investment plus
// portfolio totals.
func Projections(investments []domain.Investment) ([]domain.YieldProjection, domain.InvestmentTotals) {
	out := make([]domain.YieldProjection, 0, len(investments))
	var totals domain.InvestmentTotals
	for _, inv := range investments {
		p := Projection(inv)
		out = append(out, p)
		totals.TotalInvested += inv.Amount
		totals.TotalCurrentValue += inv.CurrentValue
		totals.TotalMonthlyYield += p.MonthlyYield
	}
	return out, totals
}

// AppliedValue is the current value after applying one month of yield:
// principal plus one monthly yield. Recomputed from the principal every
// time, so applying twice changes nothing.
func AppliedValue(inv domain.Investment) float64 {
	return inv.Amount + MonthlyYield(inv)
}
