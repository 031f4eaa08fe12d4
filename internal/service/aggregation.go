package service

import (
	"sort"
	"time"

	"github.com/moreira/financas-casal-go/internal/domain"
)

// Aggregations over a full snapshot. These are pure functions: the
// calendar-dependent ones take an explicit now so the handlers and the
// tests agree on what "current month" means.

// MonthlyIncome sums all income transactions plus every enabled
// recurring income at its flat monthly amount.
func MonthlyIncome(d *domain.FinancialData) float64 {
	total := 0.0
	for _, t := range d.Transactions {
		if t.Type == domain.TypeIncome {
			total += t.Amount
		}
	}
	for _, ri := range d.RecurringIncomes {
		if ri.Enabled {
			total += ri.Amount
		}
	}
	return total
}

// MonthlyExpenses sums all expense transactions plus paid bills and paid
// card invoices due in the current month.
func MonthlyExpenses(d *domain.FinancialData, now time.Time) float64 {
	total := 0.0
	for _, t := range d.Transactions {
		if t.Type == domain.TypeExpense {
			total += t.Amount
		}
	}
	for _, b := range d.Bills {
		if b.Status == domain.StatusPaid && sameMonth(b.DueDate, now) {
			total += b.Amount
		}
	}
	for _, c := range d.CreditCards {
		if c.InvoiceStatus == domain.StatusPaid && sameMonth(c.InvoiceDueDate, now) {
			total += c.InvoiceAmount
		}
	}
	return total
}

// PendingObligations sums pending bills plus open card invoices.
func PendingObligations(d *domain.FinancialData) float64 {
	total := 0.0
	for _, b := range d.Bills {
		if b.Status == domain.StatusPending {
			total += b.Amount
		}
	}
	for _, c := range d.CreditCards {
		if c.InvoicePending() {
			total += c.InvoiceAmount
		}
	}
	return total
}

// Summary assembles the dashboard header numbers.
func Summary(d *domain.FinancialData, now time.Time) domain.FinancialSummary {
	income := MonthlyIncome(d)
	expenses := MonthlyExpenses(d, now)
	return domain.FinancialSummary{
		MonthlyIncome:   income,
		MonthlyExpenses: expenses,
		NetBalance:      income - expenses,
		PendingTotal:    PendingObligations(d),
	}
}

// CategoryTotals groups transaction amounts of the given type by
// category. Recurring incomes are not included here; the report income
// pie folds them in separately.
func CategoryTotals(d *domain.FinancialData, txType string) map[string]float64 {
	totals := make(map[string]float64)
	for _, t := range d.Transactions {
		if t.Type == txType {
			totals[t.Category] += t.Amount
		}
	}
	return totals
}

// PartnerComparison returns one row per origin, in fixed order. Income
// counts transactions plus enabled recurring incomes per origin;
// expenses count transactions only.
func PartnerComparison(d *domain.FinancialData) []domain.PartnerSummary {
	origins := []string{domain.OriginPartner1, domain.OriginPartner2, domain.OriginJoint}
	rows := make([]domain.PartnerSummary, 0, len(origins))

	for _, origin := range origins {
		income := 0.0
		expenses := 0.0
		for _, t := range d.Transactions {
			if t.Origin != origin {
				continue
			}
			if t.Type == domain.TypeIncome {
				income += t.Amount
			} else if t.Type == domain.TypeExpense {
				expenses += t.Amount
			}
		}
		for _, ri := range d.RecurringIncomes {
			if ri.Enabled && ri.Origin == origin {
				income += ri.Amount
			}
		}
		rows = append(rows, domain.PartnerSummary{
			Origin:   origin,
			Income:   income,
			Expenses: expenses,
			Net:      income - expenses,
		})
	}
	return rows
}

// Utilization returns the card's used-limit percentage.
// A zero limit is bad data, not a computation failure: it reports 0.
func Utilization(c domain.CreditCard) float64 {
	if c.Limit <= 0 {
		return 0
	}
	return (c.Limit - c.Available) / c.Limit * 100
}

// CardOverview computes per-card utilization and household totals.
// The high-utilization flag trips strictly above 80%.
func CardOverview(d *domain.FinancialData) domain.CardsOverview {
	ov := domain.CardsOverview{Cards: make([]domain.CardStatus, 0, len(d.CreditCards))}
	for _, c := range d.CreditCards {
		used := c.Limit - c.Available
		util := Utilization(c)
		ov.Cards = append(ov.Cards, domain.CardStatus{
			Card:            c,
			Used:            used,
			Utilization:     util,
			HighUtilization: util > 80,
		})
		ov.TotalLimit += c.Limit
		ov.TotalUsed += used
		ov.TotalAvailable += c.Available
		ov.TotalInvoices += c.InvoiceAmount
	}
	if ov.TotalLimit > 0 {
		ov.OverallUtilization = ov.TotalUsed / ov.TotalLimit * 100
	}
	return ov
}

// Report assembles the reports page: lifetime totals, category pies and
// the 12-month trend. Total expenses count expense transactions plus
// every paid bill regardless of month; enabled recurring income is
// folded into the "Salário" slice of the income pie.
func Report(d *domain.FinancialData, now time.Time) domain.ReportSummary {
	totalIncome := 0.0
	totalExpenses := 0.0
	for _, t := range d.Transactions {
		if t.Type == domain.TypeIncome {
			totalIncome += t.Amount
		} else if t.Type == domain.TypeExpense {
			totalExpenses += t.Amount
		}
	}
	recurring := 0.0
	for _, ri := range d.RecurringIncomes {
		if ri.Enabled {
			recurring += ri.Amount
		}
	}
	totalIncome += recurring
	for _, b := range d.Bills {
		if b.Status == domain.StatusPaid {
			totalExpenses += b.Amount
		}
	}

	incomeByCategory := sortedCategories(CategoryTotals(d, domain.TypeIncome), "Salário", recurring)
	expenseByCategory := sortedCategories(CategoryTotals(d, domain.TypeExpense), "", 0)

	return domain.ReportSummary{
		TotalIncome:       totalIncome,
		TotalExpenses:     totalExpenses,
		AvgMonthlyExpense: totalExpenses / 12,
		IncomeByCategory:  incomeByCategory,
		ExpenseByCategory: expenseByCategory,
		MonthlyTrend:      MonthlyTrend(d, now),
	}
}

// sortedCategories turns a totals map into a descending slice, folding
// extra into the named category when non-zero.
func sortedCategories(totals map[string]float64, foldInto string, extra float64) []domain.CategoryAmount {
	if foldInto != "" && extra > 0 {
		totals[foldInto] += extra
	}
	out := make([]domain.CategoryAmount, 0, len(totals))
	for name, value := range totals {
		out = append(out, domain.CategoryAmount{Name: name, Value: value})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func sameMonth(t, ref time.Time) bool {
	return t.Year() == ref.Year() && t.Month() == ref.Month()
}
