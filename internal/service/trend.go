package service

import (
	"fmt"
	"time"

	"github.com/moreira/financas-casal-go/internal/domain"
)

// Time-bucketed series for the charts. Months are calendar months keyed
// YYYY-MM; weeks split the current month into four fixed 7-day windows.

// MonthlyTrend returns twelve buckets ending at now's month, oldest
// first. Expenses count the month's expense transactions plus bills
// paid with a due date in that month. Income counts the month's income
// transactions plus the flat total of currently enabled recurring
// incomes — recurring income is never backdated, so history before a
// recurring income existed still shows it.
func MonthlyTrend(d *domain.FinancialData, now time.Time) []domain.TrendPoint {
	recurring := 0.0
	for _, ri := range d.RecurringIncomes {
		if ri.Enabled {
			recurring += ri.Amount
		}
	}

	points := make([]domain.TrendPoint, 0, 12)
	for i := 11; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)

		income := recurring
		expenses := 0.0
		for _, t := range d.Transactions {
			if !sameMonth(t.Date, month) {
				continue
			}
			if t.Type == domain.TypeIncome {
				income += t.Amount
			} else if t.Type == domain.TypeExpense {
				expenses += t.Amount
			}
		}
		for _, b := range d.Bills {
			if b.Status == domain.StatusPaid && sameMonth(b.DueDate, month) {
				expenses += b.Amount
			}
		}

		points = append(points, domain.TrendPoint{
			Month:    month.Format("2006-01"),
			Income:   income,
			Expenses: expenses,
		})
	}
	return points
}

// WeeklyTrend splits the current month's transactions into four weeks
// by floor((day-1)/7). Days 29 to 31 fall past week four and are
// silently dropped.
func WeeklyTrend(d *domain.FinancialData, now time.Time) []domain.WeekPoint {
	points := make([]domain.WeekPoint, 4)
	for i := range points {
		points[i].Week = fmt.Sprintf("Semana %d", i+1)
	}

	for _, t := range d.Transactions {
		if !sameMonth(t.Date, now) {
			continue
		}
		week := (t.Date.Day() - 1) / 7
		if week > 3 {
			continue
		}
		if t.Type == domain.TypeIncome {
			points[week].Income += t.Amount
		} else if t.Type == domain.TypeExpense {
			points[week].Expenses += t.Amount
		}
	}
	return points
}
