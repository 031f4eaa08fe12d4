package service_test

import (
	"testing"
	"time"

	"github.com/moreira/financas-casal-go/internal/domain"
	"github.com/moreira/financas-casal-go/internal/service"
)

func TestMonthlyTrend_TwelveBucketsOldestFirst(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	points := service.MonthlyTrend(&domain.FinancialData{}, now)

	if len(points) != 12 {
		t.Fatalf("expected 12 points, got %d", len(points))
	}
	if points[0].Month != "2024-07" {
		t.Errorf("first bucket: expected 2024-07, got %s", points[0].Month)
	}
	if points[11].Month != "2025-06" {
		t.Errorf("last bucket: expected 2025-06, got %s", points[11].Month)
	}
}

func TestMonthlyTrend_BucketsTransactionsAndPaidBills(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	d := &domain.FinancialData{
		Transactions: []domain.Transaction{
			{Type: "income", Amount: 4000, Date: time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)},
			{Type: "expense", Amount: 700, Date: time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC)},
			{Type: "expense", Amount: 300, Date: time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC)},
		},
		Bills: []domain.Bill{
			{Amount: 1500, Status: "paid", DueDate: time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC)},
			{Amount: 250, Status: "pending", DueDate: time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)},
		},
	}

	points := service.MonthlyTrend(d, now)

	june := points[11]
	if june.Income != 4000 {
		t.Errorf("june income: expected 4000, got %.2f", june.Income)
	}
	if june.Expenses != 700 {
		t.Errorf("june expenses: expected 700, got %.2f", june.Expenses)
	}

	may := points[10]
	// Expense transaction plus the paid bill; the pending bill is out.
	if may.Expenses != 300+1500 {
		t.Errorf("may expenses: expected 1800, got %.2f", may.Expenses)
	}
}

func TestMonthlyTrend_RecurringIncomeFlatEveryBucket(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	d := &domain.FinancialData{
		RecurringIncomes: []domain.RecurringIncome{
			{Amount: 1200, DayOfMonth: 5, Enabled: true},
			{Amount: 500, DayOfMonth: 10, Enabled: false},
		},
	}

	points := service.MonthlyTrend(d, now)
	for i, p := range points {
		if p.Income != 1200 {
			t.Errorf("bucket %d: expected flat 1200, got %.2f", i, p.Income)
		}
	}
}

func TestWeeklyTrend_FourFixedWeeks(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	d := &domain.FinancialData{
		Transactions: []domain.Transaction{
			{Type: "expense", Amount: 100, Date: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)},
			{Type: "expense", Amount: 200, Date: time.Date(2025, time.June, 7, 0, 0, 0, 0, time.UTC)},
			{Type: "expense", Amount: 300, Date: time.Date(2025, time.June, 8, 0, 0, 0, 0, time.UTC)},
			{Type: "income", Amount: 900, Date: time.Date(2025, time.June, 22, 0, 0, 0, 0, time.UTC)},
			{Type: "expense", Amount: 50, Date: time.Date(2025, time.May, 3, 0, 0, 0, 0, time.UTC)},
		},
	}

	points := service.WeeklyTrend(d, now)

	if len(points) != 4 {
		t.Fatalf("expected 4 weeks, got %d", len(points))
	}
	if points[0].Week != "Semana 1" || points[3].Week != "Semana 4" {
		t.Errorf("unexpected labels: %s .. %s", points[0].Week, points[3].Week)
	}
	// Days 1 and 7 land in week one, day 8 opens week two.
	if points[0].Expenses != 300 {
		t.Errorf("week 1: expected 300, got %.2f", points[0].Expenses)
	}
	if points[1].Expenses != 300 {
		t.Errorf("week 2: expected 300, got %.2f", points[1].Expenses)
	}
	if points[3].Income != 900 {
		t.Errorf("week 4: expected 900 income, got %.2f", points[3].Income)
	}
}

func TestWeeklyTrend_DaysPastTwentyEightDropped(t *testing.T) {
	now := time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)
	d := &domain.FinancialData{
		Transactions: []domain.Transaction{
			{Type: "expense", Amount: 100, Date: time.Date(2025, time.July, 29, 0, 0, 0, 0, time.UTC)},
			{Type: "expense", Amount: 200, Date: time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC)},
		},
	}

	points := service.WeeklyTrend(d, now)

	total := 0.0
	for _, p := range points {
		total += p.Expenses
	}
	if total != 0 {
		t.Errorf("days 29-31 must be dropped, got total %.2f", total)
	}
}
