package domain

import "time"

// Derived view models served to the dashboard. These are computed from a
// FinancialData snapshot and never stored.

// FinancialSummary is the dashboard header: current-month money in,
// money out, and what is still pending.
type FinancialSummary struct {
	MonthlyIncome   float64 `json:"monthlyIncome"`
	MonthlyExpenses float64 `json:"monthlyExpenses"`
	NetBalance      float64 `json:"netBalance"`
	PendingTotal    float64 `json:"pendingTotal"`
}

// PartnerSummary is one row of the partner comparison: income and
// expenses attributed to a single origin.
type PartnerSummary struct {
	Origin   Origin  `json:"origin"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// CardStatus is a single card with its computed utilization.
type CardStatus struct {
	Card            CreditCard `json:"card"`
	Used            float64    `json:"used"`
	Utilization     float64    `json:"utilization"` // percent, 0 when limit is 0
	HighUtilization bool       `json:"highUtilization"`
}

// CardsOverview aggregates every card into household totals.
type CardsOverview struct {
	TotalLimit         float64      `json:"totalLimit"`
	TotalUsed          float64      `json:"totalUsed"`
	TotalAvailable     float64      `json:"totalAvailable"`
	TotalInvoices      float64      `json:"totalInvoices"`
	OverallUtilization float64      `json:"overallUtilization"`
	Cards              []CardStatus `json:"cards"`
}

// YieldProjection is the per-investment yield view.
type YieldProjection struct {
	Investment   Investment `json:"investment"`
	MonthlyYield float64    `json:"monthlyYield"`
	AnnualYield  float64    `json:"annualYield"`
	ROI          float64    `json:"roi"` // percent over principal
}

// InvestmentTotals sums the portfolio.
type InvestmentTotals struct {
	TotalInvested     float64 `json:"totalInvested"`
	TotalCurrentValue float64 `json:"totalCurrentValue"`
	TotalMonthlyYield float64 `json:"totalMonthlyYield"`
}

// CalendarEntry is one line of the unified due-date calendar. Entries
// come from explicit due dates, bills, and open card invoices.
type CalendarEntry struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	DayOfMonth  int        `json:"dayOfMonth"`
	Amount      float64    `json:"amount"`
	Type        string     `json:"type"` // bill | installment | income | credit_card
	Status      string     `json:"status,omitempty"`
	Owner       Origin     `json:"owner"`
	ReferenceID string     `json:"referenceId,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Label       string     `json:"label"`
	ColorClass  string     `json:"colorClass"`
}

// TrendPoint is one month of the 12-month income/expense series.
type TrendPoint struct {
	Month    string  `json:"month"` // YYYY-MM
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// WeekPoint is one week of the current-month expense split.
type WeekPoint struct {
	Week     string  `json:"week"` // Semana 1..4
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// CategoryAmount is one slice of a category break-down, sorted by value.
type CategoryAmount struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ReportSummary is the reports page: lifetime totals plus the series the
// charts render.
type ReportSummary struct {
	TotalIncome       float64          `json:"totalIncome"`
	TotalExpenses     float64          `json:"totalExpenses"`
	AvgMonthlyExpense float64          `json:"avgMonthlyExpense"`
	IncomeByCategory  []CategoryAmount `json:"incomeByCategory"`
	ExpenseByCategory []CategoryAmount `json:"expenseByCategory"`
	MonthlyTrend      []TrendPoint     `json:"monthlyTrend"`
}

// OpsMetrics is the counter snapshot served by GET /v1/metrics/ops.
type OpsMetrics struct {
	TotalRequests     int64   `json:"totalRequests"`
	ErrorRate         float64 `json:"errorRate"`
	CacheHitRate      float64 `json:"cacheHitRate"`
	SnapshotRefreshes int64   `json:"snapshotRefreshes"`
	StoreErrors       int64   `json:"storeErrors"`
	Period            string  `json:"period"`
}
