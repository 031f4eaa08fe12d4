package service

import (
	"context"
	"fmt"
	"time"

	"github.com/moreira/financas-casal-go/internal/domain"
	"github.com/moreira/financas-casal-go/internal/infra/observability"
	"github.com/moreira/financas-casal-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("service/finance")

const snapshotKey = "financial-data"

// FinanceService orchestrates the remote store, the snapshot cache and
// the derived views. Every mutation drops the cached snapshot; the next
// read refetches all collections as a unit.
type FinanceService struct {
	store   port.FinanceStore
	cache   port.Cache[*domain.FinancialData]
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewFinanceService creates the finance service with all dependencies injected.
func NewFinanceService(store port.FinanceStore, cache port.Cache[*domain.FinancialData], metrics *observability.Metrics, logger *zap.Logger) *FinanceService {
	return &FinanceService{
		store:   store,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// GetFinancialData returns the full snapshot, cached until the TTL
// expires or a mutation invalidates it. A failed refetch returns the
// error and leaves nothing half-written.
func (s *FinanceService) GetFinancialData(ctx context.Context) (*domain.FinancialData, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.GetFinancialData")
	defer span.End()

	if cached, ok := s.cache.Get(snapshotKey); ok {
		s.metrics.IncrCacheHit(snapshotKey)
		return cached, nil
	}
	s.metrics.IncrCacheMiss(snapshotKey)

	start := time.Now()
	data, err := s.store.GetFinancialData(ctx)
	s.metrics.RecordRequestDuration("snapshot", time.Since(start))
	if err != nil {
		s.logger.Error("failed to fetch financial data", zap.Error(err))
		s.metrics.IncrStoreError("snapshot")
		return nil, fmt.Errorf("snapshot fetch: %w", err)
	}

	s.metrics.IncrSnapshotRefresh()
	s.cache.Set(snapshotKey, data)
	return data, nil
}

// invalidate drops the cached snapshot after a mutation.
func (s *FinanceService) invalidate() {
	s.cache.Delete(snapshotKey)
}

// --- Derived views ---

// GetSummary computes the dashboard header for the current month.
func (s *FinanceService) GetSummary(ctx context.Context) (*domain.FinancialSummary, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.GetSummary")
	defer span.End()

	data, err := s.GetFinancialData(ctx)
	if err != nil {
		return nil, err
	}
	summary := Summary(data, s.now())
	return &summary, nil
}

// GetCategoryTotals groups transactions of the given type by category.
func (s *FinanceService) GetCategoryTotals(ctx context.Context, txType string) (map[string]float64, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.GetCategoryTotals")
	defer span.End()

	if txType != domain.TypeIncome && txType != domain.TypeExpense {
		return nil, &domain.ErrValidation{Field: "type", Message: "deve ser income ou expense"}
	}
	data, err := s.GetFinancialData(ctx)
	if err != nil {
		return nil, err
	}
	return CategoryTotals(data, txType), nil
}

// GetPartnerComparison returns the fixed three-row origin comparison.
func (s *FinanceService) GetPartnerComparison(ctx context.Context) ([]domain.PartnerSummary, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.GetPartnerComparison")
	defer span.End()

	data, err := s.GetFinancialData(ctx)
	if err != nil {
		return nil, err
	}
	return PartnerComparison(data), nil
}

// GetCardOverview returns per-card utilization and household totals.
func (s *FinanceService) GetCardOverview(ctx context.Context) (*domain.CardsOverview, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.GetCardOverview")
	defer span.End()

	data, err := s.GetFinancialData(ctx)
	if err != nil {
		return nil, err
	}
	ov := CardOverview(data)
	return &ov, nil
}

// GetCalendar returns the unified due-date calendar.
func (s *FinanceService) GetCalendar(ctx context.Context) ([]domain.CalendarEntry, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.GetCalendar")
	defer span.End()

	data, err := s.GetFinancialData(ctx)
	if err != nil {
		return nil, err
	}
	return UnifiedCalendar(data), nil
}

// GetMonthlyTrend returns the 12-month income/expense series.
func (s *FinanceService) GetMonthlyTrend(ctx context.Context) ([]domain.TrendPoint, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.GetMonthlyTrend")
	defer span.End()

	data, err := s.GetFinancialData(ctx)
	if err != nil {
		return nil, err
	}
	return MonthlyTrend(data, s.now()), nil
}

// GetWeeklyTrend returns the current month's 4-week expense split.
func (s *FinanceService) GetWeeklyTrend(ctx context.Context) ([]domain.WeekPoint, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.GetWeeklyTrend")
	defer span.End()

	data, err := s.GetFinancialData(ctx)
	if err != nil {
		return nil, err
	}
	return WeeklyTrend(data, s.now()), nil
}

// GetReport assembles the reports page.
func (s *FinanceService) GetReport(ctx context.Context) (*domain.ReportSummary, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.GetReport")
	defer span.End()

	data, err := s.GetFinancialData(ctx)
	if err != nil {
		return nil, err
	}
	report := Report(data, s.now())
	return &report, nil
}

// GetYieldProjections returns the per-investment yield view plus totals.
func (s *FinanceService) GetYieldProjections(ctx context.Context) ([]domain.YieldProjection, *domain.InvestmentTotals, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.GetYieldProjections")
	defer span.End()

	data, err := s.GetFinancialData(ctx)
	if err != nil {
		return nil, nil, err
	}
	projections, totals := Projections(data.Investments)
	return projections, &totals, nil
}

// ListUsers returns the household members.
func (s *FinanceService) ListUsers(ctx context.Context) ([]domain.User, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.ListUsers")
	defer span.End()

	return s.store.ListUsers(ctx)
}
