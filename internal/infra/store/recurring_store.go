package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/moreira/financas-casal-go/internal/domain"
)

// ============================================================
// Recurring Incomes — CRUD via PostgREST
// ============================================================

type recurringIncomeRow struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	DayOfMonth  int     `json:"day_of_month"`
	Origin      string  `json:"origin"`
	Enabled     bool    `json:"enabled"`
	CreatedAt   string  `json:"created_at"`
}

func (r recurringIncomeRow) toDomain() domain.RecurringIncome {
	return domain.RecurringIncome{
		ID:          r.ID,
		Description: r.Description,
		Amount:      r.Amount,
		Category:    r.Category,
		DayOfMonth:  r.DayOfMonth,
		Origin:      r.Origin,
		Enabled:     r.Enabled,
		CreatedAt:   parseDate(r.CreatedAt),
	}
}

func (c *Client) ListRecurringIncomes(ctx context.Context) ([]domain.RecurringIncome, error) {
	ctx, span := tracer.Start(ctx, "Store.ListRecurringIncomes")
	defer span.End()

	body, err := c.getWithRetry(ctx, "recurring_incomes?order=day_of_month.asc")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/recurring_incomes", Err: err}
	}
	if body == nil || string(body) == "[]" {
		return []domain.RecurringIncome{}, nil
	}

	var rows []recurringIncomeRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode recurring_incomes: %w", err)
	}

	out := make([]domain.RecurringIncome, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (c *Client) GetRecurringIncome(ctx context.Context, id string) (*domain.RecurringIncome, error) {
	ctx, span := tracer.Start(ctx, "Store.GetRecurringIncome")
	defer span.End()

	body, err := c.getWithRetry(ctx, fmt.Sprintf("recurring_incomes?id=eq.%s&limit=1", id))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/recurring_incomes", Err: err}
	}

	var rows []recurringIncomeRow
	if body != nil {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode recurring_income: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "recurring_income", ID: id}
	}
	ri := rows[0].toDomain()
	return &ri, nil
}

func (c *Client) CreateRecurringIncome(ctx context.Context, ri *domain.RecurringIncome) (*domain.RecurringIncome, error) {
	ctx, span := tracer.Start(ctx, "Store.CreateRecurringIncome")
	defer span.End()

	createdAt := ri.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	row := map[string]any{
		"description":  ri.Description,
		"amount":       ri.Amount,
		"category":     ri.Category,
		"day_of_month": ri.DayOfMonth,
		"origin":       ri.Origin,
		"enabled":      ri.Enabled,
		"created_at":   formatDate(createdAt),
	}

	body, err := c.doPost(ctx, "recurring_incomes", row)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/recurring_incomes", Err: err}
	}

	var rows []recurringIncomeRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode recurring_income: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no result from recurring_incomes insert")
	}
	created := rows[0].toDomain()
	return &created, nil
}

func (c *Client) UpdateRecurringIncome(ctx context.Context, id string, updates map[string]any) error {
	ctx, span := tracer.Start(ctx, "Store.UpdateRecurringIncome")
	defer span.End()

	return c.doPatch(ctx, fmt.Sprintf("recurring_incomes?id=eq.%s", id), updates)
}

func (c *Client) DeleteRecurringIncome(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Store.DeleteRecurringIncome")
	defer span.End()

	return c.doDelete(ctx, fmt.Sprintf("recurring_incomes?id=eq.%s", id))
}
