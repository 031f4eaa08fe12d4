package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/moreira/financas-casal-go/internal/domain"
)

// ============================================================
// Due Dates — CRUD via PostgREST
// ============================================================

type dueDateRow struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DayOfMonth  int     `json:"day_of_month"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Owner       string  `json:"owner"`
	ReferenceID string  `json:"reference_id"`
}

func (r dueDateRow) toDomain() domain.DueDate {
	return domain.DueDate{
		ID:          r.ID,
		Name:        r.Name,
		DayOfMonth:  r.DayOfMonth,
		Amount:      r.Amount,
		Type:        r.Type,
		Owner:       r.Owner,
		ReferenceID: r.ReferenceID,
	}
}

func (c *Client) ListDueDates(ctx context.Context) ([]domain.DueDate, error) {
	ctx, span := tracer.Start(ctx, "Store.ListDueDates")
	defer span.End()

	body, err := c.getWithRetry(ctx, "due_dates?order=day_of_month.asc")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/due_dates", Err: err}
	}
	if body == nil || string(body) == "[]" {
		return []domain.DueDate{}, nil
	}

	var rows []dueDateRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode due_dates: %w", err)
	}

	out := make([]domain.DueDate, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (c *Client) GetDueDate(ctx context.Context, id string) (*domain.DueDate, error) {
	ctx, span := tracer.Start(ctx, "Store.GetDueDate")
	defer span.End()

	body, err := c.getWithRetry(ctx, fmt.Sprintf("due_dates?id=eq.%s&limit=1", id))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/due_dates", Err: err}
	}

	var rows []dueDateRow
	if body != nil {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode due_date: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "due_date", ID: id}
	}
	d := rows[0].toDomain()
	return &d, nil
}

func (c *Client) CreateDueDate(ctx context.Context, d *domain.DueDate) (*domain.DueDate, error) {
	ctx, span := tracer.Start(ctx, "Store.CreateDueDate")
	defer span.End()

	row := map[string]any{
		"name":         d.Name,
		"day_of_month": d.DayOfMonth,
		"amount":       d.Amount,
		"type":         d.Type,
		"owner":        d.Owner,
	}
	if d.ReferenceID != "" {
		row["reference_id"] = d.ReferenceID
	}

	body, err := c.doPost(ctx, "due_dates", row)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/due_dates", Err: err}
	}

	var rows []dueDateRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode due_date: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no result from due_dates insert")
	}
	created := rows[0].toDomain()
	return &created, nil
}

func (c *Client) UpdateDueDate(ctx context.Context, id string, updates map[string]any) error {
	ctx, span := tracer.Start(ctx, "Store.UpdateDueDate")
	defer span.End()

	return c.doPatch(ctx, fmt.Sprintf("due_dates?id=eq.%s", id), updates)
}

func (c *Client) DeleteDueDate(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Store.DeleteDueDate")
	defer span.End()

	return c.doDelete(ctx, fmt.Sprintf("due_dates?id=eq.%s", id))
}
