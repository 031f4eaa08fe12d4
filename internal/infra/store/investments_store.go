package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/moreira/financas-casal-go/internal/domain"
)

// ============================================================
// Investments — CRUD via PostgREST
// ============================================================

type investmentRow struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Amount       float64 `json:"amount"`
	CurrentValue float64 `json:"current_value"`
	Owner        string  `json:"owner"`
}

func (r investmentRow) toDomain() domain.Investment {
	return domain.Investment{
		ID:           r.ID,
		Name:         r.Name,
		Type:         r.Type,
		Amount:       r.Amount,
		CurrentValue: r.CurrentValue,
		Owner:        r.Owner,
	}
}

func (c *Client) ListInvestments(ctx context.Context) ([]domain.Investment, error) {
	ctx, span := tracer.Start(ctx, "Store.ListInvestments")
	defer span.End()

	body, err := c.getWithRetry(ctx, "investments?order=name.asc")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/investments", Err: err}
	}
	if body == nil || string(body) == "[]" {
		return []domain.Investment{}, nil
	}

	var rows []investmentRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode investments: %w", err)
	}

	out := make([]domain.Investment, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (c *Client) GetInvestment(ctx context.Context, id string) (*domain.Investment, error) {
	ctx, span := tracer.Start(ctx, "Store.GetInvestment")
	defer span.End()

	body, err := c.getWithRetry(ctx, fmt.Sprintf("investments?id=eq.%s&limit=1", id))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/investments", Err: err}
	}

	var rows []investmentRow
	if body != nil {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode investment: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "investment", ID: id}
	}
	inv := rows[0].toDomain()
	return &inv, nil
}

func (c *Client) CreateInvestment(ctx context.Context, inv *domain.Investment) (*domain.Investment, error) {
	ctx, span := tracer.Start(ctx, "Store.CreateInvestment")
	defer span.End()

	row := map[string]any{
		"name":          inv.Name,
		"type":          inv.Type,
		"amount":        inv.Amount,
		"current_value": inv.CurrentValue,
		"owner":         inv.Owner,
	}

	body, err := c.doPost(ctx, "investments", row)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/investments", Err: err}
	}

	var rows []investmentRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode investment: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no result from investments insert")
	}
	created := rows[0].toDomain()
	return &created, nil
}

func (c *Client) UpdateInvestment(ctx context.Context, id string, updates map[string]any) error {
	ctx, span := tracer.Start(ctx, "Store.UpdateInvestment")
	defer span.End()

	return c.doPatch(ctx, fmt.Sprintf("investments?id=eq.%s", id), updates)
}

func (c *Client) DeleteInvestment(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Store.DeleteInvestment")
	defer span.End()

	return c.doDelete(ctx, fmt.Sprintf("investments?id=eq.%s", id))
}
