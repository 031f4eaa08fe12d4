package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/moreira/financas-casal-go/internal/domain"
)

// ============================================================
// Transactions — CRUD via PostgREST
// ============================================================

type transactionRow struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Origin      string  `json:"origin"`
	Type        string  `json:"type"`
}

func (r transactionRow) toDomain() domain.Transaction {
	return domain.Transaction{
		ID:          r.ID,
		Description: r.Description,
		Amount:      r.Amount,
		Category:    r.Category,
		Date:        parseDate(r.Date),
		Origin:      r.Origin,
		Type:        r.Type,
	}
}

func (c *Client) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Store.ListTransactions")
	defer span.End()

	body, err := c.getWithRetry(ctx, "transactions?order=date.desc")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/transactions", Err: err}
	}
	if body == nil || string(body) == "[]" {
		return []domain.Transaction{}, nil
	}

	var rows []transactionRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}

	out := make([]domain.Transaction, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (c *Client) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Store.GetTransaction")
	defer span.End()

	body, err := c.getWithRetry(ctx, fmt.Sprintf("transactions?id=eq.%s&limit=1", id))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/transactions", Err: err}
	}

	var rows []transactionRow
	if body != nil {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "transaction", ID: id}
	}
	t := rows[0].toDomain()
	return &t, nil
}

func (c *Client) CreateTransaction(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Store.CreateTransaction")
	defer span.End()

	row := map[string]any{
		"description": t.Description,
		"amount":      t.Amount,
		"category":    t.Category,
		"date":        formatDate(t.Date),
		"origin":      t.Origin,
		"type":        t.Type,
	}

	body, err := c.doPost(ctx, "transactions", row)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/transactions", Err: err}
	}

	var rows []transactionRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no result from transactions insert")
	}
	created := rows[0].toDomain()
	return &created, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, id string, updates map[string]any) error {
	ctx, span := tracer.Start(ctx, "Store.UpdateTransaction")
	defer span.End()

	return c.doPatch(ctx, fmt.Sprintf("transactions?id=eq.%s", id), updates)
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Store.DeleteTransaction")
	defer span.End()

	return c.doDelete(ctx, fmt.Sprintf("transactions?id=eq.%s", id))
}
