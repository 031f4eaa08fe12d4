package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/moreira/financas-casal-go/internal/domain"
)

// ============================================================
// Bills — CRUD via PostgREST
// ============================================================

type billRow struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	DueDate string  `json:"due_date"`
	Amount  float64 `json:"amount"`
	Status  string  `json:"status"`
	Owner   string  `json:"owner"`
}

func (r billRow) toDomain() domain.Bill {
	return domain.Bill{
		ID:      r.ID,
		Name:    r.Name,
		DueDate: parseDate(r.DueDate),
		Amount:  r.Amount,
		Status:  r.Status,
		Owner:   r.Owner,
	}
}

func (c *Client) ListBills(ctx context.Context) ([]domain.Bill, error) {
	ctx, span := tracer.Start(ctx, "Store.ListBills")
	defer span.End()

	body, err := c.getWithRetry(ctx, "bills?order=due_date.asc")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/bills", Err: err}
	}
	if body == nil || string(body) == "[]" {
		return []domain.Bill{}, nil
	}

	var rows []billRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode bills: %w", err)
	}

	out := make([]domain.Bill, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (c *Client) GetBill(ctx context.Context, id string) (*domain.Bill, error) {
	ctx, span := tracer.Start(ctx, "Store.GetBill")
	defer span.End()

	body, err := c.getWithRetry(ctx, fmt.Sprintf("bills?id=eq.%s&limit=1", id))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/bills", Err: err}
	}

	var rows []billRow
	if body != nil {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode bill: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "bill", ID: id}
	}
	b := rows[0].toDomain()
	return &b, nil
}

func (c *Client) CreateBill(ctx context.Context, b *domain.Bill) (*domain.Bill, error) {
	ctx, span := tracer.Start(ctx, "Store.CreateBill")
	defer span.End()

	row := map[string]any{
		"name":     b.Name,
		"due_date": formatDate(b.DueDate),
		"amount":   b.Amount,
		"status":   b.Status,
		"owner":    b.Owner,
	}

	body, err := c.doPost(ctx, "bills", row)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/bills", Err: err}
	}

	var rows []billRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode bill: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no result from bills insert")
	}
	created := rows[0].toDomain()
	return &created, nil
}

func (c *Client) UpdateBill(ctx context.Context, id string, updates map[string]any) error {
	ctx, span := tracer.Start(ctx, "Store.UpdateBill")
	defer span.End()

	return c.doPatch(ctx, fmt.Sprintf("bills?id=eq.%s", id), updates)
}

func (c *Client) DeleteBill(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Store.DeleteBill")
	defer span.End()

	return c.doDelete(ctx, fmt.Sprintf("bills?id=eq.%s", id))
}
