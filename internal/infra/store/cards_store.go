package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/moreira/financas-casal-go/internal/domain"
)

// ============================================================
// Credit Cards — CRUD via PostgREST
// ============================================================

type cardRow struct {
	ID             string  `json:"id"`
	Holder         string  `json:"holder"`
	CardName       string  `json:"card_name"`
	Limit          float64 `json:"credit_limit"`
	Available      float64 `json:"available_limit"`
	InvoiceAmount  float64 `json:"invoice_amount"`
	InvoiceDueDate string  `json:"invoice_due_date"`
	InvoiceStatus  string  `json:"invoice_status"`
	Color          string  `json:"color"`
}

func (r cardRow) toDomain() domain.CreditCard {
	return domain.CreditCard{
		ID:             r.ID,
		Holder:         r.Holder,
		CardName:       r.CardName,
		Limit:          r.Limit,
		Available:      r.Available,
		InvoiceAmount:  r.InvoiceAmount,
		InvoiceDueDate: parseDate(r.InvoiceDueDate),
		InvoiceStatus:  r.InvoiceStatus,
		Color:          r.Color,
	}
}

func (c *Client) ListCreditCards(ctx context.Context) ([]domain.CreditCard, error) {
	ctx, span := tracer.Start(ctx, "Store.ListCreditCards")
	defer span.End()

	body, err := c.getWithRetry(ctx, "credit_cards?order=card_name.asc")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/credit_cards", Err: err}
	}
	if body == nil || string(body) == "[]" {
		return []domain.CreditCard{}, nil
	}

	var rows []cardRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode credit_cards: %w", err)
	}

	out := make([]domain.CreditCard, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (c *Client) GetCreditCard(ctx context.Context, id string) (*domain.CreditCard, error) {
	ctx, span := tracer.Start(ctx, "Store.GetCreditCard")
	defer span.End()

	body, err := c.getWithRetry(ctx, fmt.Sprintf("credit_cards?id=eq.%s&limit=1", id))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/credit_cards", Err: err}
	}

	var rows []cardRow
	if body != nil {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode credit_card: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "credit_card", ID: id}
	}
	card := rows[0].toDomain()
	return &card, nil
}

func (c *Client) CreateCreditCard(ctx context.Context, card *domain.CreditCard) (*domain.CreditCard, error) {
	ctx, span := tracer.Start(ctx, "Store.CreateCreditCard")
	defer span.End()

	row := map[string]any{
		"holder":           card.Holder,
		"card_name":        card.CardName,
		"credit_limit":     card.Limit,
		"available_limit":  card.Available,
		"invoice_amount":   card.InvoiceAmount,
		"invoice_due_date": formatDate(card.InvoiceDueDate),
		"invoice_status":   card.InvoiceStatus,
		"color":            card.Color,
	}

	body, err := c.doPost(ctx, "credit_cards", row)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/credit_cards", Err: err}
	}

	var rows []cardRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode credit_card: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no result from credit_cards insert")
	}
	created := rows[0].toDomain()
	return &created, nil
}

func (c *Client) UpdateCreditCard(ctx context.Context, id string, updates map[string]any) error {
	ctx, span := tracer.Start(ctx, "Store.UpdateCreditCard")
	defer span.End()

	return c.doPatch(ctx, fmt.Sprintf("credit_cards?id=eq.%s", id), updates)
}

func (c *Client) DeleteCreditCard(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Store.DeleteCreditCard")
	defer span.End()

	return c.doDelete(ctx, fmt.Sprintf("credit_cards?id=eq.%s", id))
}
