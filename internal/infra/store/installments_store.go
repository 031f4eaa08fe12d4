package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/moreira/financas-casal-go/internal/domain"
)

// ============================================================
// Installment Purchases & Installments — CRUD via PostgREST
// ============================================================

type purchaseRow struct {
	ID                string  `json:"id"`
	Description       string  `json:"description"`
	TotalAmount       float64 `json:"total_amount"`
	Installments      int     `json:"installments"`
	InstallmentAmount float64 `json:"installment_amount"`
	Origin            string  `json:"origin"`
	Category          string  `json:"category"`
	StartDate         string  `json:"start_date"`
	Status            string  `json:"status"`
	CreditCardID      string  `json:"credit_card_id"`
}

func (r purchaseRow) toDomain() domain.InstallmentPurchase {
	return domain.InstallmentPurchase{
		ID:                r.ID,
		Description:       r.Description,
		TotalAmount:       r.TotalAmount,
		Installments:      r.Installments,
		InstallmentAmount: r.InstallmentAmount,
		Origin:            r.Origin,
		Category:          r.Category,
		StartDate:         parseDate(r.StartDate),
		Status:            r.Status,
		CreditCardID:      r.CreditCardID,
	}
}

type installmentRow struct {
	ID         string  `json:"id"`
	PurchaseID string  `json:"purchase_id"`
	Amount     float64 `json:"amount"`
	DueDate    string  `json:"due_date"`
	Paid       bool    `json:"paid"`
	PaidDate   string  `json:"paid_date"`
}

func (r installmentRow) toDomain() domain.Installment {
	inst := domain.Installment{
		ID:         r.ID,
		PurchaseID: r.PurchaseID,
		Amount:     r.Amount,
		DueDate:    parseDate(r.DueDate),
		Paid:       r.Paid,
	}
	if r.PaidDate != "" {
		pd := parseDate(r.PaidDate)
		inst.PaidDate = &pd
	}
	return inst
}

func (c *Client) ListInstallmentPurchases(ctx context.Context) ([]domain.InstallmentPurchase, error) {
	ctx, span := tracer.Start(ctx, "Store.ListInstallmentPurchases")
	defer span.End()

	body, err := c.getWithRetry(ctx, "installment_purchases?order=start_date.desc")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/installment_purchases", Err: err}
	}
	if body == nil || string(body) == "[]" {
		return []domain.InstallmentPurchase{}, nil
	}

	var rows []purchaseRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode installment_purchases: %w", err)
	}

	out := make([]domain.InstallmentPurchase, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (c *Client) GetInstallmentPurchase(ctx context.Context, id string) (*domain.InstallmentPurchase, error) {
	ctx, span := tracer.Start(ctx, "Store.GetInstallmentPurchase")
	defer span.End()

	body, err := c.getWithRetry(ctx, fmt.Sprintf("installment_purchases?id=eq.%s&limit=1", id))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/installment_purchases", Err: err}
	}

	var rows []purchaseRow
	if body != nil {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode installment_purchase: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "installment_purchase", ID: id}
	}
	p := rows[0].toDomain()
	return &p, nil
}

func (c *Client) CreateInstallmentPurchase(ctx context.Context, p *domain.InstallmentPurchase) (*domain.InstallmentPurchase, error) {
	ctx, span := tracer.Start(ctx, "Store.CreateInstallmentPurchase")
	defer span.End()

	row := map[string]any{
		"description":        p.Description,
		"total_amount":       p.TotalAmount,
		"installments":       p.Installments,
		"installment_amount": p.InstallmentAmount,
		"origin":             p.Origin,
		"category":           p.Category,
		"start_date":         formatDate(p.StartDate),
		"status":             p.Status,
	}
	if p.CreditCardID != "" {
		row["credit_card_id"] = p.CreditCardID
	}

	body, err := c.doPost(ctx, "installment_purchases", row)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/installment_purchases", Err: err}
	}

	var rows []purchaseRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode installment_purchase: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no result from installment_purchases insert")
	}
	created := rows[0].toDomain()
	return &created, nil
}

func (c *Client) UpdateInstallmentPurchase(ctx context.Context, id string, updates map[string]any) error {
	ctx, span := tracer.Start(ctx, "Store.UpdateInstallmentPurchase")
	defer span.End()

	return c.doPatch(ctx, fmt.Sprintf("installment_purchases?id=eq.%s", id), updates)
}

func (c *Client) DeleteInstallmentPurchase(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Store.DeleteInstallmentPurchase")
	defer span.End()

	return c.doDelete(ctx, fmt.Sprintf("installment_purchases?id=eq.%s", id))
}

// --- Installments ---

func (c *Client) ListInstallments(ctx context.Context, purchaseID string) ([]domain.Installment, error) {
	ctx, span := tracer.Start(ctx, "Store.ListInstallments")
	defer span.End()

	path := "installments?order=due_date.asc"
	if purchaseID != "" {
		path = fmt.Sprintf("installments?purchase_id=eq.%s&order=due_date.asc", purchaseID)
	}
	body, err := c.getWithRetry(ctx, path)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/installments", Err: err}
	}
	if body == nil || string(body) == "[]" {
		return []domain.Installment{}, nil
	}

	var rows []installmentRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode installments: %w", err)
	}

	out := make([]domain.Installment, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (c *Client) GetInstallment(ctx context.Context, id string) (*domain.Installment, error) {
	ctx, span := tracer.Start(ctx, "Store.GetInstallment")
	defer span.End()

	body, err := c.getWithRetry(ctx, fmt.Sprintf("installments?id=eq.%s&limit=1", id))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/installments", Err: err}
	}

	var rows []installmentRow
	if body != nil {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode installment: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "installment", ID: id}
	}
	inst := rows[0].toDomain()
	return &inst, nil
}

func (c *Client) CreateInstallment(ctx context.Context, i *domain.Installment) (*domain.Installment, error) {
	ctx, span := tracer.Start(ctx, "Store.CreateInstallment")
	defer span.End()

	row := map[string]any{
		"purchase_id": i.PurchaseID,
		"amount":      i.Amount,
		"due_date":    formatDate(i.DueDate),
		"paid":        i.Paid,
	}
	if i.PaidDate != nil {
		row["paid_date"] = formatDate(*i.PaidDate)
	}

	body, err := c.doPost(ctx, "installments", row)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/installments", Err: err}
	}

	var rows []installmentRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode installment: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no result from installments insert")
	}
	created := rows[0].toDomain()
	return &created, nil
}

func (c *Client) UpdateInstallment(ctx context.Context, id string, updates map[string]any) error {
	ctx, span := tracer.Start(ctx, "Store.UpdateInstallment")
	defer span.End()

	return c.doPatch(ctx, fmt.Sprintf("installments?id=eq.%s", id), updates)
}

func (c *Client) DeleteInstallmentsByPurchase(ctx context.Context, purchaseID string) error {
	ctx, span := tracer.Start(ctx, "Store.DeleteInstallmentsByPurchase")
	defer span.End()

	return c.doDelete(ctx, fmt.Sprintf("installments?purchase_id=eq.%s", purchaseID))
}
