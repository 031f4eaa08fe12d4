package service

import (
	"context"

	"github.com/moreira/financas-casal-go/internal/domain"

	"go.uber.org/zap"
)

// CRUD with business rules for the simple record types. Updates are
// partial: handlers pass the fields the SPA sent, the service maps them
// to store columns and validates the ones with invariants.

// ============================================================
// Transactions
// ============================================================

func (s *FinanceService) CreateTransaction(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.CreateTransaction")
	defer span.End()

	if t.Type != domain.TypeIncome && t.Type != domain.TypeExpense {
		return nil, &domain.ErrValidation{Field: "type", Message: "deve ser income ou expense"}
	}
	if !domain.ValidOrigin(t.Origin) {
		return nil, &domain.ErrValidation{Field: "origin", Message: "deve ser partner1, partner2 ou joint"}
	}
	if t.Amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "deve ser maior que zero"}
	}
	if t.Date.IsZero() {
		t.Date = s.now()
	}

	created, err := s.store.CreateTransaction(ctx, t)
	if err != nil {
		s.metrics.IncrStoreError("transactions")
		return nil, err
	}
	s.invalidate()
	s.logger.Info("transaction created",
		zap.String("id", created.ID),
		zap.String("type", created.Type),
		zap.Float64("amount", created.Amount),
	)
	return created, nil
}

func (s *FinanceService) UpdateTransaction(ctx context.Context, id string, fields map[string]any) error {
	ctx, span := tracer.Start(ctx, "FinanceService.UpdateTransaction")
	defer span.End()

	if v, ok := fields["origin"].(string); ok && !domain.ValidOrigin(v) {
		return &domain.ErrValidation{Field: "origin", Message: "deve ser partner1, partner2 ou joint"}
	}
	if v, ok := fields["type"].(string); ok && v != domain.TypeIncome && v != domain.TypeExpense {
		return &domain.ErrValidation{Field: "type", Message: "deve ser income ou expense"}
	}

	updates, err := translate(fields, map[string]string{
		"description": "description",
		"amount":      "amount",
		"category":    "category",
		"date":        "date",
		"origin":      "origin",
		"type":        "type",
	})
	if err != nil {
		return err
	}
	if err := s.store.UpdateTransaction(ctx, id, updates); err != nil {
		s.metrics.IncrStoreError("transactions")
		return err
	}
	s.invalidate()
	return nil
}

func (s *FinanceService) DeleteTransaction(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "FinanceService.DeleteTransaction")
	defer span.End()

	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		s.metrics.IncrStoreError("transactions")
		return err
	}
	s.invalidate()
	return nil
}

// ============================================================
// Bills
// ============================================================

func (s *FinanceService) CreateBill(ctx context.Context, b *domain.Bill) (*domain.Bill, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.CreateBill")
	defer span.End()

	if !domain.ValidOrigin(b.Owner) {
		return nil, &domain.ErrValidation{Field: "owner", Message: "deve ser partner1, partner2 ou joint"}
	}
	if b.Amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "deve ser maior que zero"}
	}
	if b.Status == "" {
		b.Status = domain.StatusPending
	}
	if b.Status != domain.StatusPending && b.Status != domain.StatusPaid {
		return nil, &domain.ErrValidation{Field: "status", Message: "deve ser pending ou paid"}
	}

	created, err := s.store.CreateBill(ctx, b)
	if err != nil {
		s.metrics.IncrStoreError("bills")
		return nil, err
	}
	s.invalidate()
	return created, nil
}

// PayBill marks a bill paid. Paying is terminal: once a bill is paid it
// stays paid, and updates back to pending are rejected.
func (s *FinanceService) PayBill(ctx context.Context, id string) (*domain.Bill, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.PayBill")
	defer span.End()

	bill, err := s.store.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill.Status == domain.StatusPaid {
		return bill, nil
	}
	if err := s.store.UpdateBill(ctx, id, map[string]any{"status": domain.StatusPaid}); err != nil {
		s.metrics.IncrStoreError("bills")
		return nil, err
	}
	s.invalidate()
	bill.Status = domain.StatusPaid
	s.logger.Info("bill paid", zap.String("id", id), zap.Float64("amount", bill.Amount))
	return bill, nil
}

func (s *FinanceService) UpdateBill(ctx context.Context, id string, fields map[string]any) error {
	ctx, span := tracer.Start(ctx, "FinanceService.UpdateBill")
	defer span.End()

	if v, ok := fields["owner"].(string); ok && !domain.ValidOrigin(v) {
		return &domain.ErrValidation{Field: "owner", Message: "deve ser partner1, partner2 ou joint"}
	}
	if v, ok := fields["status"].(string); ok {
		if v != domain.StatusPending && v != domain.StatusPaid {
			return &domain.ErrValidation{Field: "status", Message: "deve ser pending ou paid"}
		}
		if v == domain.StatusPending {
			bill, err := s.store.GetBill(ctx, id)
			if err != nil {
				return err
			}
			if bill.Status == domain.StatusPaid {
				return &domain.ErrValidation{Field: "status", Message: "conta paga não volta a pendente"}
			}
		}
	}

	updates, err := translate(fields, map[string]string{
		"name":    "name",
		"dueDate": "due_date",
		"amount":  "amount",
		"status":  "status",
		"owner":   "owner",
	})
	if err != nil {
		return err
	}
	if err := s.store.UpdateBill(ctx, id, updates); err != nil {
		s.metrics.IncrStoreError("bills")
		return err
	}
	s.invalidate()
	return nil
}

func (s *FinanceService) DeleteBill(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "FinanceService.DeleteBill")
	defer span.End()

	if err := s.store.DeleteBill(ctx, id); err != nil {
		s.metrics.IncrStoreError("bills")
		return err
	}
	s.invalidate()
	return nil
}

// ============================================================
// Credit Cards
// ============================================================

func validateCard(c *domain.CreditCard) error {
	if c.Holder != domain.OriginPartner1 && c.Holder != domain.OriginPartner2 {
		return &domain.ErrValidation{Field: "holder", Message: "cartão pertence a partner1 ou partner2"}
	}
	if c.Limit < 0 {
		return &domain.ErrValidation{Field: "limit", Message: "não pode ser negativo"}
	}
	if c.Available < 0 {
		return &domain.ErrValidation{Field: "available", Message: "não pode ser negativo"}
	}
	if c.Available > c.Limit {
		return &domain.ErrValidation{Field: "available", Message: "não pode exceder o limite"}
	}
	return nil
}

func (s *FinanceService) CreateCreditCard(ctx context.Context, c *domain.CreditCard) (*domain.CreditCard, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.CreateCreditCard")
	defer span.End()

	if err := validateCard(c); err != nil {
		return nil, err
	}
	if c.InvoiceStatus != "" && c.InvoiceStatus != domain.StatusPending && c.InvoiceStatus != domain.StatusPaid {
		return nil, &domain.ErrValidation{Field: "invoiceStatus", Message: "deve ser pending ou paid"}
	}

	created, err := s.store.CreateCreditCard(ctx, c)
	if err != nil {
		s.metrics.IncrStoreError("credit_cards")
		return nil, err
	}
	s.invalidate()
	return created, nil
}

func (s *FinanceService) UpdateCreditCard(ctx context.Context, id string, fields map[string]any) error {
	ctx, span := tracer.Start(ctx, "FinanceService.UpdateCreditCard")
	defer span.End()

	card, err := s.store.GetCreditCard(ctx, id)
	if err != nil {
		return err
	}
	next := *card
	if v, ok := numeric(fields["limit"]); ok {
		next.Limit = v
	}
	if v, ok := numeric(fields["available"]); ok {
		next.Available = v
	}
	if v, ok := fields["holder"].(string); ok {
		next.Holder = v
	}
	if err := validateCard(&next); err != nil {
		return err
	}

	updates, err := translate(fields, map[string]string{
		"holder":         "holder",
		"cardName":       "card_name",
		"limit":          "credit_limit",
		"available":      "available_limit",
		"invoiceAmount":  "invoice_amount",
		"invoiceDueDate": "invoice_due_date",
		"invoiceStatus":  "invoice_status",
		"color":          "color",
	})
	if err != nil {
		return err
	}
	if err := s.store.UpdateCreditCard(ctx, id, updates); err != nil {
		s.metrics.IncrStoreError("credit_cards")
		return err
	}
	s.invalidate()
	return nil
}

// SetInvoiceStatus toggles the card invoice between pending and paid.
// Unlike bills, invoices can go back to pending: the card keeps
// accumulating purchases after a payment.
func (s *FinanceService) SetInvoiceStatus(ctx context.Context, id, status string) (*domain.CreditCard, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.SetInvoiceStatus")
	defer span.End()

	if status != domain.StatusPending && status != domain.StatusPaid {
		return nil, &domain.ErrValidation{Field: "status", Message: "deve ser pending ou paid"}
	}
	card, err := s.store.GetCreditCard(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateCreditCard(ctx, id, map[string]any{"invoice_status": status}); err != nil {
		s.metrics.IncrStoreError("credit_cards")
		return nil, err
	}
	s.invalidate()
	card.InvoiceStatus = status
	s.logger.Info("invoice status changed",
		zap.String("card_id", id),
		zap.String("status", status),
	)
	return card, nil
}

func (s *FinanceService) DeleteCreditCard(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "FinanceService.DeleteCreditCard")
	defer span.End()

	if err := s.store.DeleteCreditCard(ctx, id); err != nil {
		s.metrics.IncrStoreError("credit_cards")
		return err
	}
	s.invalidate()
	return nil
}

// ============================================================
// Investments
// ============================================================

func (s *FinanceService) CreateInvestment(ctx context.Context, inv *domain.Investment) (*domain.Investment, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.CreateInvestment")
	defer span.End()

	if !domain.ValidInvestmentType(inv.Type) {
		return nil, &domain.ErrValidation{Field: "type", Message: "tipo de investimento desconhecido"}
	}
	if !domain.ValidOrigin(inv.Owner) {
		return nil, &domain.ErrValidation{Field: "owner", Message: "deve ser partner1, partner2 ou joint"}
	}
	if inv.Amount < 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "não pode ser negativo"}
	}
	if inv.CurrentValue == 0 {
		inv.CurrentValue = inv.Amount
	}

	created, err := s.store.CreateInvestment(ctx, inv)
	if err != nil {
		s.metrics.IncrStoreError("investments")
		return nil, err
	}
	s.invalidate()
	return created, nil
}

func (s *FinanceService) UpdateInvestment(ctx context.Context, id string, fields map[string]any) error {
	ctx, span := tracer.Start(ctx, "FinanceService.UpdateInvestment")
	defer span.End()

	if v, ok := fields["type"].(string); ok && !domain.ValidInvestmentType(v) {
		return &domain.ErrValidation{Field: "type", Message: "tipo de investimento desconhecido"}
	}
	if v, ok := fields["owner"].(string); ok && !domain.ValidOrigin(v) {
		return &domain.ErrValidation{Field: "owner", Message: "deve ser partner1, partner2 ou joint"}
	}

	updates, err := translate(fields, map[string]string{
		"name":         "name",
		"type":         "type",
		"amount":       "amount",
		"currentValue": "current_value",
		"owner":        "owner",
	})
	if err != nil {
		return err
	}
	if err := s.store.UpdateInvestment(ctx, id, updates); err != nil {
		s.metrics.IncrStoreError("investments")
		return err
	}
	s.invalidate()
	return nil
}

// ApplyYield replaces the investment's current value with principal
// plus one monthly yield. It never compounds: applying twice in a row
// lands on the same value.
func (s *FinanceService) ApplyYield(ctx context.Context, id string) (*domain.Investment, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.ApplyYield")
	defer span.End()

	inv, err := s.store.GetInvestment(ctx, id)
	if err != nil {
		return nil, err
	}

	newValue := AppliedValue(*inv)
	if err := s.store.UpdateInvestment(ctx, id, map[string]any{"current_value": newValue}); err != nil {
		s.metrics.IncrStoreError("investments")
		return nil, err
	}
	s.invalidate()

	s.logger.Info("yield applied",
		zap.String("investment_id", id),
		zap.String("type", inv.Type),
		zap.Float64("current_value", newValue),
	)
	inv.CurrentValue = newValue
	return inv, nil
}

func (s *FinanceService) DeleteInvestment(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "FinanceService.DeleteInvestment")
	defer span.End()

	if err := s.store.DeleteInvestment(ctx, id); err != nil {
		s.metrics.IncrStoreError("investments")
		return err
	}
	s.invalidate()
	return nil
}

// ============================================================
// Recurring Incomes
// ============================================================

func (s *FinanceService) CreateRecurringIncome(ctx context.Context, ri *domain.RecurringIncome) (*domain.RecurringIncome, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.CreateRecurringIncome")
	defer span.End()

	if ri.DayOfMonth < 1 || ri.DayOfMonth > 28 {
		return nil, &domain.ErrValidation{Field: "dayOfMonth", Message: "deve estar entre 1 e 28"}
	}
	if !domain.ValidOrigin(ri.Origin) {
		return nil, &domain.ErrValidation{Field: "origin", Message: "deve ser partner1, partner2 ou joint"}
	}
	if ri.Amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "deve ser maior que zero"}
	}
	if ri.CreatedAt.IsZero() {
		ri.CreatedAt = s.now()
	}

	created, err := s.store.CreateRecurringIncome(ctx, ri)
	if err != nil {
		s.metrics.IncrStoreError("recurring_incomes")
		return nil, err
	}
	s.invalidate()
	return created, nil
}

func (s *FinanceService) UpdateRecurringIncome(ctx context.Context, id string, fields map[string]any) error {
	ctx, span := tracer.Start(ctx, "FinanceService.UpdateRecurringIncome")
	defer span.End()

	if v, ok := numeric(fields["dayOfMonth"]); ok && (v < 1 || v > 28) {
		return &domain.ErrValidation{Field: "dayOfMonth", Message: "deve estar entre 1 e 28"}
	}
	if v, ok := fields["origin"].(string); ok && !domain.ValidOrigin(v) {
		return &domain.ErrValidation{Field: "origin", Message: "deve ser partner1, partner2 ou joint"}
	}

	updates, err := translate(fields, map[string]string{
		"description": "description",
		"amount":      "amount",
		"category":    "category",
		"dayOfMonth":  "day_of_month",
		"origin":      "origin",
		"enabled":     "enabled",
	})
	if err != nil {
		return err
	}
	if err := s.store.UpdateRecurringIncome(ctx, id, updates); err != nil {
		s.metrics.IncrStoreError("recurring_incomes")
		return err
	}
	s.invalidate()
	return nil
}

func (s *FinanceService) DeleteRecurringIncome(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "FinanceService.DeleteRecurringIncome")
	defer span.End()

	if err := s.store.DeleteRecurringIncome(ctx, id); err != nil {
		s.metrics.IncrStoreError("recurring_incomes")
		return err
	}
	s.invalidate()
	return nil
}

// ============================================================
// Due Dates
// ============================================================

func (s *FinanceService) CreateDueDate(ctx context.Context, d *domain.DueDate) (*domain.DueDate, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.CreateDueDate")
	defer span.End()

	if d.DayOfMonth < 1 || d.DayOfMonth > 31 {
		return nil, &domain.ErrValidation{Field: "dayOfMonth", Message: "deve estar entre 1 e 31"}
	}
	if d.Type != "bill" && d.Type != "installment" && d.Type != "income" {
		return nil, &domain.ErrValidation{Field: "type", Message: "deve ser bill, installment ou income"}
	}
	if !domain.ValidOrigin(d.Owner) {
		return nil, &domain.ErrValidation{Field: "owner", Message: "deve ser partner1, partner2 ou joint"}
	}

	created, err := s.store.CreateDueDate(ctx, d)
	if err != nil {
		s.metrics.IncrStoreError("due_dates")
		return nil, err
	}
	s.invalidate()
	return created, nil
}

func (s *FinanceService) UpdateDueDate(ctx context.Context, id string, fields map[string]any) error {
	ctx, span := tracer.Start(ctx, "FinanceService.UpdateDueDate")
	defer span.End()

	if v, ok := numeric(fields["dayOfMonth"]); ok && (v < 1 || v > 31) {
		return &domain.ErrValidation{Field: "dayOfMonth", Message: "deve estar entre 1 e 31"}
	}
	if v, ok := fields["type"].(string); ok && v != "bill" && v != "installment" && v != "income" {
		return &domain.ErrValidation{Field: "type", Message: "deve ser bill, installment ou income"}
	}

	updates, err := translate(fields, map[string]string{
		"name":        "name",
		"dayOfMonth":  "day_of_month",
		"amount":      "amount",
		"type":        "type",
		"owner":       "owner",
		"referenceId": "reference_id",
	})
	if err != nil {
		return err
	}
	if err := s.store.UpdateDueDate(ctx, id, updates); err != nil {
		s.metrics.IncrStoreError("due_dates")
		return err
	}
	s.invalidate()
	return nil
}

func (s *FinanceService) DeleteDueDate(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "FinanceService.DeleteDueDate")
	defer span.End()

	if err := s.store.DeleteDueDate(ctx, id); err != nil {
		s.metrics.IncrStoreError("due_dates")
		return err
	}
	s.invalidate()
	return nil
}

// ============================================================
// Partial-update helpers
// ============================================================

// translate maps the SPA's field names to store columns, dropping
// anything unknown. An update with nothing usable is a validation error.
func translate(fields map[string]any, columns map[string]string) (map[string]any, error) {
	updates := make(map[string]any, len(fields))
	for key, value := range fields {
		if col, ok := columns[key]; ok {
			updates[col] = value
		}
	}
	if len(updates) == 0 {
		return nil, &domain.ErrValidation{Field: "body", Message: "nenhum campo para atualizar"}
	}
	return updates, nil
}

// numeric unwraps the float64 encoding/json uses for JSON numbers.
func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
