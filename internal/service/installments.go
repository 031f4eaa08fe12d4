package service

import (
	"context"
	"time"

	"github.com/moreira/financas-casal-go/internal/domain"

	"go.uber.org/zap"
)

// Installment purchases split a card purchase into equal monthly parts.
// Creating one debits the card's available limit for the full total and
// adds the total to the open invoice; the installment rows land one per
// month starting at the purchase's start date.

// CreatePurchase registers an installment purchase, debits the card and
// creates the individual installment rows.
func (s *FinanceService) CreatePurchase(ctx context.Context, p *domain.InstallmentPurchase) (*domain.InstallmentPurchase, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.CreatePurchase")
	defer span.End()

	if p.Installments < 1 {
		return nil, &domain.ErrValidation{Field: "installments", Message: "deve ser pelo menos 1"}
	}
	if p.TotalAmount <= 0 {
		return nil, &domain.ErrValidation{Field: "totalAmount", Message: "deve ser maior que zero"}
	}
	if !domain.ValidOrigin(p.Origin) {
		return nil, &domain.ErrValidation{Field: "origin", Message: "deve ser partner1, partner2 ou joint"}
	}
	if p.StartDate.IsZero() {
		p.StartDate = s.now()
	}
	p.InstallmentAmount = p.TotalAmount / float64(p.Installments)
	p.Status = domain.StatusActive

	// Debit the card before anything else: a purchase that does not
	// fit the available limit never gets created.
	if p.CreditCardID != "" {
		card, err := s.store.GetCreditCard(ctx, p.CreditCardID)
		if err != nil {
			return nil, err
		}
		if card.Available < p.TotalAmount {
			return nil, &domain.ErrInsufficientFunds{
				Available: card.Available,
				Required:  p.TotalAmount,
			}
		}
		err = s.store.UpdateCreditCard(ctx, p.CreditCardID, map[string]any{
			"available_limit": card.Available - p.TotalAmount,
			"invoice_amount":  card.InvoiceAmount + p.TotalAmount,
		})
		if err != nil {
			s.metrics.IncrStoreError("credit_cards")
			return nil, err
		}
	}

	created, err := s.store.CreateInstallmentPurchase(ctx, p)
	if err != nil {
		s.metrics.IncrStoreError("installment_purchases")
		return nil, err
	}

	for i := 0; i < p.Installments; i++ {
		inst := &domain.Installment{
			PurchaseID: created.ID,
			Amount:     p.InstallmentAmount,
			DueDate:    p.StartDate.AddDate(0, i, 0),
			Paid:       false,
		}
		if _, err := s.store.CreateInstallment(ctx, inst); err != nil {
			s.metrics.IncrStoreError("installments")
			return nil, err
		}
	}

	s.invalidate()
	s.logger.Info("installment purchase created",
		zap.String("id", created.ID),
		zap.Float64("total", p.TotalAmount),
		zap.Int("installments", p.Installments),
	)
	return created, nil
}

// SetInstallmentPaid marks one installment paid or unpaid and keeps the
// purchase status in sync: all paid flips it to completed, un-paying
// any flips it back to active.
func (s *FinanceService) SetInstallmentPaid(ctx context.Context, id string, paid bool) (*domain.Installment, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.SetInstallmentPaid")
	defer span.End()

	inst, err := s.store.GetInstallment(ctx, id)
	if err != nil {
		return nil, err
	}

	var paidDate *time.Time
	if paid {
		now := s.now()
		paidDate = &now
	}
	err = s.store.UpdateInstallment(ctx, id, map[string]any{
		"paid":      paid,
		"paid_date": paidDate,
	})
	if err != nil {
		s.metrics.IncrStoreError("installments")
		return nil, err
	}
	inst.Paid = paid
	inst.PaidDate = paidDate

	if err := s.syncPurchaseStatus(ctx, inst.PurchaseID, id, paid); err != nil {
		return nil, err
	}

	s.invalidate()
	return inst, nil
}

// syncPurchaseStatus recomputes the purchase status after one of its
// installments changed. The changed row may not be visible in the list
// yet, so its new state overrides what the store returns.
func (s *FinanceService) syncPurchaseStatus(ctx context.Context, purchaseID, changedID string, changedPaid bool) error {
	installments, err := s.store.ListInstallments(ctx, purchaseID)
	if err != nil {
		s.metrics.IncrStoreError("installments")
		return err
	}

	allPaid := true
	for _, inst := range installments {
		paid := inst.Paid
		if inst.ID == changedID {
			paid = changedPaid
		}
		if !paid {
			allPaid = false
			break
		}
	}

	status := domain.StatusActive
	if allPaid {
		status = domain.StatusCompleted
	}
	err = s.store.UpdateInstallmentPurchase(ctx, purchaseID, map[string]any{"status": status})
	if err != nil {
		s.metrics.IncrStoreError("installment_purchases")
		return err
	}
	return nil
}

// UpdatePurchase patches the purchase record itself. It never touches
// the installment rows or the card.
func (s *FinanceService) UpdatePurchase(ctx context.Context, id string, fields map[string]any) error {
	ctx, span := tracer.Start(ctx, "FinanceService.UpdatePurchase")
	defer span.End()

	if v, ok := fields["origin"].(string); ok && !domain.ValidOrigin(v) {
		return &domain.ErrValidation{Field: "origin", Message: "deve ser partner1, partner2 ou joint"}
	}

	updates, err := translate(fields, map[string]string{
		"description": "description",
		"category":    "category",
		"origin":      "origin",
	})
	if err != nil {
		return err
	}
	if err := s.store.UpdateInstallmentPurchase(ctx, id, updates); err != nil {
		s.metrics.IncrStoreError("installment_purchases")
		return err
	}
	s.invalidate()
	return nil
}

// DeletePurchase removes a purchase and its installments. Installments
// go first so a failure never leaves orphaned rows behind.
func (s *FinanceService) DeletePurchase(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "FinanceService.DeletePurchase")
	defer span.End()

	if err := s.store.DeleteInstallmentsByPurchase(ctx, id); err != nil {
		s.metrics.IncrStoreError("installments")
		return err
	}
	if err := s.store.DeleteInstallmentPurchase(ctx, id); err != nil {
		s.metrics.IncrStoreError("installment_purchases")
		return err
	}
	s.invalidate()
	return nil
}

// ListPurchases returns every installment purchase.
func (s *FinanceService) ListPurchases(ctx context.Context) ([]domain.InstallmentPurchase, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.ListPurchases")
	defer span.End()

	return s.store.ListInstallmentPurchases(ctx)
}

// ListInstallments returns installment rows, optionally filtered by
// purchase.
func (s *FinanceService) ListInstallments(ctx context.Context, purchaseID string) ([]domain.Installment, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.ListInstallments")
	defer span.End()

	return s.store.ListInstallments(ctx, purchaseID)
}
