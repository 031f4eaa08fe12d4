package store

import (
	"context"

	"github.com/moreira/financas-casal-go/internal/domain"

	"golang.org/x/sync/errgroup"
)

// GetFinancialData fetches every collection concurrently and assembles
// the full snapshot. It fails as a unit: if any collection errors, no
// snapshot is returned, so callers never see partial data.
func (c *Client) GetFinancialData(ctx context.Context) (*domain.FinancialData, error) {
	ctx, span := tracer.Start(ctx, "Store.GetFinancialData")
	defer span.End()

	data := &domain.FinancialData{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		txs, err := c.ListTransactions(gCtx)
		if err != nil {
			return err
		}
		data.Transactions = txs
		return nil
	})
	g.Go(func() error {
		bills, err := c.ListBills(gCtx)
		if err != nil {
			return err
		}
		data.Bills = bills
		return nil
	})
	g.Go(func() error {
		cards, err := c.ListCreditCards(gCtx)
		if err != nil {
			return err
		}
		data.CreditCards = cards
		return nil
	})
	g.Go(func() error {
		invs, err := c.ListInvestments(gCtx)
		if err != nil {
			return err
		}
		data.Investments = invs
		return nil
	})
	g.Go(func() error {
		ris, err := c.ListRecurringIncomes(gCtx)
		if err != nil {
			return err
		}
		data.RecurringIncomes = ris
		return nil
	})
	g.Go(func() error {
		ps, err := c.ListInstallmentPurchases(gCtx)
		if err != nil {
			return err
		}
		data.InstallmentPurchases = ps
		return nil
	})
	g.Go(func() error {
		insts, err := c.ListInstallments(gCtx, "")
		if err != nil {
			return err
		}
		data.Installments = insts
		return nil
	})
	g.Go(func() error {
		dds, err := c.ListDueDates(gCtx)
		if err != nil {
			return err
		}
		data.DueDates = dds
		return nil
	})
	g.Go(func() error {
		users, err := c.ListUsers(gCtx)
		if err != nil {
			return err
		}
		data.Users = users
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}
