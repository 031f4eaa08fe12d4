// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"
	"time"

	"github.com/moreira/financas-casal-go/internal/domain"
)

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

// FinanceStore defines all data operations for the household tracker.
// Implemented by the Supabase adapter (or any other persistence layer).
// Updates take partial patches; unknown fields are the caller's problem.
type FinanceStore interface {
	// Snapshot
	GetFinancialData(ctx context.Context) (*domain.FinancialData, error)

	// Transactions
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	CreateTransaction(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, updates map[string]any) error
	DeleteTransaction(ctx context.Context, id string) error

	// Bills
	ListBills(ctx context.Context) ([]domain.Bill, error)
	GetBill(ctx context.Context, id string) (*domain.Bill, error)
	CreateBill(ctx context.Context, b *domain.Bill) (*domain.Bill, error)
	UpdateBill(ctx context.Context, id string, updates map[string]any) error
	DeleteBill(ctx context.Context, id string) error

	// Credit cards
	ListCreditCards(ctx context.Context) ([]domain.CreditCard, error)
	GetCreditCard(ctx context.Context, id string) (*domain.CreditCard, error)
	CreateCreditCard(ctx context.Context, c *domain.CreditCard) (*domain.CreditCard, error)
	UpdateCreditCard(ctx context.Context, id string, updates map[string]any) error
	DeleteCreditCard(ctx context.Context, id string) error

	// Investments
	ListInvestments(ctx context.Context) ([]domain.Investment, error)
	GetInvestment(ctx context.Context, id string) (*domain.Investment, error)
	CreateInvestment(ctx context.Context, inv *domain.Investment) (*domain.Investment, error)
	UpdateInvestment(ctx context.Context, id string, updates map[string]any) error
	DeleteInvestment(ctx context.Context, id string) error

	// Recurring incomes
	ListRecurringIncomes(ctx context.Context) ([]domain.RecurringIncome, error)
	GetRecurringIncome(ctx context.Context, id string) (*domain.RecurringIncome, error)
	CreateRecurringIncome(ctx context.Context, ri *domain.RecurringIncome) (*domain.RecurringIncome, error)
	UpdateRecurringIncome(ctx context.Context, id string, updates map[string]any) error
	DeleteRecurringIncome(ctx context.Context, id string) error

	// Installment purchases
	ListInstallmentPurchases(ctx context.Context) ([]domain.InstallmentPurchase, error)
	GetInstallmentPurchase(ctx context.Context, id string) (*domain.InstallmentPurchase, error)
	CreateInstallmentPurchase(ctx context.Context, p *domain.InstallmentPurchase) (*domain.InstallmentPurchase, error)
	UpdateInstallmentPurchase(ctx context.Context, id string, updates map[string]any) error
	DeleteInstallmentPurchase(ctx context.Context, id string) error

	// Installments (purchaseID optionally filters)
	ListInstallments(ctx context.Context, purchaseID string) ([]domain.Installment, error)
	GetInstallment(ctx context.Context, id string) (*domain.Installment, error)
	CreateInstallment(ctx context.Context, i *domain.Installment) (*domain.Installment, error)
	UpdateInstallment(ctx context.Context, id string, updates map[string]any) error
	DeleteInstallmentsByPurchase(ctx context.Context, purchaseID string) error

	// Due dates
	ListDueDates(ctx context.Context) ([]domain.DueDate, error)
	GetDueDate(ctx context.Context, id string) (*domain.DueDate, error)
	CreateDueDate(ctx context.Context, d *domain.DueDate) (*domain.DueDate, error)
	UpdateDueDate(ctx context.Context, id string, updates map[string]any) error
	DeleteDueDate(ctx context.Context, id string) error

	// Users
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// AuthStore defines the data operations for the authentication system.
type AuthStore interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetCredentialByUsername(ctx context.Context, username string) (*domain.UserCredential, error)

	StoreRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllRefreshTokens(ctx context.Context, userID string) error
}
