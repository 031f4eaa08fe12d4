package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/moreira/financas-casal-go/internal/domain"
	"github.com/moreira/financas-casal-go/internal/infra/cache"
	"github.com/moreira/financas-casal-go/internal/infra/observability"
	"github.com/moreira/financas-casal-go/internal/service"

	"go.uber.org/zap"
)

// --- Mock store ---

// patch records one partial update sent to the store.
type patch struct {
	id     string
	fields map[string]any
}

type mockStore struct {
	data domain.FinancialData

	snapshotCalls int
	snapshotErr   error

	patches map[string][]patch // collection -> updates
	created map[string]int     // collection -> create count
	deleted map[string][]string
}

func newMockStore(data domain.FinancialData) *mockStore {
	return &mockStore{
		data:    data,
		patches: make(map[string][]patch),
		created: make(map[string]int),
		deleted: make(map[string][]string),
	}
}

func (m *mockStore) record(collection, id string, fields map[string]any) {
	m.patches[collection] = append(m.patches[collection], patch{id: id, fields: fields})
}

func (m *mockStore) lastPatch(t *testing.T, collection string) patch {
	t.Helper()
	ps := m.patches[collection]
	if len(ps) == 0 {
		t.Fatalf("no patches recorded for %s", collection)
	}
	return ps[len(ps)-1]
}

func (m *mockStore) GetFinancialData(_ context.Context) (*domain.FinancialData, error) {
	m.snapshotCalls++
	if m.snapshotErr != nil {
		return nil, m.snapshotErr
	}
	d := m.data
	return &d, nil
}

func (m *mockStore) ListTransactions(_ context.Context) ([]domain.Transaction, error) {
	return m.data.Transactions, nil
}

func (m *mockStore) GetTransaction(_ context.Context, id string) (*domain.Transaction, error) {
	for i := range m.data.Transactions {
		if m.data.Transactions[i].ID == id {
			return &m.data.Transactions[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "transaction", ID: id}
}

func (m *mockStore) CreateTransaction(_ context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	m.created["transactions"]++
	t.ID = fmt.Sprintf("t-%d", m.created["transactions"])
	m.data.Transactions = append(m.data.Transactions, *t)
	return t, nil
}

func (m *mockStore) UpdateTransaction(_ context.Context, id string, updates map[string]any) error {
	m.record("transactions", id, updates)
	return nil
}

func (m *mockStore) DeleteTransaction(_ context.Context, id string) error {
	m.deleted["transactions"] = append(m.deleted["transactions"], id)
	return nil
}

func (m *mockStore) ListBills(_ context.Context) ([]domain.Bill, error) {
	return m.data.Bills, nil
}

func (m *mockStore) GetBill(_ context.Context, id string) (*domain.Bill, error) {
	for i := range m.data.Bills {
		if m.data.Bills[i].ID == id {
			b := m.data.Bills[i]
			return &b, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "bill", ID: id}
}

func (m *mockStore) CreateBill(_ context.Context, b *domain.Bill) (*domain.Bill, error) {
	m.created["bills"]++
	b.ID = fmt.Sprintf("b-%d", m.created["bills"])
	m.data.Bills = append(m.data.Bills, *b)
	return b, nil
}

func (m *mockStore) UpdateBill(_ context.Context, id string, updates map[string]any) error {
	m.record("bills", id, updates)
	if status, ok := updates["status"].(string); ok {
		for i := range m.data.Bills {
			if m.data.Bills[i].ID == id {
				m.data.Bills[i].Status = status
			}
		}
	}
	return nil
}

func (m *mockStore) DeleteBill(_ context.Context, id string) error {
	m.deleted["bills"] = append(m.deleted["bills"], id)
	return nil
}

func (m *mockStore) ListCreditCards(_ context.Context) ([]domain.CreditCard, error) {
	return m.data.CreditCards, nil
}

func (m *mockStore) GetCreditCard(_ context.Context, id string) (*domain.CreditCard, error) {
	for i := range m.data.CreditCards {
		if m.data.CreditCards[i].ID == id {
			c := m.data.CreditCards[i]
			return &c, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "credit card", ID: id}
}

func (m *mockStore) CreateCreditCard(_ context.Context, c *domain.CreditCard) (*domain.CreditCard, error) {
	m.created["credit_cards"]++
	c.ID = fmt.Sprintf("c-%d", m.created["credit_cards"])
	m.data.CreditCards = append(m.data.CreditCards, *c)
	return c, nil
}

func (m *mockStore) UpdateCreditCard(_ context.Context, id string, updates map[string]any) error {
	m.record("credit_cards", id, updates)
	return nil
}

func (m *mockStore) DeleteCreditCard(_ context.Context, id string) error {
	m.deleted["credit_cards"] = append(m.deleted["credit_cards"], id)
	return nil
}

func (m *mockStore) ListInvestments(_ context.Context) ([]domain.Investment, error) {
	return m.data.Investments, nil
}

func (m *mockStore) GetInvestment(_ context.Context, id string) (*domain.Investment, error) {
	for i := range m.data.Investments {
		if m.data.Investments[i].ID == id {
			inv := m.data.Investments[i]
			return &inv, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "investment", ID: id}
}

func (m *mockStore) CreateInvestment(_ context.Context, inv *domain.Investment) (*domain.Investment, error) {
	m.created["investments"]++
	inv.ID = fmt.Sprintf("i-%d", m.created["investments"])
	m.data.Investments = append(m.data.Investments, *inv)
	return inv, nil
}

func (m *mockStore) UpdateInvestment(_ context.Context, id string, updates map[string]any) error {
	m.record("investments", id, updates)
	return nil
}

func (m *mockStore) DeleteInvestment(_ context.Context, id string) error {
	m.deleted["investments"] = append(m.deleted["investments"], id)
	return nil
}

func (m *mockStore) ListRecurringIncomes(_ context.Context) ([]domain.RecurringIncome, error) {
	return m.data.RecurringIncomes, nil
}

func (m *mockStore) GetRecurringIncome(_ context.Context, id string) (*domain.RecurringIncome, error) {
	for i := range m.data.RecurringIncomes {
		if m.data.RecurringIncomes[i].ID == id {
			ri := m.data.RecurringIncomes[i]
			return &ri, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "recurring income", ID: id}
}

func (m *mockStore) CreateRecurringIncome(_ context.Context, ri *domain.RecurringIncome) (*domain.RecurringIncome, error) {
	m.created["recurring_incomes"]++
	ri.ID = fmt.Sprintf("r-%d", m.created["recurring_incomes"])
	m.data.RecurringIncomes = append(m.data.RecurringIncomes, *ri)
	return ri, nil
}

func (m *mockStore) UpdateRecurringIncome(_ context.Context, id string, updates map[string]any) error {
	m.record("recurring_incomes", id, updates)
	return nil
}

func (m *mockStore) DeleteRecurringIncome(_ context.Context, id string) error {
	m.deleted["recurring_incomes"] = append(m.deleted["recurring_incomes"], id)
	return nil
}

func (m *mockStore) ListInstallmentPurchases(_ context.Context) ([]domain.InstallmentPurchase, error) {
	return m.data.InstallmentPurchases, nil
}

func (m *mockStore) GetInstallmentPurchase(_ context.Context, id string) (*domain.InstallmentPurchase, error) {
	for i := range m.data.InstallmentPurchases {
		if m.data.InstallmentPurchases[i].ID == id {
			p := m.data.InstallmentPurchases[i]
			return &p, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "installment purchase", ID: id}
}

func (m *mockStore) CreateInstallmentPurchase(_ context.Context, p *domain.InstallmentPurchase) (*domain.InstallmentPurchase, error) {
	m.created["installment_purchases"]++
	p.ID = fmt.Sprintf("p-%d", m.created["installment_purchases"])
	m.data.InstallmentPurchases = append(m.data.InstallmentPurchases, *p)
	return p, nil
}

func (m *mockStore) UpdateInstallmentPurchase(_ context.Context, id string, updates map[string]any) error {
	m.record("installment_purchases", id, updates)
	return nil
}

func (m *mockStore) DeleteInstallmentPurchase(_ context.Context, id string) error {
	m.deleted["installment_purchases"] = append(m.deleted["installment_purchases"], id)
	return nil
}

func (m *mockStore) ListInstallments(_ context.Context, purchaseID string) ([]domain.Installment, error) {
	if purchaseID == "" {
		return m.data.Installments, nil
	}
	out := make([]domain.Installment, 0)
	for _, inst := range m.data.Installments {
		if inst.PurchaseID == purchaseID {
			out = append(out, inst)
		}
	}
	return out, nil
}

func (m *mockStore) GetInstallment(_ context.Context, id string) (*domain.Installment, error) {
	for i := range m.data.Installments {
		if m.data.Installments[i].ID == id {
			inst := m.data.Installments[i]
			return &inst, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "installment", ID: id}
}

func (m *mockStore) CreateInstallment(_ context.Context, inst *domain.Installment) (*domain.Installment, error) {
	m.created["installments"]++
	inst.ID = fmt.Sprintf("inst-%d", m.created["installments"])
	m.data.Installments = append(m.data.Installments, *inst)
	return inst, nil
}

func (m *mockStore) UpdateInstallment(_ context.Context, id string, updates map[string]any) error {
	m.record("installments", id, updates)
	if paid, ok := updates["paid"].(bool); ok {
		for i := range m.data.Installments {
			if m.data.Installments[i].ID == id {
				m.data.Installments[i].Paid = paid
			}
		}
	}
	return nil
}

func (m *mockStore) DeleteInstallmentsByPurchase(_ context.Context, purchaseID string) error {
	m.deleted["installments_by_purchase"] = append(m.deleted["installments_by_purchase"], purchaseID)
	return nil
}

func (m *mockStore) ListDueDates(_ context.Context) ([]domain.DueDate, error) {
	return m.data.DueDates, nil
}

func (m *mockStore) GetDueDate(_ context.Context, id string) (*domain.DueDate, error) {
	for i := range m.data.DueDates {
		if m.data.DueDates[i].ID == id {
			d := m.data.DueDates[i]
			return &d, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "due date", ID: id}
}

func (m *mockStore) CreateDueDate(_ context.Context, d *domain.DueDate) (*domain.DueDate, error) {
	m.created["due_dates"]++
	d.ID = fmt.Sprintf("d-%d", m.created["due_dates"])
	m.data.DueDates = append(m.data.DueDates, *d)
	return d, nil
}

func (m *mockStore) UpdateDueDate(_ context.Context, id string, updates map[string]any) error {
	m.record("due_dates", id, updates)
	return nil
}

func (m *mockStore) DeleteDueDate(_ context.Context, id string) error {
	m.deleted["due_dates"] = append(m.deleted["due_dates"], id)
	return nil
}

func (m *mockStore) ListUsers(_ context.Context) ([]domain.User, error) {
	return m.data.Users, nil
}

// --- Helpers ---

func newService(store *mockStore) *service.FinanceService {
	return service.NewFinanceService(
		store,
		cache.New[*domain.FinancialData](5*time.Minute),
		observability.NewMetrics(),
		zap.NewNop(),
	)
}

// --- Snapshot lifecycle ---

func TestGetFinancialData_Cached(t *testing.T) {
	store := newMockStore(domain.FinancialData{})
	svc := newService(store)

	if _, err := svc.GetFinancialData(context.Background()); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := svc.GetFinancialData(context.Background()); err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if store.snapshotCalls != 1 {
		t.Errorf("expected 1 store fetch, got %d", store.snapshotCalls)
	}
}

func TestGetFinancialData_Error(t *testing.T) {
	store := newMockStore(domain.FinancialData{})
	store.snapshotErr = errors.New("connection refused")
	svc := newService(store)

	if _, err := svc.GetFinancialData(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestMutationInvalidatesSnapshot(t *testing.T) {
	store := newMockStore(domain.FinancialData{})
	svc := newService(store)

	if _, err := svc.GetFinancialData(context.Background()); err != nil {
		t.Fatal(err)
	}

	_, err := svc.CreateTransaction(context.Background(), &domain.Transaction{
		Description: "Mercado", Amount: 120, Type: "expense", Origin: "joint", Category: "Supermercado",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.GetFinancialData(context.Background()); err != nil {
		t.Fatal(err)
	}
	if store.snapshotCalls != 2 {
		t.Errorf("expected refetch after mutation, got %d calls", store.snapshotCalls)
	}
}

// --- Transactions ---

func TestCreateTransaction_Validation(t *testing.T) {
	svc := newService(newMockStore(domain.FinancialData{}))

	cases := []domain.Transaction{
		{Type: "transfer", Origin: "joint", Amount: 10},
		{Type: "income", Origin: "someone", Amount: 10},
		{Type: "expense", Origin: "partner1", Amount: 0},
		{Type: "expense", Origin: "partner1", Amount: -5},
	}
	for i, tx := range cases {
		if _, err := svc.CreateTransaction(context.Background(), &tx); err == nil {
			t.Errorf("case %d: expected validation error", i)
		} else {
			var ve *domain.ErrValidation
			if !errors.As(err, &ve) {
				t.Errorf("case %d: expected ErrValidation, got %T", i, err)
			}
		}
	}
}

// --- Bills ---

func TestPayBill(t *testing.T) {
	store := newMockStore(domain.FinancialData{
		Bills: []domain.Bill{{ID: "b1", Name: "Luz", Amount: 250, Status: "pending"}},
	})
	svc := newService(store)

	bill, err := svc.PayBill(context.Background(), "b1")
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if bill.Status != "paid" {
		t.Errorf("expected paid, got %s", bill.Status)
	}
	p := store.lastPatch(t, "bills")
	if p.fields["status"] != "paid" {
		t.Errorf("expected status patch, got %v", p.fields)
	}
}

func TestPayBill_AlreadyPaidIsIdempotent(t *testing.T) {
	store := newMockStore(domain.FinancialData{
		Bills: []domain.Bill{{ID: "b1", Name: "Luz", Amount: 250, Status: "paid"}},
	})
	svc := newService(store)

	if _, err := svc.PayBill(context.Background(), "b1"); err != nil {
		t.Fatalf("pay: %v", err)
	}
	if len(store.patches["bills"]) != 0 {
		t.Error("paying a paid bill must not patch the store")
	}
}

func TestUpdateBill_CannotUnpay(t *testing.T) {
	store := newMockStore(domain.FinancialData{
		Bills: []domain.Bill{{ID: "b1", Name: "Luz", Amount: 250, Status: "paid"}},
	})
	svc := newService(store)

	err := svc.UpdateBill(context.Background(), "b1", map[string]any{"status": "pending"})
	var ve *domain.ErrValidation
	if !errors.As(err, &ve) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// --- Credit cards ---

func TestSetInvoiceStatus_TogglesBothWays(t *testing.T) {
	store := newMockStore(domain.FinancialData{
		CreditCards: []domain.CreditCard{{ID: "c1", Holder: "partner1", CardName: "Nubank", Limit: 5000, Available: 4000, InvoiceAmount: 800, InvoiceStatus: "pending"}},
	})
	svc := newService(store)

	if _, err := svc.SetInvoiceStatus(context.Background(), "c1", "paid"); err != nil {
		t.Fatalf("pay invoice: %v", err)
	}
	if _, err := svc.SetInvoiceStatus(context.Background(), "c1", "pending"); err != nil {
		t.Fatalf("reopen invoice: %v", err)
	}
	if _, err := svc.SetInvoiceStatus(context.Background(), "c1", "overdue"); err == nil {
		t.Error("expected validation error for unknown status")
	}
}

func TestCreateCreditCard_Validation(t *testing.T) {
	svc := newService(newMockStore(domain.FinancialData{}))

	cases := []domain.CreditCard{
		{Holder: "joint", CardName: "X", Limit: 1000, Available: 500},
		{Holder: "partner1", CardName: "X", Limit: 1000, Available: 1500},
		{Holder: "partner1", CardName: "X", Limit: -1, Available: 0},
	}
	for i, c := range cases {
		if _, err := svc.CreateCreditCard(context.Background(), &c); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

// --- Investments ---

func TestApplyYield(t *testing.T) {
	store := newMockStore(domain.FinancialData{
		Investments: []domain.Investment{{ID: "i1", Name: "Tesouro", Type: "Renda Fixa", Amount: 2000, CurrentValue: 2000, Owner: "joint"}},
	})
	svc := newService(store)

	inv, err := svc.ApplyYield(context.Background(), "i1")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if inv.CurrentValue != 2016 {
		t.Errorf("expected 2016.00, got %.2f", inv.CurrentValue)
	}
	p := store.lastPatch(t, "investments")
	if p.fields["current_value"] != 2016.0 {
		t.Errorf("expected current_value patch 2016, got %v", p.fields)
	}
}

func TestCreateInvestment_UnknownType(t *testing.T) {
	svc := newService(newMockStore(domain.FinancialData{}))

	_, err := svc.CreateInvestment(context.Background(), &domain.Investment{
		Name: "X", Type: "Bitcoin Futures", Amount: 100, Owner: "joint",
	})
	if err == nil {
		t.Fatal("expected validation error for unknown investment type")
	}
}

// --- Recurring incomes ---

func TestCreateRecurringIncome_DayRange(t *testing.T) {
	svc := newService(newMockStore(domain.FinancialData{}))

	for _, day := range []int{0, 29, 31} {
		_, err := svc.CreateRecurringIncome(context.Background(), &domain.RecurringIncome{
			Description: "Salário", Amount: 1000, DayOfMonth: day, Origin: "partner1",
		})
		if err == nil {
			t.Errorf("day %d: expected validation error", day)
		}
	}

	if _, err := svc.CreateRecurringIncome(context.Background(), &domain.RecurringIncome{
		Description: "Salário", Amount: 1000, DayOfMonth: 28, Origin: "partner1",
	}); err != nil {
		t.Errorf("day 28: expected success, got %v", err)
	}
}

// --- Due dates ---

func TestCreateDueDate_Validation(t *testing.T) {
	svc := newService(newMockStore(domain.FinancialData{}))

	if _, err := svc.CreateDueDate(context.Background(), &domain.DueDate{
		Name: "X", DayOfMonth: 32, Type: "bill", Owner: "joint",
	}); err == nil {
		t.Error("expected error for day 32")
	}
	if _, err := svc.CreateDueDate(context.Background(), &domain.DueDate{
		Name: "X", DayOfMonth: 10, Type: "credit_card", Owner: "joint",
	}); err == nil {
		t.Error("expected error for type credit_card on a manual entry")
	}
	if _, err := svc.CreateDueDate(context.Background(), &domain.DueDate{
		Name: "X", DayOfMonth: 31, Type: "installment", Owner: "joint",
	}); err != nil {
		t.Errorf("day 31 installment: expected success, got %v", err)
	}
}

// --- Installment purchases ---

func TestCreatePurchase_DebitsCardAndSplitsInstallments(t *testing.T) {
	store := newMockStore(domain.FinancialData{
		CreditCards: []domain.CreditCard{{ID: "c1", Holder: "partner1", CardName: "Nubank", Limit: 2000, Available: 1000, InvoiceAmount: 100}},
	})
	svc := newService(store)

	start := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	p, err := svc.CreatePurchase(context.Background(), &domain.InstallmentPurchase{
		Description: "Sofá", TotalAmount: 900, Installments: 3,
		Origin: "joint", Category: "Compras", StartDate: start, CreditCardID: "c1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if p.InstallmentAmount != 300 {
		t.Errorf("installment amount: expected 300, got %.2f", p.InstallmentAmount)
	}
	if p.Status != "active" {
		t.Errorf("status: expected active, got %s", p.Status)
	}

	cardPatch := store.lastPatch(t, "credit_cards")
	if cardPatch.fields["available_limit"] != 100.0 {
		t.Errorf("available: expected 100, got %v", cardPatch.fields["available_limit"])
	}
	if cardPatch.fields["invoice_amount"] != 1000.0 {
		t.Errorf("invoice: expected 1000, got %v", cardPatch.fields["invoice_amount"])
	}

	if len(store.data.Installments) != 3 {
		t.Fatalf("expected 3 installments, got %d", len(store.data.Installments))
	}
	for i, inst := range store.data.Installments {
		if inst.Amount != 300 {
			t.Errorf("installment %d amount: expected 300, got %.2f", i, inst.Amount)
		}
		want := start.AddDate(0, i, 0)
		if !inst.DueDate.Equal(want) {
			t.Errorf("installment %d due: expected %s, got %s", i, want, inst.DueDate)
		}
	}
}

func TestCreatePurchase_InsufficientFunds(t *testing.T) {
	store := newMockStore(domain.FinancialData{
		CreditCards: []domain.CreditCard{{ID: "c1", Holder: "partner1", CardName: "Nubank", Limit: 2000, Available: 500}},
	})
	svc := newService(store)

	_, err := svc.CreatePurchase(context.Background(), &domain.InstallmentPurchase{
		Description: "TV", TotalAmount: 900, Installments: 3,
		Origin: "joint", CreditCardID: "c1",
	})

	var insufficient *domain.ErrInsufficientFunds
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if store.created["installment_purchases"] != 0 {
		t.Error("purchase must not be created when the card cannot cover it")
	}
	if len(store.patches["credit_cards"]) != 0 {
		t.Error("card must not be debited when the purchase is rejected")
	}
}

func TestSetInstallmentPaid_CompletesPurchase(t *testing.T) {
	store := newMockStore(domain.FinancialData{
		InstallmentPurchases: []domain.InstallmentPurchase{
			{ID: "p1", Description: "Sofá", TotalAmount: 600, Installments: 2, Status: "active"},
		},
		Installments: []domain.Installment{
			{ID: "inst-1", PurchaseID: "p1", Amount: 300, Paid: true},
			{ID: "inst-2", PurchaseID: "p1", Amount: 300, Paid: false},
		},
	})
	svc := newService(store)

	inst, err := svc.SetInstallmentPaid(context.Background(), "inst-2", true)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if !inst.Paid || inst.PaidDate == nil {
		t.Error("expected paid installment with paid date")
	}

	p := store.lastPatch(t, "installment_purchases")
	if p.fields["status"] != "completed" {
		t.Errorf("expected completed purchase, got %v", p.fields)
	}
}

func TestSetInstallmentPaid_UnpayReactivates(t *testing.T) {
	store := newMockStore(domain.FinancialData{
		InstallmentPurchases: []domain.InstallmentPurchase{
			{ID: "p1", Description: "Sofá", TotalAmount: 600, Installments: 2, Status: "completed"},
		},
		Installments: []domain.Installment{
			{ID: "inst-1", PurchaseID: "p1", Amount: 300, Paid: true},
			{ID: "inst-2", PurchaseID: "p1", Amount: 300, Paid: true},
		},
	})
	svc := newService(store)

	inst, err := svc.SetInstallmentPaid(context.Background(), "inst-2", false)
	if err != nil {
		t.Fatalf("unpay: %v", err)
	}
	if inst.Paid || inst.PaidDate != nil {
		t.Error("expected unpaid installment with cleared paid date")
	}

	p := store.lastPatch(t, "installment_purchases")
	if p.fields["status"] != "active" {
		t.Errorf("expected active purchase, got %v", p.fields)
	}
}

func TestDeletePurchase_InstallmentsFirst(t *testing.T) {
	store := newMockStore(domain.FinancialData{
		InstallmentPurchases: []domain.InstallmentPurchase{{ID: "p1", Status: "active"}},
	})
	svc := newService(store)

	if err := svc.DeletePurchase(context.Background(), "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.deleted["installments_by_purchase"]) != 1 {
		t.Error("expected installments deleted")
	}
	if len(store.deleted["installment_purchases"]) != 1 {
		t.Error("expected purchase deleted")
	}
}
