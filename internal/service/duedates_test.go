package service_test

import (
	"testing"
	"time"

	"github.com/moreira/financas-casal-go/internal/domain"
	"github.com/moreira/financas-casal-go/internal/service"
)

func TestUnifiedCalendar_MergesAndSortsByDay(t *testing.T) {
	d := &domain.FinancialData{
		DueDates: []domain.DueDate{
			{ID: "d1", Name: "Academia", DayOfMonth: 20, Amount: 90, Type: "installment", Owner: "joint"},
		},
		Bills: []domain.Bill{
			{ID: "b1", Name: "Internet", Amount: 120, Status: "pending", Owner: "joint",
				DueDate: time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)},
		},
		CreditCards: []domain.CreditCard{
			{ID: "c1", Holder: "partner1", CardName: "Nubank", InvoiceAmount: 800,
				InvoiceDueDate: time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC), InvoiceStatus: "pending"},
		},
	}

	entries := service.UnifiedCalendar(d)

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].ID != "credit-card-c1" {
		t.Errorf("day 3 first: expected credit-card-c1, got %s", entries[0].ID)
	}
	if entries[1].ID != "b1" || entries[1].DayOfMonth != 15 {
		t.Errorf("day 15 second: expected b1, got %s (day %d)", entries[1].ID, entries[1].DayOfMonth)
	}
	if entries[2].ID != "d1" {
		t.Errorf("day 20 last: expected d1, got %s", entries[2].ID)
	}
}

func TestUnifiedCalendar_CardEntryShape(t *testing.T) {
	d := &domain.FinancialData{
		CreditCards: []domain.CreditCard{
			{ID: "c9", Holder: "partner2", CardName: "Inter", InvoiceAmount: 450,
				InvoiceDueDate: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)},
		},
	}

	entries := service.UnifiedCalendar(d)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.ID != "credit-card-c9" {
		t.Errorf("id: got %s", e.ID)
	}
	if e.Name != "Fatura Inter" {
		t.Errorf("name: got %s", e.Name)
	}
	if e.Type != "credit_card" {
		t.Errorf("type: got %s", e.Type)
	}
	// Empty invoice status surfaces as pending.
	if e.Status != "pending" {
		t.Errorf("status: got %q", e.Status)
	}
	if e.ReferenceID != "c9" {
		t.Errorf("referenceId: got %s", e.ReferenceID)
	}
	if e.Label != "Fatura" {
		t.Errorf("label: got %s", e.Label)
	}
	if e.ColorClass != "bg-purple-100 text-purple-800" {
		t.Errorf("color: got %s", e.ColorClass)
	}
}

func TestUnifiedCalendar_PaidInvoiceExcluded(t *testing.T) {
	d := &domain.FinancialData{
		CreditCards: []domain.CreditCard{
			{ID: "c1", CardName: "Nubank", InvoiceAmount: 800, InvoiceStatus: "paid",
				InvoiceDueDate: time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)},
			{ID: "c2", CardName: "Inter", InvoiceAmount: 0, InvoiceStatus: "pending",
				InvoiceDueDate: time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)},
		},
	}

	if entries := service.UnifiedCalendar(d); len(entries) != 0 {
		t.Fatalf("expected no entries for paid or zero invoices, got %d", len(entries))
	}
}

func TestUnifiedCalendar_PaidBillStaysGreyedOut(t *testing.T) {
	d := &domain.FinancialData{
		Bills: []domain.Bill{
			{ID: "b1", Name: "Aluguel", Amount: 1500, Status: "paid", Owner: "joint",
				DueDate: time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)},
		},
	}

	entries := service.UnifiedCalendar(d)
	if len(entries) != 1 {
		t.Fatalf("expected paid bill to stay on the calendar")
	}
	if entries[0].Label != "Paga" {
		t.Errorf("label: got %s", entries[0].Label)
	}
	if entries[0].ColorClass != "bg-gray-100 text-gray-600" {
		t.Errorf("color: got %s", entries[0].ColorClass)
	}
}

func TestUnifiedCalendar_Labels(t *testing.T) {
	d := &domain.FinancialData{
		DueDates: []domain.DueDate{
			{ID: "d1", Name: "Salário", DayOfMonth: 5, Type: "income", Owner: "partner1"},
			{ID: "d2", Name: "Condomínio", DayOfMonth: 10, Type: "bill", Owner: "joint"},
			{ID: "d3", Name: "Sofá", DayOfMonth: 12, Type: "installment", Owner: "joint"},
		},
	}

	entries := service.UnifiedCalendar(d)

	want := map[string][2]string{
		"d1": {"Receita", "bg-green-100 text-green-800"},
		"d2": {"Conta", "bg-blue-100 text-blue-800"},
		"d3": {"Parcela", "bg-orange-100 text-orange-800"},
	}
	for _, e := range entries {
		expected := want[e.ID]
		if e.Label != expected[0] {
			t.Errorf("%s label: expected %s, got %s", e.ID, expected[0], e.Label)
		}
		if e.ColorClass != expected[1] {
			t.Errorf("%s color: expected %s, got %s", e.ID, expected[1], e.ColorClass)
		}
	}
}

func TestUnifiedCalendar_StableOrderWithinDay(t *testing.T) {
	day := time.Date(2025, time.June, 8, 0, 0, 0, 0, time.UTC)
	d := &domain.FinancialData{
		DueDates: []domain.DueDate{
			{ID: "d1", Name: "Manual", DayOfMonth: 8, Type: "bill", Owner: "joint"},
		},
		Bills: []domain.Bill{
			{ID: "b1", Name: "Internet", Amount: 120, Status: "pending", Owner: "joint", DueDate: day},
		},
		CreditCards: []domain.CreditCard{
			{ID: "c1", CardName: "Nubank", InvoiceAmount: 500, InvoiceDueDate: day, InvoiceStatus: "pending"},
		},
	}

	entries := service.UnifiedCalendar(d)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	// Same day keeps source order: due dates, bills, invoices.
	if entries[0].ID != "d1" || entries[1].ID != "b1" || entries[2].ID != "credit-card-c1" {
		t.Errorf("unexpected order: %s, %s, %s", entries[0].ID, entries[1].ID, entries[2].ID)
	}
}
