package service

import (
	"fmt"
	"sort"

	"github.com/moreira/financas-casal-go/internal/domain"
)

// The due-date calendar merges three sources into one list: explicit
// due-date records, bills (projected onto the day of their due date),
// and credit cards with an open invoice. Paid invoices disappear from
// the calendar entirely; paid bills stay, greyed out.

// UnifiedCalendar builds the merged, day-ordered calendar. The sort is
// stable, so entries sharing a day keep source order: due dates first,
// then bills, then card invoices.
func UnifiedCalendar(d *domain.FinancialData) []domain.CalendarEntry {
	entries := make([]domain.CalendarEntry, 0,
		len(d.DueDates)+len(d.Bills)+len(d.CreditCards))

	for _, dd := range d.DueDates {
		entries = append(entries, decorate(domain.CalendarEntry{
			ID:          dd.ID,
			Name:        dd.Name,
			DayOfMonth:  dd.DayOfMonth,
			Amount:      dd.Amount,
			Type:        dd.Type,
			Owner:       dd.Owner,
			ReferenceID: dd.ReferenceID,
		}))
	}

	for _, b := range d.Bills {
		due := b.DueDate
		entries = append(entries, decorate(domain.CalendarEntry{
			ID:          b.ID,
			Name:        b.Name,
			DayOfMonth:  b.DueDate.Day(),
			Amount:      b.Amount,
			Type:        "bill",
			Status:      b.Status,
			Owner:       b.Owner,
			ReferenceID: b.ID,
			DueDate:     &due,
		}))
	}

	for _, c := range d.CreditCards {
		if !c.InvoicePending() {
			continue
		}
		due := c.InvoiceDueDate
		status := c.InvoiceStatus
		if status == "" {
			status = domain.StatusPending
		}
		entries = append(entries, decorate(domain.CalendarEntry{
			ID:          fmt.Sprintf("credit-card-%s", c.ID),
			Name:        fmt.Sprintf("Fatura %s", c.CardName),
			DayOfMonth:  c.InvoiceDueDate.Day(),
			Amount:      c.InvoiceAmount,
			Type:        "credit_card",
			Status:      status,
			Owner:       c.Holder,
			ReferenceID: c.ID,
			DueDate:     &due,
		}))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DayOfMonth < entries[j].DayOfMonth
	})
	return entries
}

func decorate(e domain.CalendarEntry) domain.CalendarEntry {
	e.Label = typeLabel(e.Type, e.Status)
	e.ColorClass = typeColor(e.Type, e.Status)
	return e
}

func typeLabel(entryType, status string) string {
	if status == domain.StatusPaid {
		return "Paga"
	}
	switch entryType {
	case "income":
		return "Receita"
	case "bill":
		return "Conta"
	case "installment":
		return "Parcela"
	case "credit_card":
		return "Fatura"
	default:
		return "Outro"
	}
}

func typeColor(entryType, status string) string {
	if status == domain.StatusPaid {
		return "bg-gray-100 text-gray-600"
	}
	switch entryType {
	case "income":
		return "bg-green-100 text-green-800"
	case "bill":
		return "bg-blue-100 text-blue-800"
	case "installment":
		return "bg-orange-100 text-orange-800"
	case "credit_card":
		return "bg-purple-100 text-purple-800"
	default:
		return "bg-gray-100 text-gray-800"
	}
}
