// Package domain contains the core entities of the household finance
// tracker and the derived view models computed from them.
package domain

import "time"

// Origin identifies who a record belongs to.
// "all" is only valid as a query filter, never stored.
type Origin = string

const (
	OriginPartner1 Origin = "partner1"
	OriginPartner2 Origin = "partner2"
	OriginJoint    Origin = "joint"
)

// ValidOrigin reports whether o is a storable origin.
func ValidOrigin(o string) bool {
	return o == OriginPartner1 || o == OriginPartner2 || o == OriginJoint
}

// Transaction types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Bill / invoice / purchase statuses.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// InvestmentTypes are the recognized investment labels. CDB, Renda Fixa
// and Poupança carry fixed monthly rates; the rest yield whatever their
// current value says.
var InvestmentTypes = []string{
	"Ações",
	"Títulos",
	"Fundo Mútuo",
	"ETF",
	"Imóvel",
	"Criptomoeda",
	"Renda Fixa",
	"Poupança",
	"CDB",
	"Outro",
}

// ValidInvestmentType reports whether t is a recognized investment type.
func ValidInvestmentType(t string) bool {
	for _, it := range InvestmentTypes {
		if it == t {
			return true
		}
	}
	return false
}

// IncomeCategories and ExpenseCategories are the category sets the
// dashboard offers per transaction type.
var (
	IncomeCategories = []string{
		"Salário",
		"Auxílio",
		"VR",
		"Vale-Refeição",
		"Freelancer",
		"Retorno de Investimento",
		"Outra Renda",
	}
	ExpenseCategories = []string{
		"Supermercado",
		"Transporte",
		"Utilidades",
		"Entretenimento",
		"Refeições",
		"Saúde",
		"Compras",
		"Assinaturas",
		"Seguros",
		"Educação",
		"Aluguel",
		"Outras Despesas",
	}
)

// User is one of the two household members.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"` // partner1 | partner2
}

// Transaction is a single income or expense entry.
type Transaction struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Origin      Origin    `json:"origin"`
	Type        string    `json:"type"` // income | expense
}

// Bill is a household bill with a concrete due date.
type Bill struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	DueDate time.Time `json:"dueDate"`
	Amount  float64   `json:"amount"`
	Status  string    `json:"status"` // pending | paid
	Owner   Origin    `json:"owner"`
}

// CreditCard tracks a card's limit and the current open invoice.
// Available never exceeds Limit and never goes negative. Cards are
// always held by one partner, never jointly.
type CreditCard struct {
	ID             string    `json:"id"`
	Holder         Origin    `json:"holder"` // partner1 | partner2
	CardName       string    `json:"cardName"`
	Limit          float64   `json:"limit"`
	Available      float64   `json:"available"`
	InvoiceAmount  float64   `json:"invoiceAmount"`
	InvoiceDueDate time.Time `json:"invoiceDueDate"`
	InvoiceStatus  string    `json:"invoiceStatus,omitempty"` // pending | paid | "" (treated as pending)
	Color          string    `json:"color,omitempty"`
}

// InvoicePending reports whether the card has an open invoice: a
// positive amount whose status is pending or unset.
func (c *CreditCard) InvoicePending() bool {
	return c.InvoiceAmount > 0 && (c.InvoiceStatus == StatusPending || c.InvoiceStatus == "")
}

// Investment holds a position: Amount is the invested principal,
// CurrentValue the present worth.
type Investment struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Amount       float64 `json:"amount"`
	CurrentValue float64 `json:"currentValue"`
	Owner        Origin  `json:"owner"`
}

// RecurringIncome is a monthly income expected on a fixed day.
// DayOfMonth is restricted to 1..28 so it exists in every month.
type RecurringIncome struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	DayOfMonth  int       `json:"dayOfMonth"`
	Origin      Origin    `json:"origin"`
	Enabled     bool      `json:"enabled"`
	CreatedAt   time.Time `json:"createdAt"`
}

// InstallmentPurchase is a purchase split into equal monthly parts.
type InstallmentPurchase struct {
	ID                string    `json:"id"`
	Description       string    `json:"description"`
	TotalAmount       float64   `json:"totalAmount"`
	Installments      int       `json:"installments"`
	InstallmentAmount float64   `json:"installmentAmount"`
	Origin            Origin    `json:"origin"`
	Category          string    `json:"category"`
	StartDate         time.Time `json:"startDate"`
	Status            string    `json:"status"` // active | completed
	CreditCardID      string    `json:"creditCardId,omitempty"`
}

// Installment is one monthly part of an installment purchase.
type Installment struct {
	ID         string     `json:"id"`
	PurchaseID string     `json:"purchaseId"`
	Amount     float64    `json:"amount"`
	DueDate    time.Time  `json:"dueDate"`
	Paid       bool       `json:"paid"`
	PaidDate   *time.Time `json:"paidDate,omitempty"`
}

// DueDate is an explicit calendar entry created by the user, as opposed
// to the ones projected from bills and card invoices.
type DueDate struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DayOfMonth  int     `json:"dayOfMonth"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"` // bill | installment | income
	Owner       Origin  `json:"owner"`
	ReferenceID string  `json:"referenceId,omitempty"`
}

// FinancialData is the full snapshot of every collection. Derived views
// are computed from one of these, never from partial fetches.
type FinancialData struct {
	Transactions         []Transaction         `json:"transactions"`
	Bills                []Bill                `json:"bills"`
	CreditCards          []CreditCard          `json:"creditCards"`
	Investments          []Investment          `json:"investments"`
	RecurringIncomes     []RecurringIncome     `json:"recurringIncomes"`
	InstallmentPurchases []InstallmentPurchase `json:"installmentPurchases"`
	Installments         []Installment         `json:"installments"`
	DueDates             []DueDate             `json:"dueDates"`
	Users                []User                `json:"users"`
}
