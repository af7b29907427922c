package domain

import (
	"github.com/google/uuid"
)

// Kind selects one of the two logical sheets a record can live in.
type Kind string

const (
	KindExpenses Kind = "expenses"
	KindIncomes  Kind = "incomes"
)

// Kinds lists all record kinds in a stable order.
var Kinds = []Kind{KindExpenses, KindIncomes}

// RecordType is the direction of a record. The amount always carries the
// magnitude; the type carries the sign.
type RecordType string

const (
	TypeIncome  RecordType = "Income"
	TypeExpense RecordType = "Expense"
)

// PaymentMethod is how a record was paid.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "Cash"
	MethodPIX    PaymentMethod = "PIX"
	MethodDebit  PaymentMethod = "Debit"
	MethodCredit PaymentMethod = "Credit"
)

// Record is one income or expense entry. Records are owned by the remote
// spreadsheet; the ID is assigned at append time and never changes.
type Record struct {
	ID          string        `json:"id"`
	Date        string        `json:"date"` // YYYY-MM-DD
	Description string        `json:"description"`
	Amount      float64       `json:"amount"` // non-negative, major units
	Type        RecordType    `json:"type"`
	Category    string        `json:"category"`
	Method      PaymentMethod `json:"method"`
	// CreditCardID is set only when Method is Credit. Dangling references
	// are tolerated and rendered as unknown by consumers.
	CreditCardID  string `json:"creditCardId,omitempty"`
	BankAccountID string `json:"bankAccountId,omitempty"`
}

// NewRecordID returns a fresh unique record identifier.
func NewRecordID() string {
	return uuid.New().String()
}
