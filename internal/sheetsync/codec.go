package sheetsync

import (
	"math"
	"strconv"

	"github.com/turtlefin/turtle-finance/internal/domain"
)

// ColumnCount is the fixed width of a record row:
// id, date, description, amount, type, category, method, creditCardId,
// bankAccountId.
const ColumnCount = 9

// EncodeRow converts a record into its nine-cell sheet row. The amount is
// written as a plain number in major units; the type is written as the wire
// value "income" or "expense"; an unset method is written as Cash.
func EncodeRow(r domain.Record) []any {
	method := r.Method
	if method == "" {
		method = domain.MethodCash
	}
	return []any{
		r.ID,
		r.Date,
		r.Description,
		r.Amount,
		typeCell(r.Type),
		r.Category,
		string(method),
		r.CreditCardID,
		r.BankAccountID,
	}
}

func typeCell(t domain.RecordType) string {
	if t == domain.TypeIncome {
		return "income"
	}
	return "expense"
}

// DecodeRow converts a sheet row back into a record. Missing trailing cells
// decode as empty strings. The type cell maps to Income only on the exact
// value "income"; anything else is Expense. An empty method cell maps to
// Cash. A non-numeric amount cell decodes to NaN without raising an error;
// validation is the caller's problem.
func DecodeRow(row []string) domain.Record {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	amount, err := strconv.ParseFloat(cell(3), 64)
	if err != nil {
		amount = math.NaN()
	}

	recType := domain.TypeExpense
	if cell(4) == "income" {
		recType = domain.TypeIncome
	}

	method := domain.PaymentMethod(cell(6))
	if method == "" {
		method = domain.MethodCash
	}

	return domain.Record{
		ID:            cell(0),
		Date:          cell(1),
		Description:   cell(2),
		Amount:        amount,
		Type:          recType,
		Category:      cell(5),
		Method:        method,
		CreditCardID:  cell(7),
		BankAccountID: cell(8),
	}
}
