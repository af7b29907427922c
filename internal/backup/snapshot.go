// Package backup produces point-in-time exports of the record collections:
// CSV snapshots uploaded to Cloud Storage and row inserts into a BigQuery
// analytics table. Exports are one-way; the spreadsheet stays authoritative.
package backup

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/turtlefin/turtle-finance/internal/domain"
)

var snapshotHeader = []string{
	"kind", "id", "date", "description", "amount", "type", "category",
	"method", "credit_card_id", "bank_account_id",
}

// WriteSnapshot writes both collections as one CSV document, expenses first.
func WriteSnapshot(w io.Writer, expenses, incomes []domain.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(snapshotHeader); err != nil {
		return fmt.Errorf("backup: write header: %w", err)
	}
	for _, r := range expenses {
		if err := cw.Write(snapshotRow(domain.KindExpenses, r)); err != nil {
			return fmt.Errorf("backup: write expense row: %w", err)
		}
	}
	for _, r := range incomes {
		if err := cw.Write(snapshotRow(domain.KindIncomes, r)); err != nil {
			return fmt.Errorf("backup: write income row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func snapshotRow(kind domain.Kind, r domain.Record) []string {
	return []string{
		string(kind),
		r.ID,
		r.Date,
		r.Description,
		strconv.FormatFloat(r.Amount, 'f', -1, 64),
		string(r.Type),
		r.Category,
		string(r.Method),
		r.CreditCardID,
		r.BankAccountID,
	}
}
