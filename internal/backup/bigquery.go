package backup

import (
	"context"
	"fmt"
	"math"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/turtlefin/turtle-finance/internal/domain"
)

// RecordRow is the analytics table schema for one exported record.
type RecordRow struct {
	RecordID      string               `bigquery:"record_id"`
	Kind          string               `bigquery:"kind"`
	Date          bigquery.NullDate    `bigquery:"date"`
	Description   string               `bigquery:"description"`
	Amount        bigquery.NullFloat64 `bigquery:"amount"`
	Type          string               `bigquery:"type"`
	Category      string               `bigquery:"category"`
	Method        string               `bigquery:"method"`
	CreditCardID  string               `bigquery:"credit_card_id"`
	BankAccountID string               `bigquery:"bank_account_id"`
	ExportedAt    time.Time            `bigquery:"exported_at"`
}

// ExportToBigQuery inserts the records of one kind into dataset.table.
func ExportToBigQuery(ctx context.Context, projectID, datasetID, tableID string, kind domain.Kind, records []domain.Record) error {
	if len(records) == 0 {
		return nil
	}

	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return fmt.Errorf("backup: bigquery client: %w", err)
	}
	defer client.Close()

	now := time.Now().UTC()
	rows := make([]*RecordRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, toRecordRow(kind, r, now))
	}

	inserter := client.Dataset(datasetID).Table(tableID).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("backup: inserting rows: %w", err)
	}
	return nil
}

func toRecordRow(kind domain.Kind, r domain.Record, exportedAt time.Time) *RecordRow {
	row := &RecordRow{
		RecordID:      r.ID,
		Kind:          string(kind),
		Description:   r.Description,
		Type:          string(r.Type),
		Category:      r.Category,
		Method:        string(r.Method),
		CreditCardID:  r.CreditCardID,
		BankAccountID: r.BankAccountID,
		ExportedAt:    exportedAt,
	}
	if !math.IsNaN(r.Amount) && !math.IsInf(r.Amount, 0) {
		row.Amount = bigquery.NullFloat64{Float64: r.Amount, Valid: true}
	}
	if d, err := civil.ParseDate(r.Date); err == nil {
		row.Date = bigquery.NullDate{Date: d, Valid: true}
	}
	return row
}
