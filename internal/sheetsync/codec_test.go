package sheetsync

import (
	"math"
	"testing"

	"github.com/turtlefin/turtle-finance/internal/domain"
)

func TestEncodeRow(t *testing.T) {
	record := domain.Record{
		ID:            "rec-1",
		Date:          "2024-03-15",
		Description:   "Groceries",
		Amount:        125.5,
		Type:          domain.TypeExpense,
		Category:      "Food",
		Method:        domain.MethodCredit,
		CreditCardID:  "card_1",
		BankAccountID: "bank_1",
	}

	row := EncodeRow(record)
	if len(row) != ColumnCount {
		t.Fatalf("expected %d cells, got %d", ColumnCount, len(row))
	}

	want := []any{"rec-1", "2024-03-15", "Groceries", 125.5, "expense", "Food", "Credit", "card_1", "bank_1"}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("cell %d: got %v, want %v", i, row[i], want[i])
		}
	}
}

func TestEncodeRowDefaultsMethodToCash(t *testing.T) {
	row := EncodeRow(domain.Record{ID: "rec-1", Type: domain.TypeIncome})
	if row[6] != "Cash" {
		t.Errorf("method cell: got %v, want Cash", row[6])
	}
	if row[4] != "income" {
		t.Errorf("type cell: got %v, want income", row[4])
	}
}

func TestDecodeRow(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		want domain.Record
	}{
		{
			name: "full income row",
			row:  []string{"rec-1", "2024-01-10", "Paycheck", "12.50", "income", "Salary", "PIX", "", "bank_1"},
			want: domain.Record{
				ID: "rec-1", Date: "2024-01-10", Description: "Paycheck", Amount: 12.5,
				Type: domain.TypeIncome, Category: "Salary", Method: domain.MethodPIX,
				BankAccountID: "bank_1",
			},
		},
		{
			name: "type cell must match exactly",
			row:  []string{"rec-2", "2024-01-10", "Refund", "30", "Income", "Other", "Cash", "", ""},
			want: domain.Record{
				ID: "rec-2", Date: "2024-01-10", Description: "Refund", Amount: 30,
				Type: domain.TypeExpense, Category: "Other", Method: domain.MethodCash,
			},
		},
		{
			name: "short row pads missing cells",
			row:  []string{"rec-3", "2024-02-01", "Bus", "4.80"},
			want: domain.Record{
				ID: "rec-3", Date: "2024-02-01", Description: "Bus", Amount: 4.8,
				Type: domain.TypeExpense, Method: domain.MethodCash,
			},
		},
		{
			name: "empty method defaults to cash",
			row:  []string{"rec-4", "2024-02-01", "Lunch", "20", "expense", "Food", "", "", ""},
			want: domain.Record{
				ID: "rec-4", Date: "2024-02-01", Description: "Lunch", Amount: 20,
				Type: domain.TypeExpense, Category: "Food", Method: domain.MethodCash,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeRow(tt.row)
			if got != tt.want {
				t.Errorf("DecodeRow() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeRowNonNumericAmount(t *testing.T) {
	got := DecodeRow([]string{"rec-1", "2024-01-10", "Broken", "abc", "expense", "", "Cash", "", ""})
	if !math.IsNaN(got.Amount) {
		t.Errorf("amount: got %v, want NaN", got.Amount)
	}
	if got.ID != "rec-1" || got.Description != "Broken" {
		t.Errorf("non-amount fields should still decode: %+v", got)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	original := domain.Record{
		ID:            "rec-9",
		Date:          "2024-06-30",
		Description:   "Dinner",
		Amount:        89.9,
		Type:          domain.TypeIncome,
		Category:      "Gifts",
		Method:        domain.MethodDebit,
		CreditCardID:  "card_2",
		BankAccountID: "bank_2",
	}

	encoded := EncodeRow(original)
	cells := make([]string, len(encoded))
	for i, v := range encoded {
		switch c := v.(type) {
		case string:
			cells[i] = c
		case float64:
			cells[i] = "89.9"
		}
	}

	if got := DecodeRow(cells); got != original {
		t.Errorf("round trip changed record: got %+v, want %+v", got, original)
	}
}
