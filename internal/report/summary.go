// Package report aggregates record collections for the dashboard: overall
// totals, per-category breakdowns and per-account balances. Money math uses
// decimals; records whose amount failed to parse (NaN) are excluded from
// every aggregate.
package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/turtlefin/turtle-finance/internal/domain"
)

// Totals is the headline dashboard summary.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// Summarize computes income and expense totals and their difference.
func Summarize(records []domain.Record) Totals {
	var t Totals
	for _, r := range records {
		amount, ok := recordAmount(r)
		if !ok {
			continue
		}
		if r.Type == domain.TypeIncome {
			t.Income = t.Income.Add(amount)
		} else {
			t.Expense = t.Expense.Add(amount)
		}
	}
	t.Balance = t.Income.Sub(t.Expense)
	return t
}

// CategoryTotal is the aggregate for one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// ByCategory totals records of the given type per category, preserving
// first-seen category order. Records with an empty category group under
// "Uncategorized".
func ByCategory(records []domain.Record, recordType domain.RecordType) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	var order []string

	for _, r := range records {
		if r.Type != recordType {
			continue
		}
		amount, ok := recordAmount(r)
		if !ok {
			continue
		}
		category := strings.TrimSpace(r.Category)
		if category == "" {
			category = "Uncategorized"
		}
		if _, seen := totals[category]; !seen {
			order = append(order, category)
		}
		totals[category] = totals[category].Add(amount)
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, category := range order {
		out = append(out, CategoryTotal{Category: category, Total: totals[category]})
	}
	return out
}

// ForMonth filters records to one calendar month by their YYYY-MM date
// prefix. Records with malformed dates are excluded.
func ForMonth(records []domain.Record, year int, month time.Month) []domain.Record {
	prefix := fmt.Sprintf("%04d-%02d", year, month)
	var out []domain.Record
	for _, r := range records {
		if strings.HasPrefix(r.Date, prefix) {
			out = append(out, r)
		}
	}
	return out
}

func recordAmount(r domain.Record) (decimal.Decimal, bool) {
	if math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromFloat(r.Amount), true
}
