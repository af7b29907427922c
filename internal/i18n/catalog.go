// Package i18n holds the localized spreadsheet catalog (tab titles, header
// labels, default categories) and regional presentation helpers. The sheet
// layer depends on it to compute expected tab titles and headers for the
// user's region.
package i18n

import (
	"github.com/turtlefin/turtle-finance/internal/domain"
)

// Region is the user's selected locale region.
type Region string

const (
	RegionUS Region = "US"
	RegionBR Region = "BR"
)

// ParseRegion normalizes a stored region value, defaulting to BR like the
// rest of the app.
func ParseRegion(s string) Region {
	if s == string(RegionUS) {
		return RegionUS
	}
	return RegionBR
}

// Currency is a supported display currency.
type Currency string

const (
	CurrencyBRL Currency = "BRL"
	CurrencyUSD Currency = "USD"
)

// SheetTitle returns the localized tab title for a record kind.
func SheetTitle(kind domain.Kind, region Region) string {
	if region == RegionUS {
		if kind == domain.KindIncomes {
			return "Incomes"
		}
		return "Expenses"
	}
	if kind == domain.KindIncomes {
		return "Receitas"
	}
	return "Despesas"
}

// SheetHeaders returns the nine localized column headers in sheet order.
func SheetHeaders(region Region) []string {
	if region == RegionUS {
		return []string{
			"ID", "Date", "Description", "Amount", "Type",
			"Category", "Method", "Credit Card ID", "Bank Account ID",
		}
	}
	return []string{
		"ID", "Data", "Descrição", "Valor", "Tipo",
		"Categoria", "Método", "ID do Cartão", "ID da Conta",
	}
}

// DefaultIncomeCategories returns the stock income category list for a region.
func DefaultIncomeCategories(region Region) []string {
	if region == RegionUS {
		return []string{"Salary", "Freelance", "Investments", "Gifts", "Other"}
	}
	return []string{"Salário", "Freelance", "Investimentos", "Presentes", "Outros"}
}

// DefaultExpenseCategories returns the stock expense category list for a region.
func DefaultExpenseCategories(region Region) []string {
	if region == RegionUS {
		return []string{"Food", "Transport", "Housing", "Entertainment", "Healthcare", "Other"}
	}
	return []string{"Alimentação", "Transporte", "Moradia", "Entretenimento", "Saúde", "Outros"}
}

// CurrencyName returns the display name of a currency.
func CurrencyName(c Currency) string {
	if c == CurrencyUSD {
		return "US Dollar"
	}
	return "Brazilian Real"
}
