package i18n

import (
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

func regionTag(region Region) language.Tag {
	if region == RegionBR {
		return language.BrazilianPortuguese
	}
	return language.AmericanEnglish
}

// CurrencySymbol returns the locale-rendered symbol for a currency, e.g.
// "R$" for BRL and "$" for USD.
func CurrencySymbol(c Currency, region Region) string {
	unit, err := currency.ParseISO(string(c))
	if err != nil {
		return string(c)
	}
	return message.NewPrinter(regionTag(region)).Sprint(currency.Symbol(unit))
}

// FormatCurrency renders an amount with the currency symbol using the
// region's digit separators.
func FormatCurrency(amount float64, c Currency, region Region) string {
	p := message.NewPrinter(regionTag(region))
	return CurrencySymbol(c, region) + " " + p.Sprintf("%.2f", amount)
}

// FormatNumber renders a number with the region's grouping and decimal
// separators.
func FormatNumber(n float64, region Region) string {
	p := message.NewPrinter(regionTag(region))
	return p.Sprint(number.Decimal(n))
}

// FormatDate renders a date as dd/mm/yyyy for BR and mm/dd/yyyy for US.
func FormatDate(t time.Time, region Region) string {
	if region == RegionBR {
		return t.Format("02/01/2006")
	}
	return t.Format("01/02/2006")
}
