// Package banks holds the static directory of supported banks. The directory
// is presentation data: bank accounts reference entries by ID, and dangling
// references are rendered as unknown rather than rejected.
package banks

// Bank is one directory entry. Color and TextColor are the brand colors used
// for placeholder imagery.
type Bank struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Country   string `json:"country"` // "BR" or "US"
	Color     string `json:"color"`
	TextColor string `json:"textColor"`
}

// Directory lists the supported banks, Brazilian banks first.
var Directory = []Bank{
	{ID: "nubank", Name: "Nubank", Country: "BR", Color: "#8A05BE", TextColor: "#FFFFFF"},
	{ID: "itau", Name: "Itaú", Country: "BR", Color: "#EC7000", TextColor: "#FFFFFF"},
	{ID: "bradesco", Name: "Bradesco", Country: "BR", Color: "#CC092F", TextColor: "#FFFFFF"},
	{ID: "santander", Name: "Santander", Country: "BR", Color: "#EC0000", TextColor: "#FFFFFF"},
	{ID: "banco-brasil", Name: "Banco do Brasil", Country: "BR", Color: "#FFF200", TextColor: "#003087"},
	{ID: "caixa", Name: "Caixa Econômica", Country: "BR", Color: "#0066A1", TextColor: "#FFFFFF"},
	{ID: "inter", Name: "Inter", Country: "BR", Color: "#FF7A00", TextColor: "#FFFFFF"},
	{ID: "c6", Name: "C6 Bank", Country: "BR", Color: "#000000", TextColor: "#FFFFFF"},
	{ID: "sicoob", Name: "Sicoob", Country: "BR", Color: "#00A859", TextColor: "#FFFFFF"},
	{ID: "sicredi", Name: "Sicredi", Country: "BR", Color: "#00853E", TextColor: "#FFFFFF"},

	{ID: "chase", Name: "Chase", Country: "US", Color: "#117ACA", TextColor: "#FFFFFF"},
	{ID: "bank-of-america", Name: "Bank of America", Country: "US", Color: "#E31837", TextColor: "#FFFFFF"},
	{ID: "wells-fargo", Name: "Wells Fargo", Country: "US", Color: "#D71E28", TextColor: "#FFFFFF"},
	{ID: "citi", Name: "Citi", Country: "US", Color: "#056DAE", TextColor: "#FFFFFF"},
	{ID: "us-bank", Name: "U.S. Bank", Country: "US", Color: "#0C2074", TextColor: "#FFFFFF"},
	{ID: "pnc", Name: "PNC Bank", Country: "US", Color: "#F47920", TextColor: "#FFFFFF"},
	{ID: "capital-one", Name: "Capital One", Country: "US", Color: "#004879", TextColor: "#FFFFFF"},
	{ID: "other", Name: "Other", Country: "US", Color: "#6B7280", TextColor: "#FFFFFF"},
}

// ByID looks up a bank by directory ID.
func ByID(id string) (Bank, bool) {
	for _, b := range Directory {
		if b.ID == id {
			return b, true
		}
	}
	return Bank{}, false
}

// ByCountry returns the directory entries for one country code.
func ByCountry(country string) []Bank {
	var out []Bank
	for _, b := range Directory {
		if b.Country == country {
			out = append(out, b)
		}
	}
	return out
}

// DisplayName resolves a bank ID to its name, falling back to the raw ID for
// unknown entries.
func DisplayName(id string) string {
	if b, ok := ByID(id); ok {
		return b.Name
	}
	return id
}
