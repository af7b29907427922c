// Package prefs is the durable local preference store. It is the Go
// counterpart of browser localStorage in the original client: a flat JSON
// file written synchronously on every mutation, holding region, currency,
// category lists, spreadsheet IDs, bank accounts and credit cards.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/turtlefin/turtle-finance/internal/domain"
	"github.com/turtlefin/turtle-finance/internal/i18n"
)

// Store is safe for concurrent use. All reads return defensive copies.
type Store struct {
	mu   sync.RWMutex
	path string
	data fileData
}

type fileData struct {
	Region              string               `json:"region"`
	Currency            string               `json:"currency"`
	IncomeCategories    []string             `json:"incomeCategories"`
	ExpenseCategories   []string             `json:"expenseCategories"`
	BankAccounts        []domain.BankAccount `json:"bankAccounts"`
	CreditCards         []domain.CreditCard  `json:"creditCards"`
	SpreadsheetID       string               `json:"spreadsheetId"`
	IncomeSpreadsheetID string               `json:"incomeSheetId"`
	Configured          bool                 `json:"hasConfiguredPreferences"`
}

// Open loads the store from path, creating it with regional defaults when the
// file does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, fmt.Errorf("prefs: parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		region := i18n.ParseRegion("")
		s.data = fileData{
			Region:            string(region),
			Currency:          string(i18n.CurrencyBRL),
			IncomeCategories:  i18n.DefaultIncomeCategories(region),
			ExpenseCategories: i18n.DefaultExpenseCategories(region),
		}
		if err := s.save(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("prefs: read %s: %w", path, err)
	}

	// Older files may predate category defaults.
	if s.data.Region == "" {
		s.data.Region = string(i18n.ParseRegion(""))
	}
	if s.data.Currency == "" {
		s.data.Currency = string(i18n.CurrencyBRL)
	}
	if s.data.IncomeCategories == nil {
		s.data.IncomeCategories = i18n.DefaultIncomeCategories(s.Region())
	}
	if s.data.ExpenseCategories == nil {
		s.data.ExpenseCategories = i18n.DefaultExpenseCategories(s.Region())
	}

	return s, nil
}

// save writes the file under the caller's lock.
func (s *Store) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("prefs: marshal: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("prefs: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("prefs: write %s: %w", s.path, err)
	}
	return nil
}

// Region returns the selected region, defaulting to BR.
func (s *Store) Region() i18n.Region {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return i18n.ParseRegion(s.data.Region)
}

// SetRegion stores the region. Category lists that still match the stock
// defaults of either language are swapped to the new language's defaults;
// customized lists are left alone.
func (s *Store) SetRegion(region i18n.Region) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Region = string(region)

	if isDefaultList(s.data.ExpenseCategories, i18n.DefaultExpenseCategories(i18n.RegionUS), i18n.DefaultExpenseCategories(i18n.RegionBR)) {
		s.data.ExpenseCategories = i18n.DefaultExpenseCategories(region)
	}
	if isDefaultList(s.data.IncomeCategories, i18n.DefaultIncomeCategories(i18n.RegionUS), i18n.DefaultIncomeCategories(i18n.RegionBR)) {
		s.data.IncomeCategories = i18n.DefaultIncomeCategories(region)
	}

	return s.save()
}

func isDefaultList(current, defaultsUS, defaultsBR []string) bool {
	if len(current) != len(defaultsUS) {
		return false
	}
	contained := func(defaults []string) bool {
		for _, c := range current {
			if !slices.Contains(defaults, c) {
				return false
			}
		}
		return true
	}
	return contained(defaultsUS) || contained(defaultsBR)
}

// Currency returns the selected currency, defaulting to BRL.
func (s *Store) Currency() i18n.Currency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.Currency == string(i18n.CurrencyUSD) {
		return i18n.CurrencyUSD
	}
	return i18n.CurrencyBRL
}

// SetCurrency stores the display currency.
func (s *Store) SetCurrency(c i18n.Currency) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Currency = string(c)
	return s.save()
}

// SpreadsheetID returns the configured document ID for a kind, or "".
func (s *Store) SpreadsheetID(kind domain.Kind) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if kind == domain.KindIncomes {
		return s.data.IncomeSpreadsheetID
	}
	return s.data.SpreadsheetID
}

// SetSpreadsheetID stores the document ID for a kind.
func (s *Store) SetSpreadsheetID(kind domain.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if kind == domain.KindIncomes {
		s.data.IncomeSpreadsheetID = id
	} else {
		s.data.SpreadsheetID = id
	}
	return s.save()
}

// Configured reports whether onboarding has been completed.
func (s *Store) Configured() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Configured
}

// MarkConfigured records that onboarding has been completed.
func (s *Store) MarkConfigured() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Configured = true
	return s.save()
}
