package prefs

import (
	"errors"
	"fmt"
	"slices"

	"github.com/turtlefin/turtle-finance/internal/domain"
)

// ErrAccountNotFound reports an update against an unknown bank account ID.
// Save failures come back as distinct errors so callers can tell a bad ID
// from a persistence problem.
var ErrAccountNotFound = errors.New("bank account not found")

// BankAccounts returns a copy of the registered bank accounts.
func (s *Store) BankAccounts() []domain.BankAccount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.BankAccounts)
}

// CreditCards returns a copy of the registered credit cards.
func (s *Store) CreditCards() []domain.CreditCard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.CreditCards)
}

// AddBankAccount assigns an ID and stores the account.
func (s *Store) AddBankAccount(account domain.BankAccount) (domain.BankAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account.ID = domain.NewLocalID("bank")
	s.data.BankAccounts = append(s.data.BankAccounts, account)
	if err := s.save(); err != nil {
		return domain.BankAccount{}, err
	}
	return account, nil
}

// UpdateBankAccount replaces the stored account with the same ID.
func (s *Store) UpdateBankAccount(account domain.BankAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.data.BankAccounts {
		if existing.ID == account.ID {
			s.data.BankAccounts[i] = account
			return s.save()
		}
	}
	return fmt.Errorf("prefs: %w: %s", ErrAccountNotFound, account.ID)
}

// RemoveBankAccount deletes the account and every credit card billed to it.
func (s *Store) RemoveBankAccount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.CreditCards = slices.DeleteFunc(s.data.CreditCards, func(c domain.CreditCard) bool { return c.BankAccountID == id })
	s.data.BankAccounts = slices.DeleteFunc(s.data.BankAccounts, func(a domain.BankAccount) bool { return a.ID == id })
	return s.save()
}

// AddCreditCard assigns an ID and stores the card.
func (s *Store) AddCreditCard(card domain.CreditCard) (domain.CreditCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card.ID = domain.NewLocalID("card")
	s.data.CreditCards = append(s.data.CreditCards, card)
	if err := s.save(); err != nil {
		return domain.CreditCard{}, err
	}
	return card, nil
}

// RemoveCreditCard deletes a card by ID.
func (s *Store) RemoveCreditCard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.CreditCards = slices.DeleteFunc(s.data.CreditCards, func(c domain.CreditCard) bool { return c.ID == id })
	return s.save()
}
