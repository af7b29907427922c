package domain

import (
	"crypto/rand"
	"fmt"
	"time"
)

// AccountType distinguishes checking from savings accounts.
type AccountType string

const (
	AccountChecking AccountType = "Checking"
	AccountSavings  AccountType = "Savings"
)

// BankAccount is a user-registered account, stored locally in preferences.
// BankName references an entry in the static bank directory by ID.
type BankAccount struct {
	ID             string      `json:"id"`
	BankName       string      `json:"bankName"`
	AccountType    AccountType `json:"accountType"`
	Agency         string      `json:"agency,omitempty"`
	AccountNumber  string      `json:"accountNumber,omitempty"`
	InitialBalance float64     `json:"initialBalance,omitempty"`
}

// CreditCard is a user-registered card billed to a bank account. Deleting the
// account deletes its cards.
type CreditCard struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	LastFourDigits string `json:"lastFourDigits,omitempty"`
	BankAccountID  string `json:"bankAccountId"`
}

// NewLocalID returns an identifier of the form <prefix>_<unix-millis>_<suffix>.
// The random suffix keeps IDs distinct even for calls within the same
// millisecond.
func NewLocalID(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), randomSuffix(9))
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// constant rather than panic in an ID helper.
		return "000000000"[:n]
	}
	for i := range b {
		b[i] = suffixAlphabet[int(b[i])%len(suffixAlphabet)]
	}
	return string(b)
}
