package report

import (
	"github.com/shopspring/decimal"

	"github.com/turtlefin/turtle-finance/internal/domain"
)

// AccountBalance is the computed balance of one bank account: its initial
// balance plus incomes and minus expenses attributed to it.
type AccountBalance struct {
	Account domain.BankAccount `json:"account"`
	Balance decimal.Decimal    `json:"balance"`
}

// AccountBalances computes a balance for every registered account. Credit
// expenses are charged to the billing account of the referenced card; records
// referencing unknown accounts or cards are ignored, matching the app's
// tolerance for dangling references.
func AccountBalances(accounts []domain.BankAccount, cards []domain.CreditCard, records []domain.Record) []AccountBalance {
	cardAccount := make(map[string]string, len(cards))
	for _, card := range cards {
		cardAccount[card.ID] = card.BankAccountID
	}

	balances := make(map[string]decimal.Decimal, len(accounts))
	for _, account := range accounts {
		balances[account.ID] = decimal.NewFromFloat(account.InitialBalance)
	}

	for _, r := range records {
		amount, ok := recordAmount(r)
		if !ok {
			continue
		}

		accountID := r.BankAccountID
		if r.Method == domain.MethodCredit && r.CreditCardID != "" {
			accountID = cardAccount[r.CreditCardID]
		}
		if _, known := balances[accountID]; !known {
			continue
		}

		if r.Type == domain.TypeIncome {
			balances[accountID] = balances[accountID].Add(amount)
		} else {
			balances[accountID] = balances[accountID].Sub(amount)
		}
	}

	out := make([]AccountBalance, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, AccountBalance{Account: account, Balance: balances[account.ID]})
	}
	return out
}
