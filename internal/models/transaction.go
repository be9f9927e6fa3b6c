package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money leaving and entering the account
type TransactionType string

const (
	TransactionDebit  TransactionType = "debit"
	TransactionCredit TransactionType = "credit"
)

// Transaction represents a financial transaction
type Transaction struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
}

// Transactions maps a lower-case month name to that month's transactions
type Transactions map[string][]Transaction

// Month returns the transactions recorded for month and whether the month exists
func (t Transactions) Month(month string) ([]Transaction, bool) {
	txs, ok := t[strings.ToLower(month)]
	return txs, ok
}

// Normalize lower-cases month keys and checks every transaction type.
// Keys that only differ by case or surrounding space are rejected.
func (t Transactions) Normalize() (Transactions, error) {
	out := make(Transactions, len(t))
	for month, txs := range t {
		key := strings.ToLower(strings.TrimSpace(month))
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("month %q appears more than once", key)
		}
		for i, tx := range txs {
			if tx.Type != TransactionDebit && tx.Type != TransactionCredit {
				return nil, fmt.Errorf("month %s transaction %d: unknown type %q", month, i, tx.Type)
			}
		}
		out[key] = txs
	}
	return out, nil
}

// Sum adds the amounts of all transactions of the given type
func Sum(txs []Transaction, typ TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Type == typ {
			total = total.Add(tx.Amount)
		}
	}
	return total
}
