package models

import "github.com/shopspring/decimal"

// Assets holds liquid balances
type Assets struct {
	BankBalance decimal.Decimal `json:"bank_balance"`
	Cash        decimal.Decimal `json:"cash"`
}

// Liquid returns bank balance plus cash
func (a Assets) Liquid() decimal.Decimal {
	return a.BankBalance.Add(a.Cash)
}

// EPF holds the employee provident fund balance
type EPF struct {
	Balance decimal.Decimal `json:"balance"`
}
