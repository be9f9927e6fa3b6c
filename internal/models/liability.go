package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Loan represents an outstanding credit line
type Loan struct {
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

// Liabilities maps loan name to loan
type Liabilities map[string]Loan

// Total sums every outstanding balance
func (l Liabilities) Total() decimal.Decimal {
	total := decimal.Zero
	for _, loan := range l {
		total = total.Add(loan.OutstandingBalance)
	}
	return total
}

// Names returns loan names in sorted order
func (l Liabilities) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
