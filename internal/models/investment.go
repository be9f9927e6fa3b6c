package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Holding represents a single investment instrument
type Holding struct {
	TotalValue decimal.Decimal `json:"total_value"`
}

// Investments maps instrument name to holding
type Investments map[string]Holding

// Total sums the value of every holding; an empty portfolio totals zero
func (inv Investments) Total() decimal.Decimal {
	total := decimal.Zero
	for _, h := range inv {
		total = total.Add(h.TotalValue)
	}
	return total
}

// Names returns instrument names in sorted order
func (inv Investments) Names() []string {
	names := make([]string, 0, len(inv))
	for name := range inv {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
