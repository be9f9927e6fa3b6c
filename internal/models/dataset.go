package models

import "time"

// Dataset is an immutable snapshot of all six domains.
// Nothing may modify a Dataset after it has been published.
type Dataset struct {
	Transactions Transactions
	Credit       Credit
	Assets       Assets
	EPF          EPF
	Investments  Investments
	Liabilities  Liabilities

	Source   string
	LoadedAt time.Time
}
