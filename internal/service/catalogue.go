package service

import (
	"github.com/Dan9191/finance-insights/internal/intent"
	"github.com/Dan9191/finance-insights/internal/models"
)

// Operation identifiers
const (
	OpTotalSpending     intent.ID = "total_spending"
	OpSavingsForecast   intent.ID = "savings_forecast"
	OpNetWorth          intent.ID = "net_worth"
	OpCreditSummary     intent.ID = "credit_summary"
	OpEPFBalance        intent.ID = "epf_balance"
	OpInvestmentSummary intent.ID = "investment_summary"
	OpLiabilitySummary  intent.ID = "liability_summary"
	OpBalanceSummary    intent.ID = "balance_summary"
)

// DefaultCatalogue returns the supported operations in classification
// priority order. Each call returns a fresh slice.
func DefaultCatalogue() []Operation {
	return []Operation{
		{
			ID:       OpTotalSpending,
			Purpose:  "show your spending",
			Triggers: []string{"spend", "spending", "spent", "debits", "money out", "expenses"},
			Requires: []models.Domain{models.DomainTransactions},
			Run:      TotalSpending,
		},
		{
			ID:       OpSavingsForecast,
			Purpose:  "forecast savings",
			Triggers: []string{"savings forecast", "future savings", "how much can i save", "forecast savings"},
			Requires: []models.Domain{models.DomainTransactions, models.DomainAssets},
			Run:      SavingsForecast,
		},
		{
			ID:       OpNetWorth,
			Purpose:  "calculate your net worth",
			Triggers: []string{"net worth", "how much i am worth", "total assets and liabilities", "financial position"},
			Requires: []models.Domain{models.DomainAssets, models.DomainInvestments, models.DomainLiabilities, models.DomainEPF},
			Run:      NetWorth,
		},
		{
			ID:       OpCreditSummary,
			Purpose:  "check your credit score",
			Triggers: []string{"credit score", "credit rating", "check my credit"},
			Requires: []models.Domain{models.DomainCredit},
			Run:      CreditSummary,
		},
		{
			ID:       OpEPFBalance,
			Purpose:  "show your EPF balance",
			Triggers: []string{"epf", "provident fund"},
			Requires: []models.Domain{models.DomainEPF},
			Run:      EPFBalance,
		},
		{
			ID:       OpInvestmentSummary,
			Purpose:  "summarize your investments",
			Triggers: []string{"investments", "portfolio", "mutual funds"},
			Requires: []models.Domain{models.DomainInvestments},
			Run:      InvestmentSummary,
		},
		{
			ID:       OpLiabilitySummary,
			Purpose:  "summarize your loans",
			Triggers: []string{"loans", "liabilities", "outstanding debt", "debt"},
			Requires: []models.Domain{models.DomainLiabilities},
			Run:      LiabilitySummary,
		},
		{
			ID:       OpBalanceSummary,
			Purpose:  "show your balances",
			Triggers: []string{"bank balance", "cash balance", "account balance"},
			Requires: []models.Domain{models.DomainAssets},
			Run:      BalanceSummary,
		},
	}
}

// rules extracts the classifier table from a catalogue
func rules(ops []Operation) []intent.Rule {
	out := make([]intent.Rule, 0, len(ops))
	for _, op := range ops {
		out = append(out, intent.Rule{ID: op.ID, Triggers: op.Triggers})
	}
	return out
}
