package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Dan9191/finance-insights/internal/intent"
	"github.com/Dan9191/finance-insights/internal/models"
	"github.com/shopspring/decimal"
)

// ForecastPeriods is the number of periods projected by the savings forecast
const ForecastPeriods = 6

// Env carries the per-request inputs an operation may read besides the dataset
type Env struct {
	Now           time.Time
	SpendingMonth MonthPolicy
	SavingsMonth  MonthPolicy
	Currency      string
}

// Money formats an amount with exactly two fractional digits
func (e Env) Money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + e.Currency + d.Abs().StringFixed(2)
	}
	return e.Currency + d.StringFixed(2)
}

// Handler computes one answer from a snapshot. Handlers must not modify ds.
// Besides *NoDataForPeriodError, a handler may return ErrDataUnavailable when
// the snapshot lacks what it reads, *PermissionDeniedError when access depends
// on the data itself, or ErrUnrecognizedIntent to decline the question; each is
// answered with its own message. Any other error is an internal fault.
type Handler func(ds *models.Dataset, env Env) (string, error)

// Operation is one row of the catalogue: what triggers it, what it reads
// and how it is computed.
type Operation struct {
	ID       intent.ID
	Purpose  string
	Triggers []string
	Requires []models.Domain
	Run      Handler
}

// TotalSpending sums debit transactions of the spending reference month
func TotalSpending(ds *models.Dataset, env Env) (string, error) {
	month := monthKey(env.SpendingMonth.Resolve(env.Now))
	txs, ok := ds.Transactions.Month(month)
	if !ok {
		return "", &NoDataForPeriodError{Period: month}
	}
	total := models.Sum(txs, models.TransactionDebit)
	return fmt.Sprintf("You spent a total of %s in %s.", env.Money(total), titleCase(month)), nil
}

// SavingsForecast projects liquid savings forward by the reference month's
// net income. The answer is a sentence, a newline, then the JSON forecast.
func SavingsForecast(ds *models.Dataset, env Env) (string, error) {
	month := monthKey(env.SavingsMonth.Resolve(env.Now))
	txs, ok := ds.Transactions.Month(month)
	if !ok {
		return "", &NoDataForPeriodError{Period: month}
	}

	monthly := models.Sum(txs, models.TransactionCredit).Sub(models.Sum(txs, models.TransactionDebit))
	points := Forecast(ds.Assets.Liquid(), monthly, ForecastPeriods)

	payload, err := json.Marshal(points)
	if err != nil {
		return "", fmt.Errorf("failed to encode forecast: %w", err)
	}

	sentence := fmt.Sprintf(
		"Based on your current trends (%s saved in %s), here is a forecast of your savings for the next %d months...",
		env.Money(monthly), titleCase(month), ForecastPeriods,
	)
	return sentence + "\n" + string(payload), nil
}

// Forecast adds monthly to start once per period, rounding each reported
// balance to two decimals without rounding the running total.
func Forecast(start, monthly decimal.Decimal, periods int) []models.ForecastPoint {
	points := make([]models.ForecastPoint, 0, periods)
	balance := start
	for i := 1; i <= periods; i++ {
		balance = balance.Add(monthly)
		points = append(points, models.ForecastPoint{
			Period:  fmt.Sprintf("Month %d", i),
			Savings: balance.Round(2).InexactFloat64(),
		})
	}
	return points
}

// ParseForecast splits a forecast answer into its sentence and points
func ParseForecast(answer string) (string, []models.ForecastPoint, error) {
	sentence, payload, found := strings.Cut(answer, "\n")
	if !found {
		return "", nil, fmt.Errorf("answer has no forecast payload")
	}
	var points []models.ForecastPoint
	if err := json.Unmarshal([]byte(payload), &points); err != nil {
		return "", nil, fmt.Errorf("failed to decode forecast: %w", err)
	}
	return sentence, points, nil
}

// NetWorth is liquid assets, investments and EPF minus outstanding loans
func NetWorth(ds *models.Dataset, env Env) (string, error) {
	assets := ds.Assets.Liquid().
		Add(ds.Investments.Total()).
		Add(ds.EPF.Balance)
	worth := assets.Sub(ds.Liabilities.Total())
	return fmt.Sprintf("Your estimated net worth is %s.", env.Money(worth)), nil
}

// CreditSummary reports the stored score and rating verbatim
func CreditSummary(ds *models.Dataset, env Env) (string, error) {
	rating := ds.Credit.Rating
	article := "a"
	if rating != "" && strings.ContainsRune("aeiouAEIOU", rune(rating[0])) {
		article = "an"
	}
	return fmt.Sprintf("Your current credit score is %d, which is %s %s rating.", ds.Credit.Score, article, rating), nil
}

// EPFBalance reports the provident fund balance
func EPFBalance(ds *models.Dataset, env Env) (string, error) {
	return fmt.Sprintf("Your EPF balance is %s.", env.Money(ds.EPF.Balance)), nil
}

// InvestmentSummary lists holdings by name with the portfolio total
func InvestmentSummary(ds *models.Dataset, env Env) (string, error) {
	if len(ds.Investments) == 0 {
		return "You have no investments on record.", nil
	}
	parts := make([]string, 0, len(ds.Investments))
	for _, name := range ds.Investments.Names() {
		parts = append(parts, fmt.Sprintf("%s %s", name, env.Money(ds.Investments[name].TotalValue)))
	}
	return fmt.Sprintf("Your investments are worth %s in total: %s.",
		env.Money(ds.Investments.Total()), strings.Join(parts, ", ")), nil
}

// LiabilitySummary lists loans by name with the total outstanding
func LiabilitySummary(ds *models.Dataset, env Env) (string, error) {
	if len(ds.Liabilities) == 0 {
		return "You have no outstanding loans.", nil
	}
	parts := make([]string, 0, len(ds.Liabilities))
	for _, name := range ds.Liabilities.Names() {
		parts = append(parts, fmt.Sprintf("%s %s", name, env.Money(ds.Liabilities[name].OutstandingBalance)))
	}
	noun := "loans"
	if len(parts) == 1 {
		noun = "loan"
	}
	return fmt.Sprintf("You owe %s across %d %s: %s.",
		env.Money(ds.Liabilities.Total()), len(parts), noun, strings.Join(parts, ", ")), nil
}

// BalanceSummary reports bank balance and cash
func BalanceSummary(ds *models.Dataset, env Env) (string, error) {
	return fmt.Sprintf("You have %s in your bank account and %s in cash, %s in total.",
		env.Money(ds.Assets.BankBalance), env.Money(ds.Assets.Cash), env.Money(ds.Assets.Liquid())), nil
}
