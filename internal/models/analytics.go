package models

// ForecastPoint is one period of the savings forecast.
// JSON keys match what the chart front-end indexes on.
type ForecastPoint struct {
	Period  string  `json:"month"`
	Savings float64 `json:"savings"`
}
