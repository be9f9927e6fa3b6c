package service

import (
	"fmt"
	"strings"
	"time"
)

// PolicyMode selects how a reference month is chosen
type PolicyMode string

const (
	// PolicyFixed always uses the configured month
	PolicyFixed PolicyMode = "fixed"
	// PolicyPrevious uses the month before the clock's current month
	PolicyPrevious PolicyMode = "previous"
)

// MonthPolicy resolves the reference month for a calculation
type MonthPolicy struct {
	Mode  PolicyMode
	Fixed time.Month
}

// FixedMonth returns a policy that always resolves to m
func FixedMonth(m time.Month) MonthPolicy {
	return MonthPolicy{Mode: PolicyFixed, Fixed: m}
}

// PreviousMonth returns a policy resolving to the month before now
func PreviousMonth() MonthPolicy {
	return MonthPolicy{Mode: PolicyPrevious}
}

// ParseMonthPolicy builds a policy from configuration values
func ParseMonthPolicy(mode, month string) (MonthPolicy, error) {
	switch PolicyMode(strings.ToLower(mode)) {
	case PolicyPrevious:
		return PreviousMonth(), nil
	case PolicyFixed:
		m, err := ParseMonth(month)
		if err != nil {
			return MonthPolicy{}, err
		}
		return FixedMonth(m), nil
	default:
		return MonthPolicy{}, fmt.Errorf("unknown month policy %q", mode)
	}
}

// Resolve returns the reference month; January wraps to December
func (p MonthPolicy) Resolve(now time.Time) time.Month {
	if p.Mode == PolicyPrevious {
		m := now.Month() - 1
		if m == 0 {
			m = time.December
		}
		return m
	}
	return p.Fixed
}

// ParseMonth accepts an English month name, case-insensitively
func ParseMonth(name string) (time.Month, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for m := time.January; m <= time.December; m++ {
		if strings.ToLower(m.String()) == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", name)
}

// monthKey is the dataset key of m
func monthKey(m time.Month) string {
	return strings.ToLower(m.String())
}
