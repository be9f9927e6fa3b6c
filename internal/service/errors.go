package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Dan9191/finance-insights/internal/models"
)

// Kind classifies how a query was answered
type Kind string

const (
	KindAnswered        Kind = "answered"
	KindConversational  Kind = "conversational"
	KindDataUnavailable Kind = "data_unavailable"
	KindPermission      Kind = "permission_denied"
	KindNoData          Kind = "no_data_for_period"
	KindUnrecognized    Kind = "unrecognized_intent"
	KindInternal        Kind = "internal_fault"
)

// User-facing messages for the fixed error kinds
const (
	MsgDataUnavailable = "There was a problem loading the financial data files. Please check the server logs."
	MsgUnrecognized    = "I'm sorry, I couldn't understand that query. Please try asking a different question."
	MsgInternal        = "Sorry, something went wrong on our end. Please try again."
)

var (
	// ErrDataUnavailable means no dataset snapshot has been loaded
	ErrDataUnavailable = errors.New("financial data unavailable")
	// ErrUnrecognizedIntent means the classifier found no confident match
	ErrUnrecognizedIntent = errors.New("unrecognized intent")
)

// PermissionDeniedError names the domains an operation needed but did not get
type PermissionDeniedError struct {
	Purpose string
	Missing []models.Domain
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("To %s, I need access to your %s data. Please enable permissions to proceed.",
		e.Purpose, joinDomains(e.Missing))
}

// NoDataForPeriodError reports a period absent from an otherwise valid dataset
type NoDataForPeriodError struct {
	Period string
}

func (e *NoDataForPeriodError) Error() string {
	return fmt.Sprintf("I'm sorry, I don't have transaction data for %s.", titleCase(e.Period))
}

// joinDomains renders "A", "A and B" or "A, B, and C"
func joinDomains(domains []models.Domain) string {
	names := make([]string, len(domains))
	for i, d := range domains {
		names[i] = d.DisplayName()
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
