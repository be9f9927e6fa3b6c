package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/finance-insights/internal/intent"
	"github.com/Dan9191/finance-insights/internal/models"
	"github.com/Dan9191/finance-insights/internal/observability"
	"github.com/sirupsen/logrus"
)

// Snapshots provides the currently published dataset
type Snapshots interface {
	Current() (*models.Dataset, bool)
}

// Service answers finance questions against the published dataset.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	data       Snapshots
	log        *logrus.Logger
	classifier *intent.Classifier
	ops        map[intent.ID]Operation
	selector   Selector
	now        func() time.Time
	spending   MonthPolicy
	savings    MonthPolicy
	currency   string
}

// Option customizes a Service
type Option func(*Service)

// WithCatalogue replaces the operation table
func WithCatalogue(ops []Operation) Option {
	return func(s *Service) {
		s.setCatalogue(ops)
	}
}

// WithSelector replaces the canned-reply selector
func WithSelector(sel Selector) Option {
	return func(s *Service) {
		s.selector = sel
	}
}

// WithClock replaces the clock used by month policies
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithMonthPolicies sets the spending and savings reference months
func WithMonthPolicies(spending, savings MonthPolicy) Option {
	return func(s *Service) {
		s.spending = spending
		s.savings = savings
	}
}

// WithCurrency sets the symbol prefixed to amounts
func WithCurrency(symbol string) Option {
	return func(s *Service) {
		s.currency = symbol
	}
}

// NewService initializes a new service
func NewService(data Snapshots, log *logrus.Logger, opts ...Option) *Service {
	s := &Service{
		data:     data,
		log:      log,
		selector: RandomSelector{},
		now:      time.Now,
		spending: FixedMonth(time.August),
		savings:  FixedMonth(time.January),
		currency: "$",
	}
	s.setCatalogue(DefaultCatalogue())
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) setCatalogue(ops []Operation) {
	s.ops = make(map[intent.ID]Operation, len(ops))
	for _, op := range ops {
		s.ops[op.ID] = op
	}
	s.classifier = intent.NewClassifier(rules(ops))
}

// Request is one inbound question
type Request struct {
	Query       string
	Permissions map[string]bool
}

// Response is the answer to a Request. Fault is set when an internal error
// was hidden behind the generic apology.
type Response struct {
	Text   string
	Intent intent.ID
	Kind   Kind
	Fault  bool
}

// Answer classifies the query, checks permissions and runs the matching
// operation. Every outcome, including internal faults, becomes a Response.
func (s *Service) Answer(ctx context.Context, req Request) (resp Response) {
	log := observability.Entry(ctx, s.log)

	defer func() {
		if r := recover(); r != nil {
			log.WithFields(logrus.Fields{
				"intent": resp.Intent,
				"panic":  fmt.Sprint(r),
			}).Error("Internal fault while answering query")
			resp = Response{Text: MsgInternal, Intent: resp.Intent, Kind: KindInternal, Fault: true}
		}
	}()

	ds, ok := s.data.Current()
	if !ok {
		log.Warn("Query received while financial data is unavailable")
		return Response{Text: MsgDataUnavailable, Intent: intent.Unknown, Kind: KindDataUnavailable}
	}

	log.Debug("Classifying query")
	match := s.classifier.Classify(req.Query)
	resp.Intent = match.Intent
	log = log.WithFields(logrus.Fields{
		"intent": match.Intent,
		"method": match.Method,
		"score":  match.Score,
	})

	if pool, ok := responsePools[match.Intent]; ok {
		log.Debug("Answering conversational intent")
		return Response{Text: pool[s.selector.Pick(len(pool))], Intent: match.Intent, Kind: KindConversational}
	}

	op, ok := s.ops[match.Intent]
	if !ok {
		log.Info("Query not recognized")
		return Response{Text: MsgUnrecognized, Intent: intent.Unknown, Kind: KindUnrecognized}
	}

	log.Debug("Authorizing operation")
	if allowed, missing := Authorize(op.Requires, req.Permissions); !allowed {
		denied := &PermissionDeniedError{Purpose: op.Purpose, Missing: missing}
		log.WithField("missing", missing).Info("Permission denied")
		return Response{Text: denied.Error(), Intent: op.ID, Kind: KindPermission}
	}

	log.Debug("Executing operation")
	text, err := op.Run(ds, Env{
		Now:           s.now(),
		SpendingMonth: s.spending,
		SavingsMonth:  s.savings,
		Currency:      s.currency,
	})
	if err != nil {
		return s.fromError(log, op.ID, err)
	}

	log.Info("Query answered")
	return Response{Text: text, Intent: op.ID, Kind: KindAnswered}
}

// fromError maps the errors a Handler may return to a Response
func (s *Service) fromError(log *logrus.Entry, id intent.ID, err error) Response {
	var noData *NoDataForPeriodError
	var denied *PermissionDeniedError
	switch {
	case errors.As(err, &noData):
		log.WithField("period", noData.Period).Info("No data for period")
		return Response{Text: noData.Error(), Intent: id, Kind: KindNoData}
	case errors.As(err, &denied):
		log.WithField("missing", denied.Missing).Info("Permission denied by operation")
		return Response{Text: denied.Error(), Intent: id, Kind: KindPermission}
	case errors.Is(err, ErrDataUnavailable):
		log.WithError(err).Warn("Operation found financial data unavailable")
		return Response{Text: MsgDataUnavailable, Intent: id, Kind: KindDataUnavailable}
	case errors.Is(err, ErrUnrecognizedIntent):
		return Response{Text: MsgUnrecognized, Intent: intent.Unknown, Kind: KindUnrecognized}
	default:
		log.WithError(err).Error("Internal fault while answering query")
		return Response{Text: MsgInternal, Intent: id, Kind: KindInternal, Fault: true}
	}
}
