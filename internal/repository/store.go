package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Dan9191/finance-insights/internal/models"
	"github.com/sirupsen/logrus"
)

// Notifier is told about reloads that failed
type Notifier interface {
	NotifyReloadFailure(source string, at time.Time, cause error) error
}

// Store publishes the current dataset snapshot.
//
// Readers call Current once per request and keep that pointer for the whole
// request. Reload builds a complete snapshot off to the side and swaps it in
// only when every domain loaded; a failed reload leaves the previous snapshot
// in place. Until the first successful load Current reports no data.
type Store struct {
	src      Source
	log      *logrus.Logger
	notifier Notifier
	now      func() time.Time

	current atomic.Pointer[models.Dataset]
	mu      sync.Mutex // serializes reloads
}

// NewStore initializes an empty store backed by src
func NewStore(src Source, log *logrus.Logger, notifier Notifier) *Store {
	return &Store{
		src:      src,
		log:      log,
		notifier: notifier,
		now:      time.Now,
	}
}

// NewStaticStore publishes ds directly, for callers that already hold a snapshot
func NewStaticStore(ds *models.Dataset) *Store {
	s := &Store{now: time.Now}
	if ds != nil {
		s.current.Store(ds)
	}
	return s
}

// Current returns the published snapshot, or false when none is available
func (s *Store) Current() (*models.Dataset, bool) {
	ds := s.current.Load()
	return ds, ds != nil
}

// Reload loads a fresh snapshot from the source and swaps it in
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := s.now()
	ds, err := Load(ctx, s.src, started)
	if err != nil {
		_, hadData := s.Current()
		s.log.WithFields(logrus.Fields{
			"source":        s.src.Name(),
			"kept_previous": hadData,
		}).Errorf("Dataset reload failed: %v", err)
		if s.notifier != nil {
			if nerr := s.notifier.NotifyReloadFailure(s.src.Name(), started, err); nerr != nil {
				s.log.Errorf("Failed to send reload failure notice: %v", nerr)
			}
		}
		return err
	}

	s.current.Store(ds)
	s.log.WithFields(logrus.Fields{
		"source":   ds.Source,
		"months":   len(ds.Transactions),
		"duration": s.now().Sub(started).String(),
	}).Info("Dataset loaded")
	return nil
}
