// internal/historian/historian.go is an asynchronous service that pops rank events from a queue
// and persists them to the database in batches.
package historian

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jason-s-yu/pushups/internal/models"
	"github.com/sirupsen/logrus"
)

// Source yields queued rank events. Pop returns ok=false when nothing arrived within timeout.
type Source interface {
	Pop(ctx context.Context, timeout time.Duration) (models.RankEvent, bool, error)
}

// Sink persists a batch of rank events.
type Sink interface {
	InsertRankEvents(ctx context.Context, events []models.RankEvent) error
}

// Service reads from a Source, accumulates events and flushes them to a Sink
// when the batch is full or the flush interval elapses.
type Service struct {
	source       Source
	sink         Sink
	logger       *logrus.Logger
	batchSize    int
	flushDelay   time.Duration
	popTimeout   time.Duration
	errorBackoff time.Duration

	batchMu sync.Mutex
	batch   []models.RankEvent
}

// Options configures a Service. Zero fields take defaults.
type Options struct {
	BatchSize  int
	FlushDelay time.Duration
	PopTimeout time.Duration
}

func New(source Source, sink Sink, logger *logrus.Logger, opts Options) *Service {
	if opts.BatchSize < 1 {
		opts.BatchSize = 20
	}
	if opts.FlushDelay <= 0 {
		opts.FlushDelay = 500 * time.Millisecond
	}
	if opts.PopTimeout <= 0 {
		opts.PopTimeout = 3 * time.Second
	}
	return &Service{
		source:       source,
		sink:         sink,
		logger:       logger,
		batchSize:    opts.BatchSize,
		flushDelay:   opts.FlushDelay,
		popTimeout:   opts.PopTimeout,
		errorBackoff: time.Second,
		batch:        make([]models.RankEvent, 0, opts.BatchSize),
	}
}

// Run consumes events until ctx is cancelled, then flushes what is left.
// Popping happens on its own goroutine so the flush interval holds while Pop blocks.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.flushDelay)
	defer ticker.Stop()

	events := make(chan models.RankEvent)
	go s.read(ctx, events)

	s.logger.Info("historian started")
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				// ctx is gone; give the final flush its own deadline
				flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				s.Flush(flushCtx)
				cancel()
				s.logger.Info("historian shutting down")
				return
			}
			s.append(ctx, ev)

		case <-ticker.C:
			if ctx.Err() == nil {
				s.Flush(ctx)
			}
		}
	}
}

// read pops from the source into events and closes it once ctx is done.
// An event that was already popped is always handed over.
func (s *Service) read(ctx context.Context, events chan<- models.RankEvent) {
	defer close(events)
	for ctx.Err() == nil {
		ev, ok, err := s.source.Pop(ctx, s.popTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			s.logger.WithError(err).Error("failed to pop rank event")
			select {
			case <-time.After(s.errorBackoff):
			case <-ctx.Done():
			}
			continue
		}
		if ok {
			events <- ev
		}
	}
}

func (s *Service) append(ctx context.Context, ev models.RankEvent) {
	s.batchMu.Lock()
	s.batch = append(s.batch, ev)
	full := len(s.batch) >= s.batchSize
	s.batchMu.Unlock()

	// after cancellation the final flush in Run picks the batch up
	if full && ctx.Err() == nil {
		s.Flush(ctx)
	}
}

// Pending returns the number of events not yet flushed.
func (s *Service) Pending() int {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()
	return len(s.batch)
}

// Flush writes the current batch. On failure the events are put back for the next attempt.
func (s *Service) Flush(ctx context.Context) {
	s.batchMu.Lock()
	if len(s.batch) == 0 {
		s.batchMu.Unlock()
		return
	}
	toInsert := make([]models.RankEvent, len(s.batch))
	copy(toInsert, s.batch)
	s.batch = s.batch[:0]
	s.batchMu.Unlock()

	if err := s.sink.InsertRankEvents(ctx, toInsert); err != nil {
		s.logger.WithError(err).WithField("count", len(toInsert)).Error("failed to flush rank events")
		s.batchMu.Lock()
		s.batch = append(toInsert, s.batch...)
		s.batchMu.Unlock()
		return
	}
	s.logger.WithField("count", len(toInsert)).Debug("flushed rank events")
}
