// Package logs retrieves and tails console log events for submitted jobs.
package logs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"batch-client/core/apperrors"
	"batch-client/core/models"
	"batch-client/core/monitoring"

	"github.com/sirupsen/logrus"
)

// DefaultPollInterval is the fixed throttle between tail polls.
const DefaultPollInterval = time.Second

// Fetcher retrieves one bounded page of log events from the remote service.
// A zero endTime means no upper bound.
type Fetcher interface {
	GetLogEvents(ctx context.Context, group, stream string, startTime, endTime int64) (*models.LogPage, error)
}

// Tailer reads log streams page by page and can tail them indefinitely.
type Tailer struct {
	fetcher  Fetcher
	interval time.Duration
	logger   logrus.FieldLogger
	metrics  *monitoring.Metrics
}

// Option configures a Tailer.
type Option func(*Tailer)

// WithPollInterval overrides the fixed sleep between tail polls.
func WithPollInterval(d time.Duration) Option {
	return func(t *Tailer) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithLogger attaches a logger to the tailer.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(t *Tailer) { t.logger = logger }
}

// WithMetrics attaches operation metrics to the tailer.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(t *Tailer) { t.metrics = m }
}

// NewTailer creates a tailer over a log event fetcher.
func NewTailer(fetcher Fetcher, opts ...Option) *Tailer {
	t := &Tailer{
		fetcher:  fetcher,
		interval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.PanicLevel)
		t.logger = logger
	}
	return t
}

// FetchPage performs a single bounded fetch of log events. A zero endTime
// means no upper bound.
func (t *Tailer) FetchPage(ctx context.Context, group, stream string, startTime, endTime int64) (*models.LogPage, error) {
	page, err := t.fetcher.GetLogEvents(ctx, group, stream, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch log events: %w", err)
	}
	t.metrics.TickLogEvents(len(page.Events))
	return page, nil
}

// Tail streams log events from startTime onward, in non-decreasing
// timestamp order, polling the service once per interval. The sequence
// never terminates on its own: the caller stops consuming once it has
// independently determined the job is done, or cancels ctx.
//
// After a non-empty page the cursor advances to the last event's
// timestamp plus one; events sharing that exact timestamp across a page
// boundary can be skipped, a limit of the service's time-keyed paging.
//
// If timeout is positive the whole operation is bounded by it and the
// consumer is released with an apperrors.ErrTimeout once it elapses. The
// event channel is closed when tailing ends; the error channel then
// yields the terminal error and is closed.
func (t *Tailer) Tail(ctx context.Context, group, stream string, startTime int64, timeout time.Duration) (<-chan models.LogEvent, <-chan error) {
	events := make(chan models.LogEvent)
	errc := make(chan error, 1)

	cancel := context.CancelFunc(func() {})
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	}

	go func() {
		defer close(errc)
		defer close(events)
		defer cancel()
		if err := t.tail(ctx, group, stream, startTime, timeout, events); err != nil {
			errc <- err
		}
	}()

	return events, errc
}

func (t *Tailer) tail(ctx context.Context, group, stream string, startTime int64, timeout time.Duration, events chan<- models.LogEvent) error {
	logger := t.logger.WithFields(logrus.Fields{
		"group":  group,
		"stream": stream,
	})

	cursor := startTime
	timer := time.NewTimer(t.interval)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		page, err := t.FetchPage(ctx, group, stream, cursor, 0)
		if err != nil {
			if terr := t.terminalErr(ctx, timeout); terr != nil {
				return terr
			}
			return err
		}

		for _, event := range page.Events {
			select {
			case events <- event:
			case <-ctx.Done():
				return t.terminalErr(ctx, timeout)
			}
		}

		if n := len(page.Events); n > 0 {
			cursor = page.Events[n-1].Timestamp + 1
			logger.WithField("cursor", cursor).Debug("advanced log cursor")
		}

		timer.Reset(t.interval)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return t.terminalErr(ctx, timeout)
		}
	}
}

// terminalErr maps context termination to the error the consumer sees: a
// typed timeout when the configured budget elapsed, the context error
// otherwise. Returns nil when the context is still live.
func (t *Tailer) terminalErr(ctx context.Context, timeout time.Duration) error {
	if ctx.Err() == nil {
		return nil
	}
	if timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.Timeout("logs.Tail", timeout)
	}
	return ctx.Err()
}
