// Package worker turns refresh requests into published snapshots.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/cadenas/internal/adapters/repository"
	"github.com/okian/cadenas/internal/adapters/sheets"
	"github.com/okian/cadenas/internal/domain/aggregate"
	"github.com/okian/cadenas/internal/domain/model"
	"github.com/okian/cadenas/internal/domain/normalize"
	"github.com/okian/cadenas/pkg/logger"
	"github.com/okian/cadenas/pkg/metrics"
)

// Fetcher returns the raw sheet rows.
type Fetcher interface {
	Fetch(ctx context.Context) ([][]string, error)
}

// Normalizer turns raw rows into records.
type Normalizer interface {
	NormalizeAll(rows [][]string) ([]model.ClimbRecord, normalize.Stats)
}

// Publisher receives each new snapshot.
type Publisher interface {
	Replace(snap *repository.Snapshot) error
}

// RowCache keeps the last good rows across restarts.
type RowCache interface {
	Save(ctx context.Context, rows repository.CachedRows) error
	Load(ctx context.Context) (repository.CachedRows, error)
}

// Queue defines how the worker receives requests.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.RefreshRequest
}

// Result describes the outcome of the latest refresh attempt.
type Result struct {
	RequestID string        `json:"request_id"`
	Reason    string        `json:"reason"`
	At        time.Time     `json:"at"`
	Duration  time.Duration `json:"duration_ns"`
	Rows      int           `json:"rows"`
	Err       string        `json:"error,omitempty"`
}

// RefreshWorker runs one refresh at a time: fetch, normalize, publish.
// A failed refresh leaves the current snapshot in place.
type RefreshWorker struct {
	queue      Queue
	fetcher    Fetcher
	normalizer Normalizer
	publisher  Publisher
	cache      RowCache
	name       string

	mu   sync.RWMutex
	last *Result

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewRefreshWorker creates a worker with configuration options.
func NewRefreshWorker(q Queue, f Fetcher, n Normalizer, p Publisher, opts ...Option) *RefreshWorker {
	w := &RefreshWorker{
		queue:      q,
		fetcher:    f,
		normalizer: n,
		publisher:  p,
		name:       "refresh",
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run processes requests until ctx is done, Shutdown is called, or the
// queue closes.
func (w *RefreshWorker) Run(ctx context.Context) {
	defer close(w.done)

	requests := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case req, ok := <-requests:
			if !ok {
				return
			}
			if err := w.Process(ctx, req); err != nil {
				w.logger.Error(ctx, "refresh failed",
					logger.String("request_id", req.ID),
					logger.String("reason", req.Reason),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown stops Run and waits for it to return.
func (w *RefreshWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out", logger.String("worker", w.name))
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Process performs a single refresh for req.
func (w *RefreshWorker) Process(ctx context.Context, req model.RefreshRequest) error {
	start := time.Now()
	res := Result{RequestID: req.ID, Reason: req.Reason, At: start}

	rows, err := w.fetcher.Fetch(ctx)
	if err != nil {
		result := metrics.ResultFailure
		if errors.Is(err, sheets.ErrEmptySheet) {
			result = metrics.ResultEmpty
		}
		metrics.RecordRefresh(result, time.Since(start))
		metrics.RecordErrorByComponent("sheets", errorKind(err))
		res.Duration = time.Since(start)
		res.Err = err.Error()
		w.setLast(res)
		return fmt.Errorf("fetch: %w", err)
	}

	snap, err := w.publish(rows, req.ID, repository.SourceSheet, start)
	if err != nil {
		metrics.RecordRefresh(metrics.ResultFailure, time.Since(start))
		metrics.RecordErrorByComponent("repository", "publish")
		res.Duration = time.Since(start)
		res.Err = err.Error()
		w.setLast(res)
		return err
	}

	if w.cache != nil {
		if err := w.cache.Save(ctx, repository.CachedRows{Rows: rows, FetchedAt: snap.FetchedAt}); err != nil {
			metrics.RecordCacheOp("save", "error")
			w.logger.Warn(ctx, "row cache save failed", logger.Error(err))
		} else {
			metrics.RecordCacheOp("save", "ok")
		}
	}

	metrics.RecordRefresh(metrics.ResultSuccess, time.Since(start))
	res.Duration = time.Since(start)
	res.Rows = len(snap.Records)
	w.setLast(res)

	w.logger.Info(ctx, "snapshot refreshed",
		logger.String("request_id", req.ID),
		logger.String("reason", req.Reason),
		logger.Int("rows", snap.Stats.Rows),
		logger.Int("unknown_bonus_codes", snap.Stats.UnknownBonusCode),
		logger.Int("unparsable_dates", snap.Stats.UnparsableDate),
		logger.Duration("took", res.Duration),
	)
	return nil
}

// Restore publishes the cached rows, if any. It is meant to run once at
// startup so reads can be served before the first fetch completes.
func (w *RefreshWorker) Restore(ctx context.Context) error {
	if w.cache == nil {
		return repository.ErrCacheMiss
	}
	cached, err := w.cache.Load(ctx)
	if err != nil {
		result := "error"
		if errors.Is(err, repository.ErrCacheMiss) {
			result = "miss"
		}
		metrics.RecordCacheOp("load", result)
		return err
	}
	metrics.RecordCacheOp("load", "hit")

	snap, err := w.publish(cached.Rows, model.NewRefreshRequest("restore").ID, repository.SourceCache, cached.FetchedAt)
	if err != nil {
		return err
	}
	w.logger.Info(ctx, "snapshot restored from cache",
		logger.Int("rows", snap.Stats.Rows),
		logger.String("fetched_at", cached.FetchedAt.Format(time.RFC3339)),
	)
	return nil
}

// Last returns the outcome of the latest refresh attempt, if any.
func (w *RefreshWorker) Last() (Result, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.last == nil {
		return Result{}, false
	}
	return *w.last, true
}

func (w *RefreshWorker) publish(rows [][]string, id, source string, fetchedAt time.Time) (*repository.Snapshot, error) {
	records, stats := w.normalizer.NormalizeAll(rows)
	snap := &repository.Snapshot{
		ID:        id,
		Records:   records,
		Stats:     stats,
		Source:    source,
		FetchedAt: fetchedAt,
	}
	if err := w.publisher.Replace(snap); err != nil {
		return nil, fmt.Errorf("publish snapshot: %w", err)
	}
	metrics.UpdateIngest(metrics.IngestStats{
		Rows:             stats.Rows,
		Athletes:         len(aggregate.Athletes(records)),
		UnknownBonusCode: stats.UnknownBonusCode,
		UnparsableDate:   stats.UnparsableDate,
		MissingAthlete:   stats.MissingAthlete,
	})
	return snap, nil
}

func (w *RefreshWorker) setLast(r Result) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.last = &r
}

// errorKind labels a fetch error for metrics.
func errorKind(err error) string {
	switch {
	case errors.Is(err, sheets.ErrAccessDenied):
		return "access_denied"
	case errors.Is(err, sheets.ErrSheetNotFound):
		return "not_found"
	case errors.Is(err, sheets.ErrBadRange):
		return "bad_range"
	case errors.Is(err, sheets.ErrEmptySheet):
		return "empty"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "fetch"
	}
}
