// Package service wires the refresh pipeline to the result views served by
// the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/cadenas/internal/adapters/mq/queue"
	"github.com/okian/cadenas/internal/adapters/mq/worker"
	"github.com/okian/cadenas/internal/adapters/repository"
	"github.com/okian/cadenas/internal/domain/aggregate"
	"github.com/okian/cadenas/internal/domain/bonus"
	"github.com/okian/cadenas/internal/domain/model"
	"github.com/okian/cadenas/internal/domain/normalize"
	"github.com/okian/cadenas/internal/domain/types"
	"github.com/okian/cadenas/pkg/logger"
)

const (
	defaultQueueSize       = 8
	defaultRefreshInterval = time.Minute
	shutdownTimeout        = 5 * time.Second
)

// Service owns the snapshot store and the refresh pipeline. Every read
// recomputes its view from the current snapshot.
type Service struct {
	mu sync.RWMutex

	fetcher      worker.Fetcher
	cache        worker.RowCache
	bonusEntries []bonus.Entry
	dateLayouts  []string

	classifier *bonus.TableClassifier
	store      *repository.SnapshotStore
	queue      *queue.InMemoryQueue
	worker     *worker.RefreshWorker

	queueSize          int
	refreshInterval    time.Duration
	recentLimit        int
	sliceRecentLimit   int
	athleteRecentLimit int

	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	logger logger.Logger
}

// New constructs a Service. Nothing runs until Start.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize:          defaultQueueSize,
		refreshInterval:    defaultRefreshInterval,
		recentLimit:        aggregate.DefaultRecentLimit,
		sliceRecentLimit:   aggregate.SliceRecentLimit,
		athleteRecentLimit: aggregate.AthleteRecentLimit,
		dateLayouts:        normalize.DefaultDateLayouts,
		store:              repository.NewSnapshotStore(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the pipeline, restores cached rows when a cache is set,
// and requests the first refresh.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.fetcher == nil {
		return ErrNoFetcher
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	classifier, err := bonus.New(bonus.WithEntries(s.bonusEntries))
	if err != nil {
		return fmt.Errorf("build bonus table: %w", err)
	}
	s.classifier = classifier
	normalizer := normalize.New(classifier, normalize.WithDateLayouts(s.dateLayouts))

	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	wopts := []worker.Option{worker.WithLogger(s.logger.Named("refresh"))}
	if s.cache != nil {
		wopts = append(wopts, worker.WithCache(s.cache))
	}
	s.worker = worker.NewRefreshWorker(s.queue, s.fetcher, normalizer, s.store, wopts...)

	if s.cache != nil {
		if err := s.worker.Restore(ctx); err != nil && !errors.Is(err, repository.ErrCacheMiss) {
			s.logger.Warn(ctx, "row cache restore failed", logger.Error(err))
		}
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.worker.Run(runCtx)
	}()

	if err := s.queue.Enqueue(ctx, model.NewRefreshRequest("startup")); err != nil {
		s.logger.Warn(ctx, "startup refresh not queued", logger.Error(err))
	}

	if s.refreshInterval > 0 {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.tick(runCtx)
		}()
	}

	s.started = true
	s.logger.Info(ctx, "results service started",
		logger.Int("queue_size", s.queueSize),
		logger.Duration("refresh_interval", s.refreshInterval),
		logger.Int("bonus_codes", len(classifier.Entries())),
		logger.Bool("row_cache", s.cache != nil),
	)
	return nil
}

func (s *Service) tick(ctx context.Context) {
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := s.queue.Enqueue(ctx, model.NewRefreshRequest("interval"))
			if errors.Is(err, queue.ErrFull) {
				s.logger.Debug(ctx, "refresh already pending, skipping tick")
			}
		}
	}
}

// Stop shuts the pipeline down. The current snapshot stays readable.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping results service...")
	if err := s.worker.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "refresh worker shutdown", logger.Error(err))
	}
	s.cancel()
	s.wg.Wait()
	_ = s.queue.Close()

	s.started = false
	s.logger.Info(ctx, "results service stopped")
}

// RequestRefresh queues a refresh and returns its request id.
func (s *Service) RequestRefresh(ctx context.Context, reason string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return "", ErrNotStarted
	}
	req := model.NewRefreshRequest(reason)
	if err := s.queue.Enqueue(ctx, req); err != nil {
		if errors.Is(err, queue.ErrFull) {
			return "", ErrRefreshBusy
		}
		return "", err
	}
	s.logger.Debug(ctx, "refresh requested", logger.String("request_id", req.ID), logger.String("reason", reason))
	return req.ID, nil
}

func (s *Service) records() ([]model.ClimbRecord, error) {
	snap, err := s.store.Current()
	if err != nil {
		return nil, ErrNoData
	}
	return snap.Records, nil
}

// Leaderboard returns ranked athletes. A limit of zero returns all of them.
func (s *Service) Leaderboard(_ context.Context, limit int) ([]types.LeaderboardEntry, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	records, err := s.records()
	if err != nil {
		return nil, err
	}
	rows := aggregate.Leaderboard(records)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return types.Ranked(rows), nil
}

// Athletes returns athlete names in leaderboard order.
func (s *Service) Athletes(_ context.Context) ([]string, error) {
	records, err := s.records()
	if err != nil {
		return nil, err
	}
	return aggregate.Athletes(records), nil
}

// Bonus returns the per-label breakdown laid out along the bonus tiers.
func (s *Service) Bonus(_ context.Context) (types.BonusResponse, error) {
	records, err := s.records()
	if err != nil {
		return types.BonusResponse{}, err
	}
	b := aggregate.BonusBreakdown(records)
	return types.BonusResponse{
		Tiers:   b.TierRows(bonus.Tiers()),
		Route:   b.Route,
		Boulder: b.Boulder,
		Totals:  b.Totals,
	}, nil
}

// DrillDown ranks athletes by log count inside the selected slice and
// lists its most recent logs.
func (s *Service) DrillDown(_ context.Context, sel aggregate.Selector) (types.DrillDownResponse, error) {
	records, err := s.records()
	if err != nil {
		return types.DrillDownResponse{}, err
	}
	return types.DrillDownResponse{
		Selection: sel.String(),
		Rows:      types.RankedDrillDown(aggregate.DrillDown(records, sel)),
		Recent:    types.Climbs(aggregate.Recent(aggregate.Filter(records, sel), s.sliceRecentLimit)),
	}, nil
}

// Athlete returns one athlete's detail. Unknown athletes get the zero detail.
func (s *Service) Athlete(_ context.Context, name string) (types.AthleteResponse, error) {
	records, err := s.records()
	if err != nil {
		return types.AthleteResponse{}, err
	}
	d := aggregate.DetailForAthlete(records, name)
	return types.AthleteResponse{
		Athlete:       d.Athlete,
		TotalPoints:   d.TotalPoints,
		TotalClimbs:   d.TotalClimbs,
		AveragePoints: d.AveragePoints(),
		BonusCounts:   d.RankedBonusCounts(),
		Recent:        types.Climbs(aggregate.Recent(d.Climbs, s.athleteRecentLimit)),
	}, nil
}

// AthleteGrades returns the grade histogram of one athlete for one bonus
// label together with every matching log, newest first.
func (s *Service) AthleteGrades(_ context.Context, name, label string) (types.GradesResponse, error) {
	records, err := s.records()
	if err != nil {
		return types.GradesResponse{}, err
	}
	climbs := aggregate.DetailForAthlete(records, name).Climbs
	return types.GradesResponse{
		Athlete:   name,
		Label:     label,
		Histogram: aggregate.GradeHistogram(climbs, label),
		Logs:      types.Climbs(aggregate.Recent(aggregate.Filter(climbs, aggregate.ByLabel(label)), 0)),
	}, nil
}

// Recent returns the activity feed. A limit of zero uses the configured default.
func (s *Service) Recent(_ context.Context, limit int) ([]types.Climb, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	if limit == 0 {
		limit = s.recentLimit
	}
	records, err := s.records()
	if err != nil {
		return nil, err
	}
	return types.Climbs(aggregate.Recent(records, limit)), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(_ context.Context) types.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := types.Stats{Started: s.started}
	if s.queue != nil {
		stats.QueueLength = s.queue.Len()
	}
	if s.worker != nil {
		if last, ok := s.worker.Last(); ok {
			stats.LastRefresh = &types.RefreshOutcome{
				RequestID:  last.RequestID,
				Reason:     last.Reason,
				At:         last.At,
				DurationMS: last.Duration.Milliseconds(),
				Rows:       last.Rows,
				Error:      last.Err,
			}
		}
	}

	snap, err := s.store.Current()
	if err != nil {
		return stats
	}
	fetchedAt := snap.FetchedAt
	stats.HasData = true
	stats.SnapshotID = snap.ID
	stats.Source = snap.Source
	stats.FetchedAt = &fetchedAt
	stats.Records = len(snap.Records)
	stats.Athletes = len(aggregate.Athletes(snap.Records))
	stats.MissingAthlete = snap.Stats.MissingAthlete
	stats.UnknownBonusCode = snap.Stats.UnknownBonusCode
	stats.UnparsableDate = snap.Stats.UnparsableDate
	stats.UnparsablePoints = snap.Stats.UnparsablePoints
	return stats
}
