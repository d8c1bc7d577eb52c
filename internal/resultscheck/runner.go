package resultscheck

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/cadenas/internal/domain/types"
	"github.com/okian/cadenas/pkg/logger"
)

// Run executes a complete check: health, optional refresh, then every
// cross-view consistency check. Inconsistencies are collected in the
// report and also returned as ErrInconsistent.
func Run(ctx context.Context, config *Config) (*Report, error) {
	cfg := config.withDefaults()
	log := logger.Get().Named("resultscheck")
	c := newClient(cfg)
	start := time.Now()
	report := &Report{}

	log.Info(ctx, "starting results check",
		logger.String("baseURL", cfg.BaseURL),
		logger.Duration("timeout", cfg.Timeout),
		logger.Int("workers", cfg.Workers),
		logger.Bool("skipRefresh", cfg.SkipRefresh))

	// Step 1: service health
	if err := c.health(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}

	// Step 2: refresh and wait for it to land
	if !cfg.SkipRefresh {
		id, err := c.refresh(ctx)
		if err != nil {
			return nil, fmt.Errorf("request refresh: %w", err)
		}
		report.RefreshRequestID = id
		log.Info(ctx, "refresh requested", logger.String("request_id", id))
		if err := waitForRefresh(ctx, c, cfg, id); err != nil {
			return nil, err
		}
	}

	stats, err := c.stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("read stats: %w", err)
	}
	report.SnapshotID = stats.SnapshotID
	report.Records = stats.Records

	// Step 3: read the views
	rows, err := c.leaderboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	names, err := c.athletes(ctx)
	if err != nil {
		return nil, fmt.Errorf("read athletes: %w", err)
	}
	breakdown, err := c.bonus(ctx)
	if err != nil {
		return nil, fmt.Errorf("read bonus breakdown: %w", err)
	}
	report.Athletes = len(rows)

	details, err := fetchDetails(ctx, c, cfg.Workers, rows)
	if err != nil {
		return nil, fmt.Errorf("read athlete details: %w", err)
	}
	report.AthletesChecked = len(details)

	// Step 4: verify
	report.Problems = append(report.Problems, verifyLeaderboard(rows)...)
	report.Problems = append(report.Problems, verifyAthleteList(names, rows)...)
	report.Problems = append(report.Problems, verifyBonusTotals(breakdown, rows)...)
	report.Problems = append(report.Problems, verifyAthleteDetails(details, rows)...)
	report.Duration = time.Since(start)

	if cfg.Verbose {
		for _, p := range report.Problems {
			log.Warn(ctx, "inconsistency", logger.String("problem", p))
		}
	}
	log.Info(ctx, "results check finished",
		logger.String("snapshot_id", report.SnapshotID),
		logger.Int("records", report.Records),
		logger.Int("athletes", report.Athletes),
		logger.Int("athletesChecked", report.AthletesChecked),
		logger.Int("problems", len(report.Problems)),
		logger.Duration("duration", report.Duration))

	if !report.OK() {
		return report, fmt.Errorf("%w: %d problem(s)", ErrInconsistent, len(report.Problems))
	}
	return report, nil
}

// waitForRefresh polls stats until the refresh with the given id is the
// latest outcome.
func waitForRefresh(ctx context.Context, c *client, cfg Config, id string) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.WaitTimeout)
	defer cancel()
	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	for {
		stats, err := c.stats(ctx)
		if err == nil && stats.LastRefresh != nil && stats.LastRefresh.RequestID == id {
			if stats.LastRefresh.Error != "" {
				return fmt.Errorf("%w: %s", ErrRefreshFailed, stats.LastRefresh.Error)
			}
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %s", ErrRefreshTimeout, id)
		case <-ticker.C:
		}
	}
}

// fetchDetails loads every named athlete's detail with a bounded pool.
// The unnamed athlete has no detail route and is skipped.
func fetchDetails(ctx context.Context, c *client, workers int, rows []types.LeaderboardEntry) ([]types.AthleteResponse, error) {
	out := make([]types.AthleteResponse, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, row := range rows {
		if row.Athlete == "" {
			continue
		}
		g.Go(func() error {
			d, err := c.athlete(gctx, row.Athlete)
			if err != nil {
				return err
			}
			out[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err //nolint:wrapcheck // wrapped by caller
	}

	details := make([]types.AthleteResponse, 0, len(out))
	for i, d := range out {
		if rows[i].Athlete != "" {
			details = append(details, d)
		}
	}
	return details, nil
}
