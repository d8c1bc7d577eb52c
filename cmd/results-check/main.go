package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/cadenas/internal/resultscheck"
	"github.com/okian/cadenas/pkg/logger"
)

func main() {
	var (
		baseURL      = flag.String("url", "http://localhost:9080", "Base URL of the service")
		timeout      = flag.Duration("timeout", resultscheck.DefaultTimeout, "HTTP request timeout")
		waitTimeout  = flag.Duration("wait", resultscheck.DefaultWaitTimeout, "How long to wait for the refresh to complete")
		pollInterval = flag.Duration("poll", resultscheck.DefaultPollInterval, "Stats polling interval while waiting")
		workers      = flag.Int("workers", resultscheck.DefaultWorkers, "Concurrent athlete detail requests")
		skipRefresh  = flag.Bool("no-refresh", false, "Check the current snapshot without requesting a refresh")
		logFile      = flag.String("log", "", "Also write logs to this file")
		verbose      = flag.Bool("verbose", false, "Log every inconsistency")
	)
	flag.Parse()

	var opts []logger.Option
	if *logFile != "" {
		opts = append(opts, logger.WithFile(*logFile, 0, 0))
	}
	if err := logger.Init(opts...); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	report, err := resultscheck.Run(ctx, &resultscheck.Config{
		BaseURL:      *baseURL,
		Timeout:      *timeout,
		WaitTimeout:  *waitTimeout,
		PollInterval: *pollInterval,
		Workers:      *workers,
		SkipRefresh:  *skipRefresh,
		Verbose:      *verbose,
	})
	stop()
	_ = logger.Sync()

	if err != nil {
		_, _ = os.Stderr.WriteString("results check failed: " + err.Error() + "\n")
		if report != nil {
			for _, p := range report.Problems {
				_, _ = os.Stderr.WriteString("  - " + p + "\n")
			}
		}
		os.Exit(1)
	}
}
