// Package sheets reads competition rows from a Google Sheets range.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/okian/cadenas/pkg/logger"
)

const (
	// DefaultRange is the data range of the results tab, header row excluded.
	DefaultRange = "cadenas1!A2:O"

	defaultTimeout = 10 * time.Second

	// sampleRows is how many leading rows are logged at debug level.
	sampleRows = 3
)

// Fetcher returns the raw rows of the results sheet.
type Fetcher interface {
	Fetch(ctx context.Context) ([][]string, error)
}

// Client is a Fetcher backed by the Sheets v4 API.
type Client struct {
	spreadsheetID string
	rng           string
	endpoint      string
	httpClient    *http.Client
	timeout       time.Duration
	minInterval   time.Duration

	svc     *gsheets.Service
	limiter *rate.Limiter
	tracer  trace.Tracer
	logger  logger.Logger
}

// New builds a Client for one spreadsheet. Both apiKey and spreadsheetID
// must be non-empty.
func New(ctx context.Context, apiKey, spreadsheetID string, opts ...Option) (*Client, error) {
	if apiKey == "" || spreadsheetID == "" {
		return nil, ErrMissingCredentials
	}

	c := &Client{
		spreadsheetID: spreadsheetID,
		rng:           DefaultRange,
		timeout:       defaultTimeout,
		tracer:        otel.Tracer("sheets-fetcher"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("sheets")
	}

	limit := rate.Inf
	if c.minInterval > 0 {
		limit = rate.Every(c.minInterval)
	}
	c.limiter = rate.NewLimiter(limit, 1)

	clientOpts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if c.endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(c.endpoint))
	}
	if c.httpClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(c.httpClient))
	}
	svc, err := gsheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: create service: %w", ErrFetch, err)
	}
	c.svc = svc
	return c, nil
}

// Fetch reads the configured range and returns every cell as a string.
// Trailing empty cells are omitted by the API, so rows may be shorter
// than the range width.
func (c *Client) Fetch(ctx context.Context) ([][]string, error) {
	ctx, span := c.tracer.Start(ctx, "sheets.Fetch",
		trace.WithAttributes(
			attribute.String("sheets.spreadsheet_id", c.spreadsheetID),
			attribute.String("sheets.range", c.rng),
		),
	)
	defer span.End()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, c.fail(span, fmt.Errorf("%w: rate limit: %w", ErrFetch, err))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.rng).Context(ctx).Do()
	if err != nil {
		return nil, c.fail(span, classify(err))
	}
	if len(resp.Values) == 0 {
		return nil, c.fail(span, ErrEmptySheet)
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		rows[i] = make([]string, len(row))
		for j, v := range row {
			rows[i][j] = cellString(v)
		}
	}
	span.SetAttributes(attribute.Int("sheets.rows", len(rows)))

	c.logger.Debug(ctx, "sheet fetched",
		logger.String("range", resp.Range),
		logger.Int("rows", len(rows)),
		logger.Any("first_rows", rows[:min(sampleRows, len(rows))]),
	)
	return rows, nil
}

func (c *Client) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// classify maps API status codes onto the package errors.
func classify(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusForbidden:
			return fmt.Errorf("%w (%s)", ErrAccessDenied, gerr.Message)
		case http.StatusNotFound:
			return fmt.Errorf("%w (%s)", ErrSheetNotFound, gerr.Message)
		case http.StatusBadRequest:
			return fmt.Errorf("%w (%s)", ErrBadRange, gerr.Message)
		default:
			return fmt.Errorf("%w: HTTP %d: %s", ErrFetch, gerr.Code, gerr.Message)
		}
	}
	return fmt.Errorf("%w: %w", ErrFetch, err)
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
