package resultscheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/okian/cadenas/internal/domain/types"
)

// client is a thin JSON client for the results API.
type client struct {
	http    *http.Client
	baseURL string
}

func newClient(cfg Config) *client {
	return &client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// do sends a request and decodes the body into out when the status is want.
func (c *client) do(ctx context.Context, method, path string, want int, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if resp.StatusCode != want {
		return fmt.Errorf("%w: %s %s returned %d: %s", ErrUnexpectedCode, method, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *client) health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", http.StatusOK, nil)
}

func (c *client) stats(ctx context.Context) (types.Stats, error) {
	var s types.Stats
	err := c.do(ctx, http.MethodGet, "/api/stats", http.StatusOK, &s)
	return s, err
}

type refreshAck struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id"`
}

func (c *client) refresh(ctx context.Context) (string, error) {
	var ack refreshAck
	if err := c.do(ctx, http.MethodPost, "/api/refresh", http.StatusAccepted, &ack); err != nil {
		return "", err
	}
	return ack.RequestID, nil
}

func (c *client) leaderboard(ctx context.Context) ([]types.LeaderboardEntry, error) {
	var rows []types.LeaderboardEntry
	err := c.do(ctx, http.MethodGet, "/api/leaderboard", http.StatusOK, &rows)
	return rows, err
}

func (c *client) athletes(ctx context.Context) ([]string, error) {
	var names []string
	err := c.do(ctx, http.MethodGet, "/api/athletes", http.StatusOK, &names)
	return names, err
}

func (c *client) bonus(ctx context.Context) (types.BonusResponse, error) {
	var b types.BonusResponse
	err := c.do(ctx, http.MethodGet, "/api/bonus", http.StatusOK, &b)
	return b, err
}

func (c *client) athlete(ctx context.Context, name string) (types.AthleteResponse, error) {
	var a types.AthleteResponse
	err := c.do(ctx, http.MethodGet, "/api/athletes/"+url.PathEscape(name), http.StatusOK, &a)
	return a, err
}
