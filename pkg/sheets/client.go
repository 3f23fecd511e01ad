// Package sheets is a minimal Google Sheets values API client.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/metrics"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

const (
	// DefaultBaseURL is the Google Sheets API endpoint
	DefaultBaseURL = "https://sheets.googleapis.com"

	// DefaultTimeout is the default request timeout
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize is the maximum response body size (20MB)
	MaxResponseSize = 20 * 1024 * 1024
)

// Config holds Sheets client configuration
type Config struct {
	BaseURL       string
	APIKey        string
	SpreadsheetID string
	Timeout       time.Duration
}

// Client wraps the values API with logging and size limits
type Client struct {
	client *http.Client
	cfg    Config
	logger ectologger.Logger
}

// NewClient creates a new Sheets client
func NewClient(cfg Config, logger ectologger.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		client: &http.Client{Timeout: timeout},
		cfg:    cfg,
		logger: logger,
	}
}

type valueRange struct {
	Range  string  `json:"range,omitempty"`
	Values [][]any `json:"values"`
}

// GetValues fetches a sheet range as a grid of strings.
func (c *Client) GetValues(ctx context.Context, readRange string) (models.Grid, error) {
	ctx, span := tracing.StartSpan(ctx, "sheets.Client.GetValues")
	defer span.End()

	start := time.Now()

	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?key=%s",
		c.cfg.BaseURL, c.cfg.SpreadsheetID, url.PathEscape(readRange), url.QueryEscape(c.cfg.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	var result valueRange
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode values response: %w", err)
	}

	grid := toGrid(result.Values)

	metrics.SheetFetchDuration.WithLabelValues(readRange).Observe(time.Since(start).Seconds())
	c.logger.WithContext(ctx).WithFields(map[string]any{
		"range": readRange,
		"rows":  len(grid),
	}).Debug("Fetched sheet values")

	return grid, nil
}

// AppendRow appends a single row to the bottom of a sheet range.
func (c *Client) AppendRow(ctx context.Context, appendRange string, row []string) error {
	ctx, span := tracing.StartSpan(ctx, "sheets.Client.AppendRow")
	defer span.End()

	values := make([]any, len(row))
	for i, cell := range row {
		values[i] = cell
	}
	payload, err := json.Marshal(valueRange{Values: [][]any{values}})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s:append?valueInputOption=RAW&key=%s",
		c.cfg.BaseURL, c.cfg.SpreadsheetID, url.PathEscape(appendRange), url.QueryEscape(c.cfg.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if _, err := c.do(ctx, req); err != nil {
		return err
	}

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"range": appendRange,
	}).Debug("Appended sheet row")

	return nil
}

func (c *Client) do(ctx context.Context, req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WithContext(ctx).WithError(err).Errorf("Sheets request failed: %s %s", req.Method, req.URL.Path)
		return nil, fmt.Errorf("sheets request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read sheets response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WithContext(ctx).WithFields(map[string]any{
			"status": resp.StatusCode,
			"path":   req.URL.Path,
		}).Error("Sheets API returned an error")
		return nil, fmt.Errorf("sheets api returned status %d", resp.StatusCode)
	}

	return body, nil
}

// toGrid stringifies the loosely typed values payload. Formatted values
// come back as strings, but numbers can appear on unformatted reads.
func toGrid(values [][]any) models.Grid {
	grid := make(models.Grid, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, cell := range row {
			switch v := cell.(type) {
			case string:
				cells[j] = v
			default:
				cells[j] = fmt.Sprint(v)
			}
		}
		grid[i] = cells
	}
	return grid
}
