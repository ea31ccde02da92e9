package influx

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/yanqian/weather-station/internal/domain/weather"
	"github.com/yanqian/weather-station/internal/infra/config"
	apperrors "github.com/yanqian/weather-station/pkg/errors"
)

type queryRunner interface {
	Query(ctx context.Context, query string) (*api.QueryTableResult, error)
}

// Client reads aggregated weather rows from an InfluxDB v2 bucket. It is safe for
// concurrent use.
type Client struct {
	client  influxdb2.Client
	queries queryRunner
	bucket  string
	timeout time.Duration
	logger  *slog.Logger
}

// NewClient builds a client for the configured store. No request is made until the first
// query or ping.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if err := validateBucket(cfg.Store.Bucket); err != nil {
		return nil, err
	}
	opts := influxdb2.DefaultOptions().
		SetHTTPRequestTimeout(uint(math.Max(1, math.Ceil(cfg.Store.QueryTimeout.Seconds()))))
	client := influxdb2.NewClientWithOptions(cfg.Store.URL, cfg.Store.Token, opts)

	return &Client{
		client:  client,
		queries: client.QueryAPI(cfg.Store.Org),
		bucket:  cfg.Store.Bucket,
		timeout: cfg.Store.QueryTimeout,
		logger:  logger.With("component", "influx.client"),
	}, nil
}

// Hourly returns 1h mean windows for r in ascending time order.
func (c *Client) Hourly(ctx context.Context, r weather.TimeRange) ([]weather.HourlySample, error) {
	flux, err := BuildHourlyRangeQuery(c.bucket, r)
	if err != nil {
		return nil, err
	}
	return runQuery[weather.HourlySample](ctx, c, "hourly", flux)
}

// Monthly returns one statistics row per calendar month touched by r.
func (c *Client) Monthly(ctx context.Context, r weather.TimeRange) ([]weather.MonthlyStats, error) {
	flux, err := BuildMonthlyStatsQuery(c.bucket, r)
	if err != nil {
		return nil, err
	}
	return runQuery[weather.MonthlyStats](ctx, c, "monthly", flux)
}

// Ping reports whether the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := c.client.Ping(ctx); err != nil {
		return apperrors.Wrap(weather.CodeQueryFailed, "influx ping failed", err)
	}
	return nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.client.Close()
}

func runQuery[T any](ctx context.Context, c *Client, name, flux string) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	result, err := c.queries.Query(ctx, flux)
	if err != nil {
		c.logger.Error("flux query failed", "query", name, "error", err)
		return nil, apperrors.Wrap(weather.CodeQueryFailed, fmt.Sprintf("%s query failed", name), err)
	}
	defer func() { _ = result.Close() }()

	rows := make([]T, 0)
	for result.Next() {
		var row T
		if err := decodeRecord(result.Record().Values(), &row); err != nil {
			return nil, apperrors.Wrap(weather.CodeQueryFailed, fmt.Sprintf("decode %s row", name), err)
		}
		rows = append(rows, row)
	}
	if err := result.Err(); err != nil {
		c.logger.Error("flux result failed", "query", name, "error", err)
		return nil, apperrors.Wrap(weather.CodeQueryFailed, fmt.Sprintf("%s query failed", name), err)
	}

	c.logger.Debug("flux query completed", "query", name, "rows", len(rows), "elapsed", time.Since(start))
	return rows, nil
}
