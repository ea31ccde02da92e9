package weather

import (
	"context"
	"log/slog"
	"time"

	"github.com/yanqian/weather-station/internal/domain/solar"
	apperrors "github.com/yanqian/weather-station/pkg/errors"
	"github.com/yanqian/weather-station/pkg/util"
)

// Service exposes the dashboard's read endpoints.
type Service interface {
	Past(ctx context.Context, start, end string) ([]EnrichedSample, error)
	Today(ctx context.Context) (TodaySummary, error)
	Monthly(ctx context.Context, start, end string) ([]MonthlyStats, error)
}

// Store fetches aggregated rows from the time-series database.
type Store interface {
	Hourly(ctx context.Context, r TimeRange) ([]HourlySample, error)
	Monthly(ctx context.Context, r TimeRange) ([]MonthlyStats, error)
}

// SolarCalculator resolves sunrise and sunset for the station.
type SolarCalculator interface {
	Events(day time.Time) solar.Events
	Location() *time.Location
}

type service struct {
	store  Store
	sun    SolarCalculator
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the weather domain.
func NewService(store Store, sun SolarCalculator, logger *slog.Logger) Service {
	return &service{
		store:  store,
		sun:    sun,
		logger: logger.With("component", "weather.service"),
		now:    time.Now,
	}
}

func (s *service) Past(ctx context.Context, start, end string) ([]EnrichedSample, error) {
	r, err := ParseTimeRange(start, end)
	if err != nil {
		return nil, err
	}

	samples, err := s.store.Hourly(ctx, r)
	if err != nil {
		return nil, queryFailed(err)
	}
	s.logger.Info("hourly samples fetched", "range", r.String(), "rows", len(samples))

	return Enrich(samples)
}

func (s *service) Today(ctx context.Context) (TodaySummary, error) {
	loc := s.sun.Location()
	now := s.now().In(loc)
	r, err := NewTimeRange(util.StartOfDay(now, loc), now)
	if err != nil {
		return TodaySummary{}, err
	}

	samples, err := s.store.Hourly(ctx, r)
	if err != nil {
		return TodaySummary{}, queryFailed(err)
	}
	s.logger.Info("today samples fetched", "range", r.String(), "rows", len(samples))

	return SummarizeDay(samples, s.sun.Events(now))
}

func (s *service) Monthly(ctx context.Context, start, end string) ([]MonthlyStats, error) {
	r, err := ParseTimeRange(start, end)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.Monthly(ctx, r)
	if err != nil {
		return nil, queryFailed(err)
	}
	s.logger.Info("monthly stats fetched", "range", r.String(), "rows", len(rows))

	return SortMonthly(rows), nil
}

func queryFailed(err error) error {
	if apperrors.IsCode(err, CodeQueryFailed) {
		return err
	}
	return apperrors.Wrap(CodeQueryFailed, "weather store query failed", err)
}
