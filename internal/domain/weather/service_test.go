package weather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-station/internal/domain/solar"
	apperrors "github.com/yanqian/weather-station/pkg/errors"
)

type stubStore struct {
	t       *testing.T
	hourly  []HourlySample
	monthly []MonthlyStats
	err     error
	ranges  []TimeRange
	refuse  bool
}

func (s *stubStore) Hourly(_ context.Context, r TimeRange) ([]HourlySample, error) {
	if s.refuse {
		s.t.Fatalf("store must not be queried, got range %s", r)
	}
	s.ranges = append(s.ranges, r)
	return s.hourly, s.err
}

func (s *stubStore) Monthly(_ context.Context, r TimeRange) ([]MonthlyStats, error) {
	if s.refuse {
		s.t.Fatalf("store must not be queried, got range %s", r)
	}
	s.ranges = append(s.ranges, r)
	return s.monthly, s.err
}

func newTestService(t *testing.T, store Store, now time.Time) *service {
	t.Helper()
	lookup, err := solar.NewLookup(solar.Coordinates{Latitude: -31.95, Longitude: 115.86}, time.FixedZone("AWST", 8*3600))
	require.NoError(t, err)
	svc := NewService(store, lookup, slog.New(slog.NewTextHandler(io.Discard, nil))).(*service)
	svc.now = func() time.Time { return now }
	return svc
}

func TestServicePast(t *testing.T) {
	store := &stubStore{t: t, hourly: hourly(5, 5, 3, 10)}
	svc := newTestService(t, store, time.Now())

	rows, err := svc.Past(context.Background(), "2024-01-15T00:00:00Z", "2024-01-16T00:00:00Z")
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 7}, rainOf(rows))
	require.Len(t, store.ranges, 1)
	require.Equal(t, "2024-01-15T00:00:00Z/2024-01-16T00:00:00Z", store.ranges[0].String())
}

func TestServiceRejectsInvalidRangeBeforeQuery(t *testing.T) {
	svc := newTestService(t, &stubStore{t: t, refuse: true}, time.Now())

	_, err := svc.Past(context.Background(), "2024-01-16T00:00:00Z", "2024-01-15T00:00:00Z")
	require.True(t, apperrors.IsCode(err, CodeInvalidRange))

	_, err = svc.Monthly(context.Background(), "bogus", "2024-01-15T00:00:00Z")
	require.True(t, apperrors.IsCode(err, CodeInvalidRange))
}

func TestServiceWrapsStoreFailure(t *testing.T) {
	cause := errors.New("connection refused")
	svc := newTestService(t, &stubStore{t: t, err: cause}, time.Now())

	_, err := svc.Past(context.Background(), "2024-01-15T00:00:00Z", "2024-01-16T00:00:00Z")
	require.True(t, apperrors.IsCode(err, CodeQueryFailed))
	require.ErrorIs(t, err, cause)
}

func TestServiceKeepsStoreAppError(t *testing.T) {
	storeErr := apperrors.Wrap(CodeQueryFailed, "flux error", nil)
	svc := newTestService(t, &stubStore{t: t, err: storeErr}, time.Now())

	_, err := svc.Monthly(context.Background(), "2024-01-01T00:00:00Z", "2024-06-01T00:00:00Z")
	require.Same(t, storeErr, err)
}

func TestServicePastEmptyResult(t *testing.T) {
	svc := newTestService(t, &stubStore{t: t}, time.Now())

	_, err := svc.Past(context.Background(), "2024-01-15T00:00:00Z", "2024-01-16T00:00:00Z")
	require.True(t, apperrors.IsCode(err, CodeEmptyResult))
}

func TestServiceToday(t *testing.T) {
	// 09:30 AWST on 15 Jan is 01:30 UTC.
	now := time.Date(2024, 1, 15, 1, 30, 0, 0, time.UTC)
	store := &stubStore{t: t, hourly: hourly(2, 2.5)}
	svc := newTestService(t, store, now)

	summary, err := svc.Today(context.Background())
	require.NoError(t, err)
	require.Len(t, store.ranges, 1)
	require.True(t, store.ranges[0].Start.Equal(time.Date(2024, 1, 14, 16, 0, 0, 0, time.UTC)))
	require.True(t, store.ranges[0].End.Equal(now))
	require.InDelta(t, 0.5, summary.TotalRainMm, 1e-9)
	require.Contains(t, summary.Sunrise, "2024-01-15T05:")
	require.Contains(t, summary.Sunset, "2024-01-15T19:")
}

func TestServiceMonthlySorted(t *testing.T) {
	feb := MonthlyStats{Time: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}
	jan := MonthlyStats{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	svc := newTestService(t, &stubStore{t: t, monthly: []MonthlyStats{feb, jan}}, time.Now())

	rows, err := svc.Monthly(context.Background(), "2024-01-01T00:00:00Z", "2024-03-01T00:00:00Z")
	require.NoError(t, err)
	require.Equal(t, []MonthlyStats{jan, feb}, rows)
}
