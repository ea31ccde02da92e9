package influx

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-station/internal/domain/weather"
	"github.com/yanqian/weather-station/internal/infra/config"
	apperrors "github.com/yanqian/weather-station/pkg/errors"
)

const hourlyCSV = `#datatype,string,long,dateTime:RFC3339,dateTime:RFC3339,dateTime:RFC3339,string,double,double,double,long
#group,false,false,true,true,false,true,false,false,false,false
#default,_result,,,,,,,,,
,result,table,_start,_stop,_time,_measurement,tempc,humidity,totalrainmm,uv
,,0,2024-01-15T00:00:00Z,2024-01-16T00:00:00Z,2024-01-15T01:00:00Z,weather,21.5,60,3.2,2
,,0,2024-01-15T00:00:00Z,2024-01-16T00:00:00Z,2024-01-15T02:00:00Z,weather,22,,3.4,

`

const monthlyCSV = `#datatype,string,long,dateTime:RFC3339,double,double,double,long
#group,false,false,false,false,false,false,false
#default,_result,,,,,,
,result,table,_time,tempc_absolute_max,uv_mean,totalrainmm,raindayscount
,,0,2024-01-01T00:00:00Z,38.5,9.1,21,4
,,0,2024-02-01T00:00:00Z,40.2,8.7,0,0

`

const errorCSV = `#datatype,string,string
#group,true,true
#default,,
,error,reference
,failed to initialize execute state: could not find bucket,897

`

type fakeInflux struct {
	mu      sync.Mutex
	body    string
	status  int
	queries []string
}

func (f *fakeInflux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasSuffix(r.URL.Path, "/ping"):
		w.WriteHeader(http.StatusNoContent)
	case strings.HasSuffix(r.URL.Path, "/query"):
		var req struct {
			Query string `json:"query"`
		}
		payload, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(payload, &req)
		f.mu.Lock()
		f.queries = append(f.queries, req.Query)
		status, body := f.status, f.body
		f.mu.Unlock()
		if status != 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"code":"internal error","message":"boom"}`))
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		_, _ = io.WriteString(w, body)
	default:
		http.NotFound(w, r)
	}
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	cfg := &config.Config{Store: config.StoreConfig{
		URL:          url,
		Token:        "token",
		Org:          "home",
		Bucket:       "station",
		QueryTimeout: 2 * time.Second,
	}}
	client, err := NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client
}

func TestClientHourly(t *testing.T) {
	fake := &fakeInflux{body: hourlyCSV}
	srv := httptest.NewServer(fake)
	defer srv.Close()
	client := newTestClient(t, srv.URL)

	r := mustRange(t, "2024-01-15T00:00:00Z", "2024-01-16T00:00:00Z")
	rows, err := client.Hourly(context.Background(), r)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, time.Date(2024, 1, 15, 1, 0, 0, 0, time.UTC), rows[0].Time)
	require.Equal(t, 21.5, rows[0].TempC)
	require.Equal(t, 60.0, rows[0].Humidity)
	require.Equal(t, 2.0, rows[0].UV)
	require.Zero(t, rows[1].Humidity)
	require.Equal(t, 3.4, rows[1].TotalRainMm)

	require.Len(t, fake.queries, 1)
	want, err := BuildHourlyRangeQuery("station", r)
	require.NoError(t, err)
	require.Equal(t, want, fake.queries[0])
}

func TestClientMonthly(t *testing.T) {
	srv := httptest.NewServer(&fakeInflux{body: monthlyCSV})
	defer srv.Close()
	client := newTestClient(t, srv.URL)

	rows, err := client.Monthly(context.Background(), mustRange(t, "2024-01-01T00:00:00Z", "2024-03-01T00:00:00Z"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, 38.5, rows[0].TempCAbsoluteMax)
	require.Equal(t, 9.1, rows[0].UVMean)
	require.Equal(t, 21.0, rows[0].TotalRainMm)
	require.Equal(t, 4, rows[0].RainyDays)
	require.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), rows[1].Time)
}

func TestClientEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(&fakeInflux{})
	defer srv.Close()
	client := newTestClient(t, srv.URL)

	rows, err := client.Hourly(context.Background(), mustRange(t, "2024-01-15T00:00:00Z", "2024-01-16T00:00:00Z"))
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestClientServerErrorIsQueryFailed(t *testing.T) {
	srv := httptest.NewServer(&fakeInflux{status: http.StatusInternalServerError})
	defer srv.Close()
	client := newTestClient(t, srv.URL)

	_, err := client.Hourly(context.Background(), mustRange(t, "2024-01-15T00:00:00Z", "2024-01-16T00:00:00Z"))
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, weather.CodeQueryFailed))
}

func TestClientFluxErrorIsQueryFailed(t *testing.T) {
	srv := httptest.NewServer(&fakeInflux{body: errorCSV})
	defer srv.Close()
	client := newTestClient(t, srv.URL)

	_, err := client.Monthly(context.Background(), mustRange(t, "2024-01-01T00:00:00Z", "2024-03-01T00:00:00Z"))
	require.True(t, apperrors.IsCode(err, weather.CodeQueryFailed))
	require.ErrorContains(t, err, "could not find bucket")
}

func TestClientPing(t *testing.T) {
	srv := httptest.NewServer(&fakeInflux{})
	client := newTestClient(t, srv.URL)
	require.NoError(t, client.Ping(context.Background()))

	srv.Close()
	err := client.Ping(context.Background())
	require.True(t, apperrors.IsCode(err, weather.CodeQueryFailed))
}

func TestNewClientRejectsBucket(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{URL: "http://localhost:8086", Token: "t", Org: "o", Bucket: "bad\tname", QueryTimeout: time.Second}}
	_, err := NewClient(cfg, slog.Default())
	require.ErrorIs(t, err, ErrInvalidBucket)
}
