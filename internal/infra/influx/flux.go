package influx

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/yanqian/weather-station/internal/domain/weather"
)

const (
	measurement     = "weather"
	maxBucketLength = 255
)

var (
	hourlyFields  = []string{"tempc", "tempinc", "humidity", "humidityin", "windspeedkph", "windgustkph", "winddir", "rainratemm", "totalrainmm", "uv", "solarradiation"}
	extremeFields = []string{"tempc", "tempinc", "humidity", "humidityin", "uv", "solarradiation"}
	meanFields    = []string{"tempc", "tempinc", "humidity", "humidityin", "solarradiation"}

	// Columns that would otherwise collide or split tables across the monthly joins.
	droppedColumns = []string{"_model", "_field", "_start", "_stop", "_value", "_measurement", "submitted_by", "model"}
)

// BuildHourlyRangeQuery renders the Flux program returning 1h mean windows of every
// dashboard field, pivoted to one row per window.
func BuildHourlyRangeQuery(bucket string, r weather.TimeRange) (string, error) {
	src, err := newSource(bucket, r)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	src.write(&b, hourlyFields)
	b.WriteString("  |> aggregateWindow(every: 1h, fn: mean, createEmpty: false)\n")
	writePivot(&b)
	b.WriteString("  |> sort(columns: [\"_time\"])\n")
	return b.String(), nil
}

// BuildMonthlyStatsQuery renders the Flux program producing one row per calendar month:
// absolute and mean-of-daily extremes, monthly means, rainfall total and rainy day count.
// Sub-pipelines are inner joined on _time, so a month missing from any of them is dropped.
func BuildMonthlyStatsQuery(bucket string, r weather.TimeRange) (string, error) {
	src, err := newSource(bucket, r)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	src.monthly(&b, "maximums", extremeFields, "max", "")
	src.monthly(&b, "mean_maximums", extremeFields, "mean", "max")
	src.monthly(&b, "averages", meanFields, "mean", "")
	src.monthly(&b, "mean_minimums", meanFields, "mean", "min")
	src.monthly(&b, "minimums", meanFields, "min", "")

	b.WriteString("rainy_days = ")
	src.write(&b, []string{"totalrainmm"})
	b.WriteString(`  |> aggregateWindow(every: 1d, fn: last, timeSrc: "_start")
  |> map(fn: (r) => ({r with _value: if exists r._value then float(v: r._value) else 0.0}))
  |> difference(nonNegative: true, initialZero: true)
  |> fill(value: 0.0)

total_rain = rainy_days
  |> aggregateWindow(every: 1mo, fn: sum, createEmpty: false, timeSrc: "_start")
  |> rename(columns: {_value: "totalrainmm"})
`)
	writeDrop(&b)
	b.WriteString(`
rainy_days_count = rainy_days
  |> map(fn: (r) => ({r with _value: if r._value > 0.0 then 1 else 0}))
  |> aggregateWindow(every: 1mo, fn: sum, createEmpty: false, timeSrc: "_start")
  |> rename(columns: {_value: "raindayscount"})
`)
	writeDrop(&b)
	b.WriteString("\n")

	writeJoin(&b, "rain", "left", "total_rain", "right", "rainy_days_count")
	writeJoin(&b, "max_mmax", "absolute", "maximums", "mean", "mean_maximums")
	writeJoin(&b, "min_mmin", "absolute", "minimums", "mean", "mean_minimums")
	writeJoin(&b, "min_max", "min", "min_mmin", "max", "max_mmax")
	writeJoin(&b, "max_and_avgs", "abs", "min_max", "avg", "averages")
	writeJoin(&b, "all_stats", "left", "max_and_avgs", "right", "rain")

	b.WriteString("all_stats\n  |> sort(columns: [\"_time\"])\n")
	return b.String(), nil
}

type source struct {
	bucket string
	start  string
	stop   string
}

func newSource(bucket string, r weather.TimeRange) (source, error) {
	if err := validateBucket(bucket); err != nil {
		return source{}, err
	}
	// Re-validate so a zero or inverted range never reaches the database.
	if _, err := weather.NewTimeRange(r.Start, r.End); err != nil {
		return source{}, err
	}
	return source{
		bucket: fluxString(bucket),
		start:  fluxString(weather.FormatInstant(r.Start)),
		stop:   fluxString(weather.FormatInstant(r.End)),
	}, nil
}

func (s source) write(b *strings.Builder, fields []string) {
	fmt.Fprintf(b, "from(bucket: %s)\n", s.bucket)
	fmt.Fprintf(b, "  |> range(start: time(v: %s), stop: time(v: %s))\n", s.start, s.stop)
	fmt.Fprintf(b, "  |> filter(fn: (r) => r._measurement == %s)\n", fluxString(measurement))
	clauses := make([]string, len(fields))
	for i, f := range fields {
		clauses[i] = "r._field == " + fluxString(f)
	}
	fmt.Fprintf(b, "  |> filter(fn: (r) => %s)\n", strings.Join(clauses, " or "))
}

// monthly writes one named sub-pipeline. A non-empty daily function first reduces each
// day, and fn then aggregates those daily values per month.
func (s source) monthly(b *strings.Builder, name string, fields []string, fn, daily string) {
	b.WriteString(name + " = ")
	s.write(b, fields)
	if daily != "" {
		fmt.Fprintf(b, "  |> aggregateWindow(every: 1d, fn: %s, createEmpty: false, timeSrc: \"_start\")\n", daily)
	}
	fmt.Fprintf(b, "  |> aggregateWindow(every: 1mo, fn: %s, createEmpty: false, timeSrc: \"_start\")\n", fn)
	writePivot(b)
	b.WriteString("  |> sort(columns: [\"_time\"])\n")
	writeDrop(b)
	b.WriteString("\n")
}

func writePivot(b *strings.Builder) {
	b.WriteString("  |> pivot(rowKey: [\"_time\"], columnKey: [\"_field\"], valueColumn: \"_value\")\n")
}

func writeDrop(b *strings.Builder) {
	cols := make([]string, len(droppedColumns))
	for i, c := range droppedColumns {
		cols[i] = fluxString(c)
	}
	fmt.Fprintf(b, "  |> drop(columns: [%s])\n", strings.Join(cols, ", "))
}

func writeJoin(b *strings.Builder, name, leftKey, left, rightKey, right string) {
	fmt.Fprintf(b, "%s = join(\n  tables: {%s: %s, %s: %s},\n  on: [\"_time\"],\n  method: \"inner\"\n)\n\n", name, leftKey, left, rightKey, right)
}

// ErrInvalidBucket reports a bucket name that cannot be a real InfluxDB bucket.
var ErrInvalidBucket = errors.New("invalid bucket name")

func validateBucket(bucket string) error {
	if bucket == "" {
		return fmt.Errorf("%w: empty", ErrInvalidBucket)
	}
	if len(bucket) > maxBucketLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidBucket, maxBucketLength)
	}
	for _, r := range bucket {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: contains control characters", ErrInvalidBucket)
		}
	}
	return nil
}

// fluxString renders s as a double quoted Flux string literal. Backslash, quote and the
// interpolation opener are escaped so the value can never leave the literal.
func fluxString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\' || c == '"':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '$' && i+1 < len(s) && s[i+1] == '{':
			b.WriteString(`\$`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
