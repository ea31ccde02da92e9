package weather

import (
	"math"
	"sort"

	"github.com/yanqian/weather-station/internal/domain/solar"
	apperrors "github.com/yanqian/weather-station/pkg/errors"
)

// Enrich turns hourly samples into per-interval rainfall plus apparent temperatures.
// Readings of the cumulative rain counter are clamped to >= 0 before differencing and
// each difference is clamped to >= 0, so a counter reset shows up as a dry hour. The
// first sample only serves as the baseline and is not returned.
func Enrich(samples []HourlySample) ([]EnrichedSample, error) {
	if len(samples) == 0 {
		return nil, apperrors.Wrap(CodeEmptyResult, "no samples in range", nil)
	}
	ordered := sortedByTime(samples)

	out := make([]EnrichedSample, 0, len(ordered)-1)
	prev := math.Max(ordered[0].TotalRainMm, 0)
	for _, s := range ordered[1:] {
		next := math.Max(s.TotalRainMm, 0)
		delta := math.Max(next-prev, 0)
		prev = next

		enriched := EnrichedSample{
			HourlySample: s,
			FeelsLike:    ApparentTemperature(s.TempC, s.Humidity, s.WindSpeedKph),
			FeelsLikeIn:  IndoorApparentTemperature(s.TempInC, s.HumidityIn),
		}
		enriched.TotalRainMm = delta
		out = append(out, enriched)
	}
	return out, nil
}

// Extrema is the running min/max state folded over a day of samples.
type Extrema struct {
	MinTemp   float64
	MaxTemp   float64
	MinTempIn float64
	MaxTempIn float64
	MaxUV     float64
}

// NewExtrema starts from sentinels any real reading replaces.
func NewExtrema() Extrema {
	return Extrema{
		MinTemp:   math.Inf(1),
		MaxTemp:   math.Inf(-1),
		MinTempIn: math.Inf(1),
		MaxTempIn: math.Inf(-1),
		MaxUV:     math.Inf(-1),
	}
}

// Observe folds one sample in. Min and max are commutative, so order does not matter.
func (e Extrema) Observe(s HourlySample) Extrema {
	e.MinTemp = math.Min(e.MinTemp, s.TempC)
	e.MaxTemp = math.Max(e.MaxTemp, s.TempC)
	e.MinTempIn = math.Min(e.MinTempIn, s.TempInC)
	e.MaxTempIn = math.Max(e.MaxTempIn, s.TempInC)
	e.MaxUV = math.Max(e.MaxUV, s.UV)
	return e
}

// SummarizeDay builds the today card from samples since local midnight. Rain is the plain
// difference of the counter between the last and first sample.
func SummarizeDay(samples []HourlySample, events solar.Events) (TodaySummary, error) {
	if len(samples) == 0 {
		return TodaySummary{}, apperrors.Wrap(CodeEmptyResult, "no samples recorded today", nil)
	}
	ordered := sortedByTime(samples)
	first, last := ordered[0], ordered[len(ordered)-1]

	ext := NewExtrema()
	for _, s := range ordered {
		ext = ext.Observe(s)
	}

	summary := TodaySummary{
		HourlySample: last,
		FeelsLike:    ApparentTemperature(last.TempC, last.Humidity, last.WindSpeedKph),
		FeelsLikeIn:  IndoorApparentTemperature(last.TempInC, last.HumidityIn),
		MinTemp:      ext.MinTemp,
		MaxTemp:      ext.MaxTemp,
		MinTempIn:    ext.MinTempIn,
		MaxTempIn:    ext.MaxTempIn,
		MaxUV:        ext.MaxUV,
		Sunrise:      events.Sunrise,
		Sunset:       events.Sunset,
	}
	summary.TotalRainMm = last.TotalRainMm - first.TotalRainMm
	return summary, nil
}

// SortMonthly orders monthly rows by time ascending without touching their values.
func SortMonthly(rows []MonthlyStats) []MonthlyStats {
	out := make([]MonthlyStats, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out
}

func sortedByTime(samples []HourlySample) []HourlySample {
	out := make([]HourlySample, len(samples))
	copy(out, samples)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out
}
