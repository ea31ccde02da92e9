package weather

import "time"

// Error codes surfaced by the weather domain.
const (
	CodeInvalidRange = "invalid_range"
	CodeQueryFailed  = "query_failed"
	CodeEmptyResult  = "empty_result"
)

// HourlySample is one pivoted 1-hour mean window as delivered by the store.
// TotalRainMm is the station's cumulative rain counter.
type HourlySample struct {
	Time           time.Time `json:"time"`
	TempC          float64   `json:"tempc"`
	TempInC        float64   `json:"tempinc"`
	Humidity       float64   `json:"humidity"`
	HumidityIn     float64   `json:"humidityin"`
	WindSpeedKph   float64   `json:"windspeedkph"`
	WindGustKph    float64   `json:"windgustkph"`
	WindDir        float64   `json:"winddir"`
	RainRateMm     float64   `json:"rainratemm"`
	TotalRainMm    float64   `json:"totalrainmm"`
	UV             float64   `json:"uv"`
	SolarRadiation float64   `json:"solarradiation"`
}

// EnrichedSample is an HourlySample whose TotalRainMm holds the rain that fell since the
// previous sample, plus apparent temperatures.
type EnrichedSample struct {
	HourlySample
	FeelsLike   float64 `json:"feelslike"`
	FeelsLikeIn float64 `json:"feelslikein"`
}

// TodaySummary is the dashboard's current-conditions card.
type TodaySummary struct {
	HourlySample
	FeelsLike   float64 `json:"feelslike"`
	FeelsLikeIn float64 `json:"feelslikein"`
	MinTemp     float64 `json:"mintemp"`
	MaxTemp     float64 `json:"maxtemp"`
	MinTempIn   float64 `json:"mintempin"`
	MaxTempIn   float64 `json:"maxtempin"`
	MaxUV       float64 `json:"maxuv"`
	Sunrise     string  `json:"sunrise"`
	Sunset      string  `json:"sunset"`
}

// MonthlyStats is one row of the monthly join pipeline. Field names mirror the columns
// the store emits after the join suffixes are applied.
type MonthlyStats struct {
	Time time.Time `json:"time"`

	Humidity            float64 `json:"humidity"`
	HumidityAbsoluteMax float64 `json:"humidity_absolute_max"`
	HumidityAbsoluteMin float64 `json:"humidity_absolute_min"`
	HumidityMeanMax     float64 `json:"humidity_mean_max"`
	HumidityMeanMin     float64 `json:"humidity_mean_min"`

	HumidityIn            float64 `json:"humidityin"`
	HumidityInAbsoluteMax float64 `json:"humidityin_absolute_max"`
	HumidityInAbsoluteMin float64 `json:"humidityin_absolute_min"`
	HumidityInMeanMax     float64 `json:"humidityin_mean_max"`
	HumidityInMeanMin     float64 `json:"humidityin_mean_min"`

	SolarRadiation            float64 `json:"solarradiation"`
	SolarRadiationAbsoluteMax float64 `json:"solarradiation_absolute_max"`
	SolarRadiationAbsoluteMin float64 `json:"solarradiation_absolute_min"`
	SolarRadiationMeanMax     float64 `json:"solarradiation_mean_max"`
	SolarRadiationMeanMin     float64 `json:"solarradiation_mean_min"`

	TempC            float64 `json:"tempc"`
	TempCAbsoluteMax float64 `json:"tempc_absolute_max"`
	TempCAbsoluteMin float64 `json:"tempc_absolute_min"`
	TempCMeanMax     float64 `json:"tempc_mean_max"`
	TempCMeanMin     float64 `json:"tempc_mean_min"`

	TempInC            float64 `json:"tempinc"`
	TempInCAbsoluteMax float64 `json:"tempinc_absolute_max"`
	TempInCAbsoluteMin float64 `json:"tempinc_absolute_min"`
	TempInCMeanMax     float64 `json:"tempinc_mean_max"`
	TempInCMeanMin     float64 `json:"tempinc_mean_min"`

	TotalRainMm   float64 `json:"totalrainmm"`
	RainyDays     int     `json:"raindayscount"`
	UVAbsoluteMax float64 `json:"uv_absolute"`
	UVMean        float64 `json:"uv_mean"`
}
