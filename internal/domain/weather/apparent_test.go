package weather

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApparentTemperatureReference(t *testing.T) {
	require.InDelta(t, 26.21, ApparentTemperature(25, 50, 0), 0.05)
	// 36 km/h is 10 m/s, worth 7 degrees of cooling.
	require.InDelta(t, ApparentTemperature(25, 50, 0)-7, ApparentTemperature(25, 50, 36), 1e-9)
}

func TestApparentTemperatureIsContinuous(t *testing.T) {
	const step = 1e-3
	for temp := -20.0; temp <= 45; temp += 0.5 {
		for _, hum := range []float64{0, 30, 65, 100} {
			for _, wind := range []float64{0, 4.8, 20, 60} {
				at := ApparentTemperature(temp, hum, wind)
				require.False(t, math.IsNaN(at))
				require.Less(t, math.Abs(ApparentTemperature(temp+step, hum, wind)-at), 0.01, "temp=%v hum=%v wind=%v", temp, hum, wind)
				require.Less(t, math.Abs(ApparentTemperature(temp, hum+step, wind)-at), 0.01)
				require.Less(t, math.Abs(ApparentTemperature(temp, hum, wind+step)-at), 0.01)
			}
		}
	}
}

func TestApparentTemperatureMonotonicInHumidityAndWind(t *testing.T) {
	require.Greater(t, ApparentTemperature(30, 80, 10), ApparentTemperature(30, 20, 10))
	require.Less(t, ApparentTemperature(30, 50, 40), ApparentTemperature(30, 50, 5))
}

func TestIndoorApparentTemperatureIsStillAir(t *testing.T) {
	require.Equal(t, ApparentTemperature(21.5, 48, 0), IndoorApparentTemperature(21.5, 48))
}
