package weather

import "math"

// ApparentTemperature is the Australian Bureau of Meteorology apparent temperature
// (http://www.bom.gov.au/info/thermal_comfort/):
//
//	AT = Ta + 0.33e - 0.70ws - 4.00
//
// with Ta the dry bulb temperature in °C, e the water vapour pressure in hPa from the
// Magnus approximation and ws the wind speed in m/s. It is one smooth expression over
// the whole input domain, so there is no threshold where the result jumps.
func ApparentTemperature(tempC, humidityPct, windKph float64) float64 {
	ws := windKph / 3.6
	e := humidityPct / 100 * 6.105 * math.Exp(17.27*tempC/(237.7+tempC))
	return tempC + 0.33*e - 0.70*ws - 4.00
}

// IndoorApparentTemperature assumes still air.
func IndoorApparentTemperature(tempC, humidityPct float64) float64 {
	return ApparentTemperature(tempC, humidityPct, 0)
}
