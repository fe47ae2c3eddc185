package model

import "time"

// WeatherSnapshot holds observed conditions for a single day.
type WeatherSnapshot struct {
	Date            time.Time
	TemperatureC    float64
	HumidityPct     float64
	PressureHPa     float64
	PrecipitationMm float64
	WindKmh         float64
}

// WeatherForecastPoint is a forecast snapshot offset from today.
// DaysAhead 0 is today; a 7-day forecast covers DaysAhead 0 through 6.
type WeatherForecastPoint struct {
	WeatherSnapshot
	DaysAhead int
}

// Location identifies where weather should be fetched for.
type Location struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}
