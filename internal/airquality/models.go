package airquality

import (
	"math"
	"time"
)

// Category is the simplified PM2.5-only air-quality bucket shown on the
// dashboard. It is not the official multi-pollutant AQI.
type Category string

const (
	CategoryGood          Category = "Good"
	CategoryModerate      Category = "Moderate"
	CategoryUnhealthySG   Category = "Unhealthy for Sensitive Groups"
	CategoryUnhealthy     Category = "Unhealthy"
	CategoryVeryUnhealthy Category = "Very Unhealthy"
	CategoryHazardous     Category = "Hazardous"
	CategoryUnknown       Category = "Unknown"
)

// CategoryForPM25 maps a PM2.5 mass concentration (µg/m³) to its category.
// Breakpoints are inclusive on the upper bound.
func CategoryForPM25(v float64) Category {
	switch {
	case v <= 12.0:
		return CategoryGood
	case v <= 35.4:
		return CategoryModerate
	case v <= 55.4:
		return CategoryUnhealthySG
	case v <= 150.4:
		return CategoryUnhealthy
	case v <= 250.4:
		return CategoryVeryUnhealthy
	default:
		return CategoryHazardous
	}
}

// Reading is one immutable sensor sample. Derived fields (Fahrenheit, the
// AQI category) are computed once at construction and never recomputed.
type Reading struct {
	// TS is the capture time in seconds since the epoch.
	TS       float64 `json:"ts"`
	TempC    float64 `json:"temp_c"`
	TempF    float64 `json:"temp_f"`
	Humidity float64 `json:"humidity"`

	// Particulate mass concentrations in µg/m³, nil when the sensor
	// returned no value for that size class.
	PM1  *int `json:"pm1"`
	PM25 *int `json:"pm25"`
	PM10 *int `json:"pm10"`

	AQICategory Category `json:"aqi_category"`
}

// NewReading builds a Reading from raw sensor values captured at t.
// Temperatures and humidity are rounded to one decimal; Fahrenheit is
// derived as C×9/5+32 and the category solely from PM2.5.
func NewReading(t time.Time, tempC, humidity float64, pm1, pm25, pm10 *int) Reading {
	cat := CategoryUnknown
	if pm25 != nil {
		cat = CategoryForPM25(float64(*pm25))
	}

	return Reading{
		TS:          float64(t.Unix()) + float64(t.Nanosecond())/1e9,
		TempC:       round1(tempC),
		TempF:       round1(tempC*9.0/5.0 + 32.0),
		Humidity:    round1(humidity),
		PM1:         pm1,
		PM25:        pm25,
		PM10:        pm10,
		AQICategory: cat,
	}
}

// Time returns the capture timestamp as a time.Time.
func (r Reading) Time() time.Time {
	sec, frac := math.Modf(r.TS)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
