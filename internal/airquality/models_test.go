package airquality

import (
	"testing"
	"time"
)

func TestCategoryForPM25Breakpoints(t *testing.T) {
	cases := []struct {
		pm25 float64
		want Category
	}{
		{0.0, CategoryGood},
		{12.0, CategoryGood},
		{12.1, CategoryModerate},
		{35.4, CategoryModerate},
		{35.5, CategoryUnhealthySG},
		{55.4, CategoryUnhealthySG},
		{55.5, CategoryUnhealthy},
		{150.4, CategoryUnhealthy},
		{150.5, CategoryVeryUnhealthy},
		{250.4, CategoryVeryUnhealthy},
		{250.5, CategoryHazardous},
		{999.0, CategoryHazardous},
	}

	for _, tc := range cases {
		if got := CategoryForPM25(tc.pm25); got != tc.want {
			t.Errorf("CategoryForPM25(%v): got %q, want %q", tc.pm25, got, tc.want)
		}
	}
}

func TestNewReadingDerivation(t *testing.T) {
	pm1, pm25, pm10 := 3, 10, 12
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)

	r := NewReading(now, 22.0, 45.0, &pm1, &pm25, &pm10)

	if r.TempF != 71.6 {
		t.Errorf("TempF: got %v, want 71.6", r.TempF)
	}
	if r.Humidity != 45.0 {
		t.Errorf("Humidity: got %v, want 45.0", r.Humidity)
	}
	if *r.PM25 != 10 {
		t.Errorf("PM25: got %d, want 10", *r.PM25)
	}
	if r.AQICategory != CategoryGood {
		t.Errorf("AQICategory: got %q, want %q", r.AQICategory, CategoryGood)
	}
}

func TestNewReadingNoPMIsUnknown(t *testing.T) {
	r := NewReading(time.Now(), 21.3, 50.0, nil, nil, nil)

	if r.AQICategory != CategoryUnknown {
		t.Errorf("AQICategory: got %q, want %q", r.AQICategory, CategoryUnknown)
	}
	if r.PM1 != nil || r.PM25 != nil || r.PM10 != nil {
		t.Error("expected nil PM values to stay nil")
	}
}

func TestNewReadingRounding(t *testing.T) {
	r := NewReading(time.Now(), 21.567, 44.44, nil, nil, nil)

	if r.TempC != 21.6 {
		t.Errorf("TempC: got %v, want 21.6", r.TempC)
	}
	if r.Humidity != 44.4 {
		t.Errorf("Humidity: got %v, want 44.4", r.Humidity)
	}
}

// Deriving twice from the same raw values must be bit-identical.
func TestDerivationIdempotent(t *testing.T) {
	pm25 := 17
	now := time.Now()

	a := NewReading(now, 23.456, 51.04, nil, &pm25, nil)
	b := NewReading(now, 23.456, 51.04, nil, &pm25, nil)

	if a.TempF != b.TempF || a.AQICategory != b.AQICategory || a.TS != b.TS {
		t.Errorf("derivation not idempotent: %+v vs %+v", a, b)
	}
}

func TestReadingTimeRoundTrip(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 30, 15, 500_000_000, time.UTC)
	r := NewReading(now, 20, 40, nil, nil, nil)

	got := r.Time()
	if diff := got.Sub(now); diff > time.Millisecond || diff < -time.Millisecond {
		t.Errorf("Time(): got %v, want %v", got, now)
	}
}
