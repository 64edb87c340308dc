package sensors

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"
)

// Simulated produces plausible indoor readings without hardware, for
// developing the dashboard off the Pi. Values drift on slow sine waves with
// a little jitter.
type Simulated struct {
	mu    sync.Mutex
	rng   *rand.Rand
	start time.Time
}

// NewSimulated creates a simulated reader. The seed makes runs reproducible
// in tests.
func NewSimulated(seed int64) *Simulated {
	return &Simulated{
		rng:   rand.New(rand.NewSource(seed)),
		start: time.Now(),
	}
}

func (s *Simulated) Read(ctx context.Context) (Sample, error) {
	if err := ctx.Err(); err != nil {
		return Sample{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed := time.Since(s.start).Seconds()
	phase := elapsed * 2 * math.Pi / 600 // one cycle per ten minutes

	pm1 := 4 + s.rng.Intn(3)
	pm25 := int(8+3*math.Sin(phase)) + s.rng.Intn(3)
	pm10 := pm25 + 2 + s.rng.Intn(4)

	return Sample{
		TempC:    22.0 + 1.5*math.Sin(phase) + s.rng.Float64()*0.2,
		Humidity: 45.0 + 5.0*math.Sin(phase/2) + s.rng.Float64()*0.5,
		PM1:      &pm1,
		PM25:     &pm25,
		PM10:     &pm10,
	}, nil
}
