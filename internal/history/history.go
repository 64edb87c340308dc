package history

import (
	"errors"
	"sync"
	"time"

	"github.com/airpi-labs/air-monitor/internal/airquality"
)

var (
	// ErrNoData is returned before the first successful sensor read.
	ErrNoData = errors.New("no sensor data recorded yet")
)

// Store is a concurrency-safe rolling window of readings plus a slot for the
// most recent one. It is written by the single poll loop and read by any
// number of HTTP handlers; one mutex guards both the window and the latest
// slot so a snapshot never observes a half-applied Record.
type Store struct {
	mu sync.RWMutex

	// points is insertion-ordered; every element satisfies
	// ts >= latest.TS - window.Seconds().
	points []airquality.Reading
	latest *airquality.Reading

	window time.Duration
}

// NewStore creates a Store retaining readings no older than window relative
// to the most recently recorded one.
func NewStore(window time.Duration) *Store {
	return &Store{window: window}
}

// Record appends a reading, updates the latest slot, and evicts every entry
// older than the new reading's timestamp minus the window. Eviction is a
// prefix trim and never reorders.
func (s *Store) Record(r airquality.Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.points = append(s.points, r)
	s.latest = &r

	cutoff := r.TS - s.window.Seconds()
	i := 0
	for ; i < len(s.points); i++ {
		if s.points[i].TS >= cutoff {
			break
		}
	}
	if i > 0 {
		s.points = s.points[i:]
	}
}

// Latest returns a copy of the most recent reading, or ErrNoData if no
// reading has ever been recorded.
func (s *Store) Latest() (airquality.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == nil {
		return airquality.Reading{}, ErrNoData
	}
	return *s.latest, nil
}

// History returns a point-in-time copy of the current window contents in
// insertion order. The copy is never nil, so it serializes as a JSON array.
func (s *Store) History() []airquality.Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]airquality.Reading, len(s.points))
	copy(out, s.points)
	return out
}
