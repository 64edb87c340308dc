// Package sensors wraps the two physical air sensors (an AHT20 for
// temperature/humidity and a PMSA003I for particulates) behind a single
// Reader so the poll loop does not care whether it is talking to hardware
// or to the simulator.
package sensors

import "context"

// Sample carries one raw reading from both sensors. PM values are nil when
// the particulate sensor returned no value for that size class.
type Sample struct {
	TempC    float64
	Humidity float64
	PM1      *int
	PM25     *int
	PM10     *int
}

// Reader produces one Sample per call or fails. A failure of either
// underlying sensor fails the whole call; no partial Sample is returned.
type Reader interface {
	Read(ctx context.Context) (Sample, error)
}
