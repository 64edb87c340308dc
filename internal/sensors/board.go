package sensors

import (
	"context"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Board reads both sensors over one I2C bus. Open it once at startup; an
// open failure means the hardware is misconfigured and the process should
// not come up.
type Board struct {
	bus i2c.BusCloser
	aht *aht20
	pm  *pmsa003i
}

// OpenBoard initializes the host, opens the named I2C bus (empty name means
// the first available bus) and probes both sensors.
func OpenBoard(busName string) (*Board, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	aht := newAHT20(bus)
	if err := aht.init(); err != nil {
		bus.Close()
		return nil, fmt.Errorf("aht20 init: %w", err)
	}

	return &Board{
		bus: bus,
		aht: aht,
		pm:  newPMSA003I(bus),
	}, nil
}

// Read takes one measurement from each sensor. Either sensor failing fails
// the whole read.
func (b *Board) Read(ctx context.Context) (Sample, error) {
	tempC, humidity, err := b.aht.measure(ctx)
	if err != nil {
		return Sample{}, fmt.Errorf("sensor read failure: aht20: %w", err)
	}

	pm, err := b.pm.measure(ctx)
	if err != nil {
		return Sample{}, fmt.Errorf("sensor read failure: pmsa003i: %w", err)
	}

	return Sample{
		TempC:    tempC,
		Humidity: humidity,
		PM1:      pm.pm1,
		PM25:     pm.pm25,
		PM10:     pm.pm10,
	}, nil
}

// Close releases the I2C bus.
func (b *Board) Close() error {
	return b.bus.Close()
}
