package sensors

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
)

const aht20Addr = 0x38

// aht20 drives the ASAIR AHT20 temperature/humidity sensor.
type aht20 struct {
	dev i2c.Dev
}

func newAHT20(bus i2c.Bus) *aht20 {
	return &aht20{dev: i2c.Dev{Bus: bus, Addr: aht20Addr}}
}

// init sends the calibration command and verifies the calibrated bit.
func (a *aht20) init() error {
	if err := a.dev.Tx([]byte{0xBE, 0x08, 0x00}, nil); err != nil {
		return fmt.Errorf("calibrate command: %w", err)
	}
	time.Sleep(10 * time.Millisecond)

	status := make([]byte, 1)
	if err := a.dev.Tx([]byte{0x71}, status); err != nil {
		return fmt.Errorf("read status: %w", err)
	}
	if status[0]&0x08 == 0 {
		return fmt.Errorf("sensor not calibrated (status 0x%02x)", status[0])
	}
	return nil
}

// measure triggers a conversion and returns temperature (°C) and relative
// humidity (%). The datasheet specifies ~80 ms conversion time.
func (a *aht20) measure(ctx context.Context) (tempC, humidity float64, err error) {
	if err := a.dev.Tx([]byte{0xAC, 0x33, 0x00}, nil); err != nil {
		return 0, 0, fmt.Errorf("trigger measurement: %w", err)
	}

	select {
	case <-ctx.Done():
		return 0, 0, ctx.Err()
	case <-time.After(80 * time.Millisecond):
	}

	buf := make([]byte, 7)
	if err := a.dev.Tx(nil, buf); err != nil {
		return 0, 0, fmt.Errorf("read measurement: %w", err)
	}
	if buf[0]&0x80 != 0 {
		return 0, 0, fmt.Errorf("sensor busy (status 0x%02x)", buf[0])
	}

	tempC, humidity = convertAHT20(buf)
	return tempC, humidity, nil
}

// convertAHT20 unpacks the two 20-bit raw fields from a 7-byte measurement
// frame: humidity in bytes 1-3 (upper nibble of byte 3), temperature in the
// lower nibble of byte 3 plus bytes 4-5.
func convertAHT20(buf []byte) (tempC, humidity float64) {
	rawHum := uint32(buf[1])<<12 | uint32(buf[2])<<4 | uint32(buf[3])>>4
	rawTemp := uint32(buf[3]&0x0F)<<16 | uint32(buf[4])<<8 | uint32(buf[5])

	const full = 1 << 20
	humidity = float64(rawHum) / full * 100.0
	tempC = float64(rawTemp)/full*200.0 - 50.0
	return tempC, humidity
}
