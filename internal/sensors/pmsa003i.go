package sensors

import (
	"context"
	"encoding/binary"
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

const pmsa003iAddr = 0x12

// pmsa003i drives the Plantower PMSA003I particulate sensor, which exposes
// its serial frame format over I2C.
type pmsa003i struct {
	dev i2c.Dev
}

// pmConc holds one set of standard-atmosphere mass concentrations.
type pmConc struct {
	pm1, pm25, pm10 *int
}

func newPMSA003I(bus i2c.Bus) *pmsa003i {
	return &pmsa003i{dev: i2c.Dev{Bus: bus, Addr: pmsa003iAddr}}
}

// measure reads and validates one 32-byte frame.
func (p *pmsa003i) measure(ctx context.Context) (pmConc, error) {
	if err := ctx.Err(); err != nil {
		return pmConc{}, err
	}

	buf := make([]byte, 32)
	if err := p.dev.Tx([]byte{0x00}, buf); err != nil {
		return pmConc{}, fmt.Errorf("read frame: %w", err)
	}
	return parsePMFrame(buf)
}

// parsePMFrame validates the 0x42 0x4D start word and the 16-bit checksum
// over the first 30 bytes, then extracts the standard concentrations
// (words 1-3 of the payload).
func parsePMFrame(buf []byte) (pmConc, error) {
	if len(buf) < 32 {
		return pmConc{}, fmt.Errorf("short frame: %d bytes", len(buf))
	}
	if buf[0] != 0x42 || buf[1] != 0x4D {
		return pmConc{}, fmt.Errorf("bad frame header 0x%02x%02x", buf[0], buf[1])
	}

	var sum uint16
	for _, b := range buf[:30] {
		sum += uint16(b)
	}
	if want := binary.BigEndian.Uint16(buf[30:32]); sum != want {
		return pmConc{}, fmt.Errorf("checksum mismatch: got 0x%04x, want 0x%04x", sum, want)
	}

	pm1 := int(binary.BigEndian.Uint16(buf[4:6]))
	pm25 := int(binary.BigEndian.Uint16(buf[6:8]))
	pm10 := int(binary.BigEndian.Uint16(buf[8:10]))

	return pmConc{pm1: &pm1, pm25: &pm25, pm10: &pm10}, nil
}
