// Package sysinfo reads host telemetry for the dashboard's system cards.
// Every lookup is best-effort: any failure degrades that one field to its
// "unavailable" value and never affects the others.
package sysinfo

import (
	"context"
	"fmt"
	"math"
	"net"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

const (
	defaultThermalPath = "/sys/class/thermal/thermal_zone0/temp"
	defaultUptimePath  = "/proc/uptime"

	// Address used to pick the outbound interface. Nothing is sent; a UDP
	// "connect" only asks the kernel for a route.
	routeProbeAddr = "8.8.8.8:80"

	unavailable = "N/A"
)

// Info is the host telemetry block returned alongside the latest reading.
// Nil pointers and "N/A" mark fields whose lookup failed.
type Info struct {
	CPUTempF *float64 `json:"cpu_temp_f"`
	Uptime   string   `json:"uptime"`
	IP       string   `json:"ip"`
	WifiRSSI *int     `json:"wifi_rssi"`
}

// Provider performs the four lookups. The thermal-file and wireless-command
// probes sit behind circuit breakers so a host where they persistently fail
// (no thermal zone, no wireless tooling) stops paying for them on every
// dashboard refresh.
type Provider struct {
	thermalPath string
	uptimePath  string
	wirelessCmd []string

	probeTimeout time.Duration

	cpuBreaker  *gobreaker.CircuitBreaker
	rssiBreaker *gobreaker.CircuitBreaker
}

// NewProvider creates a Provider using the standard Linux paths and iwconfig
// for the wireless probe.
func NewProvider(probeTimeout time.Duration) *Provider {
	return &Provider{
		thermalPath:  defaultThermalPath,
		uptimePath:   defaultUptimePath,
		wirelessCmd:  []string{"iwconfig"},
		probeTimeout: probeTimeout,
		cpuBreaker:   newBreaker("cpu-temp"),
		rssiBreaker:  newBreaker("wifi-rssi"),
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 2,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// Collect runs all four lookups. Each failure is absorbed into the
// corresponding unavailable marker.
func (p *Provider) Collect(ctx context.Context) Info {
	info := Info{
		Uptime: unavailable,
		IP:     unavailable,
	}

	if f, err := p.cpuTempF(); err == nil {
		info.CPUTempF = &f
	}
	if secs, err := p.uptimeSeconds(); err == nil {
		info.Uptime = FormatUptime(secs)
	}
	if ip, err := outboundIP(); err == nil {
		info.IP = ip
	}
	if rssi, err := p.wifiRSSI(ctx); err == nil {
		info.WifiRSSI = &rssi
	}

	return info
}

// cpuTempF reads the thermal zone file (milli-degrees Celsius) and converts
// to Fahrenheit with one decimal.
func (p *Provider) cpuTempF() (float64, error) {
	v, err := p.cpuBreaker.Execute(func() (interface{}, error) {
		raw, err := os.ReadFile(p.thermalPath)
		if err != nil {
			return nil, err
		}
		milli, err := strconv.Atoi(strings.TrimSpace(string(raw)))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p.thermalPath, err)
		}
		c := float64(milli) / 1000.0
		return math.Round((c*9.0/5.0+32.0)*10) / 10, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

func (p *Provider) uptimeSeconds() (int64, error) {
	raw, err := os.ReadFile(p.uptimePath)
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(string(raw))
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty uptime file %s", p.uptimePath)
	}
	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", p.uptimePath, err)
	}
	return int64(secs), nil
}

// FormatUptime renders seconds as HH:MM:SS with unbounded hours.
func FormatUptime(seconds int64) string {
	h := seconds / 3600
	m := seconds % 3600 / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// outboundIP determines the local IPv4 address the kernel would use to reach
// the internet. The UDP dial sends no packets.
func outboundIP() (string, error) {
	conn, err := net.Dial("udp4", routeProbeAddr)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "", fmt.Errorf("unexpected local address type %T", conn.LocalAddr())
	}
	return addr.IP.String(), nil
}

// wifiRSSI runs the wireless-status command under a deadline and extracts
// the signal level in dBm.
func (p *Provider) wifiRSSI(ctx context.Context) (int, error) {
	v, err := p.rssiBreaker.Execute(func() (interface{}, error) {
		cmdCtx, cancel := context.WithTimeout(ctx, p.probeTimeout)
		defer cancel()

		cmd := exec.CommandContext(cmdCtx, p.wirelessCmd[0], p.wirelessCmd[1:]...)
		out, err := cmd.Output()
		if err != nil {
			return nil, err
		}
		return ParseSignalLevel(string(out))
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// ParseSignalLevel locates the "Signal level=" marker in iwconfig-style
// output and parses the dBm value that follows it.
func ParseSignalLevel(out string) (int, error) {
	for _, line := range strings.Split(out, "\n") {
		_, after, found := strings.Cut(line, "Signal level=")
		if !found {
			continue
		}
		value, _, _ := strings.Cut(after, " ")
		dbm, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("parse signal level %q: %w", value, err)
		}
		return dbm, nil
	}
	return 0, fmt.Errorf("no signal level in wireless status output")
}
