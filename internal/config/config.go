package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Sensor modes.
const (
	SensorModeI2C = "i2c"
	SensorModeSim = "sim"
)

type AppConfig struct {
	Port string

	// ReadInterval controls how often the poll loop reads the sensors.
	ReadInterval time.Duration

	// HistoryWindow is how much rolling history is retained in memory.
	HistoryWindow time.Duration

	// LogDir holds the per-session CSV files.
	LogDir string

	// SensorMode selects the hardware board ("i2c") or the simulator ("sim").
	SensorMode string
	// I2CBus names the bus to open; empty means the first available.
	I2CBus string

	// ShutdownToken gates the /shutdown endpoint; empty disables it.
	ShutdownToken string
	// ShutdownCmd is the host power-off command.
	ShutdownCmd string

	// ProbeTimeout bounds each host-telemetry command.
	ProbeTimeout time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:          getenvDefault("PORT", "5000"),
		SensorMode:    getenvDefault("SENSOR_MODE", SensorModeI2C),
		I2CBus:        os.Getenv("I2C_BUS"),
		ShutdownToken: os.Getenv("SHUTDOWN_TOKEN"),
		ShutdownCmd:   getenvDefault("SHUTDOWN_CMD", "sudo shutdown -h now"),
	}

	if cfg.SensorMode != SensorModeI2C && cfg.SensorMode != SensorModeSim {
		return nil, fmt.Errorf("invalid SENSOR_MODE %q: want %q or %q", cfg.SensorMode, SensorModeI2C, SensorModeSim)
	}

	var err error
	if cfg.ReadInterval, err = getenvDuration("READ_INTERVAL", "5s"); err != nil {
		return nil, err
	}
	if cfg.HistoryWindow, err = getenvDuration("HISTORY_WINDOW", "15m"); err != nil {
		return nil, err
	}
	if cfg.ProbeTimeout, err = getenvDuration("PROBE_TIMEOUT", "2s"); err != nil {
		return nil, err
	}

	if cfg.LogDir, err = loadLogDir(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadLogDir resolves LOG_DIR, defaulting to ~/air_monitor/logs.
func loadLogDir() (string, error) {
	if dir := os.Getenv("LOG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve home dir for default LOG_DIR: %w", err)
	}
	return filepath.Join(home, "air_monitor", "logs"), nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
