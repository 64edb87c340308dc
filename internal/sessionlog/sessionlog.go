// Package sessionlog appends every reading to a per-run CSV file named by
// the process start time, e.g. session-20260831-141503.csv.
package sessionlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/airpi-labs/air-monitor/internal/airquality"
)

const (
	fileLayout = "session-20060102-150405.csv"
	timeLayout = "2006-01-02T15:04:05"
)

var columns = []string{
	"time_iso", "temp_c", "temp_f", "humidity",
	"pm1", "pm25", "pm10", "aqi_category",
}

// Writer appends readings to one session file. No file handle is retained
// between appends; the file is opened and closed on every call so a crash
// never loses buffered rows.
type Writer struct {
	path string
}

// New creates the log directory if needed and derives the session file name
// from start. The file itself is created lazily on first Append.
func New(dir string, start time.Time) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	return &Writer{path: filepath.Join(dir, start.Format(fileLayout))}, nil
}

// Path returns the session file path.
func (w *Writer) Path() string {
	return w.path
}

// Append writes one reading as a CSV row, preceded by the header row if the
// file did not previously exist.
func (w *Writer) Append(r airquality.Reading) error {
	_, statErr := os.Stat(w.path)
	writeHeader := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if writeHeader {
		if err := cw.Write(columns); err != nil {
			return err
		}
	}
	if err := cw.Write(row(r)); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func row(r airquality.Reading) []string {
	return []string{
		r.Time().Local().Format(timeLayout),
		strconv.FormatFloat(r.TempC, 'f', 1, 64),
		strconv.FormatFloat(r.TempF, 'f', 1, 64),
		strconv.FormatFloat(r.Humidity, 'f', 1, 64),
		formatPM(r.PM1),
		formatPM(r.PM25),
		formatPM(r.PM10),
		string(r.AQICategory),
	}
}

func formatPM(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
