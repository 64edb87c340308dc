// Package poller runs the fixed-interval sensor loop for the lifetime of
// the process.
package poller

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/airpi-labs/air-monitor/internal/airquality"
	"github.com/airpi-labs/air-monitor/internal/history"
	"github.com/airpi-labs/air-monitor/internal/sensors"
	"github.com/airpi-labs/air-monitor/internal/sessionlog"
)

// Poller reads the sensors on a fixed period and feeds every successful
// reading into the history store and the session log. A failed read is
// logged and retried only at the next scheduled tick; there is no backoff.
type Poller struct {
	scheduler *gocron.Scheduler
	reader    sensors.Reader
	store     *history.Store
	sessions  *sessionlog.Writer
	interval  time.Duration
}

// New creates a Poller polling reader every interval.
func New(reader sensors.Reader, store *history.Store, sessions *sessionlog.Writer, interval time.Duration) *Poller {
	return &Poller{
		scheduler: gocron.NewScheduler(time.UTC),
		reader:    reader,
		store:     store,
		sessions:  sessions,
		interval:  interval,
	}
}

// Start schedules the poll job and starts the underlying scheduler in its
// own goroutine.
func (p *Poller) Start() error {
	secs := int(p.interval.Seconds())
	if secs <= 0 {
		secs = 5
	}

	if _, err := p.scheduler.Every(secs).Seconds().Do(p.pollOnce); err != nil {
		return err
	}

	p.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler. Only called on process shutdown.
func (p *Poller) Stop() {
	if p.scheduler != nil {
		p.scheduler.Stop()
	}
}

// pollOnce is one tick: read both sensors under a deadline, then record and
// log the reading. The deadline turns a hung sensor call into an ordinary
// read failure instead of stalling the loop.
func (p *Poller) pollOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), p.interval)
	defer cancel()

	sample, err := p.reader.Read(ctx)
	if err != nil {
		log.Printf("ERROR: poller: sensor read failed: %v", err)
		return
	}

	r := airquality.NewReading(time.Now(), sample.TempC, sample.Humidity, sample.PM1, sample.PM25, sample.PM10)

	// Record before appending so readers see the data even if the log
	// write fails; the session log must never touch in-memory state.
	p.store.Record(r)

	if err := p.sessions.Append(r); err != nil {
		log.Printf("ERROR: poller: session log write failed: %v", err)
	}
}
