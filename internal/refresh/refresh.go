// Package refresh schedules the dashboard's periodic work: a fast clock
// tick and a slow full reload, canceled together on teardown.
package refresh

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher wraps cron-based interval jobs with seconds resolution.
type Refresher struct {
	cron *cron.Cron
}

// New builds a stopped Refresher in the given location.
func New(loc *time.Location) *Refresher {
	return &Refresher{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
	}
}

// Every registers a periodic job at the given interval. There is no
// backoff, jitter, or skip-if-running guard here; overlap protection is
// the job's own concern.
func (r *Refresher) Every(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	return r.cron.AddFunc(fmt.Sprintf("@every %ds", seconds), job)
}

// Start launches the scheduler.
func (r *Refresher) Start() {
	r.cron.Start()
}

// Stop cancels all registered ticks together and waits for running jobs
// to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}
