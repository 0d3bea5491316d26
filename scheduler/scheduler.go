// Package scheduler implements the background snapshot refresh
package scheduler

import (
	"log"
	"time"

	"weatherdash.app/config"
)

// Refresher is the façade surface the scheduler drives
type Refresher interface {
	RefreshLastCity() error
}

// Scheduler periodically re-queries the last resolved city so the published
// snapshot never grows stale while the dashboard sits idle
type Scheduler struct {
	config    *config.SchedulerConfig
	refresher Refresher
	stop      chan struct{}
}

// NewScheduler creates and configures the refresh scheduler
func NewScheduler(config *config.SchedulerConfig, refresher Refresher) *Scheduler {
	return &Scheduler{
		config:    config,
		refresher: refresher,
		stop:      make(chan struct{}),
	}
}

// Start begins the refresh loop. A disabled scheduler is a no-op.
func (s *Scheduler) Start() {
	if !s.config.Enabled {
		log.Println("[DEBUG] Snapshot refresh scheduler disabled")
		return
	}

	go s.scheduleInterval(time.Duration(s.config.RefreshInterval)*time.Minute, func() {
		if err := s.refresher.RefreshLastCity(); err != nil {
			log.Printf("Error refreshing weather snapshot: %v\n", err)
		}
	})
}

// Stop terminates the refresh loop
func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) scheduleInterval(interval time.Duration, job func()) {
	job()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			job()
		case <-s.stop:
			return
		}
	}
}
