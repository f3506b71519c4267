// Package jobs runs background work on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

// NewScheduler creates a scheduler running in UTC
func NewScheduler(log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		log:  log,
	}
}

// Add registers job under schedule
func (s *Scheduler) Add(name, schedule string, job func()) error {
	if _, err := s.cron.AddFunc(schedule, job); err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	s.log.Info("Scheduled job", zap.String("job", name), zap.String("schedule", schedule))
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	s.log.Info("Starting cron scheduler...")
	s.cron.Start()
}

// Stop waits for running jobs to finish or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) {
	s.log.Info("Stopping cron scheduler...")
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// HasJobs reports whether any job is registered
func (s *Scheduler) HasJobs() bool {
	return len(s.cron.Entries()) > 0
}

// Keepalive pings the service's public URL so idle hosting platforms keep it awake
type Keepalive struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

// NewKeepalive creates a Keepalive job for url
func NewKeepalive(url string, log *zap.Logger) *Keepalive {
	return &Keepalive{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

// Run performs a single ping
func (k *Keepalive) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := k.ping(ctx); err != nil {
		k.log.Warn("Keepalive ping failed", zap.String("url", k.url), zap.Error(err))
		return
	}
	k.log.Debug("Keepalive ping succeeded", zap.String("url", k.url))
}

func (k *Keepalive) ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.url, nil)
	if err != nil {
		return err
	}
	resp, err := k.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
