// Package jobs runs periodic maintenance tasks on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/devlog/internal/metrics"
)

// DraftPurger removes drafts that have not been touched for olderThan.
type DraftPurger interface {
	PurgeDrafts(ctx context.Context, olderThan time.Duration) (int, error)
}

// DraftPurgeJob is the name of the stale draft purge job.
const DraftPurgeJob = "draft_purge"

// Status describes one scheduled job. Prev is zero until the job has run.
type Status struct {
	Name     string    `json:"name"`
	Schedule string    `json:"schedule"`
	Next     time.Time `json:"next"`
	Prev     time.Time `json:"prev"`
}

// Scheduler periodically purges stale drafts.
type Scheduler struct {
	cron    *cron.Cron
	purgeID cron.EntryID
	spec    string
	drafts  DraftPurger
	ttl     time.Duration
	timeout time.Duration
	log     *slog.Logger
}

// NewScheduler creates a Scheduler that runs a draft purge every interval,
// deleting drafts older than ttl.
func NewScheduler(
	drafts DraftPurger,
	ttl time.Duration,
	interval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("draft ttl must be positive (got %s)", ttl)
	}

	c := cron.New()

	s := &Scheduler{
		cron:    c,
		spec:    "@every " + interval.String(),
		drafts:  drafts,
		ttl:     ttl,
		timeout: time.Minute,
		log:     log,
	}

	id, err := c.AddFunc(s.spec, s.runPurge)
	if err != nil {
		return nil, fmt.Errorf("scheduling draft purge: %w", err)
	}
	s.purgeID = id

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started", "draft_ttl", s.ttl)
	s.cron.Start()
}

// Stop stops the scheduler. The returned context is done once any running
// job has finished.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// Jobs reports the schedule of every registered job.
func (s *Scheduler) Jobs() []Status {
	e := s.cron.Entry(s.purgeID)
	return []Status{{
		Name:     DraftPurgeJob,
		Schedule: s.spec,
		Next:     e.Next,
		Prev:     e.Prev,
	}}
}

// PurgeDrafts runs one purge immediately and returns the number removed.
func (s *Scheduler) PurgeDrafts(ctx context.Context) (int, error) {
	n, err := s.drafts.PurgeDrafts(ctx, s.ttl)
	if err != nil {
		return 0, fmt.Errorf("purging drafts: %w", err)
	}
	metrics.DraftsPurgedTotal.Add(float64(n))
	return n, nil
}

func (s *Scheduler) runPurge() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.PurgeDrafts(ctx)
	if err != nil {
		s.log.Error("scheduled draft purge failed", "error", err)
		return
	}
	if n > 0 {
		s.log.Info("stale drafts purged", "count", n)
	}
}
