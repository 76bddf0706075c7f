package valuation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/vehicle-valuator/internal/metrics"
	"github.com/donaldgifford/vehicle-valuator/internal/store"
)

// Scheduled job names, also used as scheduler lock keys.
const (
	JobCachePrune = "listing_cache_prune"
	JobAuditPrune = "audit_retention"
)

const jobLockTTL = 10 * time.Minute

// Scheduler runs periodic maintenance: expiring listing cache entries and
// enforcing audit retention.
type Scheduler struct {
	cron      *cron.Cron
	store     store.Store
	retention time.Duration
	holder    string
	log       *slog.Logger

	cachePruneEntryID cron.EntryID
	auditPruneEntryID cron.EntryID

	cachePruner CachePruner
}

// CachePruner deletes expired listing cache entries.
type CachePruner interface {
	PruneListingCache(ctx context.Context) (int, error)
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithCachePruner prunes p instead of the store's listing cache, for
// deployments that keep the cache outside Postgres.
func WithCachePruner(p CachePruner) SchedulerOption {
	return func(s *Scheduler) {
		s.cachePruner = p
	}
}

// NewScheduler registers the maintenance jobs. A zero interval disables
// that job; a zero retention disables audit pruning.
func NewScheduler(
	s store.Store,
	cachePruneInterval time.Duration,
	auditPruneInterval time.Duration,
	retention time.Duration,
	log *slog.Logger,
	opts ...SchedulerOption,
) (*Scheduler, error) {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}

	sched := &Scheduler{
		cron:      cron.New(),
		store:     s,
		retention: retention,
		holder:    fmt.Sprintf("%s-%d", host, os.Getpid()),
		log:       log,
	}
	sched.cachePruner = s
	for _, opt := range opts {
		opt(sched)
	}

	if cachePruneInterval > 0 {
		id, err := sched.cron.AddFunc("@every "+cachePruneInterval.String(), sched.runCachePrune)
		if err != nil {
			return nil, fmt.Errorf("scheduling %s: %w", JobCachePrune, err)
		}
		sched.cachePruneEntryID = id
	}

	if auditPruneInterval > 0 && retention > 0 {
		id, err := sched.cron.AddFunc("@every "+auditPruneInterval.String(), sched.runAuditPrune)
		if err != nil {
			return nil, fmt.Errorf("scheduling %s: %w", JobAuditPrune, err)
		}
		sched.auditPruneEntryID = id
	}

	return sched, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started", "jobs", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop halts the scheduler. The returned context is done once running jobs
// have finished.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// PruneCache removes expired listing cache entries.
func (s *Scheduler) PruneCache(ctx context.Context) (int, error) {
	n, err := s.cachePruner.PruneListingCache(ctx)
	if err != nil {
		return 0, fmt.Errorf("pruning listing cache: %w", err)
	}
	metrics.CachePrunedTotal.Add(float64(n))
	return n, nil
}

// PruneAudit removes audit records older than the retention window.
func (s *Scheduler) PruneAudit(ctx context.Context) (int, error) {
	n, err := s.store.PruneValuations(ctx, s.retention)
	if err != nil {
		return 0, fmt.Errorf("pruning audit records: %w", err)
	}
	metrics.AuditPrunedTotal.Add(float64(n))
	return n, nil
}

func (s *Scheduler) runCachePrune() {
	if err := s.runJob(context.Background(), JobCachePrune, jobLockTTL, s.PruneCache); err != nil {
		s.log.Error("scheduled cache prune failed", "error", err)
	}
}

func (s *Scheduler) runAuditPrune() {
	if err := s.runJob(context.Background(), JobAuditPrune, jobLockTTL, s.PruneAudit); err != nil {
		s.log.Error("scheduled audit prune failed", "error", err)
	}
}

// runJob executes fn under the named scheduler lock and records a job run.
// A lock held by another instance skips the run without error.
func (s *Scheduler) runJob(
	ctx context.Context,
	name string,
	ttl time.Duration,
	fn func(context.Context) (int, error),
) error {
	ok, err := s.store.AcquireSchedulerLock(ctx, name, s.holder, ttl)
	if err != nil {
		return fmt.Errorf("acquiring lock for %s: %w", name, err)
	}
	if !ok {
		s.log.Debug("job lock held elsewhere, skipping", "job", name)
		return nil
	}
	defer func() {
		if err := s.store.ReleaseSchedulerLock(ctx, name, s.holder); err != nil {
			s.log.Warn("releasing job lock", "job", name, "error", err)
		}
	}()

	runID, err := s.store.InsertJobRun(ctx, name)
	if err != nil {
		return fmt.Errorf("recording job run for %s: %w", name, err)
	}

	jctx, cancel := context.WithTimeout(ctx, ttl)
	defer cancel()

	start := time.Now()
	rows, jobErr := fn(jctx)

	status, errText := "succeeded", ""
	if jobErr != nil {
		status, errText = "failed", jobErr.Error()
		metrics.SchedulerJobFailuresTotal.WithLabelValues(name).Inc()
	}
	if err := s.store.CompleteJobRun(ctx, runID, status, errText, rows); err != nil {
		s.log.Warn("completing job run", "job", name, "run_id", runID, "error", err)
	}

	s.log.Info("scheduled job finished",
		"job", name,
		"status", status,
		"rows", rows,
		"duration", time.Since(start),
	)
	return jobErr
}
