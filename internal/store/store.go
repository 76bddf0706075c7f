// Package store defines the datastore abstraction for vehicle-valuator.
// Business logic depends on the Store interface, never on concrete
// implementations, so handlers and jobs are tested against mocks.
package store

import (
	"context"
	"errors"
	"time"

	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ValuationQuery defines optional filters for listing stored valuations.
type ValuationQuery struct {
	VIN           *string
	ZIP           *string
	Make          *string
	MinConfidence *int
	FallbackOnly  bool
	Since         *time.Time
	Limit         int // default 50
	Offset        int
	OrderBy       string // "created_at", "final_value", "confidence"
}

// Store defines all data access operations for vehicle-valuator.
type Store interface {
	// Valuation audit log
	RecordValuation(ctx context.Context, rec *domain.AuditRecord) error
	GetValuation(ctx context.Context, valuationID string) (*domain.AuditRecord, error)
	ListValuations(ctx context.Context, q *ValuationQuery) ([]domain.ValuationSummary, int, error)
	PruneValuations(ctx context.Context, olderThan time.Duration) (int, error)

	// Listing cache
	GetCachedListings(ctx context.Context, key string) ([]domain.RawListing, bool, error)
	PutCachedListings(ctx context.Context, key string, listings []domain.RawListing, ttl time.Duration) error
	PruneListingCache(ctx context.Context) (int, error)

	// Scheduler
	InsertJobRun(ctx context.Context, jobName string) (id string, err error)
	CompleteJobRun(ctx context.Context, id string, status string, errText string, rowsAffected int) error
	ListLatestJobRuns(ctx context.Context) ([]domain.JobRun, error)
	AcquireSchedulerLock(ctx context.Context, jobName string, holder string, ttl time.Duration) (bool, error)
	ReleaseSchedulerLock(ctx context.Context, jobName string, holder string) error

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
