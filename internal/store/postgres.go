package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store on a pgxpool connection pool. Its methods
// are covered by the integration suite.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling. A
// pool_max_conns setting in connString takes precedence over the default.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	if cfg.MaxConns <= 0 {
		cfg.MaxConns = defaultPoolSize
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// RecordValuation appends an audit record. Recording the same valuation
// twice is a no-op.
func (s *PostgresStore) RecordValuation(ctx context.Context, rec *domain.AuditRecord) error {
	adjustments, err := json.Marshal(rec.Adjustments)
	if err != nil {
		return fmt.Errorf("encoding adjustments: %w", err)
	}

	result := []byte(rec.Result)
	if len(result) == 0 {
		result = []byte("{}")
	}

	sources := rec.SourcesUsed
	if sources == nil {
		sources = []string{}
	}

	args := pgx.NamedArgs{
		"valuation_id":       rec.ValuationID,
		"correlation_id":     rec.CorrelationID,
		"vin":                rec.VIN,
		"year":               rec.Year,
		"make":               rec.Make,
		"model":              rec.Model,
		"zip":                rec.ZIP,
		"mileage":            rec.Mileage,
		"condition":          string(rec.Condition),
		"condition_supplied": rec.ConditionSupplied,
		"final_value":        rec.FinalValue,
		"confidence_score":   rec.ConfidenceScore,
		"sources_used":       sources,
		"fallback_used":      rec.FallbackUsed,
		"adjustments":        adjustments,
		"quality_score":      rec.QualityScore,
		"result":             result,
	}

	err = s.pool.QueryRow(ctx, queryInsertValuation, args).Scan(&rec.ID, &rec.CreatedAt)

	// ON CONFLICT DO NOTHING returns no rows; treat as success.
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("inserting valuation audit: %w", err)
	}
	return nil
}

// GetValuation retrieves an audit record by valuation ID.
func (s *PostgresStore) GetValuation(ctx context.Context, valuationID string) (*domain.AuditRecord, error) {
	var (
		rec         domain.AuditRecord
		condition   string
		adjustments []byte
		result      []byte
	)

	err := s.pool.QueryRow(ctx, queryGetValuation, valuationID).Scan(
		&rec.ID, &rec.ValuationID, &rec.CorrelationID, &rec.VIN,
		&rec.Year, &rec.Make, &rec.Model, &rec.ZIP,
		&rec.Mileage, &condition, &rec.ConditionSupplied, &rec.FinalValue, &rec.ConfidenceScore,
		&rec.SourcesUsed, &rec.FallbackUsed, &adjustments, &rec.QualityScore,
		&result, &rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("valuation %s: %w", valuationID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting valuation: %w", err)
	}

	rec.Condition = domain.Condition(condition)
	if err := json.Unmarshal(adjustments, &rec.Adjustments); err != nil {
		return nil, fmt.Errorf("decoding adjustments: %w", err)
	}
	rec.Result = json.RawMessage(result)

	return &rec, nil
}

// ListValuations queries stored valuations with optional filters, returning
// results and the total count.
func (s *PostgresStore) ListValuations(
	ctx context.Context,
	q *ValuationQuery,
) ([]domain.ValuationSummary, int, error) {
	dataSQL, countSQL, args := q.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting valuations: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying valuations: %w", err)
	}
	defer rows.Close()

	var out []domain.ValuationSummary
	for rows.Next() {
		var v domain.ValuationSummary
		if err := rows.Scan(
			&v.ValuationID, &v.VIN, &v.Year, &v.Make, &v.Model, &v.ZIP,
			&v.FinalValue, &v.ConfidenceScore, &v.FallbackUsed, &v.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scanning valuation: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating valuations: %w", err)
	}

	return out, total, nil
}

// PruneValuations deletes audit records older than the retention window.
func (s *PostgresStore) PruneValuations(ctx context.Context, olderThan time.Duration) (int, error) {
	tag, err := s.pool.Exec(ctx, queryPruneValuations, time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("pruning valuations: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// GetCachedListings returns unexpired cached listings for key. The boolean
// reports whether a live entry was found.
func (s *PostgresStore) GetCachedListings(ctx context.Context, key string) ([]domain.RawListing, bool, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, queryGetCachedListings, key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading listing cache: %w", err)
	}

	var listings []domain.RawListing
	if err := json.Unmarshal(payload, &listings); err != nil {
		return nil, false, fmt.Errorf("decoding cached listings: %w", err)
	}
	return listings, true, nil
}

// PutCachedListings stores listings under key until ttl elapses.
func (s *PostgresStore) PutCachedListings(
	ctx context.Context,
	key string,
	listings []domain.RawListing,
	ttl time.Duration,
) error {
	if listings == nil {
		listings = []domain.RawListing{}
	}
	payload, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("encoding listings: %w", err)
	}

	_, err = s.pool.Exec(ctx, queryPutCachedListings, key, payload, len(listings), time.Now().Add(ttl))
	if err != nil {
		return fmt.Errorf("writing listing cache: %w", err)
	}
	return nil
}

// PruneListingCache removes expired cache entries.
func (s *PostgresStore) PruneListingCache(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx, queryPruneListingCache)
	if err != nil {
		return 0, fmt.Errorf("pruning listing cache: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// InsertJobRun records the start of a scheduled job and returns its ID.
func (s *PostgresStore) InsertJobRun(ctx context.Context, jobName string) (string, error) {
	var id string
	if err := s.pool.QueryRow(ctx, queryInsertJobRun, jobName).Scan(&id); err != nil {
		return "", fmt.Errorf("inserting job run: %w", err)
	}
	return id, nil
}

// CompleteJobRun marks a job run as finished with the given status and metadata.
func (s *PostgresStore) CompleteJobRun(
	ctx context.Context,
	id string,
	status string,
	errText string,
	rowsAffected int,
) error {
	_, err := s.pool.Exec(ctx, queryCompleteJobRun, id, status, errText, rowsAffected)
	if err != nil {
		return fmt.Errorf("completing job run: %w", err)
	}
	return nil
}

// ListLatestJobRuns returns the single most recent run for each distinct job name.
func (s *PostgresStore) ListLatestJobRuns(ctx context.Context) ([]domain.JobRun, error) {
	rows, err := s.pool.Query(ctx, queryListLatestJobRuns)
	if err != nil {
		return nil, fmt.Errorf("querying latest job runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.JobRun
	for rows.Next() {
		var r domain.JobRun
		if err := rows.Scan(
			&r.ID, &r.JobName, &r.StartedAt, &r.CompletedAt,
			&r.Status, &r.ErrorText, &r.RowsAffected,
		); err != nil {
			return nil, fmt.Errorf("scanning job run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// AcquireSchedulerLock attempts to acquire a distributed lock for the given job.
// Returns true if the lock was acquired, false if another holder already owns it.
func (s *PostgresStore) AcquireSchedulerLock(
	ctx context.Context,
	jobName string,
	holder string,
	ttl time.Duration,
) (bool, error) {
	expiresAt := time.Now().Add(ttl)

	var gotName string
	err := s.pool.QueryRow(ctx, queryAcquireSchedulerLock, jobName, holder, expiresAt).Scan(&gotName)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil // lock held by another; conflict not replaced
	}
	if err != nil {
		return false, fmt.Errorf("acquiring scheduler lock: %w", err)
	}

	return true, nil
}

// ReleaseSchedulerLock deletes the lock row for the given job and holder.
func (s *PostgresStore) ReleaseSchedulerLock(
	ctx context.Context,
	jobName string,
	holder string,
) error {
	_, err := s.pool.Exec(ctx, queryReleaseSchedulerLock, jobName, holder)
	if err != nil {
		return fmt.Errorf("releasing scheduler lock: %w", err)
	}
	return nil
}
