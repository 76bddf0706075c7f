package store

// SQL query constants organized by entity.
// All SQL lives here; PostgresStore methods reference these constants.

// Valuation audit queries.
const (
	queryInsertValuation = `
		INSERT INTO valuation_audit (
			valuation_id, correlation_id, vin, year, make, model, zip,
			mileage, condition, condition_supplied, final_value, confidence_score,
			sources_used, fallback_used, adjustments, quality_score, result
		) VALUES (
			@valuation_id, @correlation_id, @vin, @year, @make, @model, @zip,
			@mileage, @condition, @condition_supplied, @final_value, @confidence_score,
			@sources_used, @fallback_used, @adjustments, @quality_score, @result
		)
		ON CONFLICT (valuation_id) DO NOTHING
		RETURNING id, created_at`

	queryGetValuation = `
		SELECT id, valuation_id, correlation_id, vin, year, make, model, zip,
			mileage, condition, condition_supplied, final_value, confidence_score,
			sources_used, fallback_used, adjustments, quality_score, result, created_at
		FROM valuation_audit
		WHERE valuation_id = $1`

	queryPruneValuations = `
		DELETE FROM valuation_audit WHERE created_at < $1`
)

// Listing cache queries.
const (
	queryGetCachedListings = `
		SELECT listings FROM listing_cache
		WHERE cache_key = $1 AND expires_at > now()`

	queryPutCachedListings = `
		INSERT INTO listing_cache (cache_key, listings, listing_count, fetched_at, expires_at)
		VALUES ($1, $2, $3, now(), $4)
		ON CONFLICT (cache_key) DO UPDATE SET
			listings      = EXCLUDED.listings,
			listing_count = EXCLUDED.listing_count,
			fetched_at    = EXCLUDED.fetched_at,
			expires_at    = EXCLUDED.expires_at`

	queryPruneListingCache = `
		DELETE FROM listing_cache WHERE expires_at <= now()`
)

// Scheduler queries.
const (
	queryInsertJobRun = `
		INSERT INTO job_runs (job_name)
		VALUES ($1)
		RETURNING id`

	queryCompleteJobRun = `
		UPDATE job_runs SET
			completed_at  = now(),
			status        = $2,
			error_text    = $3,
			rows_affected = $4
		WHERE id = $1`

	queryListLatestJobRuns = `
		SELECT DISTINCT ON (job_name)
			id, job_name, started_at, completed_at, status,
			COALESCE(error_text, ''), rows_affected
		FROM job_runs
		ORDER BY job_name, started_at DESC`

	queryAcquireSchedulerLock = `
		INSERT INTO scheduler_locks (job_name, lock_holder, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (job_name) DO UPDATE
			SET locked_at   = now(),
				lock_holder = EXCLUDED.lock_holder,
				expires_at  = EXCLUDED.expires_at
			WHERE scheduler_locks.expires_at < now()
		RETURNING job_name`

	queryReleaseSchedulerLock = `
		DELETE FROM scheduler_locks WHERE job_name = $1 AND lock_holder = $2`
)
