package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500

	orderByCreated    = "created_at"
	orderByValue      = "final_value"
	orderByConfidence = "confidence"
)

// validOrderBy maps allowed OrderBy values to their SQL column expressions.
var validOrderBy = map[string]string{
	orderByCreated:    "created_at DESC",
	orderByValue:      "final_value DESC",
	orderByConfidence: "confidence_score DESC, created_at DESC",
}

const defaultOrderBy = "created_at DESC"

// ValidOrderBy reports whether s is an accepted ValuationQuery.OrderBy value.
// The empty string selects the default ordering.
func ValidOrderBy(s string) bool {
	if s == "" {
		return true
	}
	_, ok := validOrderBy[s]
	return ok
}

const baseValuationsSelect = `SELECT valuation_id, vin, year, make, model, zip,
	final_value, confidence_score, fallback_used, created_at
FROM valuation_audit`

const countValuationsSelect = "SELECT COUNT(*) FROM valuation_audit"

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for a valuation
// query. It returns the data query, the count query, and the positional
// parameters shared by both.
func (q *ValuationQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.VIN != nil {
		conditions = append(conditions, fmt.Sprintf("vin = $%d", paramIdx))
		args = append(args, strings.ToUpper(*q.VIN))
		paramIdx++
	}

	if q.ZIP != nil {
		conditions = append(conditions, fmt.Sprintf("zip = $%d", paramIdx))
		args = append(args, *q.ZIP)
		paramIdx++
	}

	if q.Make != nil {
		conditions = append(conditions, fmt.Sprintf("lower(make) = $%d", paramIdx))
		args = append(args, strings.ToLower(*q.Make))
		paramIdx++
	}

	if q.MinConfidence != nil {
		conditions = append(conditions, fmt.Sprintf("confidence_score >= $%d", paramIdx))
		args = append(args, *q.MinConfidence)
		paramIdx++
	}

	if q.Since != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", paramIdx))
		args = append(args, *q.Since)
	}

	if q.FallbackOnly {
		conditions = append(conditions, "fallback_used = true")
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := defaultOrderBy
	if q.OrderBy != "" {
		if col, ok := validOrderBy[q.OrderBy]; ok {
			orderClause = col
		}
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s LIMIT %d OFFSET %d",
		baseValuationsSelect, whereClause, orderClause, limit, offset,
	)

	countSQL = countValuationsSelect + whereClause

	return dataSQL, countSQL, args
}
