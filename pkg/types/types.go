// Package domain defines the core value types for the vehicle valuator.
package domain

import (
	"encoding/json"
	"time"
)

// Condition represents the normalized vehicle condition.
type Condition string

// Condition constants.
const (
	ConditionExcellent Condition = "excellent"
	ConditionVeryGood  Condition = "very-good"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
)

// Conditions lists every valid condition, best first.
var Conditions = []Condition{
	ConditionExcellent,
	ConditionVeryGood,
	ConditionGood,
	ConditionFair,
	ConditionPoor,
}

// TitleStatus represents the branding on a vehicle title.
type TitleStatus string

// Title status constants.
const (
	TitleClean   TitleStatus = "clean"
	TitleSalvage TitleStatus = "salvage"
	TitleRebuilt TitleStatus = "rebuilt"
	TitleFlood   TitleStatus = "flood"
	TitleLemon   TitleStatus = "lemon"
	TitleHail    TitleStatus = "hail"
	TitleUnknown TitleStatus = "unknown"
)

// BaseMethod identifies which pricing tier produced the base value.
type BaseMethod string

// Base method constants.
const (
	MethodMarket       BaseMethod = "market"
	MethodDepreciation BaseMethod = "depreciation"
	MethodFloor        BaseMethod = "floor"
	MethodRemote       BaseMethod = "remote"
)

// Stage is a step in the valuation state machine.
type Stage string

// Stage constants, in pipeline order.
const (
	StageReceived     Stage = "RECEIVED"
	StageDelegated    Stage = "DELEGATED"
	StageNormalized   Stage = "NORMALIZED"
	StageAggregated   Stage = "AGGREGATED"
	StageBaseResolved Stage = "BASE_RESOLVED"
	StageAdjusted     Stage = "ADJUSTED"
	StageScored       Stage = "SCORED"
	StageAssembled    Stage = "ASSEMBLED"
)

// Source markers recorded in ValuationResult.SourcesUsed.
const (
	SourceLocal         = "local"
	SourceLocalFallback = "local_fallback"
	SourceMarket        = "market_listings"
	SourceDepreciation  = "depreciation_model"
	SourceFloor         = "floor_estimate"
	SourceRemotePrefix  = "remote:"
)

// Vehicle holds the decoded identity of a vehicle.
type Vehicle struct {
	VIN        string `json:"vin,omitempty"`
	Year       int    `json:"year"`
	Make       string `json:"make"`
	Model      string `json:"model"`
	Trim       string `json:"trim,omitempty"`
	BodyStyle  string `json:"body_style,omitempty"`
	Drivetrain string `json:"drivetrain,omitempty"`
	FuelType   string `json:"fuel_type,omitempty"`
}

// RawListing is an unnormalized listing record as delivered by a source.
type RawListing map[string]any

// Listing is a single normalized market observation.
type Listing struct {
	Price      float64   `json:"price"`
	Mileage    int       `json:"mileage"`
	Year       int       `json:"year"`
	Make       string    `json:"make"`
	Model      string    `json:"model"`
	MakeKey    string    `json:"make_key"`
	ModelKey   string    `json:"model_key"`
	Trim       string    `json:"trim,omitempty"`
	Title      string    `json:"title,omitempty"`
	Condition  Condition `json:"condition"`
	VIN        string    `json:"vin,omitempty"`
	Source     string    `json:"source"`
	SourceTier float64   `json:"source_tier"`
	Location   string    `json:"location,omitempty"`
	URL        string    `json:"url,omitempty"`
	Dealer     string    `json:"dealer,omitempty"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// ListingStatistics describes the price distribution of a listing set.
type ListingStatistics struct {
	Count         int     `json:"count"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Mean          float64 `json:"mean"`
	Median        float64 `json:"median"`
	StdDev        float64 `json:"std_dev"`
	P25           float64 `json:"p25"`
	P75           float64 `json:"p75"`
	IQR           float64 `json:"iqr"`
	MeanMileage   float64 `json:"mean_mileage"`
	MedianMileage float64 `json:"median_mileage"`
}

// BasePrice is the anchor value chosen by the pricing tiers.
type BasePrice struct {
	Value          float64    `json:"value"`
	Method         BaseMethod `json:"method"`
	ConfidenceHint int        `json:"confidence_hint"`
}

// Adjustment is a signed delta applied to the base value.
type Adjustment struct {
	Factor  string  `json:"factor"`
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent,omitempty"`
	Reason  string  `json:"reason"`
}

// Region is a ZIP classification returned by a geocoder.
type Region struct {
	IsUrban     bool   `json:"is_urban"`
	IsSuburban  bool   `json:"is_suburban"`
	DisplayName string `json:"display_name"`
}

// ValuationRequest carries everything needed to value one vehicle.
type ValuationRequest struct {
	Vehicle       Vehicle      `json:"vehicle"`
	Mileage       *int         `json:"mileage,omitempty"`
	Condition     Condition    `json:"condition,omitempty"`
	TitleStatus   TitleStatus  `json:"title_status,omitempty"`
	ZIP           string       `json:"zip,omitempty"`
	Features      []string     `json:"features,omitempty"`
	SaleDate      *time.Time   `json:"sale_date,omitempty"`
	RawListings   []RawListing `json:"raw_listings,omitempty"`
	ListingSource string       `json:"listing_source,omitempty"`
	CorrelationID string       `json:"correlation_id,omitempty"`
}

// PriceRange is the low/high band around a final value.
type PriceRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// ConfidenceLevel is the qualitative band of a confidence score.
type ConfidenceLevel string

// Confidence level constants.
const (
	ConfidenceHigh   ConfidenceLevel = "High"
	ConfidenceMedium ConfidenceLevel = "Medium"
	ConfidenceLow    ConfidenceLevel = "Low"
)

// ConfidenceExplanation reports how a confidence score was reached.
type ConfidenceExplanation struct {
	Score       int             `json:"score"`
	Level       ConfidenceLevel `json:"level"`
	Reasons     []string        `json:"reasons"`
	Suggestions []string        `json:"suggestions"`
	CanRetry    bool            `json:"can_retry"`
}

// ValuationResult is the output of one valuation. It is never mutated
// after being returned.
type ValuationResult struct {
	ID              string                `json:"id"`
	CorrelationID   string                `json:"correlation_id,omitempty"`
	Vehicle         Vehicle               `json:"vehicle"`
	Mileage         *int                  `json:"mileage,omitempty"`
	Condition       Condition             `json:"condition"`
	ZIP             string                `json:"zip,omitempty"`
	BaseValue       float64               `json:"base_value"`
	BaseMethod      BaseMethod            `json:"base_method"`
	Adjustments     []Adjustment          `json:"adjustments"`
	TotalAdjustment float64               `json:"total_adjustment"`
	FinalValue      float64               `json:"final_value"`
	PriceRange      PriceRange            `json:"price_range"`
	ConfidenceScore int                   `json:"confidence_score"`
	Confidence      ConfidenceExplanation `json:"confidence"`
	SourcesUsed     []string              `json:"sources_used"`
	Explanation     string                `json:"explanation,omitempty"`
	ListingCount    int                   `json:"listing_count"`
	Statistics      *ListingStatistics    `json:"statistics,omitempty"`
	FallbackUsed    bool                  `json:"fallback_used"`
	Stages          []Stage               `json:"stages"`
	CreatedAt       time.Time             `json:"created_at"`
}

// AuditRecord is the append-only trace of one completed valuation.
// ConditionSupplied is false when Condition was assumed.
type AuditRecord struct {
	ID                string          `json:"id"                db:"id"`
	ValuationID       string          `json:"valuation_id"      db:"valuation_id"`
	CorrelationID     string          `json:"correlation_id"    db:"correlation_id"`
	VIN               string          `json:"vin,omitempty"     db:"vin"`
	Year              int             `json:"year"              db:"year"`
	Make              string          `json:"make"              db:"make"`
	Model             string          `json:"model"             db:"model"`
	ZIP               string          `json:"zip,omitempty"     db:"zip"`
	Mileage           *int            `json:"mileage,omitempty" db:"mileage"`
	Condition         Condition       `json:"condition"         db:"condition"`
	ConditionSupplied bool            `json:"condition_supplied" db:"condition_supplied"`
	FinalValue        float64         `json:"final_value"       db:"final_value"`
	ConfidenceScore   int             `json:"confidence_score"  db:"confidence_score"`
	SourcesUsed       []string        `json:"sources_used"      db:"sources_used"`
	FallbackUsed      bool            `json:"fallback_used"     db:"fallback_used"`
	Adjustments       []Adjustment    `json:"adjustments"       db:"adjustments"`
	QualityScore      int             `json:"quality_score"     db:"quality_score"`
	Result            json.RawMessage `json:"result,omitempty"  db:"result"`
	CreatedAt         time.Time       `json:"created_at"        db:"created_at"`
}

// ValuationSummary is a compact row used when listing stored valuations.
type ValuationSummary struct {
	ValuationID     string    `json:"valuation_id"     db:"valuation_id"`
	VIN             string    `json:"vin,omitempty"    db:"vin"`
	Year            int       `json:"year"             db:"year"`
	Make            string    `json:"make"             db:"make"`
	Model           string    `json:"model"            db:"model"`
	ZIP             string    `json:"zip,omitempty"    db:"zip"`
	FinalValue      float64   `json:"final_value"      db:"final_value"`
	ConfidenceScore int       `json:"confidence_score" db:"confidence_score"`
	FallbackUsed    bool      `json:"fallback_used"    db:"fallback_used"`
	CreatedAt       time.Time `json:"created_at"       db:"created_at"`
}

// JobRun records one execution of a scheduled job.
type JobRun struct {
	ID           string     `json:"id"                      db:"id"`
	JobName      string     `json:"job_name"                db:"job_name"`
	StartedAt    time.Time  `json:"started_at"              db:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"  db:"completed_at"`
	Status       string     `json:"status"                  db:"status"`
	ErrorText    string     `json:"error_text,omitempty"    db:"error_text"`
	RowsAffected *int       `json:"rows_affected,omitempty" db:"rows_affected"`
}
