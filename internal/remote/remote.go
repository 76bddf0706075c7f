// Package remote delegates valuations to an external valuation service.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/vehicle-valuator/internal/metrics"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// CorrelationHeader carries the request correlation ID to the remote service.
const CorrelationHeader = "X-Correlation-ID"

// ErrInvalidResponse is returned when the remote answer cannot be used.
var ErrInvalidResponse = errors.New("invalid remote valuation response")

// Delegate runs a valuation on a remote service.
type Delegate interface {
	RunRemoteValuation(
		ctx context.Context,
		req *domain.ValuationRequest,
		correlationID string,
	) (*Response, error)
}

// Request is the body posted to the remote service. Raw listings stay local.
type Request struct {
	Vehicle     domain.Vehicle     `json:"vehicle"`
	Mileage     *int               `json:"mileage,omitempty"`
	Condition   domain.Condition   `json:"condition,omitempty"`
	TitleStatus domain.TitleStatus `json:"title_status,omitempty"`
	ZIP         string             `json:"zip,omitempty"`
	Features    []string           `json:"features,omitempty"`
	SaleDate    *time.Time         `json:"sale_date,omitempty"`
}

// Response is the subset of the remote answer the orchestrator maps.
type Response struct {
	EstimatedValue float64             `json:"estimated_value"`
	Confidence     int                 `json:"confidence"`
	PriceRange     *domain.PriceRange  `json:"price_range,omitempty"`
	Adjustments    []domain.Adjustment `json:"adjustments,omitempty"`
	Explanation    string              `json:"explanation,omitempty"`
	ListingCount   int                 `json:"listing_count"`
}

// HTTPDelegate posts valuation requests to a remote JSON endpoint.
type HTTPDelegate struct {
	name     string
	endpoint string
	apiKey   string
	client   *http.Client
	limiter  *rate.Limiter
}

// Option configures an HTTPDelegate.
type Option func(*HTTPDelegate)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(d *HTTPDelegate) {
		d.client = c
	}
}

// WithAPIKey sends key as a bearer token.
func WithAPIKey(key string) Option {
	return func(d *HTTPDelegate) {
		d.apiKey = key
	}
}

// WithRateLimit throttles outbound calls.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(d *HTTPDelegate) {
		d.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// NewHTTPDelegate creates a delegate named name that posts to endpoint.
func NewHTTPDelegate(name, endpoint string, opts ...Option) *HTTPDelegate {
	d := &HTTPDelegate{
		name:     name,
		endpoint: endpoint,
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the delegate label used in SourcesUsed.
func (d *HTTPDelegate) Name() string {
	return d.name
}

// RunRemoteValuation implements Delegate.
func (d *HTTPDelegate) RunRemoteValuation(
	ctx context.Context,
	req *domain.ValuationRequest,
	correlationID string,
) (*Response, error) {
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	body, err := json.Marshal(Request{
		Vehicle:     req.Vehicle,
		Mileage:     req.Mileage,
		Condition:   req.Condition,
		TitleStatus: req.TitleStatus,
		ZIP:         req.ZIP,
		Features:    req.Features,
		SaleDate:    req.SaleDate,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if correlationID != "" {
		httpReq.Header.Set(CorrelationHeader, correlationID)
	}
	if d.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+d.apiKey)
	}

	metrics.RemoteCallsTotal.Inc()
	resp, err := d.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling remote %s: %w", d.name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf(
			"remote %s error (status %d): %s",
			d.name,
			resp.StatusCode,
			string(respBody),
		)
	}

	var out Response
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if err := out.validate(); err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *Response) validate() error {
	v := r.EstimatedValue
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: estimated_value %v", ErrInvalidResponse, v)
	}
	if r.Confidence < 0 || r.Confidence > 100 {
		return fmt.Errorf("%w: confidence %d", ErrInvalidResponse, r.Confidence)
	}
	return nil
}
