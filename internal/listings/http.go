package listings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/vehicle-valuator/internal/metrics"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// maxResponseBytes caps how much of a provider response is read.
const maxResponseBytes = 8 << 20

// HTTPSource implements Source against a JSON listing search endpoint.
//
// The endpoint receives make, model, year, trim and zip query parameters and
// answers with {"listings": [...]}. Listing objects are passed through
// untouched for the normalizer.
type HTTPSource struct {
	name     string
	endpoint string
	apiKey   string
	client   *http.Client
	limiter  *rate.Limiter
}

// HTTPOption configures the HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		s.client = hc
	}
}

// WithRateLimit throttles outbound requests to perSecond with the given burst.
func WithRateLimit(perSecond float64, burst int) HTTPOption {
	return func(s *HTTPSource) {
		s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithAPIKey sends key as a bearer token.
func WithAPIKey(key string) HTTPOption {
	return func(s *HTTPSource) {
		s.apiKey = key
	}
}

// NewHTTPSource creates a listing source named name that queries endpoint.
func NewHTTPSource(name, endpoint string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		name:     name,
		endpoint: endpoint,
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the source identifier used for trust tiers.
func (s *HTTPSource) Name() string {
	return s.name
}

type searchResponse struct {
	Listings []domain.RawListing `json:"listings"`
	Total    int                 `json:"total"`
}

// FetchListings implements Source.
func (s *HTTPSource) FetchListings(
	ctx context.Context,
	v domain.Vehicle,
	zip string,
) ([]domain.RawListing, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	u, err := s.buildURL(v, zip)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	metrics.ListingFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("executing listing search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf(
			"listing source %s error (status %d): %s",
			s.name,
			resp.StatusCode,
			string(body),
		)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("parsing listing response: %w", err)
	}

	metrics.ListingsFetchedTotal.Add(float64(len(sr.Listings)))
	return tag(sr.Listings, s.name), nil
}

func (s *HTTPSource) buildURL(v domain.Vehicle, zip string) (string, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing listing endpoint: %w", err)
	}

	q := u.Query()
	q.Set("make", v.Make)
	q.Set("model", v.Model)
	q.Set("year", strconv.Itoa(v.Year))
	if v.Trim != "" {
		q.Set("trim", v.Trim)
	}
	if zip != "" {
		q.Set("zip", zip)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
