// Package valuation sequences the valuation pipeline: request validation,
// optional remote delegation, listing acquisition, normalization,
// aggregation, base pricing, adjustments and confidence scoring. It then
// hands the finished result to the audit, explanation and event collaborators.
package valuation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/donaldgifford/vehicle-valuator/internal/events"
	"github.com/donaldgifford/vehicle-valuator/internal/explain"
	"github.com/donaldgifford/vehicle-valuator/internal/listings"
	"github.com/donaldgifford/vehicle-valuator/internal/metrics"
	"github.com/donaldgifford/vehicle-valuator/internal/remote"
	"github.com/donaldgifford/vehicle-valuator/internal/telemetry"
	"github.com/donaldgifford/vehicle-valuator/pkg/adjust"
	"github.com/donaldgifford/vehicle-valuator/pkg/normalize"
	"github.com/donaldgifford/vehicle-valuator/pkg/pricing"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// Defaults for collaborator timeouts and pipeline constants.
const (
	DefaultListingTimeout = 5 * time.Second
	DefaultRemoteTimeout  = 5 * time.Second
	DefaultExplainTimeout = 10 * time.Second
	DefaultAuditTimeout   = 5 * time.Second
	DefaultFinalFloor     = 500.0
	DefaultYearTolerance  = 2
)

// AuditSink receives one record per completed valuation.
type AuditSink interface {
	RecordValuation(ctx context.Context, rec *domain.AuditRecord) error
}

// Orchestrator runs valuations. It holds no per-request state and is safe
// for concurrent use.
type Orchestrator struct {
	normalizer *normalize.Normalizer
	resolver   *pricing.Resolver
	adjuster   *adjust.Engine
	classifier adjust.RegionClassifier

	source         listings.Source
	listingTimeout time.Duration

	delegate      remote.Delegate
	delegateName  string
	remoteTimeout time.Duration

	explainer      explain.Explainer
	explainTimeout time.Duration

	audit        AuditSink
	auditTimeout time.Duration
	publisher    events.Publisher

	finalFloor    float64
	yearTolerance int

	log   *slog.Logger
	now   func() time.Time
	newID func() string

	inflight sync.WaitGroup
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.log = l
	}
}

// WithClock sets the time source for the pipeline and result timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithIDGenerator overrides how valuation and correlation IDs are created.
func WithIDGenerator(gen func() string) Option {
	return func(o *Orchestrator) {
		o.newID = gen
	}
}

// WithResolver sets the base price resolver.
func WithResolver(r *pricing.Resolver) Option {
	return func(o *Orchestrator) {
		o.resolver = r
	}
}

// WithAdjuster sets the adjustment engine.
func WithAdjuster(e *adjust.Engine) Option {
	return func(o *Orchestrator) {
		o.adjuster = e
	}
}

// WithClassifier sets the region classifier used by the default adjustment
// engine. It has no effect when WithAdjuster is also given.
func WithClassifier(c adjust.RegionClassifier) Option {
	return func(o *Orchestrator) {
		o.classifier = c
	}
}

// WithListingSource sets where listings come from when a request carries
// none. Each fetch is bounded by timeout.
func WithListingSource(src listings.Source, timeout time.Duration) Option {
	return func(o *Orchestrator) {
		o.source = src
		if timeout > 0 {
			o.listingTimeout = timeout
		}
	}
}

// WithDelegate enables remote delegation. name appears in SourcesUsed as
// "remote:<name>".
func WithDelegate(name string, d remote.Delegate, timeout time.Duration) Option {
	return func(o *Orchestrator) {
		o.delegate = d
		o.delegateName = name
		if timeout > 0 {
			o.remoteTimeout = timeout
		}
	}
}

// WithExplainer sets the narrative backend.
func WithExplainer(e explain.Explainer, timeout time.Duration) Option {
	return func(o *Orchestrator) {
		o.explainer = e
		if timeout > 0 {
			o.explainTimeout = timeout
		}
	}
}

// WithAuditSink sets where audit records are written.
func WithAuditSink(s AuditSink, timeout time.Duration) Option {
	return func(o *Orchestrator) {
		o.audit = s
		if timeout > 0 {
			o.auditTimeout = timeout
		}
	}
}

// WithPublisher sets the valuation event publisher.
func WithPublisher(p events.Publisher) Option {
	return func(o *Orchestrator) {
		o.publisher = p
	}
}

// WithFinalFloor sets the minimum final value.
func WithFinalFloor(v float64) Option {
	return func(o *Orchestrator) {
		o.finalFloor = v
	}
}

// WithYearTolerance sets how many model years a comparable listing may
// differ by.
func WithYearTolerance(years int) Option {
	return func(o *Orchestrator) {
		o.yearTolerance = years
	}
}

// NewOrchestrator creates an Orchestrator. Without options it runs the
// local pipeline only, with no listing source, audit sink or publisher.
func NewOrchestrator(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		listingTimeout: DefaultListingTimeout,
		remoteTimeout:  DefaultRemoteTimeout,
		explainTimeout: DefaultExplainTimeout,
		auditTimeout:   DefaultAuditTimeout,
		finalFloor:     DefaultFinalFloor,
		yearTolerance:  DefaultYearTolerance,
		log:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:            time.Now,
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.normalizer == nil {
		o.normalizer = normalize.New(normalize.WithClock(o.now))
	}
	if o.resolver == nil {
		o.resolver = pricing.NewResolver(pricing.WithClock(o.now), pricing.WithLogger(o.log))
	}
	if o.adjuster == nil {
		aopts := []adjust.Option{adjust.WithClock(o.now), adjust.WithLogger(o.log)}
		if o.classifier != nil {
			aopts = append(aopts, adjust.WithClassifier(o.classifier))
		}
		o.adjuster = adjust.NewEngine(aopts...)
	}
	if o.explainer == nil {
		o.explainer = explain.Template{}
	}
	if o.publisher == nil {
		o.publisher = events.NoOp{}
	}
	return o
}

// ComputeValuation values one vehicle.
//
// The only error returned is a *domain.ValidationError for bad input. Every
// collaborator failure degrades to absent data and the call still returns
// a complete result.
func (o *Orchestrator) ComputeValuation(
	ctx context.Context,
	req *domain.ValuationRequest,
) (*domain.ValuationResult, error) {
	start := time.Now()
	ctx, span := telemetry.Tracer().Start(ctx, "valuation.ComputeValuation")
	defer span.End()

	in, err := o.validate(req)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			metrics.ValidationFailuresTotal.WithLabelValues(ve.Code).Inc()
			span.SetAttributes(attribute.String("valuation.error_code", ve.Code))
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if in.correlationID == "" {
		in.correlationID = o.newID()
	}
	span.SetAttributes(attribute.String("valuation.correlation_id", in.correlationID))

	var (
		result *domain.ValuationResult
		hint   int
	)
	trail := []domain.Stage{domain.StageReceived}

	fallback := false
	if o.delegate != nil {
		if r, ok := o.tryRemote(ctx, in, trail); ok {
			result, hint = r, r.ConfidenceScore
		} else {
			fallback = true
		}
	}
	if result == nil {
		result, hint = o.runLocal(ctx, in, trail, fallback)
	}

	result.Explanation = o.explain(ctx, result)

	o.emit(ctx, in, result, hint)

	metrics.ValuationsTotal.WithLabelValues(string(result.BaseMethod)).Inc()
	metrics.ValuationDuration.Observe(time.Since(start).Seconds())
	metrics.ConfidenceDistribution.Observe(float64(result.ConfidenceScore))
	if result.BaseMethod == domain.MethodFloor {
		metrics.FloorEstimatesTotal.Inc()
	}

	span.SetAttributes(
		attribute.String("valuation.id", result.ID),
		attribute.String("valuation.method", string(result.BaseMethod)),
		attribute.Bool("valuation.fallback", result.FallbackUsed),
		attribute.Int("valuation.listings", result.ListingCount),
		attribute.Int("valuation.confidence", result.ConfidenceScore),
	)

	o.log.Info("valuation complete",
		"valuation_id", result.ID,
		"correlation_id", result.CorrelationID,
		"method", result.BaseMethod,
		"final_value", result.FinalValue,
		"confidence", result.ConfidenceScore,
		"fallback", result.FallbackUsed,
	)

	return result, nil
}

// Wait blocks until every in-flight audit write has finished.
func (o *Orchestrator) Wait() {
	o.inflight.Wait()
}

// explain returns the narrative for r. Remote results keep their own text.
func (o *Orchestrator) explain(ctx context.Context, r *domain.ValuationResult) string {
	if r.Explanation != "" {
		return r.Explanation
	}

	ectx, cancel := context.WithTimeout(ctx, o.explainTimeout)
	defer cancel()

	text, err := o.explainer.Explain(ectx, r)
	if err != nil || text == "" {
		if err != nil {
			metrics.ExplainFailuresTotal.Inc()
			o.log.Warn("explanation failed, using template",
				"backend", o.explainer.Name(),
				"valuation_id", r.ID,
				"error", err,
			)
		}
		return explain.Text(r)
	}
	return text
}
