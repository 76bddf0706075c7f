// Package events publishes valuation-completed events to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"

	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// DefaultSubject is the subject valuation events are published on.
const DefaultSubject = "valuations.completed"

// Publisher announces completed valuations.
type Publisher interface {
	PublishValuation(ctx context.Context, r *domain.ValuationResult) error
	Close()
}

// ValuationCompleted is the event body.
type ValuationCompleted struct {
	ValuationID     string            `json:"valuation_id"`
	CorrelationID   string            `json:"correlation_id,omitempty"`
	VIN             string            `json:"vin,omitempty"`
	Year            int               `json:"year"`
	Make            string            `json:"make"`
	Model           string            `json:"model"`
	ZIP             string            `json:"zip,omitempty"`
	FinalValue      float64           `json:"final_value"`
	ConfidenceScore int               `json:"confidence_score"`
	BaseMethod      domain.BaseMethod `json:"base_method"`
	SourcesUsed     []string          `json:"sources_used"`
	FallbackUsed    bool              `json:"fallback_used"`
	CreatedAt       time.Time         `json:"created_at"`
}

// NewValuationCompleted builds the event for r.
func NewValuationCompleted(r *domain.ValuationResult) ValuationCompleted {
	return ValuationCompleted{
		ValuationID:     r.ID,
		CorrelationID:   r.CorrelationID,
		VIN:             r.Vehicle.VIN,
		Year:            r.Vehicle.Year,
		Make:            r.Vehicle.Make,
		Model:           r.Vehicle.Model,
		ZIP:             r.ZIP,
		FinalValue:      r.FinalValue,
		ConfidenceScore: r.ConfidenceScore,
		BaseMethod:      r.BaseMethod,
		SourcesUsed:     r.SourcesUsed,
		FallbackUsed:    r.FallbackUsed,
		CreatedAt:       r.CreatedAt,
	}
}

// headerCarrier adapts nats.Msg headers for OTel propagation.
type headerCarrier nats.Msg

func (c *headerCarrier) Get(key string) string {
	if c.Header == nil {
		return ""
	}
	return c.Header.Get(key)
}

func (c *headerCarrier) Set(key, val string) {
	if c.Header == nil {
		c.Header = make(nats.Header)
	}
	c.Header.Set(key, val)
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.Header))
	for k := range c.Header {
		keys = append(keys, k)
	}
	return keys
}

// NATSPublisher publishes events on a NATS connection it owns.
type NATSPublisher struct {
	nc      *nats.Conn
	subject string
}

// Connect dials url and returns a publisher for subject.
func Connect(url, subject string, opts ...nats.Option) (*NATSPublisher, error) {
	if subject == "" {
		subject = DefaultSubject
	}
	opts = append([]nats.Option{
		nats.Name("vehicle-valuator"),
		nats.MaxReconnects(-1),
	}, opts...)

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats: %w", err)
	}
	return &NATSPublisher{nc: nc, subject: subject}, nil
}

// PublishValuation implements Publisher. Trace context from ctx travels in
// the message headers.
func (p *NATSPublisher) PublishValuation(ctx context.Context, r *domain.ValuationResult) error {
	data, err := json.Marshal(NewValuationCompleted(r))
	if err != nil {
		return fmt.Errorf("marshaling valuation event: %w", err)
	}

	msg := &nats.Msg{Subject: p.subject, Data: data, Header: nats.Header{}}
	msg.Header.Set("Nats-Msg-Id", r.ID)
	if r.CorrelationID != "" {
		msg.Header.Set("X-Correlation-ID", r.CorrelationID)
	}
	otel.GetTextMapPropagator().Inject(ctx, (*headerCarrier)(msg))

	if err := p.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("publishing to %s: %w", p.subject, err)
	}
	return nil
}

// Ping flushes the connection to confirm the server is reachable.
func (p *NATSPublisher) Ping(ctx context.Context) error {
	return p.nc.FlushWithContext(ctx)
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	_ = p.nc.Drain()
}

// NoOp discards events.
type NoOp struct{}

// PublishValuation implements Publisher.
func (NoOp) PublishValuation(context.Context, *domain.ValuationResult) error { return nil }

// Close implements Publisher.
func (NoOp) Close() {}
