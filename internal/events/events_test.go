package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/vehicle-valuator/internal/events"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

var (
	_ events.Publisher = (*events.NATSPublisher)(nil)
	_ events.Publisher = events.NoOp{}
)

func startNATS(t *testing.T) *natsserver.Server {
	t.Helper()

	ns, err := natsserver.NewServer(&natsserver.Options{Port: -1})
	require.NoError(t, err)
	ns.Start()
	if !ns.ReadyForConnections(2 * time.Second) {
		t.Fatal("nats not ready")
	}
	t.Cleanup(ns.Shutdown)
	return ns
}

func testResult() *domain.ValuationResult {
	return &domain.ValuationResult{
		ID:              "val-1",
		CorrelationID:   "corr-1",
		Vehicle:         domain.Vehicle{Year: 2020, Make: "Toyota", Model: "Camry"},
		ZIP:             "94103",
		BaseMethod:      domain.MethodMarket,
		FinalValue:      22360,
		ConfidenceScore: 78,
		SourcesUsed:     []string{domain.SourceLocal, domain.SourceMarket},
		CreatedAt:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNATSPublisher_PublishValuation(t *testing.T) {
	t.Parallel()

	ns := startNATS(t)

	sub, err := nats.Connect(ns.ClientURL())
	require.NoError(t, err)
	defer sub.Close()

	msgs := make(chan *nats.Msg, 1)
	s, err := sub.ChanSubscribe("valuations.test", msgs)
	require.NoError(t, err)
	defer func() { _ = s.Unsubscribe() }()
	require.NoError(t, sub.Flush())

	pub, err := events.Connect(ns.ClientURL(), "valuations.test")
	require.NoError(t, err)
	defer pub.Close()

	require.NoError(t, pub.Ping(context.Background()))
	require.NoError(t, pub.PublishValuation(context.Background(), testResult()))

	select {
	case msg := <-msgs:
		assert.Equal(t, "val-1", msg.Header.Get("Nats-Msg-Id"))
		assert.Equal(t, "corr-1", msg.Header.Get("X-Correlation-ID"))

		var ev events.ValuationCompleted
		require.NoError(t, json.Unmarshal(msg.Data, &ev))
		assert.Equal(t, "val-1", ev.ValuationID)
		assert.Equal(t, "Camry", ev.Model)
		assert.InDelta(t, 22360, ev.FinalValue, 0.001)
		assert.Equal(t, domain.MethodMarket, ev.BaseMethod)
		assert.Equal(t, []string{"local", "market_listings"}, ev.SourcesUsed)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for valuation event")
	}
}

func TestConnect_DefaultSubject(t *testing.T) {
	t.Parallel()

	ns := startNATS(t)

	sub, err := nats.Connect(ns.ClientURL())
	require.NoError(t, err)
	defer sub.Close()

	msgs := make(chan *nats.Msg, 1)
	_, err = sub.ChanSubscribe(events.DefaultSubject, msgs)
	require.NoError(t, err)
	require.NoError(t, sub.Flush())

	pub, err := events.Connect(ns.ClientURL(), "")
	require.NoError(t, err)
	defer pub.Close()

	require.NoError(t, pub.PublishValuation(context.Background(), testResult()))

	select {
	case msg := <-msgs:
		assert.Equal(t, events.DefaultSubject, msg.Subject)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for valuation event")
	}
}

func TestConnect_Unreachable(t *testing.T) {
	t.Parallel()

	_, err := events.Connect("nats://127.0.0.1:1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connecting to nats")
}

func TestNoOp(t *testing.T) {
	t.Parallel()

	var p events.Publisher = events.NoOp{}
	require.NoError(t, p.PublishValuation(context.Background(), testResult()))
	p.Close()
}
