package cmd

import (
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/donaldgifford/vehicle-valuator/internal/api/handlers"
	"github.com/donaldgifford/vehicle-valuator/internal/config"
	"github.com/donaldgifford/vehicle-valuator/internal/events"
	"github.com/donaldgifford/vehicle-valuator/internal/explain"
	"github.com/donaldgifford/vehicle-valuator/internal/geo"
	"github.com/donaldgifford/vehicle-valuator/internal/listings"
	"github.com/donaldgifford/vehicle-valuator/internal/notify"
	"github.com/donaldgifford/vehicle-valuator/internal/remote"
	"github.com/donaldgifford/vehicle-valuator/internal/store"
	"github.com/donaldgifford/vehicle-valuator/internal/store/sqlite"
	"github.com/donaldgifford/vehicle-valuator/internal/valuation"
	"github.com/donaldgifford/vehicle-valuator/pkg/adjust"
	"github.com/donaldgifford/vehicle-valuator/pkg/pricing"
)

// dependencies holds the collaborators built from config.
type dependencies struct {
	orchestrator  *valuation.Orchestrator
	notifier      notify.Notifier
	pingers       map[string]handlers.Pinger
	schedulerOpts []valuation.SchedulerOption
	closers       []func()
}

func (d *dependencies) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

func wire(cfg *config.Config, s *store.PostgresStore, log *slog.Logger) (*dependencies, error) {
	d := &dependencies{
		pingers: map[string]handlers.Pinger{"database": s},
	}

	cache, err := listingCache(cfg, s, d, log)
	if err != nil {
		d.close()
		return nil, err
	}

	publisher, err := eventPublisher(cfg, d, log)
	if err != nil {
		d.close()
		return nil, err
	}

	opts := []valuation.Option{
		valuation.WithLogger(log),
		valuation.WithResolver(pricing.NewResolver(
			pricing.WithConfig(cfg.Valuation.Pricing()),
			pricing.WithLogger(log),
		)),
		valuation.WithAdjuster(adjust.NewEngine(
			adjust.WithConfig(cfg.Valuation.Adjust()),
			adjust.WithClassifier(geo.NewZIP3Classifier()),
			adjust.WithLogger(log),
		)),
		valuation.WithExplainer(explainer(cfg), cfg.Explain.Timeout),
		valuation.WithAuditSink(s, cfg.Valuation.AuditTimeout),
		valuation.WithPublisher(publisher),
		valuation.WithFinalFloor(cfg.Valuation.FinalFloor),
		valuation.WithYearTolerance(cfg.Valuation.YearTolerance),
	}

	if src := listingSource(cfg, cache, log); src != nil {
		opts = append(opts, valuation.WithListingSource(src, cfg.Listings.Timeout))
	}

	if cfg.Remote.Enabled {
		delegate := remote.NewHTTPDelegate(cfg.Remote.Name, cfg.Remote.Endpoint,
			remote.WithAPIKey(cfg.Remote.APIKey),
			remote.WithRateLimit(cfg.Remote.RateLimit.PerSecond, cfg.Remote.RateLimit.Burst),
		)
		opts = append(opts, valuation.WithDelegate(cfg.Remote.Name, delegate, cfg.Remote.Timeout))
		log.Info("remote valuation enabled", "name", cfg.Remote.Name, "endpoint", cfg.Remote.Endpoint)
	}

	d.orchestrator = valuation.NewOrchestrator(opts...)

	if cfg.Notifications.Discord.Enabled {
		d.notifier = notify.NewDiscordNotifier(cfg.Notifications.Discord.WebhookURL)
	} else {
		d.notifier = notify.NewNoOpNotifier(log)
	}

	return d, nil
}

// listingCache returns the configured cache, or nil when caching is off.
func listingCache(
	cfg *config.Config,
	s *store.PostgresStore,
	d *dependencies,
	log *slog.Logger,
) (listings.Cache, error) {
	switch cfg.Listings.Cache.Backend {
	case config.CacheBackendNone:
		return nil, nil
	case config.CacheBackendSQLite:
		c, err := sqlite.Open(cfg.Listings.Cache.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite listing cache: %w", err)
		}
		d.closers = append(d.closers, func() {
			if err := c.Close(); err != nil {
				log.Warn("closing sqlite listing cache", "error", err)
			}
		})
		d.pingers["listing_cache"] = c
		d.schedulerOpts = append(d.schedulerOpts, valuation.WithCachePruner(c))
		log.Info("listing cache", "backend", "sqlite", "path", cfg.Listings.Cache.SQLitePath)
		return c, nil
	default:
		log.Info("listing cache", "backend", "postgres")
		return s, nil
	}
}

// listingSource builds the provider chain. It returns nil when no provider
// is configured, which leaves valuations to raw listings or depreciation.
func listingSource(cfg *config.Config, cache listings.Cache, log *slog.Logger) listings.Source {
	if len(cfg.Listings.Sources) == 0 {
		return nil
	}

	named := make([]listings.Named, 0, len(cfg.Listings.Sources))
	for _, sc := range cfg.Listings.Sources {
		named = append(named, listings.Named{
			Name: sc.Name,
			Source: listings.NewHTTPSource(sc.Name, sc.Endpoint,
				listings.WithAPIKey(sc.APIKey),
				listings.WithRateLimit(cfg.Listings.RateLimit.PerSecond, cfg.Listings.RateLimit.Burst),
			),
		})
	}

	var src listings.Source = named[0].Source
	if len(named) > 1 {
		src = listings.NewMultiSource(log, named...)
	}

	if cache != nil {
		src = listings.NewCachingSource(src, cache, cfg.Listings.Cache.TTL, listings.WithCacheLogger(log))
	}
	return src
}

func eventPublisher(cfg *config.Config, d *dependencies, log *slog.Logger) (events.Publisher, error) {
	if !cfg.Events.NATS.Enabled {
		return events.NoOp{}, nil
	}

	p, err := events.Connect(cfg.Events.NATS.URL, cfg.Events.NATS.Subject,
		nats.Name("vehicle-valuator"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats: %w", err)
	}
	d.closers = append(d.closers, p.Close)
	d.pingers["events"] = p
	log.Info("publishing valuation events", "url", cfg.Events.NATS.URL, "subject", cfg.Events.NATS.Subject)
	return p, nil
}

func explainer(cfg *config.Config) explain.Explainer {
	if cfg.Explain.Backend == config.ExplainBackendOpenAICompat {
		oc := cfg.Explain.OpenAICompat
		return explain.NewOpenAICompat(oc.Endpoint, oc.Model, explain.WithAPIKey(oc.APIKey))
	}
	return explain.Template{}
}
