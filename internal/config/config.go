// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/vehicle-valuator/pkg/adjust"
	"github.com/donaldgifford/vehicle-valuator/pkg/pricing"
)

// Listing cache backends.
const (
	CacheBackendPostgres = "postgres"
	CacheBackendSQLite   = "sqlite"
	CacheBackendNone     = "none"
)

// Explanation backends.
const (
	ExplainBackendTemplate     = "template"
	ExplainBackendOpenAICompat = "openai_compat"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Listings      ListingsConfig      `yaml:"listings"`
	Remote        RemoteConfig        `yaml:"remote"`
	Valuation     ValuationConfig     `yaml:"valuation"`
	Explain       ExplainConfig       `yaml:"explain"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Events        EventsConfig        `yaml:"events"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	// PublicURL is the externally reachable root used in report links.
	PublicURL string `yaml:"public_url"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s pool_max_conns=%d",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode, d.PoolSize,
	)
}

// ListingsConfig defines the market listing sources and their cache.
type ListingsConfig struct {
	Sources   []ListingSourceConfig `yaml:"sources"`
	Timeout   time.Duration         `yaml:"timeout"`
	RateLimit RateLimitConfig       `yaml:"rate_limit"`
	Cache     ListingCacheConfig    `yaml:"cache"`
}

// ListingSourceConfig is one HTTP listing provider. APIKey is sent as a
// bearer token when set.
type ListingSourceConfig struct {
	Name     string `yaml:"name"`
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
}

// ListingCacheConfig selects where fetched listings are cached.
type ListingCacheConfig struct {
	Backend    string        `yaml:"backend"` // postgres, sqlite, none
	TTL        time.Duration `yaml:"ttl"`
	SQLitePath string        `yaml:"sqlite_path"`
}

// RateLimitConfig defines outbound request rate limiting.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// RemoteConfig defines the remote valuation delegate.
type RemoteConfig struct {
	Enabled   bool            `yaml:"enabled"`
	Name      string          `yaml:"name"`
	Endpoint  string          `yaml:"endpoint"`
	APIKey    string          `yaml:"api_key"`
	Timeout   time.Duration   `yaml:"timeout"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ValuationConfig holds the pricing constants.
type ValuationConfig struct {
	FinalFloor           float64       `yaml:"final_floor"`
	BaseFloor            float64       `yaml:"base_floor"`
	Ceiling              float64       `yaml:"ceiling"`
	MileageRate          float64       `yaml:"mileage_rate"`
	ExpectedMilesPerYear int           `yaml:"expected_miles_per_year"`
	MinMarketListings    int           `yaml:"min_market_listings"`
	HintCap              int           `yaml:"hint_cap"`
	YearTolerance        int           `yaml:"year_tolerance"`
	UrbanPremium         float64       `yaml:"urban_premium"`
	AuditTimeout         time.Duration `yaml:"audit_timeout"`
}

// Pricing returns the base price resolver constants.
func (v *ValuationConfig) Pricing() pricing.Config {
	cfg := pricing.DefaultConfig()
	cfg.MinMarketListings = v.MinMarketListings
	cfg.HintCap = v.HintCap
	cfg.FloorValue = v.BaseFloor
	cfg.Ceiling = v.Ceiling
	cfg.ExpectedMilesPerYear = v.ExpectedMilesPerYear
	cfg.MileageRate = v.MileageRate
	return cfg
}

// Adjust returns the adjustment engine constants.
func (v *ValuationConfig) Adjust() adjust.Config {
	return adjust.Config{
		MileageRate:          v.MileageRate,
		ExpectedMilesPerYear: v.ExpectedMilesPerYear,
		MinMarketListings:    v.MinMarketListings,
		UrbanPremium:         v.UrbanPremium,
	}
}

// ExplainConfig selects how valuation explanations are written.
type ExplainConfig struct {
	Backend      string             `yaml:"backend"` // template, openai_compat
	OpenAICompat OpenAICompatConfig `yaml:"openai_compat"`
	Timeout      time.Duration      `yaml:"timeout"`
}

// OpenAICompatConfig defines OpenAI-compatible endpoint settings.
type OpenAICompatConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// EventsConfig defines where valuation events are published.
type EventsConfig struct {
	NATS NATSConfig `yaml:"nats"`
}

// NATSConfig defines the NATS connection.
type NATSConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// ScheduleConfig defines cron intervals.
type ScheduleConfig struct {
	CachePruneInterval time.Duration `yaml:"cache_prune_interval"`
	AuditPruneInterval time.Duration `yaml:"audit_prune_interval"`
	AuditRetention     time.Duration `yaml:"audit_retention"`
}

// TelemetryConfig defines OpenTelemetry trace export.
type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// secrets are read from the environment and take precedence over YAML.
type secrets struct {
	DatabasePassword string `env:"VV_DATABASE_PASSWORD"`
	ExplainAPIKey    string `env:"VV_EXPLAIN_API_KEY"`
	DiscordWebhook   string `env:"VV_DISCORD_WEBHOOK_URL"`
	RemoteAPIKey     string `env:"VV_REMOTE_API_KEY"`
	ListingsAPIKey   string `env:"VV_LISTINGS_API_KEY"`
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	if err := applySecrets(cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applySecrets(cfg *Config) error {
	var s secrets
	if err := env.Parse(&s); err != nil {
		return fmt.Errorf("parsing secret environment: %w", err)
	}

	if s.DatabasePassword != "" {
		cfg.Database.Password = s.DatabasePassword
	}
	if s.ExplainAPIKey != "" {
		cfg.Explain.OpenAICompat.APIKey = s.ExplainAPIKey
	}
	if s.DiscordWebhook != "" {
		cfg.Notifications.Discord.WebhookURL = s.DiscordWebhook
	}
	if s.RemoteAPIKey != "" {
		cfg.Remote.APIKey = s.RemoteAPIKey
	}
	// A per-source api_key wins over the shared listings key.
	if s.ListingsAPIKey != "" {
		for i := range cfg.Listings.Sources {
			if cfg.Listings.Sources[i].APIKey == "" {
				cfg.Listings.Sources[i].APIKey = s.ListingsAPIKey
			}
		}
	}
	return nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyListingsDefaults(&cfg.Listings)
	applyRemoteDefaults(&cfg.Remote)
	applyValuationDefaults(&cfg.Valuation)
	applyExplainDefaults(&cfg.Explain)
	applyEventsDefaults(&cfg.Events)
	applyScheduleDefaults(&cfg.Schedule)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyListingsDefaults(l *ListingsConfig) {
	if l.Timeout == 0 {
		l.Timeout = 5 * time.Second
	}
	applyRateLimitDefaults(&l.RateLimit, 5.0, 10)
	if l.Cache.Backend == "" {
		l.Cache.Backend = CacheBackendPostgres
	}
	if l.Cache.TTL == 0 {
		l.Cache.TTL = 6 * time.Hour
	}
	if l.Cache.Backend == CacheBackendSQLite && l.Cache.SQLitePath == "" {
		l.Cache.SQLitePath = "vehicle-valuator-cache.db"
	}
}

func applyRemoteDefaults(r *RemoteConfig) {
	if r.Name == "" {
		r.Name = "primary"
	}
	if r.Timeout == 0 {
		r.Timeout = 5 * time.Second
	}
	applyRateLimitDefaults(&r.RateLimit, 2.0, 4)
}

func applyRateLimitDefaults(r *RateLimitConfig, perSecond float64, burst int) {
	if r.PerSecond == 0 {
		r.PerSecond = perSecond
	}
	if r.Burst == 0 {
		r.Burst = burst
	}
}

func applyValuationDefaults(v *ValuationConfig) {
	def := pricing.DefaultConfig()
	if v.FinalFloor == 0 {
		v.FinalFloor = 500
	}
	if v.BaseFloor == 0 {
		v.BaseFloor = def.FloorValue
	}
	if v.Ceiling == 0 {
		v.Ceiling = def.Ceiling
	}
	if v.MileageRate == 0 {
		v.MileageRate = def.MileageRate
	}
	if v.ExpectedMilesPerYear == 0 {
		v.ExpectedMilesPerYear = def.ExpectedMilesPerYear
	}
	if v.MinMarketListings == 0 {
		v.MinMarketListings = def.MinMarketListings
	}
	if v.HintCap == 0 {
		v.HintCap = def.HintCap
	}
	if v.YearTolerance == 0 {
		v.YearTolerance = 2
	}
	if v.UrbanPremium == 0 {
		v.UrbanPremium = adjust.DefaultConfig().UrbanPremium
	}
	if v.AuditTimeout == 0 {
		v.AuditTimeout = 5 * time.Second
	}
}

func applyExplainDefaults(e *ExplainConfig) {
	if e.Backend == "" {
		e.Backend = ExplainBackendTemplate
	}
	if e.Timeout == 0 {
		e.Timeout = 10 * time.Second
	}
}

func applyEventsDefaults(e *EventsConfig) {
	if e.NATS.URL == "" {
		e.NATS.URL = "nats://127.0.0.1:4222"
	}
	if e.NATS.Subject == "" {
		e.NATS.Subject = "valuations.completed"
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.CachePruneInterval == 0 {
		s.CachePruneInterval = time.Hour
	}
	if s.AuditPruneInterval == 0 {
		s.AuditPruneInterval = 24 * time.Hour
	}
	if s.AuditRetention == 0 {
		s.AuditRetention = 90 * 24 * time.Hour
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.ServiceName == "" {
		t.ServiceName = "vehicle-valuator"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}

	errs = append(errs, validateListings(&cfg.Listings)...)

	if cfg.Remote.Enabled && cfg.Remote.Endpoint == "" {
		errs = append(errs, fmt.Errorf("remote.endpoint is required when remote is enabled"))
	}

	errs = append(errs, validateValuation(&cfg.Valuation)...)

	switch cfg.Explain.Backend {
	case ExplainBackendTemplate:
	case ExplainBackendOpenAICompat:
		if cfg.Explain.OpenAICompat.Endpoint == "" {
			errs = append(
				errs,
				fmt.Errorf("explain.openai_compat.endpoint is required when backend is openai_compat"),
			)
		}
		if cfg.Explain.OpenAICompat.Model == "" {
			errs = append(
				errs,
				fmt.Errorf("explain.openai_compat.model is required when backend is openai_compat"),
			)
		}
	default:
		errs = append(
			errs,
			fmt.Errorf(
				"explain.backend must be one of: template, openai_compat (got %q)",
				cfg.Explain.Backend,
			),
		)
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(
			errs,
			fmt.Errorf("notifications.discord.webhook_url is required when discord is enabled"),
		)
	}

	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("telemetry.sample_ratio must be within [0, 1]"))
	}

	return errors.Join(errs...)
}

func validateListings(l *ListingsConfig) []error {
	var errs []error

	seen := make(map[string]bool, len(l.Sources))
	for i, s := range l.Sources {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("listings.sources[%d].name is required", i))
		}
		if s.Endpoint == "" {
			errs = append(errs, fmt.Errorf("listings.sources[%d].endpoint is required", i))
		}
		if s.Name != "" && seen[s.Name] {
			errs = append(errs, fmt.Errorf("listings.sources[%d].name %q is duplicated", i, s.Name))
		}
		seen[s.Name] = true
	}

	switch l.Cache.Backend {
	case CacheBackendPostgres, CacheBackendSQLite, CacheBackendNone:
	default:
		errs = append(
			errs,
			fmt.Errorf(
				"listings.cache.backend must be one of: postgres, sqlite, none (got %q)",
				l.Cache.Backend,
			),
		)
	}

	return errs
}

func validateValuation(v *ValuationConfig) []error {
	var errs []error

	if v.FinalFloor < 0 {
		errs = append(errs, fmt.Errorf("valuation.final_floor must not be negative"))
	}
	if v.Ceiling <= v.BaseFloor {
		errs = append(errs, fmt.Errorf("valuation.ceiling must be greater than valuation.base_floor"))
	}
	if v.MileageRate < 0 {
		errs = append(errs, fmt.Errorf("valuation.mileage_rate must not be negative"))
	}
	if v.YearTolerance < 0 {
		errs = append(errs, fmt.Errorf("valuation.year_tolerance must not be negative"))
	}

	return errs
}
