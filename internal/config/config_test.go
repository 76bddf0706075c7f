package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "testdb", cfg.Database.Name)
				assert.Equal(t, "testuser", cfg.Database.User)
				assert.Equal(t, ExplainBackendTemplate, cfg.Explain.Backend)
				assert.Empty(t, cfg.Listings.Sources)
				assert.False(t, cfg.Remote.Enabled)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 10, cfg.Database.PoolSize)
				assert.Equal(t, 5*time.Second, cfg.Listings.Timeout)
				assert.Equal(t, 5.0, cfg.Listings.RateLimit.PerSecond)
				assert.Equal(t, 10, cfg.Listings.RateLimit.Burst)
				assert.Equal(t, CacheBackendPostgres, cfg.Listings.Cache.Backend)
				assert.Equal(t, 6*time.Hour, cfg.Listings.Cache.TTL)
				assert.Empty(t, cfg.Listings.Cache.SQLitePath)
				assert.Equal(t, "primary", cfg.Remote.Name)
				assert.Equal(t, 5*time.Second, cfg.Remote.Timeout)
				assert.Equal(t, 2.0, cfg.Remote.RateLimit.PerSecond)
				assert.Equal(t, 4, cfg.Remote.RateLimit.Burst)
				assert.Equal(t, 500.0, cfg.Valuation.FinalFloor)
				assert.Equal(t, 3000.0, cfg.Valuation.BaseFloor)
				assert.Equal(t, 150000.0, cfg.Valuation.Ceiling)
				assert.Equal(t, 0.10, cfg.Valuation.MileageRate)
				assert.Equal(t, 12000, cfg.Valuation.ExpectedMilesPerYear)
				assert.Equal(t, 3, cfg.Valuation.MinMarketListings)
				assert.Equal(t, 10, cfg.Valuation.HintCap)
				assert.Equal(t, 2, cfg.Valuation.YearTolerance)
				assert.Equal(t, 0.03, cfg.Valuation.UrbanPremium)
				assert.Equal(t, 5*time.Second, cfg.Valuation.AuditTimeout)
				assert.Equal(t, 10*time.Second, cfg.Explain.Timeout)
				assert.Equal(t, "nats://127.0.0.1:4222", cfg.Events.NATS.URL)
				assert.Equal(t, "valuations.completed", cfg.Events.NATS.Subject)
				assert.Equal(t, time.Hour, cfg.Schedule.CachePruneInterval)
				assert.Equal(t, 24*time.Hour, cfg.Schedule.AuditPruneInterval)
				assert.Equal(t, 90*24*time.Hour, cfg.Schedule.AuditRetention)
				assert.Equal(t, "localhost:4317", cfg.Telemetry.Endpoint)
				assert.Equal(t, "vehicle-valuator", cfg.Telemetry.ServiceName)
				assert.Equal(t, 1.0, cfg.Telemetry.SampleRatio)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
  password: "${TEST_DB_PASSWORD}"
`,
			envVars: map[string]string{
				"TEST_DB_PASSWORD": "secret123",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "secret123", cfg.Database.Password)
			},
		},
		{
			name: "secret environment overrides yaml",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
  password: from-yaml
remote:
  enabled: true
  endpoint: http://remote.internal
explain:
  backend: openai_compat
  openai_compat:
    endpoint: http://llm.internal/v1
    model: small
notifications:
  discord:
    enabled: true
`,
			envVars: map[string]string{
				"VV_DATABASE_PASSWORD":   "from-env",
				"VV_EXPLAIN_API_KEY":     "sk-test",
				"VV_DISCORD_WEBHOOK_URL": "https://discord.com/api/webhooks/456",
				"VV_REMOTE_API_KEY":      "remote-key",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "from-env", cfg.Database.Password)
				assert.Equal(t, "sk-test", cfg.Explain.OpenAICompat.APIKey)
				assert.Equal(t, "https://discord.com/api/webhooks/456", cfg.Notifications.Discord.WebhookURL)
				assert.Equal(t, "remote-key", cfg.Remote.APIKey)
			},
		},
		{
			name: "listing source keys from yaml and environment",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
listings:
  sources:
    - name: primary
      endpoint: http://listings-a.internal/search
      api_key: yaml-key
    - name: secondary
      endpoint: http://listings-b.internal/search
`,
			envVars: map[string]string{
				"VV_LISTINGS_API_KEY": "env-key",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				require.Len(t, cfg.Listings.Sources, 2)
				assert.Equal(t, "yaml-key", cfg.Listings.Sources[0].APIKey)
				assert.Equal(t, "env-key", cfg.Listings.Sources[1].APIKey)
			},
		},
		{
			name: "missing required database.host",
			yaml: `
database:
  name: testdb
  user: testuser
`,
			wantErr: "database.host is required",
		},
		{
			name: "missing required database.name",
			yaml: `
database:
  host: localhost
  user: testuser
`,
			wantErr: "database.name is required",
		},
		{
			name: "missing required database.user",
			yaml: `
database:
  host: localhost
  name: testdb
`,
			wantErr: "database.user is required",
		},
		{
			name: "invalid explain backend",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
explain:
  backend: invalid_backend
`,
			wantErr: `explain.backend must be one of: template, openai_compat (got "invalid_backend")`,
		},
		{
			name: "openai_compat backend missing endpoint",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
explain:
  backend: openai_compat
  openai_compat:
    model: small
`,
			wantErr: "explain.openai_compat.endpoint is required when backend is openai_compat",
		},
		{
			name: "openai_compat backend missing model",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
explain:
  backend: openai_compat
  openai_compat:
    endpoint: http://llm.internal/v1
`,
			wantErr: "explain.openai_compat.model is required when backend is openai_compat",
		},
		{
			name: "remote enabled without endpoint",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
remote:
  enabled: true
`,
			wantErr: "remote.endpoint is required when remote is enabled",
		},
		{
			name: "discord enabled without webhook",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
notifications:
  discord:
    enabled: true
`,
			wantErr: "notifications.discord.webhook_url is required when discord is enabled",
		},
		{
			name: "listing source missing endpoint",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
listings:
  sources:
    - name: autotrader
`,
			wantErr: "listings.sources[0].endpoint is required",
		},
		{
			name: "duplicate listing source",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
listings:
  sources:
    - name: autotrader
      endpoint: http://a
    - name: autotrader
      endpoint: http://b
`,
			wantErr: `listings.sources[1].name "autotrader" is duplicated`,
		},
		{
			name: "invalid cache backend",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
listings:
  cache:
    backend: redis
`,
			wantErr: `listings.cache.backend must be one of: postgres, sqlite, none (got "redis")`,
		},
		{
			name: "ceiling below base floor",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
valuation:
  base_floor: 5000
  ceiling: 4000
`,
			wantErr: "valuation.ceiling must be greater than valuation.base_floor",
		},
		{
			name: "sample ratio out of range",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
telemetry:
  sample_ratio: 1.5
`,
			wantErr: "telemetry.sample_ratio must be within [0, 1]",
		},
		{
			name: "multiple errors are joined",
			yaml: `
explain:
  backend: nope
`,
			wantErr: "database.host is required\ndatabase.name is required\ndatabase.user is required",
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
		{
			name: "sqlite cache gets a default path",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
listings:
  cache:
    backend: sqlite
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, CacheBackendSQLite, cfg.Listings.Cache.Backend)
				assert.Equal(t, "vehicle-valuator-cache.db", cfg.Listings.Cache.SQLitePath)
			},
		},
		{
			name: "full config with overrides",
			yaml: `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 60s
  write_timeout: 60s
database:
  host: db.example.com
  port: 5433
  name: valuator_prod
  user: admin
  password: pass
  sslmode: require
  pool_size: 20
listings:
  sources:
    - name: autotrader
      endpoint: https://listings.example.com/search
    - name: cars.com
      endpoint: https://cars.example.com/search
  timeout: 3s
  rate_limit:
    per_second: 1
    burst: 2
  cache:
    backend: sqlite
    ttl: 12h
    sqlite_path: /var/lib/vv/cache.db
remote:
  enabled: true
  name: appraiser
  endpoint: https://appraiser.example.com/v1/valuations
  timeout: 2s
valuation:
  final_floor: 750
  base_floor: 2500
  ceiling: 250000
  mileage_rate: 0.08
  expected_miles_per_year: 13500
  min_market_listings: 5
  hint_cap: 20
  year_tolerance: 1
  urban_premium: 0.04
explain:
  backend: openai_compat
  openai_compat:
    endpoint: http://llm:8000/v1
    model: qwen2.5
  timeout: 20s
notifications:
  discord:
    enabled: true
    webhook_url: https://discord.com/api/webhooks/123
events:
  nats:
    enabled: true
    url: nats://nats:4222
    subject: vv.valuations
schedule:
  cache_prune_interval: 30m
  audit_prune_interval: 12h
  audit_retention: 720h
telemetry:
  enabled: true
  endpoint: otel:4317
  insecure: true
  sample_ratio: 0.25
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "db.example.com", cfg.Database.Host)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, 20, cfg.Database.PoolSize)
				require.Len(t, cfg.Listings.Sources, 2)
				assert.Equal(t, "cars.com", cfg.Listings.Sources[1].Name)
				assert.Equal(t, 3*time.Second, cfg.Listings.Timeout)
				assert.Equal(t, 1.0, cfg.Listings.RateLimit.PerSecond)
				assert.Equal(t, "/var/lib/vv/cache.db", cfg.Listings.Cache.SQLitePath)
				assert.Equal(t, 12*time.Hour, cfg.Listings.Cache.TTL)
				assert.True(t, cfg.Remote.Enabled)
				assert.Equal(t, "appraiser", cfg.Remote.Name)
				assert.Equal(t, 2*time.Second, cfg.Remote.Timeout)
				assert.Equal(t, 750.0, cfg.Valuation.FinalFloor)
				assert.Equal(t, 13500, cfg.Valuation.ExpectedMilesPerYear)
				assert.Equal(t, 1, cfg.Valuation.YearTolerance)
				assert.Equal(t, "qwen2.5", cfg.Explain.OpenAICompat.Model)
				assert.Equal(t, 20*time.Second, cfg.Explain.Timeout)
				assert.True(t, cfg.Notifications.Discord.Enabled)
				assert.Equal(t, "https://discord.com/api/webhooks/123", cfg.Notifications.Discord.WebhookURL)
				assert.True(t, cfg.Events.NATS.Enabled)
				assert.Equal(t, "vv.valuations", cfg.Events.NATS.Subject)
				assert.Equal(t, 30*time.Minute, cfg.Schedule.CachePruneInterval)
				assert.Equal(t, 720*time.Hour, cfg.Schedule.AuditRetention)
				assert.True(t, cfg.Telemetry.Insecure)
				assert.Equal(t, 0.25, cfg.Telemetry.SampleRatio)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			// Set env vars for this test.
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			// Write YAML to a temp file.
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_ExampleConfig(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join("..", "..", "configs", "config.example.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Server.PublicURL)
	assert.Equal(t, "sqlite", cfg.Listings.Cache.Backend)
	require.Len(t, cfg.Listings.Sources, 1)
	assert.Equal(t, "mock", cfg.Listings.Sources[0].Name)
	assert.Equal(t, ExplainBackendTemplate, cfg.Explain.Backend)
	assert.InDelta(t, 500.0, cfg.Valuation.FinalFloor, 0.001)
	assert.Equal(t, 90*24*time.Hour, cfg.Schedule.AuditRetention)
	assert.False(t, cfg.Remote.Enabled)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "basic DSN",
			cfg: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				Name:     "testdb",
				User:     "testuser",
				Password: "testpass",
				SSLMode:  "disable",
				PoolSize: 10,
			},
			want: "host=localhost port=5432 dbname=testdb user=testuser password=testpass sslmode=disable pool_max_conns=10",
		},
		{
			name: "production DSN",
			cfg: DatabaseConfig{
				Host:     "db.example.com",
				Port:     5433,
				Name:     "valuator",
				User:     "admin",
				Password: "s3cret",
				SSLMode:  "require",
				PoolSize: 20,
			},
			want: "host=db.example.com port=5433 dbname=valuator user=admin password=s3cret sslmode=require pool_max_conns=20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}

func TestValuationConfig_Conversions(t *testing.T) {
	t.Parallel()

	v := ValuationConfig{
		BaseFloor:            2500,
		Ceiling:              90000,
		MileageRate:          0.08,
		ExpectedMilesPerYear: 15000,
		MinMarketListings:    4,
		HintCap:              12,
		UrbanPremium:         0.05,
	}

	p := v.Pricing()
	assert.Equal(t, 2500.0, p.FloorValue)
	assert.Equal(t, 90000.0, p.Ceiling)
	assert.Equal(t, 0.08, p.MileageRate)
	assert.Equal(t, 15000, p.ExpectedMilesPerYear)
	assert.Equal(t, 4, p.MinMarketListings)
	assert.Equal(t, 12, p.HintCap)
	assert.Equal(t, 0.15, p.MaxMileagePenalty, "clamps keep their defaults")

	a := v.Adjust()
	assert.Equal(t, 0.08, a.MileageRate)
	assert.Equal(t, 15000, a.ExpectedMilesPerYear)
	assert.Equal(t, 4, a.MinMarketListings)
	assert.Equal(t, 0.05, a.UrbanPremium)
}
