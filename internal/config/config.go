package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Engine    EngineConfig    `yaml:"engine"`
	Cache     CacheConfig     `yaml:"cache"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	OTel      OTelConfig      `yaml:"otel"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Engine drivers.
const (
	DriverGrammalecte = "grammalecte"
	DriverStub        = "stub"
)

// EngineConfig holds grammar engine settings.
type EngineConfig struct {
	Driver           string        `yaml:"driver"            env:"ENGINE_DRIVER"            env-default:"grammalecte"`
	BaseURL          string        `yaml:"base_url"          env:"ENGINE_BASE_URL"          env-default:"http://localhost:8080"`
	Lang             string        `yaml:"lang"              env:"ENGINE_LANG"              env-default:"fr"`
	Timeout          time.Duration `yaml:"timeout"           env:"ENGINE_TIMEOUT"           env-default:"10s"`
	StartupTimeout   time.Duration `yaml:"startup_timeout"   env:"ENGINE_STARTUP_TIMEOUT"   env-default:"60s"`
	RetryAttempts    uint          `yaml:"retry_attempts"    env:"ENGINE_RETRY_ATTEMPTS"    env-default:"3"`
	RetryDelay       time.Duration `yaml:"retry_delay"       env:"ENGINE_RETRY_DELAY"       env-default:"200ms"`
	MaxConcurrency   int           `yaml:"max_concurrency"   env:"ENGINE_MAX_CONCURRENCY"   env-default:"8"`
	ParagraphWorkers int           `yaml:"paragraph_workers" env:"ENGINE_PARAGRAPH_WORKERS" env-default:"4"`
	BreakerFailures  uint32        `yaml:"breaker_failures"  env:"ENGINE_BREAKER_FAILURES"  env-default:"5"`
	BreakerCooldown  time.Duration `yaml:"breaker_cooldown"  env:"ENGINE_BREAKER_COOLDOWN"  env-default:"30s"`
	MaxTextLength    int           `yaml:"max_text_length"   env:"ENGINE_MAX_TEXT_LENGTH"   env-default:"100000"`

	// FormatDisabledRules names typography rules skipped when format_text is set.
	FormatDisabledRules []string `yaml:"format_disabled_rules" env:"FORMAT_DISABLED_RULES" env-separator:","`
}

// Program is the engine identity reported to clients, e.g. "grammalecte-fr".
func (e EngineConfig) Program() string {
	return "grammalecte-" + e.Lang
}

// CacheConfig holds paragraph cache settings.
type CacheConfig struct {
	Enabled  bool          `yaml:"enabled"   env:"CACHE_ENABLED"   env-default:"true"`
	Size     int           `yaml:"size"      env:"CACHE_SIZE"      env-default:"4096"`
	TTL      time.Duration `yaml:"ttl"       env:"CACHE_TTL"       env-default:"1h"`
	RedisURL string        `yaml:"redis_url" env:"CACHE_REDIS_URL"`
}

// DatabaseConfig holds PostgreSQL connection settings.
// An empty DSN disables the check log.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// RetentionDays is how long check log rows are kept by cmd/prune-checklog.
	RetentionDays int `yaml:"retention_days" env:"DATABASE_RETENTION_DAYS" env-default:"90"`
}

// Enabled reports whether a database is configured.
func (d DatabaseConfig) Enabled() bool {
	return strings.TrimSpace(d.DSN) != ""
}

// AuthConfig holds API token settings.
// An empty secret leaves the API open.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"grammalecte-api"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"AUTH_TOKEN_TTL"  env-default:"720h"`
}

// Enabled reports whether bearer tokens are required.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// RateLimitConfig holds per-IP rate limiting settings. Zero disables it.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM" env-default:"120"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// OTelConfig holds tracing export settings. An empty endpoint disables export.
type OTelConfig struct {
	Endpoint    string  `yaml:"endpoint"     env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Headers     string  `yaml:"headers"      env:"OTEL_EXPORTER_OTLP_HEADERS"`
	Insecure    bool    `yaml:"insecure"     env:"OTEL_EXPORTER_OTLP_INSECURE" env-default:"false"`
	ServiceName string  `yaml:"service_name" env:"OTEL_SERVICE_NAME"           env-default:"grammalecte-api"`
	SampleRatio float64 `yaml:"sample_ratio" env:"OTEL_SAMPLE_RATIO"           env-default:"1.0"`
}

// Enabled reports whether spans are exported.
func (o OTelConfig) Enabled() bool {
	return strings.TrimSpace(o.Endpoint) != ""
}

// HeaderMap parses Headers ("k1=v1,k2=v2") into a map.
func (o OTelConfig) HeaderMap() map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(o.Headers, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || k == "" {
			continue
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}
