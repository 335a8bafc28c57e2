package config

import (
	"fmt"
	"net/url"
	"slices"

	"golang.org/x/text/language"

	"github.com/heartmarshall/grammalecte-api/internal/textformat"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Engine.validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	if c.Cache.Enabled && c.Cache.RedisURL == "" && c.Cache.Size <= 0 {
		return fmt.Errorf("cache.size must be > 0 (got %d)", c.Cache.Size)
	}

	if c.Database.Enabled() && c.Database.RetentionDays < 1 {
		return fmt.Errorf("database.retention_days must be >= 1 (got %d)", c.Database.RetentionDays)
	}

	if c.Auth.Enabled() && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be >= 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	if c.OTel.SampleRatio < 0 || c.OTel.SampleRatio > 1 {
		return fmt.Errorf("otel.sample_ratio must be in [0,1] (got %v)", c.OTel.SampleRatio)
	}

	return nil
}

func (e *EngineConfig) validate() error {
	switch e.Driver {
	case DriverGrammalecte:
		u, err := url.Parse(e.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base_url must be an absolute URL (got %q)", e.BaseURL)
		}
	case DriverStub:
	default:
		return fmt.Errorf("driver must be %q or %q (got %q)", DriverGrammalecte, DriverStub, e.Driver)
	}

	if _, err := language.Parse(e.Lang); err != nil {
		return fmt.Errorf("lang %q: %w", e.Lang, err)
	}
	if e.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", e.Timeout)
	}
	if e.RetryAttempts < 1 {
		return fmt.Errorf("retry_attempts must be >= 1 (got %d)", e.RetryAttempts)
	}
	if e.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be >= 1 (got %d)", e.MaxConcurrency)
	}
	if e.ParagraphWorkers < 1 {
		return fmt.Errorf("paragraph_workers must be >= 1 (got %d)", e.ParagraphWorkers)
	}
	if e.MaxTextLength < 1 {
		return fmt.Errorf("max_text_length must be >= 1 (got %d)", e.MaxTextLength)
	}
	known := textformat.Options()
	for _, name := range e.FormatDisabledRules {
		if !slices.Contains(known, name) {
			return fmt.Errorf("format_disabled_rules: unknown rule %q", name)
		}
	}
	return nil
}
