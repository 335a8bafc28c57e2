// Package grammalecte talks to a grammalecte-server sidecar over HTTP.
package grammalecte

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/heartmarshall/grammalecte-api/internal/config"
	"github.com/heartmarshall/grammalecte-api/internal/domain"
	"github.com/heartmarshall/grammalecte-api/internal/engine"
)

const tracerName = "github.com/heartmarshall/grammalecte-api/internal/adapter/grammalecte"

// Client is an engine.Engine backed by grammalecte-server.
// Init must succeed before Info and DefaultOptions return data.
type Client struct {
	baseURL    string
	lang       string
	program    string
	httpClient *http.Client
	attempts   uint
	delay      time.Duration
	startup    time.Duration
	breaker    *gobreaker.CircuitBreaker
	tracer     trace.Tracer
	log        *slog.Logger

	mu       sync.RWMutex
	ready    bool
	info     domain.EngineInfo
	defaults domain.OptionSet
}

var _ engine.Engine = (*Client)(nil)

// New creates a Client from engine settings.
func New(cfg config.EngineConfig, logger *slog.Logger) *Client {
	log := logger.With("adapter", "grammalecte")

	attempts := cfg.RetryAttempts
	if attempts == 0 {
		attempts = 1
	}
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "grammalecte",
		Timeout: cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			// Client-side problems say nothing about the server's health.
			var se *statusError
			if errors.As(err, &se) && se.code < 500 {
				return true
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		lang:       cfg.Lang,
		program:    cfg.Program(),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		attempts:   attempts,
		delay:      cfg.RetryDelay,
		startup:    cfg.StartupTimeout,
		breaker:    breaker,
		tracer:     otel.Tracer(tracerName),
		log:        log,
	}
}

// Init probes the server until it answers, then snapshots the engine
// identity and default options. Retries are bounded by the startup timeout.
func (c *Client) Init(ctx context.Context) error {
	if c.startup > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.startup)
		defer cancel()
	}

	var probe []byte
	err := retry.Do(
		func() error {
			body, err := c.roundTrip(ctx, c.checkRequest("", nil, false))
			if err != nil {
				return err
			}
			probe = body
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(0),
		retry.Delay(time.Second),
		retry.MaxDelay(5*time.Second),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.log.InfoContext(ctx, "waiting for grammalecte", slog.Uint64("attempt", uint64(n+1)), slog.String("error", err.Error()))
		}),
	)
	if err != nil {
		return fmt.Errorf("grammalecte: probe %s: %w", c.baseURL, err)
	}

	env, err := parseEnvelope(probe)
	if err != nil {
		return fmt.Errorf("grammalecte: probe: %w", err)
	}

	defaults, err := c.Options(ctx)
	if err != nil {
		return fmt.Errorf("grammalecte: default options: %w", err)
	}

	info := domain.EngineInfo{Program: c.program, Version: env.version, Lang: c.lang}
	if env.lang != "" {
		info.Lang = env.lang
	}
	if env.program != "" {
		info.Program = env.program
	}

	c.mu.Lock()
	c.info = info
	c.defaults = defaults
	c.ready = true
	c.mu.Unlock()

	c.log.InfoContext(ctx, "grammalecte ready",
		slog.String("program", info.Program),
		slog.String("version", info.Version),
		slog.String("lang", info.Lang),
		slog.Int("options", len(defaults)),
	)
	return nil
}

// CheckParagraph sends one paragraph and returns its diagnostics payload.
// The payload's iParagraph is rewritten to index since the server numbers
// each request from 1.
func (c *Client) CheckParagraph(ctx context.Context, index int, paragraph string, opts domain.OptionSet, returnText bool) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "grammalecte.CheckParagraph",
		trace.WithAttributes(attribute.Int("paragraph.index", index), attribute.Int("paragraph.bytes", len(paragraph))))
	defer span.End()

	body, err := c.call(ctx, c.checkRequest(paragraph, opts, false))
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("grammalecte: check paragraph %d: %w", index, err)
	}

	env, err := parseEnvelope(body)
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("grammalecte: check paragraph %d: %w", index, err)
	}
	if env.err != "" {
		err := fmt.Errorf("grammalecte: check paragraph %d: engine error: %s", index, env.err)
		recordError(span, err)
		return nil, err
	}

	payload, err := paragraphPayload(env, index, paragraph, returnText)
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("grammalecte: check paragraph %d: %w", index, err)
	}
	return payload, nil
}

// Suggest returns spelling suggestion lists for token.
func (c *Client) Suggest(ctx context.Context, token string) ([][]string, error) {
	ctx, span := c.tracer.Start(ctx, "grammalecte.Suggest")
	defer span.End()

	body, err := c.call(ctx, func(ctx context.Context) (*http.Request, error) {
		return c.formRequest(ctx, "/suggest/"+url.PathEscape(c.lang), url.Values{"token": {token}})
	})
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("grammalecte: suggest: %w", err)
	}

	lists, err := parseSuggestions(body)
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("grammalecte: suggest: %w", err)
	}
	return lists, nil
}

// Options fetches the engine's current option values.
func (c *Client) Options(ctx context.Context) (domain.OptionSet, error) {
	ctx, span := c.tracer.Start(ctx, "grammalecte.Options")
	defer span.End()

	body, err := c.call(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/get_options/"+url.PathEscape(c.lang), nil)
	})
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("grammalecte: options: %w", err)
	}

	opts, err := parseOptions(body)
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("grammalecte: options: %w", err)
	}
	return opts, nil
}

// Info returns the identity snapshotted by Init.
func (c *Client) Info(_ context.Context) (domain.EngineInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.ready {
		return domain.EngineInfo{}, fmt.Errorf("grammalecte: not initialized: %w", domain.ErrEngineUnavailable)
	}
	return c.info, nil
}

// DefaultOptions returns the option values snapshotted by Init.
func (c *Client) DefaultOptions(_ context.Context) (domain.OptionSet, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.ready {
		return nil, fmt.Errorf("grammalecte: not initialized: %w", domain.ErrEngineUnavailable)
	}
	return c.defaults.Clone(), nil
}

type requestFunc func(ctx context.Context) (*http.Request, error)

func (c *Client) checkRequest(text string, opts domain.OptionSet, formatText bool) requestFunc {
	return func(ctx context.Context) (*http.Request, error) {
		form := url.Values{"text": {text}}
		if len(opts) > 0 {
			raw, err := json.Marshal(opts)
			if err != nil {
				return nil, fmt.Errorf("encode options: %w", err)
			}
			form.Set("options", string(raw))
		}
		if formatText {
			form.Set("tf", "on")
		}
		return c.formRequest(ctx, "/gc_text/"+url.PathEscape(c.lang), form)
	}
}

func (c *Client) formRequest(ctx context.Context, path string, form url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}

// call runs newReq through the circuit breaker with retries on network
// errors and 5xx responses.
func (c *Client) call(ctx context.Context, newReq requestFunc) ([]byte, error) {
	out, err := c.breaker.Execute(func() (any, error) {
		return retry.DoWithData(
			func() ([]byte, error) {
				return c.roundTrip(ctx, newReq)
			},
			retry.Context(ctx),
			retry.Attempts(c.attempts),
			retry.Delay(c.delay),
			retry.LastErrorOnly(true),
			retry.RetryIf(isRetryable),
			retry.OnRetry(func(n uint, err error) {
				c.log.WarnContext(ctx, "grammalecte retry", slog.Uint64("attempt", uint64(n+1)), slog.String("error", err.Error()))
			}),
		)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w", domain.ErrEngineUnavailable, err)
		}
		return nil, err
	}
	return out.([]byte), nil
}

func (c *Client) roundTrip(ctx context.Context, newReq requestFunc) ([]byte, error) {
	req, err := newReq(ctx)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("create request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode, body: truncate(body, 200)}
	}

	c.log.DebugContext(ctx, "grammalecte response",
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
	)
	return body, nil
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return "unexpected status " + strconv.Itoa(e.code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.code, e.body)
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500
	}
	return true
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func truncate(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		return s[:n]
	}
	return s
}
