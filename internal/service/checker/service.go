// Package checker runs documents through the grammar engine and places the
// engine's per-paragraph diagnostics in whole-document coordinates.
package checker

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/heartmarshall/grammalecte-api/internal/domain"
)

// EngineFailureMessage is the caller-facing error when the engine cannot
// complete a request. Engine details stay in the logs.
const EngineFailureMessage = "grammar engine unavailable"

type grammarEngine interface {
	CheckParagraph(ctx context.Context, index int, paragraph string, opts domain.OptionSet, returnText bool) ([]byte, error)
	Suggest(ctx context.Context, token string) ([][]string, error)
	Info(ctx context.Context) (domain.EngineInfo, error)
	Options(ctx context.Context) (domain.OptionSet, error)
	DefaultOptions(ctx context.Context) (domain.OptionSet, error)
}

type paragraphCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte) error
}

type checkRecorder interface {
	Record(ctx context.Context, rec domain.CheckRecord) error
}

type formatter interface {
	Format(paragraph string) string
}

// Settings tunes the checker.
type Settings struct {
	// Workers bounds how many paragraphs of one document are checked at once.
	Workers int
	// MaxTextLength is the largest accepted document, in runes.
	MaxTextLength int
}

// Service checks documents and looks up suggestions.
type Service struct {
	engine    grammarEngine
	cache     paragraphCache
	recorder  checkRecorder
	formatter formatter
	settings  Settings
	tracer    trace.Tracer
	log       *slog.Logger
}

// NewService creates a checker. cache and recorder may be nil.
func NewService(
	log *slog.Logger,
	engine grammarEngine,
	formatter formatter,
	cache paragraphCache,
	recorder checkRecorder,
	settings Settings,
) *Service {
	if settings.Workers < 1 {
		settings.Workers = 1
	}
	return &Service{
		engine:    engine,
		cache:     cache,
		recorder:  recorder,
		formatter: formatter,
		settings:  settings,
		tracer:    otel.Tracer("github.com/heartmarshall/grammalecte-api/internal/service/checker"),
		log:       log.With("service", "checker"),
	}
}
