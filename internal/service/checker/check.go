package checker

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"slices"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/grammalecte-api/internal/domain"
	"github.com/heartmarshall/grammalecte-api/internal/textseg"
	"github.com/heartmarshall/grammalecte-api/pkg/ctxutil"
)

// Check runs a document through the engine.
//
// A validation error is returned for bad input. Engine failures are not
// returned as errors: the result then has no corrections and Error set.
func (s *Service) Check(ctx context.Context, in CheckInput) (*domain.CheckResult, error) {
	if err := in.Validate(s.settings.MaxTextLength); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "checker.Check", trace.WithAttributes(
		attribute.Int("text.runes", utf8.RuneCountInString(in.Text)),
		attribute.Bool("format_text", in.FormatText),
	))
	defer span.End()

	started := time.Now()

	info, err := s.engine.Info(ctx)
	if err != nil {
		return s.failed(ctx, span, in, domain.EngineInfo{}, started, err), nil
	}

	defaults, err := s.engine.DefaultOptions(ctx)
	if err != nil {
		return s.failed(ctx, span, in, info, started, err), nil
	}
	opts, err := domain.ParseOptions(in.Options, defaults)
	if err != nil {
		return nil, err
	}

	paragraphs := slices.Collect(textseg.Paragraphs(in.Text))
	checked := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		checked[i] = p.Text
		if in.FormatText {
			checked[i] = s.formatter.Format(p.Text)
		}
	}

	// Overrides equal to the defaults share cache entries with plain requests.
	effective := defaults.Merge(opts)

	payloads, err := s.fetchAll(ctx, info, opts, effective, in.FormatText, paragraphs, checked)
	if err != nil {
		return s.failed(ctx, span, in, info, started, err), nil
	}

	result := &domain.CheckResult{
		Engine:      info,
		Corrections: []domain.Correction{},
		Paragraphs:  len(paragraphs),
	}
	if in.FormatText {
		formatted := textseg.Join(paragraphs, checked)
		result.FormattedText = &formatted
	}

	var tracker Tracker
	for i, p := range paragraphs {
		idx := textseg.NewIndex(checked[i])
		report := decodeParagraph(p.Index, payloads[i], idx.Len())
		if report.Status == StatusUndecodable {
			result.Undecodable++
			s.log.WarnContext(ctx, "skipping undecodable paragraph",
				slog.Int("paragraph", p.Index),
				slog.String("error", report.Err.Error()),
			)
		}

		result.Corrections = append(result.Corrections, normalize(report, &tracker, idx)...)
		tracker.Advance(p, idx.Len())
	}

	span.SetAttributes(
		attribute.Int("paragraphs", result.Paragraphs),
		attribute.Int("corrections", len(result.Corrections)),
	)
	s.log.DebugContext(ctx, "check done",
		slog.Int("paragraphs", result.Paragraphs),
		slog.Int("corrections", len(result.Corrections)),
		slog.Int("undecodable", result.Undecodable),
	)
	s.record(ctx, in, result, time.Since(started))
	return result, nil
}

// fetchAll collects one payload per paragraph, in paragraph order.
// Empty paragraphs are not sent to the engine.
func (s *Service) fetchAll(
	ctx context.Context,
	info domain.EngineInfo,
	opts, effective domain.OptionSet,
	formatText bool,
	paragraphs []textseg.Paragraph,
	checked []string,
) ([][]byte, error) {
	payloads := make([][]byte, len(paragraphs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.settings.Workers)

	for i, p := range paragraphs {
		if checked[i] == "" {
			continue
		}
		g.Go(func() error {
			payload, err := s.fetch(gctx, info, opts, effective, formatText, p.Index, checked[i])
			if err != nil {
				return err
			}
			payloads[i] = payload
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return payloads, nil
}

// fetch checks one paragraph. opts go to the engine as given; effective, the
// defaults with opts applied, keys the cache.
func (s *Service) fetch(ctx context.Context, info domain.EngineInfo, opts, effective domain.OptionSet, formatText bool, index int, text string) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "checker.paragraph", trace.WithAttributes(attribute.Int("paragraph.index", index)))
	defer span.End()

	key := cacheKey{
		Lang:       info.Lang,
		Version:    info.Version,
		Options:    effective,
		FormatText: formatText,
		Paragraph:  text,
	}.String()

	if s.cache != nil {
		payload, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.WarnContext(ctx, "cache get failed", slog.String("error", err.Error()))
		} else if ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return payload, nil
		}
	}

	payload, err := s.engine.CheckParagraph(ctx, index, text, opts, formatText)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("paragraph %d: %w", index, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, payload); err != nil {
			s.log.WarnContext(ctx, "cache set failed", slog.String("error", err.Error()))
		}
	}
	return payload, nil
}

func (s *Service) failed(ctx context.Context, span trace.Span, in CheckInput, info domain.EngineInfo, started time.Time, err error) *domain.CheckResult {
	span.RecordError(err)
	span.SetStatus(codes.Error, EngineFailureMessage)
	s.log.ErrorContext(ctx, "check failed", slog.String("error", err.Error()))

	result := &domain.CheckResult{
		Engine:      info,
		Corrections: []domain.Correction{},
		Error:       EngineFailureMessage,
	}
	s.record(ctx, in, result, time.Since(started))
	return result
}

// record logs the check. Failures are logged and never reach the caller.
func (s *Service) record(ctx context.Context, in CheckInput, result *domain.CheckResult, elapsed time.Duration) {
	if s.recorder == nil {
		return
	}

	digest := blake2b.Sum256([]byte(in.Text))
	clientID, _ := ctxutil.ClientIDFromCtx(ctx)
	rec := domain.CheckRecord{
		RequestID:   ctxutil.RequestIDFromCtx(ctx),
		ClientID:    clientID,
		TextDigest:  hex.EncodeToString(digest[:]),
		Runes:       utf8.RuneCountInString(in.Text),
		Paragraphs:  result.Paragraphs,
		Grammar:     result.CountByCategory(domain.CategoryGrammar),
		Spelling:    result.CountByCategory(domain.CategorySpelling),
		Undecodable: result.Undecodable,
		FormatText:  in.FormatText,
		Failed:      result.Failed(),
		Duration:    elapsed,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.recorder.Record(context.WithoutCancel(ctx), rec); err != nil {
		s.log.WarnContext(ctx, "record check failed", slog.String("error", err.Error()))
	}
}
