package checker

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/grammalecte-api/internal/domain"
)

// Suggest returns spelling suggestions for a token, flattened across the
// engine's suggestion lists in order. A nil error with an empty list means
// the engine had no suggestions.
func (s *Service) Suggest(ctx context.Context, in SuggestInput) ([]string, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	lists, err := s.engine.Suggest(ctx, strings.TrimSpace(in.Token))
	if err != nil {
		s.log.ErrorContext(ctx, "suggest failed", slog.String("error", err.Error()))
		return nil, domain.ErrEngineUnavailable
	}

	out := []string{}
	for _, list := range lists {
		out = append(out, list...)
	}
	return out, nil
}

// OptionsReport lists the engine's options and their defaults.
type OptionsReport struct {
	Options  domain.OptionSet
	Defaults domain.OptionSet
}

// Info returns the engine identity.
func (s *Service) Info(ctx context.Context) (domain.EngineInfo, error) {
	return s.engine.Info(ctx)
}

// Options reports the engine's current and default option values.
func (s *Service) Options(ctx context.Context) (*OptionsReport, error) {
	current, err := s.engine.Options(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "options failed", slog.String("error", err.Error()))
		return nil, domain.ErrEngineUnavailable
	}
	defaults, err := s.engine.DefaultOptions(ctx)
	if err != nil {
		return nil, domain.ErrEngineUnavailable
	}
	return &OptionsReport{Options: current, Defaults: defaults}, nil
}
