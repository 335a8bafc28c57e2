// Package stats reports aggregate check activity from the check log.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/grammalecte-api/internal/domain"
)

const (
	DefaultWindow = 24 * time.Hour
	MaxWindow     = 30 * 24 * time.Hour
	MinWindow     = time.Minute
)

type statsRepo interface {
	Stats(ctx context.Context, since time.Time) (domain.CheckStats, error)
}

// Service provides check statistics.
type Service struct {
	repo statsRepo
	now  func() time.Time
	log  *slog.Logger
}

// NewService creates a stats service. A nil repo disables it.
func NewService(log *slog.Logger, repo statsRepo) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
		log:  log.With("service", "stats"),
	}
}

// StatsInput selects the reporting window, e.g. "24h". Empty means DefaultWindow.
type StatsInput struct {
	Window string
}

func (i StatsInput) parse() (time.Duration, error) {
	if i.Window == "" {
		return DefaultWindow, nil
	}
	d, err := time.ParseDuration(i.Window)
	if err != nil {
		return 0, domain.NewValidationError("window", "must be a duration such as 1h or 24h")
	}
	if d < MinWindow || d > MaxWindow {
		return 0, domain.NewValidationError("window", fmt.Sprintf("must be between %s and %s", MinWindow, MaxWindow))
	}
	return d, nil
}

// Stats aggregates checks over the requested window ending now.
func (s *Service) Stats(ctx context.Context, in StatsInput) (domain.CheckStats, error) {
	if s.repo == nil {
		return domain.CheckStats{}, fmt.Errorf("check log: %w", domain.ErrDisabled)
	}

	window, err := in.parse()
	if err != nil {
		return domain.CheckStats{}, err
	}

	since := s.now().UTC().Add(-window)
	stats, err := s.repo.Stats(ctx, since)
	if err != nil {
		s.log.ErrorContext(ctx, "stats query failed", slog.String("error", err.Error()))
		return domain.CheckStats{}, fmt.Errorf("stats: %w", err)
	}
	stats.Window = window
	return stats, nil
}
