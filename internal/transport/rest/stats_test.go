package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/grammalecte-api/internal/domain"
	"github.com/heartmarshall/grammalecte-api/internal/service/stats"
)

type statsServiceFunc func(ctx context.Context, in stats.StatsInput) (domain.CheckStats, error)

func (f statsServiceFunc) Stats(ctx context.Context, in stats.StatsInput) (domain.CheckStats, error) {
	return f(ctx, in)
}

func TestStats(t *testing.T) {
	t.Parallel()

	since := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		query    string
		svc      statsServiceFunc
		wantCode int
		wantBody string
	}{
		{
			name:  "totals",
			query: "?window=24h",
			svc: func(_ context.Context, in stats.StatsInput) (domain.CheckStats, error) {
				if in.Window != "24h" {
					return domain.CheckStats{}, fmt.Errorf("unexpected window %q", in.Window)
				}
				return domain.CheckStats{
					Window:      24 * time.Hour,
					Since:       since,
					Checks:      10,
					Failures:    1,
					Grammar:     7,
					Spelling:    5,
					Undecodable: 2,
					AvgDuration: 1500 * time.Microsecond,
				}, nil
			},
			wantCode: http.StatusOK,
			wantBody: `{
				"window": "24h0m0s",
				"since": "2026-10-16T12:00:00Z",
				"checks": 10,
				"failures": 1,
				"corrections": 12,
				"grammar": 7,
				"spelling": 5,
				"undecodable": 2,
				"avg_duration_ms": 1.5
			}`,
		},
		{
			name:  "disabled",
			query: "",
			svc: func(context.Context, stats.StatsInput) (domain.CheckStats, error) {
				return domain.CheckStats{}, fmt.Errorf("check log: %w", domain.ErrDisabled)
			},
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"check log is not configured"}`,
		},
		{
			name:  "bad window",
			query: "?window=forever",
			svc: func(context.Context, stats.StatsInput) (domain.CheckStats, error) {
				return domain.CheckStats{}, domain.NewValidationError("window", "must be a duration such as 1h or 24h")
			},
			wantCode: http.StatusBadRequest,
			wantBody: `{
				"error": "validation: window: must be a duration such as 1h or 24h",
				"fields": [{"field": "window", "message": "must be a duration such as 1h or 24h"}]
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewStatsHandler(tt.svc, slog.New(slog.DiscardHandler))

			req := httptest.NewRequest(http.MethodGet, "/stats"+tt.query, nil)
			rec := httptest.NewRecorder()
			h.Stats(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
