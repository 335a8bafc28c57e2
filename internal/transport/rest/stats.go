package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/grammalecte-api/internal/domain"
	"github.com/heartmarshall/grammalecte-api/internal/service/stats"
)

type statsService interface {
	Stats(ctx context.Context, in stats.StatsInput) (domain.CheckStats, error)
}

// StatsHandler serves aggregated check log figures.
type StatsHandler struct {
	svc statsService
	log *slog.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(svc statsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: logger.With("handler", "stats")}
}

type statsResponse struct {
	Window        string  `json:"window"`
	Since         string  `json:"since"`
	Checks        int     `json:"checks"`
	Failures      int     `json:"failures"`
	Corrections   int     `json:"corrections"`
	Grammar       int     `json:"grammar"`
	Spelling      int     `json:"spelling"`
	Undecodable   int     `json:"undecodable"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
}

// Stats handles GET /stats?window=24h.
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context(), stats.StatsInput{Window: r.URL.Query().Get("window")})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Window:        st.Window.String(),
		Since:         st.Since.UTC().Format(time.RFC3339),
		Checks:        st.Checks,
		Failures:      st.Failures,
		Corrections:   st.Corrections(),
		Grammar:       st.Grammar,
		Spelling:      st.Spelling,
		Undecodable:   st.Undecodable,
		AvgDurationMS: float64(st.AvgDuration.Microseconds()) / 1000,
	})
}
