package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/heartmarshall/grammalecte-api/internal/domain"
)

// ServiceName is reported by /health.
const ServiceName = "grammalecte-api"

// engineProbe is the part of the engine the health endpoints look at.
type engineProbe interface {
	Info(ctx context.Context) (domain.EngineInfo, error)
	Options(ctx context.Context) (domain.OptionSet, error)
}

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and health endpoints.
type HealthHandler struct {
	engine engineProbe
	db     dbPinger
}

// NewHealthHandler creates a HealthHandler. db may be nil when no database
// is configured.
func NewHealthHandler(engine engineProbe, db dbPinger) *HealthHandler {
	return &HealthHandler{engine: engine, db: db}
}

type rootResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the JSON response for /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
	Lang    string `json:"lang,omitempty"`
}

// ReadyResponse is the JSON response for /ready.
type ReadyResponse struct {
	Status     string                `json:"status"`
	Components map[string]CompStatus `json:"components"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Root is the liveness message. Always returns 200.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{Message: "Grammalecte API is running"})
}

// Health reports the engine identity.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	info, err := h.engine.Info(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:  "unhealthy",
			Service: ServiceName,
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: ServiceName,
		Version: info.Version,
		Lang:    info.Lang,
	})
}

// Ready is the readiness probe. It makes a live engine round trip and pings
// the database when one is configured: 200 if all are up, 503 if not.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	components := make(map[string]CompStatus)
	overall := "ok"

	probe := func(name string, fn func(context.Context) error) {
		start := time.Now()
		if err := fn(ctx); err != nil {
			components[name] = CompStatus{Status: "down"}
			overall = "down"
			return
		}
		components[name] = CompStatus{Status: "ok", Latency: time.Since(start).String()}
	}

	probe("engine", func(ctx context.Context) error {
		_, err := h.engine.Options(ctx)
		return err
	})
	if h.db != nil {
		probe("database", h.db.Ping)
	}

	status := http.StatusOK
	if overall != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, ReadyResponse{
		Status:     overall,
		Components: components,
		Timestamp:  time.Now(),
	})
}
