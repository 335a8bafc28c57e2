package rest

import (
	"net/http"

	"github.com/heartmarshall/grammalecte-api/internal/transport/middleware"
)

// Routes groups the handlers served by the API.
type Routes struct {
	Health *HealthHandler
	Check  *CheckHandler
	Stats  *StatsHandler
}

// Register mounts the routes on mux. protect wraps the endpoints that need
// a client token; pass nil to leave them open.
func (rt Routes) Register(mux *http.ServeMux, protect middleware.Middleware) {
	guard := middleware.Chain(protect)
	guarded := func(h http.HandlerFunc) http.Handler { return guard(h) }

	mux.HandleFunc("GET /{$}", rt.Health.Root)
	mux.HandleFunc("GET /health", rt.Health.Health)
	mux.HandleFunc("GET /ready", rt.Health.Ready)

	mux.Handle("POST /check", guarded(rt.Check.Check))
	mux.Handle("GET /suggest/{token}", guarded(rt.Check.Suggest))
	mux.Handle("GET /options", guarded(rt.Check.Options))
	mux.Handle("GET /stats", guarded(rt.Stats.Stats))
}
