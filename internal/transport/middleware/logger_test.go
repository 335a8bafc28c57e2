package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/heartmarshall/grammalecte-api/pkg/ctxutil"
)

// logEntry runs h behind Logger and returns the single decoded log line.
func logEntry(t *testing.T, h http.Handler, req *http.Request) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	Logger(logger)(h).ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["msg"] != "http.request" {
		t.Errorf("msg = %v", entry["msg"])
	}
	return entry
}

func TestLogger_RecordsResponse(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})

	entry := logEntry(t, h, httptest.NewRequest(http.MethodGet, "/health", nil))

	want := map[string]any{
		"level":  "INFO",
		"method": "GET",
		"path":   "/health",
		"status": float64(200),
		"bytes":  float64(len(`{"status":"healthy"}`)),
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %v", k, entry[k], v)
		}
	}
	if _, ok := entry["duration"]; !ok {
		t.Error("duration missing")
	}
	if _, ok := entry["client_id"]; ok {
		t.Error("client_id logged for an anonymous request")
	}
}

func TestLogger_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusBadRequest, "WARN"},
		{http.StatusTooManyRequests, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
		{http.StatusServiceUnavailable, "ERROR"},
	}
	for _, tt := range tests {
		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(tt.status) })
		entry := logEntry(t, h, httptest.NewRequest(http.MethodPost, "/check", nil))
		if entry["level"] != tt.level {
			t.Errorf("status %d: level = %v, want %s", tt.status, entry["level"], tt.level)
		}
	}
}

func TestLogger_RoutePatternFromMux(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /suggest/{token}", func(w http.ResponseWriter, r *http.Request) {})

	entry := logEntry(t, mux, httptest.NewRequest(http.MethodGet, "/suggest/beaux", nil))

	if entry["route"] != "GET /suggest/{token}" {
		t.Errorf("route = %v", entry["route"])
	}
	if entry["path"] != "/suggest/beaux" {
		t.Errorf("path = %v", entry["path"])
	}
}

func TestLogger_ContextIdentifiers(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/check", nil)
	ctx := ctxutil.WithRequestID(req.Context(), "req-123")
	ctx = ctxutil.WithClientID(ctx, "editor")

	entry := logEntry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), req.WithContext(ctx))

	if entry["request_id"] != "req-123" {
		t.Errorf("request_id = %v", entry["request_id"])
	}
	if entry["client_id"] != "editor" {
		t.Errorf("client_id = %v", entry["client_id"])
	}
}
