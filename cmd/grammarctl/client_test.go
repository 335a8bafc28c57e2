package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /check", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		var req checkRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, map[string]bool{"typo": false}, req.Options)
		_, _ = w.Write([]byte(`{
			"program": "grammalecte-fr", "version": "2.1.1", "lang": "fr",
			"data": [{"paragraph": 1, "category": "grammar", "start": 8, "end": 13,
				"text": "beaux", "message": "Accord.", "suggestions": ["beau"], "rule_id": "gv1"}],
			"error": null
		}`))
	})
	mux.HandleFunc("GET /suggest/{token}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(suggestResult{Suggestions: []string{r.PathValue("token"), "bonjour"}})
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"healthy","service":"grammalecte-api","version":"2.1.1","lang":"fr"}`))
	})
	mux.HandleFunc("GET /options", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"grammar engine unavailable"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAPIClient_Check(t *testing.T) {
	srv := fakeAPI(t)
	c := newAPIClient(srv.URL+"/", "secret-token", time.Second)

	res, err := c.Check(context.Background(), checkRequest{Text: "Il fait beaux.", Options: map[string]bool{"typo": false}})
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "beaux", res.Data[0].Text)
	assert.Nil(t, res.Error)
}

func TestAPIClient_ErrorBody(t *testing.T) {
	srv := fakeAPI(t)
	c := newAPIClient(srv.URL, "", time.Second)

	_, err := c.Options(context.Background())
	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, "grammar engine unavailable", apiErr.Message)

	_, err = c.Check(context.Background(), checkRequest{Text: "x"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_CheckFromStdin(t *testing.T) {
	srv := fakeAPI(t)

	out, err := runCLI(t, "Il fait beaux.", "check", "--server", srv.URL, "--token", "secret-token", "--opt", "typo=false")
	require.NoError(t, err)
	assert.Contains(t, out, "1:9 grammar: Accord.")
	assert.Contains(t, out, "  Il fait beaux.\n          ^^^^^\n")
}

func TestCLI_TokenFromEnv(t *testing.T) {
	srv := fakeAPI(t)
	t.Setenv("GRAMMARCTL_TOKEN", "secret-token")
	t.Setenv("GRAMMARCTL_SERVER", srv.URL)

	out, err := runCLI(t, "Il fait beaux.", "check", "-o", "json", "--opt", "typo=false")
	require.NoError(t, err)

	var res checkResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "2.1.1", res.Version)
}

func TestCLI_Suggest(t *testing.T) {
	srv := fakeAPI(t)

	out, err := runCLI(t, "", "suggest", "bonjur", "--server", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "bonjur\nbonjour\n", out)
}

func TestCLI_HealthYAML(t *testing.T) {
	srv := fakeAPI(t)

	out, err := runCLI(t, "", "health", "--server", srv.URL, "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "status: healthy\n")
	assert.Contains(t, out, "version: 2.1.1\n")
}

func TestCLI_BadOption(t *testing.T) {
	_, err := runCLI(t, "x", "check", "--opt", "typo=maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "typo=maybe")
}

func TestCLI_ConfigFile(t *testing.T) {
	srv := fakeAPI(t)
	cfg := t.TempDir() + "/grammarctl.yaml"
	require.NoError(t, os.WriteFile(cfg, []byte("server: "+srv.URL+"\ntoken: secret-token\n"), 0o600))

	out, err := runCLI(t, "Il fait beaux.", "check", "--config", cfg, "--opt", "typo=false")
	require.NoError(t, err)
	assert.Contains(t, out, "1 issue(s)")
}

func TestCLI_BadOutputFormat(t *testing.T) {
	_, err := runCLI(t, "", "version", "-o", "xml")
	require.Error(t, err)
}
