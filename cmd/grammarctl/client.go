package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// apiClient is a thin JSON client for the grammar API.
type apiClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func newAPIClient(baseURL, token string, timeout time.Duration) *apiClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &apiClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// apiError is a non-2xx answer from the server.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

type correction struct {
	Paragraph   int      `json:"paragraph"   yaml:"paragraph"`
	Category    string   `json:"category"    yaml:"category"`
	Start       int      `json:"start"       yaml:"start"`
	End         int      `json:"end"         yaml:"end"`
	Text        string   `json:"text"        yaml:"text"`
	Message     string   `json:"message"     yaml:"message"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
	RuleID      *string  `json:"rule_id"     yaml:"rule_id"`
}

type checkRequest struct {
	Text       string          `json:"text"`
	FormatText bool            `json:"format_text,omitempty"`
	Options    map[string]bool `json:"options,omitempty"`
}

type checkResult struct {
	Program       string       `json:"program"                  yaml:"program"`
	Version       string       `json:"version"                  yaml:"version"`
	Lang          string       `json:"lang"                     yaml:"lang"`
	Data          []correction `json:"data"                     yaml:"data"`
	FormattedText *string      `json:"formatted_text,omitempty" yaml:"formatted_text,omitempty"`
	Error         *string      `json:"error"                    yaml:"error"`
}

type suggestResult struct {
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
}

type healthResult struct {
	Status  string `json:"status"  yaml:"status"`
	Service string `json:"service" yaml:"service"`
	Version string `json:"version" yaml:"version"`
	Lang    string `json:"lang"    yaml:"lang"`
}

type optionsResult struct {
	Options        map[string]bool `json:"options"         yaml:"options"`
	DefaultOptions map[string]bool `json:"default_options" yaml:"default_options"`
}

func (c *apiClient) Check(ctx context.Context, req checkRequest) (*checkResult, error) {
	var out checkResult
	if err := c.do(ctx, http.MethodPost, "/check", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) Suggest(ctx context.Context, token string) (*suggestResult, error) {
	var out suggestResult
	if err := c.do(ctx, http.MethodGet, "/suggest/"+url.PathEscape(token), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) Health(ctx context.Context) (*healthResult, error) {
	var out healthResult
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) Options(ctx context.Context) (*optionsResult, error) {
	var out optionsResult
	if err := c.do(ctx, http.MethodGet, "/options", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return &apiError{Status: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
