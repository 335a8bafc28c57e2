package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/grammalecte-api/internal/domain"
	"github.com/heartmarshall/grammalecte-api/internal/service/checker"
)

// maxCheckBody caps the /check request body.
const maxCheckBody = 4 << 20

//go:generate moq -out check_service_mock_test.go -pkg rest . checkService

type checkService interface {
	Check(ctx context.Context, in checker.CheckInput) (*domain.CheckResult, error)
	Suggest(ctx context.Context, in checker.SuggestInput) ([]string, error)
	Options(ctx context.Context) (*checker.OptionsReport, error)
}

// CheckHandler serves the checking, suggestion and option endpoints.
type CheckHandler struct {
	svc checkService
	log *slog.Logger
}

// NewCheckHandler creates a CheckHandler.
func NewCheckHandler(svc checkService, logger *slog.Logger) *CheckHandler {
	return &CheckHandler{svc: svc, log: logger.With("handler", "check")}
}

type checkRequest struct {
	Text       *string        `json:"text"`
	FormatText bool           `json:"format_text"`
	Options    map[string]any `json:"options"`
}

type correctionResponse struct {
	Paragraph   int      `json:"paragraph"`
	Category    string   `json:"category"`
	Start       int      `json:"start"`
	End         int      `json:"end"`
	Text        string   `json:"text"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
	RuleID      *string  `json:"rule_id"`
}

type checkResponse struct {
	Program       string               `json:"program"`
	Version       string               `json:"version"`
	Lang          string               `json:"lang"`
	Data          []correctionResponse `json:"data"`
	FormattedText *string              `json:"formatted_text,omitempty"`
	Error         *string              `json:"error"`
}

// Check handles POST /check. Engine failures still answer 200 with empty
// data and the error field set.
func (h *CheckHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCheckBody))
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == nil {
		handleError(h.log, w, r, domain.NewValidationError("text", "required"))
		return
	}

	result, err := h.svc.Check(r.Context(), checker.CheckInput{
		Text:       *req.Text,
		FormatText: req.FormatText,
		Options:    req.Options,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCheckResponse(result))
}

type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Suggest handles GET /suggest/{token}.
func (h *CheckHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.svc.Suggest(r.Context(), checker.SuggestInput{Token: r.PathValue("token")})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestResponse{Suggestions: suggestions})
}

type optionsResponse struct {
	Options        domain.OptionSet `json:"options"`
	DefaultOptions domain.OptionSet `json:"default_options"`
}

// Options handles GET /options.
func (h *CheckHandler) Options(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Options(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, optionsResponse{
		Options:        nonNilOptions(report.Options),
		DefaultOptions: nonNilOptions(report.Defaults),
	})
}

func toCheckResponse(result *domain.CheckResult) checkResponse {
	resp := checkResponse{
		Program:       result.Engine.Program,
		Version:       result.Engine.Version,
		Lang:          result.Engine.Lang,
		Data:          make([]correctionResponse, 0, len(result.Corrections)),
		FormattedText: result.FormattedText,
	}
	if result.Failed() {
		msg := result.Error
		resp.Error = &msg
	}
	for _, c := range result.Corrections {
		suggestions := c.Suggestions
		if suggestions == nil {
			suggestions = []string{}
		}
		resp.Data = append(resp.Data, correctionResponse{
			Paragraph:   c.Paragraph,
			Category:    c.Category.String(),
			Start:       c.Start,
			End:         c.End,
			Text:        c.Text,
			Message:     c.Message,
			Suggestions: suggestions,
			RuleID:      c.RuleID,
		})
	}
	return resp
}

func nonNilOptions(o domain.OptionSet) domain.OptionSet {
	if o == nil {
		return domain.OptionSet{}
	}
	return o
}
