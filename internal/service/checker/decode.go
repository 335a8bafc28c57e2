package checker

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/heartmarshall/grammalecte-api/internal/domain"
)

// ReportStatus classifies how a paragraph payload was read.
type ReportStatus int

const (
	// StatusOK means the payload was decoded.
	StatusOK ReportStatus = iota
	// StatusEmpty means the engine had nothing to report.
	StatusEmpty
	// StatusUndecodable means the payload was unreadable and was skipped.
	StatusUndecodable
)

func (s ReportStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusUndecodable:
		return "undecodable"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// ParagraphReport is the decoded engine answer for one paragraph.
type ParagraphReport struct {
	Index       int
	Status      ReportStatus
	Diagnostics []domain.Diagnostic
	Err         error
}

const payloadSchema = `{
	"type": "object",
	"properties": {
		"iParagraph": {"type": "integer"},
		"lGrammarErrors": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["nStart", "nEnd"],
				"properties": {
					"nStart": {"type": "integer", "minimum": 0},
					"nEnd": {"type": "integer", "minimum": 0},
					"sMessage": {"type": "string"},
					"aSuggestions": {"type": "array", "items": {"type": "string"}},
					"sRuleId": {"type": "string"}
				}
			}
		},
		"lSpellingErrors": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["nStart", "nEnd", "sValue"],
				"properties": {
					"nStart": {"type": "integer", "minimum": 0},
					"nEnd": {"type": "integer", "minimum": 0},
					"sValue": {"type": "string"},
					"aSuggestions": {"type": "array", "items": {"type": "string"}}
				}
			}
		}
	}
}`

var schema = jsonschema.MustCompileString("paragraph-payload.json", payloadSchema)

type rawPayload struct {
	Paragraph int           `json:"iParagraph"`
	Grammar   []rawGrammar  `json:"lGrammarErrors"`
	Spelling  []rawSpelling `json:"lSpellingErrors"`
}

type rawGrammar struct {
	Start       int      `json:"nStart"`
	End         int      `json:"nEnd"`
	Message     string   `json:"sMessage"`
	Suggestions []string `json:"aSuggestions"`
	RuleID      *string  `json:"sRuleId"`
}

type rawSpelling struct {
	Start       int      `json:"nStart"`
	End         int      `json:"nEnd"`
	Value       string   `json:"sValue"`
	Suggestions []string `json:"aSuggestions"`
}

// decodeParagraph reads one payload. Grammar diagnostics come first, then
// spelling, each in engine order. length is the rune length of the paragraph
// the engine checked; a span reaching past it makes the payload undecodable.
func decodeParagraph(index int, payload []byte, length int) ParagraphReport {
	report := ParagraphReport{Index: index}

	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		report.Status = StatusEmpty
		return report
	}

	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return undecodable(report, fmt.Errorf("parse payload: %w", err))
	}
	if err := schema.Validate(doc); err != nil {
		return undecodable(report, fmt.Errorf("payload shape: %w", err))
	}

	var raw rawPayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		return undecodable(report, fmt.Errorf("decode payload: %w", err))
	}

	diags := make([]domain.Diagnostic, 0, len(raw.Grammar)+len(raw.Spelling))
	for _, g := range raw.Grammar {
		if err := checkSpan("grammar", g.Start, g.End, length); err != nil {
			return undecodable(report, err)
		}
		diags = append(diags, domain.Diagnostic{
			Category:    domain.CategoryGrammar,
			Start:       g.Start,
			End:         g.End,
			Message:     g.Message,
			Suggestions: g.Suggestions,
			RuleID:      g.RuleID,
		})
	}
	for _, s := range raw.Spelling {
		if err := checkSpan("spelling", s.Start, s.End, length); err != nil {
			return undecodable(report, err)
		}
		diags = append(diags, domain.Diagnostic{
			Category:    domain.CategorySpelling,
			Start:       s.Start,
			End:         s.End,
			Message:     s.Value,
			Suggestions: s.Suggestions,
		})
	}

	if len(diags) == 0 {
		report.Status = StatusEmpty
		return report
	}
	report.Status = StatusOK
	report.Diagnostics = diags
	return report
}

func checkSpan(kind string, start, end, length int) error {
	switch {
	case end < start:
		return fmt.Errorf("%s span [%d,%d) is inverted", kind, start, end)
	case end > length:
		return fmt.Errorf("%s span [%d,%d) exceeds paragraph length %d", kind, start, end, length)
	}
	return nil
}

func undecodable(r ParagraphReport, err error) ParagraphReport {
	r.Status = StatusUndecodable
	r.Diagnostics = nil
	r.Err = err
	return r
}
