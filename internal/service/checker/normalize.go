package checker

import (
	"github.com/heartmarshall/grammalecte-api/internal/domain"
	"github.com/heartmarshall/grammalecte-api/internal/textseg"
)

// normalize converts a paragraph report into document corrections.
// checked indexes the paragraph exactly as the engine saw it; spans are
// already bounded by its length.
func normalize(report ParagraphReport, tracker *Tracker, checked *textseg.Index) []domain.Correction {
	if report.Status != StatusOK {
		return nil
	}

	out := make([]domain.Correction, 0, len(report.Diagnostics))
	for _, d := range report.Diagnostics {
		start, end := tracker.Span(d.Start, d.End)
		text, _ := checked.Slice(d.Start, d.End)

		message := d.Message
		if d.Category == domain.CategorySpelling {
			message = domain.SpellingMessagePrefix + d.Message
		}

		suggestions := d.Suggestions
		if suggestions == nil {
			suggestions = []string{}
		}

		out = append(out, domain.Correction{
			Paragraph:   report.Index,
			Category:    d.Category,
			Start:       start,
			End:         end,
			Text:        text,
			Message:     message,
			Suggestions: suggestions,
			RuleID:      d.RuleID,
		})
	}
	return out
}
