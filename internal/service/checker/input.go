package checker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/grammalecte-api/internal/domain"
)

// CheckInput holds one /check request.
type CheckInput struct {
	Text       string
	FormatText bool
	// Options are per-request engine option overrides, as decoded from JSON.
	Options map[string]any
}

// Validate checks the text. Options are validated in Check against the
// engine's recognized set.
func (i CheckInput) Validate(maxRunes int) error {
	var errs []domain.FieldError

	if !utf8.ValidString(i.Text) {
		errs = append(errs, domain.FieldError{Field: "text", Message: "must be valid UTF-8"})
	}
	if maxRunes > 0 && utf8.RuneCountInString(i.Text) > maxRunes {
		errs = append(errs, domain.FieldError{Field: "text", Message: fmt.Sprintf("max %d characters", maxRunes)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SuggestInput holds one suggestion lookup.
type SuggestInput struct {
	Token string
}

func (i SuggestInput) Validate() error {
	token := strings.TrimSpace(i.Token)
	if token == "" {
		return domain.NewValidationError("token", "required")
	}
	if utf8.RuneCountInString(token) > 100 {
		return domain.NewValidationError("token", "max 100 characters")
	}
	return nil
}
