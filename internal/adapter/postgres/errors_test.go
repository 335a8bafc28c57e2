package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/grammalecte-api/internal/domain"
)

func TestMapError_Nil(t *testing.T) {
	t.Parallel()

	if got := MapError(nil, "check_log"); got != nil {
		t.Errorf("MapError(nil) = %v, want nil", got)
	}
}

func TestMapError_NoRows(t *testing.T) {
	t.Parallel()

	got := MapError(fmt.Errorf("scan row: %w", pgx.ErrNoRows), "check_log")
	if !errors.Is(got, domain.ErrNotFound) {
		t.Errorf("MapError(wrapped ErrNoRows) does not wrap domain.ErrNotFound: %v", got)
	}
	if want := "check_log: not found"; got.Error() != want {
		t.Errorf("MapError(ErrNoRows).Error() = %q, want %q", got.Error(), want)
	}
}

func TestMapError_PgCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want error
	}{
		{"23505", domain.ErrAlreadyExists},
		{"23514", domain.ErrValidation},
	}
	for _, tt := range tests {
		got := MapError(&pgconn.PgError{Code: tt.code}, "check_log")
		if !errors.Is(got, tt.want) {
			t.Errorf("MapError(%s) = %v, want wrap of %v", tt.code, got, tt.want)
		}
	}
}

func TestMapError_ContextPassesThrough(t *testing.T) {
	t.Parallel()

	got := MapError(context.DeadlineExceeded, "check_log")
	if !errors.Is(got, context.DeadlineExceeded) {
		t.Errorf("MapError(DeadlineExceeded) = %v, want wrap of DeadlineExceeded", got)
	}
	if errors.Is(got, domain.ErrNotFound) {
		t.Error("context errors must not map to domain errors")
	}
}

func TestMapError_Other(t *testing.T) {
	t.Parallel()

	base := errors.New("connection reset")
	got := MapError(base, "check_log")
	if !errors.Is(got, base) {
		t.Errorf("MapError(other) = %v, want wrap of original", got)
	}
}
