package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/grammalecte-api/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedCheckRecord inserts one check_log row created at the given time, with
// a unique request id and digest. Returns the inserted record.
func SeedCheckRecord(t *testing.T, pool *pgxpool.Pool, createdAt time.Time) domain.CheckRecord {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	rec := domain.CheckRecord{
		RequestID:  "req-" + suffix,
		ClientID:   "client-" + suffix,
		TextDigest: "digest-" + suffix,
		Runes:      12,
		Paragraphs: 1,
		Grammar:    1,
		Duration:   time.Millisecond,
		CreatedAt:  createdAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO check_log (request_id, client_id, text_digest, runes, paragraphs,
			grammar, spelling, undecodable, format_text, failed, duration_us, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rec.RequestID, rec.ClientID, rec.TextDigest, rec.Runes, rec.Paragraphs,
		rec.Grammar, rec.Spelling, rec.Undecodable, rec.FormatText, rec.Failed,
		rec.Duration.Microseconds(), rec.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed check record: %v", err)
	}

	return rec
}
