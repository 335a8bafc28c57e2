package testhelper

import (
	"context"
	"testing"
	"time"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	rec := SeedCheckRecord(t, pool, time.Now())

	// Verify the row exists in DB via SELECT.
	var digest string
	err := pool.QueryRow(
		context.Background(),
		`SELECT text_digest FROM check_log WHERE request_id = $1`,
		rec.RequestID,
	).Scan(&digest)
	if err != nil {
		t.Fatalf("expected check record in DB, got error: %v", err)
	}

	if digest != rec.TextDigest {
		t.Fatalf("expected digest %q, got %q", rec.TextDigest, digest)
	}
}
