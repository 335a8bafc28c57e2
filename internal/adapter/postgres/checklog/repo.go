// Package checklog persists one row per /check call and aggregates them.
package checklog

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/grammalecte-api/internal/adapter/postgres"
	"github.com/heartmarshall/grammalecte-api/internal/domain"
)

const table = "check_log"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides check log persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new check log repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// Record appends one check record.
func (r *Repo) Record(ctx context.Context, rec domain.CheckRecord) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query, args, err := psql.Insert(table).
		Columns(
			"request_id", "client_id", "text_digest", "runes", "paragraphs",
			"grammar", "spelling", "undecodable", "format_text", "failed",
			"duration_us", "created_at",
		).
		Values(
			rec.RequestID, rec.ClientID, rec.TextDigest, rec.Runes, rec.Paragraphs,
			rec.Grammar, rec.Spelling, rec.Undecodable, rec.FormatText, rec.Failed,
			rec.Duration.Microseconds(), createdAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build check_log insert: %w", err)
	}

	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, table)
	}
	return nil
}

type statsRow struct {
	Checks        int     `db:"checks"`
	Failures      int     `db:"failures"`
	Grammar       int     `db:"grammar"`
	Spelling      int     `db:"spelling"`
	Undecodable   int     `db:"undecodable"`
	AvgDurationUS float64 `db:"avg_duration_us"`
}

// Stats aggregates records created at or after since.
func (r *Repo) Stats(ctx context.Context, since time.Time) (domain.CheckStats, error) {
	query, args, err := psql.Select(
		"count(*) AS checks",
		"count(*) FILTER (WHERE failed) AS failures",
		"coalesce(sum(grammar), 0) AS grammar",
		"coalesce(sum(spelling), 0) AS spelling",
		"coalesce(sum(undecodable), 0) AS undecodable",
		"coalesce(avg(duration_us), 0)::float8 AS avg_duration_us",
	).
		From(table).
		Where(squirrel.GtOrEq{"created_at": since}).
		ToSql()
	if err != nil {
		return domain.CheckStats{}, fmt.Errorf("build check_log stats: %w", err)
	}

	var row statsRow
	if err := pgxscan.Get(ctx, r.q, &row, query, args...); err != nil {
		return domain.CheckStats{}, postgres.MapError(err, table)
	}

	return domain.CheckStats{
		Since:       since,
		Checks:      row.Checks,
		Failures:    row.Failures,
		Grammar:     row.Grammar,
		Spelling:    row.Spelling,
		Undecodable: row.Undecodable,
		AvgDuration: time.Duration(row.AvgDurationUS * float64(time.Microsecond)),
	}, nil
}

// DeleteBefore removes records created before threshold and returns how many
// were deleted.
func (r *Repo) DeleteBefore(ctx context.Context, threshold time.Time) (int64, error) {
	query, args, err := psql.Delete(table).
		Where(squirrel.Lt{"created_at": threshold}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build check_log delete: %w", err)
	}

	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, table)
	}
	return tag.RowsAffected(), nil
}
