package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/your-org/frfront/internal/config"
	"github.com/your-org/frfront/internal/models"
)

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 500
)

const activitySchema = `
CREATE TABLE IF NOT EXISTS activities (
	id                UUID PRIMARY KEY,
	screen            TEXT NOT NULL,
	action            TEXT NOT NULL,
	subject           TEXT NOT NULL DEFAULT '',
	outcome           TEXT NOT NULL,
	message           TEXT NOT NULL DEFAULT '',
	error_kind        TEXT NOT NULL DEFAULT '',
	request_id        TEXT NOT NULL DEFAULT '',
	matched_person_id INTEGER,
	matched_name      TEXT,
	similarity        DOUBLE PRECISION,
	is_match          BOOLEAN,
	duration_ms       BIGINT NOT NULL DEFAULT 0,
	occurred_at       TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS activities_occurred_at_idx ON activities (occurred_at DESC);
CREATE INDEX IF NOT EXISTS activities_screen_idx ON activities (screen, occurred_at DESC);
`

// PostgresStore keeps the history of screen actions.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, cfg config.DatabaseConfig) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// EnsureSchema creates the activities table and its indexes if missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, activitySchema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// RecordActivity stores a. Recording the same activity twice is a no-op.
func (s *PostgresStore) RecordActivity(ctx context.Context, a models.Activity) error {
	var (
		personID   *int
		name       *string
		similarity *float64
		isMatch    *bool
	)
	if a.Match != nil {
		personID, name, similarity, isMatch = &a.Match.PersonID, &a.Match.Name, &a.Match.Similarity, &a.Match.IsMatch
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO activities (id, screen, action, subject, outcome, message, error_kind, request_id,
			matched_person_id, matched_name, similarity, is_match, duration_ms, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (id) DO NOTHING`,
		a.ID, a.Screen, a.Action, a.Subject, string(a.Outcome), a.Message, a.ErrorKind, a.RequestID,
		personID, name, similarity, isMatch, a.Duration.Milliseconds(), a.OccurredAt)
	if err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

// ListActivities returns the most recent activities, newest first, optionally
// restricted to one screen, together with the total number of matching rows.
func (s *PostgresStore) ListActivities(ctx context.Context, screen string, limit int) ([]models.Activity, int, error) {
	limit = ClampLimit(limit)

	where := ""
	args := []interface{}{}
	if screen != "" {
		where = "WHERE screen = $1"
		args = append(args, screen)
	}

	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM activities "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT id, screen, action, subject, outcome, message, error_kind, request_id,
			matched_person_id, matched_name, similarity, is_match, duration_ms, occurred_at
		 FROM activities %s ORDER BY occurred_at DESC LIMIT $%d`,
		where, len(args)+1)
	args = append(args, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var (
			a          models.Activity
			outcome    string
			personID   *int
			name       *string
			similarity *float64
			isMatch    *bool
			durationMS int64
		)
		if err := rows.Scan(&a.ID, &a.Screen, &a.Action, &a.Subject, &outcome, &a.Message, &a.ErrorKind, &a.RequestID,
			&personID, &name, &similarity, &isMatch, &durationMS, &a.OccurredAt); err != nil {
			return nil, 0, fmt.Errorf("scan activity: %w", err)
		}
		a.Outcome = models.Outcome(outcome)
		a.Duration = time.Duration(durationMS) * time.Millisecond
		if personID != nil {
			a.Match = &models.Match{PersonID: *personID}
			if name != nil {
				a.Match.Name = *name
			}
			if similarity != nil {
				a.Match.Similarity = *similarity
			}
			if isMatch != nil {
				a.Match.IsMatch = *isMatch
			}
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate activities: %w", err)
	}
	return activities, total, nil
}

// ClampLimit applies the history page size bounds.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		return MaxActivityLimit
	}
	return limit
}
