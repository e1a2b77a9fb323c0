package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"svw.info/sudogen/internal/domain"
)

// PostgresScores persists completed-game records. The schema is
// bootstrapped on first use with embedded DDL.
type PostgresScores struct {
	pool *pgxpool.Pool
}

const scoresSchema = `
CREATE TABLE IF NOT EXISTS scores (
	id          text PRIMARY KEY,
	grid_size   integer NOT NULL,
	difficulty  text NOT NULL,
	elapsed_ms  bigint NOT NULL,
	hints_used  integer NOT NULL,
	mistakes    integer NOT NULL,
	finished_at timestamptz NOT NULL
);
CREATE INDEX IF NOT EXISTS scores_board_idx
	ON scores (grid_size, difficulty, elapsed_ms);
`

// NewPostgresScores connects and ensures the schema exists.
func NewPostgresScores(ctx context.Context, url string) (*PostgresScores, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	if _, err := pool.Exec(ctx, scoresSchema); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresScores{pool: pool}, nil
}

func (s *PostgresScores) Close() { s.pool.Close() }

func (s *PostgresScores) Add(ctx context.Context, rec *domain.ScoreRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO scores (id, grid_size, difficulty, elapsed_ms, hints_used, mistakes, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO NOTHING`,
		rec.ID, rec.Size, rec.Difficulty.String(), rec.ElapsedMs,
		rec.HintsUsed, rec.Mistakes, time.UnixMilli(rec.FinishedAt).UTC())
	return err
}

func (s *PostgresScores) Top(ctx context.Context, size int, d domain.Difficulty, limit int) ([]domain.ScoreRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, grid_size, difficulty, elapsed_ms, hints_used, mistakes, finished_at
		 FROM scores
		 WHERE grid_size = $1 AND difficulty = $2
		 ORDER BY elapsed_ms ASC
		 LIMIT $3`,
		size, d.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ScoreRecord
	for rows.Next() {
		var rec domain.ScoreRecord
		var diff string
		var finished time.Time
		if err := rows.Scan(&rec.ID, &rec.Size, &diff, &rec.ElapsedMs,
			&rec.HintsUsed, &rec.Mistakes, &finished); err != nil {
			return nil, err
		}
		rec.Difficulty = domain.ParseDifficulty(diff)
		rec.FinishedAt = finished.UnixMilli()
		out = append(out, rec)
	}
	return out, rows.Err()
}
