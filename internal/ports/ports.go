// Package ports declares the interfaces the use-case layer is wired
// with. Adapters (HTTP, WebSocket, CLI) and infrastructure (memory,
// Redis, Postgres, filesystem) implement or consume these.
package ports

import (
	"context"
	"errors"
	"time"

	"svw.info/sudogen/internal/domain"
)

// ErrNotFound is returned by stores for unknown or expired IDs.
var ErrNotFound = errors.New("not found")

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// Solver completes an arbitrary partial board.
type Solver interface {
	Solve(ctx context.Context, b *domain.Board) (*domain.Board, Stats, error)
}

// GameStore holds live game sessions keyed by ID. Implementations
// must return ErrNotFound for unknown or expired IDs.
type GameStore interface {
	Put(ctx context.Context, g *domain.Game) error
	Get(ctx context.Context, id string) (*domain.Game, error)
	Delete(ctx context.Context, id string) error
}

// ScoreStore persists completed-game records and serves the
// leaderboard query.
type ScoreStore interface {
	Add(ctx context.Context, rec *domain.ScoreRecord) error
	Top(ctx context.Context, size int, d domain.Difficulty, limit int) ([]domain.ScoreRecord, error)
}

// PuzzleStore persists generated puzzles as JSON documents.
type PuzzleStore interface {
	Save(ctx context.Context, p *domain.Puzzle) error
	Load(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
}
