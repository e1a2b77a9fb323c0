// Package usecase wires the puzzle engine and the stores into the
// operations the adapters expose: start a game, judge a move, reveal a
// hint, record a finished game.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"svw.info/sudogen/internal/difficulty"
	"svw.info/sudogen/internal/domain"
	"svw.info/sudogen/internal/generator"
	"svw.info/sudogen/internal/geometry"
	"svw.info/sudogen/internal/play"
	"svw.info/sudogen/internal/ports"
	"svw.info/sudogen/internal/validator"
)

var (
	ErrUnsupportedSize = errors.New("unsupported grid size")
	ErrCellLocked      = errors.New("cell is locked")
	ErrNoHints         = errors.New("hint budget exhausted")
	ErrGameOver        = errors.New("no lives remaining")
	errNotConfigured   = errors.New("usecase dependency not configured")
)

// Warmer supplies pregenerated (solution, puzzle) pairs so the serve
// path can skip generation latency. Implemented by pregen.Pool.
type Warmer interface {
	Take(size int, d domain.Difficulty) (domain.Grid, domain.Grid, int64, bool)
}

type Service struct {
	Engine  *generator.Engine
	Solver  ports.Solver
	Games   ports.GameStore
	Scores  ports.ScoreStore
	Puzzles ports.PuzzleStore
	Warm    Warmer // optional

	checker *validator.FastValidator

	// seedFn provides seeds when the caller passes 0. Tests override
	// it for reproducible runs.
	seedFn func() int64
	nowFn  func() time.Time
}

func NewService(e *generator.Engine, s ports.Solver, games ports.GameStore, scores ports.ScoreStore, puzzles ports.PuzzleStore) *Service {
	return &Service{
		Engine:  e,
		Solver:  s,
		Games:   games,
		Scores:  scores,
		Puzzles: puzzles,
		checker: validator.New(),
		seedFn:  func() int64 { return time.Now().UnixNano() },
		nowFn:   time.Now,
	}
}

// NewGame generates a game at the requested size and difficulty. A
// zero seed means "pick one". Unsupported sizes are rejected here so
// the geometry escape hatch never mis-tiles a live game.
func (u *Service) NewGame(ctx context.Context, size int, d domain.Difficulty, seed int64) (*domain.Game, error) {
	if u.Engine == nil || u.Games == nil {
		return nil, errNotConfigured
	}
	if !geometry.Supported(size) {
		return nil, fmt.Errorf("%w: %d (want one of %v)", ErrUnsupportedSize, size, geometry.Sizes())
	}

	var solution, puzzle domain.Grid
	if seed == 0 {
		if u.Warm != nil {
			if sol, puz, s, ok := u.Warm.Take(size, d); ok {
				solution, puzzle, seed = sol, puz, s
			}
		}
		if solution == nil {
			seed = u.seedFn()
		}
	}
	if solution == nil {
		rng := rand.New(rand.NewSource(seed))
		solution = u.Engine.Solution(size, rng)
		puzzle = generator.Carve(solution, d, rng)
	}

	settings := difficulty.SettingsFor(d, size)
	now := u.nowFn()
	game := &domain.Game{
		ID:         fmt.Sprintf("%x-%04x", now.UnixNano(), rand.New(rand.NewSource(seed)).Intn(1<<16)),
		Size:       size,
		Difficulty: d,
		Seed:       seed,
		Solution:   solution,
		Board:      domain.NewBoard(puzzle),
		Lives:      settings.Lives,
		Hints:      settings.Hints,
		StartedAt:  now.UnixMilli(),
	}
	if err := u.Games.Put(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// MoveResult is the judgement of one placement.
type MoveResult struct {
	Legal    bool `json:"legal"`
	Correct  bool `json:"correct"`
	Lives    int  `json:"lives"`
	Complete bool `json:"complete"`
	GameOver bool `json:"gameOver"`
}

// Move applies a player's placement to the live board. Illegal
// placements cost a life and leave the board unchanged; legal ones are
// written, and a placement matching the solution locks the cell.
func (u *Service) Move(ctx context.Context, id string, row, col, value int) (MoveResult, error) {
	game, err := u.Games.Get(ctx, id)
	if err != nil {
		return MoveResult{}, err
	}
	n := game.Size
	if row < 0 || row >= n || col < 0 || col >= n || value < 1 || value > n {
		return MoveResult{}, fmt.Errorf("move out of range for size %d: (%d,%d)=%d", n, row, col, value)
	}
	if game.Lives <= 0 {
		return MoveResult{}, ErrGameOver
	}
	if game.Board.Locked[row][col] {
		return MoveResult{}, ErrCellLocked
	}

	res := MoveResult{Legal: play.ValidateMove(game.Board.Values, row, col, value)}
	if !res.Legal {
		game.Lives--
		game.Mistakes++
	} else {
		game.Board.Values[row][col] = value
		if game.Solution[row][col] == value {
			res.Correct = true
			game.Board.Locked[row][col] = true
		}
		res.Complete = play.IsComplete(game.Board.Values)
	}
	res.Lives = game.Lives
	res.GameOver = game.Lives <= 0
	if err := u.Games.Put(ctx, game); err != nil {
		return MoveResult{}, err
	}
	return res, nil
}

// Hint reveals one empty unlocked cell from the solution, charging the
// hint budget. The budget check happens here, not in the core reveal.
// A full board reports found=false rather than an error.
func (u *Service) Hint(ctx context.Context, id string) (play.Hint, bool, error) {
	game, err := u.Games.Get(ctx, id)
	if err != nil {
		return play.Hint{}, false, err
	}
	if game.Hints <= 0 {
		return play.Hint{}, false, ErrNoHints
	}
	rng := rand.New(rand.NewSource(u.seedFn()))
	h, ok := play.Reveal(&game.Board, game.Solution, rng)
	if !ok {
		return play.Hint{}, false, nil
	}
	game.Hints--
	game.HintsUsed++
	if err := u.Games.Put(ctx, game); err != nil {
		return play.Hint{}, false, err
	}
	return h, true, nil
}

// Complete finishes a game: the board must be full and valid against
// the stored solution. On success the session is deleted and a score
// record persisted.
func (u *Service) Complete(ctx context.Context, id string) (*domain.ScoreRecord, error) {
	game, err := u.Games.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !play.IsComplete(game.Board.Values) {
		return nil, errors.New("board is not complete")
	}
	for r := 0; r < game.Size; r++ {
		for c := 0; c < game.Size; c++ {
			if game.Board.Values[r][c] != game.Solution[r][c] {
				return nil, fmt.Errorf("cell (%d,%d) does not match the solution", r, c)
			}
		}
	}
	now := u.nowFn()
	rec := &domain.ScoreRecord{
		ID:         game.ID,
		Size:       game.Size,
		Difficulty: game.Difficulty,
		ElapsedMs:  now.UnixMilli() - game.StartedAt,
		HintsUsed:  game.HintsUsed,
		Mistakes:   game.Mistakes,
		FinishedAt: now.UnixMilli(),
	}
	if u.Scores != nil {
		if err := u.Scores.Add(ctx, rec); err != nil {
			return nil, err
		}
	}
	_ = u.Games.Delete(ctx, id)
	return rec, nil
}

// Leaderboard lists the fastest finishes for a (size, difficulty).
func (u *Service) Leaderboard(ctx context.Context, size int, d domain.Difficulty, limit int) ([]domain.ScoreRecord, error) {
	if u.Scores == nil {
		return nil, errNotConfigured
	}
	if limit <= 0 {
		limit = 10
	}
	return u.Scores.Top(ctx, size, d, limit)
}

// Validate checks a posted board for row/column/box conflicts.
func (u *Service) Validate(ctx context.Context, b *domain.Board) (bool, []domain.CellCoord, error) {
	return u.checker.Validate(ctx, b)
}

// Solve completes an arbitrary posted board.
func (u *Service) Solve(ctx context.Context, b *domain.Board) (*domain.Board, ports.Stats, error) {
	if u.Solver == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Solve(ctx, b)
}

// Persistence passthroughs for generated puzzles.

func (u *Service) SavePuzzle(ctx context.Context, p *domain.Puzzle) error {
	if u.Puzzles == nil {
		return errNotConfigured
	}
	return u.Puzzles.Save(ctx, p)
}

func (u *Service) LoadPuzzle(ctx context.Context, id string) (*domain.Puzzle, error) {
	if u.Puzzles == nil {
		return nil, errNotConfigured
	}
	return u.Puzzles.Load(ctx, id)
}

func (u *Service) ListPuzzles(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if u.Puzzles == nil {
		return nil, errNotConfigured
	}
	return u.Puzzles.List(ctx)
}
