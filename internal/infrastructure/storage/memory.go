package storage

import (
	"context"
	"sort"
	"sync"

	"svw.info/sudogen/internal/domain"
	"svw.info/sudogen/internal/ports"
)

// MemoryGames is the default GameStore: a mutex-guarded map. Games are
// stored as deep copies so callers never alias live sessions.
type MemoryGames struct {
	mu    sync.Mutex
	games map[string]*domain.Game
}

func NewMemoryGames() *MemoryGames {
	return &MemoryGames{games: make(map[string]*domain.Game)}
}

func copyGame(g *domain.Game) *domain.Game {
	out := *g
	out.Solution = g.Solution.Clone()
	out.Board = g.Board.Clone()
	return &out
}

func (m *MemoryGames) Put(ctx context.Context, g *domain.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = copyGame(g)
	return nil
}

func (m *MemoryGames) Get(ctx context.Context, id string) (*domain.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return copyGame(g), nil
}

func (m *MemoryGames) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

// MemoryScores keeps score records in memory, for dev setups without
// a database.
type MemoryScores struct {
	mu   sync.Mutex
	recs []domain.ScoreRecord
}

func NewMemoryScores() *MemoryScores { return &MemoryScores{} }

func (m *MemoryScores) Add(ctx context.Context, rec *domain.ScoreRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, *rec)
	return nil
}

func (m *MemoryScores) Top(ctx context.Context, size int, d domain.Difficulty, limit int) ([]domain.ScoreRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ScoreRecord, 0, limit)
	for _, r := range m.recs {
		if r.Size == size && r.Difficulty == d {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ElapsedMs < out[j].ElapsedMs })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
