// Package solver completes arbitrary partial boards. It backs the
// /api/solve endpoint and the CLI; puzzle generation has its own
// randomized search in package generator.
package solver

import (
	"context"
	"errors"
	"time"

	"svw.info/sudogen/internal/domain"
	"svw.info/sudogen/internal/geometry"
	"svw.info/sudogen/internal/ports"
)

// BacktrackingSolver is a recursive solver with MRV cell ordering.
type BacktrackingSolver struct{}

func NewBacktrackingSolver() *BacktrackingSolver { return &BacktrackingSolver{} }

var errUnsolvable = errors.New("unsolvable or canceled")

// Solve returns a completed copy of the board, leaving the input
// untouched. Boards whose givens already conflict are rejected up
// front. It respects context cancellation between branch steps.
func (s *BacktrackingSolver) Solve(ctx context.Context, b *domain.Board) (*domain.Board, ports.Stats, error) {
	start := time.Now()
	grid := b.Values.Clone()
	dims := geometry.Dims(grid.Size())
	if !consistent(grid, dims) {
		return nil, ports.Stats{Duration: time.Since(start)}, errUnsolvable
	}
	nodes := 0

	var dfs func() bool
	dfs = func() bool {
		if ctx.Err() != nil {
			return false
		}
		r, c, ok := nextCell(grid, dims)
		if !ok {
			return false
		}
		if r < 0 {
			return true
		}
		for v := 1; v <= grid.Size(); v++ {
			if !allowed(grid, dims, r, c, v) {
				continue
			}
			nodes++
			grid[r][c] = v
			if dfs() {
				return true
			}
			grid[r][c] = 0
		}
		return false
	}
	if !dfs() {
		return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, errUnsolvable
	}
	out := &domain.Board{Values: grid, Locked: b.Locked}
	return out, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}

// consistent reports whether the filled cells repeat no value within
// any row, column or box. Values outside [1, N] also fail.
func consistent(g domain.Grid, dims geometry.BoxDims) bool {
	n := g.Size()
	for i := 0; i < n; i++ {
		var rm, cm uint
		for j := 0; j < n; j++ {
			if v := g[i][j]; v != 0 {
				if v < 1 || v > n || rm&(1<<uint(v)) != 0 {
					return false
				}
				rm |= 1 << uint(v)
			}
			if v := g[j][i]; v != 0 {
				if cm&(1<<uint(v)) != 0 {
					return false
				}
				cm |= 1 << uint(v)
			}
		}
	}
	for br := 0; br < n; br += dims.BoxRows {
		for bc := 0; bc < n; bc += dims.BoxCols {
			var m uint
			for dr := 0; dr < dims.BoxRows; dr++ {
				for dc := 0; dc < dims.BoxCols; dc++ {
					v := g[br+dr][bc+dc]
					if v == 0 {
						continue
					}
					if m&(1<<uint(v)) != 0 {
						return false
					}
					m |= 1 << uint(v)
				}
			}
		}
	}
	return true
}

// nextCell picks the empty cell with the fewest legal values. Returns
// r = -1 when none are empty, ok = false on a contradiction.
func nextCell(g domain.Grid, dims geometry.BoxDims) (int, int, bool) {
	n := g.Size()
	bestR, bestC := -1, -1
	best := n + 1
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if g[r][c] != 0 {
				continue
			}
			count := 0
			for v := 1; v <= n; v++ {
				if allowed(g, dims, r, c, v) {
					count++
				}
			}
			if count == 0 {
				return -1, -1, false
			}
			if count < best {
				best, bestR, bestC = count, r, c
			}
		}
	}
	return bestR, bestC, true
}

func allowed(g domain.Grid, dims geometry.BoxDims, r, c, v int) bool {
	n := g.Size()
	for i := 0; i < n; i++ {
		if g[r][i] == v || g[i][c] == v {
			return false
		}
	}
	br, bc := dims.BoxOrigin(r, c)
	for dr := 0; dr < dims.BoxRows; dr++ {
		for dc := 0; dc < dims.BoxCols; dc++ {
			if g[br+dr][bc+dc] == v {
				return false
			}
		}
	}
	return true
}
