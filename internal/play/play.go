// Package play implements the per-move rules of a live game: legality
// of a proposed placement, hint reveals, and completion.
package play

import (
	"math/rand"

	"svw.info/sudogen/internal/domain"
	"svw.info/sudogen/internal/geometry"
)

// ValidateMove reports whether placing value at (row, col) is legal on
// the current, possibly partial board. The target cell itself is
// excluded from every scan, so re-placing a cell's own value is always
// legal; empty cells never collide.
func ValidateMove(g domain.Grid, row, col, value int) bool {
	n := g.Size()
	dims := geometry.Dims(n)
	for i := 0; i < n; i++ {
		if i != col && g[row][i] == value {
			return false
		}
		if i != row && g[i][col] == value {
			return false
		}
	}
	br, bc := dims.BoxOrigin(row, col)
	for dr := 0; dr < dims.BoxRows; dr++ {
		for dc := 0; dc < dims.BoxCols; dc++ {
			r, c := br+dr, bc+dc
			if (r != row || c != col) && g[r][c] == value {
				return false
			}
		}
	}
	return true
}

// IsComplete reports whether every cell is filled. Whether a complete
// board ends the game is the caller's decision.
func IsComplete(g domain.Grid) bool {
	for r := range g {
		for c := range g[r] {
			if g[r][c] == 0 {
				return false
			}
		}
	}
	return true
}

// Hint represents one revealed cell.
type Hint struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Value int `json:"value"`
}

// Reveal picks a uniformly random empty, unlocked cell, writes its
// solution value into the board and locks it. Returns false when no
// such cell exists; the board is untouched in that case. Reveal itself
// is unconditional; the hint budget is enforced by the caller.
func Reveal(b *domain.Board, solution domain.Grid, rng *rand.Rand) (Hint, bool) {
	n := b.Values.Size()
	open := make([]domain.CellCoord, 0, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if b.Values[r][c] == 0 && !b.Locked[r][c] {
				open = append(open, domain.CellCoord{Row: r, Col: c})
			}
		}
	}
	if len(open) == 0 {
		return Hint{}, false
	}
	cell := open[rng.Intn(len(open))]
	v := solution[cell.Row][cell.Col]
	b.Values[cell.Row][cell.Col] = v
	b.Locked[cell.Row][cell.Col] = true
	return Hint{Row: cell.Row, Col: cell.Col, Value: v}, true
}
