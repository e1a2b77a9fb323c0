package generator

import (
	"math/rand"

	"svw.info/sudogen/internal/domain"
	"svw.info/sudogen/internal/geometry"
)

// status tags the outcome of a backtracking descent.
type status int

const (
	exhausted status = iota // some empty cell had no legal candidate
	solved
)

// searchResult carries the solved grid when status is solved. The grid
// is owned by the result; callers never see a partially mutated board.
type searchResult struct {
	status status
	grid   domain.Grid
}

// search runs a recursive backtracking fill from the given partial
// grid. Each recursion level works on its own copy, so concurrent
// searches share nothing. Candidate values are tried in a freshly
// shuffled order; the branch cell is the empty cell with the fewest
// legal candidates (first found on ties).
func search(g domain.Grid, dims geometry.BoxDims, rng *rand.Rand) searchResult {
	row, col, candidates, ok := mostConstrained(g, dims)
	if !ok {
		return searchResult{status: exhausted}
	}
	if row < 0 {
		return searchResult{status: solved, grid: g}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, v := range candidates {
		next := g.Clone()
		next[row][col] = v
		if res := search(next, dims, rng); res.status == solved {
			return res
		}
	}
	return searchResult{status: exhausted}
}

// mostConstrained scans all empty cells and picks the one with the
// fewest legal candidates. Returns row = -1 when the grid is complete,
// and ok = false when some empty cell has no candidate at all (a dead
// end that must trigger backtracking).
func mostConstrained(g domain.Grid, dims geometry.BoxDims) (row, col int, candidates []int, ok bool) {
	n := g.Size()
	row, col = -1, -1
	best := n + 1
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if g[r][c] != 0 {
				continue
			}
			cands := legalValues(g, dims, r, c)
			if len(cands) == 0 {
				return -1, -1, nil, false
			}
			if len(cands) < best {
				best = len(cands)
				row, col, candidates = r, c, cands
			}
		}
	}
	return row, col, candidates, true
}

// legalValues lists the values in [1, N] not already present in the
// row, column or box of (r, c).
func legalValues(g domain.Grid, dims geometry.BoxDims, r, c int) []int {
	n := g.Size()
	var used uint
	for i := 0; i < n; i++ {
		used |= 1 << uint(g[r][i])
		used |= 1 << uint(g[i][c])
	}
	br, bc := dims.BoxOrigin(r, c)
	for dr := 0; dr < dims.BoxRows; dr++ {
		for dc := 0; dc < dims.BoxCols; dc++ {
			used |= 1 << uint(g[br+dr][bc+dc])
		}
	}
	out := make([]int, 0, n)
	for v := 1; v <= n; v++ {
		if used&(1<<uint(v)) == 0 {
			out = append(out, v)
		}
	}
	return out
}
