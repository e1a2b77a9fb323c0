// Package generator produces solved grids and carves playable puzzles
// from them. All randomness flows through a caller-supplied *rand.Rand
// so generation can be replayed bit-for-bit in tests.
package generator

import (
	"math/rand"

	"svw.info/sudogen/internal/difficulty"
	"svw.info/sudogen/internal/domain"
	"svw.info/sudogen/internal/geometry"
	"svw.info/sudogen/internal/validator"
)

// DefaultBudget is the number of randomized backtracking attempts
// before giving up and using the deterministic fallback.
const DefaultBudget = 50

// Engine generates solved grids. New sets the default budget; a zero
// Budget skips the randomized search entirely.
type Engine struct {
	// Budget bounds the randomized attempts. Zero means every call
	// goes straight to the fallback constructor, which tests use to
	// exercise that path.
	Budget int
}

func New() *Engine { return &Engine{Budget: DefaultBudget} }

// Solution returns a fully solved size×size grid. Each attempt seeds
// the first row with a random permutation, then runs an MRV-ordered
// backtracking fill; a completed grid is re-checked before being
// accepted. If the budget is exhausted the deterministic fallback is
// used, so Solution never fails.
func (e *Engine) Solution(size int, rng *rand.Rand) domain.Grid {
	dims := geometry.Dims(size)
	for attempt := 0; attempt < e.Budget; attempt++ {
		g := domain.NewGrid(size)
		for c, v := range rng.Perm(size) {
			g[0][c] = v + 1
		}
		res := search(g, dims, rng)
		if res.status == solved && validator.CheckComplete(res.grid) {
			return res.grid
		}
	}
	return Fallback(size, rng)
}

// Fallback constructs a guaranteed-valid solution without search:
// the closed-form pattern ((row*boxCols + row/boxRows + col) mod N)
// tiles correctly whenever boxRows×boxCols = N, and a random symbol
// relabeling keeps the output from being the same canonical grid
// every time.
func Fallback(size int, rng *rand.Rand) domain.Grid {
	dims := geometry.Dims(size)
	relabel := rng.Perm(size)
	g := domain.NewGrid(size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			base := (r*dims.BoxCols + r/dims.BoxRows + c) % size
			g[r][c] = relabel[base] + 1
		}
	}
	return g
}

// Carve copies the solution and zeroes floor(N²×ratio) cells chosen by
// a uniform shuffle of all positions. No uniqueness check is made: the
// contract is the removal count, not single-solvability.
func Carve(solution domain.Grid, d domain.Difficulty, rng *rand.Rand) domain.Grid {
	n := solution.Size()
	puzzle := solution.Clone()
	positions := make([]int, n*n)
	for i := range positions {
		positions[i] = i
	}
	rng.Shuffle(len(positions), func(i, j int) {
		positions[i], positions[j] = positions[j], positions[i]
	})
	remove := difficulty.CarveCount(d, n)
	for _, p := range positions[:remove] {
		puzzle[p/n][p%n] = 0
	}
	return puzzle
}
