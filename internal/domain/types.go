package domain

// Grid is a square N×N matrix of cell values. 0 means empty; filled
// cells hold values in [1, N].
type Grid [][]int

// NewGrid allocates an empty n×n grid.
func NewGrid(n int) Grid {
	g := make(Grid, n)
	for i := range g {
		g[i] = make([]int, n)
	}
	return g
}

// Size returns the side length of the grid.
func (g Grid) Size() int { return len(g) }

// Clone returns a deep copy sharing no storage with the receiver.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i := range g {
		out[i] = make([]int, len(g[i]))
		copy(out[i], g[i])
	}
	return out
}

// CellCoord identifies a cell on the board.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board holds current values and which cells the player may not edit
// (givens plus cells confirmed correct or revealed by a hint).
type Board struct {
	Values Grid     `json:"board"`
	Locked [][]bool `json:"locked,omitempty"`
}

// NewBoard builds a playable board from a puzzle grid, locking every
// given cell.
func NewBoard(puzzle Grid) Board {
	n := puzzle.Size()
	locked := make([][]bool, n)
	for r := 0; r < n; r++ {
		locked[r] = make([]bool, n)
		for c := 0; c < n; c++ {
			locked[r][c] = puzzle[r][c] != 0
		}
	}
	return Board{Values: puzzle.Clone(), Locked: locked}
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	locked := make([][]bool, len(b.Locked))
	for i := range b.Locked {
		locked[i] = make([]bool, len(b.Locked[i]))
		copy(locked[i], b.Locked[i])
	}
	return Board{Values: b.Values.Clone(), Locked: locked}
}

// Game is a live play session. The solution stays server side; clients
// see only the board, lives and hint budget.
type Game struct {
	ID         string     `json:"id"`
	Size       int        `json:"size"`
	Difficulty Difficulty `json:"difficulty"`
	Seed       int64      `json:"seed,omitempty"`
	Solution   Grid       `json:"solution,omitempty"`
	Board      Board      `json:"board"`
	Lives      int        `json:"lives"`
	Hints      int        `json:"hints"`
	Mistakes   int        `json:"mistakes"`
	HintsUsed  int        `json:"hintsUsed"`
	StartedAt  int64      `json:"startedAt"`
}

// Puzzle is a persisted generated puzzle with metadata.
type Puzzle struct {
	ID         string     `json:"id,omitempty"`
	Seed       int64      `json:"seed,omitempty"`
	Size       int        `json:"size"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Board      Grid       `json:"board"`
	Solution   Grid       `json:"solution,omitempty"`
	CreatedAt  int64      `json:"createdAt,omitempty"`
	Name       string     `json:"name,omitempty"`
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	Size       int        `json:"size"`
	Difficulty Difficulty `json:"difficulty"`
	CreatedAt  int64      `json:"createdAt"`
}

// ScoreRecord is a completed game as persisted for the leaderboard.
type ScoreRecord struct {
	ID         string     `json:"id,omitempty"`
	Size       int        `json:"size"`
	Difficulty Difficulty `json:"difficulty"`
	ElapsedMs  int64      `json:"elapsedMs"`
	HintsUsed  int        `json:"hintsUsed"`
	Mistakes   int        `json:"mistakes"`
	FinishedAt int64      `json:"finishedAt"`
}
