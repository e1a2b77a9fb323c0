package play

import (
	"math/rand"
	"reflect"
	"testing"

	"svw.info/sudogen/internal/domain"
	"svw.info/sudogen/internal/generator"
	"svw.info/sudogen/internal/geometry"
)

func TestValidateMoveSelfPlacement(t *testing.T) {
	e := generator.New()
	rng := rand.New(rand.NewSource(42))
	for _, size := range geometry.Sizes() {
		sol := e.Solution(size, rng)
		for r := 0; r < size; r++ {
			for c := 0; c < size; c++ {
				if !ValidateMove(sol, r, c, sol[r][c]) {
					t.Fatalf("size %d: self-placement at (%d,%d) reported illegal", size, r, c)
				}
			}
		}
	}
}

func TestValidateMoveCollisions(t *testing.T) {
	e := generator.New()
	rng := rand.New(rand.NewSource(11))
	sol := e.Solution(9, rng)
	// a symbol already elsewhere in row 0 must be rejected at (0,0)
	rowDup := sol[0][5]
	if ValidateMove(sol, 0, 0, rowDup) {
		t.Fatalf("row collision with %d at (0,5) not detected", rowDup)
	}
	colDup := sol[7][3]
	if ValidateMove(sol, 0, 3, colDup) {
		t.Fatalf("column collision with %d at (7,3) not detected", colDup)
	}
	boxDup := sol[1][1]
	if ValidateMove(sol, 0, 0, boxDup) {
		t.Fatalf("box collision with %d at (1,1) not detected", boxDup)
	}
}

func TestValidateMovePartialBoard(t *testing.T) {
	g := domain.NewGrid(4)
	g[0][0] = 2
	if ValidateMove(g, 0, 1, 2) {
		t.Fatal("row collision on partial board not detected")
	}
	if !ValidateMove(g, 2, 2, 2) {
		t.Fatal("legal placement on mostly empty board rejected")
	}
	// zeros elsewhere are never colliding values
	if !ValidateMove(g, 3, 3, 4) {
		t.Fatal("empty cells treated as collisions")
	}
}

func TestIsComplete(t *testing.T) {
	g := generator.New().Solution(4, rand.New(rand.NewSource(1)))
	if !IsComplete(g) {
		t.Fatal("solved grid reported incomplete")
	}
	g[2][2] = 0
	if IsComplete(g) {
		t.Fatal("grid with empty cell reported complete")
	}
}

func TestRevealFillsFromSolution(t *testing.T) {
	e := generator.New()
	rng := rand.New(rand.NewSource(42))
	sol := e.Solution(4, rng)
	puzzle := generator.Carve(sol, domain.Easy, rng)
	board := domain.NewBoard(puzzle)

	seen := 0
	for {
		h, ok := Reveal(&board, sol, rng)
		if !ok {
			break
		}
		seen++
		if h.Value != sol[h.Row][h.Col] {
			t.Fatalf("hint revealed %d at (%d,%d), solution holds %d", h.Value, h.Row, h.Col, sol[h.Row][h.Col])
		}
		if !board.Locked[h.Row][h.Col] {
			t.Fatalf("revealed cell (%d,%d) not locked", h.Row, h.Col)
		}
	}
	if seen != 6 { // easy 4×4 carves exactly 6 cells
		t.Fatalf("revealed %d cells, want 6", seen)
	}
	if !IsComplete(board.Values) {
		t.Fatal("board incomplete after exhausting reveals")
	}
}

func TestRevealExhaustedNoMutation(t *testing.T) {
	sol := generator.New().Solution(4, rand.New(rand.NewSource(8)))
	board := domain.NewBoard(sol) // fully filled, everything locked
	before := board.Clone()
	if _, ok := Reveal(&board, sol, rand.New(rand.NewSource(8))); ok {
		t.Fatal("reveal reported a hint on a full board")
	}
	if !reflect.DeepEqual(board, before) {
		t.Fatal("reveal mutated the board despite having no candidates")
	}
}
