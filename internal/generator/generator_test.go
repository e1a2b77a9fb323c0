package generator

import (
	"math/rand"
	"reflect"
	"testing"

	"svw.info/sudogen/internal/difficulty"
	"svw.info/sudogen/internal/domain"
	"svw.info/sudogen/internal/geometry"
	"svw.info/sudogen/internal/validator"
)

func TestSolutionValidAllSizes(t *testing.T) {
	e := New()
	rng := rand.New(rand.NewSource(42))
	for _, size := range geometry.Sizes() {
		for round := 0; round < 5; round++ {
			g := e.Solution(size, rng)
			if g.Size() != size {
				t.Fatalf("size %d: got %d×%d grid", size, g.Size(), g.Size())
			}
			if !validator.CheckComplete(g) {
				t.Fatalf("size %d round %d: invalid solution %v", size, round, g)
			}
		}
	}
}

func TestSolutionReproducible(t *testing.T) {
	e := New()
	a := e.Solution(9, rand.New(rand.NewSource(7)))
	b := e.Solution(9, rand.New(rand.NewSource(7)))
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different solutions")
	}
}

func TestFallbackValidUnderRelabeling(t *testing.T) {
	// A zero budget forces every call through the fallback path.
	e := &Engine{Budget: 0}
	rng := rand.New(rand.NewSource(1))
	for _, size := range geometry.Sizes() {
		for round := 0; round < 20; round++ {
			g := e.Solution(size, rng)
			if !validator.CheckComplete(g) {
				t.Fatalf("size %d round %d: fallback grid invalid: %v", size, round, g)
			}
		}
	}
}

func TestFallbackVariesWithRelabeling(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	first := Fallback(9, rng)
	for i := 0; i < 10; i++ {
		if !reflect.DeepEqual(first, Fallback(9, rng)) {
			return
		}
	}
	t.Fatal("fallback returned the same grid across relabelings")
}

func TestCarveCountExact(t *testing.T) {
	e := New()
	rng := rand.New(rand.NewSource(42))
	for _, size := range geometry.Sizes() {
		sol := e.Solution(size, rng)
		for _, d := range []domain.Difficulty{domain.Easy, domain.Medium, domain.Hard} {
			puzzle := Carve(sol, d, rng)
			zeros := 0
			for r := 0; r < size; r++ {
				for c := 0; c < size; c++ {
					if puzzle[r][c] == 0 {
						zeros++
					}
				}
			}
			if want := difficulty.CarveCount(d, size); zeros != want {
				t.Errorf("size %d %v: %d cells removed, want %d", size, d, zeros, want)
			}
		}
	}
}

func TestCarveNonDestructive(t *testing.T) {
	e := New()
	rng := rand.New(rand.NewSource(99))
	sol := e.Solution(9, rng)
	puzzle := Carve(sol, domain.Hard, rng)
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if puzzle[r][c] != 0 && puzzle[r][c] != sol[r][c] {
				t.Fatalf("carving altered cell (%d,%d): %d != %d", r, c, puzzle[r][c], sol[r][c])
			}
		}
	}
	// carving must not touch the solution grid
	if !validator.CheckComplete(sol) {
		t.Fatal("solution mutated by carve")
	}
}

func TestCarveBoundaryEasyFour(t *testing.T) {
	// The size-4 easy case from the end-to-end oracle: floor(16×0.4) = 6.
	e := New()
	rng := rand.New(rand.NewSource(42))
	puzzle := Carve(e.Solution(4, rng), domain.Easy, rng)
	zeros := 0
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if puzzle[r][c] == 0 {
				zeros++
			}
		}
	}
	if zeros != 6 {
		t.Fatalf("easy 4×4 carve removed %d cells, want 6", zeros)
	}
}

func TestSearchDeadEnd(t *testing.T) {
	// Cell (1,0) sees 1 and 2 in its column, 3 and 4 in its box: no
	// legal candidate remains, so the search must report exhaustion.
	g := domain.NewGrid(4)
	g[0] = []int{0, 3, 0, 0}
	g[1] = []int{0, 4, 0, 0}
	g[2] = []int{1, 0, 0, 0}
	g[3] = []int{2, 0, 0, 0}
	res := search(g, geometry.Dims(4), rand.New(rand.NewSource(1)))
	if res.status != exhausted {
		t.Fatalf("expected exhausted search, got %v grid %v", res.status, res.grid)
	}
}

func TestSearchSolvesSeededRow(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	g := domain.NewGrid(6)
	for c, v := range rng.Perm(6) {
		g[0][c] = v + 1
	}
	res := search(g, geometry.Dims(6), rng)
	if res.status != solved {
		t.Fatal("search failed to complete a first-row-seeded 6×6 grid")
	}
	if !validator.CheckComplete(res.grid) {
		t.Fatalf("search produced invalid grid: %v", res.grid)
	}
	// the seed row must survive
	for c := 0; c < 6; c++ {
		if res.grid[0][c] != g[0][c] {
			t.Fatalf("seed row changed at col %d", c)
		}
	}
}
