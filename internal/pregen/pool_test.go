package pregen

import (
	"testing"
	"time"

	"svw.info/sudogen/internal/domain"
	"svw.info/sudogen/internal/generator"
	"svw.info/sudogen/internal/validator"
)

func TestPoolTake(t *testing.T) {
	p := New(generator.New(), 1)
	p.Start()
	defer p.Stop()

	deadline := time.After(5 * time.Second)
	for {
		sol, puz, seed, ok := p.Take(4, domain.Easy)
		if ok {
			if seed == 0 {
				t.Error("pregenerated game has zero seed")
			}
			if !validator.CheckComplete(sol) {
				t.Fatalf("pregenerated solution invalid: %v", sol)
			}
			zeros := 0
			for r := range puz {
				for c := range puz[r] {
					if puz[r][c] == 0 {
						zeros++
					}
				}
			}
			if zeros != 6 {
				t.Fatalf("easy 4×4 pregen carved %d cells, want 6", zeros)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("pool produced nothing within 5s")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestPoolTakeUnknownCombination(t *testing.T) {
	p := New(generator.New(), 1)
	// never started: Take must not block or panic
	if _, _, _, ok := p.Take(8, domain.Easy); ok {
		t.Fatal("Take returned a game for an unsupported size")
	}
	p.Stop()
}

func TestPoolStopIdempotent(t *testing.T) {
	p := New(generator.New(), 1)
	p.Start()
	p.Stop()
	p.Stop() // second call must not panic
}
