// Package difficulty derives play parameters from a difficulty label
// and grid size. Everything here is a pure function of its inputs and
// is recomputed on demand rather than cached.
package difficulty

import (
	"svw.info/sudogen/internal/domain"
	"svw.info/sudogen/internal/geometry"
)

// Settings are the per-game allowances for a (difficulty, size) pair.
type Settings struct {
	Lives int `json:"lives"`
	Hints int `json:"hints"`
}

// SettingsFor computes lives and hint budget. The hint budget scales
// with the number of box regions: base = max(1, floor(boxCount*0.7)).
func SettingsFor(d domain.Difficulty, size int) Settings {
	base := geometry.BoxCount(size) * 7 / 10
	if base < 1 {
		base = 1
	}
	switch d {
	case domain.Medium:
		return Settings{Lives: 4, Hints: base}
	case domain.Hard:
		h := base - 1
		if h < 1 {
			h = 1
		}
		return Settings{Lives: 3, Hints: h}
	default:
		return Settings{Lives: 5, Hints: base + 1}
	}
}

// CarveRatio is the fraction of cells removed when carving a puzzle
// from a solution at the given difficulty.
func CarveRatio(d domain.Difficulty) float64 {
	switch d {
	case domain.Medium:
		return 0.55
	case domain.Hard:
		return 0.65
	default:
		return 0.40
	}
}

// CarveCount is the exact number of cells removed from a size×size
// solution: floor(size² × ratio).
func CarveCount(d domain.Difficulty, size int) int {
	return int(float64(size*size) * CarveRatio(d))
}
