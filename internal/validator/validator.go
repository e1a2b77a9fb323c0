// Package validator performs fast row/column/box constraint checks.
package validator

import (
	"context"

	"svw.info/sudogen/internal/domain"
	"svw.info/sudogen/internal/geometry"
)

type FastValidator struct{}

func New() *FastValidator { return &FastValidator{} }

// CheckComplete reports whether a fully filled grid is a valid
// solution: every row, column and box holds each value in [1, N]
// exactly once. Behavior on grids with empty cells is undefined; the
// move validator in package play handles partial boards.
func CheckComplete(g domain.Grid) bool {
	n := g.Size()
	dims := geometry.Dims(n)

	// rows and columns in one pass
	for i := 0; i < n; i++ {
		var rm, cm uint
		for j := 0; j < n; j++ {
			rv, cv := g[i][j], g[j][i]
			if rv < 1 || rv > n || cv < 1 || cv > n {
				return false
			}
			if rm&(1<<uint(rv)) != 0 || cm&(1<<uint(cv)) != 0 {
				return false
			}
			rm |= 1 << uint(rv)
			cm |= 1 << uint(cv)
		}
	}
	// boxes
	for br := 0; br < n; br += dims.BoxRows {
		for bc := 0; bc < n; bc += dims.BoxCols {
			var m uint
			for dr := 0; dr < dims.BoxRows; dr++ {
				for dc := 0; dc < dims.BoxCols; dc++ {
					v := g[br+dr][bc+dc]
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

// Validate checks a possibly partial board and collects the cells that
// conflict with an earlier cell in their row, column or box. Empty
// cells never conflict.
func (v *FastValidator) Validate(ctx context.Context, b *domain.Board) (bool, []domain.CellCoord, error) {
	g := b.Values
	n := g.Size()
	dims := geometry.Dims(n)
	conf := make([]domain.CellCoord, 0, 8)

	// rows
	for r := 0; r < n; r++ {
		var m uint
		for c := 0; c < n; c++ {
			val := g[r][c]
			if val == 0 {
				continue
			}
			bit := uint(1) << uint(val)
			if m&bit != 0 {
				conf = append(conf, domain.CellCoord{Row: r, Col: c})
			}
			m |= bit
		}
	}
	// cols
	for c := 0; c < n; c++ {
		var m uint
		for r := 0; r < n; r++ {
			val := g[r][c]
			if val == 0 {
				continue
			}
			bit := uint(1) << uint(val)
			if m&bit != 0 {
				conf = append(conf, domain.CellCoord{Row: r, Col: c})
			}
			m |= bit
		}
	}
	// boxes
	for br := 0; br < n; br += dims.BoxRows {
		for bc := 0; bc < n; bc += dims.BoxCols {
			var m uint
			for dr := 0; dr < dims.BoxRows; dr++ {
				for dc := 0; dc < dims.BoxCols; dc++ {
					val := g[br+dr][bc+dc]
					if val == 0 {
						continue
					}
					bit := uint(1) << uint(val)
					if m&bit != 0 {
						conf = append(conf, domain.CellCoord{Row: br + dr, Col: bc + dc})
					}
					m |= bit
				}
			}
		}
	}
	return len(conf) == 0, conf, nil
}
