// Package geometry maps a grid size to the shape of its box regions.
package geometry

// BoxDims is the shape of one box region: BoxRows×BoxCols cells.
// For a correct tiling BoxRows*BoxCols must equal the grid size.
type BoxDims struct {
	BoxRows int
	BoxCols int
}

var dimsBySize = map[int]BoxDims{
	4: {2, 2},
	6: {2, 3},
	9: {3, 3},
}

// Dims returns the box shape for the given grid size. Unrecognized
// sizes get the 3×3 default; that escape hatch mis-tiles any size that
// is neither a perfect square nor in the table, so callers that need a
// correct tiling must check Supported first.
func Dims(size int) BoxDims {
	if d, ok := dimsBySize[size]; ok {
		return d
	}
	return BoxDims{3, 3}
}

// Supported reports whether the size has a correct tiling in the table.
func Supported(size int) bool {
	_, ok := dimsBySize[size]
	return ok
}

// Sizes lists the supported grid sizes in ascending order.
func Sizes() []int { return []int{4, 6, 9} }

// BoxCount returns the number of box regions tiling a size×size grid.
func BoxCount(size int) int {
	d := Dims(size)
	return (size / d.BoxRows) * (size / d.BoxCols)
}

// BoxOrigin returns the top-left cell of the box containing (row, col).
func (d BoxDims) BoxOrigin(row, col int) (int, int) {
	return (row / d.BoxRows) * d.BoxRows, (col / d.BoxCols) * d.BoxCols
}
