package piece

import "termtris/types"

// Rotate returns m turned a quarter turn: clockwise for dir > 0,
// counter-clockwise for dir < 0. A rows x cols input produces a cols x rows
// result, so non-square shapes rotate correctly. dir == 0 returns a copy.
// m itself is never modified.
func Rotate(m types.Matrix, dir int) types.Matrix {
	if dir == 0 {
		return m.Clone()
	}
	rows, cols := m.Rows(), m.Cols()
	out := types.NewMatrix(cols, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if dir > 0 {
				out[x][rows-1-y] = m[y][x]
			} else {
				out[cols-1-x][y] = m[y][x]
			}
		}
	}
	return out
}
