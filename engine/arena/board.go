// Package arena implements the well: the grid of settled cells that pieces
// collide with, merge into and clear rows from.
package arena

import (
	"errors"
	"fmt"

	"termtris/types"
)

// LineScore is the award for the first row cleared by one Sweep call.
// Each further row cleared in the same call is worth twice the previous one.
const LineScore = 10

var (
	// ErrCollision is returned by Merge when the shape overlaps a settled
	// cell or a wall at the requested offset.
	ErrCollision = errors.New("piece collides with board")
	// ErrOutOfBounds is returned by Merge when a filled cell would land
	// above the top row.
	ErrOutOfBounds = errors.New("piece outside board")
	// ErrInvalidColor is returned by Merge for a colour id outside 1..types.NumColors.
	ErrInvalidColor = errors.New("invalid colour id")
)

// Board is a fixed-size grid of cell values, row 0 at the top.
// Its dimensions never change after New.
type Board struct {
	width  int
	height int
	cells  types.Matrix
}

// New creates an empty board.
func New(width, height int) *Board {
	return &Board{
		width:  width,
		height: height,
		cells:  types.NewMatrix(height, width),
	}
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// Cell returns the value at column x, row y. Coordinates outside the board
// read as 0.
func (b *Board) Cell(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0
	}
	return b.cells[y][x]
}

// Rows returns a copy of the grid.
func (b *Board) Rows() types.Matrix {
	return b.cells.Clone()
}

// Filled returns the number of nonzero cells.
func (b *Board) Filled() int {
	return b.cells.Count()
}

// Clear empties every cell.
func (b *Board) Clear() {
	for _, row := range b.cells {
		clearRow(row)
	}
}

// Collides reports whether shape placed with its top-left corner at off hits
// a side wall, the floor or a settled cell. Filled cells above the top edge
// are only tested against the side walls: the sky above the well is open.
func (b *Board) Collides(shape types.Matrix, off types.Pos) bool {
	for y, row := range shape {
		for x, v := range row {
			if v == 0 {
				continue
			}
			bx, by := off.X+x, off.Y+y
			if bx < 0 || bx >= b.width || by >= b.height {
				return true
			}
			if by >= 0 && b.cells[by][bx] != 0 {
				return true
			}
		}
	}
	return false
}

// Merge writes color into every board cell covered by a filled cell of shape.
// It re-checks the placement first and writes nothing on error.
func (b *Board) Merge(shape types.Matrix, off types.Pos, color int) error {
	if color < 1 || color > types.NumColors {
		return fmt.Errorf("%w: %d", ErrInvalidColor, color)
	}
	if b.Collides(shape, off) {
		return fmt.Errorf("%w at (%d, %d)", ErrCollision, off.X, off.Y)
	}
	for y, row := range shape {
		for _, v := range row {
			if v != 0 && off.Y+y < 0 {
				return fmt.Errorf("%w: row %d", ErrOutOfBounds, off.Y+y)
			}
		}
	}
	for y, row := range shape {
		for x, v := range row {
			if v != 0 {
				b.cells[off.Y+y][off.X+x] = color
			}
		}
	}
	return nil
}

// Sweep removes every complete row, scanning from the bottom up, and inserts
// an empty row at the top for each one. It returns the number of rows removed
// and their score: LineScore for the first, doubling for each further row.
func (b *Board) Sweep() (lines, score int) {
	award := LineScore
	for y := b.height - 1; y >= 0; y-- {
		if !b.rowFull(y) {
			continue
		}
		row := b.cells[y]
		copy(b.cells[1:y+1], b.cells[:y])
		clearRow(row)
		b.cells[0] = row
		// The row above slid into y; look at y again.
		y++

		lines++
		score += award
		award *= 2
	}
	return lines, score
}

func (b *Board) rowFull(y int) bool {
	for _, v := range b.cells[y] {
		if v == 0 {
			return false
		}
	}
	return true
}

func clearRow(row []int) {
	for i := range row {
		row[i] = 0
	}
}
