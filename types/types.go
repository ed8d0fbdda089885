// Package types contains shared data structures for termtris.
package types

import (
	"encoding/json"
	"fmt"
)

// NumColors is the number of piece colours. A stored cell value is either 0
// (empty) or a colour id in 1..NumColors.
const NumColors = 7

// Phase is the lifecycle state of a game.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhasePlaying  Phase = "playing"
	PhaseGameOver Phase = "game_over"
)

// Pos is a board coordinate. X grows to the right, Y grows downwards and
// row 0 is the top of the well.
type Pos struct {
	X int
	Y int
}

// Add returns p shifted by dx, dy.
func (p Pos) Add(dx, dy int) Pos {
	return Pos{X: p.X + dx, Y: p.Y + dy}
}

// MarshalJSON encodes a Pos as a JSON array [x, y].
func (p Pos) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Y})
}

// UnmarshalJSON allows Pos to be unmarshaled from a JSON array [x, y].
func (p *Pos) UnmarshalJSON(data []byte) error {
	var v []float64
	err := json.Unmarshal(data, &v)
	if err != nil {
		return err
	}
	if len(v) != 2 {
		return fmt.Errorf("pos: want [x, y], got %d values", len(v))
	}
	p.X = int(v[0])
	p.Y = int(v[1])
	return nil
}

// Matrix is a row-major grid of cell values, indexed as m[y][x].
// Every row has the same length.
type Matrix [][]int

// NewMatrix returns a zero-filled matrix with the given dimensions.
func NewMatrix(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]int, cols)
	}
	return m
}

// Rows returns the number of rows.
func (m Matrix) Rows() int {
	return len(m)
}

// Cols returns the number of columns.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Count returns the number of nonzero cells.
func (m Matrix) Count() int {
	n := 0
	for _, row := range m {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	if m == nil {
		return nil
	}
	c := make(Matrix, len(m))
	for i, row := range m {
		c[i] = append([]int(nil), row...)
	}
	return c
}

// Equal reports whether m and o have the same dimensions and contents.
func (m Matrix) Equal(o Matrix) bool {
	if len(m) != len(o) {
		return false
	}
	for y := range m {
		if len(m[y]) != len(o[y]) {
			return false
		}
		for x := range m[y] {
			if m[y][x] != o[y][x] {
				return false
			}
		}
	}
	return true
}

// PieceState is the active piece as seen by renderers.
type PieceState struct {
	Type   string `json:"type"`
	Shape  Matrix `json:"shape"`
	Offset Pos    `json:"offset"`
	Color  int    `json:"color"`
}

// GameState is a read-only snapshot of a game.
// Board is indexed as Board[y][x] where 0=empty and 1..NumColors is a piece colour.
type GameState struct {
	Phase  Phase       `json:"phase"`
	Board  Matrix      `json:"board"`
	Piece  *PieceState `json:"piece,omitempty"`
	Score  int         `json:"score"`
	Lines  int         `json:"lines"`
	Pieces int         `json:"pieces"` // pieces locked into the board
}

// Finished returns true if the game is over.
func (g *GameState) Finished() bool {
	return g.Phase == PhaseGameOver
}

// Playing returns true while a piece is under control.
func (g *GameState) Playing() bool {
	return g.Phase == PhasePlaying
}

// Height returns the board height.
func (g *GameState) Height() int {
	return g.Board.Rows()
}

// Width returns the board width.
func (g *GameState) Width() int {
	return g.Board.Cols()
}

// PieceCell returns the colour of the active piece at board coordinate
// (x, y), or 0 if the piece does not cover it.
func (g *GameState) PieceCell(x, y int) int {
	if g.Piece == nil {
		return 0
	}
	px, py := x-g.Piece.Offset.X, y-g.Piece.Offset.Y
	if py < 0 || py >= g.Piece.Shape.Rows() || px < 0 || px >= g.Piece.Shape.Cols() {
		return 0
	}
	if g.Piece.Shape[py][px] == 0 {
		return 0
	}
	return g.Piece.Color
}

// NewGameState creates an idle snapshot with an empty board of the given size.
func NewGameState(width, height int) *GameState {
	return &GameState{
		Phase: PhaseIdle,
		Board: NewMatrix(height, width),
	}
}
