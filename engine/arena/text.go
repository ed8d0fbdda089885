package arena

import (
	"errors"
	"fmt"
	"strings"

	"termtris/types"
)

// ErrMalformed is returned by Parse for text that does not describe a board.
var ErrMalformed = errors.New("malformed board text")

// Text layout, one line per row from the top:
//
//	..........
//	....33....
//	1111.22222
//
// '.' is an empty cell and a digit 1-7 is a settled cell of that colour.

// String renders the board in the text layout.
func (b *Board) String() string {
	var sb strings.Builder
	for y, row := range b.cells {
		for _, v := range row {
			sb.WriteByte(cellRune(v))
		}
		if y < b.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Parse builds a board from the text layout. Leading and trailing blank
// lines and surrounding spaces on each line are ignored.
func Parse(s string) (*Board, error) {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}
	if len(lines) == 0 || lines[0] == "" {
		return nil, fmt.Errorf("%w: empty", ErrMalformed)
	}

	width := len(lines[0])
	b := New(width, len(lines))
	for y, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformed, y, len(line), width)
		}
		for x := 0; x < width; x++ {
			v, err := parseCell(line[x])
			if err != nil {
				return nil, fmt.Errorf("%w: row %d col %d: %v", ErrMalformed, y, x, err)
			}
			b.cells[y][x] = v
		}
	}
	return b, nil
}

// FromMatrix builds a board holding a copy of m.
func FromMatrix(m types.Matrix) (*Board, error) {
	b := New(m.Cols(), m.Rows())
	for y, row := range m {
		if len(row) != b.width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformed, y, len(row), b.width)
		}
		for x, v := range row {
			if v < 0 || v > types.NumColors {
				return nil, fmt.Errorf("%w: %d at (%d, %d)", ErrInvalidColor, v, x, y)
			}
			b.cells[y][x] = v
		}
	}
	return b, nil
}

func cellRune(v int) byte {
	if v == 0 {
		return '.'
	}
	return byte('0' + v)
}

func parseCell(c byte) (int, error) {
	if c == '.' {
		return 0, nil
	}
	if c < '1' || c > '0'+types.NumColors {
		return 0, fmt.Errorf("unexpected %q", c)
	}
	return int(c - '0'), nil
}
