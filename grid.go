package main

import (
	"encoding/json"
	"strings"
)

// Cell markers. Any other rune in a cell is a letter.
const (
	Blank  = ' '
	Filler = '#'
)

// DefaultGridSize is the standard NYT Sunday grid dimension.
const DefaultGridSize = 21

// Direction is the orientation of a placed word.
type Direction string

const (
	Horizontal Direction = "H"
	Vertical   Direction = "V"
)

// Coord is a [row, col] pair. It encodes as a two-integer JSON array.
type Coord [2]int

// Placement records where and how a word was written into the grid.
type Placement struct {
	Start     Coord     `json:"start"`
	Direction Direction `json:"direction"`
	Positions []Coord   `json:"positions"`
}

// Grid is a square board of single-rune cells.
type Grid struct {
	size  int
	cells [][]rune
}

// NewGrid returns an all-blank size×size grid.
func NewGrid(size int) *Grid {
	cells := make([][]rune, size)
	for i := range cells {
		row := make([]rune, size)
		for j := range row {
			row[j] = Blank
		}
		cells[i] = row
	}
	return &Grid{size: size, cells: cells}
}

// Size returns the grid dimension.
func (g *Grid) Size() int { return g.size }

// At returns the rune stored at (row, col).
func (g *Grid) At(row, col int) rune { return g.cells[row][col] }

// Set overwrites the cell at (row, col).
func (g *Grid) Set(row, col int, r rune) { g.cells[row][col] = r }

// InBounds reports whether (row, col) lies on the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

// Count returns how many cells hold r.
func (g *Grid) Count(r rune) int {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c == r {
				n++
			}
		}
	}
	return n
}

// BlackBoxes derives the filler mask from the current cell contents.
func (g *Grid) BlackBoxes() [][]bool {
	mask := make([][]bool, g.size)
	for i, row := range g.cells {
		mask[i] = make([]bool, g.size)
		for j, c := range row {
			mask[i][j] = c == Filler
		}
	}
	return mask
}

// Rows returns the grid as rows of one-character strings, the wire form.
func (g *Grid) Rows() [][]string {
	out := make([][]string, g.size)
	for i, row := range g.cells {
		out[i] = make([]string, g.size)
		for j, c := range row {
			out[i][j] = string(c)
		}
	}
	return out
}

// MarshalJSON encodes the grid as its wire rows.
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Rows())
}

// String renders the grid one row per line, for terminal output.
func (g *Grid) String() string {
	var b strings.Builder
	for _, row := range g.cells {
		for j, c := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			if c == Blank {
				b.WriteByte('.')
				continue
			}
			b.WriteRune(c)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
