package main

import "unicode/utf8"

// DefaultMaxAttempts bounds the random draws spent on a single word.
const DefaultMaxAttempts = 10

// PlaceResult is the outcome of placing a word list on a fresh grid.
type PlaceResult struct {
	Grid      *Grid
	Placed    []string
	Positions map[string]Placement
	Dropped   []string
}

// Placer writes words onto a grid at random positions and orientations.
// Placements may overwrite letters of earlier words; intersections are not
// checked for consistency.
type Placer struct {
	size        int
	maxAttempts int
	rng         Rand
}

// NewPlacer creates a placer for size×size grids. maxAttempts below 1 is
// treated as 1, which is the single-draw behaviour.
func NewPlacer(size, maxAttempts int, rng Rand) *Placer {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Placer{size: size, maxAttempts: maxAttempts, rng: rng}
}

// Place places words in input order on a new grid.
func (p *Placer) Place(words []string) *PlaceResult {
	res := &PlaceResult{
		Grid:      NewGrid(p.size),
		Placed:    []string{},
		Positions: make(map[string]Placement),
		Dropped:   []string{},
	}

	for _, word := range words {
		pl, ok := p.placeWord(res.Grid, word)
		if !ok {
			res.Dropped = append(res.Dropped, word)
			continue
		}
		res.Placed = append(res.Placed, word)
		res.Positions[word] = pl
	}
	return res
}

func (p *Placer) placeWord(g *Grid, word string) (Placement, bool) {
	length := utf8.RuneCountInString(word)
	if length > p.size {
		return Placement{}, false
	}

	for range p.maxAttempts {
		row, col := p.rng.IntN(p.size), p.rng.IntN(p.size)
		dir := Horizontal
		if p.rng.IntN(2) == 1 {
			dir = Vertical
		}

		if !fits(g, row, col, length, dir) {
			continue
		}
		return write(g, word, row, col, dir), true
	}
	return Placement{}, false
}

// fits reports whether a word of length starting at (row, col) ends on g.
func fits(g *Grid, row, col, length int, dir Direction) bool {
	last := max(length, 1) - 1
	if dir == Horizontal {
		return g.InBounds(row, col+last)
	}
	return g.InBounds(row+last, col)
}

// write copies word into g starting at (row, col) and returns its record.
func write(g *Grid, word string, row, col int, dir Direction) Placement {
	pl := Placement{
		Start:     Coord{row, col},
		Direction: dir,
		Positions: make([]Coord, 0, utf8.RuneCountInString(word)),
	}
	r, c := row, col
	for _, ch := range word {
		g.Set(r, c, ch)
		pl.Positions = append(pl.Positions, Coord{r, c})
		if dir == Horizontal {
			c++
		} else {
			r++
		}
	}
	return pl
}
