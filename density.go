package main

import (
	"errors"
	"fmt"
)

// DefaultBlackRatio is the filler share targeted when density is enforced.
const DefaultBlackRatio = 0.16

var (
	// ErrInsufficientCapacity means the grid has too few blank cells to reach
	// the requested filler count.
	ErrInsufficientCapacity = errors.New("insufficient blank cells")

	// ErrInvalidRatio is returned for ratios outside [0, 1].
	ErrInvalidRatio = errors.New("ratio must be between 0 and 1")
)

// EnforceDensity converts blank cells of g to filler until at least
// floor(size²·ratio) cells are filler. Letters are never touched. When there
// are not enough blanks the grid is left unchanged and the returned error
// wraps ErrInsufficientCapacity.
func EnforceDensity(g *Grid, ratio float64, rng Rand) (int, error) {
	if ratio < 0 || ratio > 1 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRatio, ratio)
	}

	target := int(float64(g.Size()*g.Size()) * ratio)
	deficit := target - g.Count(Filler)
	if deficit <= 0 {
		return 0, nil
	}

	var blanks []Coord
	for i := range g.Size() {
		for j := range g.Size() {
			if g.At(i, j) == Blank {
				blanks = append(blanks, Coord{i, j})
			}
		}
	}
	if len(blanks) < deficit {
		return 0, fmt.Errorf("%w: need %d filler cells, %d blank available", ErrInsufficientCapacity, deficit, len(blanks))
	}

	rng.Shuffle(len(blanks), func(i, j int) {
		blanks[i], blanks[j] = blanks[j], blanks[i]
	})
	for _, c := range blanks[:deficit] {
		g.Set(c[0], c[1], Filler)
	}
	return deficit, nil
}
