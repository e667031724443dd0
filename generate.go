package main

import "fmt"

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	Words             []string `json:"words"`
	EnforceBlackRatio bool     `json:"enforce_black_ratio"`
	Seed              *uint64  `json:"seed,omitempty"`
}

// GenerateResponse is the generated puzzle as returned to clients.
type GenerateResponse struct {
	Grid          *Grid                `json:"grid"`
	BlackBoxes    [][]bool             `json:"black_boxes"`
	PlacedWords   []string             `json:"placed_words"`
	WordPositions map[string]Placement `json:"word_positions"`
	DroppedWords  []string             `json:"dropped_words"`
	Seed          uint64               `json:"seed"`
}

// Generator builds puzzles with a fixed grid configuration.
type Generator struct {
	GridSize    int
	BlackRatio  float64
	MaxAttempts int
}

// NewGenerator returns a generator using the grid settings from cfg.
func NewGenerator(cfg GridConfig) *Generator {
	return &Generator{
		GridSize:    cfg.Size,
		BlackRatio:  cfg.BlackRatio,
		MaxAttempts: cfg.MaxAttempts,
	}
}

// Generate places req.Words on a fresh grid, drawing every random choice
// from a source seeded for this request only.
func (gen *Generator) Generate(req GenerateRequest) (*GenerateResponse, error) {
	seed := newSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}
	return gen.GenerateWith(req, NewRand(seed), seed)
}

// GenerateWith is Generate with an explicit random source.
func (gen *Generator) GenerateWith(req GenerateRequest, rng Rand, seed uint64) (*GenerateResponse, error) {
	res := NewPlacer(gen.GridSize, gen.MaxAttempts, rng).Place(req.Words)

	if req.EnforceBlackRatio {
		if _, err := EnforceDensity(res.Grid, gen.BlackRatio, rng); err != nil {
			return nil, fmt.Errorf("enforce black ratio: %w", err)
		}
	}

	return &GenerateResponse{
		Grid:          res.Grid,
		BlackBoxes:    res.Grid.BlackBoxes(),
		PlacedWords:   res.Placed,
		WordPositions: res.Positions,
		DroppedWords:  res.Dropped,
		Seed:          seed,
	}, nil
}
