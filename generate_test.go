package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGridConfig(size int) GridConfig {
	return GridConfig{Size: size, BlackRatio: DefaultBlackRatio, MaxAttempts: DefaultMaxAttempts}
}

func TestGenerate_SingleWordScenario(t *testing.T) {
	gen := NewGenerator(GridConfig{Size: 3, BlackRatio: DefaultBlackRatio, MaxAttempts: 1})

	resp, err := gen.GenerateWith(GenerateRequest{Words: []string{"CAT"}}, script(t, 0, 0, 0), 9)
	require.NoError(t, err)

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"grid": [["C","A","T"],[" "," "," "],[" "," "," "]],
		"black_boxes": [[false,false,false],[false,false,false],[false,false,false]],
		"placed_words": ["CAT"],
		"word_positions": {"CAT": {"start":[0,0],"direction":"H","positions":[[0,0],[0,1],[0,2]]}},
		"dropped_words": [],
		"seed": 9
	}`, string(b))
}

func TestGenerate_EmptyWords(t *testing.T) {
	resp, err := NewGenerator(testGridConfig(DefaultGridSize)).Generate(GenerateRequest{})
	require.NoError(t, err)

	assert.Empty(t, resp.PlacedWords)
	assert.Empty(t, resp.WordPositions)
	assert.Equal(t, DefaultGridSize*DefaultGridSize, resp.Grid.Count(Blank))

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.JSONEq(t, `[]`, string(raw["placed_words"]))
	assert.JSONEq(t, `{}`, string(raw["word_positions"]))
}

func TestGenerate_EmptyWordsWithEnforcement(t *testing.T) {
	resp, err := NewGenerator(testGridConfig(DefaultGridSize)).Generate(GenerateRequest{EnforceBlackRatio: true})
	require.NoError(t, err)
	assert.Equal(t, 70, resp.Grid.Count(Filler))
}

func TestGenerate_SameSeedSameGrid(t *testing.T) {
	gen := NewGenerator(testGridConfig(DefaultGridSize))
	seed := uint64(1234)
	req := GenerateRequest{Words: []string{"CROSSWORD", "PUZZLE", "GRID"}, EnforceBlackRatio: true, Seed: &seed}

	a, err := gen.Generate(req)
	require.NoError(t, err)
	b, err := gen.Generate(req)
	require.NoError(t, err)

	assert.Equal(t, seed, a.Seed)
	assert.Equal(t, a.Grid.Rows(), b.Grid.Rows())
	assert.Equal(t, a.WordPositions, b.WordPositions)
}

func TestGenerate_DrawnSeedsAreExactAsFloat64(t *testing.T) {
	gen := NewGenerator(testGridConfig(3))
	for range 1000 {
		resp, err := gen.Generate(GenerateRequest{})
		require.NoError(t, err)
		require.Less(t, resp.Seed, uint64(maxSeed))
		require.Equal(t, resp.Seed, uint64(float64(resp.Seed)))
	}
}

func TestGenerate_EnforcementProperties(t *testing.T) {
	gen := NewGenerator(testGridConfig(DefaultGridSize))
	words := []string{"ALPHA", "BRAVO", "CHARLIE", "DELTA", "ECHO", "FOXTROT"}

	for seed := range uint64(50) {
		s := seed
		resp, err := gen.Generate(GenerateRequest{Words: words, EnforceBlackRatio: true, Seed: &s})
		require.NoError(t, err)

		assert.GreaterOrEqual(t, resp.Grid.Count(Filler), 70)
		for i, row := range resp.BlackBoxes {
			for j, black := range row {
				require.Equal(t, resp.Grid.At(i, j) == Filler, black)
			}
		}
	}
}

func TestGenerate_NoEnforcementNoFiller(t *testing.T) {
	gen := NewGenerator(testGridConfig(DefaultGridSize))
	for seed := range uint64(50) {
		s := seed
		resp, err := gen.Generate(GenerateRequest{Words: []string{"ALPHA", "BRAVO"}, Seed: &s})
		require.NoError(t, err)
		assert.Zero(t, resp.Grid.Count(Filler))
	}
}

func TestGenerate_InsufficientCapacity(t *testing.T) {
	gen := NewGenerator(GridConfig{Size: 1, BlackRatio: 1, MaxAttempts: 1})

	_, err := gen.Generate(GenerateRequest{Words: []string{"A"}, EnforceBlackRatio: true})
	assert.ErrorIs(t, err, ErrInsufficientCapacity)
}
