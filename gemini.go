package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"google.golang.org/genai"
)

const (
	defaultSuggestCount = 12
	maxSuggestCount     = 40
)

const suggestPrompt = `Propose %d crossword answers on the theme %q.

Rules:
- Each answer is a single word or a compound written without spaces.
- Letters A-Z only, uppercase, between 3 and %d letters.
- No duplicates.
- Reply ONLY with a JSON array of strings, no comment and no markdown.`

// WordSuggester returns candidate words for a theme.
type WordSuggester interface {
	SuggestWords(ctx context.Context, theme string, count, maxLen int) ([]string, error)
}

// SuggestWords asks Gemini for count themed words no longer than maxLen.
func (g *GeminiClient) SuggestWords(ctx context.Context, theme string, count, maxLen int) ([]string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName,
		[]*genai.Content{{
			Role: "user",
			Parts: []*genai.Part{
				{Text: fmt.Sprintf(suggestPrompt, count, theme, maxLen)},
			},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.7)),
			TopP:             genai.Ptr(float32(1)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty gemini response")
	}
	return parseSuggestions(text, count, maxLen)
}

// parseSuggestions decodes the model's JSON array and keeps the usable words:
// normalised to upper case, letters only, deduplicated, at most count of them.
func parseSuggestions(text string, count, maxLen int) ([]string, error) {
	var raw []string
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("parse suggestions JSON: %w\nraw response: %s", err, text)
	}

	seen := make(map[string]bool)
	words := make([]string, 0, len(raw))
	for _, w := range raw {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w == "" || len([]rune(w)) > maxLen || seen[w] {
			continue
		}
		if strings.IndexFunc(w, func(r rune) bool { return !unicode.IsLetter(r) }) >= 0 {
			continue
		}
		seen[w] = true
		words = append(words, w)
		if len(words) == count {
			break
		}
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("no usable words in gemini response: %s", text)
	}
	return words, nil
}
