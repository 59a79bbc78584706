package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CleanFences strips a leading code fence with optional language tag and a
// trailing fence from a model response. Unfenced input passes through
// unchanged.
func CleanFences(raw string) string {
	clean := strings.TrimSpace(raw)
	if strings.HasPrefix(clean, "```") {
		clean = clean[3:]
		// Drop the language tag up to the first newline.
		if idx := strings.IndexByte(clean, '\n'); idx >= 0 && isFenceTag(clean[:idx]) {
			clean = clean[idx+1:]
		}
	}
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	return strings.TrimSpace(clean)
}

func isFenceTag(s string) bool {
	s = strings.TrimSpace(s)
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// ParseOptimize decodes an optimize response. Missing keys default to zero
// values; JSON that does not parse after fence cleaning is a hard failure
// wrapping the raw response.
func ParseOptimize(raw string) (OptimizeResult, error) {
	var result OptimizeResult
	if err := decodeResponse(raw, &result); err != nil {
		return OptimizeResult{}, err
	}
	result.MatchScore = clampScore(result.MatchScore)
	return result, nil
}

// ParseCreate decodes a create response with the same cleaning rules.
func ParseCreate(raw string) (CreateResult, error) {
	var result CreateResult
	if err := decodeResponse(raw, &result); err != nil {
		return CreateResult{}, err
	}
	return result, nil
}

func decodeResponse(raw string, out any) error {
	cleaned := CleanFences(raw)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("%w: %v; raw response: %s", ErrParse, err, raw)
	}
	return nil
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
