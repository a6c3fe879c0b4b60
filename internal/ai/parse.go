package ai

import (
	"errors"
	"strings"
)

var errNoJSON = errors.New("no JSON found in model output")

// extractJSON strips markdown fences and returns the span from the first open
// delimiter to the last matching close delimiter.
func extractJSON(text string, open, close byte) (string, error) {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start == -1 || end == -1 || end < start {
		return "", errNoJSON
	}
	return s[start : end+1], nil
}

// cleanList trims entries, drops blanks and duplicates and caps the length.
func cleanList(in []string, max int) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
		if len(out) == max {
			break
		}
	}
	return out
}
