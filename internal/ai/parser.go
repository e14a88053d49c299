package ai

import (
	"encoding/json"
	"strings"
)

type matchesPayload struct {
	Matches []string `json:"matches"`
}

// parseStep tries to read a match list out of raw model output.
type parseStep func(raw string) ([]string, bool)

// matchParsers is tried in order; the first step that succeeds wins.
var matchParsers = []parseStep{
	parseStrict,
	parseBraced,
}

// ParseMatches reads the {"matches": [...]} object from a model response.
// Unparseable output yields an empty result, never an error.
func ParseMatches(raw string) []string {
	for _, step := range matchParsers {
		if matches, ok := step(raw); ok {
			return matches
		}
	}
	return []string{}
}

func parseStrict(raw string) ([]string, bool) {
	var p matchesPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &p); err != nil {
		return nil, false
	}
	if p.Matches == nil {
		p.Matches = []string{}
	}
	return p.Matches, true
}

// parseBraced parses the text between the first '{' and the last '}', which
// covers answers wrapped in prose or code fences.
func parseBraced(raw string) ([]string, bool) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return nil, false
	}
	return parseStrict(raw[start : end+1])
}
