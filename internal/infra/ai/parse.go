package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	domain "github.com/bryanwahyu/song-critic/internal/domain/analysis"
)

// ParseResult turns a raw model reply into a finished critique: code fences
// stripped, JSON decoded, shape validated, scores normalized, and the title
// forced back to the caller-supplied one. The model's echoed title is never
// trusted.
func ParseResult(raw string, req domain.Request) (*domain.Result, error) {
	text := stripFences(strings.TrimSpace(raw))

	var res domain.Result
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		// Some models wrap the object in prose despite instructions;
		// cut the outermost braces and try once more.
		js, ok := sliceJSON(text)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAnalysis, err)
		}
		if err2 := json.Unmarshal([]byte(js), &res); err2 != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAnalysis, err2)
		}
	}

	if err := res.Validate(); err != nil {
		return nil, err
	}
	res.Normalize()
	res.Title = req.Title
	return &res, nil
}

// stripFences removes a leading markdown code fence pair if present.
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	end := len(lines) - 1
	for i := len(lines) - 1; i > 0; i-- {
		if strings.TrimSpace(lines[i]) == "```" {
			end = i
			break
		}
	}
	return strings.Join(lines[1:end], "\n")
}

func sliceJSON(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
