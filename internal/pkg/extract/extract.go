// Package extract pulls a single JSON object out of a raw model reply that
// may be wrapped in markdown fences or surrounded by prose.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// ErrNoJSON is returned when the reply contains no JSON object at all.
var ErrNoJSON = errors.New("no valid JSON found in response")

// Object locates the first balanced {...} span in text, after stripping any
// ``` fences, and unmarshals it into out.
//
// Scanning for the balanced close instead of the last } in the text keeps
// trailing prose that happens to contain braces from corrupting the payload.
func Object(text string, out interface{}) error {
	span, ok := firstObject(stripFences(text))
	if !ok {
		return ErrNoJSON
	}
	if err := sonic.UnmarshalString(span, out); err != nil {
		return fmt.Errorf("invalid JSON in response: %w", err)
	}
	return nil
}

func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// firstObject returns the first balanced top-level JSON object in s. Braces
// inside string literals are ignored.
func firstObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
