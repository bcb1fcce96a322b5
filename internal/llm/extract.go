package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrNoJSONObject = errors.New("no JSON object found in model output")

// ExtractJSONObject returns the first balanced top-level JSON object in text,
// byte-for-byte as it appears. Braces inside string literals are ignored and
// a backslash suppresses the effect of the character after it. Square
// brackets are not tracked. The candidate must decode as valid JSON.
func ExtractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return "", false
	}

	var (
		depth    int
		inString bool
		escaped  bool
	)

	for i := start; i < len(text); i++ {
		ch := text[i]

		if escaped {
			escaped = false
			continue
		}

		switch ch {
		case '\\':
			escaped = true
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					candidate := text[start : i+1]
					if !json.Valid([]byte(candidate)) {
						return "", false
					}
					return candidate, true
				}
			}
		}
	}

	return "", false
}
