package gateway

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/kyudan/motemovil/internal/pkg/models"
)

// ExtractJSONSpan returns the first balanced {...} span in s. The scan is
// string-aware so braces inside JSON strings do not unbalance it. Returns
// false when no balanced span exists.
func ExtractJSONSpan(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
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
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}

	return "", false
}

// ParseDetails locates the embedded JSON object in a service response and
// parses it into trip details. Non-string values are stringified so the
// details map stays uniform.
func ParseDetails(content string) (models.TripDetails, error) {
	span, ok := ExtractJSONSpan(content)
	if !ok {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &raw); err != nil {
		return nil, fmt.Errorf("malformed JSON object in response: %w", err)
	}

	details := make(models.TripDetails, len(raw))
	for key, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			details[key] = s
			continue
		}

		var n float64
		if err := json.Unmarshal(value, &n); err == nil {
			details[key] = strconv.FormatFloat(n, 'f', -1, 64)
			continue
		}

		details[key] = string(value)
	}

	return details, nil
}
