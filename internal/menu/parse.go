package menu

import (
	"strconv"
	"strings"

	"menuforge/internal/models"
)

// ParseAmount extracts a non-negative integer from free-form input.
// The editing UI updates on every keystroke, so in-progress input like
// "" or "12a" must never fail: all non-digit characters are stripped
// and the remainder parsed, defaulting to 0 when no digits are left.
func ParseAmount(value interface{}) int {
	switch v := value.(type) {
	case int:
		if v < 0 {
			return 0
		}
		return v
	case float64:
		if v < 0 {
			return 0
		}
		return int(v)
	case string:
		return parseDigits(v)
	default:
		return 0
	}
}

func parseDigits(raw string) int {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		// only possible on overflow of a very long digit run
		return 0
	}
	return n
}

// Loose coercions for form-sourced values. Forms deliver strings and
// JSON numbers interchangeably, so field edits accept either.

func toString(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

func toInt(value interface{}) int {
	switch v := value.(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func toBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

func toStringSlice(value interface{}) models.StringSlice {
	switch v := value.(type) {
	case models.StringSlice:
		return v
	case []string:
		return models.StringSlice(v)
	case []interface{}:
		out := make(models.StringSlice, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return models.StringSlice{}
	}
}
