package scanlog

import (
	"fmt"
	"strconv"
	"strings"
)

// parseFloatList parses a bracketed, comma-separated numeric list such as
// "[1.0, 2.5, 3.0]". Parentheses are accepted in place of square brackets
// because pose tuples are recorded that way. The list must contain at least
// one value.
func parseFloatList(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return nil, fmt.Errorf("expected bracketed list, got %q", s)
	}
	open, shut := s[0], s[len(s)-1]
	if !(open == '[' && shut == ']') && !(open == '(' && shut == ')') {
		return nil, fmt.Errorf("expected bracketed list, got %q", s)
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return nil, fmt.Errorf("empty list %q", s)
	}

	parts := strings.Split(body, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float %q: %w", strings.TrimSpace(p), err)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseFloatTuple parses a bracketed list and requires exactly arity values.
func parseFloatTuple(s string, arity int) ([]float64, error) {
	vs, err := parseFloatList(s)
	if err != nil {
		return nil, err
	}
	if len(vs) != arity {
		return nil, fmt.Errorf("expected %d values, got %d in %q", arity, len(vs), s)
	}
	return vs, nil
}
