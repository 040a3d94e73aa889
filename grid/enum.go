package grid

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// EnumError is returned when a value does not name a member of a closed set.
// Suggestions holds the closest members by fuzzy match, best first.
type EnumError struct {
	Kind        string
	Value       string
	Suggestions []string
}

func (e *EnumError) Error() string {
	msg := fmt.Sprintf("未知的 %s 取值 %q", e.Kind, e.Value)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf("（是否想写 %s？）", strings.Join(e.Suggestions, " / "))
	}
	return msg
}

const maxSuggestions = 3

func parseEnum[T ~string](kind, value string, all []T) (T, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range all {
		if string(candidate) == v {
			return candidate, nil
		}
	}
	var zero T
	return zero, &EnumError{Kind: kind, Value: value, Suggestions: suggest(v, all)}
}

func suggest[T ~string](value string, all []T) []string {
	if value == "" {
		return nil
	}
	names := make([]string, len(all))
	for i, candidate := range all {
		names[i] = string(candidate)
	}
	var out []string
	for _, m := range fuzzy.Find(value, names) {
		out = append(out, m.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
