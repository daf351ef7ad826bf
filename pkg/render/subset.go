package render

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/field"
)

// ApplySubset keeps the states whose name is listed in only, in their
// original order. An empty list keeps everything.
func ApplySubset(states []field.State, only []string) []field.State {
	wanted := normaliseTokens(only)
	if len(wanted) == 0 {
		return states
	}
	out := make([]field.State, 0, len(states))
	for _, st := range states {
		if _, ok := wanted[strings.ToLower(st.Name)]; ok {
			out = append(out, st)
		}
	}
	return out
}

func normaliseTokens(tokens []string) map[string]struct{} {
	out := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		for _, part := range strings.Split(token, ",") {
			if trimmed := strings.ToLower(strings.TrimSpace(part)); trimmed != "" {
				out[trimmed] = struct{}{}
			}
		}
	}
	return out
}
