package timezones

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/goliatone/go-formkit/pkg/field"
)

var fold = cases.Fold()

// Search returns up to limit zones containing query, prefix matches first.
func Search(zones []string, query string, limit int, opts Options) []string {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			return slices.Clone(zones[:min(limit, len(zones))])
		}
		return nil
	}

	q := fold.String(query)
	matches := make([]matchedZone, 0, 32)
	for _, zone := range zones {
		folded := fold.String(zone)
		if !strings.Contains(folded, q) {
			continue
		}
		matches = append(matches, matchedZone{
			name:     zone,
			isPrefix: strings.HasPrefix(folded, q),
		})
	}

	slices.SortStableFunc(matches, func(a, b matchedZone) int {
		if a.isPrefix != b.isPrefix {
			if a.isPrefix {
				return -1
			}
			return 1
		}
		return strings.Compare(a.name, b.name)
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.name)
	}
	return out
}

// Choices maps zone names onto dropdown choices. Labels swap underscores for
// spaces.
func Choices(zones []string) []field.Choice {
	out := make([]field.Choice, 0, len(zones))
	for _, zone := range zones {
		out = append(out, field.Choice{Value: zone, Label: strings.ReplaceAll(zone, "_", " ")})
	}
	return out
}

// SearchChoices is Search followed by Choices.
func SearchChoices(zones []string, query string, limit int, opts Options) []field.Choice {
	results := Search(zones, query, limit, opts)
	if len(results) == 0 {
		return nil
	}
	return Choices(results)
}

type matchedZone struct {
	name     string
	isPrefix bool
}
