package viewstate

import (
	"fmt"
	"strings"

	"github.com/five82/takedown/internal/athlete"
)

// SearchResult is the outcome of a name search.
type SearchResult struct {
	Query   string            `json:"query"`
	Matches []athlete.Profile `json:"results"`
}

// Search matches query case-insensitively as a substring of each profile's
// display name. The query is not trimmed; whitespace is part of the match.
func Search(profiles []athlete.Profile, query string) SearchResult {
	res := SearchResult{Query: query}
	if query == "" {
		return res
	}
	needle := strings.ToLower(query)
	for _, p := range profiles {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			res.Matches = append(res.Matches, p)
		}
	}
	return res
}

// Shown reports whether a results section renders at all.
func (r SearchResult) Shown() bool {
	return r.Query != ""
}

// Label is the results heading, empty when nothing is shown.
func (r SearchResult) Label() string {
	if !r.Shown() {
		return ""
	}
	// The query is quoted literally, without Go escaping.
	switch n := len(r.Matches); n {
	case 0:
		return fmt.Sprintf("No results for \"%s\"", r.Query)
	case 1:
		return fmt.Sprintf("1 result for \"%s\"", r.Query)
	default:
		return fmt.Sprintf("%d results for \"%s\"", n, r.Query)
	}
}
